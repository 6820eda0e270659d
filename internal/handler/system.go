package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"HealthPortal/pkg/metrics"
	"HealthPortal/pkg/middleware"
	"HealthPortal/pkg/response"
)

// UpdateRateLimiterConfig 更新限流配置
func (h *Handlers) UpdateRateLimiterConfig(c *gin.Context) {
	var config middleware.RateLimiterConfig
	if err := c.ShouldBindJSON(&config); err != nil {
		response.Fail(c, "invalid request", nil)
		return
	}
	if config.Rate == "" {
		response.Fail(c, "rate is required", nil)
		return
	}

	// 更新限流配置
	h.limiter.UpdateConfig(config)
	response.Success(c, "rate limiter config updated", nil)
}

// HealthCheck 健康检查接口，附带进程和主机资源
func (h *Handlers) HealthCheck(c *gin.Context) {
	stats := metrics.Collect()
	if h.metrics != nil {
		h.metrics.Observe(stats)
		h.metrics.SetSSEClients(h.events.Clients())
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"system":      stats,
		"sse_clients": h.events.Clients(),
		"chat":        h.chatStats(),
	})
}

func (h *Handlers) chatStats() gin.H {
	if h.ws == nil {
		return gin.H{}
	}
	return h.ws.Stats()
}

// handleEvents SSE 推送，?topics=alerts,forum 过滤
func (h *Handlers) handleEvents(c *gin.Context) {
	if h.metrics != nil {
		h.metrics.SetSSEClients(h.events.Clients() + 1)
		defer func() { h.metrics.SetSSEClients(h.events.Clients()) }()
	}
	h.events.Serve(c)
}
