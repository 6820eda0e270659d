package middleware

import (
	"time"

	"HealthPortal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/mssola/user_agent"
	"go.uber.org/zap"
)

// AccessLogMiddleware 记录每个请求的方法、路径、状态、耗时和客户端信息
func AccessLogMiddleware(skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]bool, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = true
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		if skip[path] {
			return
		}

		ua := user_agent.New(c.GetHeader("User-Agent"))
		browser, version := ua.Browser()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
			zap.String("browser", browser+" "+version),
			zap.String("os", ua.OS()),
			zap.Bool("mobile", ua.Mobile()),
		}
		if ref := c.GetHeader("Referer"); ref != "" {
			fields = append(fields, zap.String("referer", ref))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case c.Writer.Status() >= 500:
			logger.Error("http request", fields...)
		case c.Writer.Status() >= 400:
			logger.Warn("http request", fields...)
		default:
			logger.Info("http request", fields...)
		}
	}
}
