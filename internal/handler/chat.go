package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"HealthPortal/pkg/response"
)

func (h *Handlers) handleChatMessages(c *gin.Context) {
	response.Success(c, "ok", h.portal.Chat.Messages())
}

// handleSendChat 请求取消时助手的迟到回复会被丢弃
func (h *Handlers) handleSendChat(c *gin.Context) {
	var form struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Fail(c, "invalid request", nil)
		return
	}
	added, err := h.portal.Chat.Send(c.Request.Context(), form.Text)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "ok", added)
}

// chatText websocket 每个文本帧对应一次 Send，ctx 随连接断开取消
func (h *Handlers) chatText(ctx context.Context, text string) (interface{}, error) {
	added, err := h.portal.Chat.Send(ctx, text)
	if err != nil {
		return nil, err
	}
	return added, nil
}

func (h *Handlers) handleChatSocket(c *gin.Context) {
	if h.ws == nil {
		c.AbortWithStatus(http.StatusServiceUnavailable)
		return
	}
	h.ws.Serve(c)
}

func (h *Handlers) handleSpeechOptions(c *gin.Context) {
	response.Success(c, "ok", h.speech)
}
