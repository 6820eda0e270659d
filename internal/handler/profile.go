package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"HealthPortal/internal/models"
	"HealthPortal/pkg/notification"
	"HealthPortal/pkg/response"
)

const sessionViewKey = "view"

func (h *Handlers) handleProfile(c *gin.Context) {
	response.Success(c, "ok", h.portal.Profile())
}

func (h *Handlers) handleDashboard(c *gin.Context) {
	response.Success(c, "ok", h.portal.Dashboard())
}

// currentView 优先取会话里的视图，没有时用全局导航状态
func (h *Handlers) currentView(c *gin.Context) models.View {
	if v, ok := sessions.Default(c).Get(sessionViewKey).(string); ok {
		return models.ParseView(v)
	}
	return h.portal.Navigator.Current()
}

func (h *Handlers) handleGetNavigation(c *gin.Context) {
	response.Success(c, "ok", gin.H{
		"view": h.currentView(c),
		"menu": h.portal.Navigator.Menu(),
	})
}

func (h *Handlers) handleSelectNavigation(c *gin.Context) {
	var form struct {
		View string `json:"view" form:"view"`
	}
	if err := c.ShouldBind(&form); err != nil {
		response.Fail(c, "invalid request", nil)
		return
	}
	view := h.portal.Navigator.Select(form.View)

	s := sessions.Default(c)
	s.Set(sessionViewKey, string(view))
	if err := s.Save(); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "view selected", gin.H{"view": view})
}

func (h *Handlers) handleWhatsAppLink(c *gin.Context) {
	link := notification.WhatsAppLink(h.cfg.WhatsAppNumber, h.cfg.WhatsAppText)
	if c.Query("redirect") != "" {
		c.Redirect(http.StatusFound, link)
		return
	}
	response.Success(c, "ok", gin.H{"url": link})
}
