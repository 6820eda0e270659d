package handlers

import (
	"github.com/gin-gonic/gin"

	"HealthPortal/pkg/response"
)

func (h *Handlers) handleListExercises(c *gin.Context) {
	response.Success(c, "ok", h.portal.Exercise.Catalog())
}

func (h *Handlers) handleExerciseSession(c *gin.Context) {
	response.Success(c, "ok", h.portal.Exercise.Session())
}

func (h *Handlers) handleStartExercise(c *gin.Context) {
	s, err := h.portal.Exercise.Start(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "exercise started", s)
}

func (h *Handlers) handleToggleExercise(c *gin.Context) {
	response.Success(c, "ok", h.portal.Exercise.TogglePlayPause())
}

func (h *Handlers) handleResetExercise(c *gin.Context) {
	response.Success(c, "ok", h.portal.Exercise.Reset())
}

func (h *Handlers) handleStopExercise(c *gin.Context) {
	response.Success(c, "ok", h.portal.Exercise.Stop())
}

func (h *Handlers) handleExerciseStep(c *gin.Context) {
	var form struct {
		Step int `json:"step"`
	}
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Fail(c, "invalid request", nil)
		return
	}
	response.Success(c, "ok", h.portal.Exercise.SetStep(form.Step))
}
