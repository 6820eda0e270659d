package handlers

import (
	"github.com/gin-gonic/gin"

	"HealthPortal/internal/models"
	"HealthPortal/pkg/errors"
	"HealthPortal/pkg/response"
)

// Alerts

func (h *Handlers) handleListAlerts(c *gin.Context) {
	response.Success(c, "ok", gin.H{
		"alerts": h.portal.Alerts.List(),
		"stats":  h.portal.Alerts.Stats(),
	})
}

func (h *Handlers) handleMarkAlertRead(c *gin.Context) {
	alert, ok := h.portal.Alerts.MarkAsRead(c.Param("id"))
	if !ok {
		response.Error(c, errors.NotFound("alert", c.Param("id")))
		return
	}
	response.Success(c, "alert marked as read", alert)
}

// Reminders

func (h *Handlers) handleListReminders(c *gin.Context) {
	response.Success(c, "ok", gin.H{
		"reminders": h.portal.Reminders.List(),
		"stats":     h.portal.Reminders.Stats(),
	})
}

func (h *Handlers) handleCreateReminder(c *gin.Context) {
	var form models.ReminderForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Fail(c, "invalid request", nil)
		return
	}
	rem, ok := h.portal.Reminders.Save(form, "")
	if !ok {
		response.Error(c, errors.Invalid("title and a valid HH:MM time are required"))
		return
	}
	response.Created(c, "reminder created", rem)
}

func (h *Handlers) handleUpdateReminder(c *gin.Context) {
	id := c.Param("id")
	var form models.ReminderForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Fail(c, "invalid request", nil)
		return
	}
	if _, ok := h.portal.Reminders.Get(id); !ok {
		response.Error(c, errors.NotFound("reminder", id))
		return
	}
	rem, ok := h.portal.Reminders.Save(form, id)
	if !ok {
		response.Error(c, errors.Invalid("title and a valid HH:MM time are required"))
		return
	}
	response.Success(c, "reminder updated", rem)
}

func (h *Handlers) handleToggleReminder(c *gin.Context) {
	rem, ok := h.portal.Reminders.Toggle(c.Param("id"))
	if !ok {
		response.Error(c, errors.NotFound("reminder", c.Param("id")))
		return
	}
	response.Success(c, "reminder toggled", rem)
}

func (h *Handlers) handleDeleteReminder(c *gin.Context) {
	if !h.portal.Reminders.Delete(c.Param("id")) {
		response.Error(c, errors.NotFound("reminder", c.Param("id")))
		return
	}
	response.Success(c, "reminder deleted", nil)
}

// Vaccinations

func (h *Handlers) handleListVaccinations(c *gin.Context) {
	response.Success(c, "ok", gin.H{
		"vaccinations": h.portal.Vaccinations.List(),
		"stats":        h.portal.Vaccinations.Stats(),
	})
}

func (h *Handlers) handleVaccinationReminder(c *gin.Context) {
	var form struct {
		PhoneNumber string `json:"phoneNumber"`
	}
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Fail(c, "invalid request", nil)
		return
	}
	ok, err := h.portal.Vaccinations.ScheduleReminder(c.Request.Context(), c.Param("id"), form.PhoneNumber)
	if err != nil {
		e := errors.WithCode(errors.CodeUnavailable, "notification failed")
		e.Err = err
		response.Error(c, e)
		return
	}
	if !ok {
		response.Error(c, errors.Invalid("phone number and a known vaccination are required"))
		return
	}
	response.Success(c, "reminder scheduled", nil)
}

// Symptoms

func (h *Handlers) handleListSymptoms(c *gin.Context) {
	response.Success(c, "ok", h.portal.Symptoms.Catalog())
}

type assessRequest struct {
	IDs   []string `json:"ids"`
	Names []string `json:"names"`
}

func (h *Handlers) handleAssessSymptoms(c *gin.Context) {
	var req assessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "invalid request", nil)
		return
	}
	if len(req.IDs) == 0 && len(req.Names) == 0 {
		response.Error(c, errors.Invalid("select at least one symptom"))
		return
	}
	var a models.Assessment
	if len(req.IDs) > 0 {
		a = h.portal.Symptoms.AssessByIDs(req.IDs)
	} else {
		a = h.portal.Symptoms.AssessByNames(req.Names)
	}
	response.Success(c, "ok", a)
}
