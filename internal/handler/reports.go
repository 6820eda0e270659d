package handlers

import (
	"github.com/gin-gonic/gin"

	"HealthPortal/pkg/errors"
	"HealthPortal/pkg/response"
)

func (h *Handlers) handleListReports(c *gin.Context) {
	response.Success(c, "ok", h.portal.Reports.List())
}

// handleUploadReport multipart 字段 "file"，只取文件名和大小，内容不落地
func (h *Handlers) handleUploadReport(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, errors.Invalid("file is required"))
		return
	}
	rep, err := h.portal.Reports.Upload(fh.Filename, fh.Size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "report uploaded", rep)
}

func (h *Handlers) handleDeleteReport(c *gin.Context) {
	if !h.portal.Reports.Delete(c.Param("id")) {
		response.Error(c, errors.NotFound("report", c.Param("id")))
		return
	}
	response.Success(c, "report deleted", nil)
}
