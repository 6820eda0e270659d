package response

import (
	"net/http"

	"HealthPortal/pkg/errors"
	"HealthPortal/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Body 统一响应结构
type Body struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 200 + data
func Success(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Body{Code: 0, Message: msg, Data: data})
}

// Created 201 + data
func Created(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusCreated, Body{Code: 0, Message: msg, Data: data})
}

// Fail 400 + data
func Fail(c *gin.Context, msg string, data interface{}) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Body{Code: http.StatusBadRequest, Message: msg, Data: data})
}

// Error 按错误码写出状态，5xx 记日志
func Error(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.AbortWithStatusJSON(status, Body{Code: status, Message: errors.GetMessage(err)})
}
