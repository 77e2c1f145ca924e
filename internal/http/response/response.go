package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Success 200 响应，直接输出数据
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201 响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Message 200 响应，仅携带提示消息
func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// BadRequest 400 响应
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, attachRequestID(c, gin.H{"error": msg}))
}

// NotFound 404 响应
func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, attachRequestID(c, gin.H{"message": msg}))
}

// Conflict 409 响应
func Conflict(c *gin.Context, msg string) {
	c.JSON(http.StatusConflict, attachRequestID(c, gin.H{"error": msg}))
}

// TooManyRequests 429 响应
func TooManyRequests(c *gin.Context, msg string) {
	c.JSON(http.StatusTooManyRequests, attachRequestID(c, gin.H{"error": msg}))
}

// Internal 500 响应
func Internal(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, attachRequestID(c, gin.H{"error": msg}))
}

func attachRequestID(c *gin.Context, payload gin.H) gin.H {
	if c == nil {
		return payload
	}
	value, ok := c.Get("request_id")
	if !ok {
		return payload
	}
	id, ok := value.(string)
	if !ok || id == "" {
		return payload
	}
	if _, exists := payload["request_id"]; !exists {
		payload["request_id"] = id
	}
	return payload
}
