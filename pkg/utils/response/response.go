// Package response provides the shared JSON response envelope used by all
// HTTP handlers.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Body is the common response envelope.
type Body struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Success writes a 200 response with the given message and payload.
func Success(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Body{Code: http.StatusOK, Message: message, Data: data})
}

// Fail writes an error response with the given status code.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Body{Code: status, Message: message})
}

// AbortWithStatus aborts the request with a bare status response.
func AbortWithStatus(c *gin.Context, status int) {
	c.AbortWithStatusJSON(status, Body{Code: status, Message: http.StatusText(status)})
}
