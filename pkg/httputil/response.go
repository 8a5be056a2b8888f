// Package httputil provides HTTP response helpers shared by all handlers.
package httputil

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/echoplay/server/pkg/apperrors"
)

// Response represents a standard API response.
type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorInfo  `json:"error,omitempty"`
	RequestID string      `json:"request_id"`
}

// ErrorInfo represents error information in the response.
type ErrorInfo struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// OK sends a successful response.
func OK(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Success:   true,
		Data:      data,
		RequestID: GetRequestID(c),
	})
}

// Created sends a successful creation response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Success:   true,
		Data:      data,
		RequestID: GetRequestID(c),
	})
}

// Fail sends an error response. Unknown errors are reported as internal.
func Fail(c *gin.Context, err error) {
	appErr, ok := err.(*apperrors.Error)
	if !ok {
		appErr = apperrors.ErrInternal.WithError(err)
	}

	c.JSON(appErr.HTTPStatus, Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		},
		RequestID: GetRequestID(c),
	})
}

// GetRequestID retrieves or generates a request ID.
func GetRequestID(c *gin.Context) string {
	requestID := c.GetString("request_id")
	if requestID == "" {
		requestID = uuid.New().String()
	}
	return requestID
}
