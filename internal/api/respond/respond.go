// Package respond writes the {status, message, data} envelope every
// endpoint returns.
package respond

import (
	"net/http"

	"artmarket-admin/internal/apperr"
	"artmarket-admin/internal/infra/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Envelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Field   string `json:"field,omitempty"`
}

type ListEnvelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Items   any    `json:"items"`
	Total   int64  `json:"total"`
}

func OK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Envelope{Status: true, Message: message, Data: data})
}

func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Envelope{Status: true, Message: message, Data: data})
}

func List(c *gin.Context, message string, items any, total int64) {
	c.JSON(http.StatusOK, ListEnvelope{Status: true, Message: message, Items: items, Total: total})
}

func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Status: false, Message: message})
}

// FailWith is Fail with a data payload the client can still act on.
func FailWith(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{Status: false, Message: message, Data: data})
}

// Error converts any error into the envelope. Internal errors surface the
// underlying message and are logged.
func Error(c *gin.Context, err error) {
	e := apperr.As(err)
	if e.Kind == apperr.KindInternal {
		logger.FromGin(c).Error("request failed", zap.Error(err))
		c.JSON(e.Status(), Envelope{Status: false, Message: e.Error()})
		return
	}
	c.JSON(e.Status(), Envelope{Status: false, Message: e.Message, Field: e.Field})
}

// BadRequest reports a body that failed to bind.
func BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Envelope{Status: false, Message: err.Error()})
}
