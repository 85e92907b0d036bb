package handler

import (
	"net/http"

	"github.com/Arison99/School-Management-System/internal/apperr"
	"github.com/Arison99/School-Management-System/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// envelope is the uniform response body. The HTTP status carries the
// primary signal; code is the machine-readable secondary one.
type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Code    string            `json:"code,omitempty"`
	Error   string            `json:"error,omitempty"`
}

func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// fail serializes any error through the taxonomy. Unexpected errors
// are logged and surfaced as opaque 500s; their detail is attached
// only outside production.
func fail(c echo.Context, env string, err error) error {
	ae := apperr.From(err)

	body := envelope{
		Success: false,
		Message: ae.Message,
		Errors:  ae.Fields,
		Code:    string(ae.Code),
	}

	if ae.Status == http.StatusInternalServerError {
		logger.FromEcho(c).Error("Unexpected error", zap.Error(err))
		if env != "production" {
			body.Error = err.Error()
		}
	}

	return c.JSON(ae.Status, body)
}
