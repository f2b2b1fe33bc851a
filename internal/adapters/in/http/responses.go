package http

import (
	"errors"
	"log/slog"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// envelope is the uniform JSON response shape.
// Status is "success" or "error"; Data is omitted when empty.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respondSuccess(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, envelope{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// respondError maps a domain error onto the HTTP status taxonomy and writes
// the error envelope. Unclassified errors are logged and answered with a
// generic 500 so internals never leak to clients.
func respondError(c echo.Context, err error) error {
	code := statusCodeFor(err)
	message := err.Error()

	if code == http.StatusInternalServerError {
		slog.Error("request failed",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"error", err,
		)
		message = "internal server error"
	}

	return c.JSON(code, envelope{
		Status:  "error",
		Message: message,
	})
}

func statusCodeFor(err error) int {
	switch {
	case errors.Is(err, commands.ErrDriverHasActiveDeliveries):
		return http.StatusConflict
	case errors.Is(err, account.ErrCurrentPasswordMismatch),
		errors.Is(err, errs.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
