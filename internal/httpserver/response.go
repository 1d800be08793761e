package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/tokens"
	"github.com/Skotchmaster/storefront/internal/transport"
)

func ok(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, transport.Envelope{Success: true, Message: message, Data: data})
}

// StatusOf maps a service or token error to its HTTP status and client message.
// Clients see only the outermost segment of a wrapped error; ids and causes stay in the logs.
func StatusOf(err error) (int, string) {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he.Code, fmt.Sprint(he.Message)
	case errors.Is(err, tokens.ErrMissingToken):
		return http.StatusUnauthorized, "missing token"
	case errors.Is(err, tokens.ErrTokenExpired):
		return http.StatusUnauthorized, "token expired"
	case errors.Is(err, tokens.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid token"
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, clientMessage(err)
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, clientMessage(err)
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, clientMessage(err)
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict, clientMessage(err)
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrAlreadyExists),
		errors.Is(err, service.ErrInsufficientStock):
		return http.StatusBadRequest, clientMessage(err)
	}
	return http.StatusInternalServerError, "internal server error"
}

func clientMessage(err error) string {
	msg, _, _ := strings.Cut(err.Error(), ": ")
	return msg
}

// ErrorHandler renders every error as the {success:false, message} envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, msg := StatusOf(err)
	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request().Context()).Error("unhandled_error", "status", status, "error", err)
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(status)
	} else {
		werr = c.JSON(status, transport.Envelope{Success: false, Message: msg})
	}
	if werr != nil {
		logging.FromContext(c.Request().Context()).Error("write_error_response_failed", "error", werr)
	}
}

// fail logs a handler failure at a level matching its status and returns err for ErrorHandler.
func fail(l *slog.Logger, event string, err error) error {
	status, _ := StatusOf(err)
	if status >= http.StatusInternalServerError {
		l.Error(event, "status", status, "error", err)
	} else {
		l.Warn(event, "status", status, "reason", err.Error())
	}
	return err
}

func badRequest(l *slog.Logger, event, reason string, err error) error {
	l.Warn(event, "status", http.StatusBadRequest, "reason", reason, "error", err)
	return echo.NewHTTPError(http.StatusBadRequest, reason)
}
