package http

import (
	"errors"
	"net/http"

	"parcelhub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusOf maps an application error to its HTTP status.
func statusOf(err error) int {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he.Code
	case errs.IsValidation(err):
		return http.StatusBadRequest
	case errs.IsNotFound(err):
		return http.StatusNotFound
	case errs.IsConflict(err):
		return http.StatusConflict
	case errs.IsUpstream(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as a JSON error. Internal errors are logged and hidden
// from the caller; every other kind is returned with its exact message.
func (s *Server) fail(ctx echo.Context, err error) error {
	code := statusOf(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", ctx.Request().Method),
			zap.String("path", ctx.Path()),
			zap.Error(err),
		)
		msg = "internal error"
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}
	return ctx.JSON(code, Error{Code: code, Message: msg})
}

func badRequest(msg string) error {
	return echo.NewHTTPError(http.StatusBadRequest, msg)
}
