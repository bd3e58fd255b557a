package http

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestLogger logs method, path, status, response size, duration and the
// acting user for every request.
func RequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			res := c.Response()
			fields := []zap.Field{
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.RequestURI()),
				zap.Int("status", res.Status),
				zap.Int64("bytes", res.Size),
				zap.Duration("duration", time.Since(start)),
			}
			if actor := c.Request().Header.Get(ActorHeader); actor != "" {
				fields = append(fields, zap.String("actor_id", actor))
			}

			switch {
			case res.Status >= 500:
				logger.Error("request", fields...)
			case res.Status >= 400:
				logger.Warn("request", fields...)
			default:
				logger.Info("request", fields...)
			}
			return nil
		}
	}
}
