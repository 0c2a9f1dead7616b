package logging

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// New builds the process logger: human readable in development, JSON otherwise
func New(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// RequestLogger logs every HTTP request with its status and latency
func RequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// WebSocket connections are logged by the hub
			if c.IsWebSocket() {
				return next(c)
			}

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
			}

			switch status := c.Response().Status; {
			case status >= 500:
				logger.Error("Request failed", append(fields, zap.Error(err))...)
			case status >= 400:
				logger.Warn("Request rejected", fields...)
			default:
				logger.Info("Request served", fields...)
			}

			return nil
		}
	}
}
