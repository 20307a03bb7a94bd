package rest

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// LoggingMiddleware logs one structured line per request.
func LoggingMiddleware(logger *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			entry := logger.WithFields(logrus.Fields{
				"request_id": res.Header().Get(echo.HeaderXRequestID),
				"method":     req.Method,
				"path":       c.Path(),
				"status":     res.Status,
				"duration":   time.Since(start).String(),
			})

			switch {
			case res.Status >= 500:
				entry.Error("HTTP request failed")
			case res.Status >= 400:
				entry.Warn("HTTP request rejected")
			default:
				entry.Info("HTTP request handled")
			}

			return nil
		}
	}
}
