package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/Kaikei-e/Alt-sub017/internal/models"
)

const invalidWindowMessage = "Invalid window parameter. Valid values: 4h, 24h, 3d, 7d"

func setCacheHeaders(c echo.Context, cfg Config, etag string) {
	c.Response().Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(cfg.CacheMaxAge.Seconds())))
	c.Response().Header().Set("ETag", etag)
}

func handleFeedStats(svc StatsService, cfg Config, logger *logrus.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		setCacheHeaders(c, cfg, `"feeds-stats"`)

		stats, err := svc.FeedStats(c.Request().Context())
		if err != nil {
			logger.WithError(err).Error("Error fetching feed stats")
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch feed statistics"})
		}

		return c.JSON(http.StatusOK, stats)
	}
}

func handleDetailedFeedStats(svc StatsService, cfg Config, logger *logrus.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		setCacheHeaders(c, cfg, `"feeds-stats-detailed"`)

		stats, err := svc.DetailedFeedStats(c.Request().Context())
		if err != nil {
			logger.WithError(err).Error("Error fetching detailed feed stats")
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch feed statistics"})
		}

		return c.JSON(http.StatusOK, stats)
	}
}

func handleTrendStats(svc StatsService, cfg Config, logger *logrus.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		window := c.QueryParam("window")
		if window == "" {
			window = string(models.DefaultTimeWindow)
		}

		w, err := models.ParseTimeWindow(window)
		if err != nil {
			logger.WithField("window", window).Warn("Invalid window parameter")
			return c.JSON(http.StatusBadRequest, map[string]string{"error": invalidWindowMessage})
		}

		setCacheHeaders(c, cfg, fmt.Sprintf(`"trends-%s"`, w))

		result, err := svc.TrendStats(c.Request().Context(), string(w))
		if err != nil {
			if errors.Is(err, models.ErrInvalidTimeWindow) {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": invalidWindowMessage})
			}
			logger.WithError(err).WithField("window", w).Error("Error fetching trend stats")
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch trend statistics"})
		}

		return c.JSON(http.StatusOK, result)
	}
}

func handleUnreadCount(svc StatsService, logger *logrus.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var since time.Time
		if raw := c.QueryParam("since"); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				logger.WithError(err).WithField("since", raw).Warn("Invalid since parameter")
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid since parameter"})
			}
			since = parsed
		}

		c.Response().Header().Set("Cache-Control", "no-cache")

		resp, err := svc.UnreadCount(c.Request().Context(), since)
		if err != nil {
			logger.WithError(err).Error("Error fetching unread count")
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch unread count"})
		}

		return c.JSON(http.StatusOK, resp)
	}
}

func handleHealth(ping func(ctx context.Context) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		if ping != nil {
			if err := ping(c.Request().Context()); err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			}
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}
