// Package rest serves the feed statistics as JSON over HTTP.
package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/Kaikei-e/Alt-sub017/internal/models"
)

// StatsService is the business logic behind the handlers.
type StatsService interface {
	FeedStats(ctx context.Context) (*models.FeedStatsSummary, error)
	DetailedFeedStats(ctx context.Context) (*models.DetailedFeedStatsSummary, error)
	UnreadCount(ctx context.Context, since time.Time) (*models.UnreadCountResponse, error)
	TrendStats(ctx context.Context, window string) (*models.TrendDataResponse, error)
}

// Config controls the HTTP surface.
type Config struct {
	// CacheMaxAge is advertised in Cache-Control on the stats endpoints.
	CacheMaxAge    time.Duration
	RateLimit      float64
	RateLimitBurst int
	RequestTimeout time.Duration
	// Gatherer backs /metrics; nil disables the endpoint.
	Gatherer prometheus.Gatherer
	// Ping backs /health; nil always reports healthy.
	Ping func(ctx context.Context) error
}

// NewServer builds an echo instance with every route and middleware installed.
func NewServer(svc StatsService, cfg Config, logger *logrus.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	RegisterRoutes(e, svc, cfg, logger)
	return e
}

func RegisterRoutes(e *echo.Echo, svc StatsService, cfg Config, logger *logrus.Logger) {
	// 1. Request ID first so every log line carries it
	e.Use(middleware.RequestID())

	// 2. Recover panics before anything else can observe them
	e.Use(middleware.Recover())

	// 3. Rate limiting per client IP
	if cfg.RateLimit > 0 {
		e.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
				Rate:  rate.Limit(cfg.RateLimit),
				Burst: cfg.RateLimitBurst,
			}),
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/health" || c.Path() == "/metrics"
			},
			DenyHandler: func(c echo.Context, _ string, _ error) error {
				return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "Rate limit exceeded"})
			},
		}))
	}

	// 4. Request timeout
	if cfg.RequestTimeout > 0 {
		e.Use(middleware.ContextTimeout(cfg.RequestTimeout))
	}

	// 5. Logging
	e.Use(LoggingMiddleware(logger))

	e.GET("/health", handleHealth(cfg.Ping))
	if cfg.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	feeds := e.Group("/v1/feeds")
	feeds.GET("/stats", handleFeedStats(svc, cfg, logger))
	feeds.GET("/stats/detailed", handleDetailedFeedStats(svc, cfg, logger))
	feeds.GET("/stats/trends", handleTrendStats(svc, cfg, logger))
	feeds.GET("/count/unreads", handleUnreadCount(svc, logger))
}
