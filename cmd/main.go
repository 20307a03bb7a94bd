package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"

	"github.com/Kaikei-e/Alt-sub017/internal/config"
	"github.com/Kaikei-e/Alt-sub017/internal/database"
	server "github.com/Kaikei-e/Alt-sub017/internal/grpc"
	"github.com/Kaikei-e/Alt-sub017/internal/rest"
	"github.com/Kaikei-e/Alt-sub017/internal/scheduler"
	"github.com/Kaikei-e/Alt-sub017/internal/stats"
)

const shutdownTimeout = 10 * time.Second

// Command feedstats serves feed statistics over gRPC and HTTP.
//
// The service supports:
//   - Feed and summary counts, with article level detail
//   - Unread counts since a point in time
//   - Trend series over 4h, 24h, 3d and 7d windows
//   - PostgreSQL storage with embedded migrations
//   - Prometheus metrics
//
// Usage:
//
//	feedstats [flags]
//
// The flags are:
//
//	-config string
//	      path to config file (default "config.yaml")
//	-migrate
//	      apply database migrations before serving
func main() {
	// Parse command line flags
	flags := parseFlags()

	// Load configuration
	appConfig, err := loadConfig(flags.ConfigPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize structured logger
	logger := newLogger(appConfig.Logging)

	if flags.Migrate {
		version, applied, err := database.Migrate(appConfig.Database.DSN())
		if err != nil {
			logger.Fatalf("Failed to migrate database: %v", err)
		}
		logger.WithFields(logrus.Fields{
			"version": version,
			"applied": applied,
		}).Info("Database schema is up to date")
	}

	repo, err := database.NewPostgresRepo(appConfig.Database.DSN())
	if err != nil {
		logger.Fatalf("Failed to create repository: %v", err)
	}
	repo.SetPoolLimits(appConfig.Database.MaxConnections, 30*time.Minute)

	statsService, err := stats.NewService(repo, logger, stats.Options{
		CacheSize: appConfig.Cache.Size,
		CacheTTL:  appConfig.Cache.TTL,
	})
	if err != nil {
		logger.Fatalf("Failed to create stats service: %v", err)
	}

	// Create a context that will be canceled on shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	health := server.NewHealthChecker(statsService.Ping)

	grpcServer, err := server.SetupServer(statsService, server.ServerConfig{
		RateLimit:      appConfig.RateLimit.RPS,
		RateLimitBurst: appConfig.RateLimit.Burst,
	}, logger, registry, health)
	if err != nil {
		logger.Fatalf("Failed to setup server: %v", err)
	}

	httpServer := rest.NewServer(statsService, rest.Config{
		CacheMaxAge:    statsService.CacheTTL(),
		RateLimit:      appConfig.RateLimit.RPS,
		RateLimitBurst: appConfig.RateLimit.Burst,
		RequestTimeout: appConfig.Server.RequestTimeout,
		Gatherer:       registry,
		Ping:           statsService.Ping,
	}, logger)

	var refresher *scheduler.Scheduler
	if appConfig.Scheduler.Enabled {
		refresher = scheduler.NewScheduler(ctx, statsService, appConfig.Scheduler.Spec, logger)
	}

	// Start listening
	grpcAddr := fmt.Sprintf("%s:%d", appConfig.Server.Host, appConfig.Server.GRPCPort)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		logger.Fatalf("Failed to listen: %v", err)
	}

	// Start background services
	errChan := make(chan error, 3)

	if refresher != nil {
		// Warm the cache before the first tick
		go refresher.RunOnce()

		if err := refresher.Start(); err != nil {
			logger.Fatalf("Failed to start scheduler: %v", err)
		}
	}

	go func() {
		logger.WithField("addr", grpcAddr).Info("Starting gRPC server")
		if err := grpcServer.Serve(lis); err != nil {
			errChan <- fmt.Errorf("grpc server error: %w", err)
		}
	}()

	httpAddr := fmt.Sprintf("%s:%d", appConfig.Server.Host, appConfig.Server.HTTPPort)
	go func() {
		logger.WithField("addr", httpAddr).Info("Starting HTTP server")
		if err := httpServer.Start(httpAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// Wait for a signal or a failing server
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal %v, initiating shutdown", sig)
	case err := <-errChan:
		logger.WithError(err).Error("Service error, initiating shutdown")
	}

	cancel()
	shutdown(grpcServer, httpServer, refresher, health, repo, logger)
}

type Flags struct {
	ConfigPath string
	Migrate    bool
}

func parseFlags() *Flags {
	flags := &Flags{}

	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "Path to config file")
	flag.BoolVar(&flags.Migrate, "migrate", false, "Apply database migrations before serving")

	flag.Parse()

	return flags
}

// loadConfig falls back to defaults and APP_* variables when the default
// config file is absent.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && path == "config.yaml" {
		return config.Default()
	}
	return config.Load(path)
}

func newLogger(cfg config.LoggingConfig) *logrus.Logger {
	logger := logrus.New()
	if strings.EqualFold(cfg.Format, "text") {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logger.WithField("level", cfg.Level).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// Handle graceful shutdown
func shutdown(
	grpcServer *grpc.Server,
	httpServer *echo.Echo,
	refresher *scheduler.Scheduler,
	health *server.HealthChecker,
	repo *database.PostgresRepo,
	logger *logrus.Logger,
) {
	logger.Info("Gracefully stopping servers...")

	health.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.WithError(err).Warn("HTTP server did not stop cleanly")
	}

	grpcServer.GracefulStop()

	if refresher != nil {
		refresher.Stop()
	}

	// Clean up the repository
	if err := repo.Close(); err != nil {
		logger.WithError(err).Warn("Failed to close repository")
	}
	logger.Info("Servers stopped")
}
