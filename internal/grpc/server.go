package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	middleware "github.com/Kaikei-e/Alt-sub017/internal/grpc/middlewares"
	"github.com/Kaikei-e/Alt-sub017/internal/models"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "feedstats.v1.FeedStatsService"

// ServerConfig holds configuration options for the gRPC server
type ServerConfig struct {
	RateLimit      float64 // Requests per second
	RateLimitBurst int     // Maximum burst size for rate limiting
}

// DefaultServerConfig returns a ServerConfig with sensible defaults
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		RateLimit:      5.0, // 5 requests per second
		RateLimitBurst: 10,  // Burst of 10 requests
	}
}

func (c ServerConfig) validate() error {
	if c.RateLimit <= 0 {
		return fmt.Errorf("rate limit must be positive, got %v", c.RateLimit)
	}
	if c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit burst must be positive, got %d", c.RateLimitBurst)
	}
	return nil
}

// StatsService is the business logic behind the gRPC methods.
type StatsService interface {
	FeedStats(ctx context.Context) (*models.FeedStatsSummary, error)
	DetailedFeedStats(ctx context.Context) (*models.DetailedFeedStatsSummary, error)
	UnreadCount(ctx context.Context, since time.Time) (*models.UnreadCountResponse, error)
	TrendStats(ctx context.Context, window string) (*models.TrendDataResponse, error)
}

// FeedStatsRequest carries no parameters.
type FeedStatsRequest struct{}

// DetailedFeedStatsRequest carries no parameters.
type DetailedFeedStatsRequest struct{}

// UnreadCountRequest asks for unread items since an RFC 3339 time.
// Empty means the start of the current UTC day.
type UnreadCountRequest struct {
	Since string `json:"since,omitempty"`
}

// TrendStatsRequest asks for the series of one TimeWindow.
type TrendStatsRequest struct {
	Window string `json:"window"`
}

// FeedStatsServer is the server API for the feed stats service.
type FeedStatsServer interface {
	GetFeedStats(context.Context, *FeedStatsRequest) (*models.FeedStatsSummary, error)
	GetDetailedFeedStats(context.Context, *DetailedFeedStatsRequest) (*models.DetailedFeedStatsSummary, error)
	GetUnreadCount(context.Context, *UnreadCountRequest) (*models.UnreadCountResponse, error)
	GetTrendStats(context.Context, *TrendStatsRequest) (*models.TrendDataResponse, error)
}

// FeedStatsService adapts a StatsService to the gRPC surface.
type FeedStatsService struct {
	stats     StatsService
	validator *RequestValidator
}

// NewFeedStatsService creates a new service instance
func NewFeedStatsService(stats StatsService) *FeedStatsService {
	return &FeedStatsService{
		stats:     stats,
		validator: NewRequestValidator(),
	}
}

func (s *FeedStatsService) GetFeedStats(ctx context.Context, _ *FeedStatsRequest) (*models.FeedStatsSummary, error) {
	summary, err := s.stats.FeedStats(ctx)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to fetch feed statistics")
	}
	return summary, nil
}

func (s *FeedStatsService) GetDetailedFeedStats(ctx context.Context, _ *DetailedFeedStatsRequest) (*models.DetailedFeedStatsSummary, error) {
	summary, err := s.stats.DetailedFeedStats(ctx)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to fetch feed statistics")
	}
	return summary, nil
}

func (s *FeedStatsService) GetUnreadCount(ctx context.Context, req *UnreadCountRequest) (*models.UnreadCountResponse, error) {
	since, err := s.validator.ValidateSince(req.Since)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	resp, err := s.stats.UnreadCount(ctx, since)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to fetch unread count")
	}
	return resp, nil
}

func (s *FeedStatsService) GetTrendStats(ctx context.Context, req *TrendStatsRequest) (*models.TrendDataResponse, error) {
	window, err := s.validator.ValidateTrend(req.Window)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	resp, err := s.stats.TrendStats(ctx, string(window))
	if err != nil {
		if errors.Is(err, models.ErrInvalidTimeWindow) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return nil, status.Errorf(codes.Internal, "failed to fetch trend statistics")
	}
	return resp, nil
}

// unaryHandler builds a grpc.MethodDesc handler the way generated code does,
// decoding into Req and routing through the server's interceptor.
func unaryHandler[Req any](method string, call func(FeedStatsServer, context.Context, *Req) (any, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	fullMethod := "/" + ServiceName + "/" + method
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(FeedStatsServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(FeedStatsServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// FeedStatsServiceDesc describes the feed stats service to grpc.Server.
var FeedStatsServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FeedStatsServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetFeedStats",
			Handler: unaryHandler("GetFeedStats", func(s FeedStatsServer, ctx context.Context, req *FeedStatsRequest) (any, error) {
				return s.GetFeedStats(ctx, req)
			}),
		},
		{
			MethodName: "GetDetailedFeedStats",
			Handler: unaryHandler("GetDetailedFeedStats", func(s FeedStatsServer, ctx context.Context, req *DetailedFeedStatsRequest) (any, error) {
				return s.GetDetailedFeedStats(ctx, req)
			}),
		},
		{
			MethodName: "GetUnreadCount",
			Handler: unaryHandler("GetUnreadCount", func(s FeedStatsServer, ctx context.Context, req *UnreadCountRequest) (any, error) {
				return s.GetUnreadCount(ctx, req)
			}),
		},
		{
			MethodName: "GetTrendStats",
			Handler: unaryHandler("GetTrendStats", func(s FeedStatsServer, ctx context.Context, req *TrendStatsRequest) (any, error) {
				return s.GetTrendStats(ctx, req)
			}),
		},
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterFeedStatsServer registers the service implementation with s.
func RegisterFeedStatsServer(s grpc.ServiceRegistrar, srv FeedStatsServer) {
	s.RegisterService(&FeedStatsServiceDesc, srv)
}

// gRPC Server Configuration without the middleware (for development and debug only)
func ConfigureGRPCServer(
	stats StatsService,
	opts ...grpc.ServerOption,
) *grpc.Server {
	srv := grpc.NewServer(opts...)
	RegisterFeedStatsServer(srv, NewFeedStatsService(stats))
	return srv
}

// SetupServer initializes and configures the gRPC server with all middleware.
// Metrics are registered with reg; health reports come from health.
func SetupServer(
	stats StatsService,
	config ServerConfig,
	logger *logrus.Logger,
	reg prometheus.Registerer,
	health *HealthChecker,
) (*grpc.Server, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	metrics, err := middleware.NewMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	// Create server with chained interceptors
	server := grpc.NewServer(
		grpc.UnaryInterceptor(
			chainUnaryInterceptors(
				// Add request ID first, then rate limit before any work is logged
				middleware.NewContextMiddleware(logger),
				middleware.NewRateLimitingInterceptor(config.RateLimit, config.RateLimitBurst),
				middleware.NewLoggingInterceptor(logger),
				middleware.NewMetricsInterceptor(metrics.Requests, metrics.Latency),
			),
		),
	)

	RegisterFeedStatsServer(server, NewFeedStatsService(stats))

	if health != nil {
		health.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
		health.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
		grpc_health_v1.RegisterHealthServer(server, health)
	}

	return server, nil
}

// chainUnaryInterceptors creates a single interceptor from multiple interceptors
func chainUnaryInterceptors(interceptors ...grpc.UnaryServerInterceptor) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		chain := handler
		for i := len(interceptors) - 1; i >= 0; i-- {
			interceptor := interceptors[i]
			chainedInterceptor := chain
			chain = func(currentCtx context.Context, currentReq interface{}) (interface{}, error) {
				return interceptor(currentCtx, currentReq, info, chainedInterceptor)
			}
		}
		return chain(ctx, req)
	}
}
