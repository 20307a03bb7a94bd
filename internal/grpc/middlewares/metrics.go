package middleware

import (
	"context"
	"path"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// Metrics are the collectors recorded for every unary call.
type Metrics struct {
	Requests *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "feedstats",
			Subsystem: "grpc",
			Name:      "requests_total",
			Help:      "Number of gRPC requests by method and status code.",
		}, []string{"method", "code"}),
		Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "feedstats",
			Subsystem: "grpc",
			Name:      "request_duration_seconds",
			Help:      "gRPC request latency by method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}

	for _, c := range []prometheus.Collector{m.Requests, m.Latency} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func NewMetricsInterceptor(
	requests *prometheus.CounterVec,
	latency *prometheus.HistogramVec,
) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()

		resp, err := handler(ctx, req)

		// Record metrics
		duration := time.Since(start).Seconds()
		method := path.Base(info.FullMethod)

		requests.WithLabelValues(method, status.Code(err).String()).Inc()
		latency.WithLabelValues(method).Observe(duration)

		return resp, err
	}
}
