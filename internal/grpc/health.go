package server

import (
	"context"
	"sync"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// HealthChecker implements the gRPC health checking protocol. A registered
// service reports NOT_SERVING whenever the probe fails.
type HealthChecker struct {
	grpc_health_v1.UnimplementedHealthServer
	mu     sync.RWMutex
	status map[string]grpc_health_v1.HealthCheckResponse_ServingStatus
	probe  func(ctx context.Context) error
}

// NewHealthChecker creates a checker. probe may be nil.
func NewHealthChecker(probe func(ctx context.Context) error) *HealthChecker {
	return &HealthChecker{
		status: make(map[string]grpc_health_v1.HealthCheckResponse_ServingStatus),
		probe:  probe,
	}
}

func (h *HealthChecker) Check(ctx context.Context, req *grpc_health_v1.HealthCheckRequest) (*grpc_health_v1.HealthCheckResponse, error) {
	h.mu.RLock()
	st, ok := h.status[req.Service]
	h.mu.RUnlock()

	if !ok {
		return nil, status.Error(codes.NotFound, "unknown service")
	}

	if st == grpc_health_v1.HealthCheckResponse_SERVING && h.probe != nil {
		if err := h.probe(ctx); err != nil {
			st = grpc_health_v1.HealthCheckResponse_NOT_SERVING
		}
	}

	return &grpc_health_v1.HealthCheckResponse{
		Status: st,
	}, nil
}

func (h *HealthChecker) Watch(req *grpc_health_v1.HealthCheckRequest, stream grpc_health_v1.Health_WatchServer) error {
	return status.Error(codes.Unimplemented, "watching is not supported")
}

// SetServingStatus sets the serving status of a service
func (h *HealthChecker) SetServingStatus(service string, status grpc_health_v1.HealthCheckResponse_ServingStatus) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.status[service] = status
}

// Shutdown marks every registered service NOT_SERVING.
func (h *HealthChecker) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for service := range h.status {
		h.status[service] = grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}
}
