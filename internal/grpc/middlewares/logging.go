package middleware

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

func NewLoggingInterceptor(logger *logrus.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()

		resp, err := handler(ctx, req)

		entry := logger.WithFields(logrus.Fields{
			"request_id": RequestIDFromContext(ctx),
			"method":     info.FullMethod,
			"duration":   time.Since(start).String(),
			"code":       status.Code(err).String(),
		})
		if err != nil {
			entry.WithError(err).Warn("gRPC request failed")
		} else {
			entry.Info("gRPC request handled")
		}

		return resp, err
	}
}
