package middleware

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

type contextKey string

const requestIDKey contextKey = "requestID"

// RequestIDHeader is the metadata key a caller may use to supply its own id.
const RequestIDHeader = "x-request-id"

// NewContextMiddleware assigns every request an id and echoes it back in
// the response header. A header that cannot be sent is logged at debug
// level and the call proceeds.
func NewContextMiddleware(logger *logrus.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		requestID := incomingRequestID(ctx)
		if requestID == "" {
			requestID = generateRequestID()
		}
		if err := grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, requestID)); err != nil {
			logger.WithFields(logrus.Fields{
				"request_id": requestID,
				"method":     info.FullMethod,
			}).WithError(err).Debug("Failed to send request id header")
		}

		ctx = context.WithValue(ctx, requestIDKey, requestID)
		return handler(ctx, req)
	}
}

// RequestIDFromContext returns the id assigned by NewContextMiddleware.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func incomingRequestID(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if ids := md.Get(RequestIDHeader); len(ids) > 0 {
		if _, err := uuid.Parse(ids[0]); err == nil {
			return ids[0]
		}
	}
	return ""
}

func generateRequestID() string {
	return uuid.NewString()
}
