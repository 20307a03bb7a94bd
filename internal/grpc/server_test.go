package server_test

import (
	"context"
	"errors"
	"io"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/Kaikei-e/Alt-sub017/internal/database/mocks"
	server "github.com/Kaikei-e/Alt-sub017/internal/grpc"
	"github.com/Kaikei-e/Alt-sub017/internal/models"
	"github.com/Kaikei-e/Alt-sub017/internal/stats"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newStatsService(t *testing.T, repo *mocks.MockStatsRepository) *stats.Service {
	t.Helper()
	svc, err := stats.NewService(repo, quietLogger(), stats.Options{DisableCache: true})
	require.NoError(t, err)
	return svc
}

func TestGetTrendStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockStatsRepository(ctrl)
	svc := server.NewFeedStatsService(newStatsService(t, mockRepo))

	tests := []struct {
		name          string
		request       *server.TrendStatsRequest
		setupMock     func()
		expectedCode  codes.Code
		expectedError string
	}{
		{
			name:    "Success case",
			request: &server.TrendStatsRequest{Window: "7d"},
			setupMock: func() {
				mockRepo.EXPECT().
					FetchTrendStats(gomock.Any(), gomock.Any(), models.GranularityDaily).
					Return([]models.TrendDataPoint{
						models.NewTrendDataPoint(time.Now().Add(-48*time.Hour), 5, 2, 1),
						models.NewTrendDataPoint(time.Now().Add(-24*time.Hour), 8, 3, 0),
					}, nil)
			},
			expectedCode: codes.OK,
		},
		{
			name:    "Default window",
			request: &server.TrendStatsRequest{},
			setupMock: func() {
				mockRepo.EXPECT().
					FetchTrendStats(gomock.Any(), gomock.Any(), models.GranularityHourly).
					Return([]models.TrendDataPoint{models.NewTrendDataPoint(time.Now(), 1, 0, 0)}, nil)
			},
			expectedCode: codes.OK,
		},
		{
			name:          "Invalid window",
			request:       &server.TrendStatsRequest{Window: "invalid"},
			setupMock:     func() {},
			expectedCode:  codes.InvalidArgument,
			expectedError: "invalid window: invalid",
		},
		{
			name:    "Repository failure",
			request: &server.TrendStatsRequest{Window: "4h"},
			setupMock: func() {
				mockRepo.EXPECT().
					FetchTrendStats(gomock.Any(), gomock.Any(), models.GranularityHourly).
					Return(nil, errors.New("connection reset"))
			},
			expectedCode:  codes.Internal,
			expectedError: "failed to fetch trend statistics",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			resp, err := svc.GetTrendStats(context.Background(), tt.request)

			if tt.expectedCode != codes.OK {
				require.Error(t, err)
				st, ok := status.FromError(err)
				require.True(t, ok)
				assert.Equal(t, tt.expectedCode, st.Code())
				assert.Contains(t, st.Message(), tt.expectedError)
				assert.NotContains(t, st.Message(), "connection reset")
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				require.NotNil(t, resp)
				assert.NotEmpty(t, resp.DataPoints)
				assert.True(t, resp.Granularity.Valid())
				assert.Equal(t, resp.Window.Granularity(), resp.Granularity)
			}
		})
	}
}

func TestGetUnreadCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockStatsRepository(ctrl)
	svc := server.NewFeedStatsService(newStatsService(t, mockRepo))

	since := time.Now().Add(-2 * time.Hour).UTC().Truncate(time.Second)
	mockRepo.EXPECT().FetchUnreadCount(gomock.Any(), since).Return(6, nil)

	resp, err := svc.GetUnreadCount(context.Background(), &server.UnreadCountRequest{Since: since.Format(time.RFC3339)})
	require.NoError(t, err)
	assert.Equal(t, 6, resp.Count)

	resp, err = svc.GetUnreadCount(context.Background(), &server.UnreadCountRequest{Since: "yesterday"})
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Nil(t, resp)
}

func TestGetFeedStatsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockStatsRepository(ctrl)
	svc := server.NewFeedStatsService(newStatsService(t, mockRepo))

	mockRepo.EXPECT().FetchFeedAmount(gomock.Any()).Return(0, errors.New("db down"))

	resp, err := svc.GetFeedStats(context.Background(), &server.FeedStatsRequest{})
	require.Error(t, err)
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.Nil(t, resp)
}

func TestSetupServer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockStatsRepository(ctrl)
	statsSvc := newStatsService(t, mockRepo)

	srv, err := server.SetupServer(statsSvc, server.DefaultServerConfig(), quietLogger(), prometheus.NewRegistry(), nil)
	require.NoError(t, err)
	require.NotNil(t, srv)

	// Test with invalid config
	invalidConfig := server.ServerConfig{
		RateLimit: -1,
	}
	srv, err = server.SetupServer(statsSvc, invalidConfig, quietLogger(), prometheus.NewRegistry(), nil)
	require.Error(t, err)
	require.Nil(t, srv)
}

func TestServerOverBufconn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockStatsRepository(ctrl)
	statsSvc := newStatsService(t, mockRepo)

	var unhealthy atomic.Bool
	health := server.NewHealthChecker(func(ctx context.Context) error {
		if unhealthy.Load() {
			return errors.New("database unreachable")
		}
		return nil
	})

	srv, err := server.SetupServer(statsSvc, server.DefaultServerConfig(), quietLogger(), prometheus.NewRegistry(), health)
	require.NoError(t, err)

	lis := bufconn.Listen(1024 * 1024)
	go func() {
		_ = srv.Serve(lis)
	}()
	defer srv.Stop()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
			return lis.Dial()
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := server.NewClient(conn)

	t.Run("feed stats", func(t *testing.T) {
		mockRepo.EXPECT().FetchFeedAmount(gomock.Any()).Return(10, nil)
		mockRepo.EXPECT().FetchSummarizedArticlesCount(gomock.Any()).Return(4, nil)

		resp, err := client.GetFeedStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 10, resp.FeedAmount.Amount)
		assert.Equal(t, 4, resp.SummarizedFeed.Amount)
	})

	t.Run("detailed feed stats", func(t *testing.T) {
		mockRepo.EXPECT().FetchFeedAmount(gomock.Any()).Return(3, nil)
		mockRepo.EXPECT().FetchTotalArticlesCount(gomock.Any()).Return(30, nil)
		mockRepo.EXPECT().FetchUnsummarizedArticlesCount(gomock.Any()).Return(12, nil)

		resp, err := client.GetDetailedFeedStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.DetailedFeedStatsSummary{
			FeedAmount:           models.FeedAmount{Amount: 3},
			TotalArticles:        models.ArticleAmount{Amount: 30},
			UnsummarizedArticles: models.ArticleAmount{Amount: 12},
		}, *resp)
	})

	t.Run("empty trend series", func(t *testing.T) {
		mockRepo.EXPECT().FetchTrendStats(gomock.Any(), gomock.Any(), models.GranularityDaily).Return(nil, nil)

		resp, err := client.GetTrendStats(ctx, &server.TrendStatsRequest{Window: "3d"})
		require.NoError(t, err)
		assert.NotNil(t, resp.DataPoints)
		assert.Empty(t, resp.DataPoints)
		assert.Equal(t, models.Window3d, resp.Window)
		assert.Equal(t, models.GranularityDaily, resp.Granularity)
	})

	t.Run("invalid window", func(t *testing.T) {
		_, err := client.GetTrendStats(ctx, &server.TrendStatsRequest{Window: "1y"})
		require.Error(t, err)
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("health", func(t *testing.T) {
		healthClient := grpc_health_v1.NewHealthClient(conn)

		resp, err := healthClient.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: server.ServiceName})
		require.NoError(t, err)
		assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.Status)

		unhealthy.Store(true)
		resp, err = healthClient.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: server.ServiceName})
		require.NoError(t, err)
		assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, resp.Status)

		_, err = healthClient.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: "unknown"})
		assert.Equal(t, codes.NotFound, status.Code(err))
	})
}
