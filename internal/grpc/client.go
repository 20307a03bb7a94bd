package server

import (
	"context"

	"google.golang.org/grpc"

	"github.com/Kaikei-e/Alt-sub017/internal/models"
)

// Client calls the feed stats service over an established connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) GetFeedStats(ctx context.Context, opts ...grpc.CallOption) (*models.FeedStatsSummary, error) {
	out := new(models.FeedStatsSummary)
	if err := c.invoke(ctx, "GetFeedStats", &FeedStatsRequest{}, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetDetailedFeedStats(ctx context.Context, opts ...grpc.CallOption) (*models.DetailedFeedStatsSummary, error) {
	out := new(models.DetailedFeedStatsSummary)
	if err := c.invoke(ctx, "GetDetailedFeedStats", &DetailedFeedStatsRequest{}, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetUnreadCount(ctx context.Context, req *UnreadCountRequest, opts ...grpc.CallOption) (*models.UnreadCountResponse, error) {
	out := new(models.UnreadCountResponse)
	if err := c.invoke(ctx, "GetUnreadCount", req, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetTrendStats(ctx context.Context, req *TrendStatsRequest, opts ...grpc.CallOption) (*models.TrendDataResponse, error) {
	out := new(models.TrendDataResponse)
	if err := c.invoke(ctx, "GetTrendStats", req, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...)
}
