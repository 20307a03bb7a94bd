// Package api fetches feed statistics from a running service over HTTP and
// validates every payload it receives.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/Kaikei-e/Alt-sub017/internal/models"
)

var (
	ErrRequest           = errors.New("error making stats request")
	ErrStatus            = errors.New("error status from stats service")
	ErrInconsistentTrend = errors.New("trend response does not match requested window")
)

const defaultTimeout = 30 * time.Second

// StatsClient reads the /v1/feeds endpoints of a feed stats service.
type StatsClient struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	limiter    *rate.Limiter
}

// Option configures a StatsClient.
type Option func(*StatsClient)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(c *http.Client) Option {
	return func(s *StatsClient) {
		s.httpClient = c
	}
}

// WithTimeout bounds every request. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(s *StatsClient) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithRateLimit throttles outgoing requests to rps with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *StatsClient) {
		s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func NewStatsClient(baseURL string, opts ...Option) *StatsClient {
	c := &StatsClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		timeout:    defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *StatsClient) FetchFeedStats(ctx context.Context) (*models.FeedStatsSummary, error) {
	var out *models.FeedStatsSummary
	err := c.get(ctx, "/v1/feeds/stats", nil, func(body io.Reader) (err error) {
		out, err = DecodeFeedStatsSummary(body)
		return err
	})
	return out, err
}

func (c *StatsClient) FetchDetailedFeedStats(ctx context.Context) (*models.DetailedFeedStatsSummary, error) {
	var out *models.DetailedFeedStatsSummary
	err := c.get(ctx, "/v1/feeds/stats/detailed", nil, func(body io.Reader) (err error) {
		out, err = DecodeDetailedFeedStatsSummary(body)
		return err
	})
	return out, err
}

// FetchUnreadCount counts unread items since the given time. A zero since
// leaves the choice to the server, which uses the start of the UTC day.
func (c *StatsClient) FetchUnreadCount(ctx context.Context, since time.Time) (*models.UnreadCountResponse, error) {
	query := url.Values{}
	if !since.IsZero() {
		query.Set("since", since.UTC().Format(time.RFC3339))
	}

	var out *models.UnreadCountResponse
	err := c.get(ctx, "/v1/feeds/count/unreads", query, func(body io.Reader) (err error) {
		out, err = DecodeUnreadCount(body)
		return err
	})
	return out, err
}

// FetchTrendStats requests one window and checks that the response
// describes that window at its expected granularity.
func (c *StatsClient) FetchTrendStats(ctx context.Context, window models.TimeWindow) (*models.TrendDataResponse, error) {
	if !window.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidTimeWindow, string(window))
	}

	query := url.Values{}
	query.Set("window", string(window))

	var out *models.TrendDataResponse
	err := c.get(ctx, "/v1/feeds/stats/trends", query, func(body io.Reader) (err error) {
		out, err = DecodeTrendDataResponse(body)
		return err
	})
	if err != nil {
		return nil, err
	}

	if out.Window != window {
		return nil, fmt.Errorf("%w: asked for %s, got %s", ErrInconsistentTrend, window, out.Window)
	}
	if out.Granularity != window.Granularity() {
		return nil, fmt.Errorf("%w: window %s reported %s granularity", ErrInconsistentTrend, window, out.Granularity)
	}
	return out, nil
}

func (c *StatsClient) get(ctx context.Context, path string, query url.Values, decode func(io.Reader) error) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %v", ErrRequest, err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequest, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: got %d", ErrStatus, resp.StatusCode)
	}

	return decode(resp.Body)
}
