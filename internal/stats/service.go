// Package stats computes the feed statistics served over gRPC and REST.
package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Kaikei-e/Alt-sub017/internal/database"
	"github.com/Kaikei-e/Alt-sub017/internal/models"
)

var ErrQueryFailed = errors.New("stats query failed")

const (
	keyFeedStats         = "feed_stats"
	keyDetailedFeedStats = "detailed_feed_stats"
	keyTrendPrefix       = "trend:"
	keyUnreadPrefix      = "unread:"
)

// Options tunes the service. Zero values fall back to DefaultOptions.
type Options struct {
	CacheSize int
	CacheTTL  time.Duration
	// DisableCache turns off result caching entirely.
	DisableCache bool
	Now          func() time.Time
}

// DefaultOptions returns Options with sensible defaults
func DefaultOptions() Options {
	return Options{
		CacheSize: 128,
		CacheTTL:  5 * time.Minute,
		Now:       time.Now,
	}
}

// Service answers statistics questions from a StatsRepository.
type Service struct {
	repo   database.StatsRepository
	logger *logrus.Logger
	cache  *resultCache
	now    func() time.Time
	ttl    time.Duration
}

// NewService creates a new service instance
func NewService(repo database.StatsRepository, logger *logrus.Logger, opts Options) (*Service, error) {
	defaults := DefaultOptions()
	if opts.CacheSize == 0 {
		opts.CacheSize = defaults.CacheSize
	}
	if opts.CacheTTL == 0 {
		opts.CacheTTL = defaults.CacheTTL
	}
	if opts.Now == nil {
		opts.Now = defaults.Now
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	s := &Service{
		repo:   repo,
		logger: logger,
		now:    opts.Now,
		ttl:    opts.CacheTTL,
	}

	if !opts.DisableCache {
		cache, err := newResultCache(opts.CacheSize, opts.CacheTTL, opts.Now)
		if err != nil {
			return nil, fmt.Errorf("failed to create result cache: %w", err)
		}
		s.cache = cache
	}

	return s, nil
}

// CacheTTL is how long a computed result stays fresh.
func (s *Service) CacheTTL() time.Duration {
	return s.ttl
}

// FeedStats returns the feed count paired with the summarized count.
func (s *Service) FeedStats(ctx context.Context) (*models.FeedStatsSummary, error) {
	if v, ok := s.cache.get(keyFeedStats); ok {
		summary := v.(models.FeedStatsSummary)
		return &summary, nil
	}

	summary, err := s.computeFeedStats(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.add(keyFeedStats, *summary)
	return summary, nil
}

func (s *Service) computeFeedStats(ctx context.Context) (*models.FeedStatsSummary, error) {
	feeds, err := s.repo.FetchFeedAmount(ctx)
	if err != nil {
		return nil, s.queryError("feed amount", err)
	}

	summarized, err := s.repo.FetchSummarizedArticlesCount(ctx)
	if err != nil {
		return nil, s.queryError("summarized articles count", err)
	}

	s.logger.WithFields(logrus.Fields{
		"feed_count":       feeds,
		"summarized_count": summarized,
	}).Debug("Feed stats computed")

	return &models.FeedStatsSummary{
		FeedAmount:     models.FeedAmount{Amount: feeds},
		SummarizedFeed: models.SummarizedFeedAmount{Amount: summarized},
	}, nil
}

// DetailedFeedStats returns feed, total article and unsummarized article
// counts. The three counts are fetched concurrently; the first failure wins.
func (s *Service) DetailedFeedStats(ctx context.Context) (*models.DetailedFeedStatsSummary, error) {
	if v, ok := s.cache.get(keyDetailedFeedStats); ok {
		summary := v.(models.DetailedFeedStatsSummary)
		return &summary, nil
	}

	summary, err := s.computeDetailedFeedStats(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.add(keyDetailedFeedStats, *summary)
	return summary, nil
}

func (s *Service) computeDetailedFeedStats(ctx context.Context) (*models.DetailedFeedStatsSummary, error) {
	var feeds, total, unsummarized int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.repo.FetchFeedAmount(gctx)
		if err != nil {
			return s.queryError("feed amount", err)
		}
		feeds = n
		return nil
	})
	g.Go(func() error {
		n, err := s.repo.FetchTotalArticlesCount(gctx)
		if err != nil {
			return s.queryError("total articles count", err)
		}
		total = n
		return nil
	})
	g.Go(func() error {
		n, err := s.repo.FetchUnsummarizedArticlesCount(gctx)
		if err != nil {
			return s.queryError("unsummarized articles count", err)
		}
		unsummarized = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"feed_count":           feeds,
		"total_articles_count": total,
		"unsummarized_count":   unsummarized,
	}).Debug("Detailed feed stats computed")

	return &models.DetailedFeedStatsSummary{
		FeedAmount:           models.FeedAmount{Amount: feeds},
		TotalArticles:        models.ArticleAmount{Amount: total},
		UnsummarizedArticles: models.ArticleAmount{Amount: unsummarized},
	}, nil
}

// UnreadCount returns the number of unread feeds created since the given
// time. A zero since means the start of the current UTC day.
func (s *Service) UnreadCount(ctx context.Context, since time.Time) (*models.UnreadCountResponse, error) {
	if since.IsZero() {
		since = StartOfDay(s.now())
	}

	key := keyUnreadPrefix + since.UTC().Format(time.RFC3339Nano)
	if v, ok := s.cache.get(key); ok {
		resp := v.(models.UnreadCountResponse)
		return &resp, nil
	}

	count, err := s.repo.FetchUnreadCount(ctx, since)
	if err != nil {
		return nil, s.queryError("unread count", err)
	}

	resp := models.UnreadCountResponse{Count: count}
	s.cache.add(key, resp)
	return &resp, nil
}

// TrendStats returns the activity series for a window. The granularity of the
// response is always the one implied by the window.
func (s *Service) TrendStats(ctx context.Context, window string) (*models.TrendDataResponse, error) {
	w, err := models.ParseTimeWindow(window)
	if err != nil {
		return nil, err
	}

	if v, ok := s.cache.get(keyTrendPrefix + string(w)); ok {
		return copyTrend(v.(models.TrendDataResponse)), nil
	}

	resp, err := s.computeTrendStats(ctx, w)
	if err != nil {
		return nil, err
	}
	s.cache.add(keyTrendPrefix+string(w), *copyTrend(*resp))
	return resp, nil
}

func (s *Service) computeTrendStats(ctx context.Context, w models.TimeWindow) (*models.TrendDataResponse, error) {
	granularity := w.Granularity()
	since := s.now().Add(-w.Duration())

	points, err := s.repo.FetchTrendStats(ctx, since, granularity)
	if err != nil {
		return nil, s.queryError("trend stats", err)
	}
	if points == nil {
		points = []models.TrendDataPoint{}
	}

	s.logger.WithFields(logrus.Fields{
		"window":      w,
		"granularity": granularity,
		"data_points": len(points),
	}).Debug("Trend stats computed")

	return &models.TrendDataResponse{
		DataPoints:  points,
		Granularity: granularity,
		Window:      w,
	}, nil
}

// Refresh recomputes the summaries and every trend window and replaces the
// cached results. It keeps going past individual failures and returns them
// joined.
func (s *Service) Refresh(ctx context.Context) error {
	var errs []error

	if summary, err := s.computeFeedStats(ctx); err != nil {
		errs = append(errs, err)
	} else {
		s.cache.add(keyFeedStats, *summary)
	}

	if detailed, err := s.computeDetailedFeedStats(ctx); err != nil {
		errs = append(errs, err)
	} else {
		s.cache.add(keyDetailedFeedStats, *detailed)
	}

	for _, w := range models.AllTimeWindows() {
		resp, err := s.computeTrendStats(ctx, w)
		if err != nil {
			errs = append(errs, fmt.Errorf("window %s: %w", w, err))
			continue
		}
		s.cache.add(keyTrendPrefix+string(w), *resp)
	}

	s.logger.WithFields(logrus.Fields{
		"failures":      len(errs),
		"cache_entries": s.cache.len(),
	}).Info("Stats cache refreshed")

	return errors.Join(errs...)
}

// Ping reports whether the backing store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *Service) queryError(what string, err error) error {
	s.logger.WithError(err).WithField("query", what).Error("Stats query failed")
	return fmt.Errorf("%w: %s: %v", ErrQueryFailed, what, err)
}

// StartOfDay truncates t to midnight UTC.
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func copyTrend(in models.TrendDataResponse) *models.TrendDataResponse {
	out := in
	out.DataPoints = make([]models.TrendDataPoint, len(in.DataPoints))
	copy(out.DataPoints, in.DataPoints)
	return &out
}
