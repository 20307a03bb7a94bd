package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/Kaikei-e/Alt-sub017/internal/models"
)

// ErrInvalidPayload is wrapped by every decoding failure.
var ErrInvalidPayload = errors.New("invalid stats payload")

type amountWire struct {
	Amount json.RawMessage `json:"amount"`
}

type feedStatsWire struct {
	FeedAmount     *amountWire `json:"feed_amount"`
	SummarizedFeed *amountWire `json:"summarized_feed"`
}

type detailedFeedStatsWire struct {
	FeedAmount           *amountWire `json:"feed_amount"`
	TotalArticles        *amountWire `json:"total_articles"`
	UnsummarizedArticles *amountWire `json:"unsummarized_articles"`
}

type unreadCountWire struct {
	Count json.RawMessage `json:"count"`
}

type trendPointWire struct {
	Timestamp    *string         `json:"timestamp"`
	Articles     json.RawMessage `json:"articles"`
	Summarized   json.RawMessage `json:"summarized"`
	FeedActivity json.RawMessage `json:"feed_activity"`
}

type trendWire struct {
	DataPoints  *[]*trendPointWire `json:"data_points"`
	Granularity *string            `json:"granularity"`
	Window      *string            `json:"window"`
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidPayload, fmt.Sprintf(format, args...))
}

// decodeWire reads exactly one JSON value; anything after it but
// whitespace is rejected.
func decodeWire(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		return invalid("%v", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return invalid("trailing data after payload")
	}
	return nil
}

// parseCount accepts only a JSON integer literal that is non-negative.
func parseCount(raw json.RawMessage, field string) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, invalid("missing field %s", field)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, invalid("field %s: %v", field, err)
	}
	num, ok := v.(json.Number)
	if !ok {
		return 0, invalid("field %s must be a number", field)
	}
	n, err := num.Int64()
	if err != nil {
		return 0, invalid("field %s must be an integer, got %s", field, num)
	}
	if n < 0 {
		return 0, invalid("field %s must not be negative, got %d", field, n)
	}
	if n > math.MaxInt {
		return 0, invalid("field %s overflows int", field)
	}
	return int(n), nil
}

func parseAmount(a *amountWire, field string) (int, error) {
	if a == nil {
		return 0, invalid("missing field %s", field)
	}
	return parseCount(a.Amount, field+".amount")
}

// DecodeFeedStatsSummary strictly decodes a FeedStatsSummary.
func DecodeFeedStatsSummary(r io.Reader) (*models.FeedStatsSummary, error) {
	var wire feedStatsWire
	if err := decodeWire(r, &wire); err != nil {
		return nil, err
	}

	feeds, err := parseAmount(wire.FeedAmount, "feed_amount")
	if err != nil {
		return nil, err
	}
	summarized, err := parseAmount(wire.SummarizedFeed, "summarized_feed")
	if err != nil {
		return nil, err
	}

	return &models.FeedStatsSummary{
		FeedAmount:     models.FeedAmount{Amount: feeds},
		SummarizedFeed: models.SummarizedFeedAmount{Amount: summarized},
	}, nil
}

// DecodeDetailedFeedStatsSummary strictly decodes a DetailedFeedStatsSummary.
func DecodeDetailedFeedStatsSummary(r io.Reader) (*models.DetailedFeedStatsSummary, error) {
	var wire detailedFeedStatsWire
	if err := decodeWire(r, &wire); err != nil {
		return nil, err
	}

	feeds, err := parseAmount(wire.FeedAmount, "feed_amount")
	if err != nil {
		return nil, err
	}
	total, err := parseAmount(wire.TotalArticles, "total_articles")
	if err != nil {
		return nil, err
	}
	unsummarized, err := parseAmount(wire.UnsummarizedArticles, "unsummarized_articles")
	if err != nil {
		return nil, err
	}

	return &models.DetailedFeedStatsSummary{
		FeedAmount:           models.FeedAmount{Amount: feeds},
		TotalArticles:        models.ArticleAmount{Amount: total},
		UnsummarizedArticles: models.ArticleAmount{Amount: unsummarized},
	}, nil
}

// DecodeUnreadCount strictly decodes an UnreadCountResponse.
func DecodeUnreadCount(r io.Reader) (*models.UnreadCountResponse, error) {
	var wire unreadCountWire
	if err := decodeWire(r, &wire); err != nil {
		return nil, err
	}

	count, err := parseCount(wire.Count, "count")
	if err != nil {
		return nil, err
	}
	return &models.UnreadCountResponse{Count: count}, nil
}

// DecodeTrendDataResponse strictly decodes a TrendDataResponse. Timestamps
// must be RFC 3339 and strictly increasing. Whether granularity suits the
// window is not checked here; see StatsClient.FetchTrendStats.
func DecodeTrendDataResponse(r io.Reader) (*models.TrendDataResponse, error) {
	var wire trendWire
	if err := decodeWire(r, &wire); err != nil {
		return nil, err
	}

	if wire.DataPoints == nil {
		return nil, invalid("missing field data_points")
	}
	if wire.Granularity == nil {
		return nil, invalid("missing field granularity")
	}
	if wire.Window == nil {
		return nil, invalid("missing field window")
	}

	granularity := models.Granularity(*wire.Granularity)
	if !granularity.Valid() {
		return nil, invalid("unknown granularity %q", *wire.Granularity)
	}
	window := models.TimeWindow(*wire.Window)
	if !window.Valid() {
		return nil, invalid("unknown window %q", *wire.Window)
	}

	points := make([]models.TrendDataPoint, 0, len(*wire.DataPoints))
	var prev time.Time
	for i, p := range *wire.DataPoints {
		point, ts, err := decodeTrendPoint(p, i)
		if err != nil {
			return nil, err
		}
		if i > 0 && !ts.After(prev) {
			return nil, invalid("data_points[%d] is not after data_points[%d]", i, i-1)
		}
		prev = ts
		points = append(points, point)
	}

	return &models.TrendDataResponse{
		DataPoints:  points,
		Granularity: granularity,
		Window:      window,
	}, nil
}

func decodeTrendPoint(p *trendPointWire, i int) (models.TrendDataPoint, time.Time, error) {
	prefix := fmt.Sprintf("data_points[%d]", i)
	if p == nil {
		return models.TrendDataPoint{}, time.Time{}, invalid("%s is null", prefix)
	}
	if p.Timestamp == nil {
		return models.TrendDataPoint{}, time.Time{}, invalid("missing field %s.timestamp", prefix)
	}
	ts, err := time.Parse(time.RFC3339, *p.Timestamp)
	if err != nil {
		return models.TrendDataPoint{}, time.Time{}, invalid("%s.timestamp %q is not RFC 3339", prefix, *p.Timestamp)
	}

	articles, err := parseCount(p.Articles, prefix+".articles")
	if err != nil {
		return models.TrendDataPoint{}, time.Time{}, err
	}
	summarized, err := parseCount(p.Summarized, prefix+".summarized")
	if err != nil {
		return models.TrendDataPoint{}, time.Time{}, err
	}
	activity, err := parseCount(p.FeedActivity, prefix+".feed_activity")
	if err != nil {
		return models.TrendDataPoint{}, time.Time{}, err
	}

	return models.TrendDataPoint{
		Timestamp:    *p.Timestamp,
		Articles:     articles,
		Summarized:   summarized,
		FeedActivity: activity,
	}, ts, nil
}
