package models

import "time"

// FeedAmount is the number of registered feeds.
type FeedAmount struct {
	Amount int `json:"amount"`
}

// SummarizedFeedAmount is the number of items with a generated summary.
type SummarizedFeedAmount struct {
	Amount int `json:"amount"`
}

// ArticleAmount is an article count inside DetailedFeedStatsSummary.
type ArticleAmount struct {
	Amount int `json:"amount"`
}

// FeedStatsSummary pairs the feed count with the summarized count.
type FeedStatsSummary struct {
	FeedAmount     FeedAmount           `json:"feed_amount"`
	SummarizedFeed SummarizedFeedAmount `json:"summarized_feed"`
}

// DetailedFeedStatsSummary extends the summary with article level counts.
type DetailedFeedStatsSummary struct {
	FeedAmount           FeedAmount    `json:"feed_amount"`
	TotalArticles        ArticleAmount `json:"total_articles"`
	UnsummarizedArticles ArticleAmount `json:"unsummarized_articles"`
}

// UnreadCountResponse is the number of unread items.
type UnreadCountResponse struct {
	Count int `json:"count"`
}

// TrendDataPoint is one bucket of a trend series.
type TrendDataPoint struct {
	Timestamp    string `json:"timestamp"`
	Articles     int    `json:"articles"`
	Summarized   int    `json:"summarized"`
	FeedActivity int    `json:"feed_activity"`
}

// NewTrendDataPoint builds a point whose timestamp is t in UTC RFC 3339.
func NewTrendDataPoint(t time.Time, articles, summarized, feedActivity int) TrendDataPoint {
	return TrendDataPoint{
		Timestamp:    t.UTC().Format(time.RFC3339),
		Articles:     articles,
		Summarized:   summarized,
		FeedActivity: feedActivity,
	}
}

// Time parses the point's timestamp.
func (p TrendDataPoint) Time() (time.Time, error) {
	return time.Parse(time.RFC3339, p.Timestamp)
}

// TrendDataResponse is a labeled time series in chronological order.
type TrendDataResponse struct {
	DataPoints  []TrendDataPoint `json:"data_points"`
	Granularity Granularity      `json:"granularity"`
	Window      TimeWindow       `json:"window"`
}
