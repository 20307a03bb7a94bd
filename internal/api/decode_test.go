package api

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kaikei-e/Alt-sub017/internal/models"
)

func TestDecodeFeedStatsSummary(t *testing.T) {
	got, err := DecodeFeedStatsSummary(strings.NewReader(`{"feed_amount":{"amount":10},"summarized_feed":{"amount":4},"extra":true}`))
	require.NoError(t, err)
	assert.Equal(t, 10, got.FeedAmount.Amount)
	assert.Equal(t, 4, got.SummarizedFeed.Amount)

	tests := []struct {
		name string
		body string
	}{
		{"missing summarized_feed", `{"feed_amount":{"amount":10}}`},
		{"null feed_amount", `{"feed_amount":null,"summarized_feed":{"amount":4}}`},
		{"missing amount", `{"feed_amount":{},"summarized_feed":{"amount":4}}`},
		{"negative", `{"feed_amount":{"amount":-1},"summarized_feed":{"amount":4}}`},
		{"fractional", `{"feed_amount":{"amount":1.5},"summarized_feed":{"amount":4}}`},
		{"string count", `{"feed_amount":{"amount":"10"},"summarized_feed":{"amount":4}}`},
		{"not an object", `[1,2]`},
		{"malformed", `{"feed_amount":`},
		{"trailing data", `{"feed_amount":{"amount":10},"summarized_feed":{"amount":4}} garbage`},
		{"second object", `{"feed_amount":{"amount":10},"summarized_feed":{"amount":4}}{"feed_amount":{"amount":-1}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeFeedStatsSummary(strings.NewReader(tt.body))
			assert.ErrorIs(t, err, ErrInvalidPayload)
		})
	}
}

func TestDecodeDetailedFeedStatsSummary(t *testing.T) {
	got, err := DecodeDetailedFeedStatsSummary(strings.NewReader(
		`{"feed_amount":{"amount":3},"total_articles":{"amount":120},"unsummarized_articles":{"amount":0}}`))
	require.NoError(t, err)
	assert.Equal(t, models.DetailedFeedStatsSummary{
		FeedAmount:           models.FeedAmount{Amount: 3},
		TotalArticles:        models.ArticleAmount{Amount: 120},
		UnsummarizedArticles: models.ArticleAmount{Amount: 0},
	}, *got)

	for _, body := range []string{
		`{"feed_amount":{"amount":3},"total_articles":{"amount":120}}`,
		`{"feed_amount":{"amount":3},"total_articles":{"amount":120},"unsummarized_articles":{"amount":0}} trailing`,
	} {
		_, err := DecodeDetailedFeedStatsSummary(strings.NewReader(body))
		assert.ErrorIs(t, err, ErrInvalidPayload, body)
	}
}

func TestDecodeUnreadCount(t *testing.T) {
	got, err := DecodeUnreadCount(strings.NewReader(`{"count":0}`))
	require.NoError(t, err)
	assert.Equal(t, 0, got.Count)

	got, err = DecodeUnreadCount(strings.NewReader("{\"count\":4}\n"))
	require.NoError(t, err)
	assert.Equal(t, 4, got.Count)

	for _, body := range []string{
		`{}`,
		`{"count":null}`,
		`{"count":-3}`,
		`{"count":true}`,
		`{"count":2.0001}`,
		`{"count":1} {"count":-5} garbage`,
		`{"count":1} garbage`,
	} {
		_, err := DecodeUnreadCount(strings.NewReader(body))
		assert.ErrorIs(t, err, ErrInvalidPayload, body)
	}
}

func TestDecodeTrendDataResponse(t *testing.T) {
	t.Run("valid series", func(t *testing.T) {
		got, err := DecodeTrendDataResponse(strings.NewReader(`{
			"data_points": [
				{"timestamp":"2024-01-01T00:00:00Z","articles":5,"summarized":2,"feed_activity":1},
				{"timestamp":"2024-01-01T01:00:00Z","articles":0,"summarized":0,"feed_activity":0}
			],
			"granularity":"hourly",
			"window":"4h"
		}`))
		require.NoError(t, err)
		require.Len(t, got.DataPoints, 2)
		assert.Equal(t, "2024-01-01T00:00:00Z", got.DataPoints[0].Timestamp)
		assert.Equal(t, 5, got.DataPoints[0].Articles)
		assert.Equal(t, models.GranularityHourly, got.Granularity)
		assert.Equal(t, models.Window4h, got.Window)
	})

	t.Run("empty series", func(t *testing.T) {
		got, err := DecodeTrendDataResponse(strings.NewReader(`{"data_points":[],"granularity":"daily","window":"7d"}`))
		require.NoError(t, err)
		assert.NotNil(t, got.DataPoints)
		assert.Empty(t, got.DataPoints)
	})

	t.Run("granularity is not checked against window", func(t *testing.T) {
		_, err := DecodeTrendDataResponse(strings.NewReader(`{"data_points":[],"granularity":"daily","window":"4h"}`))
		assert.NoError(t, err)
	})

	invalidBodies := []struct {
		name string
		body string
	}{
		{"missing data_points", `{"granularity":"daily","window":"7d"}`},
		{"null data_points", `{"data_points":null,"granularity":"daily","window":"7d"}`},
		{"missing granularity", `{"data_points":[],"window":"7d"}`},
		{"missing window", `{"data_points":[],"granularity":"daily"}`},
		{"unknown granularity", `{"data_points":[],"granularity":"weekly","window":"7d"}`},
		{"unknown window", `{"data_points":[],"granularity":"daily","window":"30d"}`},
		{"null point", `{"data_points":[null],"granularity":"daily","window":"7d"}`},
		{"bad timestamp", `{"data_points":[{"timestamp":"yesterday","articles":1,"summarized":0,"feed_activity":0}],"granularity":"daily","window":"7d"}`},
		{"missing timestamp", `{"data_points":[{"articles":1,"summarized":0,"feed_activity":0}],"granularity":"daily","window":"7d"}`},
		{"no feed_activity", `{"data_points":[{"timestamp":"2024-01-01T00:00:00Z","articles":1,"summarized":0}],"granularity":"daily","window":"7d"}`},
		{"negative articles", `{"data_points":[{"timestamp":"2024-01-01T00:00:00Z","articles":-1,"summarized":0,"feed_activity":0}],"granularity":"daily","window":"7d"}`},
		{"out of order", `{"data_points":[
			{"timestamp":"2024-01-02T00:00:00Z","articles":1,"summarized":0,"feed_activity":0},
			{"timestamp":"2024-01-01T00:00:00Z","articles":1,"summarized":0,"feed_activity":0}
		],"granularity":"daily","window":"7d"}`},
		{"duplicate bucket", `{"data_points":[
			{"timestamp":"2024-01-01T00:00:00Z","articles":1,"summarized":0,"feed_activity":0},
			{"timestamp":"2024-01-01T00:00:00Z","articles":1,"summarized":0,"feed_activity":0}
		],"granularity":"daily","window":"7d"}`},
		{"trailing data", `{"data_points":[],"granularity":"daily","window":"7d"} ]`},
	}
	for _, tt := range invalidBodies {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTrendDataResponse(strings.NewReader(tt.body))
			assert.ErrorIs(t, err, ErrInvalidPayload)
		})
	}
}
