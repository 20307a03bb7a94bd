package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kaikei-e/Alt-sub017/internal/models"
)

func init() {
	color.NoColor = true
}

func TestPrintTrendTable(t *testing.T) {
	var buf bytes.Buffer
	err := printTrendTable(&buf, &models.TrendDataResponse{
		DataPoints: []models.TrendDataPoint{
			models.NewTrendDataPoint(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 5, 2, 1),
			models.NewTrendDataPoint(time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC), 7, 3, 0),
		},
		Granularity: models.GranularityHourly,
		Window:      models.Window4h,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Window 4h (hourly)")
	assert.Contains(t, out, "2024-01-01T00:00:00Z")
	assert.Contains(t, out, "2024-01-01T01:00:00Z")
}

func TestPrintTrendTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := printTrendTable(&buf, &models.TrendDataResponse{
		DataPoints:  []models.TrendDataPoint{},
		Granularity: models.GranularityDaily,
		Window:      models.Window7d,
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No activity in this window.")
}

func TestPrintUnreadCount(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printUnreadCount(&buf, &models.UnreadCountResponse{Count: 3}))
	assert.Equal(t, "Unread: 3\n", buf.String())
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, &models.UnreadCountResponse{Count: 3}))
	assert.JSONEq(t, `{"count":3}`, buf.String())
}

func TestTrendsCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3d", r.URL.Query().Get("window"))
		fmt.Fprint(w, `{"data_points":[{"timestamp":"2024-01-01T00:00:00Z","articles":9,"summarized":4,"feed_activity":2}],"granularity":"daily","window":"3d"}`)
	}))
	defer server.Close()

	viper.Set("server", server.URL)
	viper.Set("json", true)
	defer viper.Reset()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"trends", "--window", "3d"})
	require.NoError(t, rootCmd.Execute())

	assert.JSONEq(t,
		`{"data_points":[{"timestamp":"2024-01-01T00:00:00Z","articles":9,"summarized":4,"feed_activity":2}],"granularity":"daily","window":"3d"}`,
		buf.String())
}

func TestTrendsCommandRejectsWindow(t *testing.T) {
	rootCmd.SetArgs([]string{"trends", "--window", "1y"})
	err := rootCmd.Execute()
	assert.ErrorContains(t, err, "valid values are 4h, 24h, 3d, 7d")
}
