package models

import (
	"errors"
	"fmt"
	"time"
)

// TimeWindow selects the span covered by a trend query.
type TimeWindow string

const (
	Window4h  TimeWindow = "4h"
	Window24h TimeWindow = "24h"
	Window3d  TimeWindow = "3d"
	Window7d  TimeWindow = "7d"

	DefaultTimeWindow = Window24h
)

// Granularity is the bucket size of a trend series.
type Granularity string

const (
	GranularityHourly Granularity = "hourly"
	GranularityDaily  Granularity = "daily"
)

var ErrInvalidTimeWindow = errors.New("invalid time window")

var windowSpans = map[TimeWindow]time.Duration{
	Window4h:  4 * time.Hour,
	Window24h: 24 * time.Hour,
	Window3d:  3 * 24 * time.Hour,
	Window7d:  7 * 24 * time.Hour,
}

// AllTimeWindows returns every supported window, shortest first.
func AllTimeWindows() []TimeWindow {
	return []TimeWindow{Window4h, Window24h, Window3d, Window7d}
}

// ParseTimeWindow converts a wire value into a TimeWindow.
func ParseTimeWindow(s string) (TimeWindow, error) {
	w := TimeWindow(s)
	if !w.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeWindow, s)
	}
	return w, nil
}

func (w TimeWindow) Valid() bool {
	_, ok := windowSpans[w]
	return ok
}

// Duration returns the span of the window, or zero for an unknown window.
func (w TimeWindow) Duration() time.Duration {
	return windowSpans[w]
}

// Granularity returns the bucket size that pairs with the window:
// hourly up to a day, daily beyond.
func (w TimeWindow) Granularity() Granularity {
	if w.Duration() > 24*time.Hour {
		return GranularityDaily
	}
	return GranularityHourly
}

func (w TimeWindow) String() string {
	return string(w)
}

func (g Granularity) Valid() bool {
	return g == GranularityHourly || g == GranularityDaily
}

// Trunc returns the date_trunc field name for the granularity.
func (g Granularity) Trunc() string {
	if g == GranularityDaily {
		return "day"
	}
	return "hour"
}

// Step returns the bucket width.
func (g Granularity) Step() time.Duration {
	if g == GranularityDaily {
		return 24 * time.Hour
	}
	return time.Hour
}
