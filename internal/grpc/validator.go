package server

import (
	"fmt"
	"time"

	"github.com/Kaikei-e/Alt-sub017/internal/models"
)

const maxSinceAge = 365 * 24 * time.Hour

type RequestValidator struct {
	now func() time.Time
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{now: time.Now}
}

// ValidateTrend checks the requested window. An empty window selects the default.
func (v *RequestValidator) ValidateTrend(window string) (models.TimeWindow, error) {
	if window == "" {
		return models.DefaultTimeWindow, nil
	}
	w, err := models.ParseTimeWindow(window)
	if err != nil {
		return "", fmt.Errorf("invalid window: %s", window)
	}
	return w, nil
}

// ValidateSince parses an optional RFC 3339 lower bound for unread counts.
// An empty value yields the zero time.
func (v *RequestValidator) ValidateSince(since string) (time.Time, error) {
	if since == "" {
		return time.Time{}, nil
	}

	t, err := time.Parse(time.RFC3339, since)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid since: %s", since)
	}

	now := v.now()
	if t.After(now) {
		return time.Time{}, fmt.Errorf("since must not be in the future")
	}
	if now.Sub(t) > maxSinceAge {
		return time.Time{}, fmt.Errorf("since exceeds maximum allowed age")
	}

	return t, nil
}
