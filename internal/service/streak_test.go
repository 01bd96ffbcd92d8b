package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextStreak(t *testing.T) {
	now := time.Date(2024, 3, 14, 0, 30, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		ts := now.Add(d)
		return &ts
	}

	tests := []struct {
		name    string
		current int
		last    *time.Time
		want    int
	}{
		{"never active", 0, nil, 1},
		{"same day", 4, at(-10 * time.Minute), 4},
		{"same day without streak", 0, at(-10 * time.Minute), 1},
		{"yesterday late", 4, at(-2 * time.Hour), 5},
		{"two days ago", 4, at(-30 * time.Hour), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextStreak(tt.current, tt.last, now))
		})
	}
}

func TestWeekStartKey(t *testing.T) {
	assert.Equal(t, "2024-03-10", weekStartKey(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-03-10", weekStartKey(time.Date(2024, 3, 16, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, "2024-03-17", weekStartKey(time.Date(2024, 3, 17, 8, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2023-12-31", weekStartKey(time.Date(2024, 1, 3, 8, 0, 0, 0, time.UTC)))
}

func TestDayKeyUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	assert.Equal(t, "2024-03-13", dayKey(time.Date(2024, 3, 14, 6, 0, 0, 0, loc)))
}
