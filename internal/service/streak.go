package service

import (
	"gamify_backend/internal/util"
	"time"
)

// dayKey 按 UTC 日历日
func dayKey(t time.Time) string {
	return t.UTC().Format(util.DateFormat)
}

// weekStartKey 以周日为一周的第一天
func weekStartKey(t time.Time) string {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -int(t.Weekday()))
	return start.Format(util.DateFormat)
}

// nextStreak 同一天不变（至少为 1），昨天活跃则 +1，否则从 1 重新开始
func nextStreak(current int, lastActivity *time.Time, now time.Time) int {
	if lastActivity == nil {
		return 1
	}

	today := now.UTC().Truncate(24 * time.Hour)
	last := lastActivity.UTC().Truncate(24 * time.Hour)

	switch {
	case last.Equal(today):
		if current < 1 {
			return 1
		}
		return current
	case last.Equal(today.AddDate(0, 0, -1)):
		return current + 1
	default:
		return 1
	}
}
