package utils

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate accepts "2006-01-02" or RFC3339 and truncates to midnight UTC.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return DateOnly(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOnly(t), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
}

// DateOnly strips the time-of-day component, keeping UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NightsBetween returns whole nights between two dates.
func NightsBetween(start, end time.Time) int {
	return int(DateOnly(end).Sub(DateOnly(start)).Hours() / 24)
}

// RangesOverlap reports whether [aStart,aEnd) and [bStart,bEnd) intersect.
// Back-to-back ranges (aEnd == bStart) do not overlap, so same-day turnover
// is allowed.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// PtrTime returns pointer to time.Time.
func PtrTime(t time.Time) *time.Time { return &t }
