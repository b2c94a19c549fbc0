package utils

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{"plain date", "2026-07-10", time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC), false},
		{"rfc3339 truncated", "2026-07-10T15:04:05Z", time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC), false},
		{"rfc3339 with offset", "2026-07-10T23:30:00+02:00", time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC), false},
		{"garbage", "10/07/2026", time.Time{}, true},
		{"empty", "", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr = %v", err, tt.wantErr)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNightsBetween(t *testing.T) {
	start := time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)
	if n := NightsBetween(start, start.AddDate(0, 0, 7)); n != 7 {
		t.Errorf("nights = %d, want 7", n)
	}
	if n := NightsBetween(start, start); n != 0 {
		t.Errorf("nights = %d, want 0", n)
	}
	// Time-of-day does not change the night count.
	noisy := time.Date(2026, 7, 17, 23, 59, 0, 0, time.UTC)
	if n := NightsBetween(start, noisy); n != 7 {
		t.Errorf("nights = %d, want 7", n)
	}
}

func TestRangesOverlap(t *testing.T) {
	d := func(day int) time.Time { return time.Date(2026, 7, day, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{"disjoint", 1, 5, 10, 15, false},
		{"back to back", 1, 10, 10, 15, false},
		{"back to back reversed", 10, 15, 1, 10, false},
		{"partial", 1, 12, 10, 15, true},
		{"contained", 11, 13, 10, 15, true},
		{"identical", 10, 15, 10, 15, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RangesOverlap(d(tt.aStart), d(tt.aEnd), d(tt.bStart), d(tt.bEnd))
			if got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}
