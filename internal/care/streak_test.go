package care

import (
	"slices"
	"testing"
	"time"
)

func TestComputeStreak(t *testing.T) {
	tests := []struct {
		name     string
		presence [7]bool
		want     int
	}{
		{name: "broken earlier", presence: [7]bool{true, true, false, true, true, true, true}, want: 4},
		{name: "none", presence: [7]bool{}, want: 0},
		{name: "all", presence: [7]bool{true, true, true, true, true, true, true}, want: 7},
		{name: "missed today", presence: [7]bool{true, true, true, true, true, true, false}, want: 0},
		{name: "only today", presence: [7]bool{false, false, false, false, false, false, true}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeStreak(tt.presence); got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestPresenceLastSevenDays(t *testing.T) {
	today := time.Date(2024, 5, 10, 15, 30, 0, 0, time.UTC)
	dates := []time.Time{
		date(2024, 5, 10),
		date(2024, 5, 10),
		date(2024, 5, 9),
		date(2024, 5, 4),
		date(2024, 5, 3),
		date(2024, 5, 11),
	}

	got := PresenceLastSevenDays(dates, today)
	want := [7]bool{true, false, false, false, false, true, true}
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestComputeWeeklySummary(t *testing.T) {
	today := date(2024, 5, 10)
	dates := []time.Time{date(2024, 5, 10), date(2024, 5, 9), date(2024, 5, 7)}

	got := ComputeWeeklySummary(dates, today)
	if got.Streak != 2 {
		t.Fatalf("expected streak 2, got %d", got.Streak)
	}
	if got.WrittenDays != 3 {
		t.Fatalf("expected 3 written days, got %d", got.WrittenDays)
	}
	wantDays := []string{"2024-05-04", "2024-05-05", "2024-05-06", "2024-05-07", "2024-05-08", "2024-05-09", "2024-05-10"}
	if !slices.Equal(got.Days, wantDays) {
		t.Fatalf("unexpected days: %v", got.Days)
	}
}
