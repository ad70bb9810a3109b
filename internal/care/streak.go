package care

import "time"

// ComputeStreak counts the trailing run of days with a diary, scanning from
// the newest element (last) backward. presence is ordered oldest first.
func ComputeStreak(presence [7]bool) int {
	streak := 0
	for i := len(presence) - 1; i >= 0; i-- {
		if !presence[i] {
			break
		}
		streak++
	}
	return streak
}

// WeeklySummary backs the "this week" widget.
type WeeklySummary struct {
	Days        []string `json:"days"`
	Presence    []bool   `json:"presence"`
	Streak      int      `json:"streak"`
	WrittenDays int      `json:"written_days"`
}

// ComputeWeeklySummary folds diary dates into the last-seven-days view.
func ComputeWeeklySummary(dates []time.Time, today time.Time) WeeklySummary {
	presence := PresenceLastSevenDays(dates, today)
	days := LastSevenDays(today)

	summary := WeeklySummary{
		Days:     make([]string, 0, len(days)),
		Presence: presence[:],
		Streak:   ComputeStreak(presence),
	}
	for i, day := range days {
		summary.Days = append(summary.Days, day.Format(DateLayout))
		if presence[i] {
			summary.WrittenDays++
		}
	}
	return summary
}
