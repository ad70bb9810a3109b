package care

import (
	"slices"
	"strconv"
	"time"
)

// DiaryEntry is the slice of a diary record the engine needs.
type DiaryEntry struct {
	ID        uint
	Date      time.Time
	Emotion   string
	CreatedAt time.Time
}

// MonthlyStatus is the calendar grid for one month: which days have a diary
// and the emotion shown for each of them, keyed by day number.
type MonthlyStatus struct {
	DiaryDates []int             `json:"diaryDates"`
	Emotions   map[string]string `json:"emotions"`
}

// ComputeMonthlyStatus buckets diaries by day-of-month. Entries outside the
// month are ignored. When several diaries share a day, the most recently
// created one with a non-empty emotion decides the label (ties on CreatedAt
// go to the higher ID), so the result does not depend on input order.
func ComputeMonthlyStatus(year int, month time.Month, diaries []DiaryEntry) MonthlyStatus {
	status := MonthlyStatus{
		DiaryDates: make([]int, 0),
		Emotions:   make(map[string]string),
	}

	winners := make(map[int]DiaryEntry)
	for _, entry := range diaries {
		y, m, d := entry.Date.Date()
		if y != year || m != month {
			continue
		}

		current, seen := winners[d]
		if !seen {
			status.DiaryDates = append(status.DiaryDates, d)
			winners[d] = entry
			continue
		}
		if supersedes(entry, current) {
			winners[d] = entry
		}
	}

	slices.Sort(status.DiaryDates)

	for day, entry := range winners {
		if entry.Emotion == "" {
			continue
		}
		status.Emotions[strconv.Itoa(day)] = entry.Emotion
	}

	return status
}

// supersedes reports whether candidate should replace current as the
// representative diary of a day.
func supersedes(candidate, current DiaryEntry) bool {
	if (candidate.Emotion == "") != (current.Emotion == "") {
		return candidate.Emotion != ""
	}
	if !candidate.CreatedAt.Equal(current.CreatedAt) {
		return candidate.CreatedAt.After(current.CreatedAt)
	}
	return candidate.ID > current.ID
}
