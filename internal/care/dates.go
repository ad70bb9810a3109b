package care

import "time"

// DateLayout is the calendar-day format shared by the API and the engine.
const DateLayout = "2006-01-02"

// Day truncates t to midnight of its civil day, keeping the location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

const secondsPerDay = 24 * 60 * 60

// DaysBetween returns the number of whole civil days from `from` to `to`.
// The result is negative when `to` falls before `from`. Both values are read
// in their own location, so a DST switch never produces a fractional day.
// Day numbers come from Unix seconds, so spans beyond time.Duration's range
// are exact.
func DaysBetween(from, to time.Time) int {
	return int(civilDayNumber(to) - civilDayNumber(from))
}

// civilDayNumber counts days since 1970-01-01 for t's civil date.
func civilDayNumber(t time.Time) int64 {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay
}

// MonthRange returns the first and last civil day of the given month.
func MonthRange(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)
	return first, last
}

// LastSevenDays lists the seven civil days ending with today, oldest first.
func LastSevenDays(today time.Time) [7]time.Time {
	var days [7]time.Time
	base := Day(today)
	for i := 0; i < 7; i++ {
		days[i] = base.AddDate(0, 0, i-6)
	}
	return days
}

// PresenceLastSevenDays marks which of the last seven days (oldest first)
// have at least one of the given dates.
func PresenceLastSevenDays(dates []time.Time, today time.Time) [7]bool {
	var presence [7]bool
	for _, d := range dates {
		offset := DaysBetween(d, today)
		if offset < 0 || offset > 6 {
			continue
		}
		presence[6-offset] = true
	}
	return presence
}
