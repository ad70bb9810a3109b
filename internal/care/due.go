package care

import "time"

// Status is the coarse care state shown next to a plant.
type Status string

const (
	StatusGood      Status = "good"
	StatusWarning   Status = "warning"
	StatusNeedsCare Status = "needs_care"
)

// warningWindowDays is the largest DaysUntilDue still reported as a warning.
const warningWindowDays = 2

// CareStatus is derived on every request and never stored.
type CareStatus struct {
	DaysUntilDue int    `json:"days_until_due"`
	OverdueDays  int    `json:"overdue_days"`
	Status       Status `json:"status"`
}

// StatusFor maps a DaysUntilDue value onto a Status.
func StatusFor(daysUntilDue int) Status {
	switch {
	case daysUntilDue <= 0:
		return StatusNeedsCare
	case daysUntilDue <= warningWindowDays:
		return StatusWarning
	default:
		return StatusGood
	}
}

// Evaluate applies interval semantics. A plant that was never cared for is
// due immediately. Non-interval rules are treated as a zero-day interval.
func Evaluate(rule Rule, lastCompletion *time.Time, today time.Time) CareStatus {
	if lastCompletion == nil {
		return CareStatus{Status: StatusNeedsCare}
	}

	cycle := 0
	if rule.Kind == KindIntervalDays {
		cycle = rule.Days
	}

	since := DaysBetween(*lastCompletion, today)
	// A completion logged in the future counts as done today.
	if since < 0 {
		since = 0
	}

	status := CareStatus{
		DaysUntilDue: max(0, cycle-since),
		OverdueDays:  max(0, since-cycle),
	}
	status.Status = StatusFor(status.DaysUntilDue)
	return status
}

// NextDue returns the civil day the next care falls due under interval
// semantics. Without any completion the plant is due today.
func NextDue(rule Rule, lastCompletion *time.Time, today time.Time) time.Time {
	if lastCompletion == nil || rule.Kind != KindIntervalDays {
		return Day(today)
	}
	return Day(*lastCompletion).AddDate(0, 0, rule.Days)
}

// DueOn is the calendar-anchor predicate: it reports whether today is one of
// the rule's recurring slots. It has no notion of overdue.
func DueOn(rule Rule, today time.Time) bool {
	switch rule.Kind {
	case KindEveryDay:
		return true
	case KindWeeklyOnWeekday:
		return today.Weekday() == rule.Weekday
	case KindMonthlyOnDayOfMonth:
		return today.Day() == rule.DayOfMonth
	default:
		return false
	}
}
