package care

import (
	"strconv"
	"strings"
	"time"
)

// CycleType is the stored recurrence category of a plant.
type CycleType string

const (
	CycleDaily     CycleType = "DAILY"
	CycleWeekly    CycleType = "WEEKLY"
	CycleBiweekly  CycleType = "BIWEEKLY"
	CycleTriweekly CycleType = "TRIWEEKLY"
	CycleMonthly   CycleType = "MONTHLY"
)

// DefaultIntervalDays is used whenever cycle_value cannot be read as a
// non-negative integer.
const DefaultIntervalDays = 7

// ParseCycleType normalises a stored cycle type. ok is false for unknown values.
func ParseCycleType(raw string) (CycleType, bool) {
	switch CycleType(strings.ToUpper(strings.TrimSpace(raw))) {
	case CycleDaily:
		return CycleDaily, true
	case CycleWeekly:
		return CycleWeekly, true
	case CycleBiweekly:
		return CycleBiweekly, true
	case CycleTriweekly:
		return CycleTriweekly, true
	case CycleMonthly:
		return CycleMonthly, true
	default:
		return "", false
	}
}

// Multiplier converts one cycle_value unit of this type into days.
func (t CycleType) Multiplier() int {
	switch t {
	case CycleWeekly:
		return 7
	case CycleBiweekly:
		return 14
	case CycleTriweekly:
		return 21
	case CycleMonthly:
		return 30
	default:
		return 1
	}
}

// RawCycle holds the three recurrence columns exactly as stored.
// The same fields mean different things depending on the caller, so they are
// only ever turned into a Rule through IntervalRule or AnchorRule.
type RawCycle struct {
	Type  string
	Value string
	Unit  string
}

// RuleKind tags the variant held by a Rule.
type RuleKind int

const (
	// KindIntervalDays: due once N days have elapsed since the last care.
	KindIntervalDays RuleKind = iota + 1
	// KindEveryDay: due on every calendar day.
	KindEveryDay
	// KindWeeklyOnWeekday: due on one weekday each week.
	KindWeeklyOnWeekday
	// KindMonthlyOnDayOfMonth: due on one day-of-month each month.
	KindMonthlyOnDayOfMonth
)

func (k RuleKind) String() string {
	switch k {
	case KindIntervalDays:
		return "interval_days"
	case KindEveryDay:
		return "every_day"
	case KindWeeklyOnWeekday:
		return "weekly_on_weekday"
	case KindMonthlyOnDayOfMonth:
		return "monthly_on_day_of_month"
	default:
		return "unknown"
	}
}

// Rule is a resolved recurrence rule. Only the field matching Kind is meaningful.
type Rule struct {
	Kind       RuleKind
	Days       int
	Weekday    time.Weekday
	DayOfMonth int
	// Defaulted is set when the stored value was malformed and a fallback applied.
	Defaulted bool
}

// IntervalDays builds an interval rule directly.
func IntervalDays(n int) Rule {
	if n < 0 {
		n = 0
	}
	return Rule{Kind: KindIntervalDays, Days: n}
}

// WeeklyOnWeekday builds a weekday anchor rule.
func WeeklyOnWeekday(day time.Weekday) Rule {
	return Rule{Kind: KindWeeklyOnWeekday, Weekday: day}
}

// MonthlyOnDayOfMonth builds a day-of-month anchor rule.
func MonthlyOnDayOfMonth(day int) Rule {
	return Rule{Kind: KindMonthlyOnDayOfMonth, DayOfMonth: day}
}

// IntervalRule reads the stored cycle with interval semantics:
// cycle_value multiplied by the type's day multiplier.
func IntervalRule(raw RawCycle) Rule {
	value, ok := parseCycleValue(raw.Value)
	if !ok {
		rule := IntervalDays(DefaultIntervalDays)
		rule.Defaulted = true
		return rule
	}

	cycleType, _ := ParseCycleType(raw.Type)
	return IntervalDays(value * cycleType.Multiplier())
}

// AnchorRule reads the stored cycle with calendar-anchor semantics: for
// WEEKLY the value is a weekday (0=Sunday..6=Saturday), for MONTHLY a
// day-of-month, and DAILY is due every day. Other types and out-of-range
// values cannot be anchored and report ok=false.
func AnchorRule(raw RawCycle) (Rule, bool) {
	cycleType, known := ParseCycleType(raw.Type)
	if !known {
		return Rule{}, false
	}

	if cycleType == CycleDaily {
		return Rule{Kind: KindEveryDay}, true
	}

	value, ok := parseCycleValue(raw.Value)
	if !ok {
		return Rule{}, false
	}

	switch cycleType {
	case CycleWeekly:
		if value > 6 {
			return Rule{}, false
		}
		return WeeklyOnWeekday(time.Weekday(value)), true
	case CycleMonthly:
		if value < 1 || value > 31 {
			return Rule{}, false
		}
		return MonthlyOnDayOfMonth(value), true
	default:
		return Rule{}, false
	}
}

func parseCycleValue(raw string) (int, bool) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value < 0 {
		return 0, false
	}
	return value, true
}
