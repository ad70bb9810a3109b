package care

import "time"

// Recency is the tri-state "days since the last diary": Known is false when
// the user never wrote one, which is distinct from zero days.
type Recency struct {
	Days  int
	Known bool
}

// NoRecency is the state of a user without any diary.
var NoRecency = Recency{}

// DaysAgo builds a known recency value.
func DaysAgo(days int) Recency {
	return Recency{Days: max(0, days), Known: true}
}

// ComputeRecency counts the civil days between the last diary and today.
// Diaries dated after today count as written today.
func ComputeRecency(lastDiary *time.Time, today time.Time) Recency {
	if lastDiary == nil {
		return NoRecency
	}
	return DaysAgo(DaysBetween(*lastDiary, today))
}

// Mood is the companion character's state derived from diary recency.
type Mood string

const (
	MoodNew    Mood = "new"
	MoodNormal Mood = "normal"
	MoodSad    Mood = "sad"
	MoodSick   Mood = "sick"
)

const (
	sadAfterDays  = 1
	sickAfterDays = 6
)

// ClassifyMood maps recency onto a mood: never written is new, today is
// normal, one to five days is sad and six or more is sick.
func ClassifyMood(r Recency) Mood {
	switch {
	case !r.Known:
		return MoodNew
	case r.Days < sadAfterDays:
		return MoodNormal
	case r.Days < sickAfterDays:
		return MoodSad
	default:
		return MoodSick
	}
}

// Image names the artwork shown for the mood. A brand-new user gets the
// happy placeholder.
func (m Mood) Image() string {
	if m == MoodNew {
		return "happy"
	}
	return string(m)
}
