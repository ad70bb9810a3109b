package locale

import (
	"fmt"

	"github.com/plantdiary/internal/care"
)

// MoodMessage is the companion's line for a diary recency state.
func MoodMessage(language string, mood care.Mood, recency care.Recency) string {
	switch mood {
	case care.MoodNew:
		return Pick(language, "Nice to meet you! Write your first diary.", "반가워요! 첫 일기를 써 주세요.")
	case care.MoodNormal:
		return Pick(language, "Thanks for writing today.", "오늘도 기록해 줘서 고마워요.")
	case care.MoodSad:
		return Pick(language,
			fmt.Sprintf("It's been %d day(s) since your last diary.", recency.Days),
			fmt.Sprintf("마지막 일기 이후 %d일이 지났어요.", recency.Days))
	default:
		return Pick(language,
			fmt.Sprintf("I've been waiting %d days... please come back.", recency.Days),
			fmt.Sprintf("%d일째 기다리고 있어요... 돌아와 주세요.", recency.Days))
	}
}

// StatusLabel is the short label shown next to a plant's watering status.
func StatusLabel(language string, status care.Status) string {
	switch status {
	case care.StatusNeedsCare:
		return Pick(language, "Needs water", "물이 필요해요")
	case care.StatusWarning:
		return Pick(language, "Soon", "곧 물 줄 때")
	default:
		return Pick(language, "Healthy", "건강해요")
	}
}
