package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/plantdiary/internal/locale"
)

// TodayTasks 返回今天需要浇水和晒太阳的植物
func (a *API) TodayTasks(c *gin.Context) {
	tasks, err := a.care.TodayTasks(currentUserID(c))
	if err != nil {
		respondServerError(c, "failed to compute today's tasks", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":  a.care.Today().Format(dateFormat),
		"today": tasks,
	})
}

// ScheduledToday 返回按星期几/每月几号排到今天的植物
func (a *API) ScheduledToday(c *gin.Context) {
	plants, err := a.care.ScheduledToday(currentUserID(c))
	if err != nil {
		respondServerError(c, "failed to compute schedule", err)
		return
	}

	items := make([]gin.H, 0, len(plants))
	for _, plant := range plants {
		items = append(items, gin.H{
			"plant_id":    plant.ID,
			"plant_name":  plant.Name,
			"cycle_type":  plant.Cycle.Type,
			"cycle_value": plant.Cycle.Value,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"date":   a.care.Today().Format(dateFormat),
		"plants": items,
	})
}

// MonthlyStatus 返回某月的日记日期与心情，year/month 缺省为当月
func (a *API) MonthlyStatus(c *gin.Context) {
	today := a.care.Today()

	year, ok := parseQueryInt(c.Query("year"), today.Year())
	if !ok || !yearAccepted(year) {
		respondError(c, http.StatusBadRequest, "year must be between 1900 and 9999")
		return
	}
	month, ok := parseQueryInt(c.Query("month"), int(today.Month()))
	if !ok || month < 1 || month > 12 {
		respondError(c, http.StatusBadRequest, "month must be between 1 and 12")
		return
	}

	status, err := a.care.MonthlyStatus(currentUserID(c), year, time.Month(month))
	if err != nil {
		respondServerError(c, "failed to compute monthly status", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":       year,
		"month":      month,
		"diaryDates": status.DiaryDates,
		"emotions":   status.Emotions,
	})
}

// WeeklyStreak 返回最近七天的写作情况与连续天数
func (a *API) WeeklyStreak(c *gin.Context) {
	summary, err := a.care.WeeklyStreak(currentUserID(c))
	if err != nil {
		respondServerError(c, "failed to compute streak", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Recency 返回距上一篇日记的天数、角色心情与提示语；从未写过时天数为 null
func (a *API) Recency(c *gin.Context) {
	result, err := a.care.Recency(currentUserID(c))
	if err != nil {
		respondServerError(c, "failed to compute recency", err)
		return
	}

	var days *int
	if result.Recency.Known {
		value := result.Recency.Days
		days = &value
	}

	c.JSON(http.StatusOK, gin.H{
		"daysSinceLastUpload": days,
		"lastDiaryDate":       formatOptionalDate(result.Last),
		"mood":                result.Mood,
		"image":               result.Mood.Image(),
		"message":             locale.MoodMessage(a.requestLanguage(c), result.Mood, result.Recency),
	})
}

// parseQueryInt returns fallback for an absent value and ok=false for a malformed one.
func parseQueryInt(raw string, fallback int) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}
