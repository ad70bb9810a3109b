package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/plantdiary/internal/db"
	"github.com/plantdiary/internal/service"
)

type diaryPayload struct {
	PlantID *uint  `json:"plant_id"`
	Date    string `json:"date"`
	Emotion string `json:"emotion"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ListDiaries 分页返回日记；带 date 参数时返回当天的全部日记
func (a *API) ListDiaries(c *gin.Context) {
	userID := currentUserID(c)

	if raw := c.Query("date"); raw != "" {
		day, ok := parseDate(raw, a.location)
		if !ok {
			respondError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		diaries, err := a.diaries.ListOn(userID, day)
		if err != nil {
			respondServerError(c, "failed to list diaries", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"date": day.Format(dateFormat), "diaries": diaryList(diaries)})
		return
	}

	page := parsePositiveInt(c.Query("page"), 1)
	perPage := parsePositiveInt(c.Query("per_page"), 0)
	result, err := a.diaries.List(userID, page, perPage)
	if err != nil {
		respondServerError(c, "failed to list diaries", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"diaries":     diaryList(result.Diaries),
		"total":       result.Total,
		"page":        result.Page,
		"per_page":    result.PerPage,
		"total_pages": result.TotalPages,
	})
}

// GetDiary 返回单篇日记，附带渲染后的 HTML
func (a *API) GetDiary(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid diary id")
		return
	}

	diary, err := a.diaries.Get(currentUserID(c), id)
	if err != nil {
		handleDiaryError(c, err)
		return
	}

	rendered, err := service.RenderDiaryContent(diary.Content)
	if err != nil {
		respondServerError(c, "failed to render diary", err)
		return
	}

	payload := diaryToPayload(*diary)
	payload["html"] = string(rendered)
	c.JSON(http.StatusOK, gin.H{"diary": payload})
}

// CreateDiary 写一篇新日记，date 缺省为今天
func (a *API) CreateDiary(c *gin.Context) {
	input, ok := a.parseDiaryInput(c)
	if !ok {
		return
	}

	diary, err := a.diaries.Create(currentUserID(c), input)
	if err != nil {
		handleDiaryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"diary": diaryToPayload(*diary)})
}

// UpdateDiary 修改日记
func (a *API) UpdateDiary(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid diary id")
		return
	}

	input, ok := a.parseDiaryInput(c)
	if !ok {
		return
	}

	diary, err := a.diaries.Update(currentUserID(c), id, input)
	if err != nil {
		handleDiaryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"diary": diaryToPayload(*diary)})
}

// DeleteDiary 删除日记
func (a *API) DeleteDiary(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid diary id")
		return
	}

	if err := a.diaries.Delete(currentUserID(c), id); err != nil {
		handleDiaryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (a *API) parseDiaryInput(c *gin.Context) (service.DiaryInput, bool) {
	var payload diaryPayload
	if !bindJSON(c, &payload, "invalid request body") {
		return service.DiaryInput{}, false
	}

	date := a.care.Today()
	if payload.Date != "" {
		parsed, ok := parseDate(payload.Date, a.location)
		if !ok {
			respondError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return service.DiaryInput{}, false
		}
		date = parsed
	}

	return service.DiaryInput{
		PlantID: payload.PlantID,
		Date:    date,
		Emotion: payload.Emotion,
		Title:   payload.Title,
		Content: payload.Content,
	}, true
}

func diaryList(diaries []db.Diary) []gin.H {
	items := make([]gin.H, 0, len(diaries))
	for _, diary := range diaries {
		items = append(items, diaryToPayload(diary))
	}
	return items
}

func diaryToPayload(diary db.Diary) gin.H {
	return gin.H{
		"id":         diary.ID,
		"plant_id":   diary.PlantID,
		"date":       diary.Date.Format(dateFormat),
		"emotion":    diary.Emotion,
		"title":      diary.Title,
		"content":    diary.Content,
		"created_at": diary.CreatedAt.Format(time.RFC3339),
		"updated_at": diary.UpdatedAt.Format(time.RFC3339),
	}
}

func handleDiaryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDiaryNotFound):
		respondError(c, http.StatusNotFound, "diary not found")
	case errors.Is(err, service.ErrPlantNotFound):
		respondError(c, http.StatusBadRequest, "plant not found")
	case errors.Is(err, service.ErrDiaryInvalidInput):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		respondServerError(c, "diary operation failed", err)
	}
}
