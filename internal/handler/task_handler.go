package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/plantdiary/internal/db"
	"github.com/plantdiary/internal/service"
)

const defaultTaskLogLimit = 30

// RecordTask 记录一次养护，completion_date 为空时记为今天
func (a *API) RecordTask(c *gin.Context) {
	plantID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid plant id")
		return
	}

	var payload struct {
		Type           string `json:"type"`
		CompletionDate string `json:"completion_date"` // RFC3339 或 2006-01-02
		Note           string `json:"note"`
	}
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	completedAt, ok := a.parseCompletion(payload.CompletionDate)
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid completion_date")
		return
	}

	if _, err := a.plants.Get(currentUserID(c), plantID); err != nil {
		handlePlantError(c, err)
		return
	}

	record, err := a.taskLogs.Record(service.TaskLogInput{
		PlantID:        plantID,
		Type:           payload.Type,
		CompletionDate: completedAt,
		Note:           payload.Note,
	})
	if err != nil {
		handleTaskLogError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"log": taskLogPayload(*record)})
}

// ListTasks 返回植物最近的养护记录
func (a *API) ListTasks(c *gin.Context) {
	plantID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid plant id")
		return
	}

	if _, err := a.plants.Get(currentUserID(c), plantID); err != nil {
		handlePlantError(c, err)
		return
	}

	limit := parsePositiveInt(c.Query("limit"), defaultTaskLogLimit)
	logs, err := a.taskLogs.ListByPlant(plantID, strings.ToLower(strings.TrimSpace(c.Query("type"))), limit)
	if err != nil {
		respondServerError(c, "failed to list task logs", err)
		return
	}

	items := make([]gin.H, 0, len(logs))
	for _, log := range logs {
		items = append(items, taskLogPayload(log))
	}
	c.JSON(http.StatusOK, gin.H{"logs": items})
}

// DeleteTask 删除单条养护记录
func (a *API) DeleteTask(c *gin.Context) {
	plantID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid plant id")
		return
	}
	logID, err := parseUintParam(c, "logId")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid log id")
		return
	}

	if _, err := a.plants.Get(currentUserID(c), plantID); err != nil {
		handlePlantError(c, err)
		return
	}

	if err := a.taskLogs.Delete(plantID, logID); err != nil {
		handleTaskLogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true, "plant_id": plantID})
}

func (a *API) parseCompletion(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return a.care.Today(), true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, yearAccepted(t.In(a.location).Year())
	}
	return parseDate(raw, a.location)
}

func taskLogPayload(log db.TaskLog) gin.H {
	return gin.H{
		"id":              log.ID,
		"plant_id":        log.PlantID,
		"type":            log.Type,
		"completion_date": log.CompletionDate.Format(time.RFC3339),
		"note":            log.Note,
	}
}

func handleTaskLogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTaskLogNotFound):
		respondError(c, http.StatusNotFound, "task log not found")
	case errors.Is(err, service.ErrTaskLogInvalidType):
		respondError(c, http.StatusBadRequest, "task type must be watering, sunlight or other")
	case errors.Is(err, service.ErrTaskLogInvalidInput):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		respondServerError(c, "task log operation failed", err)
	}
}
