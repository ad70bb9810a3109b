package handler

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const dateFormat = "2006-01-02"

// 接受的日期年份范围
const (
	minAcceptedYear = 1900
	maxAcceptedYear = 9999
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// respondServerError logs the underlying error once before hiding it from the client.
func respondServerError(c *gin.Context, message string, err error) {
	log.Printf("[api] %s %s: %s: %v", c.Request.Method, c.FullPath(), message, err)
	_ = c.Error(err)
	respondError(c, http.StatusInternalServerError, message)
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

func parsePositiveInt(raw string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

// parseDate reads a YYYY-MM-DD value as a civil date in loc.
func parseDate(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(dateFormat, value, loc)
	if err != nil || !yearAccepted(t.Year()) {
		return time.Time{}, false
	}
	return t, true
}

func yearAccepted(year int) bool {
	return year >= minAcceptedYear && year <= maxAcceptedYear
}

// parseOptionalDate treats an empty value as absent.
func parseOptionalDate(value string, loc *time.Location) (*time.Time, bool) {
	if strings.TrimSpace(value) == "" {
		return nil, true
	}
	t, ok := parseDate(value, loc)
	if !ok {
		return nil, false
	}
	return &t, true
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(dateFormat)
	return &formatted
}
