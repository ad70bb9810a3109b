package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/plantdiary/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fixedNow is a Sunday.
var fixedNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

type testServer struct {
	t      *testing.T
	api    *API
	router *gin.Engine
}

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:handler-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := NewAPI(setupHandlerTestDB(t), Settings{
		JWTSecret: "test-jwt-secret",
		TokenTTL:  time.Hour,
		Location:  time.UTC,
		UploadDir: t.TempDir(),
		UploadURL: "/static/uploads",
	}).WithClock(func() time.Time { return fixedNow })

	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))
	r.Use(api.LocaleMiddleware())

	r.POST("/api/auth/register", api.Register)
	r.POST("/api/auth/login", api.Login)
	r.POST("/api/auth/logout", api.Logout)
	r.GET("/api/shared/plants/:code", api.GetSharedPlant)

	auth := r.Group("/api")
	auth.Use(api.AuthRequired())
	auth.GET("/auth/me", api.Me)
	auth.GET("/plants", api.ListPlants)
	auth.POST("/plants", api.CreatePlant)
	auth.GET("/plants/:id", api.GetPlant)
	auth.PUT("/plants/:id", api.UpdatePlant)
	auth.DELETE("/plants/:id", api.DeletePlant)
	auth.GET("/plants/:id/care", api.GetPlantCare)
	auth.GET("/plants/:id/tasks", api.ListTasks)
	auth.POST("/plants/:id/tasks", api.RecordTask)
	auth.DELETE("/plants/:id/tasks/:logId", api.DeleteTask)
	auth.GET("/diaries", api.ListDiaries)
	auth.POST("/diaries", api.CreateDiary)
	auth.GET("/diaries/:id", api.GetDiary)
	auth.PUT("/diaries/:id", api.UpdateDiary)
	auth.DELETE("/diaries/:id", api.DeleteDiary)
	auth.GET("/home/today", api.TodayTasks)
	auth.GET("/home/schedule", api.ScheduledToday)
	auth.GET("/home/monthly", api.MonthlyStatus)
	auth.GET("/home/streak", api.WeeklyStreak)
	auth.GET("/home/recency", api.Recency)
	auth.POST("/uploads/image", api.UploadImage)

	return &testServer{t: t, api: api, router: r}
}

// do sends a JSON request. An empty token sends no Authorization header.
func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			s.t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

// register creates an account and returns its bearer token.
func (s *testServer) register(username string) string {
	s.t.Helper()

	rr := s.do(http.MethodPost, "/api/auth/register", "", gin.H{"username": username, "password": "secret-password"})
	if rr.Code != http.StatusCreated {
		s.t.Fatalf("register %s: expected 201, got %d: %s", username, rr.Code, rr.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	decodeJSON(s.t, rr, &resp)
	if resp.Token == "" {
		s.t.Fatalf("register %s: expected token", username)
	}
	return resp.Token
}

type plantResponse struct {
	Plant struct {
		ID        uint   `json:"id"`
		Name      string `json:"name"`
		CycleType string `json:"cycle_type"`
		CycleUnit string `json:"cycle_unit"`
		ShareCode string `json:"share_code"`
	} `json:"plant"`
}

func (s *testServer) createPlant(token, name, cycleType, cycleValue string) uint {
	s.t.Helper()

	rr := s.do(http.MethodPost, "/api/plants", token, gin.H{
		"name":        name,
		"cycle_type":  cycleType,
		"cycle_value": cycleValue,
	})
	if rr.Code != http.StatusCreated {
		s.t.Fatalf("create plant %s: expected 201, got %d: %s", name, rr.Code, rr.Body.String())
	}
	var resp plantResponse
	decodeJSON(s.t, rr, &resp)
	return resp.Plant.ID
}

func (s *testServer) water(token string, plantID uint, date string) {
	s.t.Helper()

	rr := s.do(http.MethodPost, fmt.Sprintf("/api/plants/%d/tasks", plantID), token, gin.H{
		"type":            "watering",
		"completion_date": date,
	})
	if rr.Code != http.StatusCreated {
		s.t.Fatalf("water plant %d: expected 201, got %d: %s", plantID, rr.Code, rr.Body.String())
	}
}

func (s *testServer) writeDiary(token, date, emotion, content string) uint {
	s.t.Helper()

	rr := s.do(http.MethodPost, "/api/diaries", token, gin.H{
		"date":    date,
		"emotion": emotion,
		"content": content,
	})
	if rr.Code != http.StatusCreated {
		s.t.Fatalf("write diary %s: expected 201, got %d: %s", date, rr.Code, rr.Body.String())
	}
	var resp struct {
		Diary struct {
			ID uint `json:"id"`
		} `json:"diary"`
	}
	decodeJSON(s.t, rr, &resp)
	return resp.Diary.ID
}

func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), dst); err != nil {
		t.Fatalf("failed to decode response %q: %v", rr.Body.String(), err)
	}
}
