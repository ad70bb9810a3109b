package handler

import (
	"time"

	"github.com/plantdiary/internal/service"
	"gorm.io/gorm"
)

// Settings carries the configuration handlers need beyond the database.
type Settings struct {
	JWTSecret string
	TokenTTL  time.Duration
	Location  *time.Location
	UploadDir string
	UploadURL string
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db        *gorm.DB
	users     *service.UserService
	tokens    *service.TokenService
	plants    *service.PlantService
	taskLogs  *service.TaskLogService
	diaries   *service.DiaryService
	care      *service.CareService
	location  *time.Location
	uploadDir string
	uploadURL string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB, settings Settings) *API {
	location := settings.Location
	if location == nil {
		location = time.Local
	}

	plants := service.NewPlantService(db)
	taskLogs := service.NewTaskLogService(db)
	diaries := service.NewDiaryService(db)

	return &API{
		db:        db,
		users:     service.NewUserService(db),
		tokens:    service.NewTokenService(settings.JWTSecret, settings.TokenTTL),
		plants:    plants,
		taskLogs:  taskLogs,
		diaries:   diaries,
		care:      service.NewCareService(plants, taskLogs, diaries, location),
		location:  location,
		uploadDir: settings.UploadDir,
		uploadURL: settings.UploadURL,
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

// WithClock pins the engine's notion of "now", used by tests.
func (a *API) WithClock(now func() time.Time) *API {
	a.care.WithClock(now)
	return a
}
