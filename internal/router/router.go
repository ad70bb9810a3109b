package router

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/plantdiary/internal/config"
	"github.com/plantdiary/internal/db"
	"github.com/plantdiary/internal/handler"
)

const sessionCookieName = "plantdiary_session"

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(cfg config.AppConfig) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.TokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionCookieName, store))

	api := handler.NewAPI(db.DB, handler.Settings{
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
		Location:  cfg.Location,
		UploadDir: cfg.UploadDir,
		UploadURL: cfg.UploadURLPath,
	})
	r.Use(api.LocaleMiddleware())

	// 上传的图片同时挂在配置的路径和 /uploads 下
	uploadURL := "/" + strings.Trim(cfg.UploadURLPath, "/")
	r.Static(uploadURL, cfg.UploadDir)
	if uploadURL != "/uploads" {
		r.Static("/uploads", cfg.UploadDir)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	public := r.Group("/api")
	{
		public.POST("/auth/register", api.Register)
		public.POST("/auth/login", api.Login)
		public.POST("/auth/logout", api.Logout)
		public.GET("/shared/plants/:code", api.GetSharedPlant)
	}

	// 需要登录的接口
	auth := r.Group("/api")
	auth.Use(api.AuthRequired())
	{
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
	}

	return r
}
