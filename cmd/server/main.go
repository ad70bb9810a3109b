package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/plantdiary/internal/config"
	"github.com/plantdiary/internal/db"
	"github.com/plantdiary/internal/router"
)

func main() {
	cfg := config.Load()
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	// 初始化数据库
	if err := db.Init(cfg.DatabaseDriver, cfg.DatabaseTarget()); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	if cfg.SeedUserName != "" && cfg.SeedUserPassword != "" {
		if err := db.EnsureUser(cfg.SeedUserName, cfg.SeedUserPassword); err != nil {
			log.Fatalf("failed to seed user: %v", err)
		}
	}

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(cfg)
	log.Printf("plantdiary listening on %s (timezone %s)", cfg.ListenAddr, cfg.Location)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
