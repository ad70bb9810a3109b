package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr       string
	Port             string
	DatabaseDriver   string
	DatabasePath     string
	DatabaseDSN      string
	SessionSecret    string
	JWTSecret        string
	TokenTTL         time.Duration
	GinMode          string
	UploadDir        string
	UploadURLPath    string
	Location         *time.Location
	SeedUserName     string
	SeedUserPassword string
}

const defaultTokenTTLHours = 72

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	port := envOr("PORT", "8080")
	listenAddr := envOr("LISTEN_ADDR", fmt.Sprintf(":%s", port))

	sessionSecret := envOr("SESSION_SECRET", "plantdiary-dev-secret")

	tokenTTL := time.Duration(defaultTokenTTLHours) * time.Hour
	if raw := strings.TrimSpace(os.Getenv("TOKEN_TTL_HOURS")); raw != "" {
		if hours, err := strconv.Atoi(raw); err == nil && hours > 0 {
			tokenTTL = time.Duration(hours) * time.Hour
		} else {
			log.Printf("[config] ignoring invalid TOKEN_TTL_HOURS=%q", raw)
		}
	}

	location := time.Local
	if name := strings.TrimSpace(os.Getenv("TIMEZONE")); name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			location = loc
		} else {
			log.Printf("[config] unknown TIMEZONE %q, falling back to local time: %v", name, err)
		}
	}

	return AppConfig{
		ListenAddr:       listenAddr,
		Port:             port,
		DatabaseDriver:   envOr("DATABASE_DRIVER", "sqlite"),
		DatabasePath:     envOr("DATABASE_PATH", "plantdiary.db"),
		DatabaseDSN:      strings.TrimSpace(os.Getenv("DATABASE_DSN")),
		SessionSecret:    sessionSecret,
		JWTSecret:        envOr("JWT_SECRET", sessionSecret),
		TokenTTL:         tokenTTL,
		GinMode:          envOr("GIN_MODE", "release"),
		UploadDir:        envOr("UPLOAD_DIR", "web/static/uploads"),
		UploadURLPath:    envOr("UPLOAD_URL_PATH", "/static/uploads"),
		Location:         location,
		SeedUserName:     strings.TrimSpace(os.Getenv("SEED_USER_NAME")),
		SeedUserPassword: strings.TrimSpace(os.Getenv("SEED_USER_PASSWORD")),
	}
}

// DatabaseTarget 返回当前驱动对应的连接串：sqlite 使用文件路径，mysql 使用 DSN。
func (c AppConfig) DatabaseTarget() string {
	if strings.EqualFold(c.DatabaseDriver, "mysql") {
		return c.DatabaseDSN
	}
	return c.DatabasePath
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
