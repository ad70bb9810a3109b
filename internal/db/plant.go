package db

import (
	"time"

	"gorm.io/gorm"
)

// Plant 定义了用户登记的植物
// CycleType/CycleValue/CycleUnit 原样保存浇水周期，解释方式由调用方决定
// ShareCode 用于公开分享页，创建时生成
type Plant struct {
	gorm.Model
	UserID     uint   `gorm:"index;not null"`
	User       User   `gorm:"constraint:OnDelete:CASCADE"`
	Name       string `gorm:"size:100;not null"`
	Species    string `gorm:"size:100"`
	CycleType  string `gorm:"size:20"`
	CycleValue string `gorm:"size:20"`
	CycleUnit  string `gorm:"size:20"`
	ImageURL   string
	ShareCode  string `gorm:"size:32;uniqueIndex"`
	AdoptedAt  *time.Time
}
