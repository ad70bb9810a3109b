package db

import (
	"time"

	"gorm.io/gorm"
)

// TaskLog 记录一次完成的养护动作（浇水、晒太阳等）
// 同一植物同一类型可有多条，计算周期时只关心最近一条
type TaskLog struct {
	gorm.Model
	PlantID        uint      `gorm:"index:idx_task_log_lookup,priority:1;not null"`
	Plant          Plant     `gorm:"constraint:OnDelete:CASCADE"`
	Type           string    `gorm:"size:20;index:idx_task_log_lookup,priority:2;not null"`
	CompletionDate time.Time `gorm:"index:idx_task_log_lookup,priority:3"`
	Note           string
}

// TableName 保持表名稳定
func (TaskLog) TableName() string {
	return "task_logs"
}
