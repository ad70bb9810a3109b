package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/plantdiary/internal/care"
	"github.com/plantdiary/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrTaskLogNotFound 养护记录不存在
	ErrTaskLogNotFound = errors.New("task log not found")
	// ErrTaskLogInvalidType 养护类型不支持
	ErrTaskLogInvalidType = errors.New("invalid task type")
	// ErrTaskLogInvalidInput 养护记录字段不合法
	ErrTaskLogInvalidInput = errors.New("invalid task log input")
)

// TaskLogService 负责养护记录的写入与最近一次完成时间的查询
type TaskLogService struct {
	db *gorm.DB
}

// TaskLogInput 定义记录养护时的输入
type TaskLogInput struct {
	PlantID        uint
	Type           string
	CompletionDate time.Time
	Note           string
}

// NewTaskLogService 构造 TaskLogService
func NewTaskLogService(gdb *gorm.DB) *TaskLogService {
	return &TaskLogService{db: gdb}
}

// Record 写入一条养护记录
func (s *TaskLogService) Record(input TaskLogInput) (*db.TaskLog, error) {
	taskType, ok := care.ParseTaskType(strings.ToLower(strings.TrimSpace(input.Type)))
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTaskLogInvalidType, input.Type)
	}
	if input.CompletionDate.IsZero() {
		return nil, fmt.Errorf("%w: completion date is required", ErrTaskLogInvalidInput)
	}

	record := db.TaskLog{
		PlantID:        input.PlantID,
		Type:           string(taskType),
		CompletionDate: input.CompletionDate,
		Note:           strings.TrimSpace(input.Note),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("create task log: %w", err)
	}
	return &record, nil
}

// ListByPlant 返回植物的养护记录，最近的在前
func (s *TaskLogService) ListByPlant(plantID uint, taskType string, limit int) ([]db.TaskLog, error) {
	var logs []db.TaskLog

	query := s.db.Where("plant_id = ?", plantID)
	if taskType != "" {
		query = query.Where("type = ?", taskType)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Order("completion_date DESC, id DESC").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list task logs: %w", err)
	}
	return logs, nil
}

// LatestCompletion 返回某植物某类型最近一次完成时间，没有记录时返回 nil
func (s *TaskLogService) LatestCompletion(plantID uint, taskType care.TaskType) (*time.Time, error) {
	var record db.TaskLog
	err := s.db.Where("plant_id = ? AND type = ?", plantID, string(taskType)).
		Order("completion_date DESC, id DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest task log: %w", err)
	}

	completed := record.CompletionDate
	return &completed, nil
}

// LatestByPlant 批量查询多棵植物某类型最近一次完成时间
func (s *TaskLogService) LatestByPlant(plantIDs []uint, taskType care.TaskType) (map[uint]time.Time, error) {
	latest := make(map[uint]time.Time, len(plantIDs))
	if len(plantIDs) == 0 {
		return latest, nil
	}

	var logs []db.TaskLog
	if err := s.db.Select("plant_id", "completion_date").
		Where("plant_id IN ? AND type = ?", plantIDs, string(taskType)).
		Order("plant_id ASC, completion_date DESC").
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("latest task logs: %w", err)
	}

	for _, log := range logs {
		if _, seen := latest[log.PlantID]; !seen {
			latest[log.PlantID] = log.CompletionDate
		}
	}
	return latest, nil
}

// Delete 删除植物下的单条养护记录
func (s *TaskLogService) Delete(plantID, logID uint) error {
	result := s.db.Where("plant_id = ?", plantID).Delete(&db.TaskLog{}, logID)
	if result.Error != nil {
		return fmt.Errorf("delete task log: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTaskLogNotFound
	}
	return nil
}
