package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid"
	"github.com/plantdiary/internal/care"
	"github.com/plantdiary/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrPlantNotFound 植物不存在或不属于当前用户
	ErrPlantNotFound = errors.New("plant not found")
	// ErrPlantInvalidCycle 浇水周期配置异常
	ErrPlantInvalidCycle = errors.New("invalid plant cycle configuration")
	// ErrPlantInvalidInput 植物信息不完整
	ErrPlantInvalidInput = errors.New("invalid plant input")
)

const (
	shareCodeAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnpqrstuvwxyz"
	shareCodeLength   = 10
	defaultCycleUnit  = "days"
)

// PlantService 负责植物的增删改查，并保证只能访问自己的植物
type PlantService struct {
	db *gorm.DB
}

// PlantInput 定义创建/更新植物时可配置字段
type PlantInput struct {
	Name       string
	Species    string
	CycleType  string
	CycleValue string
	CycleUnit  string
	ImageURL   string
	AdoptedAt  *time.Time
}

// NewPlantService 构造 PlantService
func NewPlantService(gdb *gorm.DB) *PlantService {
	return &PlantService{db: gdb}
}

// List 返回用户的全部植物，按创建顺序排列
func (s *PlantService) List(userID uint) ([]db.Plant, error) {
	var plants []db.Plant
	if err := s.db.Where("user_id = ?", userID).Order("id ASC").Find(&plants).Error; err != nil {
		return nil, fmt.Errorf("list plants: %w", err)
	}
	return plants, nil
}

// Get 获取用户名下的单棵植物
func (s *PlantService) Get(userID, id uint) (*db.Plant, error) {
	var plant db.Plant
	if err := s.db.Where("user_id = ?", userID).First(&plant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlantNotFound
		}
		return nil, fmt.Errorf("get plant: %w", err)
	}
	return &plant, nil
}

// GetByShareCode 通过分享码查找植物，供公开页使用
func (s *PlantService) GetByShareCode(code string) (*db.Plant, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrPlantNotFound
	}

	var plant db.Plant
	if err := s.db.Where("share_code = ?", code).First(&plant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlantNotFound
		}
		return nil, fmt.Errorf("get plant by share code: %w", err)
	}
	return &plant, nil
}

// Create 新建植物并生成分享码
func (s *PlantService) Create(userID uint, input PlantInput) (*db.Plant, error) {
	normalized, err := normalizePlantInput(input)
	if err != nil {
		return nil, err
	}

	code, err := gonanoid.Generate(shareCodeAlphabet, shareCodeLength)
	if err != nil {
		return nil, fmt.Errorf("generate share code: %w", err)
	}

	plant := db.Plant{
		UserID:     userID,
		Name:       normalized.Name,
		Species:    normalized.Species,
		CycleType:  normalized.CycleType,
		CycleValue: normalized.CycleValue,
		CycleUnit:  normalized.CycleUnit,
		ImageURL:   normalized.ImageURL,
		AdoptedAt:  normalized.AdoptedAt,
		ShareCode:  code,
	}

	if err := s.db.Create(&plant).Error; err != nil {
		return nil, fmt.Errorf("create plant: %w", err)
	}
	return &plant, nil
}

// Update 更新用户名下的植物
func (s *PlantService) Update(userID, id uint, input PlantInput) (*db.Plant, error) {
	normalized, err := normalizePlantInput(input)
	if err != nil {
		return nil, err
	}

	existing, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}

	existing.Name = normalized.Name
	existing.Species = normalized.Species
	existing.CycleType = normalized.CycleType
	existing.CycleValue = normalized.CycleValue
	existing.CycleUnit = normalized.CycleUnit
	existing.ImageURL = normalized.ImageURL
	existing.AdoptedAt = normalized.AdoptedAt

	if err := s.db.Save(existing).Error; err != nil {
		return nil, fmt.Errorf("update plant: %w", err)
	}
	return existing, nil
}

// Delete 删除用户名下的植物及其养护记录
func (s *PlantService) Delete(userID, id uint) error {
	if _, err := s.Get(userID, id); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plant_id = ?", id).Delete(&db.TaskLog{}).Error; err != nil {
			return fmt.Errorf("delete plant task logs: %w", err)
		}
		if err := tx.Model(&db.Diary{}).Where("plant_id = ?", id).Update("plant_id", nil).Error; err != nil {
			return fmt.Errorf("detach plant diaries: %w", err)
		}
		if err := tx.Delete(&db.Plant{}, id).Error; err != nil {
			return fmt.Errorf("delete plant: %w", err)
		}
		return nil
	})
}

// normalizePlantInput 校验周期类型，并把数值规整为字符串保存。
// cycle_value 保留原样，无法解析时由计算层回退到默认周期。
func normalizePlantInput(input PlantInput) (PlantInput, error) {
	out := input
	out.Name = strings.TrimSpace(input.Name)
	out.Species = strings.TrimSpace(input.Species)
	out.ImageURL = strings.TrimSpace(input.ImageURL)
	out.CycleValue = strings.TrimSpace(input.CycleValue)
	out.CycleUnit = strings.ToLower(strings.TrimSpace(input.CycleUnit))

	if out.Name == "" {
		return PlantInput{}, fmt.Errorf("%w: name is required", ErrPlantInvalidInput)
	}

	cycleType, ok := care.ParseCycleType(input.CycleType)
	if !ok {
		return PlantInput{}, fmt.Errorf("%w: unsupported cycle type %s", ErrPlantInvalidCycle, input.CycleType)
	}
	out.CycleType = string(cycleType)

	if out.CycleUnit == "" {
		out.CycleUnit = defaultCycleUnit
	}

	return out, nil
}

// Snapshot 把植物记录转成计算层使用的快照
func Snapshot(plant db.Plant, lastWatered *time.Time) care.PlantSnapshot {
	return care.PlantSnapshot{
		ID:   plant.ID,
		Name: plant.Name,
		Cycle: care.RawCycle{
			Type:  plant.CycleType,
			Value: plant.CycleValue,
			Unit:  plant.CycleUnit,
		},
		LastWatered: lastWatered,
	}
}
