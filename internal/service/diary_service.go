package service

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/plantdiary/internal/care"
	"github.com/plantdiary/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrDiaryNotFound 日记不存在或不属于当前用户
	ErrDiaryNotFound = errors.New("diary not found")
	// ErrDiaryInvalidInput 日记内容不合法
	ErrDiaryInvalidInput = errors.New("invalid diary input")
)

const (
	maxEmotionRunes     = 32
	defaultDiaryPerPage = 20
	maxDiaryPerPage     = 100
)

// DiaryService 负责日记的增删改查以及按日期区间的查询
type DiaryService struct {
	db *gorm.DB
}

// DiaryInput 定义创建/更新日记时可配置字段
type DiaryInput struct {
	PlantID *uint
	Date    time.Time
	Emotion string
	Title   string
	Content string
}

// DiaryPage 为分页列表结果
type DiaryPage struct {
	Diaries    []db.Diary
	Total      int64
	Page       int
	PerPage    int
	TotalPages int
}

// NewDiaryService 构造 DiaryService
func NewDiaryService(gdb *gorm.DB) *DiaryService {
	return &DiaryService{db: gdb}
}

// Create 新建日记
func (s *DiaryService) Create(userID uint, input DiaryInput) (*db.Diary, error) {
	normalized, err := s.normalizeInput(userID, input)
	if err != nil {
		return nil, err
	}

	diary := db.Diary{
		UserID:  userID,
		PlantID: normalized.PlantID,
		Date:    normalized.Date,
		Emotion: normalized.Emotion,
		Title:   normalized.Title,
		Content: normalized.Content,
	}
	if err := s.db.Create(&diary).Error; err != nil {
		return nil, fmt.Errorf("create diary: %w", err)
	}
	return &diary, nil
}

// Get 获取用户的单篇日记
func (s *DiaryService) Get(userID, id uint) (*db.Diary, error) {
	var diary db.Diary
	if err := s.db.Where("user_id = ?", userID).First(&diary, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiaryNotFound
		}
		return nil, fmt.Errorf("get diary: %w", err)
	}
	return &diary, nil
}

// Update 更新用户的日记
func (s *DiaryService) Update(userID, id uint, input DiaryInput) (*db.Diary, error) {
	normalized, err := s.normalizeInput(userID, input)
	if err != nil {
		return nil, err
	}

	existing, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}

	existing.PlantID = normalized.PlantID
	existing.Date = normalized.Date
	existing.Emotion = normalized.Emotion
	existing.Title = normalized.Title
	existing.Content = normalized.Content

	if err := s.db.Save(existing).Error; err != nil {
		return nil, fmt.Errorf("update diary: %w", err)
	}
	return existing, nil
}

// Delete 删除用户的日记
func (s *DiaryService) Delete(userID, id uint) error {
	result := s.db.Where("user_id = ?", userID).Delete(&db.Diary{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete diary: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDiaryNotFound
	}
	return nil
}

// List 分页返回用户日记，最新的在前
func (s *DiaryService) List(userID uint, page, perPage int) (*DiaryPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = defaultDiaryPerPage
	}
	if perPage > maxDiaryPerPage {
		perPage = maxDiaryPerPage
	}

	query := s.db.Model(&db.Diary{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count diaries: %w", err)
	}

	var diaries []db.Diary
	if err := query.Order("date DESC, created_at DESC, id DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&diaries).Error; err != nil {
		return nil, fmt.Errorf("list diaries: %w", err)
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	return &DiaryPage{Diaries: diaries, Total: total, Page: page, PerPage: perPage, TotalPages: totalPages}, nil
}

// ListBetween 返回日期区间内（含首尾）的日记，最新的在前
func (s *DiaryService) ListBetween(userID uint, start, end time.Time) ([]db.Diary, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("invalid range: end before start")
	}

	var diaries []db.Diary
	if err := s.db.Where("user_id = ?", userID).
		Where("date BETWEEN ? AND ?", storedDate(start), storedDate(end)).
		Order("date DESC, created_at DESC, id DESC").
		Find(&diaries).Error; err != nil {
		return nil, fmt.Errorf("list diaries between: %w", err)
	}
	return diaries, nil
}

// ListOn 返回某一天的全部日记
func (s *DiaryService) ListOn(userID uint, date time.Time) ([]db.Diary, error) {
	return s.ListBetween(userID, date, date)
}

// DatesBetween 返回区间内写过日记的日期（可能重复）
func (s *DiaryService) DatesBetween(userID uint, start, end time.Time) ([]time.Time, error) {
	diaries, err := s.ListBetween(userID, start, end)
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, 0, len(diaries))
	for _, diary := range diaries {
		dates = append(dates, diary.Date)
	}
	return dates, nil
}

// Latest 返回用户最近一篇日记的日期，从未写过时返回 nil
func (s *DiaryService) Latest(userID uint) (*time.Time, error) {
	var diary db.Diary
	err := s.db.Where("user_id = ?", userID).
		Order("date DESC, created_at DESC, id DESC").
		First(&diary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest diary: %w", err)
	}

	latest := diary.Date
	return &latest, nil
}

func (s *DiaryService) normalizeInput(userID uint, input DiaryInput) (DiaryInput, error) {
	out := DiaryInput{
		PlantID: input.PlantID,
		Emotion: strings.ToLower(strings.TrimSpace(input.Emotion)),
		Title:   strings.TrimSpace(input.Title),
		Content: strings.TrimSpace(input.Content),
	}

	if input.Date.IsZero() {
		return DiaryInput{}, fmt.Errorf("%w: date is required", ErrDiaryInvalidInput)
	}
	out.Date = storedDate(input.Date)

	if out.Content == "" && out.Title == "" {
		return DiaryInput{}, fmt.Errorf("%w: content is required", ErrDiaryInvalidInput)
	}
	if out.Title == "" {
		out.Title = db.DeriveTitleFromContent(out.Content)
	}
	if utf8.RuneCountInString(out.Emotion) > maxEmotionRunes {
		return DiaryInput{}, fmt.Errorf("%w: emotion label too long", ErrDiaryInvalidInput)
	}

	if out.PlantID != nil {
		if *out.PlantID == 0 {
			out.PlantID = nil
		} else {
			var count int64
			if err := s.db.Model(&db.Plant{}).
				Where("id = ? AND user_id = ?", *out.PlantID, userID).
				Count(&count).Error; err != nil {
				return DiaryInput{}, fmt.Errorf("check diary plant: %w", err)
			}
			if count == 0 {
				return DiaryInput{}, ErrPlantNotFound
			}
		}
	}

	return out, nil
}

// storedDate 日记日期统一保存为 UTC 零点，避免时区偏移影响区间查询
func storedDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DiaryEntries 把日记记录转成计算层使用的条目
func DiaryEntries(diaries []db.Diary) []care.DiaryEntry {
	entries := make([]care.DiaryEntry, 0, len(diaries))
	for _, diary := range diaries {
		entries = append(entries, care.DiaryEntry{
			ID:        diary.ID,
			Date:      diary.Date,
			Emotion:   diary.Emotion,
			CreatedAt: diary.CreatedAt,
		})
	}
	return entries
}
