package service

import (
	"fmt"
	"log"
	"time"

	"github.com/plantdiary/internal/care"
	"github.com/plantdiary/internal/db"
)

// CareService 读取植物、养护记录与日记快照，交给 care 包做纯计算。
// 所有结果都是按请求即时推导的，不回写数据库。
type CareService struct {
	plants   *PlantService
	taskLogs *TaskLogService
	diaries  *DiaryService
	location *time.Location
	now      func() time.Time
}

// RecencyResult 汇总最近一次写日记的距今天数与对应心情
type RecencyResult struct {
	Recency care.Recency
	Mood    care.Mood
	Last    *time.Time
}

// NewCareService 构造 CareService，loc 决定“今天”的日期边界
func NewCareService(plants *PlantService, taskLogs *TaskLogService, diaries *DiaryService, loc *time.Location) *CareService {
	if loc == nil {
		loc = time.Local
	}
	return &CareService{
		plants:   plants,
		taskLogs: taskLogs,
		diaries:  diaries,
		location: loc,
		now:      time.Now,
	}
}

// WithClock 替换时钟，测试中用于固定“今天”
func (s *CareService) WithClock(now func() time.Time) *CareService {
	s.now = now
	return s
}

// Today 返回当前时区下今天的零点
func (s *CareService) Today() time.Time {
	return care.Day(s.now().In(s.location))
}

// Location 返回计算日期边界所用的时区
func (s *CareService) Location() *time.Location {
	return s.location
}

// TodayTasks 计算用户今天的浇水与晒太阳任务
func (s *CareService) TodayTasks(userID uint) (care.TodayTasks, error) {
	snapshots, err := s.snapshots(userID)
	if err != nil {
		return care.TodayTasks{}, err
	}
	return care.ComputeTodayTasks(snapshots, s.Today()), nil
}

// CareBoard 返回每棵植物当前的浇水状态
func (s *CareService) CareBoard(userID uint) ([]care.PlantCare, error) {
	snapshots, err := s.snapshots(userID)
	if err != nil {
		return nil, err
	}
	return care.ComputeCareBoard(snapshots, s.Today()), nil
}

// PlantCare 返回单棵植物的浇水状态
func (s *CareService) PlantCare(userID, plantID uint) (care.PlantCare, error) {
	plant, err := s.plants.Get(userID, plantID)
	if err != nil {
		return care.PlantCare{}, err
	}

	last, err := s.taskLogs.LatestCompletion(plant.ID, care.TaskWatering)
	if err != nil {
		return care.PlantCare{}, err
	}
	if last != nil {
		local := last.In(s.location)
		last = &local
	}

	board := care.ComputeCareBoard([]care.PlantSnapshot{Snapshot(*plant, last)}, s.Today())
	return board[0], nil
}

// ScheduledToday 按日历锚点（星期几/每月几号）列出今天该照顾的植物
func (s *CareService) ScheduledToday(userID uint) ([]care.PlantSnapshot, error) {
	plants, err := s.plants.List(userID)
	if err != nil {
		return nil, err
	}

	snapshots := make([]care.PlantSnapshot, 0, len(plants))
	for _, plant := range plants {
		snapshots = append(snapshots, Snapshot(plant, nil))
	}
	return care.ScheduledToday(snapshots, s.Today()), nil
}

// MonthlyStatus 返回某月写过日记的日期与每天的心情
func (s *CareService) MonthlyStatus(userID uint, year int, month time.Month) (care.MonthlyStatus, error) {
	first, last := care.MonthRange(year, month, time.UTC)

	diaries, err := s.diaries.ListBetween(userID, first, last)
	if err != nil {
		return care.MonthlyStatus{}, err
	}
	return care.ComputeMonthlyStatus(year, month, DiaryEntries(diaries)), nil
}

// WeeklyStreak 统计最近七天的日记连续天数
func (s *CareService) WeeklyStreak(userID uint) (care.WeeklySummary, error) {
	today := s.Today()
	days := care.LastSevenDays(today)

	dates, err := s.diaries.DatesBetween(userID, days[0], days[len(days)-1])
	if err != nil {
		return care.WeeklySummary{}, err
	}
	return care.ComputeWeeklySummary(dates, today), nil
}

// Recency 计算距最近一次写日记的天数以及对应心情
func (s *CareService) Recency(userID uint) (RecencyResult, error) {
	last, err := s.diaries.Latest(userID)
	if err != nil {
		return RecencyResult{}, err
	}

	recency := care.ComputeRecency(last, s.Today())
	return RecencyResult{Recency: recency, Mood: care.ClassifyMood(recency), Last: last}, nil
}

func (s *CareService) snapshots(userID uint) ([]care.PlantSnapshot, error) {
	plants, err := s.plants.List(userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(plants))
	for _, plant := range plants {
		ids = append(ids, plant.ID)
	}

	latest, err := s.taskLogs.LatestByPlant(ids, care.TaskWatering)
	if err != nil {
		return nil, fmt.Errorf("load watering history: %w", err)
	}

	snapshots := make([]care.PlantSnapshot, 0, len(plants))
	defaulted := 0
	for _, plant := range plants {
		snapshots = append(snapshots, Snapshot(plant, s.lastWatered(latest, plant)))
		if care.IntervalRule(care.RawCycle{Type: plant.CycleType, Value: plant.CycleValue}).Defaulted {
			defaulted++
		}
	}
	if defaulted > 0 {
		log.Printf("[care] user %d: %d plant(s) with malformed cycle_value, using %d-day default", userID, defaulted, care.DefaultIntervalDays)
	}

	return snapshots, nil
}

func (s *CareService) lastWatered(latest map[uint]time.Time, plant db.Plant) *time.Time {
	completed, ok := latest[plant.ID]
	if !ok {
		return nil
	}
	local := completed.In(s.location)
	return &local
}
