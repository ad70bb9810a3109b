package care

import "time"

// TaskType identifies a kind of care action.
type TaskType string

const (
	TaskWatering TaskType = "watering"
	TaskSunlight TaskType = "sunlight"
	TaskOther    TaskType = "other"
)

// ParseTaskType normalises a stored task type. ok is false for unknown values.
func ParseTaskType(raw string) (TaskType, bool) {
	switch TaskType(raw) {
	case TaskWatering, TaskSunlight, TaskOther:
		return TaskType(raw), true
	default:
		return "", false
	}
}

// PlantSnapshot is the slice of a plant record the engine needs.
// LastWatered is the most recent watering completion, if any.
type PlantSnapshot struct {
	ID          uint
	Name        string
	Cycle       RawCycle
	LastWatered *time.Time
}

// Task is one entry of today's to-do list.
type Task struct {
	Type      TaskType `json:"type"`
	PlantID   uint     `json:"plant_id"`
	PlantName string   `json:"plant_name"`
	Status    Status   `json:"status,omitempty"`
}

// TodayTasks is the aggregated task list for one user and one day.
type TodayTasks struct {
	WateringCount int    `json:"watering_count"`
	SunlightCount int    `json:"sunlight_count"`
	TotalTasks    int    `json:"total_tasks"`
	Tasks         []Task `json:"tasks"`
}

// ComputeTodayTasks emits a watering task for every plant whose interval
// schedule says it needs care, and one sunlight task for every plant.
// Tasks keep the input plant order, watering before sunlight.
func ComputeTodayTasks(plants []PlantSnapshot, today time.Time) TodayTasks {
	result := TodayTasks{Tasks: make([]Task, 0, len(plants)*2)}

	for _, plant := range plants {
		status := Evaluate(IntervalRule(plant.Cycle), plant.LastWatered, today)
		if status.Status == StatusNeedsCare {
			result.Tasks = append(result.Tasks, Task{
				Type:      TaskWatering,
				PlantID:   plant.ID,
				PlantName: plant.Name,
				Status:    status.Status,
			})
			result.WateringCount++
		}

		result.Tasks = append(result.Tasks, Task{
			Type:      TaskSunlight,
			PlantID:   plant.ID,
			PlantName: plant.Name,
		})
		result.SunlightCount++
	}

	result.TotalTasks = result.WateringCount + result.SunlightCount
	return result
}

// PlantCare pairs a plant with its current watering status.
type PlantCare struct {
	PlantID     uint       `json:"plant_id"`
	PlantName   string     `json:"plant_name"`
	CycleDays   int        `json:"cycle_days"`
	LastWatered *time.Time `json:"-"`
	NextDue     time.Time  `json:"-"`
	CareStatus
}

// ComputeCareBoard evaluates every plant's watering schedule, keeping input order.
func ComputeCareBoard(plants []PlantSnapshot, today time.Time) []PlantCare {
	board := make([]PlantCare, 0, len(plants))
	for _, plant := range plants {
		rule := IntervalRule(plant.Cycle)
		board = append(board, PlantCare{
			PlantID:     plant.ID,
			PlantName:   plant.Name,
			CycleDays:   rule.Days,
			LastWatered: plant.LastWatered,
			NextDue:     NextDue(rule, plant.LastWatered, today),
			CareStatus:  Evaluate(rule, plant.LastWatered, today),
		})
	}
	return board
}

// ScheduledToday returns the plants whose calendar slot (weekday or
// day-of-month) is today. Plants whose cycle cannot be anchored are skipped.
func ScheduledToday(plants []PlantSnapshot, today time.Time) []PlantSnapshot {
	scheduled := make([]PlantSnapshot, 0)
	for _, plant := range plants {
		rule, ok := AnchorRule(plant.Cycle)
		if !ok {
			continue
		}
		if DueOn(rule, today) {
			scheduled = append(scheduled, plant)
		}
	}
	return scheduled
}
