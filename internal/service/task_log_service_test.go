package service

import (
	"errors"
	"testing"
	"time"

	"github.com/plantdiary/internal/care"
)

func TestTaskLogServiceLatest(t *testing.T) {
	gdb := setupServiceTestDB(t)
	owner := createTestUser(t, gdb, "owner")
	plants := NewPlantService(gdb)
	svc := NewTaskLogService(gdb)

	fern, _ := plants.Create(owner.ID, PlantInput{Name: "Fern", CycleType: "DAILY", CycleValue: "2"})
	aloe, _ := plants.Create(owner.ID, PlantInput{Name: "Aloe", CycleType: "WEEKLY", CycleValue: "2"})
	cactus, _ := plants.Create(owner.ID, PlantInput{Name: "Cactus", CycleType: "MONTHLY", CycleValue: "1"})

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	inputs := []TaskLogInput{
		{PlantID: fern.ID, Type: "watering", CompletionDate: base},
		{PlantID: fern.ID, Type: "watering", CompletionDate: base.AddDate(0, 0, 3)},
		{PlantID: fern.ID, Type: "watering", CompletionDate: base.AddDate(0, 0, 1)},
		{PlantID: fern.ID, Type: "sunlight", CompletionDate: base.AddDate(0, 0, 5)},
		{PlantID: aloe.ID, Type: "WATERING", CompletionDate: base.AddDate(0, 0, 2), Note: " deep soak "},
	}
	for _, input := range inputs {
		if _, err := svc.Record(input); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}

	if _, err := svc.Record(TaskLogInput{PlantID: fern.ID, Type: "pruning", CompletionDate: base}); !errors.Is(err, ErrTaskLogInvalidType) {
		t.Fatalf("expected ErrTaskLogInvalidType, got %v", err)
	}

	latest, err := svc.LatestCompletion(fern.ID, care.TaskWatering)
	if err != nil {
		t.Fatalf("LatestCompletion returned error: %v", err)
	}
	if latest == nil || !latest.Equal(base.AddDate(0, 0, 3)) {
		t.Fatalf("expected latest watering on 2024-05-04, got %v", latest)
	}

	none, err := svc.LatestCompletion(cactus.ID, care.TaskWatering)
	if err != nil {
		t.Fatalf("LatestCompletion returned error: %v", err)
	}
	if none != nil {
		t.Fatalf("expected no completion, got %v", none)
	}

	byPlant, err := svc.LatestByPlant([]uint{fern.ID, aloe.ID, cactus.ID}, care.TaskWatering)
	if err != nil {
		t.Fatalf("LatestByPlant returned error: %v", err)
	}
	if len(byPlant) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(byPlant))
	}
	if !byPlant[fern.ID].Equal(base.AddDate(0, 0, 3)) || !byPlant[aloe.ID].Equal(base.AddDate(0, 0, 2)) {
		t.Fatalf("unexpected latest map: %v", byPlant)
	}

	logs, err := svc.ListByPlant(fern.ID, "", 0)
	if err != nil {
		t.Fatalf("ListByPlant returned error: %v", err)
	}
	if len(logs) != 4 || logs[0].Type != "sunlight" {
		t.Fatalf("unexpected log list: %+v", logs)
	}

	aloeLogs, _ := svc.ListByPlant(aloe.ID, "watering", 1)
	if len(aloeLogs) != 1 || aloeLogs[0].Note != "deep soak" {
		t.Fatalf("unexpected aloe logs: %+v", aloeLogs)
	}

	if err := svc.Delete(cactus.ID, aloeLogs[0].ID); !errors.Is(err, ErrTaskLogNotFound) {
		t.Fatalf("expected ErrTaskLogNotFound for foreign log, got %v", err)
	}
	if err := svc.Delete(aloe.ID, aloeLogs[0].ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if latest, _ := svc.LatestCompletion(aloe.ID, care.TaskWatering); latest != nil {
		t.Fatalf("expected no watering after delete, got %v", latest)
	}
}

func TestTaskLogServiceLatestByPlantEmpty(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewTaskLogService(gdb)

	latest, err := svc.LatestByPlant(nil, care.TaskWatering)
	if err != nil {
		t.Fatalf("LatestByPlant returned error: %v", err)
	}
	if len(latest) != 0 {
		t.Fatalf("expected empty map, got %v", latest)
	}
}

func TestTaskLogServiceRecordRequiresCompletionDate(t *testing.T) {
	gdb := setupServiceTestDB(t)
	owner := createTestUser(t, gdb, "owner")
	plants := NewPlantService(gdb)
	svc := NewTaskLogService(gdb)

	fern, err := plants.Create(owner.ID, PlantInput{Name: "Fern", CycleType: "DAILY", CycleValue: "2"})
	if err != nil {
		t.Fatalf("create plant: %v", err)
	}

	_, err = svc.Record(TaskLogInput{PlantID: fern.ID, Type: "watering"})
	if !errors.Is(err, ErrTaskLogInvalidInput) {
		t.Fatalf("expected ErrTaskLogInvalidInput, got %v", err)
	}
}
