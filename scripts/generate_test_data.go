package main

import (
	"fmt"
	"log"
	"time"

	"github.com/plantdiary/internal/config"
	"github.com/plantdiary/internal/db"
	"github.com/plantdiary/internal/service"
)

const (
	demoUsername = "demo"
	demoPassword = "demo1234"
)

// 测试数据生成器：一个演示账号、几棵不同周期的植物、两周的浇水记录和日记
func main() {
	cfg := config.Load()
	if err := db.Init(cfg.DatabaseDriver, cfg.DatabaseTarget()); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	fmt.Println("开始生成测试数据...")

	today := time.Now().In(cfg.Location)
	user, err := createDemoUser()
	if err != nil {
		log.Fatal("创建演示用户失败:", err)
	}

	plants, err := createDemoPlants(user.ID, today)
	if err != nil {
		log.Fatal("创建植物失败:", err)
	}

	if err := createDemoDiaries(user.ID, plants, today); err != nil {
		log.Fatal("创建日记失败:", err)
	}

	fmt.Println("测试数据生成完成！")
	fmt.Printf("用户: %s (密码: %s)\n", demoUsername, demoPassword)
	fmt.Printf("植物: %d 棵\n", len(plants))
}

func createDemoUser() (*db.User, error) {
	if err := db.EnsureUser(demoUsername, demoPassword); err != nil {
		return nil, err
	}
	var user db.User
	if err := db.DB.Where("username = ?", demoUsername).First(&user).Error; err != nil {
		return nil, err
	}
	fmt.Println("✅ 演示用户就绪")
	return &user, nil
}

type demoPlant struct {
	name       string
	species    string
	cycleType  string
	cycleValue string
	// 距今几天前浇过水，负数表示从未浇水
	wateredDaysAgo []int
}

var demoPlants = []demoPlant{
	{name: "몬스테라", species: "Monstera deliciosa", cycleType: "WEEKLY", cycleValue: "1", wateredDaysAgo: []int{12, 5}},
	{name: "스투키", species: "Sansevieria stuckyi", cycleType: "MONTHLY", cycleValue: "1", wateredDaysAgo: []int{40}},
	{name: "바질", species: "Ocimum basilicum", cycleType: "DAILY", cycleValue: "5", wateredDaysAgo: []int{3, 1}},
	{name: "고무나무", species: "Ficus elastica", cycleType: "BIWEEKLY", cycleValue: "1", wateredDaysAgo: nil},
	{name: "선인장", species: "Cactaceae", cycleType: "WEEKLY", cycleValue: "abc", wateredDaysAgo: []int{9}},
}

// createDemoPlants 清理演示用户已有的植物后重新生成
func createDemoPlants(userID uint, today time.Time) ([]db.Plant, error) {
	plantService := service.NewPlantService(db.DB)
	taskLogService := service.NewTaskLogService(db.DB)

	existing, err := plantService.List(userID)
	if err != nil {
		return nil, err
	}
	for _, plant := range existing {
		if err := plantService.Delete(userID, plant.ID); err != nil {
			return nil, err
		}
	}

	plants := make([]db.Plant, 0, len(demoPlants))
	for _, demo := range demoPlants {
		adopted := today.AddDate(0, -3, 0)
		plant, err := plantService.Create(userID, service.PlantInput{
			Name:       demo.name,
			Species:    demo.species,
			CycleType:  demo.cycleType,
			CycleValue: demo.cycleValue,
			AdoptedAt:  &adopted,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", demo.name, err)
		}

		for _, daysAgo := range demo.wateredDaysAgo {
			if _, err := taskLogService.Record(service.TaskLogInput{
				PlantID:        plant.ID,
				Type:           "watering",
				CompletionDate: today.AddDate(0, 0, -daysAgo),
			}); err != nil {
				return nil, fmt.Errorf("water %s: %w", demo.name, err)
			}
		}
		plants = append(plants, *plant)
	}

	fmt.Println("✅ 植物与浇水记录创建完成")
	return plants, nil
}

var demoEmotions = []string{"happy", "calm", "sad", "excited", ""}

// createDemoDiaries 生成最近两周的日记，中间留出几天空白以便观察连续天数
func createDemoDiaries(userID uint, plants []db.Plant, today time.Time) error {
	if err := db.DB.Where("user_id = ?", userID).Delete(&db.Diary{}).Error; err != nil {
		return err
	}

	diaryService := service.NewDiaryService(db.DB)
	for daysAgo := 13; daysAgo >= 0; daysAgo-- {
		if daysAgo == 4 || daysAgo == 8 || daysAgo == 9 {
			continue
		}

		var plantID *uint
		if len(plants) > 0 {
			id := plants[daysAgo%len(plants)].ID
			plantID = &id
		}

		date := today.AddDate(0, 0, -daysAgo)
		if _, err := diaryService.Create(userID, service.DiaryInput{
			PlantID: plantID,
			Date:    date,
			Emotion: demoEmotions[daysAgo%len(demoEmotions)],
			Content: fmt.Sprintf("%s 의 기록\n\n오늘도 식물을 돌봤어요.", date.Format("2006-01-02")),
		}); err != nil {
			return err
		}
	}

	fmt.Println("✅ 日记创建完成")
	return nil
}
