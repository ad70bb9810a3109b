package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/plantdiary/internal/care"
	"github.com/plantdiary/internal/db"
	"github.com/plantdiary/internal/locale"
	"github.com/plantdiary/internal/service"
)

type plantPayload struct {
	Name       string `json:"name"`
	Species    string `json:"species"`
	CycleType  string `json:"cycle_type"`
	CycleValue string `json:"cycle_value"`
	CycleUnit  string `json:"cycle_unit"`
	ImageURL   string `json:"image_url"`
	AdoptedAt  string `json:"adopted_at"`
}

// ListPlants 返回当前用户的植物及其浇水状态
func (a *API) ListPlants(c *gin.Context) {
	userID := currentUserID(c)

	plants, err := a.plants.List(userID)
	if err != nil {
		respondServerError(c, "failed to list plants", err)
		return
	}

	board, err := a.care.CareBoard(userID)
	if err != nil {
		respondServerError(c, "failed to compute care status", err)
		return
	}

	statusByPlant := make(map[uint]care.PlantCare, len(board))
	for _, entry := range board {
		statusByPlant[entry.PlantID] = entry
	}

	language := a.requestLanguage(c)
	items := make([]gin.H, 0, len(plants))
	for _, plant := range plants {
		item := plantToPayload(plant)
		if entry, ok := statusByPlant[plant.ID]; ok {
			item["care"] = carePayload(language, entry)
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, gin.H{"plants": items})
}

// GetPlant 返回单棵植物
func (a *API) GetPlant(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid plant id")
		return
	}

	plant, err := a.plants.Get(currentUserID(c), id)
	if err != nil {
		handlePlantError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plant": plantToPayload(*plant)})
}

// GetPlantCare 返回单棵植物的浇水状态
func (a *API) GetPlantCare(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid plant id")
		return
	}

	entry, err := a.care.PlantCare(currentUserID(c), id)
	if err != nil {
		handlePlantError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"care": carePayload(a.requestLanguage(c), entry)})
}

// GetSharedPlant 通过分享码公开展示植物，不返回所有者信息
func (a *API) GetSharedPlant(c *gin.Context) {
	plant, err := a.plants.GetByShareCode(c.Param("code"))
	if err != nil {
		handlePlantError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plant": gin.H{
		"name":       plant.Name,
		"species":    plant.Species,
		"image_url":  plant.ImageURL,
		"adopted_at": formatOptionalDate(plant.AdoptedAt),
	}})
}

// CreatePlant 登记新植物
func (a *API) CreatePlant(c *gin.Context) {
	input, ok := a.parsePlantInput(c)
	if !ok {
		return
	}

	plant, err := a.plants.Create(currentUserID(c), input)
	if err != nil {
		handlePlantError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"plant": plantToPayload(*plant)})
}

// UpdatePlant 更新植物信息
func (a *API) UpdatePlant(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid plant id")
		return
	}

	input, ok := a.parsePlantInput(c)
	if !ok {
		return
	}

	plant, err := a.plants.Update(currentUserID(c), id, input)
	if err != nil {
		handlePlantError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plant": plantToPayload(*plant)})
}

// DeletePlant 删除植物
func (a *API) DeletePlant(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid plant id")
		return
	}

	if err := a.plants.Delete(currentUserID(c), id); err != nil {
		handlePlantError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (a *API) parsePlantInput(c *gin.Context) (service.PlantInput, bool) {
	var payload plantPayload
	if !bindJSON(c, &payload, "invalid request body") {
		return service.PlantInput{}, false
	}

	adoptedAt, ok := parseOptionalDate(payload.AdoptedAt, a.location)
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid adopted_at date")
		return service.PlantInput{}, false
	}

	return service.PlantInput{
		Name:       payload.Name,
		Species:    payload.Species,
		CycleType:  payload.CycleType,
		CycleValue: payload.CycleValue,
		CycleUnit:  payload.CycleUnit,
		ImageURL:   payload.ImageURL,
		AdoptedAt:  adoptedAt,
	}, true
}

func plantToPayload(plant db.Plant) gin.H {
	return gin.H{
		"id":          plant.ID,
		"name":        plant.Name,
		"species":     plant.Species,
		"cycle_type":  plant.CycleType,
		"cycle_value": plant.CycleValue,
		"cycle_unit":  plant.CycleUnit,
		"image_url":   plant.ImageURL,
		"share_code":  plant.ShareCode,
		"adopted_at":  formatOptionalDate(plant.AdoptedAt),
	}
}

func carePayload(language string, entry care.PlantCare) gin.H {
	return gin.H{
		"cycle_days":     entry.CycleDays,
		"days_until_due": entry.DaysUntilDue,
		"overdue_days":   entry.OverdueDays,
		"status":         entry.Status,
		"status_label":   locale.StatusLabel(language, entry.Status),
		"last_watered":   formatOptionalDate(entry.LastWatered),
		"next_due":       entry.NextDue.Format(dateFormat),
	}
}

func handlePlantError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlantNotFound):
		respondError(c, http.StatusNotFound, "plant not found")
	case errors.Is(err, service.ErrPlantInvalidCycle):
		respondError(c, http.StatusBadRequest, "invalid cycle configuration")
	case errors.Is(err, service.ErrPlantInvalidInput):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		respondServerError(c, "plant operation failed", err)
	}
}
