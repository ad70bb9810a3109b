package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

type careResponse struct {
	Care struct {
		CycleDays    int     `json:"cycle_days"`
		DaysUntilDue int     `json:"days_until_due"`
		OverdueDays  int     `json:"overdue_days"`
		Status       string  `json:"status"`
		StatusLabel  string  `json:"status_label"`
		LastWatered  *string `json:"last_watered"`
		NextDue      string  `json:"next_due"`
	} `json:"care"`
}

func TestCreatePlantDefaultsCycleUnit(t *testing.T) {
	srv := newTestServer(t)
	token := srv.register("gardener")

	rr := srv.do(http.MethodPost, "/api/plants", token, gin.H{
		"name":        "Monstera",
		"cycle_type":  "weekly",
		"cycle_value": "1",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp plantResponse
	decodeJSON(t, rr, &resp)
	if resp.Plant.CycleType != "WEEKLY" {
		t.Fatalf("expected normalized cycle type WEEKLY, got %q", resp.Plant.CycleType)
	}
	if resp.Plant.CycleUnit != "days" {
		t.Fatalf("expected default cycle unit days, got %q", resp.Plant.CycleUnit)
	}
	if resp.Plant.ShareCode == "" {
		t.Fatalf("expected share code to be generated")
	}
}

func TestCreatePlantRejectsUnknownCycleType(t *testing.T) {
	srv := newTestServer(t)
	token := srv.register("gardener")

	rr := srv.do(http.MethodPost, "/api/plants", token, gin.H{
		"name":        "Monstera",
		"cycle_type":  "HOURLY",
		"cycle_value": "1",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestPlantCareReportsWarningBeforeDueDate(t *testing.T) {
	srv := newTestServer(t)
	token := srv.register("gardener")
	plantID := srv.createPlant(token, "Monstera", "WEEKLY", "1")
	srv.water(token, plantID, "2025-06-10")

	rr := srv.do(http.MethodGet, fmt.Sprintf("/api/plants/%d/care?lang=en", plantID), token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp careResponse
	decodeJSON(t, rr, &resp)

	if resp.Care.CycleDays != 7 {
		t.Fatalf("expected 7-day cycle, got %d", resp.Care.CycleDays)
	}
	if resp.Care.DaysUntilDue != 2 || resp.Care.OverdueDays != 0 {
		t.Fatalf("expected 2 days until due, got %+v", resp.Care)
	}
	if resp.Care.Status != "warning" || resp.Care.StatusLabel != "Soon" {
		t.Fatalf("expected warning/Soon, got %s/%s", resp.Care.Status, resp.Care.StatusLabel)
	}
	if resp.Care.LastWatered == nil || *resp.Care.LastWatered != "2025-06-10" {
		t.Fatalf("unexpected last watered: %v", resp.Care.LastWatered)
	}
	if resp.Care.NextDue != "2025-06-17" {
		t.Fatalf("expected next due 2025-06-17, got %s", resp.Care.NextDue)
	}
}

func TestPlantCareWithoutWateringNeedsCareImmediately(t *testing.T) {
	srv := newTestServer(t)
	token := srv.register("gardener")
	plantID := srv.createPlant(token, "Fern", "DAILY", "3")

	rr := srv.do(http.MethodGet, fmt.Sprintf("/api/plants/%d/care", plantID), token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp careResponse
	decodeJSON(t, rr, &resp)
	if resp.Care.Status != "needs_care" || resp.Care.LastWatered != nil {
		t.Fatalf("expected needs_care with no watering, got %+v", resp.Care)
	}
	if resp.Care.NextDue != "2025-06-15" {
		t.Fatalf("expected plant to be due today, got %s", resp.Care.NextDue)
	}
}

func TestPlantsAreScopedToOwner(t *testing.T) {
	srv := newTestServer(t)
	owner := srv.register("owner")
	other := srv.register("other")
	plantID := srv.createPlant(owner, "Monstera", "WEEKLY", "1")

	for _, path := range []string{
		fmt.Sprintf("/api/plants/%d", plantID),
		fmt.Sprintf("/api/plants/%d/care", plantID),
		fmt.Sprintf("/api/plants/%d/tasks", plantID),
	} {
		rr := srv.do(http.MethodGet, path, other, nil)
		if rr.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404 for other user, got %d", path, rr.Code)
		}
	}

	rr := srv.do(http.MethodDelete, fmt.Sprintf("/api/plants/%d", plantID), other, nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 deleting other user's plant, got %d", rr.Code)
	}
}

func TestUpdateAndDeletePlant(t *testing.T) {
	srv := newTestServer(t)
	token := srv.register("gardener")
	plantID := srv.createPlant(token, "Monstera", "WEEKLY", "1")
	srv.water(token, plantID, "2025-06-14")

	rr := srv.do(http.MethodPut, fmt.Sprintf("/api/plants/%d", plantID), token, gin.H{
		"name":        "Big Monstera",
		"cycle_type":  "MONTHLY",
		"cycle_value": "1",
		"adopted_at":  "2024-03-01",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp plantResponse
	decodeJSON(t, rr, &resp)
	if resp.Plant.Name != "Big Monstera" || resp.Plant.CycleType != "MONTHLY" {
		t.Fatalf("unexpected updated plant: %+v", resp.Plant)
	}

	rr = srv.do(http.MethodDelete, fmt.Sprintf("/api/plants/%d", plantID), token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	rr = srv.do(http.MethodGet, fmt.Sprintf("/api/plants/%d", plantID), token, nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rr.Code)
	}
}

func TestUpdatePlantRejectsMalformedAdoptedAt(t *testing.T) {
	srv := newTestServer(t)
	token := srv.register("gardener")
	plantID := srv.createPlant(token, "Monstera", "WEEKLY", "1")

	rr := srv.do(http.MethodPut, fmt.Sprintf("/api/plants/%d", plantID), token, gin.H{
		"name":       "Monstera",
		"cycle_type": "WEEKLY",
		"adopted_at": "03/01/2024",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestSharedPlantHidesOwnerFields(t *testing.T) {
	srv := newTestServer(t)
	token := srv.register("gardener")

	rr := srv.do(http.MethodPost, "/api/plants", token, gin.H{"name": "Pothos", "cycle_type": "WEEKLY", "cycle_value": "1"})
	var created plantResponse
	decodeJSON(t, rr, &created)

	rr = srv.do(http.MethodGet, "/api/shared/plants/"+created.Plant.ShareCode, "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var shared struct {
		Plant map[string]interface{} `json:"plant"`
	}
	decodeJSON(t, rr, &shared)
	if shared.Plant["name"] != "Pothos" {
		t.Fatalf("unexpected shared plant: %v", shared.Plant)
	}
	for _, hidden := range []string{"id", "share_code", "cycle_value"} {
		if _, ok := shared.Plant[hidden]; ok {
			t.Fatalf("shared payload should not expose %s", hidden)
		}
	}

	rr = srv.do(http.MethodGet, "/api/shared/plants/does-not-exist", "", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown code, got %d", rr.Code)
	}
}
