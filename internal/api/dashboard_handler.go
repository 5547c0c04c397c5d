package api

import (
	"net/http"
	"time"

	"fitcoach/coach-platform/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DashboardHandler serves the aggregated activity dashboard and the raw
// activity ingest endpoint.
type DashboardHandler struct {
	dashboardService service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// --- DTOs ---

type RecordActivityRequest struct {
	ClientID          string    `json:"clientId" binding:"required"`
	Date              time.Time `json:"date" binding:"required"`
	Steps             int       `json:"steps"`
	CaloriesBurned    float64   `json:"caloriesBurned"`
	WeightKg          float64   `json:"weightKg"`
	SleepHours        float64   `json:"sleepHours"`
	NutritionCalories float64   `json:"nutritionCalories"`
	MealCount         int       `json:"mealCount"`
}

// --- Handler Methods ---

// Summary returns the tenant's dashboard: today's snapshot, lifetime totals
// and the four per-day trend series.
func (h *DashboardHandler) Summary(c *gin.Context) {
	tenantID, err := resolveTenantID(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.dashboardService.Summary(c.Request.Context(), tenantID, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// RecordActivity stores one day of tracked metrics for a client.
func (h *DashboardHandler) RecordActivity(c *gin.Context) {
	var req RecordActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	tenantID, err := resolveTenantID(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	clientID, err := primitive.ObjectIDFromHex(req.ClientID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	activity, err := h.dashboardService.RecordActivity(c.Request.Context(), tenantID, service.RecordActivityInput{
		ClientID:          clientID,
		Date:              req.Date,
		Steps:             req.Steps,
		CaloriesBurned:    req.CaloriesBurned,
		WeightKg:          req.WeightKg,
		SleepHours:        req.SleepHours,
		NutritionCalories: req.NutritionCalories,
		MealCount:         req.MealCount,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, activity)
}
