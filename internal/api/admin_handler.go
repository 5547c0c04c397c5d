package api

import (
	"net/http"

	"fitcoach/coach-platform/internal/domain"
	"fitcoach/coach-platform/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminHandler serves the superadmin surface: tenant provisioning, pricing
// plan management and shared catalog maintenance.
type AdminHandler struct {
	tenantService  service.TenantService
	catalogService service.CatalogService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(tenantService service.TenantService, catalogService service.CatalogService) *AdminHandler {
	return &AdminHandler{
		tenantService:  tenantService,
		catalogService: catalogService,
	}
}

// --- DTOs ---

type CreateTenantRequest struct {
	Name         string `json:"name" binding:"required"`
	ContactEmail string `json:"contactEmail" binding:"required,email"`
	ContactPhone string `json:"contactPhone"`
}

type ConnectFacebookPageRequest struct {
	PageID string `json:"pageId" binding:"required"`
}

type PricingPlanRequest struct {
	Tier     string   `json:"tier" binding:"required,oneof=standard silver gold diamond"`
	Price    float64  `json:"price" binding:"min=0"`
	Features []string `json:"features"`
}

type CreateFoodRequest struct {
	FoodName   string  `json:"food_name" binding:"required"`
	Category   string  `json:"category"`
	Calories   float64 `json:"calories"`
	ProteinG   float64 `json:"protein_g"`
	CarbsG     float64 `json:"carbs_g"`
	FatG       float64 `json:"fat_g"`
	ServingQty string  `json:"serving_qty"`
}

type CreateWorkoutRequest struct {
	WorkoutName string `json:"workoutName" binding:"required"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty"`
	DurationMin *int   `json:"durationMin"`
	VideoURL    string `json:"videoUrl"`
}

// --- Tenant Methods ---

// CreateTenant provisions a tenant with its seeded standard pricing plan.
func (h *AdminHandler) CreateTenant(c *gin.Context) {
	var req CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	tenant, err := h.tenantService.CreateTenant(c.Request.Context(), req.Name, req.ContactEmail, req.ContactPhone)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tenant)
}

// ListTenants returns every tenant.
func (h *AdminHandler) ListTenants(c *gin.Context) {
	tenants, err := h.tenantService.ListTenants(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tenants)
}

// GetTenant returns one tenant by id.
func (h *AdminHandler) GetTenant(c *gin.Context) {
	tenantID, ok := pathObjectID(c, "tenantId", "Invalid tenant ID format")
	if !ok {
		return
	}

	tenant, err := h.tenantService.GetTenant(c.Request.Context(), tenantID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tenant)
}

// ConnectFacebookPage binds a Facebook page id to the tenant so leadgen
// webhooks route to it.
func (h *AdminHandler) ConnectFacebookPage(c *gin.Context) {
	var req ConnectFacebookPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	tenantID, ok := pathObjectID(c, "tenantId", "Invalid tenant ID format")
	if !ok {
		return
	}

	tenant, err := h.tenantService.ConnectFacebookPage(c.Request.Context(), tenantID, req.PageID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tenant)
}

// --- Pricing Plan Methods ---

// AddPricingPlan adds a plan to the tenant's offer.
func (h *AdminHandler) AddPricingPlan(c *gin.Context) {
	var req PricingPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	tenantID, ok := pathObjectID(c, "tenantId", "Invalid tenant ID format")
	if !ok {
		return
	}

	tenant, err := h.tenantService.AddPricingPlan(c.Request.Context(), tenantID, service.PricingPlanInput{
		Tier:     domain.PricingTier(req.Tier),
		Price:    req.Price,
		Features: req.Features,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tenant)
}

// UpdatePricingPlan edits one plan in place.
func (h *AdminHandler) UpdatePricingPlan(c *gin.Context) {
	var req PricingPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	tenantID, ok := pathObjectID(c, "tenantId", "Invalid tenant ID format")
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "planId", "Invalid pricing plan ID format")
	if !ok {
		return
	}

	tenant, err := h.tenantService.UpdatePricingPlan(c.Request.Context(), tenantID, planID, service.PricingPlanInput{
		Tier:     domain.PricingTier(req.Tier),
		Price:    req.Price,
		Features: req.Features,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tenant)
}

// RemovePricingPlan deletes one plan. The standard plan is locked.
func (h *AdminHandler) RemovePricingPlan(c *gin.Context) {
	tenantID, ok := pathObjectID(c, "tenantId", "Invalid tenant ID format")
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "planId", "Invalid pricing plan ID format")
	if !ok {
		return
	}

	tenant, err := h.tenantService.RemovePricingPlan(c.Request.Context(), tenantID, planID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tenant)
}

// --- Catalog Methods ---

// CreateFood adds an entry to the shared food library.
func (h *AdminHandler) CreateFood(c *gin.Context) {
	var req CreateFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	item, err := h.catalogService.CreateFood(c.Request.Context(), &domain.FoodItem{
		FoodName:   req.FoodName,
		Category:   req.Category,
		Calories:   req.Calories,
		ProteinG:   req.ProteinG,
		CarbsG:     req.CarbsG,
		FatG:       req.FatG,
		ServingQty: req.ServingQty,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// CreateWorkout adds an entry to the shared workout library.
func (h *AdminHandler) CreateWorkout(c *gin.Context) {
	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	item, err := h.catalogService.CreateWorkout(c.Request.Context(), &domain.WorkoutItem{
		WorkoutName: req.WorkoutName,
		Category:    req.Category,
		Difficulty:  req.Difficulty,
		DurationMin: req.DurationMin,
		VideoURL:    req.VideoURL,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// DeleteFood removes one food library entry.
func (h *AdminHandler) DeleteFood(c *gin.Context) {
	id, ok := pathObjectID(c, "id", "Invalid catalog item ID format")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteFood(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteWorkout removes one workout library entry.
func (h *AdminHandler) DeleteWorkout(c *gin.Context) {
	id, ok := pathObjectID(c, "id", "Invalid catalog item ID format")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteWorkout(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// pathObjectID parses one path parameter as an ObjectID, aborting with the
// given message on failure.
func pathObjectID(c *gin.Context, name, message string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, message)
		return primitive.NilObjectID, false
	}
	return id, true
}
