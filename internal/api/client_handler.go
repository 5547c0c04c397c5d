package api

import (
	"net/http"
	"time"

	"fitcoach/coach-platform/internal/domain"
	"fitcoach/coach-platform/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClientHandler serves the client roster, plan assignment and progress
// photo endpoints.
type ClientHandler struct {
	clientService service.ClientService
	planService   service.PlanService
	photoService  service.PhotoService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clientService service.ClientService, planService service.PlanService, photoService service.PhotoService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
		planService:   planService,
		photoService:  photoService,
	}
}

// --- DTOs ---

type AssignWorkoutRequest struct {
	WorkoutIDs  []string   `json:"workoutIds" binding:"required,min=1"`
	DayOfWeek   *int       `json:"dayOfWeek"`
	ApplyToWeek bool       `json:"applyToWeek"`
	WeekRef     *time.Time `json:"weekRef"`
	DurationMin *int       `json:"durationMin"`
	Notes       string     `json:"notes"`
}

type AssignMealRequest struct {
	FoodIDs     []string   `json:"foodIds" binding:"required,min=1"`
	MealType    string     `json:"mealType" binding:"required"`
	DayOfWeek   *int       `json:"dayOfWeek"`
	ApplyToWeek bool       `json:"applyToWeek"`
	WeekRef     *time.Time `json:"weekRef"`
	Notes       string     `json:"notes"`
}

type PlanStatusRequest struct {
	ItemID string `json:"itemId"`
	Status string `json:"status" binding:"required,oneof=assigned completed"`
}

type RequestPhotoUploadRequest struct {
	FileName    string     `json:"fileName" binding:"required"`
	ContentType string     `json:"contentType" binding:"required"`
	TakenAt     *time.Time `json:"takenAt"`
}

// --- Handler Methods ---

// ListClients returns the tenant's client roster.
func (h *ClientHandler) ListClients(c *gin.Context) {
	tenantID, err := resolveTenantID(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	clients, err := h.clientService.ListClients(c.Request.Context(), tenantID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

// GetClient returns one client with both embedded plans.
func (h *ClientHandler) GetClient(c *gin.Context) {
	tenantID, clientID, ok := h.scope(c)
	if !ok {
		return
	}

	client, err := h.clientService.GetClient(c.Request.Context(), tenantID, clientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// AssignWorkout merges workouts into the client's current-week workout plan.
func (h *ClientHandler) AssignWorkout(c *gin.Context) {
	var req AssignWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	tenantID, clientID, ok := h.scope(c)
	if !ok {
		return
	}
	workoutIDs, err := parseObjectIDs(req.WorkoutIDs)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format")
		return
	}

	client, err := h.planService.AssignWorkout(c.Request.Context(), tenantID, clientID, service.AssignWorkoutInput{
		WorkoutIDs:  workoutIDs,
		DayOfWeek:   req.DayOfWeek,
		ApplyToWeek: req.ApplyToWeek,
		WeekRef:     req.WeekRef,
		DurationMin: req.DurationMin,
		Notes:       req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, client.WorkoutPlan)
}

// AssignMeal merges foods into the client's current-week meal plan.
func (h *ClientHandler) AssignMeal(c *gin.Context) {
	var req AssignMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	tenantID, clientID, ok := h.scope(c)
	if !ok {
		return
	}
	foodIDs, err := parseObjectIDs(req.FoodIDs)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid food ID format")
		return
	}

	client, err := h.planService.AssignMeal(c.Request.Context(), tenantID, clientID, service.AssignMealInput{
		FoodIDs:     foodIDs,
		MealType:    domain.MealType(req.MealType),
		DayOfWeek:   req.DayOfWeek,
		ApplyToWeek: req.ApplyToWeek,
		WeekRef:     req.WeekRef,
		Notes:       req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, client.MealPlan)
}

// UpdateWorkoutStatus toggles one workout item, or the whole plan when no
// item id is sent.
func (h *ClientHandler) UpdateWorkoutStatus(c *gin.Context) {
	h.updatePlanStatus(c, domain.PlanKindWorkout)
}

// UpdateMealStatus toggles one meal item, or the whole plan when no item id
// is sent.
func (h *ClientHandler) UpdateMealStatus(c *gin.Context) {
	h.updatePlanStatus(c, domain.PlanKindMeal)
}

func (h *ClientHandler) updatePlanStatus(c *gin.Context, kind domain.PlanKind) {
	var req PlanStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	tenantID, clientID, ok := h.scope(c)
	if !ok {
		return
	}

	client, err := h.planService.UpdatePlanStatus(c.Request.Context(), tenantID, clientID, kind, req.ItemID, domain.PlanStatus(req.Status))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, client.PlanFor(kind))
}

// RequestPhotoUpload stores photo metadata and hands back a presigned PUT URL.
func (h *ClientHandler) RequestPhotoUpload(c *gin.Context) {
	var req RequestPhotoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	tenantID, clientID, ok := h.scope(c)
	if !ok {
		return
	}

	ticket, err := h.photoService.RequestUpload(c.Request.Context(), tenantID, clientID, req.FileName, req.ContentType, req.TakenAt)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

// ListPhotos returns the client's photo metadata with presigned GET URLs.
func (h *ClientHandler) ListPhotos(c *gin.Context) {
	tenantID, clientID, ok := h.scope(c)
	if !ok {
		return
	}

	photos, err := h.photoService.ListPhotos(c.Request.Context(), tenantID, clientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, photos)
}

// DeletePhoto removes the stored object and its metadata.
func (h *ClientHandler) DeletePhoto(c *gin.Context) {
	tenantID, err := resolveTenantID(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	photoID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid photo ID format")
		return
	}

	if err := h.photoService.DeletePhoto(c.Request.Context(), tenantID, photoID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// scope resolves the acting tenant and the :id path parameter together.
func (h *ClientHandler) scope(c *gin.Context) (tenantID, clientID primitive.ObjectID, ok bool) {
	tenantID, err := resolveTenantID(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	clientID, err = primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	return tenantID, clientID, true
}

func parseObjectIDs(raw []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, s := range raw {
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
