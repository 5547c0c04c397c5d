package api

import (
	"net/http"
	"strconv"
	"time"

	"fitcoach/coach-platform/internal/domain"
	"fitcoach/coach-platform/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LeadHandler serves the lead store and lifecycle endpoints.
type LeadHandler struct {
	leadService service.LeadService
}

// NewLeadHandler creates a new LeadHandler.
func NewLeadHandler(leadService service.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// --- DTOs ---

type CreateLeadRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`
}

type AddFollowUpRequest struct {
	Asked      string            `json:"asked"`
	Response   string            `json:"response"`
	Status     domain.LeadStatus `json:"status" binding:"required,oneof=hot warm cold"`
	CallbackAt *time.Time        `json:"callbackAt"`
}

type FollowUpsResponse struct {
	FollowUps  []domain.FollowUp `json:"followUps"`
	LeadStatus domain.LeadStatus `json:"leadStatus"`
}

type ConvertResponse struct {
	Success  bool   `json:"success"`
	ClientID string `json:"clientId"`
}

// --- Handler Methods ---

// CreateLead registers a manually entered prospect for the acting tenant.
func (h *LeadHandler) CreateLead(c *gin.Context) {
	var req CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	tenantID, err := resolveTenantID(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	lead, err := h.leadService.CreateLead(c.Request.Context(), tenantID, service.CreateLeadInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lead)
}

// ListLeads returns the tenant's leads, optionally filtered by ?status=.
func (h *LeadHandler) ListLeads(c *gin.Context) {
	tenantID, err := resolveTenantID(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	leads, err := h.leadService.ListLeads(c.Request.Context(), tenantID, domain.LeadStatus(c.Query("status")))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, leads)
}

// AddFollowUp appends a follow-up entry; the entry's status becomes the
// lead's current status.
func (h *LeadHandler) AddFollowUp(c *gin.Context) {
	var req AddFollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	tenantID, err := resolveTenantID(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	leadID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid lead ID format")
		return
	}
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}

	lead, err := h.leadService.AddFollowUp(c.Request.Context(), tenantID, leadID, service.FollowUpInput{
		Asked:      req.Asked,
		Response:   req.Response,
		Status:     req.Status,
		CallbackAt: req.CallbackAt,
		CreatedBy:  userID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, FollowUpsResponse{
		FollowUps:  lead.FollowUps,
		LeadStatus: lead.LeadStatus,
	})
}

// DueFollowUps returns flattened follow-up rows due on ?date= (default
// today), optionally widened to ?rangeDays= trailing days.
func (h *LeadHandler) DueFollowUps(c *gin.Context) {
	tenantID, err := resolveTenantID(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		date, err = time.Parse("2006-01-02", raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "date must be formatted YYYY-MM-DD")
			return
		}
	}

	rangeDays := 0
	if raw := c.Query("rangeDays"); raw != "" {
		rangeDays, err = strconv.Atoi(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "rangeDays must be an integer")
			return
		}
	}

	rows, err := h.leadService.DueFollowUps(c.Request.Context(), tenantID, date, rangeDays)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Convert moves a lead into the client roster.
func (h *LeadHandler) Convert(c *gin.Context) {
	tenantID, err := resolveTenantID(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	leadID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid lead ID format")
		return
	}
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}

	client, err := h.leadService.ConvertToClient(c.Request.Context(), tenantID, leadID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ConvertResponse{Success: true, ClientID: client.ID.Hex()})
}

// Revert undoes a conversion, hard-deleting the client document.
func (h *LeadHandler) Revert(c *gin.Context) {
	tenantID, err := resolveTenantID(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	clientID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	if _, err := h.leadService.RevertToLead(c.Request.Context(), tenantID, clientID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
