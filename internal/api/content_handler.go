package api

import (
	"net/http"
	"time"

	"fitcoach/coach-platform/internal/service"

	"github.com/gin-gonic/gin"
)

// ContentHandler serves the daily tip/quote resolver and the superadmin
// override and seeding endpoints.
type ContentHandler struct {
	contentService service.ContentService
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(contentService service.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// --- DTOs ---

type UpsertOverrideRequest struct {
	DateKey string `json:"dateKey" binding:"required"`
	Tip     string `json:"tip"`
	Quote   string `json:"quote"`
	Author  string `json:"author"`
}

type SeedContentRequest struct {
	Entries []SeedContentEntry `json:"entries" binding:"required,min=1,dive"`
}

type SeedContentEntry struct {
	Tip    string `json:"tip"`
	Quote  string `json:"quote"`
	Author string `json:"author"`
}

// --- Handler Methods ---

// Resolve returns the content for ?date= (default today): an exact-date
// override when one exists, the day-of-year default otherwise.
func (h *ContentHandler) Resolve(c *gin.Context) {
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		var err error
		date, err = time.Parse("2006-01-02", raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "date must be formatted YYYY-MM-DD")
			return
		}
	}

	content, err := h.contentService.Resolve(c.Request.Context(), date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, content)
}

// UpsertOverride creates or replaces the override for one exact date.
func (h *ContentHandler) UpsertOverride(c *gin.Context) {
	var req UpsertOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	override, err := h.contentService.UpsertOverride(c.Request.Context(), service.OverrideInput{
		DateKey: req.DateKey,
		Tip:     req.Tip,
		Quote:   req.Quote,
		Author:  req.Author,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, override)
}

// DeleteOverride removes the override for one date.
func (h *ContentHandler) DeleteOverride(c *gin.Context) {
	if err := h.contentService.DeleteOverride(c.Request.Context(), c.Param("dateKey")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SeedDefaults replaces the 365-slot default library, assigning the given
// entries round-robin.
func (h *ContentHandler) SeedDefaults(c *gin.Context) {
	var req SeedContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	entries := make([]service.SeedEntry, 0, len(req.Entries))
	for _, e := range req.Entries {
		entries = append(entries, service.SeedEntry{Tip: e.Tip, Quote: e.Quote, Author: e.Author})
	}

	seeded, err := h.contentService.SeedDefaults(c.Request.Context(), entries)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"seeded": seeded})
}
