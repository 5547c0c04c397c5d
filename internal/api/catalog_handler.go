package api

import (
	"net/http"
	"strconv"

	"fitcoach/coach-platform/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves search over the shared food and workout libraries.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// SearchFoods returns paged food rows matching ?q= (name substring,
// case-insensitive).
func (h *CatalogHandler) SearchFoods(c *gin.Context) {
	page, limit, ok := paging(c)
	if !ok {
		return
	}

	rows, err := h.catalogService.SearchFoods(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// SearchWorkouts returns paged workout rows matching ?q=.
func (h *CatalogHandler) SearchWorkouts(c *gin.Context) {
	page, limit, ok := paging(c)
	if !ok {
		return
	}

	rows, err := h.catalogService.SearchWorkouts(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// paging parses ?page= and ?limit=, leaving clamping to the service.
func paging(c *gin.Context) (page, limit int, ok bool) {
	var err error
	if raw := c.Query("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "page must be an integer")
			return 0, 0, false
		}
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "limit must be an integer")
			return 0, 0, false
		}
	}
	return page, limit, true
}
