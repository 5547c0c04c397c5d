package api

import (
	"errors"
	"log"
	"net/http"

	"fitcoach/coach-platform/internal/facebook"
	"fitcoach/coach-platform/internal/service"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps service-layer sentinel errors onto HTTP statuses
// and aborts the request. Unknown errors are logged with request context and
// surface as a bare 500.
func respondServiceError(c *gin.Context, err error) {
	var graphErr *facebook.GraphError

	switch {
	case errors.Is(err, service.ErrLeadNotFound),
		errors.Is(err, service.ErrClientNotFound),
		errors.Is(err, service.ErrPlanNotFound),
		errors.Is(err, service.ErrPlanItemNotFound),
		errors.Is(err, service.ErrCatalogItemsNotFound),
		errors.Is(err, service.ErrCatalogItemNotFound),
		errors.Is(err, service.ErrTenantNotFound),
		errors.Is(err, service.ErrPricingPlanNotFound),
		errors.Is(err, service.ErrOverrideNotFound),
		errors.Is(err, service.ErrPhotoNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrLeadAlreadyExists),
		errors.Is(err, service.ErrUserAlreadyExists),
		errors.Is(err, service.ErrTenantMismatch),
		errors.Is(err, service.ErrTenantNameTaken),
		errors.Is(err, service.ErrTierAlreadyOffered),
		errors.Is(err, service.ErrPricingPlanLimit),
		errors.Is(err, service.ErrStandardPlanLocked):
		abortWithError(c, http.StatusConflict, err.Error())

	case errors.Is(err, service.ErrInvalidLeadStatus),
		errors.Is(err, service.ErrInvalidDayOfWeek),
		errors.Is(err, service.ErrInvalidMealType),
		errors.Is(err, service.ErrInvalidPlanStatus),
		errors.Is(err, service.ErrInvalidPricingTier):
		abortWithError(c, http.StatusBadRequest, err.Error())

	case errors.Is(err, service.ErrAuthenticationFailed),
		errors.Is(err, service.ErrRoleNotAllowed):
		abortWithError(c, http.StatusUnauthorized, err.Error())

	case errors.As(err, &graphErr):
		// Upstream failure: pass the Graph message through.
		abortWithError(c, http.StatusBadGateway, graphErr.Message)

	default:
		log.Printf("ERROR: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
