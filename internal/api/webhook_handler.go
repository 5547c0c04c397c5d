package api

import (
	"log"
	"net/http"

	"fitcoach/coach-platform/internal/service"

	"github.com/gin-gonic/gin"
)

// WebhookHandler serves the Facebook leadgen webhook. Facebook calls these
// endpoints directly, so they sit outside the authenticated route groups.
type WebhookHandler struct {
	webhookService service.WebhookService
	tenantService  service.TenantService
	verifyToken    string
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(webhookService service.WebhookService, tenantService service.TenantService, verifyToken string) *WebhookHandler {
	return &WebhookHandler{
		webhookService: webhookService,
		tenantService:  tenantService,
		verifyToken:    verifyToken,
	}
}

// --- DTOs (Facebook webhook payload shape) ---

type facebookWebhookPayload struct {
	Object string                 `json:"object"`
	Entry  []facebookWebhookEntry `json:"entry"`
}

type facebookWebhookEntry struct {
	ID      string                  `json:"id"` // page id
	Changes []facebookWebhookChange `json:"changes"`
}

type facebookWebhookChange struct {
	Field string               `json:"field"`
	Value facebookWebhookValue `json:"value"`
}

type facebookWebhookValue struct {
	LeadgenID string `json:"leadgen_id"`
	PageID    string `json:"page_id"`
}

// --- Handler Methods ---

// Verify answers Facebook's subscription handshake by echoing hub.challenge
// when the verify token matches.
func (h *WebhookHandler) Verify(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == h.verifyToken {
		c.String(http.StatusOK, challenge)
		return
	}
	c.Status(http.StatusForbidden)
}

// Receive ingests a batch of leadgen notifications. The page id on each
// change routes the lead to the tenant that connected that page; changes for
// unconnected pages are logged and dropped.
func (h *WebhookHandler) Receive(c *gin.Context) {
	var payload facebookWebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWithError(c, http.StatusBadRequest, "Malformed webhook payload")
		return
	}

	var entries []service.WebhookEntry
	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			if change.Field != "leadgen" {
				continue
			}
			pageID := change.Value.PageID
			if pageID == "" {
				pageID = entry.ID
			}
			tenant, err := h.tenantService.TenantByFacebookPage(c.Request.Context(), pageID)
			if err != nil {
				log.Printf("WARN: Webhook: no tenant connected to page %s, dropping leadgen %s", pageID, change.Value.LeadgenID)
				continue
			}
			entries = append(entries, service.WebhookEntry{
				LeadgenID: change.Value.LeadgenID,
				PageID:    pageID,
				TenantID:  tenant.ID,
			})
		}
	}

	result := h.webhookService.ProcessLeadgenBatch(c.Request.Context(), entries)

	// Always 200: Facebook retries non-2xx responses and the batch has
	// already been handled item by item.
	c.JSON(http.StatusOK, result)
}
