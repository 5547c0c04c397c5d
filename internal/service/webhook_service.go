package service

import (
	"context"
	"errors"
	"log"

	"fitcoach/coach-platform/internal/facebook"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WebhookEntry is one change notification in a Facebook webhook batch.
type WebhookEntry struct {
	LeadgenID string
	PageID    string
	TenantID  primitive.ObjectID // resolved from page-to-tenant mapping at the API layer
}

// WebhookResult summarizes one processed batch.
type WebhookResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// --- Service Interface ---
type WebhookService interface {
	// ProcessLeadgenBatch ingests a batch of leadgen notifications. Failures
	// are isolated per entry so one bad lead never aborts the batch.
	ProcessLeadgenBatch(ctx context.Context, entries []WebhookEntry) WebhookResult
}

// --- Service Implementation ---

// webhookService implements the WebhookService interface.
type webhookService struct {
	graph       facebook.GraphClient
	leadService LeadService
}

// NewWebhookService creates a new instance of webhookService.
func NewWebhookService(graph facebook.GraphClient, leadService LeadService) WebhookService {
	return &webhookService{
		graph:       graph,
		leadService: leadService,
	}
}

// ProcessLeadgenBatch resolves each leadgen id via the Graph API and creates
// the lead under the entry's tenant. Duplicate emails count as skipped;
// upstream or storage failures are logged and counted, and processing
// continues with the remaining entries.
func (s *webhookService) ProcessLeadgenBatch(ctx context.Context, entries []WebhookEntry) WebhookResult {
	var result WebhookResult
	for _, entry := range entries {
		if entry.LeadgenID == "" || entry.TenantID == primitive.NilObjectID {
			result.Failed++
			continue
		}

		lead, err := s.graph.FetchLead(ctx, entry.LeadgenID)
		if err != nil {
			log.Printf("ERROR: webhook leadgen %s: graph fetch failed: %v", entry.LeadgenID, err)
			result.Failed++
			continue
		}
		if lead.Email == "" {
			log.Printf("WARN: webhook leadgen %s carries no email, skipping", entry.LeadgenID)
			result.Skipped++
			continue
		}

		_, err = s.leadService.CreateLead(ctx, entry.TenantID, CreateLeadInput{
			Name:   lead.FullName,
			Email:  lead.Email,
			Phone:  lead.Phone,
			Source: "facebook",
		})
		switch {
		case err == nil:
			result.Created++
		case errors.Is(err, ErrLeadAlreadyExists):
			result.Skipped++
		default:
			log.Printf("ERROR: webhook leadgen %s: lead create failed: %v", entry.LeadgenID, err)
			result.Failed++
		}
	}
	return result
}
