package service

import (
	"context"
	"testing"

	"fitcoach/coach-platform/internal/facebook"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestProcessLeadgenBatch(t *testing.T) {
	ctx := context.Background()
	tenantID := primitive.NewObjectID()

	setup := func() (WebhookService, *fakeGraphClient, LeadService) {
		graph := newFakeGraphClient()
		leadService, _, _ := newLeadServiceForTest()
		return NewWebhookService(graph, leadService), graph, leadService
	}

	t.Run("creates leads tagged with the facebook source", func(t *testing.T) {
		svc, graph, leadService := setup()
		graph.leads["lg-1"] = &facebook.LeadData{
			LeadgenID: "lg-1",
			FullName:  "Web Hook",
			Email:     "hook@example.com",
			Phone:     "555-0300",
		}

		result := svc.ProcessLeadgenBatch(ctx, []WebhookEntry{
			{LeadgenID: "lg-1", PageID: "page-1", TenantID: tenantID},
		})

		assert.Equal(t, WebhookResult{Created: 1}, result)

		leads, err := leadService.ListLeads(ctx, tenantID, "")
		require.NoError(t, err)
		require.Len(t, leads, 1)
		assert.Equal(t, "facebook", leads[0].LeadSource)
		assert.Equal(t, "Web", leads[0].FirstName)
		assert.Equal(t, "Hook", leads[0].LastName)
	})

	t.Run("one bad entry never aborts the batch", func(t *testing.T) {
		svc, graph, _ := setup()
		graph.leads["lg-good"] = &facebook.LeadData{LeadgenID: "lg-good", FullName: "Good Lead", Email: "good@example.com"}
		graph.errs["lg-bad"] = &facebook.GraphError{StatusCode: 500, Message: "server error"}
		graph.leads["lg-noemail"] = &facebook.LeadData{LeadgenID: "lg-noemail", FullName: "No Email"}

		result := svc.ProcessLeadgenBatch(ctx, []WebhookEntry{
			{LeadgenID: "lg-bad", PageID: "page-1", TenantID: tenantID},
			{LeadgenID: "lg-noemail", PageID: "page-1", TenantID: tenantID},
			{LeadgenID: "lg-good", PageID: "page-1", TenantID: tenantID},
		})

		assert.Equal(t, WebhookResult{Created: 1, Skipped: 1, Failed: 1}, result)
	})

	t.Run("duplicate emails count as skipped", func(t *testing.T) {
		svc, graph, _ := setup()
		graph.leads["lg-dup"] = &facebook.LeadData{LeadgenID: "lg-dup", FullName: "Dup Lead", Email: "dup@example.com"}

		first := svc.ProcessLeadgenBatch(ctx, []WebhookEntry{{LeadgenID: "lg-dup", TenantID: tenantID}})
		second := svc.ProcessLeadgenBatch(ctx, []WebhookEntry{{LeadgenID: "lg-dup", TenantID: tenantID}})

		assert.Equal(t, WebhookResult{Created: 1}, first)
		assert.Equal(t, WebhookResult{Skipped: 1}, second)
	})

	t.Run("entries without a resolved tenant fail", func(t *testing.T) {
		svc, _, _ := setup()

		result := svc.ProcessLeadgenBatch(ctx, []WebhookEntry{{LeadgenID: "lg-1"}})
		assert.Equal(t, WebhookResult{Failed: 1}, result)
	})
}
