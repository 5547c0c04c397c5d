package service

import (
	"context"
	"testing"
	"time"

	"fitcoach/coach-platform/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newLeadServiceForTest() (LeadService, *fakeUserRepo, *fakeClientRepo) {
	userRepo := newFakeUserRepo()
	clientRepo := newFakeClientRepo()
	return NewLeadService(userRepo, clientRepo), userRepo, clientRepo
}

func TestCreateLead(t *testing.T) {
	ctx := context.Background()
	tenantA := primitive.NewObjectID()
	tenantB := primitive.NewObjectID()

	t.Run("creates with split name and defaults", func(t *testing.T) {
		svc, _, _ := newLeadServiceForTest()

		lead, err := svc.CreateLead(ctx, tenantA, CreateLeadInput{
			Name:  "Jane Doe Smith",
			Email: "jane@example.com",
			Phone: "555-0100",
		})
		require.NoError(t, err)

		assert.Equal(t, "Jane", lead.FirstName)
		assert.Equal(t, "Doe Smith", lead.LastName)
		assert.Equal(t, domain.RoleConsumer, lead.Role)
		assert.Equal(t, domain.LeadStatusNew, lead.LeadStatus)
		assert.Equal(t, "manual", lead.LeadSource)
		assert.NotEmpty(t, lead.UniqueID)
		assert.False(t, lead.ID.IsZero())
	})

	t.Run("single token name gets Prospect surname", func(t *testing.T) {
		svc, _, _ := newLeadServiceForTest()

		lead, err := svc.CreateLead(ctx, tenantA, CreateLeadInput{Name: "Madonna", Email: "m@example.com"})
		require.NoError(t, err)

		assert.Equal(t, "Madonna", lead.FirstName)
		assert.Equal(t, "Prospect", lead.LastName)
	})

	t.Run("duplicate email within tenant conflicts", func(t *testing.T) {
		svc, _, _ := newLeadServiceForTest()

		_, err := svc.CreateLead(ctx, tenantA, CreateLeadInput{Email: "dup@example.com"})
		require.NoError(t, err)

		_, err = svc.CreateLead(ctx, tenantA, CreateLeadInput{Email: "dup@example.com"})
		assert.ErrorIs(t, err, ErrLeadAlreadyExists)
	})

	t.Run("same email under another tenant is fine", func(t *testing.T) {
		svc, _, _ := newLeadServiceForTest()

		_, err := svc.CreateLead(ctx, tenantA, CreateLeadInput{Email: "shared@example.com"})
		require.NoError(t, err)

		_, err = svc.CreateLead(ctx, tenantB, CreateLeadInput{Email: "shared@example.com"})
		assert.NoError(t, err)
	})
}

func TestAddFollowUp(t *testing.T) {
	ctx := context.Background()
	tenantID := primitive.NewObjectID()
	coachID := primitive.NewObjectID()

	svc, userRepo, _ := newLeadServiceForTest()
	lead, err := svc.CreateLead(ctx, tenantID, CreateLeadInput{Name: "Lead One", Email: "one@example.com"})
	require.NoError(t, err)

	t.Run("entry status becomes the lead status", func(t *testing.T) {
		updated, err := svc.AddFollowUp(ctx, tenantID, lead.ID, FollowUpInput{
			Asked:     "Interested in the gold plan?",
			Response:  "Call back next week",
			Status:    domain.LeadStatusHot,
			CreatedBy: coachID,
		})
		require.NoError(t, err)

		assert.Equal(t, domain.LeadStatusHot, updated.LeadStatus)
		require.Len(t, updated.FollowUps, 1)
		assert.Equal(t, domain.LeadStatusHot, updated.FollowUps[0].Status)
	})

	t.Run("later entry overwrites the status even to a colder one", func(t *testing.T) {
		updated, err := svc.AddFollowUp(ctx, tenantID, lead.ID, FollowUpInput{
			Status:    domain.LeadStatusCold,
			CreatedBy: coachID,
		})
		require.NoError(t, err)

		assert.Equal(t, domain.LeadStatusCold, updated.LeadStatus)
		assert.Len(t, updated.FollowUps, 2)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		_, err := svc.AddFollowUp(ctx, tenantID, lead.ID, FollowUpInput{Status: "boiling"})
		assert.ErrorIs(t, err, ErrInvalidLeadStatus)
	})

	t.Run("new is not a call outcome", func(t *testing.T) {
		_, err := svc.AddFollowUp(ctx, tenantID, lead.ID, FollowUpInput{Status: domain.LeadStatusNew})
		assert.ErrorIs(t, err, ErrInvalidLeadStatus)

		// The rejected entry must not have reset the lead.
		assert.Equal(t, domain.LeadStatusCold, userRepo.users[lead.ID].LeadStatus)
	})

	t.Run("another tenant's lead reads as absent", func(t *testing.T) {
		_, err := svc.AddFollowUp(ctx, primitive.NewObjectID(), lead.ID, FollowUpInput{Status: domain.LeadStatusWarm})
		assert.ErrorIs(t, err, ErrLeadNotFound)
	})
}

func TestDueFollowUps(t *testing.T) {
	ctx := context.Background()
	tenantID := primitive.NewObjectID()
	svc, _, _ := newLeadServiceForTest()

	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	at := func(t time.Time) *time.Time { return &t }

	lead1, err := svc.CreateLead(ctx, tenantID, CreateLeadInput{Name: "Early Bird", Email: "early@example.com"})
	require.NoError(t, err)
	lead2, err := svc.CreateLead(ctx, tenantID, CreateLeadInput{Name: "Late Riser", Email: "late@example.com"})
	require.NoError(t, err)

	_, err = svc.AddFollowUp(ctx, tenantID, lead1.ID, FollowUpInput{
		Status:     domain.LeadStatusWarm,
		CallbackAt: at(day.Add(16 * time.Hour)), // 16:00 on the day
	})
	require.NoError(t, err)
	_, err = svc.AddFollowUp(ctx, tenantID, lead2.ID, FollowUpInput{
		Status:     domain.LeadStatusHot,
		CallbackAt: at(day.Add(9 * time.Hour)), // 09:00 on the day
	})
	require.NoError(t, err)
	_, err = svc.AddFollowUp(ctx, tenantID, lead2.ID, FollowUpInput{
		Status:     domain.LeadStatusHot,
		CallbackAt: at(day.AddDate(0, 0, 2)), // outside the one-day window
	})
	require.NoError(t, err)

	t.Run("single day window sorted ascending", func(t *testing.T) {
		rows, err := svc.DueFollowUps(ctx, tenantID, day.Add(13*time.Hour), 0)
		require.NoError(t, err)

		require.Len(t, rows, 2)
		assert.Equal(t, lead2.ID, rows[0].LeadID)
		assert.Equal(t, lead1.ID, rows[1].LeadID)
	})

	t.Run("range widens the window", func(t *testing.T) {
		rows, err := svc.DueFollowUps(ctx, tenantID, day, 3)
		require.NoError(t, err)
		assert.Len(t, rows, 3)
	})

	t.Run("day boundary is exclusive at the top", func(t *testing.T) {
		rows, err := svc.DueFollowUps(ctx, tenantID, day.AddDate(0, 0, 1), 1)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestConvertToClient(t *testing.T) {
	ctx := context.Background()
	tenantID := primitive.NewObjectID()
	coachID := primitive.NewObjectID()

	t.Run("copies contact details", func(t *testing.T) {
		svc, userRepo, _ := newLeadServiceForTest()
		lead, err := svc.CreateLead(ctx, tenantID, CreateLeadInput{Name: "Jane Doe", Email: "jane@example.com", Phone: "555-0101"})
		require.NoError(t, err)

		client, err := svc.ConvertToClient(ctx, tenantID, lead.ID, coachID)
		require.NoError(t, err)

		assert.Equal(t, "Jane", client.FirstName)
		assert.Equal(t, "Doe", client.LastName)
		assert.Equal(t, "jane@example.com", client.Email)
		assert.Equal(t, "555-0101", client.Phone)
		assert.Equal(t, tenantID, client.TenantID)

		flipped, err := userRepo.GetByID(ctx, lead.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleClient, flipped.Role)
	})

	t.Run("nameless lead falls back to Client User", func(t *testing.T) {
		svc, _, _ := newLeadServiceForTest()
		lead, err := svc.CreateLead(ctx, tenantID, CreateLeadInput{Email: "anon@example.com"})
		require.NoError(t, err)

		client, err := svc.ConvertToClient(ctx, tenantID, lead.ID, coachID)
		require.NoError(t, err)

		assert.Equal(t, "Client", client.FirstName)
		// The create path already defaulted the surname.
		assert.Equal(t, "Prospect", client.LastName)
	})

	t.Run("wrong tenant conflicts", func(t *testing.T) {
		svc, _, _ := newLeadServiceForTest()
		lead, err := svc.CreateLead(ctx, tenantID, CreateLeadInput{Email: "other@example.com"})
		require.NoError(t, err)

		_, err = svc.ConvertToClient(ctx, primitive.NewObjectID(), lead.ID, coachID)
		assert.ErrorIs(t, err, ErrTenantMismatch)
	})

	t.Run("already converted lead cannot convert again", func(t *testing.T) {
		svc, _, _ := newLeadServiceForTest()
		lead, err := svc.CreateLead(ctx, tenantID, CreateLeadInput{Email: "twice@example.com"})
		require.NoError(t, err)

		_, err = svc.ConvertToClient(ctx, tenantID, lead.ID, coachID)
		require.NoError(t, err)

		_, err = svc.ConvertToClient(ctx, tenantID, lead.ID, coachID)
		assert.ErrorIs(t, err, ErrLeadNotFound)
	})
}

func TestRevertToLead(t *testing.T) {
	ctx := context.Background()
	tenantID := primitive.NewObjectID()
	coachID := primitive.NewObjectID()

	t.Run("flips the existing user back and deletes the client", func(t *testing.T) {
		svc, _, clientRepo := newLeadServiceForTest()
		lead, err := svc.CreateLead(ctx, tenantID, CreateLeadInput{Name: "Back Forth", Email: "back@example.com"})
		require.NoError(t, err)
		client, err := svc.ConvertToClient(ctx, tenantID, lead.ID, coachID)
		require.NoError(t, err)

		reverted, err := svc.RevertToLead(ctx, tenantID, client.ID)
		require.NoError(t, err)

		assert.Equal(t, lead.ID, reverted.ID)
		assert.Equal(t, domain.RoleConsumer, reverted.Role)
		_, err = clientRepo.GetByID(ctx, client.ID)
		assert.Error(t, err)
	})

	t.Run("recreates the user when none matches", func(t *testing.T) {
		svc, _, clientRepo := newLeadServiceForTest()
		clientID, err := clientRepo.Create(ctx, &domain.Client{
			FirstName: "Orphan",
			LastName:  "Record",
			Email:     "orphan@example.com",
			TenantID:  tenantID,
		})
		require.NoError(t, err)

		reverted, err := svc.RevertToLead(ctx, tenantID, clientID)
		require.NoError(t, err)

		assert.Equal(t, "Orphan Record", reverted.Name)
		assert.Equal(t, domain.RoleConsumer, reverted.Role)
		assert.Equal(t, domain.LeadStatusNew, reverted.LeadStatus)
	})

	t.Run("cross-tenant client reads as absent", func(t *testing.T) {
		svc, _, clientRepo := newLeadServiceForTest()
		clientID, err := clientRepo.Create(ctx, &domain.Client{Email: "x@example.com", TenantID: tenantID})
		require.NoError(t, err)

		_, err = svc.RevertToLead(ctx, primitive.NewObjectID(), clientID)
		assert.ErrorIs(t, err, ErrClientNotFound)
	})
}
