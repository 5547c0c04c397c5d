package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"fitcoach/coach-platform/internal/domain"
	"fitcoach/coach-platform/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrLeadNotFound      = errors.New("lead not found")
	ErrLeadAlreadyExists = errors.New("a lead with this email already exists for this tenant")
	ErrClientNotFound    = errors.New("client not found")
	ErrTenantMismatch    = errors.New("record belongs to a different tenant")
	ErrInvalidLeadStatus = errors.New("invalid lead status")
)

// CreateLeadInput carries the fields of a manually entered or webhook-ingested lead.
type CreateLeadInput struct {
	Name   string
	Email  string
	Phone  string
	Source string // "manual" or "facebook"
}

// FollowUpInput carries one follow-up entry to append to a lead.
type FollowUpInput struct {
	Asked      string
	Response   string
	Status     domain.LeadStatus
	CallbackAt *time.Time
	CreatedBy  primitive.ObjectID
}

// DueFollowUp is one flattened row of the due-follow-ups query.
type DueFollowUp struct {
	LeadID     primitive.ObjectID `json:"leadId"`
	LeadName   string             `json:"leadName"`
	Email      string             `json:"email"`
	Phone      string             `json:"phone,omitempty"`
	LeadStatus domain.LeadStatus  `json:"leadStatus"`
	Asked      string             `json:"asked,omitempty"`
	Response   string             `json:"response,omitempty"`
	Status     domain.LeadStatus  `json:"status"`
	CallbackAt time.Time          `json:"callbackAt"`
}

// --- Service Interface ---
type LeadService interface {
	CreateLead(ctx context.Context, tenantID primitive.ObjectID, input CreateLeadInput) (*domain.User, error)
	ListLeads(ctx context.Context, tenantID primitive.ObjectID, status domain.LeadStatus) ([]domain.User, error)
	AddFollowUp(ctx context.Context, tenantID, leadID primitive.ObjectID, input FollowUpInput) (*domain.User, error)
	DueFollowUps(ctx context.Context, tenantID primitive.ObjectID, date time.Time, rangeDays int) ([]DueFollowUp, error)
	ConvertToClient(ctx context.Context, tenantID, leadID, convertedBy primitive.ObjectID) (*domain.Client, error)
	RevertToLead(ctx context.Context, tenantID, clientID primitive.ObjectID) (*domain.User, error)
}

// --- Service Implementation ---

// leadService implements the LeadService interface.
type leadService struct {
	userRepo   repository.UserRepository
	clientRepo repository.ClientRepository
}

// NewLeadService creates a new instance of leadService.
func NewLeadService(userRepo repository.UserRepository, clientRepo repository.ClientRepository) LeadService {
	return &leadService{
		userRepo:   userRepo,
		clientRepo: clientRepo,
	}
}

// splitName breaks a free-text name into first/last: first token becomes the
// first name, the remainder (or defaultLast) the last name.
func splitName(name, defaultLast string) (first, last string) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "", defaultLast
	}
	first = fields[0]
	if len(fields) > 1 {
		last = strings.Join(fields[1:], " ")
	} else {
		last = defaultLast
	}
	return first, last
}

// CreateLead registers a new prospect for the tenant. Fails when a lead with
// the same email already exists in the same tenant; the same email under a
// different tenant is fine.
func (s *leadService) CreateLead(ctx context.Context, tenantID primitive.ObjectID, input CreateLeadInput) (*domain.User, error) {
	if tenantID == primitive.NilObjectID || input.Email == "" {
		return nil, errors.New("tenant ID and lead email are required")
	}

	_, err := s.userRepo.GetByTenantAndEmail(ctx, tenantID, input.Email)
	if err == nil {
		return nil, ErrLeadAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	first, last := splitName(input.Name, "Prospect")
	source := input.Source
	if source == "" {
		source = "manual"
	}

	lead := &domain.User{
		Name:       input.Name,
		FirstName:  first,
		LastName:   last,
		Email:      input.Email,
		Phone:      input.Phone,
		Role:       domain.RoleConsumer,
		TenantID:   tenantID,
		UniqueID:   uuid.NewString(),
		LeadStatus: domain.LeadStatusNew,
		LeadSource: source,
	}

	leadID, err := s.userRepo.Create(ctx, lead)
	if err != nil {
		// The unique (tenantId, email) index closes the check-then-create race.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrLeadAlreadyExists
		}
		return nil, err
	}
	lead.ID = leadID
	return lead, nil
}

// ListLeads returns the tenant's leads, optionally filtered by status.
func (s *leadService) ListLeads(ctx context.Context, tenantID primitive.ObjectID, status domain.LeadStatus) ([]domain.User, error) {
	if status != "" && !domain.ValidLeadStatus(status) {
		return nil, ErrInvalidLeadStatus
	}
	leads, err := s.userRepo.ListLeads(ctx, tenantID, status)
	if err != nil {
		return nil, err
	}
	for i := range leads {
		leads[i].FollowUps = leads[i].SortedFollowUps()
	}
	return leads, nil
}

// AddFollowUp appends a follow-up entry to the lead's history. The entry's
// status becomes the lead's new top-level status: the status always reflects
// the latest call.
func (s *leadService) AddFollowUp(ctx context.Context, tenantID, leadID primitive.ObjectID, input FollowUpInput) (*domain.User, error) {
	if !domain.ValidFollowUpStatus(input.Status) {
		return nil, ErrInvalidLeadStatus
	}

	lead, err := s.getTenantLead(ctx, tenantID, leadID)
	if err != nil {
		return nil, err
	}

	entry := domain.FollowUp{
		ID:         primitive.NewObjectID(),
		Asked:      input.Asked,
		Response:   input.Response,
		Status:     input.Status,
		CallbackAt: input.CallbackAt,
		CreatedAt:  time.Now().UTC(),
		CreatedBy:  input.CreatedBy,
	}
	lead.FollowUps = append(lead.FollowUps, entry)
	lead.LeadStatus = input.Status

	if err := s.userRepo.Update(ctx, lead); err != nil {
		return nil, err
	}
	lead.FollowUps = lead.SortedFollowUps()
	return lead, nil
}

// DueFollowUps returns all follow-ups whose callback falls in
// [dayStart(date), dayStart(date) + max(rangeDays,1) days), flattened into
// one row per follow-up and sorted ascending by callback time. rangeDays <= 1
// means "that day only".
func (s *leadService) DueFollowUps(ctx context.Context, tenantID primitive.ObjectID, date time.Time, rangeDays int) ([]DueFollowUp, error) {
	if rangeDays < 1 {
		rangeDays = 1
	}
	from := dayStart(date)
	to := from.AddDate(0, 0, rangeDays)

	leads, err := s.userRepo.LeadsWithCallbacksBetween(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}

	rows := []DueFollowUp{}
	for i := range leads {
		lead := &leads[i]
		for _, fu := range lead.FollowUps {
			if fu.CallbackAt == nil {
				continue
			}
			at := *fu.CallbackAt
			if at.Before(from) || !at.Before(to) {
				continue
			}
			rows = append(rows, DueFollowUp{
				LeadID:     lead.ID,
				LeadName:   lead.Name,
				Email:      lead.Email,
				Phone:      lead.Phone,
				LeadStatus: lead.LeadStatus,
				Asked:      fu.Asked,
				Response:   fu.Response,
				Status:     fu.Status,
				CallbackAt: at,
			})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CallbackAt.Before(rows[j].CallbackAt) })
	return rows, nil
}

// ConvertToClient moves a lead into the client roster. The client insert and
// the lead's role flip are two separate writes; a failure between them leaves
// a client plus a stale lead, which a retry reconciles (the role flip is
// keyed on the lead id and the client insert is guarded by the email check).
func (s *leadService) ConvertToClient(ctx context.Context, tenantID, leadID, convertedBy primitive.ObjectID) (*domain.Client, error) {
	lead, err := s.userRepo.GetByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}
	if lead.TenantID != tenantID {
		return nil, ErrTenantMismatch
	}
	if !lead.IsLead() {
		return nil, ErrLeadNotFound
	}

	first, last := lead.FirstName, lead.LastName
	if first == "" && last == "" {
		first, last = splitName(lead.Name, "")
	}
	if first == "" {
		first = "Client"
	}
	if last == "" {
		last = "User"
	}

	client := &domain.Client{
		FirstName: first,
		LastName:  last,
		Email:     lead.Email,
		Phone:     lead.Phone,
		TenantID:  tenantID,
		CreatedBy: convertedBy,
	}
	clientID, err := s.clientRepo.Create(ctx, client)
	if err != nil {
		return nil, err
	}
	client.ID = clientID

	lead.Role = domain.RoleClient
	if lead.FirstName == "" {
		lead.FirstName = first
	}
	if lead.LastName == "" {
		lead.LastName = last
	}
	if err := s.userRepo.Update(ctx, lead); err != nil {
		// Second write failed: the client exists but the lead still reads as a
		// prospect. Logged for manual reconciliation.
		log.Printf("WARN: lead %s converted to client %s but role flip failed: %v", leadID.Hex(), clientID.Hex(), err)
		return nil, err
	}

	return client, nil
}

// RevertToLead undoes a conversion: the matching user record (found or
// recreated by email) becomes a consumer again and the client document is
// hard-deleted. Same two-write caveat as ConvertToClient.
func (s *leadService) RevertToLead(ctx context.Context, tenantID, clientID primitive.ObjectID) (*domain.User, error) {
	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	if client.TenantID != tenantID {
		// Cross-tenant reads are indistinguishable from absent records.
		return nil, ErrClientNotFound
	}

	lead, err := s.userRepo.GetByTenantAndEmail(ctx, tenantID, client.Email)
	switch {
	case err == nil:
		lead.Role = domain.RoleConsumer
		if lead.LeadStatus == "" {
			lead.LeadStatus = domain.LeadStatusNew
		}
		if err := s.userRepo.Update(ctx, lead); err != nil {
			return nil, err
		}
	case errors.Is(err, repository.ErrNotFound):
		lead = &domain.User{
			Name:       strings.TrimSpace(client.FirstName + " " + client.LastName),
			FirstName:  client.FirstName,
			LastName:   client.LastName,
			Email:      client.Email,
			Phone:      client.Phone,
			Role:       domain.RoleConsumer,
			TenantID:   tenantID,
			UniqueID:   uuid.NewString(),
			LeadStatus: domain.LeadStatusNew,
		}
		leadID, err := s.userRepo.Create(ctx, lead)
		if err != nil {
			return nil, err
		}
		lead.ID = leadID
	default:
		return nil, err
	}

	if err := s.clientRepo.Delete(ctx, clientID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Printf("WARN: client %s reverted to lead %s but client delete failed: %v", clientID.Hex(), lead.ID.Hex(), err)
		return nil, err
	}
	return lead, nil
}

// getTenantLead fetches a lead and hides cross-tenant records behind ErrLeadNotFound.
func (s *leadService) getTenantLead(ctx context.Context, tenantID, leadID primitive.ObjectID) (*domain.User, error) {
	lead, err := s.userRepo.GetByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}
	if lead.TenantID != tenantID || !lead.IsLead() {
		return nil, ErrLeadNotFound
	}
	return lead, nil
}
