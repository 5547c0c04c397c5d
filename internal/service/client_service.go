package service

import (
	"context"
	"errors"

	"fitcoach/coach-platform/internal/domain"
	"fitcoach/coach-platform/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Service Interface ---
type ClientService interface {
	ListClients(ctx context.Context, tenantID primitive.ObjectID) ([]domain.Client, error)
	GetClient(ctx context.Context, tenantID, clientID primitive.ObjectID) (*domain.Client, error)
}

// --- Service Implementation ---

// clientService implements the ClientService interface. Reads only; the
// roster is written by conversion, plan assignment and photo flows.
type clientService struct {
	clientRepo repository.ClientRepository
}

// NewClientService creates a new instance of clientService.
func NewClientService(clientRepo repository.ClientRepository) ClientService {
	return &clientService{clientRepo: clientRepo}
}

func (s *clientService) ListClients(ctx context.Context, tenantID primitive.ObjectID) ([]domain.Client, error) {
	return s.clientRepo.ListByTenant(ctx, tenantID)
}

// GetClient fetches one client. A client owned by another tenant is reported
// as not found so ids cannot be probed across tenants.
func (s *clientService) GetClient(ctx context.Context, tenantID, clientID primitive.ObjectID) (*domain.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	if client.TenantID != tenantID {
		return nil, ErrClientNotFound
	}
	return client, nil
}
