package service

import (
	"context"
	"errors"

	"fitcoach/coach-platform/internal/domain"
	"fitcoach/coach-platform/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrTenantNotFound      = errors.New("tenant not found")
	ErrTenantNameTaken     = errors.New("a tenant with this name already exists")
	ErrInvalidPricingTier  = errors.New("invalid pricing tier")
	ErrTierAlreadyOffered  = errors.New("tenant already offers a plan with this tier")
	ErrPricingPlanLimit    = errors.New("tenant cannot offer more than 4 pricing plans")
	ErrPricingPlanNotFound = errors.New("pricing plan not found")
	ErrStandardPlanLocked  = errors.New("the standard plan cannot be removed or retiered")
)

// PricingPlanInput carries the fields of one pricing plan offering.
type PricingPlanInput struct {
	Tier     domain.PricingTier
	Price    float64
	Features []string
}

// --- Service Interface ---
type TenantService interface {
	CreateTenant(ctx context.Context, name, contactEmail, contactPhone string) (*domain.Tenant, error)
	GetTenant(ctx context.Context, id primitive.ObjectID) (*domain.Tenant, error)
	ListTenants(ctx context.Context) ([]domain.Tenant, error)
	ConnectFacebookPage(ctx context.Context, tenantID primitive.ObjectID, pageID string) (*domain.Tenant, error)
	TenantByFacebookPage(ctx context.Context, pageID string) (*domain.Tenant, error)
	AddPricingPlan(ctx context.Context, tenantID primitive.ObjectID, input PricingPlanInput) (*domain.Tenant, error)
	UpdatePricingPlan(ctx context.Context, tenantID, planID primitive.ObjectID, input PricingPlanInput) (*domain.Tenant, error)
	RemovePricingPlan(ctx context.Context, tenantID, planID primitive.ObjectID) (*domain.Tenant, error)
}

// --- Service Implementation ---

// tenantService implements the TenantService interface. All pricing plan
// invariants (exactly one standard plan, at most 4 total, unique tiers) are
// enforced here before the whole array is written back.
type tenantService struct {
	tenantRepo repository.TenantRepository
}

// NewTenantService creates a new instance of tenantService.
func NewTenantService(tenantRepo repository.TenantRepository) TenantService {
	return &tenantService{tenantRepo: tenantRepo}
}

// CreateTenant provisions a tenant seeded with its mandatory standard plan.
func (s *tenantService) CreateTenant(ctx context.Context, name, contactEmail, contactPhone string) (*domain.Tenant, error) {
	if name == "" {
		return nil, errors.New("tenant name is required")
	}

	tenant := &domain.Tenant{
		Name:         name,
		ContactEmail: contactEmail,
		ContactPhone: contactPhone,
		PricingPlans: []domain.PricingPlan{
			{ID: primitive.NewObjectID(), Tier: domain.TierStandard, Price: 0},
		},
	}

	id, err := s.tenantRepo.Create(ctx, tenant)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTenantNameTaken
		}
		return nil, err
	}
	tenant.ID = id
	return tenant, nil
}

// GetTenant fetches a tenant by id.
func (s *tenantService) GetTenant(ctx context.Context, id primitive.ObjectID) (*domain.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return tenant, nil
}

// ListTenants returns all tenants.
func (s *tenantService) ListTenants(ctx context.Context) ([]domain.Tenant, error) {
	return s.tenantRepo.List(ctx)
}

// ConnectFacebookPage wires a Facebook page to the tenant so leadgen webhook
// notifications for that page land in the tenant's lead store.
func (s *tenantService) ConnectFacebookPage(ctx context.Context, tenantID primitive.ObjectID, pageID string) (*domain.Tenant, error) {
	tenant, err := s.GetTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	tenant.FacebookPageID = pageID
	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

// TenantByFacebookPage resolves the tenant a page's leadgen notifications
// belong to.
func (s *tenantService) TenantByFacebookPage(ctx context.Context, pageID string) (*domain.Tenant, error) {
	tenant, err := s.tenantRepo.GetByFacebookPage(ctx, pageID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return tenant, nil
}

// AddPricingPlan appends a new offering, enforcing the tier-uniqueness and
// plan-count invariants.
func (s *tenantService) AddPricingPlan(ctx context.Context, tenantID primitive.ObjectID, input PricingPlanInput) (*domain.Tenant, error) {
	if !domain.ValidPricingTier(input.Tier) {
		return nil, ErrInvalidPricingTier
	}

	tenant, err := s.GetTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if len(tenant.PricingPlans) >= domain.MaxPricingPlans {
		return nil, ErrPricingPlanLimit
	}
	if tenant.PlanByTier(input.Tier) != nil {
		return nil, ErrTierAlreadyOffered
	}

	tenant.PricingPlans = append(tenant.PricingPlans, domain.PricingPlan{
		ID:       primitive.NewObjectID(),
		Tier:     input.Tier,
		Price:    input.Price,
		Features: input.Features,
	})

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

// UpdatePricingPlan edits an existing offering. The standard plan keeps its
// tier; other plans may not collide with an already-offered tier.
func (s *tenantService) UpdatePricingPlan(ctx context.Context, tenantID, planID primitive.ObjectID, input PricingPlanInput) (*domain.Tenant, error) {
	if !domain.ValidPricingTier(input.Tier) {
		return nil, ErrInvalidPricingTier
	}

	tenant, err := s.GetTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	plan := tenant.PlanByID(planID)
	if plan == nil {
		return nil, ErrPricingPlanNotFound
	}
	if plan.Tier == domain.TierStandard && input.Tier != domain.TierStandard {
		return nil, ErrStandardPlanLocked
	}
	if input.Tier != plan.Tier && tenant.PlanByTier(input.Tier) != nil {
		return nil, ErrTierAlreadyOffered
	}

	plan.Tier = input.Tier
	plan.Price = input.Price
	plan.Features = input.Features

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

// RemovePricingPlan deletes an offering. The standard plan always remains.
func (s *tenantService) RemovePricingPlan(ctx context.Context, tenantID, planID primitive.ObjectID) (*domain.Tenant, error) {
	tenant, err := s.GetTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	plan := tenant.PlanByID(planID)
	if plan == nil {
		return nil, ErrPricingPlanNotFound
	}
	if plan.Tier == domain.TierStandard {
		return nil, ErrStandardPlanLocked
	}

	kept := tenant.PricingPlans[:0]
	for _, p := range tenant.PricingPlans {
		if p.ID != planID {
			kept = append(kept, p)
		}
	}
	tenant.PricingPlans = kept

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}
