package service

import (
	"context"
	"errors"

	"fitcoach/coach-platform/internal/domain"
	"fitcoach/coach-platform/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Pagination bounds for catalog search.
const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 50
)

// ErrCatalogItemNotFound is returned for catalog CRUD on absent entries.
var ErrCatalogItemNotFound = errors.New("catalog item not found")

// --- Service Interface ---
type CatalogService interface {
	SearchFoods(ctx context.Context, query string, page, limit int) ([]domain.FoodRow, error)
	SearchWorkouts(ctx context.Context, query string, page, limit int) ([]domain.WorkoutRow, error)
	CreateFood(ctx context.Context, item *domain.FoodItem) (*domain.FoodItem, error)
	CreateWorkout(ctx context.Context, item *domain.WorkoutItem) (*domain.WorkoutItem, error)
	DeleteFood(ctx context.Context, id primitive.ObjectID) error
	DeleteWorkout(ctx context.Context, id primitive.ObjectID) error
}

// --- Service Implementation ---

// catalogService implements the CatalogService interface over the shared,
// tenant-agnostic reference library.
type catalogService struct {
	catalogRepo repository.CatalogRepository
}

// NewCatalogService creates a new instance of catalogService.
func NewCatalogService(catalogRepo repository.CatalogRepository) CatalogService {
	return &catalogService{catalogRepo: catalogRepo}
}

// clampPaging normalizes page (1-based) and limit (default 20, max 50).
func clampPaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}
	return page, limit
}

// SearchFoods runs a paged case-insensitive substring search on food names.
func (s *catalogService) SearchFoods(ctx context.Context, query string, page, limit int) ([]domain.FoodRow, error) {
	page, limit = clampPaging(page, limit)
	return s.catalogRepo.SearchFoods(ctx, query, page, limit)
}

// SearchWorkouts runs a paged case-insensitive substring search on workout names.
func (s *catalogService) SearchWorkouts(ctx context.Context, query string, page, limit int) ([]domain.WorkoutRow, error) {
	page, limit = clampPaging(page, limit)
	return s.catalogRepo.SearchWorkouts(ctx, query, page, limit)
}

// CreateFood adds a shared catalog food entry.
func (s *catalogService) CreateFood(ctx context.Context, item *domain.FoodItem) (*domain.FoodItem, error) {
	if item.FoodName == "" {
		return nil, errors.New("food name is required")
	}
	id, err := s.catalogRepo.CreateFood(ctx, item)
	if err != nil {
		return nil, err
	}
	item.ID = id
	return item, nil
}

// CreateWorkout adds a shared catalog workout entry.
func (s *catalogService) CreateWorkout(ctx context.Context, item *domain.WorkoutItem) (*domain.WorkoutItem, error) {
	if item.WorkoutName == "" {
		return nil, errors.New("workout name is required")
	}
	id, err := s.catalogRepo.CreateWorkout(ctx, item)
	if err != nil {
		return nil, err
	}
	item.ID = id
	return item, nil
}

// DeleteFood removes a shared catalog food entry.
func (s *catalogService) DeleteFood(ctx context.Context, id primitive.ObjectID) error {
	err := s.catalogRepo.DeleteFood(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCatalogItemNotFound
	}
	return err
}

// DeleteWorkout removes a shared catalog workout entry.
func (s *catalogService) DeleteWorkout(ctx context.Context, id primitive.ObjectID) error {
	err := s.catalogRepo.DeleteWorkout(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCatalogItemNotFound
	}
	return err
}
