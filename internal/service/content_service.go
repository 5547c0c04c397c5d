package service

import (
	"context"
	"errors"
	"time"

	"fitcoach/coach-platform/internal/domain"
	"fitcoach/coach-platform/internal/repository"
)

// ErrOverrideNotFound is returned when deleting an absent override.
var ErrOverrideNotFound = errors.New("content override not found")

// ResolvedContent is the daily tip/quote payload for one date, annotated with
// where it came from.
type ResolvedContent struct {
	DateKey    string `json:"dateKey"`
	DayOfYear  int    `json:"dayOfYear"`
	Tip        string `json:"tip,omitempty"`
	Quote      string `json:"quote,omitempty"`
	Author     string `json:"author,omitempty"`
	Overridden bool   `json:"overridden"`
}

// OverrideInput carries the fields of a date-specific content replacement.
type OverrideInput struct {
	DateKey string
	Tip     string
	Quote   string
	Author  string
}

// SeedEntry is one tip/quote pair of the default library seed list.
type SeedEntry struct {
	Tip    string
	Quote  string
	Author string
}

// --- Service Interface ---
type ContentService interface {
	Resolve(ctx context.Context, date time.Time) (*ResolvedContent, error)
	UpsertOverride(ctx context.Context, input OverrideInput) (*domain.ContentOverride, error)
	DeleteOverride(ctx context.Context, dateKey string) error
	// SeedDefaults assigns the given entries round-robin across the 365-slot
	// default library and replaces the previous library wholesale.
	SeedDefaults(ctx context.Context, entries []SeedEntry) (int, error)
}

// --- Service Implementation ---

// contentService implements the ContentService interface.
type contentService struct {
	contentRepo repository.ContentRepository
}

// NewContentService creates a new instance of contentService.
func NewContentService(contentRepo repository.ContentRepository) ContentService {
	return &contentService{contentRepo: contentRepo}
}

// Resolve returns the content for a date: the exact-date override verbatim
// when one exists (even if only partially filled), otherwise the default
// entry for the date's day of year.
func (s *contentService) Resolve(ctx context.Context, date time.Time) (*ResolvedContent, error) {
	resolved := &ResolvedContent{
		DateKey:   domain.DateKey(date),
		DayOfYear: domain.ContentDayOfYear(date),
	}

	override, err := s.contentRepo.GetOverrideByDateKey(ctx, resolved.DateKey)
	if err == nil {
		resolved.Tip = override.Tip
		resolved.Quote = override.Quote
		resolved.Author = override.Author
		resolved.Overridden = true
		return resolved, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	def, err := s.contentRepo.GetDefaultByDay(ctx, resolved.DayOfYear)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Library not seeded yet: empty content, never an error.
			return resolved, nil
		}
		return nil, err
	}
	resolved.Tip = def.Tip
	resolved.Quote = def.Quote
	resolved.Author = def.Author
	return resolved, nil
}

// UpsertOverride creates or replaces the override for its date key.
func (s *contentService) UpsertOverride(ctx context.Context, input OverrideInput) (*domain.ContentOverride, error) {
	if _, err := time.Parse("2006-01-02", input.DateKey); err != nil {
		return nil, errors.New("date key must be an ISO date (YYYY-MM-DD)")
	}

	override := &domain.ContentOverride{
		DateKey: input.DateKey,
		Tip:     input.Tip,
		Quote:   input.Quote,
		Author:  input.Author,
	}
	if err := s.contentRepo.UpsertOverride(ctx, override); err != nil {
		return nil, err
	}
	return override, nil
}

// DeleteOverride removes the override for an exact date.
func (s *contentService) DeleteOverride(ctx context.Context, dateKey string) error {
	err := s.contentRepo.DeleteOverride(ctx, dateKey)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrOverrideNotFound
	}
	return err
}

// SeedDefaults fills all 365 library slots round-robin from the seed list and
// reports how many slots were written.
func (s *contentService) SeedDefaults(ctx context.Context, entries []SeedEntry) (int, error) {
	if len(entries) == 0 {
		return 0, errors.New("at least one seed entry is required")
	}

	defaults := make([]domain.DailyContent, domain.ContentLibrarySize)
	for day := 1; day <= domain.ContentLibrarySize; day++ {
		seed := entries[(day-1)%len(entries)]
		defaults[day-1] = domain.DailyContent{
			DayOfYear: day,
			Tip:       seed.Tip,
			Quote:     seed.Quote,
			Author:    seed.Author,
		}
	}

	if err := s.contentRepo.ReplaceDefaults(ctx, defaults); err != nil {
		return 0, err
	}
	return len(defaults), nil
}
