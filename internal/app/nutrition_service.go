package app

import (
	"context"
	"fmt"

	"fitlog/internal/domain"
)

// NutritionService encapsulates nutrition logging use cases.
type NutritionService struct {
	repo  domain.NutritionRepository
	users domain.UserRepository
}

// NewNutritionService creates a NutritionService backed by the given repositories.
func NewNutritionService(repo domain.NutritionRepository, users domain.UserRepository) *NutritionService {
	return &NutritionService{repo: repo, users: users}
}

// Log validates and stores a new nutrition entry for an existing user.
func (s *NutritionService) Log(ctx context.Context, e domain.NutritionEntry) (*domain.NutritionEntry, error) {
	e = domain.NewNutritionEntry(e)
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := requireUser(ctx, s.users, e.UserID); err != nil {
		return nil, err
	}
	id, err := s.repo.CreateNutritionEntry(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("create nutrition entry: %w", err)
	}
	e.ID = id
	return &e, nil
}

// Get returns the nutrition entry with the given ID.
func (s *NutritionService) Get(ctx context.Context, id int64) (*domain.NutritionEntry, error) {
	e, err := s.repo.GetNutritionEntry(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get nutrition entry: %w", err)
	}
	if e == nil {
		return nil, &domain.NotFoundError{Entity: "nutrition entry", ID: id}
	}
	return e, nil
}

// List returns every nutrition entry, most recent first.
func (s *NutritionService) List(ctx context.Context) ([]domain.NutritionEntry, error) {
	out, err := s.repo.ListNutritionEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list nutrition entries: %w", err)
	}
	return out, nil
}

// ListByUser returns a user's nutrition entries, most recent first.
func (s *NutritionService) ListByUser(ctx context.Context, userID int64) ([]domain.NutritionEntry, error) {
	if err := requireUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	out, err := s.repo.ListNutritionEntriesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list nutrition entries: %w", err)
	}
	return out, nil
}

// ListByUserInRange returns a user's nutrition entries recorded within r.
func (s *NutritionService) ListByUserInRange(ctx context.Context, userID int64, r domain.TimeRange) ([]domain.NutritionEntry, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := requireUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	out, err := s.repo.ListNutritionEntriesInRange(ctx, userID, r)
	if err != nil {
		return nil, fmt.Errorf("list nutrition entries: %w", err)
	}
	return out, nil
}

// Update replaces a stored nutrition entry. A zero RecordedAt keeps the stored time.
func (s *NutritionService) Update(ctx context.Context, e domain.NutritionEntry) (*domain.NutritionEntry, error) {
	current, err := s.Get(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	if e.RecordedAt.IsZero() {
		e.RecordedAt = current.RecordedAt
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if e.UserID != current.UserID {
		if err := requireUser(ctx, s.users, e.UserID); err != nil {
			return nil, err
		}
	}
	ok, err := s.repo.UpdateNutritionEntry(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("update nutrition entry: %w", err)
	}
	if !ok {
		return nil, &domain.NotFoundError{Entity: "nutrition entry", ID: e.ID}
	}
	return s.Get(ctx, e.ID)
}

// Delete removes a nutrition entry.
func (s *NutritionService) Delete(ctx context.Context, id int64) error {
	ok, err := s.repo.DeleteNutritionEntry(ctx, id)
	if err != nil {
		return fmt.Errorf("delete nutrition entry: %w", err)
	}
	if !ok {
		return &domain.NotFoundError{Entity: "nutrition entry", ID: id}
	}
	return nil
}
