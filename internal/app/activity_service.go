package app

import (
	"context"
	"fmt"

	"fitlog/internal/domain"
)

// ActivityService encapsulates fitness activity use cases.
type ActivityService struct {
	repo  domain.ActivityRepository
	users domain.UserRepository
}

// NewActivityService creates an ActivityService backed by the given repositories.
func NewActivityService(repo domain.ActivityRepository, users domain.UserRepository) *ActivityService {
	return &ActivityService{repo: repo, users: users}
}

// Log validates and stores a new activity for an existing user.
func (s *ActivityService) Log(ctx context.Context, a domain.FitnessActivity) (*domain.FitnessActivity, error) {
	a = domain.NewFitnessActivity(a)
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := requireUser(ctx, s.users, a.UserID); err != nil {
		return nil, err
	}
	id, err := s.repo.CreateActivity(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("create activity: %w", err)
	}
	a.ID = id
	return &a, nil
}

// Get returns the activity with the given ID.
func (s *ActivityService) Get(ctx context.Context, id int64) (*domain.FitnessActivity, error) {
	a, err := s.repo.GetActivity(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get activity: %w", err)
	}
	if a == nil {
		return nil, &domain.NotFoundError{Entity: "activity", ID: id}
	}
	return a, nil
}

// List returns every activity, most recent first.
func (s *ActivityService) List(ctx context.Context) ([]domain.FitnessActivity, error) {
	out, err := s.repo.ListActivities(ctx)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return out, nil
}

// ListByUser returns a user's activities, most recent first.
func (s *ActivityService) ListByUser(ctx context.Context, userID int64) ([]domain.FitnessActivity, error) {
	if err := requireUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	out, err := s.repo.ListActivitiesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return out, nil
}

// ListByUserInRange returns a user's activities recorded within r.
func (s *ActivityService) ListByUserInRange(ctx context.Context, userID int64, r domain.TimeRange) ([]domain.FitnessActivity, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := requireUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	out, err := s.repo.ListActivitiesInRange(ctx, userID, r)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return out, nil
}

// Update replaces a stored activity. A zero RecordedAt keeps the stored time.
func (s *ActivityService) Update(ctx context.Context, a domain.FitnessActivity) (*domain.FitnessActivity, error) {
	current, err := s.Get(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	if a.RecordedAt.IsZero() {
		a.RecordedAt = current.RecordedAt
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if a.UserID != current.UserID {
		if err := requireUser(ctx, s.users, a.UserID); err != nil {
			return nil, err
		}
	}
	ok, err := s.repo.UpdateActivity(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("update activity: %w", err)
	}
	if !ok {
		return nil, &domain.NotFoundError{Entity: "activity", ID: a.ID}
	}
	return s.Get(ctx, a.ID)
}

// Delete removes an activity.
func (s *ActivityService) Delete(ctx context.Context, id int64) error {
	ok, err := s.repo.DeleteActivity(ctx, id)
	if err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}
	if !ok {
		return &domain.NotFoundError{Entity: "activity", ID: id}
	}
	return nil
}
