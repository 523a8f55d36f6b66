package app

import (
	"context"
	"fmt"
	"time"

	"fitlog/internal/domain"
)

// UserService encapsulates user profile use cases.
type UserService struct {
	repo domain.UserRepository
	now  func() time.Time
}

// NewUserService creates a UserService backed by the given repository.
func NewUserService(repo domain.UserRepository) *UserService {
	return &UserService{repo: repo, now: time.Now}
}

// Profile is a user together with their derived health metrics. The metric
// fields shadow the User methods of the same name.
type Profile struct {
	domain.User
	BMI         float64 `json:"bmi"`
	BMR         float64 `json:"bmr"`
	BMICategory string  `json:"bmiCategory"`
}

// Create validates and stores a new user. CreatedDate is always today.
func (s *UserService) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	u = domain.NewUser(u, s.now())
	if err := u.Validate(); err != nil {
		return nil, err
	}
	id, err := s.repo.CreateUser(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	u.ID = id
	return &u, nil
}

// Get returns the user with the given ID.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, &domain.NotFoundError{Entity: "user", ID: id}
	}
	return u, nil
}

// Profile returns the user with BMI, BMR and BMI category attached.
func (s *UserService) Profile(ctx context.Context, id int64) (*Profile, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	m := u.Metrics()
	return &Profile{User: *u, BMI: m.BMI, BMR: m.BMR, BMICategory: m.BMICategory}, nil
}

// List returns every user ordered by ID.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Update replaces the user's profile and returns the stored result.
// CreatedDate is kept from the stored record.
func (s *UserService) Update(ctx context.Context, u domain.User) (*domain.User, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	ok, err := s.repo.UpdateUser(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if !ok {
		return nil, &domain.NotFoundError{Entity: "user", ID: u.ID}
	}
	return s.Get(ctx, u.ID)
}

// Delete removes the user and everything they logged.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	ok, err := s.repo.DeleteUser(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if !ok {
		return &domain.NotFoundError{Entity: "user", ID: id}
	}
	return nil
}

// requireUser returns a NotFoundError unless the user exists.
func requireUser(ctx context.Context, users domain.UserRepository, id int64) error {
	u, err := users.GetUser(ctx, id)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return &domain.NotFoundError{Entity: "user", ID: id}
	}
	return nil
}
