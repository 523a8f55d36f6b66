package app_test

import (
	"context"

	"fitlog/internal/domain"
)

type mockUserRepo struct {
	createFn func(ctx context.Context, u domain.User) (int64, error)
	getFn    func(ctx context.Context, id int64) (*domain.User, error)
	listFn   func(ctx context.Context) ([]domain.User, error)
	updateFn func(ctx context.Context, u domain.User) (bool, error)
	deleteFn func(ctx context.Context, id int64) (bool, error)
}

func (m *mockUserRepo) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	if m.createFn != nil {
		return m.createFn(ctx, u)
	}
	return 1, nil
}

// GetUser reports every user as existing unless getFn says otherwise.
func (m *mockUserRepo) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return &domain.User{ID: id}, nil
}

func (m *mockUserRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockUserRepo) UpdateUser(ctx context.Context, u domain.User) (bool, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, u)
	}
	return true, nil
}

func (m *mockUserRepo) DeleteUser(ctx context.Context, id int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return true, nil
}

type mockActivityRepo struct {
	createFn     func(ctx context.Context, a domain.FitnessActivity) (int64, error)
	getFn        func(ctx context.Context, id int64) (*domain.FitnessActivity, error)
	listFn       func(ctx context.Context) ([]domain.FitnessActivity, error)
	listByUserFn func(ctx context.Context, userID int64) ([]domain.FitnessActivity, error)
	rangeFn      func(ctx context.Context, userID int64, r domain.TimeRange) ([]domain.FitnessActivity, error)
	updateFn     func(ctx context.Context, a domain.FitnessActivity) (bool, error)
	deleteFn     func(ctx context.Context, id int64) (bool, error)
	burnedFn     func(ctx context.Context, userID int64, r domain.TimeRange) (float64, error)
	countsFn     func(ctx context.Context, userID int64) (map[string]int64, error)
}

func (m *mockActivityRepo) CreateActivity(ctx context.Context, a domain.FitnessActivity) (int64, error) {
	if m.createFn != nil {
		return m.createFn(ctx, a)
	}
	return 1, nil
}

func (m *mockActivityRepo) GetActivity(ctx context.Context, id int64) (*domain.FitnessActivity, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, nil
}

func (m *mockActivityRepo) ListActivities(ctx context.Context) ([]domain.FitnessActivity, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockActivityRepo) ListActivitiesByUser(ctx context.Context, userID int64) ([]domain.FitnessActivity, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockActivityRepo) ListActivitiesInRange(ctx context.Context, userID int64, r domain.TimeRange) ([]domain.FitnessActivity, error) {
	if m.rangeFn != nil {
		return m.rangeFn(ctx, userID, r)
	}
	return nil, nil
}

func (m *mockActivityRepo) UpdateActivity(ctx context.Context, a domain.FitnessActivity) (bool, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, a)
	}
	return true, nil
}

func (m *mockActivityRepo) DeleteActivity(ctx context.Context, id int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return true, nil
}

func (m *mockActivityRepo) TotalCaloriesBurned(ctx context.Context, userID int64, r domain.TimeRange) (float64, error) {
	if m.burnedFn != nil {
		return m.burnedFn(ctx, userID, r)
	}
	return 0, nil
}

func (m *mockActivityRepo) ActivityTypeCounts(ctx context.Context, userID int64) (map[string]int64, error) {
	if m.countsFn != nil {
		return m.countsFn(ctx, userID)
	}
	return nil, nil
}

type mockNutritionRepo struct {
	createFn   func(ctx context.Context, e domain.NutritionEntry) (int64, error)
	getFn      func(ctx context.Context, id int64) (*domain.NutritionEntry, error)
	updateFn   func(ctx context.Context, e domain.NutritionEntry) (bool, error)
	deleteFn   func(ctx context.Context, id int64) (bool, error)
	consumedFn func(ctx context.Context, userID int64, r domain.TimeRange) (float64, error)
}

func (m *mockNutritionRepo) CreateNutritionEntry(ctx context.Context, e domain.NutritionEntry) (int64, error) {
	if m.createFn != nil {
		return m.createFn(ctx, e)
	}
	return 1, nil
}

func (m *mockNutritionRepo) GetNutritionEntry(ctx context.Context, id int64) (*domain.NutritionEntry, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, nil
}

func (m *mockNutritionRepo) ListNutritionEntries(ctx context.Context) ([]domain.NutritionEntry, error) {
	return nil, nil
}

func (m *mockNutritionRepo) ListNutritionEntriesByUser(ctx context.Context, userID int64) ([]domain.NutritionEntry, error) {
	return nil, nil
}

func (m *mockNutritionRepo) ListNutritionEntriesInRange(ctx context.Context, userID int64, r domain.TimeRange) ([]domain.NutritionEntry, error) {
	return nil, nil
}

func (m *mockNutritionRepo) UpdateNutritionEntry(ctx context.Context, e domain.NutritionEntry) (bool, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, e)
	}
	return true, nil
}

func (m *mockNutritionRepo) DeleteNutritionEntry(ctx context.Context, id int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return true, nil
}

func (m *mockNutritionRepo) TotalCaloriesConsumed(ctx context.Context, userID int64, r domain.TimeRange) (float64, error) {
	if m.consumedFn != nil {
		return m.consumedFn(ctx, userID, r)
	}
	return 0, nil
}

func (m *mockNutritionRepo) CaloriesByMealType(ctx context.Context, userID int64, r domain.TimeRange) (map[string]float64, error) {
	return nil, nil
}

func (m *mockNutritionRepo) MacronutrientTotals(ctx context.Context, userID int64, r domain.TimeRange) (domain.Macronutrients, error) {
	return domain.Macronutrients{}, nil
}

func noUser(_ context.Context, _ int64) (*domain.User, error) { return nil, nil }
