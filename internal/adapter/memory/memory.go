// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"sort"
	"sync"

	"fitlog/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu         sync.Mutex
	users      []domain.User
	activities []domain.FitnessActivity
	nutrition  []domain.NutritionEntry

	userIDCounter      int64
	activityIDCounter  int64
	nutritionIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{}
}

// Ensure interfaces are met.
var _ domain.UserRepository = (*DB)(nil)
var _ domain.ActivityRepository = (*DB)(nil)
var _ domain.NutritionRepository = (*DB)(nil)

// Ping always succeeds; it lets the health endpoint treat both stores alike.
func (db *DB) Ping(ctx context.Context) error {
	return nil
}

// --- UserRepository ---

// CreateUser stores a new user. The email must not be taken.
func (db *DB) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.emailTaken(u.Email, 0) {
		return 0, &domain.ConflictError{Entity: "user", Field: "email", Value: u.Email}
	}

	db.userIDCounter++
	u.ID = db.userIDCounter
	db.users = append(db.users, u)
	return u.ID, nil
}

// GetUser returns the user with the given ID, or nil if none exists.
func (db *DB) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if i := db.userIndex(id); i >= 0 {
		u := db.users[i]
		return &u, nil
	}
	return nil, nil
}

// ListUsers returns every user ordered by ID.
func (db *DB) ListUsers(ctx context.Context) ([]domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.User, len(db.users))
	copy(result, db.users)
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// UpdateUser replaces the stored user. CreatedDate is never changed.
func (db *DB) UpdateUser(ctx context.Context, u domain.User) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	i := db.userIndex(u.ID)
	if i < 0 {
		return false, nil
	}
	if db.emailTaken(u.Email, u.ID) {
		return false, &domain.ConflictError{Entity: "user", Field: "email", Value: u.Email}
	}
	u.CreatedDate = db.users[i].CreatedDate
	db.users[i] = u
	return true, nil
}

// DeleteUser removes a user along with their activities and nutrition entries.
func (db *DB) DeleteUser(ctx context.Context, id int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	i := db.userIndex(id)
	if i < 0 {
		return false, nil
	}
	db.users = append(db.users[:i], db.users[i+1:]...)

	activities := db.activities[:0]
	for _, a := range db.activities {
		if a.UserID != id {
			activities = append(activities, a)
		}
	}
	db.activities = activities

	entries := db.nutrition[:0]
	for _, e := range db.nutrition {
		if e.UserID != id {
			entries = append(entries, e)
		}
	}
	db.nutrition = entries
	return true, nil
}

func (db *DB) userIndex(id int64) int {
	for i := range db.users {
		if db.users[i].ID == id {
			return i
		}
	}
	return -1
}

func (db *DB) emailTaken(email string, exceptID int64) bool {
	for _, u := range db.users {
		if u.Email == email && u.ID != exceptID {
			return true
		}
	}
	return false
}

func (db *DB) requireUser(id int64) error {
	if db.userIndex(id) < 0 {
		return &domain.NotFoundError{Entity: "user", ID: id}
	}
	return nil
}

// --- ActivityRepository ---

// CreateActivity stores a new activity for an existing user.
func (db *DB) CreateActivity(ctx context.Context, a domain.FitnessActivity) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.requireUser(a.UserID); err != nil {
		return 0, err
	}

	db.activityIDCounter++
	a.ID = db.activityIDCounter
	a.RecordedAt = a.RecordedAt.UTC()
	db.activities = append(db.activities, a)
	return a.ID, nil
}

// GetActivity returns the activity with the given ID, or nil if none exists.
func (db *DB) GetActivity(ctx context.Context, id int64) (*domain.FitnessActivity, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, a := range db.activities {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, nil
}

// ListActivities returns all activities, most recent first.
func (db *DB) ListActivities(ctx context.Context) ([]domain.FitnessActivity, error) {
	return db.filterActivities(func(domain.FitnessActivity) bool { return true }), nil
}

// ListActivitiesByUser returns a user's activities, most recent first.
func (db *DB) ListActivitiesByUser(ctx context.Context, userID int64) ([]domain.FitnessActivity, error) {
	return db.filterActivities(func(a domain.FitnessActivity) bool {
		return a.UserID == userID
	}), nil
}

// ListActivitiesInRange returns a user's activities recorded within r,
// most recent first.
func (db *DB) ListActivitiesInRange(ctx context.Context, userID int64, r domain.TimeRange) ([]domain.FitnessActivity, error) {
	return db.filterActivities(func(a domain.FitnessActivity) bool {
		return a.UserID == userID && r.Contains(a.RecordedAt)
	}), nil
}

func (db *DB) filterActivities(keep func(domain.FitnessActivity) bool) []domain.FitnessActivity {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := []domain.FitnessActivity{}
	for _, a := range db.activities {
		if keep(a) {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].RecordedAt.Equal(result[j].RecordedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].RecordedAt.After(result[j].RecordedAt)
	})
	return result
}

// UpdateActivity replaces the stored activity.
func (db *DB) UpdateActivity(ctx context.Context, a domain.FitnessActivity) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.activities {
		if db.activities[i].ID == a.ID {
			if err := db.requireUser(a.UserID); err != nil {
				return false, err
			}
			a.RecordedAt = a.RecordedAt.UTC()
			db.activities[i] = a
			return true, nil
		}
	}
	return false, nil
}

// DeleteActivity removes an activity by ID.
func (db *DB) DeleteActivity(ctx context.Context, id int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, a := range db.activities {
		if a.ID == id {
			db.activities = append(db.activities[:i], db.activities[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// TotalCaloriesBurned sums calories burned by the user within r.
func (db *DB) TotalCaloriesBurned(ctx context.Context, userID int64, r domain.TimeRange) (float64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var total float64
	for _, a := range db.activities {
		if a.UserID == userID && r.Contains(a.RecordedAt) {
			total += a.CaloriesBurned
		}
	}
	return total, nil
}

// ActivityTypeCounts counts the user's activities per type over all time.
func (db *DB) ActivityTypeCounts(ctx context.Context, userID int64) (map[string]int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	counts := make(map[string]int64)
	for _, a := range db.activities {
		if a.UserID == userID {
			counts[a.ActivityType]++
		}
	}
	return counts, nil
}

// --- NutritionRepository ---

// CreateNutritionEntry stores a new entry for an existing user.
func (db *DB) CreateNutritionEntry(ctx context.Context, e domain.NutritionEntry) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.requireUser(e.UserID); err != nil {
		return 0, err
	}

	db.nutritionIDCounter++
	e.ID = db.nutritionIDCounter
	e.RecordedAt = e.RecordedAt.UTC()
	db.nutrition = append(db.nutrition, e)
	return e.ID, nil
}

// GetNutritionEntry returns the entry with the given ID, or nil if none exists.
func (db *DB) GetNutritionEntry(ctx context.Context, id int64) (*domain.NutritionEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, e := range db.nutrition {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, nil
}

// ListNutritionEntries returns all entries, most recent first.
func (db *DB) ListNutritionEntries(ctx context.Context) ([]domain.NutritionEntry, error) {
	return db.filterNutrition(func(domain.NutritionEntry) bool { return true }), nil
}

// ListNutritionEntriesByUser returns a user's entries, most recent first.
func (db *DB) ListNutritionEntriesByUser(ctx context.Context, userID int64) ([]domain.NutritionEntry, error) {
	return db.filterNutrition(func(e domain.NutritionEntry) bool {
		return e.UserID == userID
	}), nil
}

// ListNutritionEntriesInRange returns a user's entries recorded within r,
// most recent first.
func (db *DB) ListNutritionEntriesInRange(ctx context.Context, userID int64, r domain.TimeRange) ([]domain.NutritionEntry, error) {
	return db.filterNutrition(func(e domain.NutritionEntry) bool {
		return e.UserID == userID && r.Contains(e.RecordedAt)
	}), nil
}

func (db *DB) filterNutrition(keep func(domain.NutritionEntry) bool) []domain.NutritionEntry {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := []domain.NutritionEntry{}
	for _, e := range db.nutrition {
		if keep(e) {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].RecordedAt.Equal(result[j].RecordedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].RecordedAt.After(result[j].RecordedAt)
	})
	return result
}

// UpdateNutritionEntry replaces the stored entry.
func (db *DB) UpdateNutritionEntry(ctx context.Context, e domain.NutritionEntry) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.nutrition {
		if db.nutrition[i].ID == e.ID {
			if err := db.requireUser(e.UserID); err != nil {
				return false, err
			}
			e.RecordedAt = e.RecordedAt.UTC()
			db.nutrition[i] = e
			return true, nil
		}
	}
	return false, nil
}

// DeleteNutritionEntry removes an entry by ID.
func (db *DB) DeleteNutritionEntry(ctx context.Context, id int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, e := range db.nutrition {
		if e.ID == id {
			db.nutrition = append(db.nutrition[:i], db.nutrition[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// TotalCaloriesConsumed sums calories eaten by the user within r.
func (db *DB) TotalCaloriesConsumed(ctx context.Context, userID int64, r domain.TimeRange) (float64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var total float64
	for _, e := range db.nutrition {
		if e.UserID == userID && r.Contains(e.RecordedAt) {
			total += e.Calories
		}
	}
	return total, nil
}

// CaloriesByMealType sums calories per meal type within r.
func (db *DB) CaloriesByMealType(ctx context.Context, userID int64, r domain.TimeRange) (map[string]float64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	totals := make(map[string]float64)
	for _, e := range db.nutrition {
		if e.UserID == userID && r.Contains(e.RecordedAt) {
			totals[e.MealType] += e.Calories
		}
	}
	return totals, nil
}

// MacronutrientTotals sums protein, carbs and fat within r.
func (db *DB) MacronutrientTotals(ctx context.Context, userID int64, r domain.TimeRange) (domain.Macronutrients, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var m domain.Macronutrients
	for _, e := range db.nutrition {
		if e.UserID == userID && r.Contains(e.RecordedAt) {
			m.Protein += e.Protein
			m.Carbs += e.Carbs
			m.Fat += e.Fat
		}
	}
	return m, nil
}
