package domain

import (
	"context"
	"time"
)

// FitnessActivity is a logged workout owned by one user.
type FitnessActivity struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"userId" validate:"min=1"`
	ActivityType   string    `json:"activityType" validate:"notblank,max=50"`
	Duration       int       `json:"duration" validate:"min=1"`
	CaloriesBurned float64   `json:"caloriesBurned" validate:"gte=0"`
	Notes          string    `json:"notes,omitempty" validate:"max=500"`
	RecordedAt     time.Time `json:"recordedAt"`
}

// NewFitnessActivity returns a with RecordedAt defaulted to now when unset.
func NewFitnessActivity(a FitnessActivity) FitnessActivity {
	a.ID = 0
	a.RecordedAt = defaultRecordedAt(a.RecordedAt)
	return a
}

// Validate checks the activity's field constraints.
func (a FitnessActivity) Validate() error {
	return validateStruct(a)
}

// ActivityRepository is the port for fitness activity persistence and
// the aggregate queries over it.
type ActivityRepository interface {
	CreateActivity(ctx context.Context, a FitnessActivity) (int64, error)
	GetActivity(ctx context.Context, id int64) (*FitnessActivity, error)
	ListActivities(ctx context.Context) ([]FitnessActivity, error)
	ListActivitiesByUser(ctx context.Context, userID int64) ([]FitnessActivity, error)
	ListActivitiesInRange(ctx context.Context, userID int64, r TimeRange) ([]FitnessActivity, error)
	UpdateActivity(ctx context.Context, a FitnessActivity) (bool, error)
	DeleteActivity(ctx context.Context, id int64) (bool, error)

	TotalCaloriesBurned(ctx context.Context, userID int64, r TimeRange) (float64, error)
	ActivityTypeCounts(ctx context.Context, userID int64) (map[string]int64, error)
}

// defaultRecordedAt returns t, or the current time when t is zero, in UTC at
// StoragePrecision.
func defaultRecordedAt(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Truncate(StoragePrecision)
}
