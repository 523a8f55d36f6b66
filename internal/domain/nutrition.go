package domain

import (
	"context"
	"time"
)

// NutritionEntry is a logged food item owned by one user.
type NutritionEntry struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId" validate:"min=1"`
	FoodName    string    `json:"foodName" validate:"notblank,max=100"`
	MealType    string    `json:"mealType" validate:"notblank,max=20"`
	Calories    float64   `json:"calories" validate:"gte=0"`
	Protein     float64   `json:"protein" validate:"gte=0"`
	Carbs       float64   `json:"carbs" validate:"gte=0"`
	Fat         float64   `json:"fat" validate:"gte=0"`
	ServingSize float64   `json:"servingSize" validate:"gte=0.1"`
	ServingUnit string    `json:"servingUnit,omitempty" validate:"max=20"`
	RecordedAt  time.Time `json:"recordedAt"`
}

// NewNutritionEntry returns e with RecordedAt defaulted to now when unset.
func NewNutritionEntry(e NutritionEntry) NutritionEntry {
	e.ID = 0
	e.RecordedAt = defaultRecordedAt(e.RecordedAt)
	return e
}

// Validate checks the entry's field constraints.
func (e NutritionEntry) Validate() error {
	return validateStruct(e)
}

// Macronutrients holds protein, carbohydrate and fat totals in grams.
type Macronutrients struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// NutritionRepository is the port for nutrition entry persistence and
// the aggregate queries over it.
type NutritionRepository interface {
	CreateNutritionEntry(ctx context.Context, e NutritionEntry) (int64, error)
	GetNutritionEntry(ctx context.Context, id int64) (*NutritionEntry, error)
	ListNutritionEntries(ctx context.Context) ([]NutritionEntry, error)
	ListNutritionEntriesByUser(ctx context.Context, userID int64) ([]NutritionEntry, error)
	ListNutritionEntriesInRange(ctx context.Context, userID int64, r TimeRange) ([]NutritionEntry, error)
	UpdateNutritionEntry(ctx context.Context, e NutritionEntry) (bool, error)
	DeleteNutritionEntry(ctx context.Context, id int64) (bool, error)

	TotalCaloriesConsumed(ctx context.Context, userID int64, r TimeRange) (float64, error)
	CaloriesByMealType(ctx context.Context, userID int64, r TimeRange) (map[string]float64, error)
	MacronutrientTotals(ctx context.Context, userID int64, r TimeRange) (Macronutrients, error)
}
