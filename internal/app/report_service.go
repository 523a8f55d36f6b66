package app

import (
	"context"
	"fmt"
	"math"
	"time"

	"fitlog/internal/domain"
)

// Report periods and the number of days each looks back.
var periodDays = map[string]int{
	"week":  7,
	"month": 30,
	"year":  365,
}

// ReportService answers aggregate questions over a user's activities and
// nutrition entries.
type ReportService struct {
	users      domain.UserRepository
	activities domain.ActivityRepository
	nutrition  domain.NutritionRepository
	now        func() time.Time
}

// NewReportService creates a ReportService backed by the given repositories.
func NewReportService(users domain.UserRepository, activities domain.ActivityRepository, nutrition domain.NutritionRepository) *ReportService {
	return &ReportService{users: users, activities: activities, nutrition: nutrition, now: time.Now}
}

// Summary combines the calorie and workout totals for a range.
type Summary struct {
	Range                 domain.TimeRange      `json:"range"`
	CaloriesBurned        float64               `json:"caloriesBurned"`
	CaloriesConsumed      float64               `json:"caloriesConsumed"`
	NetCalories           float64               `json:"netCalories"`
	WorkoutCount          int                   `json:"workoutCount"`
	TotalWorkoutMinutes   int                   `json:"totalWorkoutMinutes"`
	AverageWorkoutMinutes float64               `json:"averageWorkoutMinutes"`
	Macronutrients        domain.Macronutrients `json:"macronutrients"`
	CaloriesByMealType    map[string]float64    `json:"caloriesByMealType"`
}

// ActivityTypeStats totals one activity type within a period.
type ActivityTypeStats struct {
	Count          int     `json:"count"`
	CaloriesBurned float64 `json:"caloriesBurned"`
	Minutes        int     `json:"minutes"`
}

// DailyAverages spreads a period's totals over its days.
type DailyAverages struct {
	CaloriesBurned   float64 `json:"caloriesBurned"`
	CaloriesConsumed float64 `json:"caloriesConsumed"`
	WorkoutFrequency float64 `json:"workoutFrequency"`
}

// DayStats totals one calendar day (UTC) of a period.
type DayStats struct {
	Date             string  `json:"date"`
	Weekday          string  `json:"weekday"`
	Workouts         int     `json:"workouts"`
	Minutes          int     `json:"minutes"`
	CaloriesBurned   float64 `json:"caloriesBurned"`
	CaloriesConsumed float64 `json:"caloriesConsumed"`
}

// PeriodReport is the summary of the last week, month or year.
type PeriodReport struct {
	Period        string                       `json:"period"`
	Days          int                          `json:"days"`
	Summary       Summary                      `json:"summary"`
	ActivityTypes map[string]ActivityTypeStats `json:"activityTypes"`
	DailyAverages DailyAverages                `json:"dailyAverages"`
	Daily         []DayStats                   `json:"daily"`
}

// TotalCaloriesBurned sums the calories a user burned within r.
func (s *ReportService) TotalCaloriesBurned(ctx context.Context, userID int64, r domain.TimeRange) (float64, error) {
	if err := s.check(ctx, userID, r); err != nil {
		return 0, err
	}
	total, err := s.activities.TotalCaloriesBurned(ctx, userID, r)
	if err != nil {
		return 0, fmt.Errorf("total calories burned: %w", err)
	}
	return total, nil
}

// ActivityTypeBreakdown counts a user's activities per type over all time.
func (s *ReportService) ActivityTypeBreakdown(ctx context.Context, userID int64) (map[string]int64, error) {
	if err := requireUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	counts, err := s.activities.ActivityTypeCounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("activity type breakdown: %w", err)
	}
	if counts == nil {
		counts = map[string]int64{}
	}
	return counts, nil
}

// TotalCaloriesConsumed sums the calories a user ate within r.
func (s *ReportService) TotalCaloriesConsumed(ctx context.Context, userID int64, r domain.TimeRange) (float64, error) {
	if err := s.check(ctx, userID, r); err != nil {
		return 0, err
	}
	total, err := s.nutrition.TotalCaloriesConsumed(ctx, userID, r)
	if err != nil {
		return 0, fmt.Errorf("total calories consumed: %w", err)
	}
	return total, nil
}

// CaloriesByMealType sums a user's calories per meal type within r.
func (s *ReportService) CaloriesByMealType(ctx context.Context, userID int64, r domain.TimeRange) (map[string]float64, error) {
	if err := s.check(ctx, userID, r); err != nil {
		return nil, err
	}
	return s.mealTypes(ctx, userID, r)
}

// MacronutrientTotals sums a user's protein, carbs and fat within r.
func (s *ReportService) MacronutrientTotals(ctx context.Context, userID int64, r domain.TimeRange) (domain.Macronutrients, error) {
	if err := s.check(ctx, userID, r); err != nil {
		return domain.Macronutrients{}, err
	}
	m, err := s.nutrition.MacronutrientTotals(ctx, userID, r)
	if err != nil {
		return domain.Macronutrients{}, fmt.Errorf("macronutrient totals: %w", err)
	}
	return m, nil
}

// Summary reports a user's calorie balance, workouts and macros within r.
func (s *ReportService) Summary(ctx context.Context, userID int64, r domain.TimeRange) (*Summary, error) {
	if err := s.check(ctx, userID, r); err != nil {
		return nil, err
	}
	sum, _, err := s.summarize(ctx, userID, r)
	return sum, err
}

// PeriodReport summarizes the last week, month or year up to now.
func (s *ReportService) PeriodReport(ctx context.Context, userID int64, period string) (*PeriodReport, error) {
	days, ok := periodDays[period]
	if !ok {
		return nil, domain.NewValidationError("period", "Period must be one of week, month, year")
	}
	r := domain.LastDays(s.now(), days)
	if err := requireUser(ctx, s.users, userID); err != nil {
		return nil, err
	}

	sum, activities, err := s.summarize(ctx, userID, r)
	if err != nil {
		return nil, err
	}
	entries, err := s.nutrition.ListNutritionEntriesInRange(ctx, userID, r)
	if err != nil {
		return nil, fmt.Errorf("list nutrition entries: %w", err)
	}

	types := make(map[string]ActivityTypeStats)
	for _, a := range activities {
		st := types[a.ActivityType]
		st.Count++
		st.CaloriesBurned += a.CaloriesBurned
		st.Minutes += a.Duration
		types[a.ActivityType] = st
	}

	d := float64(days)
	return &PeriodReport{
		Period:        period,
		Days:          days,
		Summary:       *sum,
		ActivityTypes: types,
		DailyAverages: DailyAverages{
			CaloriesBurned:   round(sum.CaloriesBurned/d, 1),
			CaloriesConsumed: round(sum.CaloriesConsumed/d, 1),
			WorkoutFrequency: round(float64(sum.WorkoutCount)/d, 2),
		},
		Daily: dailyBreakdown(r, activities, entries),
	}, nil
}

// dailyBreakdown returns one DayStats for every UTC calendar day r touches,
// oldest first.
func dailyBreakdown(r domain.TimeRange, activities []domain.FitnessActivity, entries []domain.NutritionEntry) []DayStats {
	first, last := domain.Today(r.Start.UTC()), domain.Today(r.End.UTC())
	var days []DayStats
	index := make(map[string]int)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		key := d.Format(time.DateOnly)
		index[key] = len(days)
		days = append(days, DayStats{Date: key, Weekday: d.Weekday().String()[:3]})
	}

	for _, a := range activities {
		if i, ok := index[a.RecordedAt.UTC().Format(time.DateOnly)]; ok {
			days[i].Workouts++
			days[i].Minutes += a.Duration
			days[i].CaloriesBurned += a.CaloriesBurned
		}
	}
	for _, e := range entries {
		if i, ok := index[e.RecordedAt.UTC().Format(time.DateOnly)]; ok {
			days[i].CaloriesConsumed += e.Calories
		}
	}
	return days
}

func (s *ReportService) summarize(ctx context.Context, userID int64, r domain.TimeRange) (*Summary, []domain.FitnessActivity, error) {
	burned, err := s.activities.TotalCaloriesBurned(ctx, userID, r)
	if err != nil {
		return nil, nil, fmt.Errorf("total calories burned: %w", err)
	}
	consumed, err := s.nutrition.TotalCaloriesConsumed(ctx, userID, r)
	if err != nil {
		return nil, nil, fmt.Errorf("total calories consumed: %w", err)
	}
	activities, err := s.activities.ListActivitiesInRange(ctx, userID, r)
	if err != nil {
		return nil, nil, fmt.Errorf("list activities: %w", err)
	}
	macros, err := s.nutrition.MacronutrientTotals(ctx, userID, r)
	if err != nil {
		return nil, nil, fmt.Errorf("macronutrient totals: %w", err)
	}
	meals, err := s.mealTypes(ctx, userID, r)
	if err != nil {
		return nil, nil, err
	}

	sum := &Summary{
		Range:              r,
		CaloriesBurned:     burned,
		CaloriesConsumed:   consumed,
		NetCalories:        consumed - burned,
		WorkoutCount:       len(activities),
		Macronutrients:     macros,
		CaloriesByMealType: meals,
	}
	for _, a := range activities {
		sum.TotalWorkoutMinutes += a.Duration
	}
	if sum.WorkoutCount > 0 {
		sum.AverageWorkoutMinutes = round(float64(sum.TotalWorkoutMinutes)/float64(sum.WorkoutCount), 1)
	}
	return sum, activities, nil
}

func (s *ReportService) mealTypes(ctx context.Context, userID int64, r domain.TimeRange) (map[string]float64, error) {
	meals, err := s.nutrition.CaloriesByMealType(ctx, userID, r)
	if err != nil {
		return nil, fmt.Errorf("calories by meal type: %w", err)
	}
	if meals == nil {
		meals = map[string]float64{}
	}
	return meals, nil
}

// check validates r and confirms the user exists.
func (s *ReportService) check(ctx context.Context, userID int64, r domain.TimeRange) error {
	if err := r.Validate(); err != nil {
		return err
	}
	return requireUser(ctx, s.users, userID)
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
