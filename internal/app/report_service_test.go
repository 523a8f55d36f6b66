package app_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"fitlog/internal/adapter/memory"
	"fitlog/internal/app"
	"fitlog/internal/domain"
)

var reportNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

// seedReports stores a user with a mix of activities and meals and returns
// the service and the user's ID.
func seedReports(t *testing.T) (*app.ReportService, *memory.DB, int64) {
	t.Helper()
	ctx := context.Background()
	db := memory.New()

	u := domain.NewUser(sampleUser(), reportNow)
	userID, err := db.CreateUser(ctx, u)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	activities := []domain.FitnessActivity{
		{ActivityType: "running", Duration: 30, CaloriesBurned: 300, RecordedAt: reportNow.Add(-1 * time.Hour)},
		{ActivityType: "running", Duration: 45, CaloriesBurned: 450, RecordedAt: reportNow.Add(-26 * time.Hour)},
		{ActivityType: "running", Duration: 20, CaloriesBurned: 200, RecordedAt: reportNow.AddDate(0, 0, -20)},
		{ActivityType: "yoga", Duration: 60, CaloriesBurned: 180, RecordedAt: reportNow.AddDate(0, 0, -3)},
		{ActivityType: "yoga", Duration: 60, CaloriesBurned: 180, RecordedAt: reportNow.AddDate(0, 0, -200)},
	}
	for _, a := range activities {
		a.UserID = userID
		if _, err := db.CreateActivity(ctx, a); err != nil {
			t.Fatalf("CreateActivity: %v", err)
		}
	}

	entries := []domain.NutritionEntry{
		{FoodName: "Oats", MealType: "breakfast", Calories: 300, Protein: 10, Carbs: 54, Fat: 5, ServingSize: 1, RecordedAt: reportNow.Add(-5 * time.Hour)},
		{FoodName: "Chicken", MealType: "lunch", Calories: 500, Protein: 45, Carbs: 10, Fat: 20, ServingSize: 1, RecordedAt: reportNow.Add(-2 * time.Hour)},
		{FoodName: "Pasta", MealType: "dinner", Calories: 700, Protein: 20, Carbs: 100, Fat: 15, ServingSize: 1, RecordedAt: reportNow.AddDate(0, 0, -2)},
	}
	for _, e := range entries {
		e.UserID = userID
		if _, err := db.CreateNutritionEntry(ctx, e); err != nil {
			t.Fatalf("CreateNutritionEntry: %v", err)
		}
	}

	svc := app.NewReportService(db, db, db)
	app.SetReportClock(svc, func() time.Time { return reportNow })
	return svc, db, userID
}

func TestTotalCaloriesBurned(t *testing.T) {
	svc, _, userID := seedReports(t)
	ctx := context.Background()

	r := domain.TimeRange{Start: reportNow.Add(-26 * time.Hour), End: reportNow}
	total, err := svc.TotalCaloriesBurned(ctx, userID, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 750 {
		t.Errorf("total = %v; want 750", total)
	}

	empty := domain.TimeRange{Start: reportNow.Add(time.Hour), End: reportNow.Add(2 * time.Hour)}
	if total, _ := svc.TotalCaloriesBurned(ctx, userID, empty); total != 0 {
		t.Errorf("empty range total = %v; want 0", total)
	}
}

func TestActivityTypeBreakdown(t *testing.T) {
	svc, _, userID := seedReports(t)
	got, err := svc.ActivityTypeBreakdown(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := map[string]int64{"running": 3, "yoga": 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("breakdown = %v; want %v", got, want)
	}
}

func TestReports_UnknownUser(t *testing.T) {
	svc, _, _ := seedReports(t)
	ctx := context.Background()
	r := domain.LastDays(reportNow, 7)

	checks := map[string]func() error{
		"burned": func() error { _, err := svc.TotalCaloriesBurned(ctx, 404, r); return err },
		"types":  func() error { _, err := svc.ActivityTypeBreakdown(ctx, 404); return err },
		"eaten":  func() error { _, err := svc.TotalCaloriesConsumed(ctx, 404, r); return err },
		"meals":  func() error { _, err := svc.CaloriesByMealType(ctx, 404, r); return err },
		"macros": func() error { _, err := svc.MacronutrientTotals(ctx, 404, r); return err },
		"sum":    func() error { _, err := svc.Summary(ctx, 404, r); return err },
		"period": func() error { _, err := svc.PeriodReport(ctx, 404, "week"); return err },
	}
	for name, call := range checks {
		t.Run(name, func(t *testing.T) {
			var nf *domain.NotFoundError
			if err := call(); !errors.As(err, &nf) || nf.ID != 404 {
				t.Errorf("expected NotFoundError for 404, got %v", err)
			}
		})
	}
}

func TestNutritionAggregates(t *testing.T) {
	svc, _, userID := seedReports(t)
	ctx := context.Background()
	today := domain.TimeRange{Start: reportNow.Add(-6 * time.Hour), End: reportNow}

	consumed, err := svc.TotalCaloriesConsumed(ctx, userID, today)
	if err != nil || consumed != 800 {
		t.Errorf("consumed = %v, %v; want 800", consumed, err)
	}

	meals, err := svc.CaloriesByMealType(ctx, userID, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := map[string]float64{"breakfast": 300, "lunch": 500}; !reflect.DeepEqual(meals, want) {
		t.Errorf("meals = %v; want %v", meals, want)
	}

	macros, err := svc.MacronutrientTotals(ctx, userID, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := (domain.Macronutrients{Protein: 55, Carbs: 64, Fat: 25}); macros != want {
		t.Errorf("macros = %+v; want %+v", macros, want)
	}

	none := domain.TimeRange{Start: reportNow.AddDate(-1, 0, 0), End: reportNow.AddDate(-1, 0, 1)}
	meals, _ = svc.CaloriesByMealType(ctx, userID, none)
	if meals == nil || len(meals) != 0 {
		t.Errorf("expected empty non-nil map, got %#v", meals)
	}
}

func TestSummary(t *testing.T) {
	svc, _, userID := seedReports(t)
	sum, err := svc.Summary(context.Background(), userID, domain.LastDays(reportNow, 7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.CaloriesBurned != 930 {
		t.Errorf("burned = %v; want 930", sum.CaloriesBurned)
	}
	if sum.CaloriesConsumed != 1500 {
		t.Errorf("consumed = %v; want 1500", sum.CaloriesConsumed)
	}
	if sum.NetCalories != 570 {
		t.Errorf("net = %v; want 570", sum.NetCalories)
	}
	if sum.WorkoutCount != 3 || sum.TotalWorkoutMinutes != 135 || sum.AverageWorkoutMinutes != 45 {
		t.Errorf("workouts = %d/%d/%v; want 3/135/45", sum.WorkoutCount, sum.TotalWorkoutMinutes, sum.AverageWorkoutMinutes)
	}
	if len(sum.CaloriesByMealType) != 3 {
		t.Errorf("expected 3 meal types, got %v", sum.CaloriesByMealType)
	}
}

func TestSummary_BadRange(t *testing.T) {
	svc, _, userID := seedReports(t)
	_, err := svc.Summary(context.Background(), userID, domain.TimeRange{Start: reportNow, End: reportNow.Add(-time.Second)})
	if !errors.As(err, new(*domain.ValidationError)) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestPeriodReport(t *testing.T) {
	svc, _, userID := seedReports(t)
	ctx := context.Background()

	month, err := svc.PeriodReport(ctx, userID, "month")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if month.Days != 30 || month.Summary.WorkoutCount != 4 {
		t.Errorf("month = %d days, %d workouts; want 30, 4", month.Days, month.Summary.WorkoutCount)
	}
	running := month.ActivityTypes["running"]
	if running.Count != 3 || running.CaloriesBurned != 950 || running.Minutes != 95 {
		t.Errorf("running = %+v", running)
	}
	if got := month.DailyAverages.WorkoutFrequency; got != 0.13 {
		t.Errorf("workout frequency = %v; want 0.13", got)
	}
	if got := month.DailyAverages.CaloriesBurned; got != 37.7 {
		t.Errorf("daily burned = %v; want 37.7", got)
	}

	if len(month.Daily) != 31 {
		t.Fatalf("daily points = %d; want 31", len(month.Daily))
	}
	if first := month.Daily[0]; first.Date != "2026-05-16" || first.Weekday != "Sat" {
		t.Errorf("first day = %+v", first)
	}
	today := month.Daily[len(month.Daily)-1]
	if today.Date != "2026-06-15" || today.Workouts != 1 || today.Minutes != 30 ||
		today.CaloriesBurned != 300 || today.CaloriesConsumed != 800 {
		t.Errorf("today = %+v", today)
	}
	if yesterday := month.Daily[len(month.Daily)-2]; yesterday.CaloriesBurned != 450 || yesterday.Minutes != 45 {
		t.Errorf("yesterday = %+v", yesterday)
	}
	var burned, consumed float64
	for _, d := range month.Daily {
		burned += d.CaloriesBurned
		consumed += d.CaloriesConsumed
	}
	if burned != month.Summary.CaloriesBurned || consumed != month.Summary.CaloriesConsumed {
		t.Errorf("daily sums %v/%v differ from summary %v/%v", burned, consumed,
			month.Summary.CaloriesBurned, month.Summary.CaloriesConsumed)
	}

	year, err := svc.PeriodReport(ctx, userID, "year")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if year.ActivityTypes["yoga"].Count != 2 {
		t.Errorf("year yoga = %+v", year.ActivityTypes["yoga"])
	}

	_, err = svc.PeriodReport(ctx, userID, "decade")
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || !ve.Has("period") {
		t.Fatalf("expected period violation, got %v", err)
	}
}

func TestDeleteUser_RemovesReportData(t *testing.T) {
	svc, db, userID := seedReports(t)
	ctx := context.Background()

	users := app.NewUserService(db)
	if err := users.Delete(ctx, userID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.ActivityTypeBreakdown(ctx, userID); !errors.As(err, new(*domain.NotFoundError)) {
		t.Fatalf("expected NotFoundError after delete, got %v", err)
	}
	all, _ := db.ListActivities(ctx)
	if len(all) != 0 {
		t.Errorf("expected activities removed, got %d", len(all))
	}
}
