package domain

import (
	"context"
	"math"
	"strings"
	"time"
)

// User is a person being tracked. Height is in centimetres and weight in
// kilograms.
type User struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name" validate:"notblank,max=100"`
	Email         string    `json:"email" validate:"notblank,email,max=100"`
	Age           int       `json:"age" validate:"min=1,max=150"`
	Gender        string    `json:"gender" validate:"notblank,max=10"`
	Height        float64   `json:"height" validate:"gte=0.1"`
	Weight        float64   `json:"weight" validate:"gte=0.1"`
	ActivityLevel string    `json:"activityLevel" validate:"required"`
	FitnessGoal   string    `json:"fitnessGoal" validate:"required"`
	CreatedDate   time.Time `json:"createdDate"`
}

// NewUser returns u ready to be stored, with CreatedDate set to the date of now.
func NewUser(u User, now time.Time) User {
	u.ID = 0
	u.CreatedDate = Today(now)
	return u
}

// Validate checks the user's field constraints.
func (u User) Validate() error {
	return validateStruct(u)
}

// BMI categories.
const (
	BMIUnderweight = "underweight"
	BMINormal      = "normal"
	BMIOverweight  = "overweight"
	BMIObese       = "obese"
)

// HealthMetrics are values derived from a user's body measurements.
type HealthMetrics struct {
	BMI         float64 `json:"bmi"`
	BMR         float64 `json:"bmr"`
	BMICategory string  `json:"bmiCategory"`
}

// BMI returns weight / (height in metres)^2.
func (u User) BMI() float64 {
	m := u.Height / 100
	if m <= 0 {
		return 0
	}
	return u.Weight / (m * m)
}

// BMR returns the basal metabolic rate using the revised Harris-Benedict
// equation. Any gender other than "male" (case-insensitive) uses the
// female formula.
func (u User) BMR() float64 {
	age := float64(u.Age)
	if isMale(u.Gender) {
		return 88.362 + 13.397*u.Weight + 4.799*u.Height - 5.677*age
	}
	return 447.593 + 9.247*u.Weight + 3.098*u.Height - 4.330*age
}

// Metrics returns BMI, BMR and the BMI category rounded to one decimal.
func (u User) Metrics() HealthMetrics {
	bmi := u.BMI()
	return HealthMetrics{
		BMI:         round1(bmi),
		BMR:         round1(u.BMR()),
		BMICategory: BMICategory(bmi),
	}
}

// BMICategory classifies a BMI value.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}

func isMale(gender string) bool {
	return strings.EqualFold(gender, "male")
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Today returns the calendar date of t as midnight UTC.
func Today(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// UserRepository is the port for user persistence.
type UserRepository interface {
	CreateUser(ctx context.Context, u User) (int64, error)
	GetUser(ctx context.Context, id int64) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	UpdateUser(ctx context.Context, u User) (bool, error)
	DeleteUser(ctx context.Context, id int64) (bool, error)
}
