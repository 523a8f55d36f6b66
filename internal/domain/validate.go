package domain

import (
	"errors"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// notblank rejects strings that are empty or only whitespace.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// ruleMessages maps "<json field>.<tag>" to the message shown to clients.
var ruleMessages = map[string]string{
	"name.notblank":          "Name is required",
	"email.notblank":         "Email is required",
	"email.email":            "Email should be valid",
	"age.min":                "Age must be positive",
	"age.max":                "Age must be realistic",
	"gender.notblank":        "Gender is required",
	"height.gte":             "Height must be positive",
	"weight.gte":             "Weight must be positive",
	"activityLevel.required": "Activity level is required",
	"fitnessGoal.required":   "Fitness goal is required",
	"userId.min":             "User is required",
	"activityType.notblank":  "Activity type is required",
	"duration.min":           "Duration must be positive",
	"caloriesBurned.gte":     "Calories burned cannot be negative",
	"foodName.notblank":      "Food name is required",
	"mealType.notblank":      "Meal type is required",
	"calories.gte":           "Calories cannot be negative",
	"protein.gte":            "Protein cannot be negative",
	"carbs.gte":              "Carbs cannot be negative",
	"fat.gte":                "Fat cannot be negative",
	"servingSize.gte":        "Serving size must be positive",
}

// validateStruct runs the struct tags of v and converts failures into a
// *ValidationError carrying every violated field.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := &ValidationError{Violations: make([]FieldViolation, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Violations = append(out.Violations, FieldViolation{
			Field:   fe.Field(),
			Message: ruleMessage(fe),
		})
	}
	return out
}

func ruleMessage(fe validator.FieldError) string {
	if msg, ok := ruleMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	label := humanize(fe.StructField())
	switch fe.Tag() {
	case "max":
		if fe.Kind() == reflect.String {
			return label + " must not exceed " + fe.Param() + " characters"
		}
		return label + " must be at most " + fe.Param()
	case "min", "gte":
		return label + " must be at least " + fe.Param()
	case "required", "notblank":
		return label + " is required"
	case "email":
		return label + " should be valid"
	}
	return label + " is invalid"
}

// humanize turns a Go field name such as "ServingUnit" into "Serving unit".
func humanize(field string) string {
	var words []string
	start := 0
	for i, r := range field {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, field[start:i])
			start = i
		}
	}
	words = append(words, field[start:])
	for i := range words {
		words[i] = strings.ToLower(words[i])
	}
	// Casers carry state and are not safe to share between goroutines.
	words[0] = cases.Title(language.English).String(words[0])
	return strings.Join(words, " ")
}
