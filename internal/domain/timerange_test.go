package domain_test

import (
	"errors"
	"testing"
	"time"

	"fitlog/internal/domain"
)

func TestTimeRangeContains(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC)
	r := domain.TimeRange{Start: start, End: end}

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"start bound", start, true},
		{"end bound", end, true},
		{"inside", start.Add(48 * time.Hour), true},
		{"before", start.Add(-time.Nanosecond), false},
		{"after", end.Add(time.Nanosecond), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.at); got != tc.want {
				t.Errorf("Contains(%v) = %v; want %v", tc.at, got, tc.want)
			}
		})
	}
}

func TestTimeRangeValidate(t *testing.T) {
	now := time.Now()
	if err := (domain.TimeRange{Start: now, End: now}).Validate(); err != nil {
		t.Errorf("empty-width range rejected: %v", err)
	}
	err := domain.TimeRange{Start: now, End: now.Add(-time.Minute)}.Validate()
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || !ve.Has("end") {
		t.Fatalf("expected end violation, got %v", err)
	}
}

func TestLastDays(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	r := domain.LastDays(now, 7)
	if !r.End.Equal(now) {
		t.Errorf("End = %v; want %v", r.End, now)
	}
	if want := time.Date(2026, 10, 12, 12, 0, 0, 0, time.UTC); !r.Start.Equal(want) {
		t.Errorf("Start = %v; want %v", r.Start, want)
	}
}

func TestTimeRangeStored(t *testing.T) {
	day := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	r := domain.TimeRange{
		Start: day.Add(500 * time.Nanosecond),
		End:   day.Add(24*time.Hour - time.Nanosecond),
	}.Stored()

	if want := day.Add(time.Microsecond); !r.Start.Equal(want) {
		t.Errorf("Start = %v; want %v", r.Start, want)
	}
	if want := day.Add(24*time.Hour - time.Microsecond); !r.End.Equal(want) {
		t.Errorf("End = %v; want %v", r.End, want)
	}
	if r.Contains(day.Add(24 * time.Hour)) {
		t.Error("next midnight must stay outside the range")
	}
	if r.Contains(day) {
		t.Error("a timestamp before the sub-microsecond start must stay outside the range")
	}

	exact := domain.TimeRange{Start: day, End: day.Add(time.Hour)}
	if got := exact.Stored(); !got.Start.Equal(exact.Start) || !got.End.Equal(exact.End) {
		t.Errorf("whole-microsecond range changed: %+v", got)
	}
}
