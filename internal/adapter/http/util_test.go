package adapthttp

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fitlog/internal/domain"
)

func TestParseRange(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		query     string
		wantStart time.Time
		wantEnd   time.Time
		wantField string
	}{
		{
			name:      "defaults to last seven days",
			wantStart: now.AddDate(0, 0, -7),
			wantEnd:   now,
		},
		{
			name:      "dates cover whole end day",
			query:     "start=2026-06-01&end=2026-06-02",
			wantStart: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 6, 2, 23, 59, 59, 999999000, time.UTC),
		},
		{
			name:      "sub-microsecond bounds narrow inward",
			query:     "start=2026-06-01T08:00:00.0000001Z&end=2026-06-01T09:00:00.0000009Z",
			wantStart: time.Date(2026, 6, 1, 8, 0, 0, 1000, time.UTC),
			wantEnd:   time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			name:      "timestamps",
			query:     "start=2026-06-01T08:00:00Z&end=2026-06-01T09:30:00Z",
			wantStart: time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			name:      "end only",
			query:     "end=2026-06-10T00:00:00Z",
			wantStart: time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
		},
		{name: "bad start", query: "start=yesterday", wantField: "start"},
		{name: "bad end", query: "end=06/01/2026", wantField: "end"},
		{name: "inverted", query: "start=2026-06-05&end=2026-06-01", wantField: "end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			got, err := parseRange(r, now)
			if tt.wantField != "" {
				var ve *domain.ValidationError
				if !errors.As(err, &ve) || !ve.Has(tt.wantField) {
					t.Fatalf("expected %s violation, got %v", tt.wantField, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Start.Equal(tt.wantStart) || !got.End.Equal(tt.wantEnd) {
				t.Errorf("range = %v..%v; want %v..%v", got.Start, got.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestParseRange_DateOnlyEndExcludesNextMidnight(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?start=2026-04-02&end=2026-04-02", nil)
	got, err := parseRange(r, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.End.Nanosecond()%1000 != 0 {
		t.Errorf("End %v is finer than stored timestamps", got.End)
	}
	if !got.Contains(time.Date(2026, 4, 2, 23, 59, 59, 999999000, time.UTC)) {
		t.Error("last stored instant of the day must be inside the range")
	}
	if got.Contains(time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC)) {
		t.Error("next midnight must be outside the range")
	}
}

func TestHasRange(t *testing.T) {
	if hasRange(httptest.NewRequest(http.MethodGet, "/", nil)) {
		t.Error("expected no range without query")
	}
	if !hasRange(httptest.NewRequest(http.MethodGet, "/?end=2026-01-01", nil)) {
		t.Error("expected range when end is set")
	}
}
