package adapthttp

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"fitlog/internal/domain"
)

// rangedReport parses the user ID and time range shared by ranged reports.
func (s *Server) rangedReport(w http.ResponseWriter, r *http.Request) (int64, domain.TimeRange, bool) {
	id, ok := pathID(w, r)
	if !ok {
		return 0, domain.TimeRange{}, false
	}
	rng, err := parseRange(r, s.now())
	if err != nil {
		writeServiceError(w, r, err)
		return 0, domain.TimeRange{}, false
	}
	return id, rng, true
}

func (s *Server) handleCaloriesBurned(w http.ResponseWriter, r *http.Request) {
	id, rng, ok := s.rangedReport(w, r)
	if !ok {
		return
	}
	total, err := s.reports.TotalCaloriesBurned(r.Context(), id, rng)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"userId": id, "range": rng, "totalCaloriesBurned": total})
}

func (s *Server) handleActivityTypes(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	counts, err := s.reports.ActivityTypeBreakdown(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"userId": id, "activityTypes": counts})
}

func (s *Server) handleCaloriesConsumed(w http.ResponseWriter, r *http.Request) {
	id, rng, ok := s.rangedReport(w, r)
	if !ok {
		return
	}
	total, err := s.reports.TotalCaloriesConsumed(r.Context(), id, rng)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"userId": id, "range": rng, "totalCaloriesConsumed": total})
}

func (s *Server) handleMealTypes(w http.ResponseWriter, r *http.Request) {
	id, rng, ok := s.rangedReport(w, r)
	if !ok {
		return
	}
	meals, err := s.reports.CaloriesByMealType(r.Context(), id, rng)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"userId": id, "range": rng, "caloriesByMealType": meals})
}

func (s *Server) handleMacros(w http.ResponseWriter, r *http.Request) {
	id, rng, ok := s.rangedReport(w, r)
	if !ok {
		return
	}
	m, err := s.reports.MacronutrientTotals(r.Context(), id, rng)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"userId": id, "range": rng, "macronutrients": m})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	id, rng, ok := s.rangedReport(w, r)
	if !ok {
		return
	}
	sum, err := s.reports.Summary(r.Context(), id, rng)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handlePeriodReport(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	rep, err := s.reports.PeriodReport(r.Context(), id, chi.URLParam(r, "period"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}
