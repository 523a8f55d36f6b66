package adapthttp

import (
	"net/http"
	"time"

	"fitlog/internal/domain"
)

type activityRequest struct {
	UserID         int64     `json:"userId"`
	ActivityType   string    `json:"activityType"`
	Duration       int       `json:"duration"`
	CaloriesBurned float64   `json:"caloriesBurned"`
	Notes          string    `json:"notes"`
	RecordedAt     time.Time `json:"recordedAt"`
}

func (b activityRequest) toDomain(id int64) domain.FitnessActivity {
	return domain.FitnessActivity{
		ID:             id,
		UserID:         b.UserID,
		ActivityType:   b.ActivityType,
		Duration:       b.Duration,
		CaloriesBurned: b.CaloriesBurned,
		Notes:          b.Notes,
		RecordedAt:     b.RecordedAt,
	}
}

func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	items, err := s.activities.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleCreateActivity(w http.ResponseWriter, r *http.Request) {
	var body activityRequest
	if !decodeBody(w, r, &body) {
		return
	}
	a, err := s.activities.Log(r.Context(), body.toDomain(0))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.metrics.RecordCreated("activity")
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleGetActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	a, err := s.activities.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleUpdateActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body activityRequest
	if !decodeBody(w, r, &body) {
		return
	}
	a, err := s.activities.Update(r.Context(), body.toDomain(id))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleDeleteActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.activities.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.metrics.RecordDeleted("activity")
	w.WriteHeader(http.StatusNoContent)
}
