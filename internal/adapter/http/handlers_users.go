package adapthttp

import (
	"net/http"

	"github.com/rs/zerolog"

	"fitlog/internal/domain"
)

type userRequest struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Age           int     `json:"age"`
	Gender        string  `json:"gender"`
	Height        float64 `json:"height"`
	Weight        float64 `json:"weight"`
	ActivityLevel string  `json:"activityLevel"`
	FitnessGoal   string  `json:"fitnessGoal"`
}

func (b userRequest) toDomain(id int64) domain.User {
	return domain.User{
		ID:            id,
		Name:          b.Name,
		Email:         b.Email,
		Age:           b.Age,
		Gender:        b.Gender,
		Height:        b.Height,
		Weight:        b.Weight,
		ActivityLevel: b.ActivityLevel,
		FitnessGoal:   b.FitnessGoal,
	}
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": users})
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var body userRequest
	if !decodeBody(w, r, &body) {
		return
	}
	u, err := s.users.Create(r.Context(), body.toDomain(0))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.metrics.RecordCreated("user")
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := s.users.Profile(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body userRequest
	if !decodeBody(w, r, &body) {
		return
	}
	u, err := s.users.Update(r.Context(), body.toDomain(id))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.users.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.metrics.RecordDeleted("user")
	zerolog.Ctx(r.Context()).Info().Int64("user_id", id).Msg("user deleted with activities and nutrition entries")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUserActivities(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var (
		items []domain.FitnessActivity
		err   error
	)
	if hasRange(r) {
		rng, rerr := parseRange(r, s.now())
		if rerr != nil {
			writeServiceError(w, r, rerr)
			return
		}
		items, err = s.activities.ListByUserInRange(r.Context(), id, rng)
	} else {
		items, err = s.activities.ListByUser(r.Context(), id)
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleUserNutrition(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var (
		items []domain.NutritionEntry
		err   error
	)
	if hasRange(r) {
		rng, rerr := parseRange(r, s.now())
		if rerr != nil {
			writeServiceError(w, r, rerr)
			return
		}
		items, err = s.nutrition.ListByUserInRange(r.Context(), id, rng)
	} else {
		items, err = s.nutrition.ListByUser(r.Context(), id)
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}
