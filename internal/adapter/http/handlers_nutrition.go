package adapthttp

import (
	"net/http"
	"time"

	"fitlog/internal/domain"
)

type nutritionRequest struct {
	UserID      int64     `json:"userId"`
	FoodName    string    `json:"foodName"`
	MealType    string    `json:"mealType"`
	Calories    float64   `json:"calories"`
	Protein     float64   `json:"protein"`
	Carbs       float64   `json:"carbs"`
	Fat         float64   `json:"fat"`
	ServingSize float64   `json:"servingSize"`
	ServingUnit string    `json:"servingUnit"`
	RecordedAt  time.Time `json:"recordedAt"`
}

func (b nutritionRequest) toDomain(id int64) domain.NutritionEntry {
	return domain.NutritionEntry{
		ID:          id,
		UserID:      b.UserID,
		FoodName:    b.FoodName,
		MealType:    b.MealType,
		Calories:    b.Calories,
		Protein:     b.Protein,
		Carbs:       b.Carbs,
		Fat:         b.Fat,
		ServingSize: b.ServingSize,
		ServingUnit: b.ServingUnit,
		RecordedAt:  b.RecordedAt,
	}
}

func (s *Server) handleListNutrition(w http.ResponseWriter, r *http.Request) {
	items, err := s.nutrition.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleCreateNutrition(w http.ResponseWriter, r *http.Request) {
	var body nutritionRequest
	if !decodeBody(w, r, &body) {
		return
	}
	e, err := s.nutrition.Log(r.Context(), body.toDomain(0))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.metrics.RecordCreated("nutrition")
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleGetNutrition(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	e, err := s.nutrition.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleUpdateNutrition(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body nutritionRequest
	if !decodeBody(w, r, &body) {
		return
	}
	e, err := s.nutrition.Update(r.Context(), body.toDomain(id))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleDeleteNutrition(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.nutrition.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.metrics.RecordDeleted("nutrition")
	w.WriteHeader(http.StatusNoContent)
}
