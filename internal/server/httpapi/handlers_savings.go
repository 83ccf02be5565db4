package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/finmate-app/finmate/internal/server/savings"
)

type goalBody struct {
	ID            string  `json:"id,omitempty"`
	Name          string  `json:"name"`
	TargetAmount  float64 `json:"target_amount"`
	CurrentAmount float64 `json:"current_amount"`
	TargetDate    string  `json:"target_date"`
	Priority      int     `json:"priority"`
	CreatedAt     string  `json:"created_at,omitempty"`
}

type updateGoalBody struct {
	CurrentAmount float64 `json:"current_amount"`
}

type monthlyTargetBody struct {
	GoalID          string  `json:"goal_id"`
	MonthlyAmount   float64 `json:"monthly_amount"`
	MonthsRemaining int     `json:"months_remaining"`
}

func toGoalBody(g *savings.Goal) goalBody {
	return goalBody{
		ID:            g.ID,
		Name:          g.Name,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		TargetDate:    g.TargetDate,
		Priority:      g.Priority,
		CreatedAt:     g.CreatedAt.Format(time.RFC3339),
	}
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	list, err := s.savingsService.List(r.Context(), UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	result := make([]goalBody, 0, len(list))
	for i := range list {
		result = append(result, toGoalBody(&list[i]))
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAddGoal(w http.ResponseWriter, r *http.Request) {
	var body goalBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid json body")
		return
	}

	created, err := s.savingsService.Add(r.Context(), &savings.Goal{
		UserID:        UserID(r.Context()),
		Name:          body.Name,
		TargetAmount:  body.TargetAmount,
		CurrentAmount: body.CurrentAmount,
		TargetDate:    body.TargetDate,
		Priority:      body.Priority,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toGoalBody(created))
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	var body updateGoalBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid json body")
		return
	}

	updated, err := s.savingsService.UpdateAmount(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"), body.CurrentAmount)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toGoalBody(updated))
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	err := s.savingsService.Delete(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMonthlyTarget(w http.ResponseWriter, r *http.Request) {
	target, err := s.savingsService.MonthlyTarget(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, monthlyTargetBody{
		GoalID:          target.GoalID,
		MonthlyAmount:   target.MonthlyAmount,
		MonthsRemaining: target.MonthsRemaining,
	})
}
