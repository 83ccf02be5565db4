package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/finmate-app/finmate/internal/server/expenses"
)

type expenseBody struct {
	ID          string  `json:"id,omitempty"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

type categoryTotalBody struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type summaryBody struct {
	TotalExpenses float64             `json:"total_expenses"`
	ByCategory    map[string]float64  `json:"expenses_by_category"`
	TopCategories []categoryTotalBody `json:"top_categories"`
}

func toExpenseBody(e *expenses.Expense) expenseBody {
	return expenseBody{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		Category:    e.Category,
		Date:        e.Date,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
	}
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	list, err := s.expenseService.List(r.Context(), UserID(r.Context()), q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		writeError(w, err)
		return
	}

	result := make([]expenseBody, 0, len(list))
	for i := range list {
		result = append(result, toExpenseBody(&list[i]))
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var body expenseBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid json body")
		return
	}

	created, err := s.expenseService.Add(r.Context(), &expenses.Expense{
		UserID:      UserID(r.Context()),
		Description: body.Description,
		Amount:      body.Amount,
		Category:    body.Category,
		Date:        body.Date,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toExpenseBody(created))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	err := s.expenseService.Delete(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type categoryShareBody struct {
	Category   string  `json:"category"`
	Total      float64 `json:"total"`
	Percentage float64 `json:"percentage"`
}

func (s *Server) handleExpenseBreakdown(w http.ResponseWriter, r *http.Request) {
	breakdown, err := s.expenseService.Breakdown(r.Context(), UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	result := make([]categoryShareBody, 0, len(breakdown))
	for _, cs := range breakdown {
		result = append(result, categoryShareBody(cs))
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, expenses.ValidCategories)
}

func (s *Server) handleExpenseSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.expenseService.Summarize(r.Context(), UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	body := summaryBody{
		TotalExpenses: summary.TotalExpenses,
		ByCategory:    summary.ByCategory,
		TopCategories: make([]categoryTotalBody, 0, len(summary.TopCategories)),
	}
	for _, ct := range summary.TopCategories {
		body.TopCategories = append(body.TopCategories, categoryTotalBody(ct))
	}
	writeJSON(w, http.StatusOK, body)
}
