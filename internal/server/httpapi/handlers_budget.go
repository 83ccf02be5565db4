package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/finmate-app/finmate/internal/server/budget"
)

type budgetItemBody struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage,omitempty"`
}

type budgetPlanBody struct {
	MonthlyIncome   float64          `json:"monthly_income"`
	Items           []budgetItemBody `json:"budget_items"`
	TotalBudget     float64          `json:"total_budget"`
	RemainingAmount float64          `json:"remaining_amount"`
}

func toBudgetPlanBody(p *budget.Plan) budgetPlanBody {
	items := make([]budgetItemBody, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, budgetItemBody(item))
	}
	return budgetPlanBody{
		MonthlyIncome:   p.MonthlyIncome,
		Items:           items,
		TotalBudget:     p.TotalBudget,
		RemainingAmount: p.RemainingAmount,
	}
}

func fromBudgetPlanBody(body budgetPlanBody) *budget.Plan {
	items := make([]budget.Item, 0, len(body.Items))
	for _, item := range body.Items {
		items = append(items, budget.Item(item))
	}
	return &budget.Plan{
		MonthlyIncome:   body.MonthlyIncome,
		Items:           items,
		TotalBudget:     body.TotalBudget,
		RemainingAmount: body.RemainingAmount,
	}
}

func (s *Server) handleGenerateBudget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MonthlyIncome float64            `json:"monthly_income"`
		Preferences   map[string]float64 `json:"preferences"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid json body")
		return
	}

	plan, err := s.budgetService.GeneratePlan(req.MonthlyIncome, req.Preferences)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toBudgetPlanBody(plan))
}

func (s *Server) handleCustomBudget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MonthlyIncome float64          `json:"monthly_income"`
		Items         []budgetItemBody `json:"budget_items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid json body")
		return
	}

	items := make([]budget.Item, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, budget.Item(item))
	}

	plan, err := s.budgetService.CustomPlan(req.MonthlyIncome, items)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toBudgetPlanBody(plan))
}

type budgetCategoryBody struct {
	Value string `json:"value"`
	Name  string `json:"name"`
}

func (s *Server) handleBudgetCategories(w http.ResponseWriter, r *http.Request) {
	cats := s.budgetService.Categories()
	result := make([]budgetCategoryBody, 0, len(cats))
	for _, c := range cats {
		result = append(result, budgetCategoryBody(c))
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": result})
}

type categoryReportBody struct {
	Budgeted       float64 `json:"budgeted"`
	Actual         float64 `json:"actual"`
	Difference     float64 `json:"difference"`
	PercentageUsed float64 `json:"percentage_used"`
	Status         string  `json:"status"`
}

type budgetAnalysisBody struct {
	OverallStatus    string                        `json:"overall_status"`
	CategoryAnalysis map[string]categoryReportBody `json:"category_analysis"`
	Recommendations  []string                      `json:"recommendations"`
	TotalOverspend   float64                       `json:"total_overspend,omitempty"`
}

// handleAnalyzeBudget compares the submitted plan against the caller's
// recorded expenses; the actuals come from storage, not the request.
func (s *Server) handleAnalyzeBudget(w http.ResponseWriter, r *http.Request) {
	var body budgetPlanBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid json body")
		return
	}

	analysis, err := s.budgetService.Analyze(r.Context(), UserID(r.Context()), fromBudgetPlanBody(body))
	if err != nil {
		writeError(w, err)
		return
	}

	result := budgetAnalysisBody{
		OverallStatus:    analysis.OverallStatus,
		CategoryAnalysis: make(map[string]categoryReportBody, len(analysis.CategoryAnalysis)),
		Recommendations:  analysis.Recommendations,
		TotalOverspend:   analysis.TotalOverspend,
	}
	for category, report := range analysis.CategoryAnalysis {
		result.CategoryAnalysis[category] = categoryReportBody(report)
	}
	writeJSON(w, http.StatusOK, result)
}
