package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finmate-app/finmate/internal/server/investments"
)

type holdingBody struct {
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	Risk           string  `json:"risk"`
	ExpectedReturn float64 `json:"expected_return"`
}

func toHoldingBodies(holdings []investments.Holding) []holdingBody {
	result := make([]holdingBody, 0, len(holdings))
	for _, h := range holdings {
		result = append(result, holdingBody(h))
	}
	return result
}

func (s *Server) handleInvestmentRecommendation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Age           int    `json:"age"`
		RiskTolerance string `json:"risk_tolerance"`
		TimeHorizon   int    `json:"time_horizon"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid json body")
		return
	}

	rec, err := s.investService.Recommend(investments.Profile{
		Age:           req.Age,
		RiskTolerance: investments.Risk(req.RiskTolerance),
		TimeHorizon:   req.TimeHorizon,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"risk_level":              rec.RiskLevel,
		"asset_allocation":        rec.AssetAllocation,
		"recommended_investments": toHoldingBodies(rec.Holdings),
		"expected_return":         rec.ExpectedReturn,
		"risk_description":        rec.RiskDescription,
	})
}

func (s *Server) handleRiskAssessment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Age         int      `json:"age"`
		Income      float64  `json:"income"`
		TimeHorizon int      `json:"time_horizon"`
		Goals       []string `json:"goals"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid json body")
		return
	}

	risk := s.investService.AssessRisk(req.Age, req.Income, req.TimeHorizon, req.Goals)
	p, err := s.investService.Options(risk)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"risk_level":  risk,
		"description": p.Description,
	})
}

func (s *Server) handleRetirementCalculator(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentAge          int     `json:"current_age"`
		RetirementAge       int     `json:"retirement_age"`
		CurrentSavings      float64 `json:"current_savings"`
		MonthlyContribution float64 `json:"monthly_contribution"`
		ExpectedReturn      float64 `json:"expected_return"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid json body")
		return
	}

	proj, err := s.investService.Retirement(investments.RetirementInput{
		CurrentAge:          req.CurrentAge,
		RetirementAge:       req.RetirementAge,
		CurrentSavings:      req.CurrentSavings,
		MonthlyContribution: req.MonthlyContribution,
		ExpectedReturn:      req.ExpectedReturn,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"current_savings":      proj.CurrentSavings,
		"monthly_contribution": proj.MonthlyContribution,
		"years_to_retirement":  proj.YearsToRetirement,
		"expected_return":      proj.ExpectedReturn,
		"projected_savings":    proj.ProjectedSavings,
		"total_contributions":  proj.TotalContributions,
		"growth_amount":        proj.GrowthAmount,
	})
}

func (s *Server) handleRiskLevels(w http.ResponseWriter, r *http.Request) {
	levels := s.investService.RiskLevels()
	result := make([]map[string]any, 0, len(levels))
	for _, l := range levels {
		result = append(result, map[string]any{
			"level":           l.Level,
			"description":     l.Description,
			"expected_return": l.ExpectedReturn,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"risk_levels": result})
}

func (s *Server) handleInvestmentOptions(w http.ResponseWriter, r *http.Request) {
	p, err := s.investService.Options(investments.Risk(chi.URLParam(r, "risk_level")))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"description":      p.Description,
		"asset_allocation": p.AssetAllocation,
		"investments":      toHoldingBodies(p.Holdings),
		"expected_return":  p.ExpectedReturn,
	})
}
