// Package investments implements rule-based investment guidance: model
// portfolios per risk level, a questionnaire-style risk assessment, and a
// retirement savings projection. All figures are static reference data;
// no market feed is involved.
package investments

import (
	"fmt"
	"math"

	"github.com/finmate-app/finmate/internal/common"
)

// Risk is a portfolio risk level.
type Risk string

const (
	RiskLow    Risk = "low"
	RiskMedium Risk = "medium"
	RiskHigh   Risk = "high"
)

// riskOrder drives listings; mildest first.
var riskOrder = []Risk{RiskLow, RiskMedium, RiskHigh}

// Holding is one recommended instrument inside a portfolio.
type Holding struct {
	Name           string
	Type           string
	Risk           string
	ExpectedReturn float64
}

// Portfolio is the model allocation for one risk level. Allocation
// values are percentages and sum to 100.
type Portfolio struct {
	Description     string
	AssetAllocation map[string]int
	Holdings        []Holding
	ExpectedReturn  float64
}

var portfolios = map[Risk]Portfolio{
	RiskLow: {
		Description:     "Conservative approach focusing on capital preservation",
		AssetAllocation: map[string]int{"bonds": 70, "stocks": 20, "cash": 10},
		Holdings: []Holding{
			{Name: "Government Bonds", Type: "Bond", Risk: "Low", ExpectedReturn: 3.5},
			{Name: "High-Yield Savings", Type: "Cash", Risk: "Very Low", ExpectedReturn: 2.0},
			{Name: "Blue Chip Stocks", Type: "Stock", Risk: "Low", ExpectedReturn: 6.0},
			{Name: "REITs", Type: "Real Estate", Risk: "Low-Medium", ExpectedReturn: 5.5},
		},
		ExpectedReturn: 4.0,
	},
	RiskMedium: {
		Description:     "Balanced approach with moderate risk and growth potential",
		AssetAllocation: map[string]int{"stocks": 60, "bonds": 30, "alternatives": 10},
		Holdings: []Holding{
			{Name: "S&P 500 Index Fund", Type: "Stock", Risk: "Medium", ExpectedReturn: 8.0},
			{Name: "Corporate Bonds", Type: "Bond", Risk: "Low-Medium", ExpectedReturn: 4.5},
			{Name: "International Stocks", Type: "Stock", Risk: "Medium", ExpectedReturn: 7.5},
			{Name: "Commodity ETFs", Type: "Alternative", Risk: "Medium", ExpectedReturn: 6.0},
		},
		ExpectedReturn: 6.5,
	},
	RiskHigh: {
		Description:     "Aggressive approach focusing on long-term growth",
		AssetAllocation: map[string]int{"stocks": 80, "alternatives": 15, "bonds": 5},
		Holdings: []Holding{
			{Name: "Growth Stocks", Type: "Stock", Risk: "High", ExpectedReturn: 12.0},
			{Name: "Small Cap Stocks", Type: "Stock", Risk: "High", ExpectedReturn: 10.0},
			{Name: "Emerging Markets", Type: "Stock", Risk: "Very High", ExpectedReturn: 9.0},
			{Name: "Cryptocurrency", Type: "Alternative", Risk: "Very High", ExpectedReturn: 15.0},
		},
		ExpectedReturn: 10.0,
	},
}

// Profile describes an investor for recommendation purposes.
type Profile struct {
	Age           int
	RiskTolerance Risk
	TimeHorizon   int // years until the money is needed
}

type Recommendation struct {
	RiskLevel       Risk
	AssetAllocation map[string]int
	Holdings        []Holding
	ExpectedReturn  float64
	RiskDescription string
}

// RiskLevel is one entry of the risk-level listing.
type RiskLevel struct {
	Level          Risk
	Description    string
	ExpectedReturn float64
}

// RetirementInput are the knobs of the retirement projection.
type RetirementInput struct {
	CurrentAge          int
	RetirementAge       int
	CurrentSavings      float64
	MonthlyContribution float64
	ExpectedReturn      float64 // annual, percent
}

type RetirementProjection struct {
	CurrentSavings      float64
	MonthlyContribution float64
	YearsToRetirement   int
	ExpectedReturn      float64
	ProjectedSavings    float64
	TotalContributions  float64
	GrowthAmount        float64
}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Recommend picks the model portfolio for a profile. The stated risk
// tolerance is adjusted for age and time horizon before lookup.
func (s *Service) Recommend(profile Profile) (*Recommendation, error) {
	if _, ok := portfolios[profile.RiskTolerance]; !ok {
		return nil, fmt.Errorf("%w: unknown risk tolerance %q", common.ErrorValidation, profile.RiskTolerance)
	}

	risk := adjustRisk(profile)
	p := portfolios[risk]

	return &Recommendation{
		RiskLevel:       risk,
		AssetAllocation: p.AssetAllocation,
		Holdings:        p.Holdings,
		ExpectedReturn:  p.ExpectedReturn,
		RiskDescription: p.Description,
	}, nil
}

// adjustRisk moderates extremes: near-retirement investors are pulled out
// of high risk, young or long-horizon investors out of the lowest tier.
func adjustRisk(profile Profile) Risk {
	switch {
	case profile.Age > 60 && profile.RiskTolerance == RiskHigh:
		return RiskMedium
	case profile.Age < 30 && profile.RiskTolerance == RiskLow:
		return RiskMedium
	case profile.TimeHorizon < 3 && profile.RiskTolerance == RiskHigh:
		return RiskMedium
	}
	return profile.RiskTolerance
}

var aggressiveGoals = map[string]bool{
	"retirement":       true,
	"wealth_building":  true,
	"early_retirement": true,
}

// AssessRisk scores age, income, horizon and goals into a risk level.
// Younger, better earning and longer-horizon investors score higher.
func (s *Service) AssessRisk(age int, income float64, timeHorizon int, goals []string) Risk {
	score := 0

	switch {
	case age < 30:
		score += 3
	case age < 40:
		score += 2
	case age < 50:
		score++
	}

	switch {
	case income > 100000:
		score += 2
	case income > 50000:
		score++
	}

	switch {
	case timeHorizon > 10:
		score += 2
	case timeHorizon > 5:
		score++
	}

	for _, goal := range goals {
		if aggressiveGoals[goal] {
			score++
			break
		}
	}

	switch {
	case score >= 5:
		return RiskHigh
	case score >= 3:
		return RiskMedium
	default:
		return RiskLow
	}
}

// RiskLevels lists the available levels with descriptions.
func (s *Service) RiskLevels() []RiskLevel {
	result := make([]RiskLevel, 0, len(riskOrder))
	for _, risk := range riskOrder {
		p := portfolios[risk]
		result = append(result, RiskLevel{
			Level:          risk,
			Description:    p.Description,
			ExpectedReturn: p.ExpectedReturn,
		})
	}
	return result
}

// Options returns the model portfolio for one risk level.
func (s *Service) Options(risk Risk) (*Portfolio, error) {
	p, ok := portfolios[risk]
	if !ok {
		return nil, fmt.Errorf("%w: invalid risk level %q", common.ErrorValidation, risk)
	}
	return &p, nil
}

// Retirement projects savings at retirement age: current savings compound
// annually, monthly contributions accrue as an ordinary annuity at the
// monthly rate.
func (s *Service) Retirement(in RetirementInput) (*RetirementProjection, error) {
	if in.CurrentAge >= in.RetirementAge {
		return nil, fmt.Errorf("%w: retirement age must be greater than current age", common.ErrorValidation)
	}
	if in.ExpectedReturn < 0 || in.ExpectedReturn > 20 {
		return nil, fmt.Errorf("%w: expected return must be between 0 and 20 percent", common.ErrorValidation)
	}
	if in.CurrentSavings < 0 || in.MonthlyContribution < 0 {
		return nil, fmt.Errorf("%w: savings and contributions cannot be negative", common.ErrorValidation)
	}

	years := in.RetirementAge - in.CurrentAge
	months := years * 12
	monthlyRate := in.ExpectedReturn / 12 / 100

	futureCurrent := in.CurrentSavings * math.Pow(1+in.ExpectedReturn/100, float64(years))

	var futureContributions float64
	if monthlyRate > 0 {
		futureContributions = in.MonthlyContribution *
			((math.Pow(1+monthlyRate, float64(months)) - 1) / monthlyRate)
	} else {
		futureContributions = in.MonthlyContribution * float64(months)
	}

	projected := futureCurrent + futureContributions
	contributed := in.MonthlyContribution * float64(months)

	return &RetirementProjection{
		CurrentSavings:      in.CurrentSavings,
		MonthlyContribution: in.MonthlyContribution,
		YearsToRetirement:   years,
		ExpectedReturn:      in.ExpectedReturn,
		ProjectedSavings:    round2(projected),
		TotalContributions:  round2(contributed),
		GrowthAmount:        round2(projected - in.CurrentSavings - contributed),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
