// Package httpapi exposes the FinMate services over a chi-routed JSON
// API. Route layout and error bodies follow the public contract: every
// failure is a {"detail": "..."} object, protected routes expect a Bearer
// token.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/finmate-app/finmate/internal/logging"
	"github.com/finmate-app/finmate/internal/server/advisor"
	"github.com/finmate-app/finmate/internal/server/budget"
	"github.com/finmate-app/finmate/internal/server/config"
	"github.com/finmate-app/finmate/internal/server/expenses"
	"github.com/finmate-app/finmate/internal/server/investments"
	"github.com/finmate-app/finmate/internal/server/savings"
	"github.com/finmate-app/finmate/internal/server/users"
)

type Server struct {
	logger         logging.Logger
	userService    *users.Service
	expenseService *expenses.Service
	savingsService *savings.Service
	advisorService *advisor.Service
	budgetService  *budget.Service
	investService  *investments.Service
	secretKey      []byte
}

func NewServer(cfg *config.Config, logger logging.Logger,
	us *users.Service, es *expenses.Service, ss *savings.Service,
	as *advisor.Service, bs *budget.Service, is *investments.Service) *Server {
	return &Server{
		logger:         logger,
		userService:    us,
		expenseService: es,
		savingsService: ss,
		advisorService: as,
		budgetService:  bs,
		investService:  is,
		secretKey:      []byte(cfg.SecretKey),
	}
}

// Handler builds the route tree. Auth endpoints are public except /me;
// everything else sits behind the Bearer authenticator.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", s.handleLogin)
			r.Post("/register", s.handleRegister)

			r.Group(func(r chi.Router) {
				r.Use(Authenticator(s.secretKey))
				r.Get("/me", s.handleMe)
				r.Put("/me", s.handleUpdateMe)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(Authenticator(s.secretKey))

			r.Get("/expenses/categories", s.handleCategories)
			r.Route("/expenses/expenses", func(r chi.Router) {
				r.Get("/", s.handleListExpenses)
				r.Post("/", s.handleAddExpense)
				r.Get("/summary", s.handleExpenseSummary)
				r.Get("/breakdown", s.handleExpenseBreakdown)
				r.Delete("/{id}", s.handleDeleteExpense)
			})

			r.Route("/savings/goals", func(r chi.Router) {
				r.Get("/", s.handleListGoals)
				r.Post("/", s.handleAddGoal)
				r.Put("/{id}", s.handleUpdateGoal)
				r.Delete("/{id}", s.handleDeleteGoal)
				r.Get("/{id}/monthly-target", s.handleMonthlyTarget)
			})

			r.Route("/budget", func(r chi.Router) {
				r.Post("/generate", s.handleGenerateBudget)
				r.Post("/analyze", s.handleAnalyzeBudget)
				r.Post("/custom-budget", s.handleCustomBudget)
				r.Get("/categories", s.handleBudgetCategories)
			})

			r.Route("/investments", func(r chi.Router) {
				r.Post("/recommendations", s.handleInvestmentRecommendation)
				r.Post("/risk-assessment", s.handleRiskAssessment)
				r.Post("/retirement-calculator", s.handleRetirementCalculator)
				r.Get("/risk-levels", s.handleRiskLevels)
				r.Get("/investment-options/{risk_level}", s.handleInvestmentOptions)
			})

			r.Post("/ai/chat", s.handleChat)
			r.Get("/smart/insights", s.handleInsights)
		})
	})

	return r
}
