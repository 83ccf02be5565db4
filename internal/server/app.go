// Package server initializes and runs the FinMate API server. It wires the
// Postgres-backed repositories into the domain services, mounts the HTTP
// API and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/finmate-app/finmate/internal/logging"
	"github.com/finmate-app/finmate/internal/server/advisor"
	"github.com/finmate-app/finmate/internal/server/budget"
	"github.com/finmate-app/finmate/internal/server/config"
	"github.com/finmate-app/finmate/internal/server/expenses"
	"github.com/finmate-app/finmate/internal/server/httpapi"
	"github.com/finmate-app/finmate/internal/server/investments"
	"github.com/finmate-app/finmate/internal/server/savings"
	"github.com/finmate-app/finmate/internal/server/shared/db"
	"github.com/finmate-app/finmate/internal/server/users"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config         *config.Config
	logger         logging.Logger
	userService    *users.Service
	expenseService *expenses.Service
	savingsService *savings.Service
	advisorService *advisor.Service
	budgetService  *budget.Service
	investService  *investments.Service
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	m, err := db.NewPostgresRepositoryManager(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us := users.NewService(m.Users(), cfg)
	es := expenses.NewService(m.Expenses())
	ss := savings.NewService(m.Savings())
	as := advisor.NewService(es, ss)
	bs := budget.NewService(es)
	is := investments.NewService()

	return &App{
		config:         cfg,
		logger:         logger,
		userService:    us,
		expenseService: es,
		savingsService: ss,
		advisorService: as,
		budgetService:  bs,
		investService:  is,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	api := httpapi.NewServer(app.config, app.logger,
		app.userService, app.expenseService, app.savingsService,
		app.advisorService, app.budgetService, app.investService)

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: api.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(shutdownCtx, "shutdown error", "error", err)
		}
	}()

	app.logger.Info(ctx, "http server listening", "addr", app.config.EndpointAddr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
