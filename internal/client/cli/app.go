// Package cli implements the interactive FinMate terminal client: a REPL
// whose visible command tree is decided by the session gate.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/finmate-app/finmate/internal/client/api"
	"github.com/finmate-app/finmate/internal/client/auth"
	"github.com/finmate-app/finmate/internal/client/config"
	"github.com/finmate-app/finmate/internal/client/gate"
	"github.com/finmate-app/finmate/internal/client/session"
	"github.com/finmate-app/finmate/internal/logging"

	_ "modernc.org/sqlite"
)

// requestTimeout bounds the interactive data calls (expenses, goals,
// coach). Auth calls carry their own tighter deadlines inside the auth
// service.
const requestTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger

	store *session.Store
	api   api.Client
	auth  *auth.Service
	gate  *gate.Controller

	reader *bufio.Reader
	out    io.Writer

	// view state of the authenticated tree; dropped on every tree switch
	chatHistory []string
}

func NewApp(cfg *config.Config, logger logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := session.OpenDatabase(ctx, cfg.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing session database: %w", err)
	}

	signal := session.NewSignal()
	store := session.NewStore(session.NewSQLiteStorage(db), signal)
	client := api.NewHTTPClient(cfg.ServerBaseURL, store.Token)

	return &App{
		config: cfg,
		logger: logger,
		store:  store,
		api:    client,
		auth:   auth.NewService(client, store, logger),
		gate:   gate.NewController(store, signal, logger, cfg.SessionPollInterval),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	state := a.gate.Start(ctx)
	defer a.gate.Stop()

	fmt.Fprintln(a.out, "Welcome to FinMate CLI (type 'help' for commands)")
	a.repl(ctx, state)
}

// resetView drops everything the previous tree accumulated, so a switch
// fully unmounts it.
func (a *App) resetView() {
	a.chatHistory = nil
}
