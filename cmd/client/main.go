package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/finmate-app/finmate/internal/client/cli"
	"github.com/finmate-app/finmate/internal/client/config"
	"github.com/finmate-app/finmate/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewTextLogger(os.Stderr, slog.LevelInfo)

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}
