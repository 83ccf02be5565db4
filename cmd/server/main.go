package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/finmate-app/finmate/internal/server"
	"github.com/finmate-app/finmate/internal/server/config"
)

func main() {

	// a missing .env is fine, env vars may come from the environment itself
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
