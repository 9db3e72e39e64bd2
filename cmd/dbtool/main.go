package main

import (
	"context"
	"log"
	"weather-dashboard/internal/app"
	"weather-dashboard/internal/config"
)

// dbtool creates the state and search cache tables for the configured SQL backend.
func main() {
	cfg := config.Load()
	ctx := context.Background()

	log.Printf("Initializing database schema backend=%s...", cfg.StateBackend)

	switch cfg.StateBackend {
	case config.BackendSQLite:
		conn, err := app.OpenSQLite(ctx, cfg.DBPath)
		if err != nil {
			log.Fatalf("schema initialization failed: %v", err)
		}
		defer conn.Close()
	case config.BackendPostgres:
		conn, err := app.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("schema initialization failed: %v", err)
		}
		defer conn.Close()
	default:
		log.Fatalf("STATE_BACKEND=%s has no schema to initialize", cfg.StateBackend)
	}

	log.Println("Schema ready.")
}
