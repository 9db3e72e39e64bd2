package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"weather-dashboard/internal/api"
	"weather-dashboard/internal/app"
	"weather-dashboard/internal/config"
)

// main is the application composition root.
// It wires the configured state backend and Open-Meteo client behind ports and
// serves the dashboard over HTTP.
func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	a.Dashboard.Init(ctx)

	router := api.NewRouter(api.RouterDeps{
		Dashboard:    a.Dashboard,
		Board:        a.Board,
		Fields:       a.Fields,
		Searcher:     a.Searcher,
		SearchLimit:  cfg.SearchLimit,
		StateBackend: cfg.StateBackend,
	})

	// No WriteTimeout: /api/events holds its response open.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		log.Printf("Server listening addr=:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown: signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown failed: %v", err)
	}
}
