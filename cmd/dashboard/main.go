package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"weather-dashboard/internal/app"
	"weather-dashboard/internal/config"
	"weather-dashboard/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
)

// The terminal dashboard. Logs go to LOG_FILE so they don't tear the screen.
func main() {
	cfg := config.Load()

	f, err := tea.LogToFile(cfg.LogFile, "dashboard")
	if err != nil {
		fmt.Fprintf(os.Stderr, "open log file %s: %v\n", cfg.LogFile, err)
		os.Exit(1)
	}
	defer f.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Fatal(err)
	}
	defer a.Close()

	a.Dashboard.Init(ctx)

	err = tui.Run(ctx, tui.Deps{
		Dashboard: a.Dashboard,
		Board:     a.Board,
		Fields:    a.Fields,
		Catalog:   a.Catalog,
	})
	if err != nil {
		log.Printf("dashboard exited err=%v", err)
		fmt.Fprintln(os.Stderr, err)
	}
}
