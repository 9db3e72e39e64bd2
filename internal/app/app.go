// Package app assembles the dashboard from configuration. Both binaries use
// it and differ only in the front end they put on top.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"weather-dashboard/internal/adapters/cache"
	"weather-dashboard/internal/adapters/geolocation"
	"weather-dashboard/internal/adapters/openmeteo"
	"weather-dashboard/internal/adapters/repositories"
	"weather-dashboard/internal/board"
	"weather-dashboard/internal/config"
	"weather-dashboard/internal/domain"
	"weather-dashboard/internal/i18n"
	"weather-dashboard/internal/platform/db"
	"weather-dashboard/internal/ports"
	"weather-dashboard/internal/services"

	"github.com/redis/go-redis/v9"
)

// Setting GEOLOCATION_URL to this value disables server-side geolocation.
const GeolocationOff = "off"

const redisKeyPrefix = "weather-dashboard:"

type App struct {
	Config    config.Config
	Catalog   *i18n.Catalog
	Board     *board.Board
	Dashboard *services.Dashboard
	Fields    map[string]*services.Autocomplete
	Searcher  ports.CitySearcher

	closers []func() error
}

// New opens the configured state backend and wires every component.
// The dashboard is not initialized yet; call Dashboard.Init.
func New(ctx context.Context, cfg config.Config) (_ *App, err error) {
	a := &App{
		Config:  cfg,
		Catalog: i18n.For(cfg.Locale),
		Board:   board.New(),
	}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	slot, searchStore, err := a.openState(ctx)
	if err != nil {
		return nil, fmt.Errorf("new app: %w", err)
	}

	client, err := openmeteo.NewClient(openmeteo.Options{
		ForecastURL:  cfg.ForecastBaseURL,
		GeocodingURL: cfg.GeocodingBaseURL,
		Language:     cfg.GeocodingLanguage,
		Timeout:      cfg.HTTPTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("new app: %w", err)
	}

	var searcher ports.CitySearcher = client
	cached := cfg.SearchCache && searchStore != nil
	if cached {
		cs, err := cache.NewCachedSearcher(client, searchStore, cfg.SearchCacheTTL)
		if err != nil {
			return nil, fmt.Errorf("new app: %w", err)
		}
		searcher = cs
	}
	a.Searcher = searcher

	dash, err := services.NewDashboard(services.DashboardDeps{
		Store:                services.NewStateStore(slot),
		Renderer:             services.NewForecastRenderer(client, a.Catalog),
		Locator:              a.locator(),
		View:                 a.Board,
		Catalog:              a.Catalog,
		MaxConcurrentFetches: cfg.MaxConcurrentFetches,
	})
	if err != nil {
		return nil, fmt.Errorf("new app: %w", err)
	}
	a.Dashboard = dash
	a.closers = append(a.closers, func() error { dash.Close(); return nil })

	a.Fields = make(map[string]*services.Autocomplete, 2)
	for _, name := range []string{services.FieldCity, services.FieldModalCity} {
		a.Fields[name] = services.NewAutocomplete(name, searcher, a.Board.Field(name), services.WithSearchLimit(cfg.SearchLimit))
	}

	log.Printf("app ready state_backend=%s search_cache=%t locale=%s", cfg.StateBackend, cached, a.Catalog.Tag)
	return a, nil
}

// Close releases the state backend. Safe to call more than once.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) openState(ctx context.Context) (ports.StateSlot, cache.SearchCache, error) {
	cfg := a.Config

	switch cfg.StateBackend {
	case config.BackendSQLite:
		conn, err := OpenSQLite(ctx, cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, conn.Close)
		return repositories.NewSqliteStateSlot(conn), cache.NewSqliteSearchCache(conn), nil

	case config.BackendPostgres:
		conn, err := OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, conn.Close)
		return repositories.NewSQLStateSlot(conn), cache.NewSQLSearchCache(conn), nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		a.closers = append(a.closers, client.Close)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("open state: ping redis %s: %w", cfg.RedisAddr, err)
		}
		return repositories.NewRedisStateSlot(client, redisKeyPrefix), nil, nil

	case config.BackendMemory:
		return repositories.NewMemoryStateSlot(), nil, nil

	default:
		return nil, nil, fmt.Errorf("open state: unknown STATE_BACKEND %q", cfg.StateBackend)
	}
}

func (a *App) locator() ports.Locator {
	cfg := a.Config

	switch {
	case cfg.GeoLat != nil && cfg.GeoLon != nil:
		return geolocation.StaticLocator{Position: domain.Coordinates{Lat: *cfg.GeoLat, Lon: *cfg.GeoLon}}
	case strings.EqualFold(cfg.GeolocationURL, GeolocationOff):
		return nil
	default:
		return geolocation.NewIPLocator(cfg.GeolocationURL, &http.Client{Timeout: services.LocateTimeout})
	}
}

// OpenSQLite opens the database file, creating its directory and schema.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("open sqlite: create %s: %w", dir, err)
		}
	}

	conn, err := db.OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	if err := repositories.InitSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// OpenPostgres connects through pgx and creates the schema.
func OpenPostgres(ctx context.Context, databaseURL string) (*sql.DB, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, errors.New("open postgres: DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		return nil, err
	}
	if err := repositories.InitPostgresSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}
