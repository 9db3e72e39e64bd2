package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// Config holds every setting the binaries read from the environment.
type Config struct {
	Port string

	StateBackend  string
	DBPath        string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	ForecastBaseURL   string
	GeocodingBaseURL  string
	GeocodingLanguage string
	SearchLimit       int
	SearchCache       bool
	SearchCacheTTL    time.Duration
	HTTPTimeout       time.Duration

	// Fixed position used instead of a device query when both are set.
	GeoLat, GeoLon *float64
	GeolocationURL string

	Locale               string
	MaxConcurrentFetches int
	LogFile              string
}

// Load reads an optional .env file and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	c := Config{
		Port: Get("PORT", "8080"),

		StateBackend:  strings.ToLower(Get("STATE_BACKEND", BackendSQLite)),
		DBPath:        Get("DB_PATH", "data/dashboard.db"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     Get("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       GetInt("REDIS_DB", 0),

		ForecastBaseURL:   Get("FORECAST_BASE_URL", "https://api.open-meteo.com/v1/forecast"),
		GeocodingBaseURL:  Get("GEOCODING_BASE_URL", "https://geocoding-api.open-meteo.com/v1/search"),
		GeocodingLanguage: Get("GEOCODING_LANGUAGE", "ru"),
		SearchLimit:       GetInt("SEARCH_LIMIT", 7),
		SearchCache:       GetBool("SEARCH_CACHE", true),
		SearchCacheTTL:    GetDuration("SEARCH_CACHE_TTL", 24*time.Hour),
		HTTPTimeout:       GetDuration("HTTP_TIMEOUT", 10*time.Second),

		GeolocationURL: os.Getenv("GEOLOCATION_URL"),

		Locale:               Get("LOCALE", "ru"),
		MaxConcurrentFetches: GetInt("MAX_CONCURRENT_FETCHES", 8),
		LogFile:              Get("LOG_FILE", "dashboard.log"),
	}

	lat, latOK := GetFloat("GEO_LAT")
	lon, lonOK := GetFloat("GEO_LON")
	if latOK && lonOK {
		c.GeoLat, c.GeoLon = &lat, &lon
	} else if latOK != lonOK {
		log.Println("GEO_LAT and GEO_LON must be set together; ignoring fixed position")
	}

	if c.SearchLimit < 1 {
		c.SearchLimit = 7
	}
	if c.MaxConcurrentFetches < 1 {
		c.MaxConcurrentFetches = 1
	}

	return c
}

func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: invalid integer key=%s value=%q, using %d", key, v, fallback)
		return fallback
	}
	return i
}

func GetBool(key string, fallback bool) bool {
	switch strings.ToLower(Get(key, "")) {
	case "":
		return fallback
	case "1", "true", "on", "yes":
		return true
	case "0", "false", "off", "no":
		return false
	default:
		log.Printf("config: invalid boolean key=%s, using %v", key, fallback)
		return fallback
	}
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		log.Printf("config: invalid duration key=%s value=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func GetFloat(key string) (float64, bool) {
	v := Get(key, "")
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("config: invalid number key=%s value=%q", key, v)
		return 0, false
	}
	return f, true
}
