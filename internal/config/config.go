package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	App struct {
		Env         string
		Port        string
		Debug       bool
		FrontendURL string
	}
	Dataset struct {
		NEOPath        string
		ApproachPath   string
		ApproachSource string // "file" or "api"
	}
	CAD struct {
		URL     string
		DateMin string
		DateMax string
		DistMax string
		Timeout time.Duration
	}
	DB struct {
		Enabled  bool
		Driver   string
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
		Path     string
	}
	Redis struct {
		Enabled  bool
		Host     string
		Port     string
		Password string
		DB       int
		QueryTTL time.Duration
	}
	Workers struct {
		DatasetEnabled  bool
		DatasetInterval time.Duration
	}
	RateLimit struct {
		RequestsPerSecond int
		Burst             int
		PerIP             bool
	}
	Query struct {
		DefaultLimit int
		MaxLimit     int
	}
	Export struct {
		OutputDir string
		MaxRows   int
	}
}

func Load() *Config {
	cfg := &Config{}

	// App
	cfg.App.Env = getEnv("APP_ENV", "development")
	cfg.App.Port = getEnv("PORT", "8080")
	cfg.App.Debug = getEnvAsBool("DEBUG", false)
	cfg.App.FrontendURL = getEnv("FRONTEND_URL", "http://localhost:3000")

	// Dataset
	cfg.Dataset.NEOPath = getEnv("NEO_CSV_PATH", "./data/neos.csv")
	cfg.Dataset.ApproachPath = getEnv("CAD_JSON_PATH", "./data/cad.json")
	cfg.Dataset.ApproachSource = getEnv("APPROACH_SOURCE", "file")

	// JPL close-approach API
	cfg.CAD.URL = getEnv("CAD_API_URL", "https://ssd-api.jpl.nasa.gov/cad.api")
	cfg.CAD.DateMin = getEnv("CAD_DATE_MIN", "1900-01-01")
	cfg.CAD.DateMax = getEnv("CAD_DATE_MAX", "2200-01-01")
	cfg.CAD.DistMax = getEnv("CAD_DIST_MAX", "0.2")
	cfg.CAD.Timeout = getEnvAsDuration("CAD_TIMEOUT", 60*time.Second)

	// DB
	cfg.DB.Enabled = getEnvAsBool("DB_ENABLED", false)
	cfg.DB.Driver = getEnv("DB_DRIVER", "postgres")
	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", "5432")
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.DB.DBName = getEnv("DB_NAME", "neolink")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.DB.Path = getEnv("DB_PATH", "./data/neolink.db")

	// Redis
	cfg.Redis.Enabled = getEnvAsBool("REDIS_ENABLED", false)
	cfg.Redis.Host = getEnv("REDIS_HOST", "localhost")
	cfg.Redis.Port = getEnv("REDIS_PORT", "6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", 0)
	cfg.Redis.QueryTTL = getEnvAsDuration("REDIS_QUERY_TTL", 5*time.Minute)

	// Workers
	cfg.Workers.DatasetEnabled = getEnvAsBool("DATASET_RELOAD_ENABLED", false)
	cfg.Workers.DatasetInterval = getEnvAsDuration("WORKER_DATASET_INTERVAL", 24*time.Hour)

	// Rate Limit
	cfg.RateLimit.RequestsPerSecond = getEnvAsInt("RATE_LIMIT_RPS", 10)
	cfg.RateLimit.Burst = getEnvAsInt("RATE_LIMIT_BURST", 20)
	cfg.RateLimit.PerIP = getEnvAsBool("RATE_LIMIT_PER_IP", false)

	// Query
	cfg.Query.DefaultLimit = getEnvAsInt("QUERY_DEFAULT_LIMIT", 100)
	cfg.Query.MaxLimit = getEnvAsInt("QUERY_MAX_LIMIT", 1000)

	// Export
	cfg.Export.OutputDir = getEnv("EXPORT_OUTPUT_DIR", "./data/exports")
	cfg.Export.MaxRows = getEnvAsInt("EXPORT_MAX_ROWS", 100000)

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if dur, err := time.ParseDuration(value); err == nil {
			return dur
		}
	}
	return defaultValue
}
