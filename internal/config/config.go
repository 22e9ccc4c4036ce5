package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"dsc-metrics/internal/store"
	"dsc-metrics/internal/survey"
	"dsc-metrics/internal/zammad"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Zammad   zammad.Config
	Postgres store.Config
	Survey   survey.Config
	DataPath string
	LogDir   string
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority for cron installs)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve Data Paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := filepath.Join(dataPath, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}

	delaySecs, _ := strconv.Atoi(getEnv("ZAMMAD_REQUEST_DELAY_SECONDS", "1"))
	maxConns, _ := strconv.Atoi(getEnv("POSTGRES_MAX_CONNS", "4"))

	cfg := &AppConfig{
		Zammad: zammad.Config{
			BaseURL:      getEnv("ZAMMAD_HOST", ""),
			Email:        getEnv("ZAMMAD_EMAIL", ""),
			Password:     getEnv("ZAMMAD_PASSWORD", ""),
			Token:        getEnv("ZAMMAD_TOKEN", ""),
			RequestDelay: time.Duration(delaySecs) * time.Second,
		},
		Postgres: store.Config{
			DSN:      getEnv("POSTGRES_DSN", ""),
			MaxConns: int32(maxConns),
		},
		Survey: survey.Config{
			SheetID:   getEnv("GOOGLE_SHEET_ID", ""),
			SheetName: getEnv("GOOGLE_SHEET_NAME", ""),
		},
		DataPath: dataPath,
		LogDir:   logDir,
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
