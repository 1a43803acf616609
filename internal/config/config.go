// Package config loads the application configuration: built-in defaults,
// then an optional YAML file, then environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/mwenyemali/smartcoins/internal/database"
	"github.com/mwenyemali/smartcoins/models"
)

// DefaultPath is tried when no config file is given explicitly.
const DefaultPath = "config.yaml"

// Default returns the built-in configuration.
func Default() *models.Config {
	return &models.Config{
		APIURL:         "https://smartcoinsapp.com/api/coins",
		RequestTimeout: 30,
		RequestsPerSec: 5,
		OutputDir:      "output",
		TopN:           10,
		ExportTopN:     50,
		ExcelCoinLimit: 30,
		DBDriver:       database.DriverSQLite,
		OutlierZScore:  3,
		EnableCharts:   true,
		EnableExcel:    true,
		EnableDB:       true,
		LogLevel:       "info",
	}
}

// Load initializes configuration. path may be empty; then config.yaml is
// used when present. Environment variables win over the file.
func Load(path string) (*models.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, relying on actual environment variables")
	}

	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultPath); err == nil {
			path = DefaultPath
		}
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the pipeline cannot run with.
func Validate(cfg *models.Config) error {
	if cfg.APIURL == "" {
		return fmt.Errorf("api_url must not be empty")
	}
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %d", cfg.RequestTimeout)
	}
	if cfg.RequestsPerSec <= 0 {
		return fmt.Errorf("requests_per_sec must be positive, got %d", cfg.RequestsPerSec)
	}
	if cfg.TopN <= 0 {
		return fmt.Errorf("top_n must be positive, got %d", cfg.TopN)
	}
	if cfg.DBDriver != database.DriverSQLite && cfg.DBDriver != database.DriverPostgres {
		return fmt.Errorf("db_driver must be %q or %q, got %q", database.DriverSQLite, database.DriverPostgres, cfg.DBDriver)
	}
	if cfg.DBDriver == database.DriverPostgres && cfg.EnableDB && cfg.DBDSN == "" {
		return fmt.Errorf("db_dsn is required with the postgres driver")
	}
	return nil
}

func applyEnv(cfg *models.Config) {
	setEnvString(&cfg.APIURL, "API_URL")
	setEnvInt(&cfg.RequestTimeout, "REQUEST_TIMEOUT")
	setEnvInt(&cfg.RequestsPerSec, "REQUESTS_PER_SEC")
	setEnvString(&cfg.OutputDir, "OUTPUT_DIR")
	setEnvInt(&cfg.TopN, "TOP_N")
	setEnvInt(&cfg.ExportTopN, "EXPORT_TOP_N")
	setEnvInt(&cfg.ExcelCoinLimit, "EXCEL_COIN_LIMIT")
	setEnvString(&cfg.DBDriver, "DB_DRIVER")
	setEnvString(&cfg.DBDSN, "DB_DSN")
	setEnvFloat(&cfg.OutlierZScore, "OUTLIER_ZSCORE")
	setEnvBool(&cfg.EnableCharts, "ENABLE_CHARTS")
	setEnvBool(&cfg.EnableExcel, "ENABLE_EXCEL")
	setEnvBool(&cfg.EnableDB, "ENABLE_DB")
	setEnvString(&cfg.LogLevel, "LOG_LEVEL")
	setEnvString(&cfg.TelegramBotToken, "TELEGRAM_BOT_TOKEN")
	setEnvInt64(&cfg.TelegramChatID, "TELEGRAM_CHAT_ID")
}

// Helper functions for environment variable handling
func setEnvString(dst *string, key string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}

func setEnvInt(dst *int, key string) {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			*dst = intValue
		}
	}
}

func setEnvInt64(dst *int64, key string) {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			*dst = intValue
		}
	}
}

func setEnvFloat(dst *float64, key string) {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			*dst = floatValue
		}
	}
}

func setEnvBool(dst *bool, key string) {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			*dst = boolValue
		}
	}
}
