package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from
// environment variables or a .env file.
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Market   MarketConfig   // upstream time-series API settings
	Cache    CacheConfig    // summary snapshot cache toggle
	Postgres PostgresConfig // PostgreSQL connection settings (snapshot store)
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string
}

// MarketConfig configures the upstream time-series API client.
//
// APIKey is a credential: it is read from the environment (or .env) and
// carried here explicitly — never hard-coded, never ambient state.
type MarketConfig struct {
	BaseURL          string        // e.g. "https://data.nasdaq.com/api/v3"
	Database         string        // database code, e.g. "FSE"
	APIKey           string        // credential, required
	Timeout          time.Duration // per-request HTTP timeout
	RetryMaxAttempts int           // bounded retry on transient upstream failure
}

// CacheConfig toggles the Postgres-backed summary snapshot store used
// by API mode. Disabled by default: the service then holds nothing
// beyond the in-flight request.
type CacheConfig struct {
	Enabled bool
}

// PostgresConfig defines connection details for the snapshot store.
// Only validated when the cache is enabled.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string // computed DSN
}

// AppConfig is the globally accessible configuration instance,
// populated once via LoadConfig().
var AppConfig Config

// LoadConfig initializes the global AppConfig.
//
// Precedence (lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// validateConfig() terminates the process when required values
// (notably MARKET_API_KEY) are missing.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("MARKET_BASE_URL", "https://data.nasdaq.com/api/v3")
	viper.SetDefault("MARKET_DATABASE", "FSE")
	viper.SetDefault("MARKET_TIMEOUT_SECONDS", 10)
	viper.SetDefault("MARKET_RETRY_MAX_ATTEMPTS", 3)

	viper.SetDefault("CACHE_ENABLED", false)

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "stockpulse")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Market: MarketConfig{
			BaseURL:          viper.GetString("MARKET_BASE_URL"),
			Database:         viper.GetString("MARKET_DATABASE"),
			APIKey:           viper.GetString("MARKET_API_KEY"),
			Timeout:          time.Duration(viper.GetInt("MARKET_TIMEOUT_SECONDS")) * time.Second,
			RetryMaxAttempts: viper.GetInt("MARKET_RETRY_MAX_ATTEMPTS"),
		},
		Cache: CacheConfig{
			Enabled: viper.GetBool("CACHE_ENABLED"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
	}

	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	validateConfig()
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing. Postgres settings are only
// required when the snapshot cache is enabled.
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Market.BaseURL == "" {
		missing = append(missing, "MARKET_BASE_URL")
	}
	if AppConfig.Market.Database == "" {
		missing = append(missing, "MARKET_DATABASE")
	}
	if AppConfig.Market.APIKey == "" {
		missing = append(missing, "MARKET_API_KEY")
	}

	if AppConfig.Cache.Enabled {
		if AppConfig.Postgres.Host == "" {
			missing = append(missing, "POSTGRES_HOST")
		}
		if AppConfig.Postgres.Port == 0 {
			missing = append(missing, "POSTGRES_PORT")
		}
		if AppConfig.Postgres.User == "" {
			missing = append(missing, "POSTGRES_USER")
		}
		if AppConfig.Postgres.Password == "" {
			missing = append(missing, "POSTGRES_PASSWORD")
		}
		if AppConfig.Postgres.DBName == "" {
			missing = append(missing, "POSTGRES_DB")
		}
	}

	if len(missing) > 0 {
		log.Fatalf("missing required environment variables: %v\n", missing)
	}
}
