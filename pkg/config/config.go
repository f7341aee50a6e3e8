package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	DefaultCurrency        string
	DefaultDailyDebitLimit decimal.Decimal
	AccountNumberDigits    int

	// RateLimit uses the limiter formatted syntax, e.g. "100-M" for 100
	// requests per minute per client.
	RateLimit string

	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("DEFAULT_CURRENCY", "USD")
	viper.SetDefault("DEFAULT_DAILY_DEBIT_LIMIT", "4000000.00")
	viper.SetDefault("ACCOUNT_NUMBER_DIGITS", 12)
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"*"})

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.DefaultCurrency = viper.GetString("DEFAULT_CURRENCY")
	if len(cfg.DefaultCurrency) != 3 {
		log.Printf("Warning: Invalid DEFAULT_CURRENCY (%q). Defaulting to USD.\n", cfg.DefaultCurrency)
		cfg.DefaultCurrency = "USD"
	}

	limitStr := viper.GetString("DEFAULT_DAILY_DEBIT_LIMIT")
	limit, err := decimal.NewFromString(limitStr)
	if err != nil {
		limit = decimal.RequireFromString("4000000.00")
		log.Printf("Warning: Invalid DEFAULT_DAILY_DEBIT_LIMIT (%q). Defaulting to %s.\n", limitStr, limit.String())
	}
	cfg.DefaultDailyDebitLimit = limit

	cfg.AccountNumberDigits = viper.GetInt("ACCOUNT_NUMBER_DIGITS")
	if cfg.AccountNumberDigits < 6 || cfg.AccountNumberDigits > 20 {
		log.Printf("Warning: ACCOUNT_NUMBER_DIGITS out of range (%d). Defaulting to 12.\n", cfg.AccountNumberDigits)
		cfg.AccountNumberDigits = 12
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = viper.GetStringSlice("CORS_ALLOWED_ORIGINS")

	return cfg, nil
}
