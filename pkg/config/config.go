package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// AccountDefinition describes one ledger account the engine may create for an owner.
type AccountDefinition struct {
	Code        string `mapstructure:"code"`
	Name        string `mapstructure:"name"`
	AccountType string `mapstructure:"account_type"`
	Category    string `mapstructure:"category"`
}

// ChartOfAccounts maps posting roles (cash, sales_revenue, cogs, inventory) to
// account definitions, with optional per-owner overrides keyed by owner ID.
type ChartOfAccounts struct {
	Roles     map[string]AccountDefinition            `mapstructure:"roles"`
	Overrides map[string]map[string]AccountDefinition `mapstructure:"overrides"`
}

// PostingConfig tunes the journal poster and refund composer.
type PostingConfig struct {
	MaxAttempts             int
	LockTimeout             time.Duration
	ReverseCOGSOnFullRefund bool
}

// LoanConfig tunes the loan balance ledger.
type LoanConfig struct {
	FirstRepaymentAfterDays int
	DefaultAllocationPolicy string
	InterestShare           string // decimal fraction used by the fixed_ratio policy
}

// Config holds application configuration.
type Config struct {
	DatabaseURL        string
	Port               string
	IsProduction       bool
	StorageDriver      string
	MigrationsPath     string
	DBMaxConns         int32
	JWTSecret          string
	RateLimit          string
	CORSAllowedOrigins []string

	Posting         PostingConfig
	Loans           LoanConfig
	ChartOfAccounts ChartOfAccounts
}

// LoadConfig loads configuration from environment variables and a .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("STORAGE_DRIVER", StoragePostgres)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("POSTING_MAX_ATTEMPTS", 3)
	v.SetDefault("LOCK_TIMEOUT", "5s")
	v.SetDefault("REVERSE_COGS_ON_FULL_REFUND", false)
	v.SetDefault("FIRST_REPAYMENT_AFTER_DAYS", 30)
	v.SetDefault("DEFAULT_ALLOCATION_POLICY", "fixed_ratio")
	v.SetDefault("FIXED_RATIO_INTEREST_SHARE", "0.3")
	v.SetDefault("CHART_OF_ACCOUNTS_FILE", "")
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:    v.GetString("PGSQL_URL"),
		Port:           v.GetString("PORT"),
		IsProduction:   v.GetBool("IS_PRODUCTION"),
		StorageDriver:  strings.ToLower(v.GetString("STORAGE_DRIVER")),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
		DBMaxConns:     v.GetInt32("DB_MAX_CONNS"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		RateLimit:      v.GetString("RATE_LIMIT"),
		Posting: PostingConfig{
			MaxAttempts:             v.GetInt("POSTING_MAX_ATTEMPTS"),
			ReverseCOGSOnFullRefund: v.GetBool("REVERSE_COGS_ON_FULL_REFUND"),
		},
		Loans: LoanConfig{
			FirstRepaymentAfterDays: v.GetInt("FIRST_REPAYMENT_AFTER_DAYS"),
			DefaultAllocationPolicy: v.GetString("DEFAULT_ALLOCATION_POLICY"),
			InterestShare:           v.GetString("FIXED_RATIO_INTEREST_SHARE"),
		},
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	lockTimeoutStr := v.GetString("LOCK_TIMEOUT")
	lockTimeout, err := time.ParseDuration(lockTimeoutStr)
	if err != nil {
		lockTimeout = 5 * time.Second
		log.Printf("Warning: Invalid value for LOCK_TIMEOUT ('%s'). Defaulting to %s.\n", lockTimeoutStr, lockTimeout)
	}
	cfg.Posting.LockTimeout = lockTimeout

	if cfg.Posting.MaxAttempts < 1 {
		log.Printf("Warning: POSTING_MAX_ATTEMPTS must be at least 1 (got %d). Defaulting to 3.\n", cfg.Posting.MaxAttempts)
		cfg.Posting.MaxAttempts = 3
	}

	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case StorageMemory:
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER '%s'", cfg.StorageDriver)
	}

	if v.GetString("JWT_SECRET") == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	if path := v.GetString("CHART_OF_ACCOUNTS_FILE"); path != "" {
		coa, err := LoadChartOfAccounts(path)
		if err != nil {
			return nil, err
		}
		cfg.ChartOfAccounts = coa
	}

	return cfg, nil
}

// LoadChartOfAccounts reads the chart_of_accounts section of a YAML, JSON or TOML file.
// Owner ID keys are matched case-insensitively because viper folds keys to lower case.
func LoadChartOfAccounts(path string) (ChartOfAccounts, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return ChartOfAccounts{}, fmt.Errorf("failed to read chart of accounts file %s: %w", path, err)
	}

	var coa ChartOfAccounts
	if err := v.UnmarshalKey("chart_of_accounts", &coa); err != nil {
		return ChartOfAccounts{}, fmt.Errorf("failed to decode chart of accounts: %w", err)
	}
	return coa, nil
}
