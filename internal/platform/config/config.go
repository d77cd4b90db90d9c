package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// SettlementPolicy controls how settlement validation failures are handled.
type SettlementPolicy string

const (
	// SettlementStrict rejects transfers that exceed the debtor's
	// outstanding debt.
	SettlementStrict SettlementPolicy = "strict"
	// SettlementAdvisory records such transfers anyway and logs a warning.
	SettlementAdvisory SettlementPolicy = "advisory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	StoreBackend string // "postgres" or "sqlite"
	SQLitePath   string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	GeminiAPIKey string
	GeminiModel  string

	SettlementPolicy SettlementPolicy

	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("STORE_BACKEND", "postgres")
	viper.SetDefault("SQLITE_PATH", "spendly.db")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "24h")
	viper.SetDefault("JWT_ISSUER", "spendly-backend")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("SETTLEMENT_POLICY", string(SettlementStrict))
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	cfg.StoreBackend = viper.GetString("STORE_BACKEND")
	cfg.SQLitePath = viper.GetString("SQLITE_PATH")
	if cfg.StoreBackend == "postgres" && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 24 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.GeminiAPIKey = viper.GetString("GEMINI_API_KEY")
	cfg.GeminiModel = viper.GetString("GEMINI_MODEL")
	if cfg.GeminiAPIKey == "" {
		log.Println("Warning: GEMINI_API_KEY not set. Natural language expense capture will be disabled.")
	}

	policy := SettlementPolicy(viper.GetString("SETTLEMENT_POLICY"))
	if policy != SettlementStrict && policy != SettlementAdvisory {
		log.Printf("Warning: Invalid SETTLEMENT_POLICY ('%s'). Defaulting to %s.\n", policy, SettlementStrict)
		policy = SettlementStrict
	}
	cfg.SettlementPolicy = policy

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
