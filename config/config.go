package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// SyncScope controls which purchased list items are folded back into
// inventory. "all" syncs every purchase; "restock" only syncs items that
// originated from an inventory shortfall.
const (
	SyncScopeAll     = "all"
	SyncScopeRestock = "restock"
)

type Config struct {
	DatabaseURL        string
	JWTSecret          string
	ServerPort         string
	Environment        string
	ClientURL          string
	ServerURL          string
	GoogleClientID     string
	GoogleClientSecret string
	SpoonacularAPIKey  string
	PurchaseSyncScope  string
}

// Load reads configuration from the environment. A .env file is honored
// when present.
func Load() (*Config, error) {
	// .env file is optional, continue without it
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		JWTSecret:          getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		ServerPort:         getEnv("PORT", "3001"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
		ServerURL:          getEnv("SERVER_URL", "http://localhost:3001"),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		SpoonacularAPIKey:  getEnv("SPOONACULAR_API_KEY", ""),
		PurchaseSyncScope:  getEnv("PURCHASE_SYNC_SCOPE", SyncScopeAll),
	}

	switch cfg.PurchaseSyncScope {
	case SyncScopeAll, SyncScopeRestock:
	default:
		return nil, fmt.Errorf("invalid PURCHASE_SYNC_SCOPE %q (want %q or %q)",
			cfg.PurchaseSyncScope, SyncScopeAll, SyncScopeRestock)
	}

	if cfg.Environment == "production" && strings.TrimSpace(cfg.JWTSecret) == "dev-secret-change-in-production" {
		return nil, fmt.Errorf("JWT_SECRET must be set in production")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
