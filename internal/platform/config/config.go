package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds application configuration, read from the environment.
type Config struct {
	Port string

	// SnapshotPath is where the roster snapshot file lives.
	SnapshotPath string

	// StorageBackend selects the backup/content storage: "memory" or "postgres".
	StorageBackend string
	DatabaseURL    string

	// AdminPassword gates the records area; AuthSecret signs session tokens.
	// AuthSecret falls back to AdminPassword when unset, matching how the
	// deployment has historically been configured.
	AdminPassword string
	AuthSecret    string
	TokenTTL      time.Duration

	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables with local-dev defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:           getenv("PORT", "8080"),
		SnapshotPath:   getenv("SNAPSHOT_PATH", "./data/members.json"),
		StorageBackend: getenv("STORAGE_BACKEND", "memory"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		AuthSecret:     os.Getenv("AUTH_SECRET"),
		TokenTTL:       7 * 24 * time.Hour,
		LogLevel:       getenv("LOG_LEVEL", "info"),
		LogFormat:      getenv("LOG_FORMAT", "console"),
	}

	if cfg.AuthSecret == "" {
		cfg.AuthSecret = cfg.AdminPassword
	}
	if cfg.AuthSecret == "" {
		return Config{}, fmt.Errorf("missing required env vars: set AUTH_SECRET or ADMIN_PASSWORD")
	}
	if cfg.StorageBackend == "postgres" && cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("STORAGE_BACKEND=postgres requires DATABASE_URL")
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("TOKEN_TTL must be a duration (e.g. 168h): %w", err)
		}
		cfg.TokenTTL = d
	}

	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
