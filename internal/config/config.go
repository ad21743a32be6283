// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Defaults
const (
	DefaultDataDir          = "./data"
	DefaultPort             = 8001
	DefaultMaxTableCells    = int64(200_000_000)
	DefaultSweepWorkers     = 4
	DefaultSnapshotSchedule = "@every 1h"
)

// Config holds application configuration
type Config struct {
	DataDir  string // Directory holding the SQLite database (always absolute)
	LogLevel string
	Port     int
	DevMode  bool

	// MaxTableCells caps assets x (capital+1) for one knapsack solve.
	MaxTableCells int64
	// SweepWorkers is the number of frontier ladder steps computed at once.
	SweepWorkers int

	// SnapshotSchedule is the cron spec of the frontier snapshot job. Empty disables it.
	SnapshotSchedule string
	// SnapshotCapital is the budget the snapshot job sweeps with. 0 skips the job.
	SnapshotCapital int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	absDataDir, err := filepath.Abs(getEnv("OPTIMIZER_DATA_DIR", DefaultDataDir))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}

	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:          absDataDir,
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		Port:             getEnvAsInt("GO_PORT", DefaultPort),
		DevMode:          getEnvAsBool("DEV_MODE", false),
		MaxTableCells:    getEnvAsInt64("OPTIMIZER_MAX_TABLE_CELLS", DefaultMaxTableCells),
		SweepWorkers:     getEnvAsInt("OPTIMIZER_SWEEP_WORKERS", DefaultSweepWorkers),
		SnapshotSchedule: os.Getenv("OPTIMIZER_SNAPSHOT_SCHEDULE"),
		SnapshotCapital:  getEnvAsInt("OPTIMIZER_SNAPSHOT_CAPITAL", 0),
	}
	if _, set := os.LookupEnv("OPTIMIZER_SNAPSHOT_SCHEDULE"); !set {
		cfg.SnapshotSchedule = DefaultSnapshotSchedule
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is usable
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.MaxTableCells <= 0 {
		return fmt.Errorf("OPTIMIZER_MAX_TABLE_CELLS must be positive, got %d", c.MaxTableCells)
	}
	if c.SweepWorkers <= 0 {
		return fmt.Errorf("OPTIMIZER_SWEEP_WORKERS must be positive, got %d", c.SweepWorkers)
	}
	if c.SnapshotCapital < 0 {
		return fmt.Errorf("OPTIMIZER_SNAPSHOT_CAPITAL must not be negative, got %d", c.SnapshotCapital)
	}
	return nil
}

// DatabasePath returns the path of the optimizer database inside DataDir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "optimizer.db")
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
