// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/atlas/quota-engine/generic"
)

// Config holds application configuration
type Config struct {
	Port            int
	DatabasePath    string
	LogLevel        string
	LogPretty       bool
	CORSOrigins     []string
	DefaultHolidays []string // YYYY-MM-DD, seeded into the store at startup
	TeamsFile       string   // Optional JSON file overriding the default teams
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnvAsInt("PORT", 8080),
		DatabasePath:    getEnv("DB_PATH", "quota.db"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogPretty:       getEnvAsBool("LOG_PRETTY", true),
		CORSOrigins:     getEnvAsSlice("CORS_ORIGINS", []string{"http://localhost:5173", "http://localhost:8080"}),
		DefaultHolidays: getEnvAsSlice("DEFAULT_HOLIDAYS", []string{"2025-11-20"}),
		TeamsFile:       getEnv("TEAMS_FILE", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present and well formed
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("DB_PATH is required")
	}
	if _, err := generic.ParseHolidaySet(c.DefaultHolidays); err != nil {
		return fmt.Errorf("DEFAULT_HOLIDAYS: %w", err)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
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

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// getEnvAsSlice splits a comma-separated value, dropping blanks.
// An explicitly empty list ("," or " ") yields no entries.
func getEnvAsSlice(key string, defaultValue []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
