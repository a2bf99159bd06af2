package config

import (
	"fmt"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"despesas/internal/core"
)

type Config struct {
	// HTTP Server
	Port           string
	WriteRateLimit int // state-changing requests per client per minute, 0 disables

	// Storage
	DataBackend        string
	SQLiteDBPath       string
	DataDirectory      string
	StorageKey         string
	CategoryStorageKey string
	PersistCategories  bool

	// Ledger
	Payers     []string
	Categories []string

	// Logging
	LogLevel  string
	LogFormat string
}

var slotKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func Load() *Config {
	cfg := &Config{
		Port:           getEnv("PORT", "8081"),
		WriteRateLimit: getEnvInt("WRITE_RATE_LIMIT", 60),

		DataBackend:        getEnv("DATA_BACKEND", "sqlite"),
		SQLiteDBPath:       getEnv("SQLITE_DB_PATH", "./data/despesas.db"),
		DataDirectory:      getEnv("DATA_DIRECTORY", "./data"),
		StorageKey:         getEnv("STORAGE_KEY", "despesas"),
		CategoryStorageKey: getEnv("CATEGORY_STORAGE_KEY", "categorias"),
		PersistCategories:  getEnvBool("PERSIST_CATEGORIES", false),

		Payers:     getEnvList("PAYERS", core.DefaultPayers),
		Categories: getEnvList("CATEGORIES", core.DefaultCategories),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.WriteRateLimit < 0 {
		errors = append(errors, fmt.Sprintf("invalid write rate limit %d: must be zero or positive", c.WriteRateLimit))
	}

	// Validate data backend
	validBackends := []string{"memory", "file", "sqlite"}
	if !slices.Contains(validBackends, c.DataBackend) {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	switch c.DataBackend {
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		}
	case "file":
		if c.DataDirectory == "" {
			errors = append(errors, "data directory cannot be empty when using file backend")
		}
	}

	// Validate storage keys
	if !slotKey.MatchString(c.StorageKey) {
		errors = append(errors, fmt.Sprintf("invalid storage key '%s': use letters, digits, '-' or '_'", c.StorageKey))
	}
	if c.PersistCategories {
		if !slotKey.MatchString(c.CategoryStorageKey) {
			errors = append(errors, fmt.Sprintf("invalid category storage key '%s': use letters, digits, '-' or '_'", c.CategoryStorageKey))
		} else if c.CategoryStorageKey == c.StorageKey {
			errors = append(errors, "category storage key must differ from the expense storage key")
		}
	}

	// Validate payers
	if len(c.Payers) == 0 {
		errors = append(errors, "at least one payer must be configured")
	}
	seen := map[string]bool{}
	for _, p := range c.Payers {
		if seen[p] {
			errors = append(errors, fmt.Sprintf("duplicate payer '%s'", p))
		}
		seen[p] = true
	}

	// Validate logging
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be text or json", c.LogFormat))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvList splits a comma separated value, dropping blank items.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return slices.Clone(defaultValue)
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
