package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const defaultCacheSize = 1024

type Config struct {
	Log       LogConfig
	CacheSize int
	// Warnings lists ambient values that were invalid and replaced by defaults.
	Warnings []string
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads an optional .env from the working directory and then the
// process environment. Unset or invalid variables fall back to defaults; a
// bad value never fails the load.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Log: LogConfig{
			Level:  firstNonEmpty(strings.TrimSpace(os.Getenv("TOTALLINES_LOG_LEVEL")), "warn"),
			Format: firstNonEmpty(strings.TrimSpace(os.Getenv("TOTALLINES_LOG_FORMAT")), "text"),
		},
	}
	cfg.CacheSize = cfg.resolveCacheSize()
	return cfg, nil
}

func (c *Config) resolveCacheSize() int {
	raw := strings.TrimSpace(os.Getenv("TOTALLINES_CACHE_SIZE"))
	if raw == "" {
		return defaultCacheSize
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		c.Warnings = append(c.Warnings, fmt.Sprintf("TOTALLINES_CACHE_SIZE=%q is not a non-negative integer, using %d", raw, defaultCacheSize))
		return defaultCacheSize
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
