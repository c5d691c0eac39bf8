package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"

	"github.com/madoxlx/EGTV3-sub011/internal/platform/cache"
	"github.com/madoxlx/EGTV3-sub011/internal/platform/database"
)

type Config struct {
	Database        database.Config
	Redis           cache.Config
	HTTPAddr        string
	SchemaPath      string
	QuoteTTL        time.Duration
	CacheTTL        time.Duration
	CleanupInterval time.Duration
}

// Load reads settings from the environment. Values from envFiles (".env" when
// none are given) fill in variables the OS environment does not set.
func Load(envFiles ...string) *Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	if err := godotenv.Load(envFiles...); err != nil {
		log.Println("No .env file found, using OS environment variables.")
	}

	return &Config{
		Database: database.Config{
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", ""),
			DBName:     getEnv("DB_NAME", "travel_booking"),
			MaxRetries: cast.ToInt(getEnv("DB_MAX_RETRIES", "10")),
		},
		Redis: cache.Config{
			Host: getEnv("REDIS_HOST", "localhost"),
			Port: getEnv("REDIS_PORT", "6379"),
			DB:   cast.ToInt(getEnv("REDIS_DB", "0")),
		},
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		SchemaPath:      getEnv("SCHEMA_PATH", "db/schema.sql"),
		QuoteTTL:        minutes("QUOTE_TTL_MINUTES", 30),
		CacheTTL:        minutes("CACHE_TTL_MINUTES", 10),
		CleanupInterval: time.Duration(positive("CLEANUP_INTERVAL_SECONDS", 60)) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}

	return fallback
}

func minutes(key string, fallback int) time.Duration {
	return time.Duration(positive(key, fallback)) * time.Minute
}

// positive falls back when the variable is unset, unparsable or not above zero.
func positive(key string, fallback int) int {
	n, err := cast.ToIntE(getEnv(key, ""))
	if err != nil || n <= 0 {
		return fallback
	}

	return n
}
