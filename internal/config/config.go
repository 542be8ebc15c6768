// Package config reads the service settings from the environment.
//
// A .env file in the working directory is loaded first when present.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"go-imagepdf/internal/intake"

	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Port            int
	SessionTTL      time.Duration
	CleanupInterval time.Duration
	MaxImageSize    int64
}

func Load() Config {
	return Config{
		Port:            envInt("PORT", 8080),
		SessionTTL:      envDuration("SESSION_TTL", 5*time.Minute),
		CleanupInterval: envDuration("CLEANUP_INTERVAL", 10*time.Minute),
		MaxImageSize:    int64(envInt("MAX_IMAGE_SIZE", intake.MaxImageSize)),
	}
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}
