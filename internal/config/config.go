package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            int
	Environment     string
	DatabasePath    string
	ImageDirectory  string
	StaticDirectory string
	MaxUploadSize   int64 // Maximum accepted size of a single image part in bytes
	QueryLimit      int   // Hard cap on rows returned by the read endpoint
}

// Load reads configuration from the environment, with an optional .env file
// for local development.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:            getEnvAsInt("PORT", 8080),
		Environment:     getEnv("ENVIRONMENT", "development"),
		DatabasePath:    getEnv("DATABASE_PATH", filepath.Join(".", "data", "events.db")),
		ImageDirectory:  getEnv("IMAGE_DIR", filepath.Join(".", "images")),
		StaticDirectory: getEnv("STATIC_DIR", filepath.Join(".", "static")),
		MaxUploadSize:   getEnvAsInt64("MAX_UPLOAD_SIZE", 10<<20),
		QueryLimit:      getEnvAsInt("QUERY_LIMIT", 100),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
