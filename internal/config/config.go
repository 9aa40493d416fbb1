package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Enka    EnkaConfig
	Logging LoggingConfig
}

type EnkaConfig struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

type LoggingConfig struct {
	Level string
	File  string
}

// Load reads configuration from the environment, after loading a .env file
// if one is present. Empty Enka fields mean "use the library defaults".
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Enka: EnkaConfig{
			BaseURL:   getEnv("ENKA_BASE_URL", ""),
			Timeout:   time.Duration(getEnvInt("ENKA_TIMEOUT_MS", 0)) * time.Millisecond,
			UserAgent: getEnv("ENKA_USER_AGENT", ""),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
