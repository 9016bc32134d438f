package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	Port                     string
	GinMode                  string
	LogLevel                 string
	APIBaseURL               string
	APITimeout               time.Duration
	JWTSecret                string
	JWTExpiry                time.Duration
	RedisURL                 string
	DatabaseURL              string
	AnalyticsRefreshInterval time.Duration
	AllowedOrigins           []string
}

func Load() *Config {
	return &Config{
		Port:                     getEnv("PORT", "8080"),
		GinMode:                  getEnv("GIN_MODE", "debug"),
		LogLevel:                 getEnv("LOG_LEVEL", "info"),
		APIBaseURL:               getEnv("API_BASE_URL", "https://datingapp.m17h4n.workers.dev/api"),
		APITimeout:               getDurationEnv("API_TIMEOUT", 15*time.Second),
		JWTSecret:                getEnv("JWT_SECRET", "your-super-secret-jwt-key-here"),
		JWTExpiry:                getDurationEnv("JWT_EXPIRY", 24*time.Hour),
		RedisURL:                 getEnv("REDIS_URL", "redis://localhost:6379"),
		DatabaseURL:              getEnv("DATABASE_URL", ""),
		AnalyticsRefreshInterval: getDurationEnv("ANALYTICS_REFRESH_INTERVAL", 0),
		AllowedOrigins:           getSliceEnv("ALLOWED_ORIGINS", []string{"*"}),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
