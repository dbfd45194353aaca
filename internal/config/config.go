package config

import (
	"os"
	"strconv"
)

type Config struct {
	DatabasePath        string
	Port                string
	ImagesDir           string
	AllowedOrigins      string
	AnthropicAPIKey     string
	AnthropicModel      string
	WeatherCacheMinutes int
	LogLevel            string
}

func Load() *Config {
	cfg := &Config{
		DatabasePath:        getEnv("DATABASE_PATH", "drip.db"),
		Port:                getEnv("PORT", "8080"),
		ImagesDir:           getEnv("IMAGES_DIR", "images"),
		AllowedOrigins:      getEnv("ALLOWED_ORIGINS", "http://localhost:8080"),
		AnthropicAPIKey:     getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:      getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-5"),
		WeatherCacheMinutes: getEnvInt("WEATHER_CACHE_MINUTES", 30),
		LogLevel:            getEnv("LOG_LEVEL", "INFO"),
	}
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
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
