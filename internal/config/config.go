package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// OpenAI
	OpenAIAPIKey      string
	OpenAIModel       string
	OpenAITemperature float64
	OpenAIMaxTokens   int

	// Conversation guardrails
	ChatMaxTurns        int
	ChatMaxContentChars int

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                getEnvOrDefault("PORT", "8080"),
		Env:                 getEnvOrDefault("ENV", "development"),
		OpenAIAPIKey:        mustGetEnv("OPENAI_API_KEY"),
		OpenAIModel:         getEnvOrDefault("OPENAI_MODEL", "gpt-3.5-turbo"),
		OpenAITemperature:   getEnvAsFloatOrDefault("OPENAI_TEMPERATURE", 0.7),
		OpenAIMaxTokens:     getEnvAsIntOrDefault("OPENAI_MAX_TOKENS", 900),
		ChatMaxTurns:        getEnvAsIntOrDefault("CHAT_MAX_TURNS", 12),
		ChatMaxContentChars: getEnvAsIntOrDefault("CHAT_MAX_CONTENT_CHARS", 4000),
		FrontendURL:         getEnvOrDefault("FRONTEND_URL", "*"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsFloatOrDefault(key string, defaultVal float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultVal
	}
	return f
}
