package config

import (
	"os"
)

type Config struct {
	DatabaseURL      string
	GinMode          string
	Port             string
	OpenAIAPIKey     string
	TelegramToken    string
	TelegramChatID   string
	OverdueSweepTime string
	SeedUsername     string
	SeedPassword     string
}

func Load() *Config {
	return &Config{
		DatabaseURL:      getEnv("DATABASE_URL", "meeting_decisions.db"),
		GinMode:          getEnv("GIN_MODE", "debug"),
		Port:             getEnv("PORT", "8080"),
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		TelegramToken:    getEnv("TELEGRAM_TOKEN", ""),
		TelegramChatID:   getEnv("TELEGRAM_CHAT_ID", ""),
		OverdueSweepTime: getEnv("OVERDUE_SWEEP_TIME", "09:00"),
		SeedUsername:     getEnv("SEED_USERNAME", "demo"),
		SeedPassword:     getEnv("SEED_PASSWORD", "demo-password"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
