package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the service.
type Config struct {
	Port        string
	DatabaseDSN string
	LogLevel    string
	Environment string

	AMQPURL      string
	AMQPExchange string

	AudioBucket string

	OpenAIAPIKey string
	MapsAPIKey   string

	OTLPEndpoint string
	DebugRoutes  bool
}

// Load reads configuration from the environment, honoring a local .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnvOrDefault("PORT", "8083"),
		LogLevel:     getEnvOrDefault("LOG_LEVEL", "info"),
		Environment:  getEnvOrDefault("ENVIRONMENT", "development"),
		AMQPURL:      os.Getenv("AMQP_URL"),
		AMQPExchange: getEnvOrDefault("AMQP_EXCHANGE", "gift_events"),
		AudioBucket:  getEnvOrDefault("AUDIO_BUCKET", "gift-audio-recordings"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		MapsAPIKey:   os.Getenv("MAPS_API_KEY"),
		OTLPEndpoint: getEnvOrDefault("OTLP_ENDPOINT", "localhost:4317"),
		DebugRoutes:  os.Getenv("DEBUG_ROUTES") == "true",
	}

	if cfg.DatabaseDSN = os.Getenv("DB_DSN"); cfg.DatabaseDSN == "" {
		return nil, fmt.Errorf("DB_DSN environment variable is required")
	}

	return cfg, nil
}

// getEnvOrDefault returns environment variable value or default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
