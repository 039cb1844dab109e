package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	Port     string
	OTel     OTelConfig
	OpenAI   OpenAIConfig
	Redis    RedisConfig
	Demo     DemoConfig
	ChatPoll ChatPollConfig
}

type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
}

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type RedisConfig struct {
	URL string
}

type DemoConfig struct {
	// BaseURL is the public deployment URL shareable demo links are
	// built from, e.g. https://solarbookers.com/<slug>.
	BaseURL string
	// CalendarBaseURL is the scheduling host persona calendar links
	// point at, e.g. https://calendly.com/<slug>.
	CalendarBaseURL string
}

// ChatPollConfig bounds the run-completion polling loop for a chat turn.
type ChatPollConfig struct {
	Initial     time.Duration
	Max         time.Duration
	MaxAttempts int
	MaxElapsed  time.Duration
}

// Load loads configuration from environment variables. In development it
// also reads a local .env file. Missing required credentials fail here,
// at startup, rather than surfacing as deep runtime errors on the first
// chat turn.
func Load() (Config, error) {
	if getEnv("RELAY_ENV", "development") == "development" {
		_ = godotenv.Load(".env")
	}

	cfg := Config{
		Env:  getEnv("RELAY_ENV", "development"),
		Port: getEnv("PORT", "8080"),
		OTel: OTelConfig{
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "demo-relay"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
		},
		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			BaseURL: getEnv("OPENAI_BASE_URL", ""),
			Model:   getEnv("OPENAI_ASSISTANT_MODEL", "gpt-4o"),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		Demo: DemoConfig{
			BaseURL:         getEnv("DEMO_BASE_URL", "https://solarbookers.com"),
			CalendarBaseURL: getEnv("CALENDAR_BASE_URL", "https://calendly.com"),
		},
		ChatPoll: ChatPollConfig{
			Initial:     getEnvDuration("CHAT_POLL_INITIAL_MS", 200*time.Millisecond),
			Max:         getEnvDuration("CHAT_POLL_MAX_MS", 3*time.Second),
			MaxAttempts: getEnvInt("CHAT_POLL_MAX_ATTEMPTS", 25),
			MaxElapsed:  getEnvDuration("CHAT_POLL_BUDGET_MS", 30*time.Second),
		},
	}

	if cfg.OpenAI.APIKey == "" {
		return Config{}, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if cfg.Redis.URL == "" {
		return Config{}, fmt.Errorf("REDIS_URL is required")
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if ms, err := strconv.Atoi(value); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return fallback
}
