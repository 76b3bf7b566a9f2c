package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App     AppConfig
	Redis   RedisConfig
	Logger  LoggerConfig
	AI      AIConfig
	Confirm ConfirmConfig
	Chat    ChatConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	SeedDemo              bool
}

// RedisConfig holds Redis connection values. An empty Addr keeps the
// consent flags in process memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AIConfig configures the hosted model integration.
type AIConfig struct {
	APIKey                string
	Model                 string
	BaseURL               string
	RequestTimeoutSeconds int
}

// ConfirmConfig holds the signing parameters for delete confirmations.
type ConfirmConfig struct {
	Secret     string
	TTLSeconds int
}

// ChatConfig controls chat panel lifetime.
type ChatConfig struct {
	SessionIdleMinutes int
	SweepSchedule      string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "bz-helpdesk"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 0),
			SeedDemo:              getEnvAsBool("APP_SEED_DEMO", true),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		AI: AIConfig{
			APIKey:                os.Getenv("GEMINI_API_KEY"),
			Model:                 getEnv("AI_MODEL", "gemini-2.5-flash"),
			BaseURL:               os.Getenv("AI_BASE_URL"),
			RequestTimeoutSeconds: getEnvAsInt("AI_REQUEST_TIMEOUT_SECONDS", 0),
		},
		Confirm: ConfirmConfig{
			Secret:     getEnv("CONFIRM_TOKEN_SECRET", "dev-secret"),
			TTLSeconds: getEnvAsInt("CONFIRM_TOKEN_TTL_SECONDS", 120),
		},
		Chat: ChatConfig{
			SessionIdleMinutes: getEnvAsInt("CHAT_SESSION_IDLE_MINUTES", 30),
			SweepSchedule:      getEnv("CHAT_SWEEP_SCHEDULE", "@every 1m"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Enabled reports whether a hosted model credential is configured.
func (a AIConfig) Enabled() bool {
	return a.APIKey != ""
}

// RequestTimeout returns the per-call model timeout; zero means none.
func (a AIConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// TTL returns how long a confirmation token stays valid.
func (c ConfirmConfig) TTL() time.Duration {
	if c.TTLSeconds <= 0 {
		return 2 * time.Minute
	}
	return time.Duration(c.TTLSeconds) * time.Second
}

// SessionIdle returns how long an untouched chat panel survives.
func (c ChatConfig) SessionIdle() time.Duration {
	if c.SessionIdleMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(c.SessionIdleMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
