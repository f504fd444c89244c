package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the monitor needs, loaded from the
// environment with an optional .env file.
type Config struct {
	// Polling
	PollInterval time.Duration // scoreboard cadence
	AveragesTTL  time.Duration // how long scraped averages stay fresh
	HTTPTimeout  time.Duration

	// Classification
	Threshold float64 // deviation band separating hot/cold from average

	// Endpoint overrides, mostly for tests; empty selects the live sources
	ScoreboardURL   string
	RankingsBaseURL string

	// Telegram notifications (optional)
	TelegramBotToken string
	TelegramChatID   string

	// Display
	ClearScreen bool
}

// Load reads configuration from the environment. Every value has a
// default; a .env file is honored when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env file is optional if env vars are set directly
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	cfg := &Config{
		PollInterval:     getEnvDuration("POLL_INTERVAL", 30*time.Second),
		AveragesTTL:      getEnvDuration("AVERAGES_TTL", time.Hour),
		HTTPTimeout:      getEnvDuration("HTTP_TIMEOUT", 10*time.Second),
		Threshold:        getEnvFloat("HOT_COLD_THRESHOLD", 0.05),
		ScoreboardURL:    os.Getenv("ESPN_SCOREBOARD_URL"),
		RankingsBaseURL:  os.Getenv("TEAMRANKINGS_BASE_URL"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   os.Getenv("TELEGRAM_CHAT_ID"),
		ClearScreen:      getEnvBool("CLEAR_SCREEN", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// HasTelegram returns true if Telegram notifications are configured.
func (c *Config) HasTelegram() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != ""
}

// Validate performs runtime validation of config values.
func (c *Config) Validate() error {
	if c.PollInterval <= 0 {
		return errors.New("POLL_INTERVAL must be positive")
	}
	if c.AveragesTTL <= 0 {
		return errors.New("AVERAGES_TTL must be positive")
	}
	if c.HTTPTimeout <= 0 {
		return errors.New("HTTP_TIMEOUT must be positive")
	}
	if c.Threshold <= 0 || c.Threshold >= 1 {
		return errors.New("HOT_COLD_THRESHOLD must be between 0 and 1")
	}
	return nil
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}

func getEnvFloat(key string, defaultVal float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultVal
	}
	return parsed
}

func getEnvBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}
