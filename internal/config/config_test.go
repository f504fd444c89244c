package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.PollInterval != 30*time.Second {
		t.Errorf("PollInterval = %v, want 30s", cfg.PollInterval)
	}
	if cfg.AveragesTTL != time.Hour {
		t.Errorf("AveragesTTL = %v, want 1h", cfg.AveragesTTL)
	}
	if cfg.Threshold != 0.05 {
		t.Errorf("Threshold = %v, want 0.05", cfg.Threshold)
	}
	if !cfg.ClearScreen {
		t.Error("ClearScreen should default to true")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "10s")
	t.Setenv("HOT_COLD_THRESHOLD", "0.10")
	t.Setenv("CLEAR_SCREEN", "false")
	t.Setenv("ESPN_SCOREBOARD_URL", "http://localhost:9999/scoreboard")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.PollInterval != 10*time.Second {
		t.Errorf("PollInterval = %v, want 10s", cfg.PollInterval)
	}
	if cfg.Threshold != 0.10 {
		t.Errorf("Threshold = %v, want 0.10", cfg.Threshold)
	}
	if cfg.ClearScreen {
		t.Error("ClearScreen override not applied")
	}
	if cfg.ScoreboardURL != "http://localhost:9999/scoreboard" {
		t.Errorf("ScoreboardURL = %q", cfg.ScoreboardURL)
	}
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "not-a-duration")
	t.Setenv("HOT_COLD_THRESHOLD", "lots")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.PollInterval != 30*time.Second {
		t.Errorf("unparsable POLL_INTERVAL should fall back, got %v", cfg.PollInterval)
	}
	if cfg.Threshold != 0.05 {
		t.Errorf("unparsable threshold should fall back, got %v", cfg.Threshold)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults ok", func(c *Config) {}, false},
		{"zero poll interval", func(c *Config) { c.PollInterval = 0 }, true},
		{"negative ttl", func(c *Config) { c.AveragesTTL = -time.Minute }, true},
		{"zero timeout", func(c *Config) { c.HTTPTimeout = 0 }, true},
		{"threshold too large", func(c *Config) { c.Threshold = 1.5 }, true},
		{"threshold zero", func(c *Config) { c.Threshold = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				PollInterval: 30 * time.Second,
				AveragesTTL:  time.Hour,
				HTTPTimeout:  10 * time.Second,
				Threshold:    0.05,
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHasTelegram(t *testing.T) {
	cfg := &Config{}
	if cfg.HasTelegram() {
		t.Error("empty config should not report telegram")
	}
	cfg.TelegramBotToken = "token"
	if cfg.HasTelegram() {
		t.Error("token without chat ID should not report telegram")
	}
	cfg.TelegramChatID = "12345"
	if !cfg.HasTelegram() {
		t.Error("token plus chat ID should report telegram")
	}
}
