package config

import (
	"strings"
	"testing"
	"time"
)

func valid() Config {
	return Config{
		Port:               "8082",
		GeminiModel:        "gemini-2.5-flash",
		GeminiBaseURL:      "https://generativelanguage.googleapis.com",
		GeminiTimeout:      60 * time.Second,
		RateLimitPerMinute: 60,
		ChartWidth:         60,
		ChartHeight:        14,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:   "valid config without API key",
			mutate: func(c *Config) {},
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "empty model",
			mutate:      func(c *Config) { c.GeminiModel = "" },
			wantErr:     true,
			errorString: "Gemini model cannot be empty",
		},
		{
			name:        "bad base URL scheme",
			mutate:      func(c *Config) { c.GeminiBaseURL = "ftp://example.com" },
			wantErr:     true,
			errorString: "must be 'http' or 'https'",
		},
		{
			name:        "timeout too small",
			mutate:      func(c *Config) { c.GeminiTimeout = 100 * time.Millisecond },
			wantErr:     true,
			errorString: "must be at least 1 second",
		},
		{
			name:        "rate limit too small",
			mutate:      func(c *Config) { c.RateLimitPerMinute = 0 },
			wantErr:     true,
			errorString: "invalid rate limit 0",
		},
		{
			name:        "chart width out of range",
			mutate:      func(c *Config) { c.ChartWidth = 5 },
			wantErr:     true,
			errorString: "invalid chart width 5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("expected error containing %q, got %q", tt.errorString, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port == "" || cfg.GeminiModel == "" || cfg.GeminiBaseURL == "" {
		t.Fatalf("missing defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}
