package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Gemini
	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	GeminiTimeout time.Duration

	// HTTP hardening
	RateLimitPerMinute int

	// Chart rendering
	ChartWidth  int
	ChartHeight int
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8082"),

		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		GeminiTimeout: getEnvDuration("GEMINI_TIMEOUT", 60*time.Second),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),

		ChartWidth:  getEnvInt("CHART_WIDTH", 60),
		ChartHeight: getEnvInt("CHART_HEIGHT", 14),
	}
}

// Validate validates the configuration and returns an error if invalid.
// An empty API key is allowed: AI endpoints report it per request instead
// of blocking startup.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.GeminiModel == "" {
		errs = append(errs, "Gemini model cannot be empty")
	}

	if parsed, err := url.Parse(c.GeminiBaseURL); err != nil || parsed.Host == "" {
		errs = append(errs, fmt.Sprintf("invalid Gemini base URL '%s'", c.GeminiBaseURL))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		errs = append(errs, fmt.Sprintf("invalid Gemini base URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
	}

	if c.GeminiTimeout < time.Second {
		errs = append(errs, fmt.Sprintf("invalid Gemini timeout %v: must be at least 1 second", c.GeminiTimeout))
	} else if c.GeminiTimeout > 10*time.Minute {
		errs = append(errs, fmt.Sprintf("invalid Gemini timeout %v: must be at most 10 minutes", c.GeminiTimeout))
	}

	if c.RateLimitPerMinute < 1 {
		errs = append(errs, fmt.Sprintf("invalid rate limit %d: must be at least 1", c.RateLimitPerMinute))
	}

	if c.ChartWidth < 20 || c.ChartWidth > 300 {
		errs = append(errs, fmt.Sprintf("invalid chart width %d: must be between 20 and 300", c.ChartWidth))
	}
	if c.ChartHeight < 5 || c.ChartHeight > 100 {
		errs = append(errs, fmt.Sprintf("invalid chart height %d: must be between 5 and 100", c.ChartHeight))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
