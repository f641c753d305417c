package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	APIBaseURL         string
	APITimeout         time.Duration
	DefaultSourceLang  string
	DefaultTargetLang  string
	UILocale           string
	HealthPollInterval time.Duration
	LangCacheTTL       time.Duration
	RedisURL           string
	RateLimitPerMinute int
}

// Load reads the front end configuration from the environment (and an
// optional .env file) and validates it.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Getenv)
}

// StubPort returns the listen port of the local stub API.
func StubPort() string {
	_ = godotenv.Load()
	return orDefault(os.Getenv("STUB_PORT"), "5000")
}

func load(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Port:              orDefault(getenv("PORT"), "8080"),
		APIBaseURL:        strings.TrimSpace(getenv("API_BASE_URL")),
		DefaultSourceLang: orDefault(getenv("DEFAULT_SOURCE_LANG"), "en"),
		DefaultTargetLang: orDefault(getenv("DEFAULT_TARGET_LANG"), "ar"),
		UILocale:          orDefault(getenv("UI_LOCALE"), "en"),
		RedisURL:          strings.TrimSpace(getenv("REDIS_URL")),
	}

	var err error
	if cfg.APITimeout, err = duration(getenv, "API_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.HealthPollInterval, err = duration(getenv, "HEALTH_POLL_INTERVAL", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.LangCacheTTL, err = duration(getenv, "LANG_CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}

	cfg.RateLimitPerMinute = 60
	if raw := strings.TrimSpace(getenv("RATE_LIMIT_PER_MINUTE")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("config: RATE_LIMIT_PER_MINUTE must be an integer (%q): %w", raw, err)
		}
		cfg.RateLimitPerMinute = n
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("config: API_BASE_URL is required")
	}
	parsed, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return fmt.Errorf("config: invalid API_BASE_URL (%q): %w", c.APIBaseURL, err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("config: invalid API_BASE_URL (%q): need an http(s) scheme and a host", c.APIBaseURL)
	}

	if c.RedisURL != "" {
		if _, err := url.Parse(c.RedisURL); err != nil {
			return fmt.Errorf("config: invalid REDIS_URL: %w", err)
		}
	}

	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("config: PORT must be numeric (%q)", c.Port)
	}

	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("config: RATE_LIMIT_PER_MINUTE cannot be negative")
	}

	for name, d := range map[string]time.Duration{
		"API_TIMEOUT":          c.APITimeout,
		"HEALTH_POLL_INTERVAL": c.HealthPollInterval,
		"LANG_CACHE_TTL":       c.LangCacheTTL,
	} {
		if d <= 0 {
			return fmt.Errorf("config: %s must be positive", name)
		}
	}

	if c.DefaultSourceLang == c.DefaultTargetLang {
		return fmt.Errorf("config: DEFAULT_SOURCE_LANG and DEFAULT_TARGET_LANG must differ")
	}

	return nil
}

func duration(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be a duration like 30s (%q): %w", key, raw, err)
	}
	return d, nil
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}
