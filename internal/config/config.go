// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads process configuration from the environment and the
// translation field configuration from a YAML document.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath         string `env:"OTR_DB_PATH" envDefault:"./data/translations.db"`
	ServerHost     string `env:"OTR_SERVER_HOST" envDefault:"localhost"`
	ServerPort     int    `env:"OTR_SERVER_PORT" envDefault:"8080"`
	Env            string `env:"OTR_ENV" envDefault:"development"`
	LogLevel       string `env:"OTR_LOG_LEVEL" envDefault:"info"`
	PublicURL      string `env:"OTR_PUBLIC_URL" envDefault:"http://localhost:8080"`
	CallbackPrefix string `env:"OTR_CALLBACK_PREFIX" envDefault:"translations"`
	CallbackSecret string `env:"OTR_CALLBACK_SECRET,required"`

	// Translation field configuration (YAML)
	TranslationsConf string `env:"OTR_TRANSLATIONS_CONF" envDefault:"./translations.yaml"`

	// Cache configuration
	RedisURL    string `env:"OTR_REDIS_URL"`                                     // Optional Redis URL for distributed caching
	CachePrefix string `env:"OTR_CACHE_PREFIX" envDefault:"otr:"`                // Redis key prefix
	CacheTTL    int    `env:"OTR_CACHE_TTL" envDefault:"300"`                    // Directive cache TTL in seconds
	PollSpec    string `env:"OTR_STATUS_POLL_SCHEDULE" envDefault:"*/5 * * * *"` // Cron spec for order status polling

	// Providers
	DefaultProvider   string        `env:"OTR_DEFAULT_PROVIDER" envDefault:"supertext"`
	ProviderRPS       float64       `env:"OTR_PROVIDER_RPS" envDefault:"5"`
	ProviderTimeout   time.Duration `env:"OTR_PROVIDER_TIMEOUT" envDefault:"30s"`
	SupertextURL      string        `env:"OTR_SUPERTEXT_URL" envDefault:"https://dev.supertext.ch/api/"`
	SupertextUser     string        `env:"OTR_SUPERTEXT_USER"`
	SupertextToken    string        `env:"OTR_SUPERTEXT_TOKEN"`
	DeeplURL          string        `env:"OTR_DEEPL_URL"`
	OpenAIAPIKey      string        `env:"OTR_OPENAI_API_KEY"`
	OpenAIBaseURL     string        `env:"OTR_OPENAI_BASE_URL"`
	OpenAIModel       string        `env:"OTR_OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIWorkers     int           `env:"OTR_OPENAI_WORKERS" envDefault:"2"`
	CallbackRateRPS   float64       `env:"OTR_CALLBACK_RPS" envDefault:"2"`
	CallbackRateBurst int           `env:"OTR_CALLBACK_BURST" envDefault:"10"`

	// Seeding configuration
	DoSeed bool `env:"OTR_DO_SEED" envDefault:"false"` // Enable database seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// SupertextEnabled returns true if Supertext credentials are configured.
func (c Config) SupertextEnabled() bool {
	return c.SupertextUser != "" && c.SupertextToken != ""
}

// DeeplEnabled returns true if the DeepL gateway is configured.
func (c Config) DeeplEnabled() bool {
	return c.DeeplURL != ""
}

// OpenAIEnabled returns true if an OpenAI key is configured.
func (c Config) OpenAIEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// CallbackBaseURL returns the absolute URL prefix under which provider callbacks are served.
func (c Config) CallbackBaseURL() string {
	return strings.TrimRight(c.PublicURL, "/") + "/" + strings.Trim(c.CallbackPrefix, "/")
}

// MinCallbackSecretLength is the minimum required length for the callback secret.
const MinCallbackSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.CallbackSecret) < MinCallbackSecretLength {
		return nil, fmt.Errorf("OTR_CALLBACK_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinCallbackSecretLength, len(cfg.CallbackSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.CallbackSecret == weak {
			return nil, fmt.Errorf("OTR_CALLBACK_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if strings.Trim(cfg.CallbackPrefix, "/") == "" {
		return nil, fmt.Errorf("OTR_CALLBACK_PREFIX must not be empty")
	}

	if !hasMinimumEntropy(cfg.CallbackSecret) {
		slog.Warn("OTR_CALLBACK_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
