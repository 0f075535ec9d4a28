// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the studio site configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains example secrets that must never reach a deployment.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	SessionSecret string `env:"STUDIO_SESSION_SECRET,required"`
	APIBaseURL    string `env:"STUDIO_API_BASE_URL" envDefault:"http://localhost:5000/api"`
	SiteURL       string `env:"STUDIO_SITE_URL" envDefault:"http://localhost:8080"` // public URL used in sitemap.xml
	DBPath        string `env:"STUDIO_DB_PATH" envDefault:"./data/studio.db"`
	ServerHost    string `env:"STUDIO_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"STUDIO_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"STUDIO_ENV" envDefault:"development"`
	LogLevel      string `env:"STUDIO_LOG_LEVEL" envDefault:"info"`

	// Cache configuration
	RedisURL     string `env:"STUDIO_REDIS_URL"`
	CachePrefix  string `env:"STUDIO_CACHE_PREFIX" envDefault:"studio:"`
	CacheTTL     int    `env:"STUDIO_CACHE_TTL" envDefault:"300"` // seconds
	CacheMaxSize int    `env:"STUDIO_CACHE_MAX_SIZE" envDefault:"1000"`

	BookingsPerPage    int    `env:"STUDIO_BOOKINGS_PER_PAGE" envDefault:"20"`
	EventRetentionDays int    `env:"STUDIO_EVENT_RETENTION_DAYS" envDefault:"30"`
	Currency           string `env:"STUDIO_CURRENCY" envDefault:"Ksh"`
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

// CacheTTLDuration returns the cache TTL as a duration.
func (c Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// EventRetention returns how long event log rows are kept.
func (c Config) EventRetention() time.Duration {
	return time.Duration(c.EventRetentionDays) * 24 * time.Hour
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("STUDIO_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("STUDIO_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("STUDIO_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	u, err := url.Parse(cfg.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("STUDIO_API_BASE_URL must be an absolute http(s) URL, got %q", cfg.APIBaseURL)
	}
	cfg.APIBaseURL = strings.TrimSuffix(cfg.APIBaseURL, "/")
	cfg.SiteURL = strings.TrimSuffix(cfg.SiteURL, "/")

	if cfg.BookingsPerPage < 1 {
		return nil, fmt.Errorf("STUDIO_BOOKINGS_PER_PAGE must be positive, got %d", cfg.BookingsPerPage)
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
