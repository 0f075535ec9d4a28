// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

const validSecret = "test-Secret-key-32-bytes-long!!!"

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	setEnv(t, "STUDIO_SESSION_SECRET", validSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.APIBaseURL != "http://localhost:5000/api" {
		t.Errorf("APIBaseURL = %q, want %q", cfg.APIBaseURL, "http://localhost:5000/api")
	}
	if cfg.SiteURL != "http://localhost:8080" {
		t.Errorf("SiteURL = %q, want %q", cfg.SiteURL, "http://localhost:8080")
	}
	if cfg.DBPath != "./data/studio.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/studio.db")
	}
	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr() = %q, want %q", cfg.ServerAddr(), "localhost:8080")
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false, want true")
	}
	if cfg.UseRedisCache() {
		t.Error("UseRedisCache() = true without a Redis URL")
	}
	if cfg.CacheTTLDuration() != 5*time.Minute {
		t.Errorf("CacheTTLDuration() = %v, want 5m", cfg.CacheTTLDuration())
	}
	if cfg.BookingsPerPage != 20 {
		t.Errorf("BookingsPerPage = %d, want 20", cfg.BookingsPerPage)
	}
	if cfg.Currency != "Ksh" {
		t.Errorf("Currency = %q, want %q", cfg.Currency, "Ksh")
	}
	if cfg.EventRetention() != 30*24*time.Hour {
		t.Errorf("EventRetention() = %v, want 720h", cfg.EventRetention())
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	setEnv(t, "STUDIO_SESSION_SECRET", validSecret)
	setEnv(t, "STUDIO_API_BASE_URL", "https://api.studio.example/api/")
	setEnv(t, "STUDIO_SERVER_HOST", "0.0.0.0")
	setEnv(t, "STUDIO_SERVER_PORT", "3000")
	setEnv(t, "STUDIO_ENV", "production")
	setEnv(t, "STUDIO_REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.APIBaseURL != "https://api.studio.example/api" {
		t.Errorf("APIBaseURL = %q, want trailing slash trimmed", cfg.APIBaseURL)
	}
	if cfg.ServerAddr() != "0.0.0.0:3000" {
		t.Errorf("ServerAddr() = %q, want %q", cfg.ServerAddr(), "0.0.0.0:3000")
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true, want false")
	}
	if !cfg.UseRedisCache() {
		t.Error("UseRedisCache() = false, want true")
	}
}

func TestLoad_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing secret",
			env:     map[string]string{},
			wantErr: "STUDIO_SESSION_SECRET",
		},
		{
			name:    "short secret",
			env:     map[string]string{"STUDIO_SESSION_SECRET": "too-short"},
			wantErr: "at least 32 bytes",
		},
		{
			name:    "known weak secret",
			env:     map[string]string{"STUDIO_SESSION_SECRET": "change-me-to-32-byte-secret-key!"},
			wantErr: "known default",
		},
		{
			name: "relative api url",
			env: map[string]string{
				"STUDIO_SESSION_SECRET": validSecret,
				"STUDIO_API_BASE_URL":   "/api",
			},
			wantErr: "STUDIO_API_BASE_URL",
		},
		{
			name: "zero page size",
			env: map[string]string{
				"STUDIO_SESSION_SECRET":    validSecret,
				"STUDIO_BOOKINGS_PER_PAGE": "0",
			},
			wantErr: "STUDIO_BOOKINGS_PER_PAGE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tt.env {
				setEnv(t, k, v)
			}
			_, err := Load()
			if err == nil {
				t.Fatal("Load() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", false},
		{"aaaaaaaaaaaaaaaaAAAAAAAAAAAAAAAA", false},
		{"aaaaaaaaaaaaaaaaAAAAAAAAAAAA1234", true},
		{"abc123!@#abc123!@#abc123!@#abc12", true},
	}
	for _, tt := range tests {
		if got := hasMinimumEntropy(tt.in); got != tt.want {
			t.Errorf("hasMinimumEntropy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
