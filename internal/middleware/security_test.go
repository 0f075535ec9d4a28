// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func serveWithHeaders(cfg SecurityHeadersConfig, path string) *httptest.ResponseRecorder {
	handler := SecurityHeaders(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestSecurityHeaders(t *testing.T) {
	tests := []struct {
		name     string
		isDev    bool
		wantHSTS bool
	}{
		{"production mode enables HSTS", false, true},
		{"development mode disables HSTS", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serveWithHeaders(DefaultSecurityHeadersConfig(tt.isDev), "/")

			hsts := rec.Header().Get("Strict-Transport-Security")
			if tt.wantHSTS != (hsts != "") {
				t.Errorf("Strict-Transport-Security = %q, want present=%v", hsts, tt.wantHSTS)
			}

			csp := rec.Header().Get("Content-Security-Policy")
			if !strings.Contains(csp, "default-src 'self'") {
				t.Errorf("CSP missing default-src: %s", csp)
			}
			if !strings.Contains(csp, "frame-ancestors 'none'") {
				t.Errorf("CSP missing frame-ancestors: %s", csp)
			}
			if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
				t.Errorf("X-Frame-Options = %q, want DENY", got)
			}
			if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
				t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
			}
		})
	}
}

func TestSecurityHeaders_ProductionUpgradesInsecureRequests(t *testing.T) {
	prod := DefaultSecurityHeadersConfig(false).ContentSecurityPolicy
	dev := DefaultSecurityHeadersConfig(true).ContentSecurityPolicy

	if !strings.HasSuffix(prod, "upgrade-insecure-requests") {
		t.Errorf("production CSP should end with upgrade-insecure-requests: %s", prod)
	}
	if strings.Contains(dev, "upgrade-insecure-requests") {
		t.Errorf("development CSP must not upgrade requests: %s", dev)
	}
}

func TestSecurityHeadersExcludePaths(t *testing.T) {
	cfg := DefaultSecurityHeadersConfig(false)
	cfg.ExcludePaths = []string{"/static/"}

	tests := []struct {
		path        string
		wantHeaders bool
	}{
		{"/", true},
		{"/admin", true},
		{"/static/app.css", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			csp := serveWithHeaders(cfg, tt.path).Header().Get("Content-Security-Policy")
			if tt.wantHeaders != (csp != "") {
				t.Errorf("CSP present=%v for %s, want %v", csp != "", tt.path, tt.wantHeaders)
			}
		})
	}
}

func TestSecurityHeadersHSTSOptions(t *testing.T) {
	rec := serveWithHeaders(SecurityHeadersConfig{
		HSTSMaxAge:            63072000,
		HSTSIncludeSubDomains: true,
		HSTSPreload:           true,
	}, "/")

	if got, want := rec.Header().Get("Strict-Transport-Security"), "max-age=63072000; includeSubDomains; preload"; got != want {
		t.Errorf("HSTS = %q, want %q", got, want)
	}
}

func TestSecurityHeadersAllHeadersPresent(t *testing.T) {
	rec := serveWithHeaders(DefaultSecurityHeadersConfig(false), "/")

	for _, header := range []string{
		"Content-Security-Policy",
		"Strict-Transport-Security",
		"X-Frame-Options",
		"X-Content-Type-Options",
		"Referrer-Policy",
		"Permissions-Policy",
	} {
		if rec.Header().Get(header) == "" {
			t.Errorf("missing required header: %s", header)
		}
	}
}

func TestBuildCSP(t *testing.T) {
	csp := buildCSP(map[string]string{
		"img-src":                   "'self' data:",
		"default-src":               "'self'",
		"worker-src":                "'none'",
		"upgrade-insecure-requests": "",
		"manifest-src":              "'self'",
	})

	want := "default-src 'self'; img-src 'self' data:; upgrade-insecure-requests; manifest-src 'self'; worker-src 'none'"
	if csp != want {
		t.Errorf("buildCSP() =\n%s\nwant\n%s", csp, want)
	}
}

func TestBuildPermissionsPolicy(t *testing.T) {
	got := buildPermissionsPolicy(map[string]string{"usb": "()", "camera": "()"})
	if got != "camera=(), usb=()" {
		t.Errorf("buildPermissionsPolicy() = %q", got)
	}
}
