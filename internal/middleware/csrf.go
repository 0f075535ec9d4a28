// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	"filippo.io/csrf/gorilla"

	"github.com/olegiv/studio-site/internal/model"
)

// CSRFConfig holds configuration for CSRF protection.
// filippo.io/csrf/gorilla checks Fetch metadata and Origin headers instead
// of token cookies, so no token has to be rendered into forms.
type CSRFConfig struct {
	// AuthKey is a 32-byte key; the session secret is used.
	AuthKey []byte

	// ErrorHandler is called when CSRF validation fails.
	ErrorHandler http.Handler

	// TrustedOrigins are host:port values allowed to post cross-origin.
	TrustedOrigins []string
}

// DefaultCSRFConfig returns a CSRFConfig for the site. In development the
// loopback origins on port are trusted so forms work through port forwards.
func DefaultCSRFConfig(authKey []byte, isDev bool, port int) CSRFConfig {
	cfg := CSRFConfig{AuthKey: authKey}
	if isDev {
		p := strconv.Itoa(port)
		cfg.TrustedOrigins = []string{
			"localhost:" + p,
			"127.0.0.1:" + p,
		}
	}
	return cfg
}

// CSRF returns a middleware that rejects cross-site form posts.
func CSRF(cfg CSRFConfig) func(http.Handler) http.Handler {
	errorHandler := cfg.ErrorHandler
	if errorHandler == nil {
		errorHandler = http.HandlerFunc(csrfErrorHandler)
	}

	opts := []csrf.Option{csrf.ErrorHandler(errorHandler)}
	if len(cfg.TrustedOrigins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(cfg.TrustedOrigins))
	}

	return csrf.Protect(cfg.AuthKey, opts...)
}

// CSRFFailureReason returns why the CSRF check rejected r.
func CSRFFailureReason(r *http.Request) string {
	if reason := csrf.FailureReason(r); reason != nil {
		return reason.Error()
	}
	return "unknown"
}

func csrfErrorHandler(w http.ResponseWriter, r *http.Request) {
	slog.Warn("CSRF validation failed",
		"category", model.EventCategoryAuth,
		"reason", CSRFFailureReason(r),
		"method", r.Method,
		"path", r.URL.Path,
		"origin", r.Header.Get("Origin"),
		"sec_fetch_site", r.Header.Get("Sec-Fetch-Site"),
	)
	http.Error(w, "Forbidden - the form was submitted from another site", http.StatusForbidden)
}
