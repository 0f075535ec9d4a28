// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"

	"github.com/olegiv/studio-site/internal/theme"
)

// Theme returns middleware that attaches the visitor's theme store and asks
// the browser to send its color-scheme preference on later requests.
func Theme(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Accept-CH", theme.ClientHintHeader)
			h.Add("Vary", theme.ClientHintHeader)
			h.Add("Vary", "Cookie")

			ts := theme.FromRequest(w, r, secure)
			ctx := context.WithValue(r.Context(), ContextKeyTheme, ts)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetTheme returns the visitor's theme store. Without the Theme middleware
// it returns a store that resolves to the default mode.
func GetTheme(r *http.Request) *theme.Store {
	if ts, ok := r.Context().Value(ContextKeyTheme).(*theme.Store); ok {
		return ts
	}
	return theme.NewStore(nil, nil)
}
