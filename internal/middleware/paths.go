// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"strings"
)

// StripTrailingSlash redirects GET and HEAD requests for paths with a
// trailing slash to the path without it (HTTP 301). The root path is left
// alone, and so are form posts, whose body a redirect would drop.
func StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if (r.Method == http.MethodGet || r.Method == http.MethodHead) &&
			path != "/" && strings.HasSuffix(path, "/") {
			target := "/" + strings.Trim(path, "/")
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, target, http.StatusMovedPermanently)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequestPath stores the request path in the context for error logging.
func RequestPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ContextKeyRequestPath, r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestPath retrieves the request path from the context.
func GetRequestPath(ctx context.Context) string {
	path, _ := ctx.Value(ContextKeyRequestPath).(string)
	return path
}
