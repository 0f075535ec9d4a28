// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for visitor sessions, route
// guarding, theming and request hardening.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/studio-site/internal/apiclient"
	"github.com/olegiv/studio-site/internal/auth"
	"github.com/olegiv/studio-site/internal/model"
	"github.com/olegiv/studio-site/internal/nav"
	"github.com/olegiv/studio-site/internal/session"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys.
const (
	ContextKeyVisitor     ContextKey = "visitor"
	ContextKeyTheme       ContextKey = "theme"
	ContextKeyRequestPath ContextKey = "request_path"
)

// Session resolution timing.
const (
	// DefaultResolveBudget is how long a request waits for the initial
	// resolution before the page shows the loading placeholder.
	DefaultResolveBudget = 3 * time.Second
	// ResolveTimeout bounds the backend calls of the resolution itself.
	ResolveTimeout = 15 * time.Second
)

// Visitor is the per-request view of one visitor: a backend client that
// relays their cookies and the auth store resolved through it.
type Visitor struct {
	API  *apiclient.Client
	Auth *auth.Store
	Jar  *session.Jar

	settled chan struct{}
}

// Session returns the visitor's auth snapshot. Until the initial resolution
// has settled the snapshot reports IsLoading.
func (v *Visitor) Session() auth.Session {
	s := v.Auth.Snapshot()
	if !s.Resolved() {
		s.IsLoading = true
	}
	return s
}

// Wait blocks until the initial resolution settles or ctx is done.
func (v *Visitor) Wait(ctx context.Context) bool {
	select {
	case <-v.settled:
		return true
	case <-ctx.Done():
		return false
	}
}

// SessionLoader builds a Visitor for every request.
type SessionLoader struct {
	Sessions *scs.SessionManager
	API      *apiclient.Client
	Logger   *slog.Logger

	// Budget is how long the request waits for the initial resolution.
	Budget time.Duration
}

// LoadSession returns middleware that attaches a Visitor to the request and
// starts its initial resolution. It must run inside the scs LoadAndSave
// middleware.
func LoadSession(l SessionLoader) func(http.Handler) http.Handler {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	budget := l.Budget
	if budget <= 0 {
		budget = DefaultResolveBudget
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			jar := session.NewJar(r.Context(), l.Sessions)
			client := l.API.WithJar(jar)
			v := &Visitor{
				API:     client,
				Auth:    auth.NewStore(client, logger),
				Jar:     jar,
				settled: make(chan struct{}),
			}

			// The resolution outlives a cancelled request so the store
			// never stays half-resolved.
			resolveCtx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), ResolveTimeout)
			var late atomic.Bool
			go func(ctx context.Context) {
				defer cancel()
				defer close(v.settled)
				v.Auth.Resolve(ctx)
				if late.Load() {
					l.resave(ctx, logger)
				}
			}(resolveCtx)

			timer := time.NewTimer(budget)
			select {
			case <-v.settled:
			case <-timer.C:
				late.Store(true)
				logger.Debug("session resolution still pending", "path", r.URL.Path)
			case <-r.Context().Done():
				late.Store(true)
			}
			timer.Stop()

			ctx := context.WithValue(r.Context(), ContextKeyVisitor, v)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// resave writes cookies relayed by a resolution that finished after the
// response, when LoadAndSave may already have committed the session. A
// visitor without a session token is skipped: the browser would never
// receive a new one.
func (l SessionLoader) resave(ctx context.Context, logger *slog.Logger) {
	if l.Sessions.Status(ctx) != scs.Modified || l.Sessions.Token(ctx) == "" {
		return
	}
	if _, _, err := l.Sessions.Commit(ctx); err != nil {
		logger.Warn("late session save failed", "category", model.EventCategoryAuth, "error", err)
	}
}

// GetVisitor retrieves the visitor from the request context.
// Returns nil if LoadSession did not run.
func GetVisitor(r *http.Request) *Visitor {
	v, _ := r.Context().Value(ContextKeyVisitor).(*Visitor)
	return v
}

// GetSession returns the visitor's auth snapshot, or an anonymous resolved
// session when no visitor is attached.
func GetSession(r *http.Request) auth.Session {
	if v := GetVisitor(r); v != nil {
		return v.Session()
	}
	return auth.Session{AdminExists: auth.False}
}

// GetUser returns the signed-in user, or nil.
func GetUser(r *http.Request) *model.User {
	return GetSession(r).CurrentUser
}

// LoginURL returns the login page URL that returns the visitor to target.
func LoginURL(target string) string {
	if target == "" || target == nav.PathAdminLogin {
		return nav.PathAdminLogin
	}
	return nav.PathAdminLogin + "?next=" + url.QueryEscape(target)
}

// RetryAfter is the Retry-After value sent with the loading placeholder.
const RetryAfter = 2

// DefaultLoading is the neutral placeholder shown while a session resolves.
var DefaultLoading = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Retry-After", strconv.Itoa(RetryAfter))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusServiceUnavailable)
	_, _ = w.Write([]byte(`<!doctype html><meta http-equiv="refresh" content="` + strconv.Itoa(RetryAfter) + `"><title>Loading</title><p>Loading…</p>`))
})

// RequireRoles returns middleware that gates a route on the visitor's session.
// With no roles any signed-in user is admitted. loading renders while the
// session is still resolving; nil uses DefaultLoading.
func RequireRoles(loading http.Handler, roles ...model.Role) func(http.Handler) http.Handler {
	required := auth.Roles(roles...)
	if loading == nil {
		loading = DefaultLoading
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := GetSession(r)
			switch auth.Guard(required, s) {
			case auth.Loading:
				loading.ServeHTTP(w, r)
			case auth.RedirectToLogin:
				http.Redirect(w, r, LoginURL(r.URL.RequestURI()), http.StatusSeeOther)
			case auth.RedirectToHome:
				slog.Warn("access denied",
					"category", model.EventCategoryAuth,
					"method", r.Method,
					"path", r.URL.Path,
					"user_id", s.CurrentUser.ID,
					"user_role", s.CurrentUser.Role.String(),
				)
				http.Redirect(w, r, nav.PathHome, http.StatusSeeOther)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// RequireAnonymous redirects signed-in visitors to target. Used on the login
// and registration pages.
func RequireAnonymous(target string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet && GetUser(r) != nil {
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
