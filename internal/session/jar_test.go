// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJar(t *testing.T) (*Jar, *scs.SessionManager, context.Context) {
	t.Helper()
	sm := scs.New()
	ctx, err := sm.Load(context.Background(), "")
	require.NoError(t, err)
	jar := NewJar(ctx, sm)
	jar.now = func() time.Time { return time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC) }
	return jar, sm, ctx
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func names(cookies []*http.Cookie) []string {
	out := make([]string, 0, len(cookies))
	for _, c := range cookies {
		out = append(out, c.Name+"="+c.Value)
	}
	return out
}

func TestJar_RoundTrip(t *testing.T) {
	jar, sm, ctx := newTestJar(t)
	backend := mustURL(t, "http://localhost:5000/api/auth/login")

	jar.SetCookies(backend, []*http.Cookie{{Name: "sid", Value: "abc", Path: "/"}})

	assert.Equal(t, []string{"sid=abc"}, names(jar.Cookies(mustURL(t, "http://localhost:5000/api/auth/me"))))
	assert.True(t, sm.Exists(ctx, JarKey))
}

func TestJar_ReplacesSameName(t *testing.T) {
	jar, _, _ := newTestJar(t)
	backend := mustURL(t, "http://localhost:5000/api/auth/login")

	jar.SetCookies(backend, []*http.Cookie{{Name: "sid", Value: "one"}})
	jar.SetCookies(backend, []*http.Cookie{{Name: "sid", Value: "two"}})

	assert.Equal(t, []string{"sid=two"}, names(jar.Cookies(backend)))
}

func TestJar_Removal(t *testing.T) {
	tests := []struct {
		name   string
		cookie *http.Cookie
	}{
		{"negative max age", &http.Cookie{Name: "sid", MaxAge: -1}},
		{"past expiry", &http.Cookie{Name: "sid", Expires: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jar, sm, ctx := newTestJar(t)
			backend := mustURL(t, "http://localhost:5000/api/auth/logout")
			jar.SetCookies(backend, []*http.Cookie{{Name: "sid", Value: "abc"}})

			jar.SetCookies(backend, []*http.Cookie{tt.cookie})

			assert.Empty(t, jar.Cookies(backend))
			assert.False(t, sm.Exists(ctx, JarKey))
		})
	}
}

func TestJar_MaxAgeExpires(t *testing.T) {
	jar, _, _ := newTestJar(t)
	backend := mustURL(t, "http://localhost:5000/api")
	jar.SetCookies(backend, []*http.Cookie{{Name: "sid", Value: "abc", MaxAge: 60}})
	require.Len(t, jar.Cookies(backend), 1)

	jar.now = func() time.Time { return time.Date(2026, 5, 1, 10, 2, 0, 0, time.UTC) }
	assert.Empty(t, jar.Cookies(backend))
}

func TestJar_Scoping(t *testing.T) {
	jar, _, _ := newTestJar(t)
	jar.SetCookies(mustURL(t, "http://localhost:5000/api/auth/login"), []*http.Cookie{
		{Name: "sid", Value: "abc", Path: "/api"},
		{Name: "secure", Value: "s", Secure: true},
	})

	assert.Equal(t, []string{"sid=abc"}, names(jar.Cookies(mustURL(t, "http://localhost:5000/api/bookings"))))
	assert.Empty(t, names(jar.Cookies(mustURL(t, "http://localhost:5000/apix"))), "path prefix must end at a segment")
	assert.Empty(t, jar.Cookies(mustURL(t, "http://other.test/api/bookings")))
	assert.ElementsMatch(t, []string{"sid=abc", "secure=s"}, names(jar.Cookies(mustURL(t, "https://localhost:5000/api"))))
}

func TestJar_Clear(t *testing.T) {
	jar, sm, ctx := newTestJar(t)
	backend := mustURL(t, "http://localhost:5000/api")
	jar.SetCookies(backend, []*http.Cookie{{Name: "sid", Value: "abc"}})

	jar.Clear()

	assert.Empty(t, jar.Cookies(backend))
	assert.False(t, sm.Exists(ctx, JarKey))
}
