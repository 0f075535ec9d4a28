// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/olegiv/studio-site/internal/middleware"
	"github.com/olegiv/studio-site/internal/theme"
)

func TestSafeRedirect(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"/admin/bookings", "/admin/bookings"},
		{"/admin/bookings?status=PENDING&page=2", "/admin/bookings?status=PENDING&page=2"},
		{"", "/fallback"},
		{"admin", "/fallback"},
		{"//evil.example", "/fallback"},
		{"/\\evil.example", "/fallback"},
		{"https://evil.example/admin", "/fallback"},
		{"javascript:alert(1)", "/fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			if got := SafeRedirect(tt.target, "/fallback"); got != tt.want {
				t.Errorf("SafeRedirect(%q) = %q; want %q", tt.target, got, tt.want)
			}
		})
	}
}

func TestParseIDParam(t *testing.T) {
	tests := []struct {
		id      string
		want    int64
		wantErr bool
	}{
		{"42", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			req := requestWithURLParams(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": tt.id})
			got, err := ParseIDParam(req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseIDParam(%q) error = %v; wantErr %v", tt.id, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseIDParam(%q) = %d; want %d", tt.id, got, tt.want)
			}
		})
	}
}

func TestVisitorAPI_Fallback(t *testing.T) {
	_, api := newFakeBackend(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := visitorAPI(req, api); got != api {
		t.Error("visitorAPI without a visitor should return the fallback client")
	}
	if id := currentUserID(req); id != 0 {
		t.Errorf("currentUserID() = %d; want 0", id)
	}
}

func themeCookie(w *httptest.ResponseRecorder) string {
	for _, c := range w.Result().Cookies() {
		if c.Name == theme.CookieName {
			return c.Value
		}
	}
	return ""
}

func TestToggleTheme(t *testing.T) {
	tests := []struct {
		name       string
		cookie     string
		form       url.Values
		wantMode   string
		wantTarget string
	}{
		{
			name:       "toggle from default",
			form:       url.Values{"return": {"/services"}},
			wantMode:   "dark",
			wantTarget: "/services",
		},
		{
			name:       "toggle back to light",
			cookie:     "dark",
			form:       url.Values{"return": {"/portfolio?category=Weddings"}},
			wantMode:   "light",
			wantTarget: "/portfolio?category=Weddings",
		},
		{
			name:       "explicit mode",
			cookie:     "dark",
			form:       url.Values{"mode": {"dark"}},
			wantMode:   "dark",
			wantTarget: "/",
		},
		{
			name:       "external return is ignored",
			form:       url.Values{"return": {"//evil.example"}},
			wantMode:   "dark",
			wantTarget: "/",
		},
	}

	handler := middleware.Theme(false)(http.HandlerFunc(ToggleTheme))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := postForm("/theme", tt.form)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: theme.CookieName, Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assertStatus(t, w.Code, http.StatusSeeOther)
			if got := w.Header().Get("Location"); got != tt.wantTarget {
				t.Errorf("Location = %q; want %q", got, tt.wantTarget)
			}
			if got := themeCookie(w); got != tt.wantMode {
				t.Errorf("theme cookie = %q; want %q", got, tt.wantMode)
			}
		})
	}
}
