// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/studio-site/internal/model"
	"github.com/olegiv/studio-site/internal/nav"
)

func TestBlankLinesRegex(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no blank lines", "line1\nline2\nline3", "line1\nline2\nline3"},
		{"one blank line (two newlines)", "line1\n\nline2", "line1\nline2"},
		{"multiple blank lines", "line1\n\n\n\n\nline2", "line1\nline2"},
		{"blank lines with spaces", "line1\n  \n\t\nline2", "line1\nline2"},
		{"windows line endings", "line1\r\n\r\n\r\nline2", "line1\nline2"},
		{"blank lines at end", "line1\nline2\n\n\n", "line1\nline2\n"},
		{"empty input", "", ""},
		{"html with blank lines", "<div>\n\n\n<p>text</p>\n\n\n</div>", "<div>\n<p>text</p>\n</div>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(blankLinesRegex.ReplaceAll([]byte(tt.input), []byte("\n")))
			if got != tt.expected {
				t.Errorf("blankLinesRegex.ReplaceAll(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"layouts/base.html": {Data: []byte(`{{define "base"}}<html data-theme="{{.Theme}}">` +
			`{{if .Flash}}<div class="flash {{.FlashType}}">{{.Flash}}</div>{{end}}` +
			`{{if .Nav.AdminLogin}}<a href="/admin/login">Admin</a>{{end}}` +
			`{{block "main" .}}{{template "content" .}}{{end}}</html>{{end}}`)},
		"layouts/admin.html": {Data: []byte(`{{define "main"}}<aside>admin</aside>{{template "content" .}}{{end}}`)},
		"partials/footer.html": {Data: []byte(`{{define "footer"}}&copy; {{.CurrentYear}}{{end}}`)},
		"pages/home.html":      {Data: []byte(`{{define "content"}}<h1>{{.Title}}</h1>{{template "footer" .}}{{end}}`)},
		"pages/loading.html":   {Data: []byte(`{{define "content"}}Loading{{end}}`)},
		"pages/error.html":     {Data: []byte(`{{define "content"}}<p>{{.Data}}</p>{{end}}`)},
		"admin/dashboard.html": {Data: []byte(`{{define "content"}}<h1>{{.Title}}</h1>{{end}}`)},
	}
}

func newTestRenderer(t *testing.T, sm *scs.SessionManager) *Renderer {
	t.Helper()
	r, err := New(Config{TemplatesFS: testFS(), SessionManager: sm})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r
}

func TestNew_ParsesGroups(t *testing.T) {
	r := newTestRenderer(t, nil)

	for _, name := range []string{"pages/home", "pages/loading", "pages/error", "admin/dashboard"} {
		if !r.Has(name) {
			t.Errorf("template %s not parsed", name)
		}
	}
	if r.Has("partials/footer") {
		t.Error("partials must not be registered as pages")
	}
}

func TestRender_PublicAndAdminLayouts(t *testing.T) {
	r := newTestRenderer(t, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if err := r.Render(rec, req, "pages/home", TemplateData{Title: "Studio"}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<h1>Studio</h1>") || strings.Contains(body, "<aside>") {
		t.Errorf("public page body = %q", body)
	}
	if !strings.Contains(body, `data-theme="light"`) {
		t.Errorf("default theme missing: %q", body)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", got)
	}

	rec = httptest.NewRecorder()
	if err := r.Render(rec, req, "admin/dashboard", TemplateData{Title: "Dashboard"}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(rec.Body.String(), "<aside>admin</aside><h1>Dashboard</h1>") {
		t.Errorf("admin page body = %q", rec.Body.String())
	}
}

func TestRender_UnknownTemplate(t *testing.T) {
	r := newTestRenderer(t, nil)
	err := r.Render(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), "pages/missing", TemplateData{})
	if err == nil {
		t.Fatal("expected error for unknown template")
	}
}

func TestRender_AnonymousNavShowsAdminLogin(t *testing.T) {
	r := newTestRenderer(t, nil)
	rec := httptest.NewRecorder()
	_ = r.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), "pages/home", TemplateData{})

	// Without a visitor the session is anonymous with no admin; the
	// first-admin path is offered instead of the login link.
	if strings.Contains(rec.Body.String(), "/admin/login") {
		t.Errorf("admin login link should be hidden when no admin exists: %q", rec.Body.String())
	}
}

func TestFlash_RoundTrip(t *testing.T) {
	sm := scs.New()
	r := newTestRenderer(t, sm)

	set := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.SetFlash(req, "Booking updated", FlashSuccess)
	})
	rec := httptest.NewRecorder()
	sm.LoadAndSave(set).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/bookings/1", nil))
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("session cookie not set")
	}

	show := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.Page(w, req, "pages/home", TemplateData{})
	})
	for i, want := range []bool{true, false} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		rec = httptest.NewRecorder()
		sm.LoadAndSave(show).ServeHTTP(rec, req)
		got := strings.Contains(rec.Body.String(), `<div class="flash success">Booking updated</div>`)
		if got != want {
			t.Errorf("request %d: flash shown = %v, want %v", i, got, want)
		}
	}
}

func TestErrorPage(t *testing.T) {
	r := newTestRenderer(t, nil)
	rec := httptest.NewRecorder()
	r.ErrorPage(rec, httptest.NewRequest(http.MethodGet, "/x", nil), http.StatusBadGateway, "Backend unavailable")

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<p>Backend unavailable</p>") {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestLoading(t *testing.T) {
	r := newTestRenderer(t, nil)
	rec := httptest.NewRecorder()
	r.Loading().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Retry-After missing")
	}
	if !strings.Contains(rec.Body.String(), "Loading") {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestTemplateFuncs_Present(t *testing.T) {
	funcs := (&Renderer{}).TemplateFuncs()

	for _, name := range []string{
		"lower", "upper", "truncate", "join", "add", "sub", "seq",
		"formatDate", "formatDateTime", "formatISODate", "timeAgo",
		"formatNumber", "price", "priceInput", "markdown", "deref",
		"isActive", "withQuery", "statusClass", "dict",
	} {
		if _, ok := funcs[name]; !ok {
			t.Errorf("TemplateFuncs missing function: %s", name)
		}
	}
}

func TestTemplateFuncs_FormatDate(t *testing.T) {
	funcs := (&Renderer{}).TemplateFuncs()

	formatDate := funcs["formatDate"].(func(time.Time) string)
	testTime := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	if got := formatDate(testTime); got != "Mar 15, 2025" {
		t.Errorf("formatDate() = %q, want %q", got, "Mar 15, 2025")
	}
	if got := formatDate(time.Time{}); got != "" {
		t.Errorf("formatDate(zero) = %q, want empty", got)
	}
}

func TestTemplateFuncs_Price(t *testing.T) {
	r := &Renderer{currency: "Ksh"}
	price := r.TemplateFuncs()["price"].(func(model.Service) string)

	minPrice := 5000.0
	if got := price(model.Service{PriceMin: &minPrice}); got != "From Ksh 5,000" {
		t.Errorf("price() = %q, want %q", got, "From Ksh 5,000")
	}
}

func TestTemplateFuncs_Truncate(t *testing.T) {
	truncate := (&Renderer{}).TemplateFuncs()["truncate"].(func(string, int) string)

	if got := truncate("Harambee", 4); got != "Hara..." {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("Ñandú", 10); got != "Ñandú" {
		t.Errorf("truncate() = %q", got)
	}
}

func TestTemplateFuncs_IsActive(t *testing.T) {
	isActive := (&Renderer{}).TemplateFuncs()["isActive"].(func(string, nav.Link, []nav.Link) bool)
	bookings := nav.Link{Label: "All Bookings", Path: nav.PathAdminBookings}

	if !isActive("/admin/bookings", bookings, nav.AdminLinks) {
		t.Error("exact path should be active")
	}
	if isActive("/admin/bookings/pending", bookings, nav.AdminLinks) {
		t.Error("a more specific link should win")
	}
}

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
		absent   string
	}{
		{"emphasis", "A **full day** shoot", "<strong>full day</strong>", ""},
		{"script stripped", "Hi <script>alert(1)</script>", "Hi", "<script>"},
		{"javascript link stripped", "[x](javascript:alert(1))", "x", "javascript:"},
		{"empty", "  ", "", "<p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(Markdown(tt.input))
			if tt.contains != "" && !strings.Contains(got, tt.contains) {
				t.Errorf("Markdown(%q) = %q, want it to contain %q", tt.input, got, tt.contains)
			}
			if tt.absent != "" && strings.Contains(got, tt.absent) {
				t.Errorf("Markdown(%q) = %q, must not contain %q", tt.input, got, tt.absent)
			}
		})
	}
}
