// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/studio-site/internal/apiclient"
	"github.com/olegiv/studio-site/internal/middleware"
	"github.com/olegiv/studio-site/internal/render"
)

// testTemplates is a minimal template set exposing the fields the handlers
// put into TemplateData.
func testTemplates() fstest.MapFS {
	page := func(body string) *fstest.MapFile {
		return &fstest.MapFile{Data: []byte(`{{define "content"}}` + body + `{{end}}`)}
	}
	return fstest.MapFS{
		"layouts/base.html":  {Data: []byte(`{{define "base"}}<title>{{.Title}}</title>{{if .Flash}}<p class="flash">{{.Flash}}</p>{{end}}{{block "main" .}}{{template "content" .}}{{end}}{{end}}`)},
		"layouts/admin.html": {Data: []byte(`{{define "main"}}<aside>admin</aside>{{template "content" .}}{{end}}`)},

		"pages/home.html":         page(`home {{len .Data.Featured}} featured`),
		"pages/services.html":     page(`{{range .Data.Services}}<li>{{.Title}}</li>{{end}}{{with .Data.Error}}<p class="error">{{.}}</p>{{end}}`),
		"pages/portfolio.html":    page(`{{range .Data.Items}}<li>{{.Title}}</li>{{end}}`),
		"pages/about.html":        page(`about`),
		"pages/brands.html":       page(`brands`),
		"pages/school.html":       page(`school`),
		"pages/form.html":         page(`<form action="{{.Data.Action}}">{{with .Data.Error}}<p class="error">{{.}}</p>{{end}}{{range $k, $v := .Data.Form.Errors}}<p class="field-error">{{$k}}: {{$v}}</p>{{end}}</form>`),
		"pages/form_success.html": page(`<p>{{.Data.Message}}</p><p class="ref">{{.Data.Reference}}</p>`),
		"pages/error.html":        page(`<p>{{.Data}}</p>`),
		"pages/loading.html":      page(`Loading`),
		"auth/login.html":         page(`<form>{{with .Data.Error}}<p class="error">{{.}}</p>{{end}}<input name="email" value="{{.Data.Email}}"></form>`),
		"auth/register.html":      page(`<form>{{with .Data.Error}}<p class="error">{{.}}</p>{{end}}</form>`),
		"admin/dashboard.html":    page(`{{with .Data.StatsError}}<p class="stats-error">{{.}}</p>{{end}}<p class="stats">{{.Data.Stats.Total}} total</p>{{range .Data.RecentBookings}}<li>{{.ClientName}}</li>{{end}}<p class="inquiries">{{.Data.InquiryTotal}} inquiries</p>`),
		"admin/bookings.html":     page(`<h1>{{.Data.Heading}}</h1>{{with .Data.StatsError}}<p class="stats-error">{{.}}</p>{{end}}<p class="stats">{{.Data.Stats.Total}} total, {{.Data.Stats.Pending}} pending</p>{{range .Data.Bookings}}<li>{{.ClientName}}</li>{{end}}{{with .Data.Error}}<p class="error">{{.}}</p>{{end}}{{if .Data.Pagination.HasNext}}<a rel="next" href="{{.Data.Pagination.NextURL}}">next</a>{{end}}`),
		"admin/calendar.html":     page(`<h1>{{.Data.Month.Format "January 2006"}}</h1>{{range .Data.Weeks}}{{range .}}{{range .Bookings}}<li>{{.ClientName}}</li>{{end}}{{end}}{{end}}{{with .Data.Error}}<p class="error">{{.}}</p>{{end}}`),
		"admin/booking_edit.html": page(`<h1>{{.Title}}</h1><p>{{.Data.Booking.ClientName}}</p>{{range .Data.Users}}<option>{{.Email}}</option>{{end}}`),
		"admin/services.html":     page(`{{range .Data.Services}}<li>{{.Title}}</li>{{end}}<p class="total">{{.Data.Total}} services</p>{{with .Data.Error}}<p class="error">{{.}} <a href="{{$.Data.RetryURL}}">Try Again</a></p>{{end}}`),
		"admin/service_form.html": page(`{{range $k, $v := .Data.Errors}}<p class="field-error">{{$k}}: {{$v}}</p>{{end}}<input name="slug" value="{{.Data.Input.Slug}}"><textarea name="features">{{.Data.FeaturesText}}</textarea>`),
		"admin/inquiries.html":    page(`{{range .Data.Inquiries}}<li>{{.Name}} {{.Kind}}</li>{{end}}`),
		"admin/inquiry.html":      page(`<h1>{{.Data.Name}}</h1>{{range .Data.Fields}}<dt>{{.Label}}</dt><dd>{{.Value}}</dd>{{end}}`),
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testSessionManager creates an in-memory session manager for testing.
func testSessionManager(t *testing.T) *scs.SessionManager {
	t.Helper()
	sm := scs.New()
	sm.Lifetime = 24 * time.Hour
	return sm
}

func newTestRenderer(t *testing.T, sm *scs.SessionManager) *render.Renderer {
	t.Helper()
	r, err := render.New(render.Config{TemplatesFS: testTemplates(), SessionManager: sm})
	if err != nil {
		t.Fatalf("render.New() error = %v", err)
	}
	return r
}

// fakeBackend is a scripted studio API. Unscripted routes answer 404.
type fakeBackend struct {
	mu      sync.Mutex
	routes  map[string]http.HandlerFunc
	hits    map[string]int
	queries map[string]url.Values
}

func newFakeBackend(t *testing.T) (*fakeBackend, *apiclient.Client) {
	t.Helper()
	fb := &fakeBackend{
		routes: map[string]http.HandlerFunc{
			"GET /api/auth/me":          jsonReply(http.StatusUnauthorized, map[string]string{"message": "Not authenticated"}),
			"GET /api/auth/check-admin": jsonReply(http.StatusOK, map[string]bool{"admin_exists": true}),
		},
		hits:    make(map[string]int),
		queries: make(map[string]url.Values),
	}
	srv := httptest.NewServer(fb)
	t.Cleanup(srv.Close)
	return fb, apiclient.New(srv.URL+"/api", srv.Client())
}

func (fb *fakeBackend) handle(route string, h http.HandlerFunc) {
	fb.mu.Lock()
	fb.routes[route] = h
	fb.mu.Unlock()
}

func (fb *fakeBackend) count(route string) int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.hits[route]
}

// query returns the query string of the last request to route.
func (fb *fakeBackend) query(route string) url.Values {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.queries[route]
}

func (fb *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route := r.Method + " " + r.URL.Path
	fb.mu.Lock()
	h, ok := fb.routes[route]
	fb.hits[route]++
	fb.queries[route] = r.URL.Query()
	fb.mu.Unlock()
	if !ok {
		jsonReply(http.StatusNotFound, map[string]string{"message": "Not found"})(w, r)
		return
	}
	h(w, r)
}

// capture answers route with status and reply and records the last request body.
func (fb *fakeBackend) capture(route string, status int, reply any) func() []byte {
	var (
		mu   sync.Mutex
		last []byte
	)
	fb.handle(route, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		last = body
		mu.Unlock()
		jsonReply(status, reply)(w, r)
	})
	return func() []byte {
		mu.Lock()
		defer mu.Unlock()
		return last
	}
}

func jsonReply(status int, body any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}

// withVisitor wraps h in the session middleware chain used by the router.
func withVisitor(sm *scs.SessionManager, api *apiclient.Client, h http.Handler) http.Handler {
	return sm.LoadAndSave(middleware.LoadSession(middleware.SessionLoader{
		Sessions: sm,
		API:      api,
		Logger:   quietLogger(),
	})(h))
}

// requestWithURLParams adds chi URL parameters to a request.
func requestWithURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// requestWithSession wraps a request with session context.
func requestWithSession(sm *scs.SessionManager, r *http.Request) *http.Request {
	ctx, err := sm.Load(r.Context(), "")
	if err != nil {
		return r
	}
	return r.WithContext(ctx)
}

// assertStatus checks if the response status code matches the expected value.
func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status = %d; want %d", got, want)
	}
}
