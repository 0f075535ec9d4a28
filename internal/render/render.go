// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render renders the site's html/template pages.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/studio-site/internal/auth"
	"github.com/olegiv/studio-site/internal/middleware"
	"github.com/olegiv/studio-site/internal/model"
	"github.com/olegiv/studio-site/internal/nav"
	"github.com/olegiv/studio-site/internal/theme"
)

// Session keys of the flash message.
const (
	SessionKeyFlash     = "flash"
	SessionKeyFlashType = "flash_type"
)

// Flash types.
const (
	FlashInfo    = "info"
	FlashSuccess = "success"
	FlashError   = "error"
)

const (
	baseLayout  = "layouts/base.html"
	adminLayout = "layouts/admin.html"
)

// blankLinesRegex collapses runs of blank lines left by template actions.
var blankLinesRegex = regexp.MustCompile(`(\r?\n\s*){2,}`)

// Renderer handles template rendering with caching.
type Renderer struct {
	templates      map[string]*template.Template
	sessionManager *scs.SessionManager
	isDev          bool
	currency       string
}

// Config holds renderer configuration.
type Config struct {
	TemplatesFS    fs.FS
	SessionManager *scs.SessionManager
	IsDev          bool
	Currency       string
}

// New creates a new Renderer with parsed templates.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		templates:      make(map[string]*template.Template),
		sessionManager: cfg.SessionManager,
		isDev:          cfg.IsDev,
		currency:       cfg.Currency,
	}
	if r.currency == "" {
		r.currency = model.DefaultCurrency
	}

	if err := r.parseTemplates(cfg.TemplatesFS); err != nil {
		return nil, err
	}

	return r, nil
}

// parseTemplates parses all templates from the filesystem.
// pages/ and auth/ use the base layout; admin/ adds the admin layout on top.
func (r *Renderer) parseTemplates(templatesFS fs.FS) error {
	partials, err := r.getTemplateFiles(templatesFS, "partials")
	if err != nil {
		return fmt.Errorf("getting partials: %w", err)
	}

	groups := []struct {
		dir     string
		layouts []string
	}{
		{"pages", []string{baseLayout}},
		{"auth", []string{baseLayout}},
		{"admin", []string{baseLayout, adminLayout}},
	}

	for _, g := range groups {
		pages, err := r.getTemplateFiles(templatesFS, g.dir)
		if err != nil {
			return fmt.Errorf("getting %s templates: %w", g.dir, err)
		}

		for _, tmplPath := range pages {
			name := g.dir + "/" + strings.TrimSuffix(path.Base(tmplPath), ".html")

			// Parse in order: layouts, partials, page template
			files := append([]string{}, g.layouts...)
			files = append(files, partials...)
			files = append(files, tmplPath)

			tmpl, err := template.New("").Funcs(r.TemplateFuncs()).ParseFS(templatesFS, files...)
			if err != nil {
				return fmt.Errorf("parsing template %s: %w", name, err)
			}

			r.templates[name] = tmpl
		}
	}

	return nil
}

// getTemplateFiles returns all .html files in a directory.
func (r *Renderer) getTemplateFiles(templatesFS fs.FS, dir string) ([]string, error) {
	var files []string

	entries, err := fs.ReadDir(templatesFS, dir)
	if err != nil {
		// Directory might not exist, that's ok
		return files, nil
	}

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			files = append(files, path.Join(dir, entry.Name()))
		}
	}

	return files, nil
}

// Has reports whether a template called name was parsed.
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// TemplateData holds data passed to templates.
type TemplateData struct {
	Title       string
	Data        any
	Flash       string
	FlashType   string
	CurrentYear int
	CurrentPath string
	IsDev       bool

	Session     auth.Session
	Nav         nav.Actions
	Theme       theme.Mode
	PublicLinks []nav.Link
	AdminLinks  []nav.Link
}

// User returns the signed-in user, or nil.
func (d TemplateData) User() *model.User {
	return d.Session.CurrentUser
}

// prepare fills the request-wide fields of data.
func (r *Renderer) prepare(req *http.Request, data *TemplateData) {
	data.CurrentYear = time.Now().Year()
	data.CurrentPath = req.URL.Path
	data.IsDev = r.isDev
	data.Session = middleware.GetSession(req)
	data.Nav = nav.Compute(data.Session)
	data.Theme = middleware.GetTheme(req).Mode()
	data.PublicLinks = nav.PublicLinks
	data.AdminLinks = nav.AdminLinks

	// Get flash message from session
	if r.sessionManager != nil && data.Flash == "" {
		if flash := r.sessionManager.PopString(req.Context(), SessionKeyFlash); flash != "" {
			data.Flash = flash
			data.FlashType = r.sessionManager.PopString(req.Context(), SessionKeyFlashType)
			if data.FlashType == "" {
				data.FlashType = FlashInfo
			}
		}
	}
}

// Render renders a template with the given data and status 200.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, name string, data TemplateData) error {
	return r.RenderStatus(w, req, http.StatusOK, name, data)
}

// RenderStatus renders a template with the given data and status code.
func (r *Renderer) RenderStatus(w http.ResponseWriter, req *http.Request, status int, name string, data TemplateData) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	r.prepare(req, &data)

	// Render to buffer first to catch errors
	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(blankLinesRegex.ReplaceAll(buf.Bytes(), []byte("\n")))
	return nil
}

// Page renders name and logs a failure as a 500.
func (r *Renderer) Page(w http.ResponseWriter, req *http.Request, name string, data TemplateData) {
	if err := r.Render(w, req, name, data); err != nil {
		slog.Error("render failed", "template", name, "path", req.URL.Path, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// ErrorPage renders the error page with status and message.
func (r *Renderer) ErrorPage(w http.ResponseWriter, req *http.Request, status int, message string) {
	err := r.RenderStatus(w, req, status, "pages/error", TemplateData{
		Title: http.StatusText(status),
		Data:  message,
	})
	if err != nil {
		slog.Error("render failed", "template", "pages/error", "error", err)
		http.Error(w, message, status)
	}
}

// Loading returns the placeholder shown while a visitor's session is still
// resolving. It answers 503 and asks the browser to retry shortly.
func (r *Renderer) Loading() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Retry-After", strconv.Itoa(middleware.RetryAfter))
		w.Header().Set("Cache-Control", "no-store")
		err := r.RenderStatus(w, req, http.StatusServiceUnavailable, "pages/loading", TemplateData{
			Title: "Loading",
			Data:  middleware.RetryAfter,
		})
		if err != nil {
			middleware.DefaultLoading.ServeHTTP(w, req)
		}
	})
}

// SetFlash sets a flash message in the session.
func (r *Renderer) SetFlash(req *http.Request, message, flashType string) {
	if r.sessionManager != nil {
		r.sessionManager.Put(req.Context(), SessionKeyFlash, message)
		r.sessionManager.Put(req.Context(), SessionKeyFlashType, flashType)
	}
}
