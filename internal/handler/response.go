// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the HTTP handlers of the public site and the
// admin panel.
package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/studio-site/internal/apiclient"
	"github.com/olegiv/studio-site/internal/middleware"
	"github.com/olegiv/studio-site/internal/render"
)

// flashAndRedirect sets a flash message and redirects to the given URL.
func flashAndRedirect(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message, messageType string) {
	renderer.SetFlash(r, message, messageType)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// flashError sets an error flash message and redirects to the given URL.
func flashError(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message string) {
	flashAndRedirect(w, r, renderer, url, message, render.FlashError)
}

// flashSuccess sets a success flash message and redirects to the given URL.
func flashSuccess(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message string) {
	flashAndRedirect(w, r, renderer, url, message, render.FlashSuccess)
}

// parseFormOrRedirect parses the request form and redirects with an error message on failure.
// Returns true if parsing succeeded, false if it failed (and redirect was performed).
func parseFormOrRedirect(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, redirectURL string) bool {
	if err := r.ParseForm(); err != nil {
		flashError(w, r, renderer, redirectURL, "Invalid form data")
		return false
	}
	return true
}

// ParseIDParam parses the "id" URL parameter as a positive int64.
func ParseIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// backendError logs a failed backend call and flashes its message.
func backendError(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, redirectURL, fallback string, err error) {
	slog.Error(LogBackendFailed, "path", r.URL.Path, "error", err)
	flashError(w, r, renderer, redirectURL, apiclient.Message(err, fallback))
}

// visitorAPI returns the backend client bound to the visitor's cookies.
func visitorAPI(r *http.Request, fallback *apiclient.Client) *apiclient.Client {
	if v := middleware.GetVisitor(r); v != nil {
		return v.API
	}
	return fallback
}

// SafeRedirect returns target when it is a local absolute path, fallback
// otherwise. Protocol-relative and backslash URLs are rejected.
func SafeRedirect(target, fallback string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.Contains(target, "\\") {
		return fallback
	}
	u, err := url.Parse(target)
	if err != nil || u.Host != "" || u.Scheme != "" {
		return fallback
	}
	return u.RequestURI()
}

// currentUserID returns the signed-in user's ID, or 0.
func currentUserID(r *http.Request) int64 {
	if u := middleware.GetUser(r); u != nil {
		return u.ID
	}
	return 0
}
