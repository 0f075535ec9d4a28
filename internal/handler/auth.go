// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/studio-site/internal/apiclient"
	"github.com/olegiv/studio-site/internal/auth"
	"github.com/olegiv/studio-site/internal/forms"
	"github.com/olegiv/studio-site/internal/middleware"
	"github.com/olegiv/studio-site/internal/model"
	"github.com/olegiv/studio-site/internal/nav"
	"github.com/olegiv/studio-site/internal/render"
)

// Auth page messages.
const (
	AdminExistsMessage = "An admin account already exists. Please sign in."
	SignedOutMessage   = "You have been signed out."
)

// AuthHandler handles admin login, first-admin registration and logout.
type AuthHandler struct {
	renderer        *render.Renderer
	sessionManager  *scs.SessionManager
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(renderer *render.Renderer, sm *scs.SessionManager, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		renderer:        renderer,
		sessionManager:  sm,
		loginProtection: lp,
	}
}

// LoginData holds data for the login page.
type LoginData struct {
	Email string
	Next  string
	Error string
}

// RegisterData holds data for the first-admin registration page.
type RegisterData struct {
	FullName string
	Email    string
	Error    string
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, data LoginData) {
	if err := h.renderer.RenderStatus(w, r, status, TemplateLogin, render.TemplateData{Title: "Admin Login", Data: data}); err != nil {
		slog.Error(LogRenderFailed, "template", TemplateLogin, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *AuthHandler) renderRegister(w http.ResponseWriter, r *http.Request, status int, data RegisterData) {
	if err := h.renderer.RenderStatus(w, r, status, TemplateRegister, render.TemplateData{Title: "Create Admin Account", Data: data}); err != nil {
		slog.Error(LogRenderFailed, "template", TemplateRegister, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// LoginForm renders the login page.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, r, http.StatusOK, LoginData{Next: r.URL.Query().Get("next")})
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, http.StatusBadRequest, LoginData{Error: "Invalid form data"})
		return
	}

	f := forms.ParseLogin(r.PostForm)
	data := LoginData{Email: f.Email, Next: f.Next}

	if err := f.Validate(); err != nil {
		data.Error = err.Error()
		h.renderLogin(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	ip := middleware.GetClientIP(r)
	if h.loginProtection != nil {
		if !h.loginProtection.CheckIPRateLimit(ip) {
			slog.Warn("login rate limit exceeded", "category", model.EventCategoryAuth, "ip", ip)
			data.Error = middleware.LoginRateLimitMessage
			h.renderLogin(w, r, http.StatusTooManyRequests, data)
			return
		}
		if locked, remaining := h.loginProtection.IsAccountLocked(f.Email); locked {
			slog.Warn("login attempt on locked account", "category", model.EventCategoryAuth, "email", f.Email, "ip", ip)
			data.Error = lockedMessage(remaining)
			h.renderLogin(w, r, http.StatusTooManyRequests, data)
			return
		}
	}

	v := middleware.GetVisitor(r)
	if v == nil {
		slog.Error("login without visitor session", "path", r.URL.Path)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := v.Auth.Login(r.Context(), f.Email, f.Password); err != nil {
		h.loginFailed(w, r, data, ip, err)
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(f.Email)
	}
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		slog.Error("failed to renew session token", "error", err)
	}

	user := v.Auth.Snapshot().CurrentUser
	slog.Info("user logged in", "category", model.EventCategoryAuth, "user_id", user.ID, "role", user.Role.String(), "ip", ip)
	http.Redirect(w, r, SafeRedirect(f.Next, nav.PathAdminDashboard), http.StatusSeeOther)
}

// loginFailed renders the rejection. Only credential rejections count
// toward the account lockout; an unreachable backend does not.
func (h *AuthHandler) loginFailed(w http.ResponseWriter, r *http.Request, data LoginData, ip string, err error) {
	var authErr *auth.Error
	data.Error = auth.LoginFailedMessage
	if errors.As(err, &authErr) {
		data.Error = authErr.Message
	}

	rejected := apiclient.IsStatus(err, http.StatusUnauthorized) || apiclient.IsStatus(err, http.StatusForbidden) || apiclient.IsStatus(err, http.StatusBadRequest)
	if !rejected {
		slog.Error(LogBackendFailed, "path", r.URL.Path, "error", err)
		data.Error = apiclient.Message(err, data.Error)
		h.renderLogin(w, r, http.StatusBadGateway, data)
		return
	}

	slog.Warn("login failed", "category", model.EventCategoryAuth, "email", data.Email, "ip", ip)
	if h.loginProtection != nil {
		if locked, lockDuration := h.loginProtection.RecordFailedAttempt(data.Email); locked {
			slog.Warn("account locked due to failed attempts", "category", model.EventCategoryAuth, "email", data.Email, "duration", lockDuration.String())
			data.Error = lockedMessage(lockDuration)
		} else if remaining := h.loginProtection.RemainingAttempts(data.Email); remaining > 0 && remaining <= 3 {
			data.Error = fmt.Sprintf("%s (%d attempts remaining)", data.Error, remaining)
		}
	}
	h.renderLogin(w, r, http.StatusUnauthorized, data)
}

func lockedMessage(d time.Duration) string {
	return "Too many failed login attempts. Please try again in " + formatDuration(d) + "."
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	case d < time.Hour:
		if m := int(d.Minutes()); m != 1 {
			return fmt.Sprintf("%d minutes", m)
		}
		return "1 minute"
	default:
		if hr := int(d.Hours()); hr != 1 {
			return fmt.Sprintf("%d hours", hr)
		}
		return "1 hour"
	}
}

// RegisterForm renders the first-admin registration page. Once an admin
// exists the visitor is sent to the login page instead.
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	if middleware.GetSession(r).AdminExists == auth.True {
		flashAndRedirect(w, r, h.renderer, nav.PathAdminLogin, AdminExistsMessage, render.FlashInfo)
		return
	}
	h.renderRegister(w, r, http.StatusOK, RegisterData{})
}

// Register handles the first-admin registration form.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderRegister(w, r, http.StatusBadRequest, RegisterData{Error: "Invalid form data"})
		return
	}

	f := forms.ParseRegisterFirstAdmin(r.PostForm)
	data := RegisterData{FullName: f.FullName, Email: f.Email}

	if err := f.Validate(); err != nil {
		data.Error = err.Error()
		h.renderRegister(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	v := middleware.GetVisitor(r)
	if v == nil {
		slog.Error("registration without visitor session", "path", r.URL.Path)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := v.Auth.RegisterFirstAdmin(r.Context(), f.Email, f.Password, f.FullName); err != nil {
		slog.Warn("first admin registration failed", "category", model.EventCategoryAuth, "email", f.Email, "error", err)
		data.Error = err.Error()
		h.renderRegister(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		slog.Error("failed to renew session token", "error", err)
	}
	slog.Info("first admin registered", "category", model.EventCategoryAuth, "email", f.Email)
	flashSuccess(w, r, h.renderer, nav.PathAdminDashboard, "Welcome, "+f.FullName+"! Your admin account is ready.")
}

// Logout ends the backend session and drops the relayed cookies.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if v := middleware.GetVisitor(r); v != nil {
		v.Auth.Logout(r.Context())
		v.Jar.Clear()
	}
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		slog.Error("failed to renew session token", "error", err)
	}
	flashSuccess(w, r, h.renderer, nav.PathHome, SignedOutMessage)
}
