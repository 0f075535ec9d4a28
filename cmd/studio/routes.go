// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"database/sql"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/studio-site/internal/apiclient"
	"github.com/olegiv/studio-site/internal/cache"
	"github.com/olegiv/studio-site/internal/config"
	"github.com/olegiv/studio-site/internal/forms"
	"github.com/olegiv/studio-site/internal/handler"
	"github.com/olegiv/studio-site/internal/middleware"
	"github.com/olegiv/studio-site/internal/model"
	"github.com/olegiv/studio-site/internal/nav"
	"github.com/olegiv/studio-site/internal/render"
	"github.com/olegiv/studio-site/internal/store"
	"github.com/olegiv/studio-site/internal/version"
)

// rateLimiterMaxIPs bounds the number of tracked client IPs before the
// public limiter is reset.
const rateLimiterMaxIPs = 10000

type routerDeps struct {
	cfg      *config.Config
	version  *version.Info
	db       *sql.DB
	queries  *store.Queries
	sessions *scs.SessionManager
	cache    cache.Cache
	query    *cache.QueryCache
	api      *apiclient.Client
	renderer *render.Renderer
	static   fs.FS
	logger   *slog.Logger
}

type app struct {
	handler       http.Handler
	publicLimiter *middleware.GlobalRateLimiter
	login         *middleware.LoginProtection
}

func (a *app) close() {
	a.login.Close()
}

// registerFormRoutes registers the GET and POST routes of a public form.
func registerFormRoutes(r chi.Router, path string, show, submit http.HandlerFunc) {
	r.Get(path, show)
	r.Post(path, submit)
}

func newRouter(d routerDeps) *app {
	isDev := d.cfg.IsDevelopment()

	frontendHandler := handler.NewFrontendHandler(d.renderer, d.api, d.query)
	formsHandler := handler.NewFormsHandler(d.renderer, d.queries, d.api)
	healthHandler := handler.NewHealthHandler(d.db, d.api, d.cache, d.version.Version)
	seoHandler := handler.NewSEOHandler(d.cfg.SiteURL, isDev, frontendHandler)
	adminHandler := handler.NewAdminHandler(handler.AdminConfig{
		Renderer: d.renderer,
		Queries:  d.queries,
		API:      d.api,
		Cache:    d.query,
		PerPage:  d.cfg.BookingsPerPage,
	})

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	authHandler := handler.NewAuthHandler(d.renderer, d.sessions, loginProtection)
	publicRateLimiter := middleware.NewGlobalRateLimiter(10.0, 20)
	csrfMiddleware := middleware.CSRF(middleware.DefaultCSRFConfig([]byte(d.cfg.SessionSecret), isDev, d.cfg.ServerPort))

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(isDev)))
	r.Use(middleware.RequestPath)

	// Health, crawler files and assets skip sessions
	r.Get(handler.RouteHealth, healthHandler.Health)
	r.Get(handler.RouteRobots, seoHandler.Robots)
	r.Get(handler.RouteSitemap, seoHandler.Sitemap)
	staticHandler := http.StripPrefix("/static/dist/", http.FileServer(http.FS(d.static)))
	r.Handle("/static/dist/*", staticCache(staticHandler))

	r.Group(func(r chi.Router) {
		r.Use(publicRateLimiter.Middleware())
		r.Use(csrfMiddleware)
		r.Use(d.sessions.LoadAndSave)
		r.Use(middleware.LoadSession(middleware.SessionLoader{
			Sessions: d.sessions,
			API:      d.api,
			Logger:   d.logger,
		}))
		r.Use(middleware.Theme(!isDev))

		// Public pages
		r.Get(nav.PathHome, frontendHandler.Home)
		r.Get(nav.PathServices, frontendHandler.Services)
		r.Get(nav.PathPortfolio, frontendHandler.Portfolio)
		r.Get(nav.PathAbout, frontendHandler.About)
		r.Get(nav.PathBrands, frontendHandler.Brands)
		r.Get(nav.PathSchool, frontendHandler.School)
		r.Post(handler.RouteTheme, handler.ToggleTheme)

		registerFormRoutes(r, nav.PathBooking,
			formsHandler.Show(forms.Booking, nav.PathBooking),
			formsHandler.SubmitBooking(nav.PathBooking))
		registerFormRoutes(r, nav.PathQuote,
			formsHandler.Show(forms.Quote, nav.PathQuote),
			formsHandler.SubmitInquiry(forms.Quote, nav.PathQuote))
		registerFormRoutes(r, nav.PathEnrollment,
			formsHandler.Show(forms.Enrollment, nav.PathEnrollment),
			formsHandler.SubmitInquiry(forms.Enrollment, nav.PathEnrollment))
		registerFormRoutes(r, nav.PathContact,
			formsHandler.Show(forms.Contact, nav.PathContact),
			formsHandler.SubmitInquiry(forms.Contact, nav.PathContact))

		// Sign-in pages
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAnonymous(nav.PathAdminDashboard))
			r.Get(nav.PathAdminLogin, authHandler.LoginForm)
			r.Post(nav.PathAdminLogin, authHandler.Login) // rate limited inside the handler
			r.Get(nav.PathAdminRegister, authHandler.RegisterForm)
			r.With(loginProtection.Middleware()).Post(nav.PathAdminRegister, authHandler.Register)
		})
		r.Post(nav.PathAdminLogout, authHandler.Logout)

		// Admin panel
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRoles(d.renderer.Loading(), model.RoleAdmin))

			r.Get("/admin", func(w http.ResponseWriter, req *http.Request) {
				http.Redirect(w, req, nav.PathAdminDashboard, http.StatusSeeOther)
			})
			r.Get(nav.PathAdminDashboard, adminHandler.Dashboard)

			r.Get(nav.PathAdminBookings, adminHandler.Bookings(handler.AllBookings))
			r.Get(nav.PathAdminPending, adminHandler.Bookings(handler.PendingBookings))
			r.Get(nav.PathAdminConfirmed, adminHandler.Bookings(handler.ConfirmedBookings))
			r.Get(nav.PathAdminCalendar, adminHandler.Calendar)
			r.Post(nav.PathAdminBulkAction, adminHandler.BulkBookings)
			r.Get(nav.PathAdminBookings+handler.RouteParamID, adminHandler.EditBooking)
			r.Post(nav.PathAdminBookings+handler.RouteParamID, adminHandler.UpdateBooking)
			r.Post(nav.PathAdminBookings+handler.RouteParamID+handler.RouteSuffixDelete, adminHandler.DeleteBooking)

			r.Get(nav.PathAdminServices, adminHandler.Services)
			r.Get(nav.PathAdminNewService, adminHandler.NewService)
			r.Post(nav.PathAdminServices, adminHandler.CreateService)
			r.Get(nav.PathAdminServices+handler.RouteParamID, adminHandler.EditService)
			r.Post(nav.PathAdminServices+handler.RouteParamID, adminHandler.UpdateService)
			r.Post(nav.PathAdminServices+handler.RouteParamID+handler.RouteSuffixDelete, adminHandler.DeleteService)

			r.Get(nav.PathAdminInquiries, adminHandler.Inquiries)
			r.Get(nav.PathAdminInquiries+handler.RouteParamID, adminHandler.Inquiry)
			r.Post(nav.PathAdminInquiries+handler.RouteParamID+handler.RouteSuffixDelete, adminHandler.DeleteInquiry)
		})

		r.NotFound(frontendHandler.NotFound)
	})

	return &app{
		handler:       r,
		publicLimiter: publicRateLimiter,
		login:         loginProtection,
	}
}

// staticCache marks embedded assets cacheable for a day.
func staticCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=86400")
		next.ServeHTTP(w, r)
	})
}
