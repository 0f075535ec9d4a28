// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/studio-site/internal/apiclient"
	"github.com/olegiv/studio-site/internal/cache"
	"github.com/olegiv/studio-site/internal/listing"
	"github.com/olegiv/studio-site/internal/model"
	"github.com/olegiv/studio-site/internal/render"
	"github.com/olegiv/studio-site/internal/store"
)

// AdminHandler handles the admin panel pages.
type AdminHandler struct {
	renderer *render.Renderer
	queries  *store.Queries
	api      *apiclient.Client
	cache    *cache.QueryCache
	perPage  int
	now      func() time.Time
}

// AdminConfig holds AdminHandler dependencies.
type AdminConfig struct {
	Renderer *render.Renderer
	Queries  *store.Queries
	API      *apiclient.Client
	Cache    *cache.QueryCache
	PerPage  int
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(cfg AdminConfig) *AdminHandler {
	perPage := cfg.PerPage
	if perPage < 1 || perPage > listing.MaxPerPage {
		perPage = listing.DefaultPerPage
	}
	return &AdminHandler{
		renderer: cfg.Renderer,
		queries:  cfg.Queries,
		api:      cfg.API,
		cache:    cfg.Cache,
		perPage:  perPage,
		now:      time.Now,
	}
}

// DashboardData holds data for the dashboard template.
type DashboardData struct {
	Stats          model.BookingStats
	StatsError     string
	RecentBookings []model.Booking
	InquiryCounts  map[model.InquiryKind]int64
	InquiryTotal   int64
	RecentEvents   []store.Event
}

// Dashboard renders the admin dashboard.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	api := visitorAPI(r, h.api)
	data := DashboardData{InquiryCounts: make(map[model.InquiryKind]int64)}

	stats, err := api.BookingStats(ctx)
	if err != nil {
		slog.Error(LogBackendFailed, "path", r.URL.Path, "error", err)
		data.StatsError = apiclient.Message(err, "Booking statistics could not be loaded.")
	}
	data.Stats = stats

	recent, err := api.ListBookings(ctx, apiclient.BookingQuery{Page: 1, PerPage: DashboardRecentBookings})
	if err != nil {
		slog.Warn("recent bookings unavailable", "error", err)
	}
	data.RecentBookings = recent.Items

	counts, err := h.queries.CountInquiriesByKind(ctx)
	if err != nil {
		slog.Error(LogDatabaseFailed, "query", "CountInquiriesByKind", "error", err)
	}
	for _, c := range counts {
		data.InquiryCounts[model.InquiryKind(c.Kind)] = c.Count
		data.InquiryTotal += c.Count
	}

	events, err := h.queries.ListRecentEvents(ctx, DashboardRecentEvents)
	if err != nil {
		slog.Error(LogDatabaseFailed, "query", "ListRecentEvents", "error", err)
	}
	data.RecentEvents = events

	h.renderer.Page(w, r, TemplateDashboard, render.TemplateData{
		Title: "Dashboard",
		Data:  data,
	})
}

// bookingStatuses returns the backend's status list, cached, falling back
// to the built-in statuses.
func (h *AdminHandler) bookingStatuses(r *http.Request) []model.BookingStatus {
	statuses, err := cache.Load(r.Context(), h.cache, cache.KeyBookingStatuses, visitorAPI(r, h.api).BookingStatuses)
	if err != nil || len(statuses) == 0 {
		if err != nil {
			slog.Debug("booking statuses unavailable", "error", err)
		}
		return model.DefaultBookingStatuses
	}
	return statuses
}

// staff returns the assignable users. Failures yield an empty list.
func (h *AdminHandler) staff(r *http.Request) []model.User {
	users, err := visitorAPI(r, h.api).ListUsers(r.Context())
	if err != nil {
		slog.Debug("users unavailable", "error", err)
		return nil
	}
	return users
}
