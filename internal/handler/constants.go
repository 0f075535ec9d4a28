// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"
	// RouteSuffixEdit is the suffix for edit routes.
	RouteSuffixEdit = "/edit"
	// RouteSuffixDelete is the suffix for delete routes.
	RouteSuffixDelete = "/delete"
	// RouteSuffixNew is the suffix for "new" routes.
	RouteSuffixNew = "/new"

	// RouteHealth is the health check route.
	RouteHealth = "/health"
	// RouteTheme toggles the color theme.
	RouteTheme = "/theme"
	// RouteStatic serves embedded assets.
	RouteStatic = "/static/*"
)

// Template names.
const (
	TemplateHome          = "pages/home"
	TemplateServices      = "pages/services"
	TemplatePortfolio     = "pages/portfolio"
	TemplateAbout         = "pages/about"
	TemplateBrands        = "pages/brands"
	TemplateSchool        = "pages/school"
	TemplateForm          = "pages/form"
	TemplateFormSuccess   = "pages/form_success"
	TemplateLogin         = "auth/login"
	TemplateRegister      = "auth/register"
	TemplateDashboard     = "admin/dashboard"
	TemplateBookings      = "admin/bookings"
	TemplateCalendar      = "admin/calendar"
	TemplateBookingEdit   = "admin/booking_edit"
	TemplateAdminServices = "admin/services"
	TemplateServiceForm   = "admin/service_form"
	TemplateInquiries     = "admin/inquiries"
	TemplateInquiry       = "admin/inquiry"
)

// Log message constants.
const (
	LogRenderFailed      = "render failed"
	LogBackendFailed     = "backend request failed"
	LogDatabaseFailed    = "database query failed"
	LogCacheInvalidation = "cache invalidated"
)

// Dashboard limits.
const (
	DashboardRecentBookings = 5
	DashboardRecentEvents   = 10
	InquiriesPerPage        = 20
)
