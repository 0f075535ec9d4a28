// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package nav holds the site's route table and decides which header
// actions a visitor sees.
package nav

import (
	"strings"

	"github.com/olegiv/studio-site/internal/auth"
	"github.com/olegiv/studio-site/internal/model"
)

// Actions are the header call-to-action buttons.
type Actions struct {
	RegisterFirstAdmin bool
	AdminLogin         bool
	Dashboard          bool
}

// Compute derives the visible actions from a session snapshot.
// AdminLogin stays visible while admin existence is still unknown.
func Compute(s auth.Session) Actions {
	return Actions{
		RegisterFirstAdmin: !s.IsLoading && !s.Authenticated() && s.AdminExists == auth.False,
		AdminLogin:         !s.IsLoading && s.AdminExists != auth.False,
		Dashboard:          s.Authenticated() && s.CurrentUser.Role == model.RoleAdmin,
	}
}

// Link is one navigation entry.
type Link struct {
	Label string
	Path  string
}

// Public site paths.
const (
	PathHome       = "/"
	PathServices   = "/services"
	PathPortfolio  = "/portfolio"
	PathBooking    = "/booking"
	PathContact    = "/contact"
	PathAbout      = "/about"
	PathSchool     = "/school"
	PathEnrollment = "/enrollment"
	PathQuote      = "/quote"
	PathBrands     = "/brands"
)

// Admin paths.
const (
	PathAdminLogin      = "/admin/login"
	PathAdminRegister   = "/admin/register"
	PathAdminLogout     = "/admin/logout"
	PathAdminDashboard  = "/admin/dashboard"
	PathAdminBookings   = "/admin/bookings"
	PathAdminPending    = "/admin/bookings/pending"
	PathAdminConfirmed  = "/admin/bookings/confirmed"
	PathAdminCalendar   = "/admin/bookings/calendar"
	PathAdminServices   = "/admin/services"
	PathAdminNewService = "/admin/services/new"
	PathAdminBulkAction = "/admin/bookings/bulk"
	PathAdminInquiries  = "/admin/inquiries"
)

// PublicLinks is the main site menu.
var PublicLinks = []Link{
	{"Home", PathHome},
	{"Services", PathServices},
	{"Portfolio", PathPortfolio},
	{"School", PathSchool},
	{"Brands", PathBrands},
	{"About", PathAbout},
	{"Contact", PathContact},
}

// AdminLinks is the admin sidebar.
var AdminLinks = []Link{
	{"Dashboard", PathAdminDashboard},
	{"All Bookings", PathAdminBookings},
	{"Pending", PathAdminPending},
	{"Confirmed", PathAdminConfirmed},
	{"Calendar", PathAdminCalendar},
	{"Services", PathAdminServices},
	{"Inquiries", PathAdminInquiries},
}

// IsActive reports whether link should be highlighted for the current path.
// Home only matches exactly; other links also match their sub-paths unless a
// more specific link in links matches.
func IsActive(current string, link Link, links []Link) bool {
	if current == link.Path {
		return true
	}
	if link.Path == PathHome || !strings.HasPrefix(current, link.Path+"/") {
		return false
	}
	for _, other := range links {
		if other.Path != link.Path && len(other.Path) > len(link.Path) &&
			(current == other.Path || strings.HasPrefix(current, other.Path+"/")) {
			return false
		}
	}
	return true
}
