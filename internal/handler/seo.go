// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/studio-site/internal/nav"
	"github.com/olegiv/studio-site/internal/seo"
)

// Crawler routes.
const (
	RouteRobots  = "/robots.txt"
	RouteSitemap = "/sitemap.xml"
)

// SEOHandler serves robots.txt and sitemap.xml.
type SEOHandler struct {
	siteURL     string
	disallowAll bool
	frontend    *FrontendHandler
}

// NewSEOHandler creates a new SEOHandler. disallowAll blocks every crawler,
// which is used outside production.
func NewSEOHandler(siteURL string, disallowAll bool, frontend *FrontendHandler) *SEOHandler {
	return &SEOHandler{siteURL: siteURL, disallowAll: disallowAll, frontend: frontend}
}

// formPaths are the public form pages listed after the menu pages.
var formPaths = []string{nav.PathBooking, nav.PathQuote, nav.PathEnrollment}

// Robots serves robots.txt.
func (h *SEOHandler) Robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write([]byte(seo.BuildRobots(seo.RobotsConfig{
		SiteURL:     h.siteURL,
		DisallowAll: h.disallowAll,
	})))
}

// Sitemap serves sitemap.xml. The services entry carries the latest service
// update time when the backend is reachable.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	var servicesMod time.Time
	services, err := h.frontend.publicServices(r)
	if err != nil {
		slog.Debug("sitemap without service dates", "error", err)
	}
	for _, s := range services {
		if s.UpdatedAt.After(servicesMod) {
			servicesMod = s.UpdatedAt.Time
		}
	}

	b := seo.NewSitemapBuilder(h.siteURL)
	for _, link := range nav.PublicLinks {
		switch link.Path {
		case nav.PathHome:
			b.AddPath(link.Path, seo.ChangeFreqDaily, "1.0", time.Time{})
		case nav.PathServices:
			b.AddPath(link.Path, seo.ChangeFreqWeekly, "0.9", servicesMod)
		default:
			b.AddPath(link.Path, seo.ChangeFreqMonthly, "0.7", time.Time{})
		}
	}
	for _, p := range formPaths {
		b.AddPath(p, seo.ChangeFreqMonthly, "0.6", time.Time{})
	}

	data, err := b.Build()
	if err != nil {
		slog.Error("sitemap build failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(data)
}
