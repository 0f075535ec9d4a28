// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/studio-site/internal/apiclient"
	"github.com/olegiv/studio-site/internal/cache"
	"github.com/olegiv/studio-site/internal/listing"
	"github.com/olegiv/studio-site/internal/model"
	"github.com/olegiv/studio-site/internal/nav"
	"github.com/olegiv/studio-site/internal/render"
)

// FeaturedOnHome is how many featured services the home page shows.
const FeaturedOnHome = 3

// FrontendHandler handles the public marketing pages.
type FrontendHandler struct {
	renderer *render.Renderer
	api      *apiclient.Client
	cache    *cache.QueryCache
}

// NewFrontendHandler creates a new FrontendHandler.
func NewFrontendHandler(renderer *render.Renderer, api *apiclient.Client, qc *cache.QueryCache) *FrontendHandler {
	return &FrontendHandler{
		renderer: renderer,
		api:      api,
		cache:    qc,
	}
}

// HomeData holds data for the home page.
type HomeData struct {
	Featured []model.Service
	Gallery  []GalleryItem
}

// ServicesData holds data for the public services page.
type ServicesData struct {
	Services   []model.Service
	Categories []string
	Category   string
	Error      string
}

// PortfolioData holds data for the portfolio page.
type PortfolioData struct {
	Items      []GalleryItem
	Categories []string
	Category   string
}

// publicServices returns the active public services through the query cache.
func (h *FrontendHandler) publicServices(r *http.Request) ([]model.Service, error) {
	services, err := cache.Load(r.Context(), h.cache, cache.KeyPublicServices, h.api.ListPublicServices)
	if err != nil {
		return nil, err
	}
	return listing.FilterServices(services, listing.ServiceFilters{Status: listing.StatusActive}), nil
}

// Home renders the landing page.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	services, err := h.publicServices(r)
	if err != nil {
		slog.Warn("home page services unavailable", "error", err)
	}

	var featured []model.Service
	for _, s := range services {
		if s.IsFeatured {
			featured = append(featured, s)
		}
		if len(featured) == FeaturedOnHome {
			break
		}
	}

	h.renderer.Page(w, r, TemplateHome, render.TemplateData{
		Title: "Photography & Videography Studio",
		Data: HomeData{
			Featured: featured,
			Gallery:  Gallery[:min(len(Gallery), 6)],
		},
	})
}

// Services renders the public services list, optionally narrowed to one
// category.
func (h *FrontendHandler) Services(w http.ResponseWriter, r *http.Request) {
	data := ServicesData{Category: r.URL.Query().Get("category")}

	services, err := h.publicServices(r)
	if err != nil {
		slog.Error(LogBackendFailed, "path", r.URL.Path, "error", err)
		data.Error = apiclient.Message(err, "Services could not be loaded. Please try again.")
	}
	data.Services = listing.FilterServices(services, listing.ServiceFilters{Category: data.Category})

	categories, err := cache.Load(r.Context(), h.cache, cache.KeyServiceCategories, h.api.ServiceCategories)
	if err != nil {
		slog.Warn("service categories unavailable", "error", err)
	}
	data.Categories = categories

	h.renderer.Page(w, r, TemplateServices, render.TemplateData{
		Title: "Our Services",
		Data:  data,
	})
}

// Portfolio renders the gallery, optionally narrowed to one category.
func (h *FrontendHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	h.renderer.Page(w, r, TemplatePortfolio, render.TemplateData{
		Title: "Portfolio",
		Data: PortfolioData{
			Items:      FilterGallery(category),
			Categories: PortfolioCategories,
			Category:   category,
		},
	})
}

// About renders the about page.
func (h *FrontendHandler) About(w http.ResponseWriter, r *http.Request) {
	h.renderer.Page(w, r, TemplateAbout, render.TemplateData{
		Title: "About Us",
		Data:  Team,
	})
}

// Brands renders the client brands page.
func (h *FrontendHandler) Brands(w http.ResponseWriter, r *http.Request) {
	h.renderer.Page(w, r, TemplateBrands, render.TemplateData{
		Title: "Brands We Work With",
		Data:  Brands,
	})
}

// School renders the photography school page.
func (h *FrontendHandler) School(w http.ResponseWriter, r *http.Request) {
	h.renderer.Page(w, r, TemplateSchool, render.TemplateData{
		Title: "Photography School",
		Data:  SchoolCourses,
	})
}

// NotFound sends unknown paths to the home page.
func (h *FrontendHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, nav.PathHome, http.StatusSeeOther)
}
