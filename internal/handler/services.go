// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/olegiv/studio-site/internal/apiclient"
	"github.com/olegiv/studio-site/internal/cache"
	"github.com/olegiv/studio-site/internal/forms"
	"github.com/olegiv/studio-site/internal/listing"
	"github.com/olegiv/studio-site/internal/model"
	"github.com/olegiv/studio-site/internal/nav"
	"github.com/olegiv/studio-site/internal/render"
	"github.com/olegiv/studio-site/internal/util"
)

// Service messages.
const (
	ServiceCreatedMessage = "Service created successfully"
	ServiceUpdatedMessage = "Service updated successfully"
	ServiceDeletedMessage = "Service deleted successfully"
	ServiceNotFound       = "Service not found"
)

// AdminServicesData holds data for the admin services list template.
type AdminServicesData struct {
	Services   []model.Service
	Total      int
	Filters    listing.ServiceFilters
	Categories []string
	SortFields []listing.SortField
	Error      string
	RetryURL   string
}

// ServiceFormData holds data for the service form template.
type ServiceFormData struct {
	ID           int64
	IsEdit       bool
	Input        model.ServiceInput
	FeaturesText string
	Categories   []string
	Errors       forms.Errors
	Action       string
}

func serviceURL(id int64) string {
	return fmt.Sprintf("%s/%d", nav.PathAdminServices, id)
}

func (h *AdminHandler) categories(r *http.Request) []string {
	categories, err := cache.Load(r.Context(), h.cache, cache.KeyServiceCategories, visitorAPI(r, h.api).ServiceCategories)
	if err != nil {
		slog.Debug("service categories unavailable", "error", err)
	}
	return categories
}

// invalidateServices drops every cached services query after a mutation.
func (h *AdminHandler) invalidateServices(r *http.Request) {
	h.cache.Invalidate(r.Context(), cache.PrefixServices)
	slog.Debug(LogCacheInvalidation, "prefix", cache.PrefixServices)
}

// Services renders the admin services list with client-side filters.
func (h *AdminHandler) Services(w http.ResponseWriter, r *http.Request) {
	filters := listing.ParseServiceFilters(r.URL.Query())
	data := AdminServicesData{
		Filters:    filters,
		Categories: h.categories(r),
		SortFields: listing.SortFields,
		RetryURL:   r.URL.RequestURI(),
	}

	services, err := visitorAPI(r, h.api).ListAdminServices(r.Context())
	if err != nil {
		slog.Error(LogBackendFailed, "path", r.URL.Path, "error", err)
		data.Error = apiclient.Message(err, "Services could not be loaded.")
	}
	data.Total = len(services)
	data.Services = listing.FilterServices(services, filters)

	h.renderer.Page(w, r, TemplateAdminServices, render.TemplateData{
		Title: "Services",
		Data:  data,
	})
}

func (h *AdminHandler) renderServiceForm(w http.ResponseWriter, r *http.Request, status int, data ServiceFormData) {
	data.Categories = h.categories(r)
	if data.FeaturesText == "" {
		data.FeaturesText = strings.Join(data.Input.Features, "\n")
	}
	title := "New Service"
	if data.IsEdit {
		title = "Edit Service"
	}
	if err := h.renderer.RenderStatus(w, r, status, TemplateServiceForm, render.TemplateData{Title: title, Data: data}); err != nil {
		slog.Error(LogRenderFailed, "template", TemplateServiceForm, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// NewService renders the empty service form.
func (h *AdminHandler) NewService(w http.ResponseWriter, r *http.Request) {
	h.renderServiceForm(w, r, http.StatusOK, ServiceFormData{
		Input:  model.ServiceInput{IsActive: true},
		Errors: make(forms.Errors),
		Action: nav.PathAdminServices,
	})
}

// ParseServiceForm reads and validates the service form.
func ParseServiceForm(form url.Values) (model.ServiceInput, forms.Errors) {
	errs := make(forms.Errors)
	in := model.ServiceInput{
		Category:     forms.Clean(form.Get("category")),
		Title:        forms.Clean(form.Get("title")),
		Slug:         strings.ToLower(strings.TrimSpace(form.Get("slug"))),
		Description:  strings.TrimSpace(form.Get("description")),
		PriceDisplay: forms.Clean(form.Get("price_display")),
		IsActive:     form.Get("is_active") != "",
		IsFeatured:   form.Get("is_featured") != "",
		IconName:     forms.Clean(form.Get("icon_name")),
	}

	if in.Title == "" {
		errs.Add("title", "Title is required")
	} else if utf8.RuneCountInString(in.Title) > forms.MaxTextLen {
		errs.Add("title", "Title is too long")
	}
	if in.Category == "" {
		errs.Add("category", "Category is required")
	}
	if utf8.RuneCountInString(in.Description) > forms.MaxMultilineLen {
		errs.Add("description", "Description is too long")
	}
	if in.Slug != "" && !util.IsValidSlug(in.Slug) {
		errs.Add("slug", "Slug may contain only lowercase letters, numbers and single hyphens")
	}

	in.PriceMin = parsePriceField(form, "price_min", "Minimum price", errs)
	in.PriceMax = parsePriceField(form, "price_max", "Maximum price", errs)
	if in.PriceMin != nil && in.PriceMax != nil && *in.PriceMin > *in.PriceMax {
		errs.Add("price_max", "Maximum price must not be below the minimum price")
	}

	if raw := strings.TrimSpace(form.Get("display_order")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			errs.Add("display_order", "Display order must be a whole number")
		}
		in.DisplayOrder = n
	}

	in.Features = []string{}
	for line := range strings.SplitSeq(form.Get("features"), "\n") {
		if f := forms.Clean(line); f != "" {
			in.Features = append(in.Features, f)
		}
	}

	return in, errs
}

func parsePriceField(form url.Values, name, label string, errs forms.Errors) *float64 {
	raw := strings.TrimSpace(strings.ReplaceAll(form.Get(name), ",", ""))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		errs.Add(name, label+" must be a positive number")
		return nil
	}
	return &v
}

// assignSlug fills in a unique slug derived from the title when none was
// given. selfID is skipped when checking for collisions.
func (h *AdminHandler) assignSlug(r *http.Request, in *model.ServiceInput, selfID int64) {
	services, err := visitorAPI(r, h.api).ListAdminServices(r.Context())
	if err != nil {
		slog.Debug("slug collision check skipped", "error", err)
	}
	taken := make(map[string]bool, len(services))
	for _, s := range services {
		if s.ID != selfID {
			taken[s.Slug] = true
		}
	}

	base := in.Slug
	if base == "" {
		base = util.Slugify(in.Title)
	}
	if base == "" {
		base = "service"
	}
	in.Slug = util.UniqueSlug(base, func(s string) bool { return taken[s] })
}

// CreateService handles the new service form.
func (h *AdminHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, nav.PathAdminNewService) {
		return
	}

	in, errs := ParseServiceForm(r.PostForm)
	if errs.Any() {
		h.renderServiceForm(w, r, http.StatusUnprocessableEntity, ServiceFormData{
			Input:        in,
			FeaturesText: r.PostForm.Get("features"),
			Errors:       errs,
			Action:       nav.PathAdminServices,
		})
		return
	}
	h.assignSlug(r, &in, 0)

	if err := visitorAPI(r, h.api).CreateService(r.Context(), in); err != nil {
		slog.Error(LogBackendFailed, "path", r.URL.Path, "error", err)
		errs.Add("form", apiclient.Message(err, "Service could not be created."))
		h.renderServiceForm(w, r, http.StatusBadGateway, ServiceFormData{
			Input:        in,
			FeaturesText: r.PostForm.Get("features"),
			Errors:       errs,
			Action:       nav.PathAdminServices,
		})
		return
	}

	h.invalidateServices(r)
	slog.Info("service created", "category", model.EventCategoryService, "slug", in.Slug, "created_by", currentUserID(r))
	flashSuccess(w, r, h.renderer, nav.PathAdminServices, ServiceCreatedMessage)
}

// EditService renders the service form for an existing service.
func (h *AdminHandler) EditService(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, nav.PathAdminServices, "Invalid service ID")
		return
	}

	svc, err := visitorAPI(r, h.api).GetService(r.Context(), id)
	if err != nil {
		if apiclient.IsStatus(err, http.StatusNotFound) {
			flashError(w, r, h.renderer, nav.PathAdminServices, ServiceNotFound)
			return
		}
		backendError(w, r, h.renderer, nav.PathAdminServices, "Service could not be loaded.", err)
		return
	}

	h.renderServiceForm(w, r, http.StatusOK, ServiceFormData{
		ID:     id,
		IsEdit: true,
		Input:  svc.Input(),
		Errors: make(forms.Errors),
		Action: serviceURL(id),
	})
}

// UpdateService handles the edit service form.
func (h *AdminHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, nav.PathAdminServices, "Invalid service ID")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, serviceURL(id)) {
		return
	}

	in, errs := ParseServiceForm(r.PostForm)
	formData := ServiceFormData{
		ID:           id,
		IsEdit:       true,
		Input:        in,
		FeaturesText: r.PostForm.Get("features"),
		Errors:       errs,
		Action:       serviceURL(id),
	}
	if errs.Any() {
		h.renderServiceForm(w, r, http.StatusUnprocessableEntity, formData)
		return
	}
	h.assignSlug(r, &in, id)

	if err := visitorAPI(r, h.api).UpdateService(r.Context(), id, in); err != nil {
		slog.Error(LogBackendFailed, "path", r.URL.Path, "error", err)
		errs.Add("form", apiclient.Message(err, "Service could not be updated."))
		formData.Input = in
		h.renderServiceForm(w, r, http.StatusBadGateway, formData)
		return
	}

	h.invalidateServices(r)
	slog.Info("service updated", "category", model.EventCategoryService, "service_id", id, "updated_by", currentUserID(r))
	flashSuccess(w, r, h.renderer, nav.PathAdminServices, ServiceUpdatedMessage)
}

// DeleteService deletes a service.
func (h *AdminHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, nav.PathAdminServices, "Invalid service ID")
		return
	}

	if err := visitorAPI(r, h.api).DeleteService(r.Context(), id); err != nil {
		backendError(w, r, h.renderer, nav.PathAdminServices, "Service could not be deleted.", err)
		return
	}

	h.invalidateServices(r)
	slog.Info("service deleted", "category", model.EventCategoryService, "service_id", id, "deleted_by", currentUserID(r))
	flashSuccess(w, r, h.renderer, nav.PathAdminServices, ServiceDeletedMessage)
}
