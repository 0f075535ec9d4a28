// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/studio-site/internal/listing"
	"github.com/olegiv/studio-site/internal/model"
	"github.com/olegiv/studio-site/internal/nav"
	"github.com/olegiv/studio-site/internal/render"
	"github.com/olegiv/studio-site/internal/store"
)

// Inquiry messages.
const (
	InquiryDeletedMessage = "Inquiry deleted"
	InquiryNotFound       = "Inquiry not found"
)

// InquiriesData holds data for the inquiries list template.
type InquiriesData struct {
	Inquiries  []model.Inquiry
	Kinds      []model.InquiryKind
	Kind       model.InquiryKind
	Pagination listing.Pagination
}

// Inquiries lists stored quote, enrollment and contact submissions.
func (h *AdminHandler) Inquiries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var kind model.InquiryKind
	for _, k := range model.InquiryKinds {
		if q.Get("kind") == string(k) {
			kind = k
		}
	}
	page := listing.ParsePage(q, InquiriesPerPage)

	total, err := h.queries.CountInquiries(r.Context(), string(kind))
	if err != nil {
		slog.Error(LogDatabaseFailed, "query", "CountInquiries", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	totalPages := int((total + int64(page.PerPage) - 1) / int64(page.PerPage))
	current := max(1, min(page.Page, totalPages))

	rows, err := h.queries.ListInquiries(r.Context(), store.ListInquiriesParams{
		Kind:   string(kind),
		Limit:  int64(page.PerPage),
		Offset: int64((current - 1) * page.PerPage),
	})
	if err != nil {
		slog.Error(LogDatabaseFailed, "query", "ListInquiries", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	inquiries := make([]model.Inquiry, 0, len(rows))
	for _, row := range rows {
		inquiries = append(inquiries, inquiryFromRow(row))
	}

	linkQuery := url.Values{}
	if kind != "" {
		linkQuery.Set("kind", string(kind))
	}

	h.renderer.Page(w, r, TemplateInquiries, render.TemplateData{
		Title: "Inquiries",
		Data: InquiriesData{
			Inquiries:  inquiries,
			Kinds:      model.InquiryKinds,
			Kind:       kind,
			Pagination: listing.BuildPagination(current, totalPages, int(total), nav.PathAdminInquiries, linkQuery),
		},
	})
}

// Inquiry renders one stored submission.
func (h *AdminHandler) Inquiry(w http.ResponseWriter, r *http.Request) {
	row, err := h.queries.GetInquiry(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			flashError(w, r, h.renderer, nav.PathAdminInquiries, InquiryNotFound)
			return
		}
		slog.Error(LogDatabaseFailed, "query", "GetInquiry", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	inq := inquiryFromRow(row)
	h.renderer.Page(w, r, TemplateInquiry, render.TemplateData{
		Title: "Inquiry from " + inq.Name,
		Data:  inq,
	})
}

// DeleteInquiry deletes a stored submission.
func (h *AdminHandler) DeleteInquiry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.queries.DeleteInquiry(r.Context(), id); err != nil {
		slog.Error(LogDatabaseFailed, "query", "DeleteInquiry", "error", err)
		flashError(w, r, h.renderer, nav.PathAdminInquiries, "Inquiry could not be deleted")
		return
	}
	slog.Info("inquiry deleted", "category", model.EventCategoryInquiry, "inquiry_id", id, "deleted_by", currentUserID(r))
	flashSuccess(w, r, h.renderer, nav.PathAdminInquiries, InquiryDeletedMessage)
}
