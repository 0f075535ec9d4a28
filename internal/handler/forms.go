// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mileusna/useragent"

	"github.com/olegiv/studio-site/internal/apiclient"
	"github.com/olegiv/studio-site/internal/forms"
	"github.com/olegiv/studio-site/internal/model"
	"github.com/olegiv/studio-site/internal/render"
	"github.com/olegiv/studio-site/internal/store"
)

// Submission failure messages.
const (
	BookingFailedMessage = "Your booking could not be sent. Please try again."
	InquiryFailedMessage = "Your request could not be saved. Please try again."
)

// FormsHandler handles the public booking, quote, enrollment and contact forms.
type FormsHandler struct {
	renderer *render.Renderer
	queries  *store.Queries
	api      *apiclient.Client
	now      func() time.Time
}

// NewFormsHandler creates a new FormsHandler.
func NewFormsHandler(renderer *render.Renderer, queries *store.Queries, api *apiclient.Client) *FormsHandler {
	return &FormsHandler{
		renderer: renderer,
		queries:  queries,
		api:      api,
		now:      time.Now,
	}
}

// FormData holds data for a public form page.
type FormData struct {
	Form   *forms.Submission
	Action string
	Error  string
	MinDay string
}

// FormSuccessData holds data for the confirmation view.
type FormSuccessData struct {
	Title     string
	Message   string
	Fields    []model.Field
	Reference string
}

// Show returns a handler rendering an empty def form posting to action.
func (h *FormsHandler) Show(def *forms.Definition, action string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderForm(w, r, http.StatusOK, def.Empty(), action, "")
	}
}

func (h *FormsHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, s *forms.Submission, action, errMsg string) {
	err := h.renderer.RenderStatus(w, r, status, TemplateForm, render.TemplateData{
		Title: s.Definition.Title,
		Data: FormData{
			Form:   s,
			Action: action,
			Error:  errMsg,
			MinDay: h.now().Format(model.DateLayout),
		},
	})
	if err != nil {
		slog.Error(LogRenderFailed, "template", TemplateForm, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *FormsHandler) renderSuccess(w http.ResponseWriter, r *http.Request, s *forms.Submission, reference string) {
	h.renderer.Page(w, r, TemplateFormSuccess, render.TemplateData{
		Title: s.Definition.Title,
		Data: FormSuccessData{
			Title:     s.Definition.Title,
			Message:   s.Definition.Success,
			Fields:    s.Fields(),
			Reference: reference,
		},
	})
}

// parse reads and validates a submission, re-rendering the form when invalid.
func (h *FormsHandler) parse(w http.ResponseWriter, r *http.Request, def *forms.Definition, action string) (*forms.Submission, bool) {
	if err := r.ParseForm(); err != nil {
		h.renderForm(w, r, http.StatusBadRequest, def.Empty(), action, "Invalid form data")
		return nil, false
	}
	s := def.Parse(r.PostForm)
	if !s.Validate(h.now()) {
		h.renderForm(w, r, http.StatusUnprocessableEntity, s, action, "Please correct the highlighted fields.")
		return nil, false
	}
	return s, true
}

// SubmitBooking sends the booking form to the backend.
func (h *FormsHandler) SubmitBooking(action string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := h.parse(w, r, forms.Booking, action)
		if !ok {
			return
		}

		booking, err := visitorAPI(r, h.api).CreateBooking(r.Context(), forms.NewBooking(s))
		if err != nil {
			slog.Error(LogBackendFailed, "path", r.URL.Path, "error", err)
			h.renderForm(w, r, http.StatusBadGateway, s, action, apiclient.Message(err, BookingFailedMessage))
			return
		}

		slog.Info("booking submitted", "category", model.EventCategoryBooking, "booking_id", booking.ID, "service", s.Value("service_type"))
		var ref string
		if booking.ID > 0 {
			ref = fmt.Sprintf("#%d", booking.ID)
		}
		h.renderSuccess(w, r, s, ref)
	}
}

// SubmitInquiry stores a quote, enrollment or contact submission locally.
func (h *FormsHandler) SubmitInquiry(def *forms.Definition, action string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := h.parse(w, r, def, action)
		if !ok {
			return
		}

		inq := s.Inquiry(DeviceLabel(r.UserAgent()))
		inq.ID = uuid.NewString()
		inq.CreatedAt = h.now().UTC()

		if err := saveInquiry(r.Context(), h.queries, inq); err != nil {
			slog.Error(LogDatabaseFailed, "kind", inq.Kind, "error", err)
			h.renderForm(w, r, http.StatusInternalServerError, s, action, InquiryFailedMessage)
			return
		}

		slog.Info("inquiry received", "category", model.EventCategoryInquiry, "kind", inq.Kind, "inquiry_id", inq.ID)
		h.renderSuccess(w, r, s, strings.ToUpper(inq.ID[:8]))
	}
}

func saveInquiry(ctx context.Context, queries *store.Queries, inq model.Inquiry) error {
	fields, err := json.Marshal(inq.Fields)
	if err != nil {
		return fmt.Errorf("encoding fields: %w", err)
	}
	_, err = queries.CreateInquiry(ctx, store.CreateInquiryParams{
		ID:        inq.ID,
		Kind:      string(inq.Kind),
		Name:      inq.Name,
		Email:     inq.Email,
		Phone:     inq.Phone,
		Fields:    string(fields),
		Device:    inq.Device,
		CreatedAt: inq.CreatedAt,
	})
	return err
}

// inquiryFromRow decodes a stored inquiry. Undecodable fields are dropped.
func inquiryFromRow(row store.Inquiry) model.Inquiry {
	inq := model.Inquiry{
		ID:        row.ID,
		Kind:      model.InquiryKind(row.Kind),
		Name:      row.Name,
		Email:     row.Email,
		Phone:     row.Phone,
		Device:    row.Device,
		CreatedAt: row.CreatedAt,
	}
	if err := json.Unmarshal([]byte(row.Fields), &inq.Fields); err != nil {
		slog.Debug("undecodable inquiry fields", "inquiry_id", row.ID, "error", err)
	}
	return inq
}

// DeviceLabel summarizes a User-Agent header, e.g. "Chrome on Windows (desktop)".
func DeviceLabel(ua string) string {
	if strings.TrimSpace(ua) == "" {
		return "unknown"
	}
	parsed := useragent.Parse(ua)

	kind := "desktop"
	switch {
	case parsed.Bot:
		kind = "bot"
	case parsed.Tablet:
		kind = "tablet"
	case parsed.Mobile:
		kind = "mobile"
	}

	name := parsed.Name
	if name == "" {
		name = "Unknown browser"
	}
	if parsed.OS != "" {
		name += " on " + parsed.OS
	}
	return name + " (" + kind + ")"
}
