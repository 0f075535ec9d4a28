// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/olegiv/studio-site/internal/apiclient"
	"github.com/olegiv/studio-site/internal/forms"
	"github.com/olegiv/studio-site/internal/listing"
	"github.com/olegiv/studio-site/internal/model"
	"github.com/olegiv/studio-site/internal/nav"
	"github.com/olegiv/studio-site/internal/render"
)

// Booking messages.
const (
	BookingUpdatedMessage = "Booking updated successfully"
	BookingDeletedMessage = "Booking deleted successfully"
	BookingNotFound       = "Booking not found"
)

// BookingsData holds data for the bookings list template.
type BookingsData struct {
	Heading      string
	BasePath     string
	Preset       model.BookingStatus
	Bookings     []model.Booking
	Filters      listing.BookingFilters
	Pagination   listing.Pagination
	PerPage      int
	PerPageOpts  []int
	Statuses     []model.BookingStatus
	ServiceTypes []string
	Users        []model.User
	Stats        model.BookingStats
	StatsError   string
	Error        string
	ReturnURL    string
}

// BookingPreset is a bookings list fixed to one status.
type BookingPreset struct {
	Heading string
	Path    string
	Status  model.BookingStatus
}

// Booking list presets.
var (
	AllBookings       = BookingPreset{Heading: "All Bookings", Path: nav.PathAdminBookings}
	PendingBookings   = BookingPreset{Heading: "Pending Bookings", Path: nav.PathAdminPending, Status: model.BookingPending}
	ConfirmedBookings = BookingPreset{Heading: "Confirmed Bookings", Path: nav.PathAdminConfirmed, Status: model.BookingConfirmed}
)

// Bookings returns the list handler of preset. Filters are sent to the
// backend and applied again to the returned page.
func (h *AdminHandler) Bookings(preset BookingPreset) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filters := listing.ParseBookingFilters(q)
		if preset.Status != "" {
			filters.Status = string(preset.Status)
		}
		page := listing.ParsePage(q, h.perPage)

		data := BookingsData{
			Heading:      preset.Heading,
			BasePath:     preset.Path,
			Preset:       preset.Status,
			Filters:      filters,
			PerPage:      page.PerPage,
			PerPageOpts:  listing.PerPageOptions,
			Statuses:     h.bookingStatuses(r),
			ServiceTypes: forms.ServiceTypes,
			Users:        h.staff(r),
			ReturnURL:    r.URL.RequestURI(),
		}

		api := visitorAPI(r, h.api)
		stats, err := api.BookingStats(r.Context())
		if err != nil {
			slog.Error(LogBackendFailed, "path", r.URL.Path, "error", err)
			data.StatsError = apiclient.Message(err, "Booking statistics could not be loaded.")
		}
		data.Stats = stats

		res, err := api.ListBookings(r.Context(), apiclient.BookingQuery{
			Page:    page.Page,
			PerPage: page.PerPage,
			Filters: filters.Query(),
		})
		if err != nil {
			slog.Error(LogBackendFailed, "path", r.URL.Path, "error", err)
			data.Error = apiclient.Message(err, "Bookings could not be loaded.")
		}
		data.Bookings = listing.FilterBookings(res.Items, filters)

		linkQuery := filters.Query()
		if preset.Status != "" {
			linkQuery.Del(listing.ParamStatus)
		}
		if page.PerPage != h.perPage {
			linkQuery.Set("per_page", strconv.Itoa(page.PerPage))
		}
		data.Pagination = listing.BuildPagination(res.Page, res.TotalPages, res.TotalItems, preset.Path, linkQuery)

		h.renderer.Page(w, r, TemplateBookings, render.TemplateData{
			Title: preset.Heading,
			Data:  data,
		})
	}
}

// CalendarData holds data for the bookings calendar template.
type CalendarData struct {
	Month     time.Time
	PrevMonth string
	NextMonth string
	Weeks     [][]listing.Day
	Weekdays  []string
	Error     string
}

// Calendar renders one month of bookings. Bookings without a valid date
// are left out.
func (h *AdminHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	month := listing.ParseMonth(r.URL.Query().Get("month"), now)
	last := month.AddDate(0, 1, -1)

	filters := listing.BookingFilters{
		DateFrom: month.Format(model.DateLayout),
		DateTo:   last.Format(model.DateLayout),
	}
	data := CalendarData{
		Month:     month,
		PrevMonth: month.AddDate(0, -1, 0).Format("2006-01"),
		NextMonth: month.AddDate(0, 1, 0).Format("2006-01"),
		Weekdays:  []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
	}

	res, err := visitorAPI(r, h.api).ListBookings(r.Context(), apiclient.BookingQuery{
		Page:    1,
		PerPage: listing.MaxPerPage,
		Filters: filters.Query(),
	})
	if err != nil {
		slog.Error(LogBackendFailed, "path", r.URL.Path, "error", err)
		data.Error = apiclient.Message(err, "Bookings could not be loaded.")
	}
	data.Weeks = listing.MonthGrid(month, now, listing.FilterBookings(res.Items, filters))

	h.renderer.Page(w, r, TemplateCalendar, render.TemplateData{
		Title: "Booking Calendar",
		Data:  data,
	})
}

// BookingEditData holds data for the booking edit template.
type BookingEditData struct {
	Booking  *model.Booking
	Statuses []model.BookingStatus
	Users    []model.User
	Error    string
}

func bookingURL(id int64) string {
	return fmt.Sprintf("%s/%d", nav.PathAdminBookings, id)
}

// EditBooking renders the booking detail and edit form.
func (h *AdminHandler) EditBooking(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, nav.PathAdminBookings, "Invalid booking ID")
		return
	}

	b, err := visitorAPI(r, h.api).GetBooking(r.Context(), id)
	if err != nil {
		if apiclient.IsStatus(err, http.StatusNotFound) {
			flashError(w, r, h.renderer, nav.PathAdminBookings, BookingNotFound)
			return
		}
		backendError(w, r, h.renderer, nav.PathAdminBookings, "Booking could not be loaded.", err)
		return
	}

	h.renderer.Page(w, r, TemplateBookingEdit, render.TemplateData{
		Title: "Booking #" + strconv.FormatInt(b.ID, 10),
		Data: BookingEditData{
			Booking:  b,
			Statuses: h.bookingStatuses(r),
			Users:    h.staff(r),
		},
	})
}

// ParseBookingUpdate reads the booking edit form.
func ParseBookingUpdate(form url.Values, statuses []model.BookingStatus) (model.BookingUpdate, error) {
	upd := model.BookingUpdate{
		Status:        model.ParseBookingStatus(form.Get("status")),
		InternalNotes: forms.Clean(form.Get("internal_notes")),
		PreferredDate: strings.TrimSpace(form.Get("preferred_date")),
		PreferredTime: strings.TrimSpace(form.Get("preferred_time")),
		Location:      forms.Clean(form.Get("location")),
	}
	if upd.Status == "" || !slices.Contains(statuses, upd.Status) {
		return upd, forms.Error("Choose a valid status")
	}
	if upd.PreferredDate != "" {
		if _, err := time.Parse(model.DateLayout, upd.PreferredDate); err != nil {
			return upd, forms.Error("Please enter a valid date")
		}
	}
	if upd.PreferredTime != "" {
		if _, err := time.Parse("15:04", upd.PreferredTime); err != nil {
			return upd, forms.Error("Please enter a valid time")
		}
	}
	if raw := strings.TrimSpace(form.Get("assigned_to")); raw != "" && raw != listing.Unassigned {
		uid, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || uid <= 0 {
			return upd, forms.Error("Choose a valid staff member")
		}
		upd.AssignedTo = &uid
	}
	return upd, nil
}

// UpdateBooking saves the booking edit form.
func (h *AdminHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, nav.PathAdminBookings, "Invalid booking ID")
		return
	}
	redirectURL := bookingURL(id)

	if !parseFormOrRedirect(w, r, h.renderer, redirectURL) {
		return
	}

	upd, err := ParseBookingUpdate(r.PostForm, h.bookingStatuses(r))
	if err != nil {
		flashError(w, r, h.renderer, redirectURL, err.Error())
		return
	}

	if err := visitorAPI(r, h.api).UpdateBooking(r.Context(), id, upd); err != nil {
		backendError(w, r, h.renderer, redirectURL, "Booking could not be updated.", err)
		return
	}

	slog.Info("booking updated", "category", model.EventCategoryBooking, "booking_id", id, "status", upd.Status, "updated_by", currentUserID(r))
	flashSuccess(w, r, h.renderer, redirectURL, BookingUpdatedMessage)
}

// DeleteBooking deletes a booking.
func (h *AdminHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, nav.PathAdminBookings, "Invalid booking ID")
		return
	}

	if err := visitorAPI(r, h.api).DeleteBooking(r.Context(), id); err != nil {
		backendError(w, r, h.renderer, bookingURL(id), "Booking could not be deleted.", err)
		return
	}

	slog.Info("booking deleted", "category", model.EventCategoryBooking, "booking_id", id, "deleted_by", currentUserID(r))
	flashSuccess(w, r, h.renderer, nav.PathAdminBookings, BookingDeletedMessage)
}

// BulkBookings applies one action to the selected bookings and returns to
// the list the form was posted from.
func (h *AdminHandler) BulkBookings(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, nav.PathAdminBookings) {
		return
	}
	returnURL := SafeRedirect(r.PostForm.Get("return"), nav.PathAdminBookings)

	req, err := listing.ParseBulkAction(r.PostForm)
	if err != nil {
		var formErr listing.FormError
		if errors.As(err, &formErr) {
			flashError(w, r, h.renderer, returnURL, formErr.Error())
			return
		}
		flashError(w, r, h.renderer, returnURL, "Invalid bulk action")
		return
	}

	if err := visitorAPI(r, h.api).BulkAction(r.Context(), req); err != nil {
		backendError(w, r, h.renderer, returnURL, "Bulk action failed.", err)
		return
	}

	n := len(req.BookingIDs)
	slog.Info("bulk booking action", "category", model.EventCategoryBooking, "action", req.Action, "count", n, "user_id", currentUserID(r))
	flashSuccess(w, r, h.renderer, returnURL, bulkMessage(req.Action, n))
}

func bulkMessage(action model.BulkAction, n int) string {
	noun := "bookings"
	if n == 1 {
		noun = "booking"
	}
	switch action {
	case model.BulkDelete:
		return fmt.Sprintf("Deleted %d %s", n, noun)
	case model.BulkAssign:
		return fmt.Sprintf("Assigned %d %s", n, noun)
	default:
		return fmt.Sprintf("Updated %d %s", n, noun)
	}
}
