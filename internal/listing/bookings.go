// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package listing

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/olegiv/studio-site/internal/model"
)

// Unassigned selects bookings with no staff member assigned.
const Unassigned = "unassigned"

// Query parameter names shared by the admin pages and the backend.
const (
	ParamSearch      = "search"
	ParamStatus      = "status"
	ParamServiceType = "service_type"
	ParamAssignedTo  = "assigned_to"
	ParamDateFrom    = "date_from"
	ParamDateTo      = "date_to"
)

// BookingFilters is the filter state of the bookings list.
type BookingFilters struct {
	Search      string
	Status      string
	ServiceType string
	AssignedTo  string // all, unassigned or a user ID
	DateFrom    string // inclusive ISO date
	DateTo      string // inclusive ISO date
}

// ParseBookingFilters reads the filter state from the query string.
// Malformed dates are dropped.
func ParseBookingFilters(q url.Values) BookingFilters {
	return BookingFilters{
		Search:      strings.TrimSpace(q.Get(ParamSearch)),
		Status:      normalizeStatus(q.Get(ParamStatus)),
		ServiceType: normalizeCategory(q.Get(ParamServiceType)),
		AssignedTo:  normalizeAssignee(q.Get(ParamAssignedTo)),
		DateFrom:    isoDate(q.Get(ParamDateFrom)),
		DateTo:      isoDate(q.Get(ParamDateTo)),
	}
}

func normalizeCategory(s string) string {
	if isAll(s) {
		return ""
	}
	return strings.TrimSpace(s)
}

func normalizeStatus(s string) string {
	if isAll(s) {
		return ""
	}
	return string(model.ParseBookingStatus(s))
}

func normalizeAssignee(s string) string {
	s = strings.TrimSpace(s)
	switch {
	case isAll(s):
		return ""
	case strings.EqualFold(s, Unassigned):
		return Unassigned
	}
	if _, err := strconv.ParseInt(s, 10, 64); err != nil {
		return ""
	}
	return s
}

func isoDate(s string) string {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(model.DateLayout, s); err != nil {
		return ""
	}
	return s
}

// Active reports whether any filter narrows the list.
func (f BookingFilters) Active() bool {
	return len(f.Predicates()) > 0
}

// Query encodes the active filters as query parameters. The same values
// are sent to the backend and used in page links.
func (f BookingFilters) Query() url.Values {
	q := url.Values{}
	set := func(key, val string) {
		if !isAll(val) {
			q.Set(key, val)
		}
	}
	set(ParamSearch, f.Search)
	set(ParamStatus, f.Status)
	set(ParamServiceType, f.ServiceType)
	set(ParamAssignedTo, f.AssignedTo)
	set(ParamDateFrom, f.DateFrom)
	set(ParamDateTo, f.DateTo)
	return q
}

// Predicates returns one predicate per active filter.
func (f BookingFilters) Predicates() []Predicate[model.Booking] {
	var preds []Predicate[model.Booking]

	if needle := strings.ToLower(strings.TrimSpace(f.Search)); needle != "" {
		preds = append(preds, func(b model.Booking) bool {
			return containsFold(needle, b.ClientName, b.ClientEmail, b.ClientPhone)
		})
	}
	if !isAll(f.Status) {
		status := model.ParseBookingStatus(f.Status)
		preds = append(preds, func(b model.Booking) bool {
			return model.ParseBookingStatus(string(b.Status)) == status
		})
	}
	if !isAll(f.ServiceType) {
		serviceType := strings.TrimSpace(f.ServiceType)
		preds = append(preds, func(b model.Booking) bool {
			return strings.EqualFold(b.ServiceType, serviceType)
		})
	}
	if !isAll(f.AssignedTo) {
		preds = append(preds, assigneePredicate(f.AssignedTo))
	}
	if f.DateFrom != "" {
		from := f.DateFrom
		preds = append(preds, func(b model.Booking) bool {
			key := b.DateKey()
			return key != "" && key >= from
		})
	}
	if f.DateTo != "" {
		to := f.DateTo
		preds = append(preds, func(b model.Booking) bool {
			key := b.DateKey()
			return key != "" && key <= to
		})
	}
	return preds
}

func assigneePredicate(v string) Predicate[model.Booking] {
	if strings.EqualFold(v, Unassigned) {
		return func(b model.Booking) bool { return b.AssignedTo == nil }
	}
	id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return func(model.Booking) bool { return false }
	}
	return func(b model.Booking) bool { return b.AssignedTo != nil && *b.AssignedTo == id }
}

// FilterBookings applies f to source, keeping source order.
func FilterBookings(source []model.Booking, f BookingFilters) []model.Booking {
	return Apply(source, f.Predicates(), nil)
}
