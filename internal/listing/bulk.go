// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package listing

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/olegiv/studio-site/internal/model"
)

// FormError is a validation failure whose text is shown to the user.
type FormError string

func (e FormError) Error() string { return string(e) }

// Bulk action validation errors.
const (
	ErrNoSelection   FormError = "Select at least one booking"
	ErrUnknownAction FormError = "Choose a bulk action"
	ErrNoStatus      FormError = "Choose a status for the selected bookings"
	ErrNoAssignee    FormError = "Choose a staff member for the selected bookings"
)

// ParseBulkAction builds a bulk request from the submitted list form.
// Field names: booking_ids (repeated), action, status, assigned_to.
func ParseBulkAction(form url.Values) (model.BulkRequest, error) {
	var req model.BulkRequest

	for _, raw := range form["booking_ids"] {
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil || id <= 0 || slices.Contains(req.BookingIDs, id) {
			continue
		}
		req.BookingIDs = append(req.BookingIDs, id)
	}
	if len(req.BookingIDs) == 0 {
		return req, ErrNoSelection
	}

	req.Action = model.BulkAction(strings.TrimSpace(form.Get("action")))
	switch req.Action {
	case model.BulkUpdateStatus:
		status := form.Get("status")
		if isAll(status) {
			return req, ErrNoStatus
		}
		req.Status = model.ParseBookingStatus(status)
	case model.BulkAssign:
		id, err := strconv.ParseInt(strings.TrimSpace(form.Get("assigned_to")), 10, 64)
		if err != nil || id <= 0 {
			return req, ErrNoAssignee
		}
		req.AssignedTo = &id
	case model.BulkDelete:
	default:
		return req, ErrUnknownAction
	}
	return req, nil
}
