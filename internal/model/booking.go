// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"strings"
	"time"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

// Booking statuses known to the site. The backend may list more.
const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

// DefaultBookingStatuses is used when the backend status list is unavailable.
var DefaultBookingStatuses = []BookingStatus{
	BookingPending,
	BookingConfirmed,
	BookingCancelled,
	BookingCompleted,
}

// ParseBookingStatus normalizes a status string.
func ParseBookingStatus(s string) BookingStatus {
	return BookingStatus(strings.ToUpper(strings.TrimSpace(s)))
}

// Label returns the status in title case.
func (s BookingStatus) Label() string {
	if s == "" {
		return ""
	}
	lower := strings.ToLower(string(s))
	return strings.ToUpper(lower[:1]) + lower[1:]
}

// DateLayout is the ISO layout of PreferredDate.
const DateLayout = "2006-01-02"

// Booking is a client booking request owned by the backend.
type Booking struct {
	ID              int64         `json:"id"`
	ClientName      string        `json:"client_name"`
	ClientEmail     string        `json:"client_email"`
	ClientPhone     string        `json:"client_phone"`
	ServiceType     string        `json:"service_type"`
	PreferredDate   string        `json:"preferred_date"`
	PreferredTime   string        `json:"preferred_time,omitempty"`
	Location        string        `json:"location,omitempty"`
	BudgetRange     string        `json:"budget_range,omitempty"`
	AdditionalNotes string        `json:"additional_notes,omitempty"`
	Status          BookingStatus `json:"status"`
	AssignedTo      *int64        `json:"assigned_to,omitempty"`
	InternalNotes   string        `json:"internal_notes,omitempty"`
	CreatedAt       Timestamp     `json:"created_at"`
	UpdatedAt       Timestamp     `json:"updated_at"`
	ConfirmedAt     Timestamp     `json:"confirmed_at"`
	CompletedAt     Timestamp     `json:"completed_at"`
}

// Date returns the preferred date parsed, or the zero time if malformed.
// Backends sometimes send a full timestamp, so only the date part is read.
func (b Booking) Date() time.Time {
	s := b.PreferredDate
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// DateKey returns the ISO date used for range comparisons and grouping.
func (b Booking) DateKey() string {
	if len(b.PreferredDate) > len(DateLayout) {
		return b.PreferredDate[:len(DateLayout)]
	}
	return b.PreferredDate
}

// IsAssigned reports whether a staff member has been assigned.
func (b Booking) IsAssigned() bool {
	return b.AssignedTo != nil
}

// BookingStats holds dashboard aggregate counts.
type BookingStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Cancelled int `json:"cancelled"`
	Completed int `json:"completed"`
	ThisMonth int `json:"this_month"`
}

// BookingUpdate is the payload of a single booking update.
type BookingUpdate struct {
	Status        BookingStatus `json:"status,omitempty"`
	AssignedTo    *int64        `json:"assigned_to"`
	InternalNotes string        `json:"internal_notes"`
	PreferredDate string        `json:"preferred_date,omitempty"`
	PreferredTime string        `json:"preferred_time,omitempty"`
	Location      string        `json:"location,omitempty"`
}

// NewBooking is the payload of the public booking form.
type NewBooking struct {
	ClientName      string `json:"client_name"`
	ClientEmail     string `json:"client_email"`
	ClientPhone     string `json:"client_phone"`
	ServiceType     string `json:"service_type"`
	PreferredDate   string `json:"preferred_date"`
	PreferredTime   string `json:"preferred_time,omitempty"`
	Location        string `json:"location,omitempty"`
	BudgetRange     string `json:"budget_range,omitempty"`
	AdditionalNotes string `json:"additional_notes,omitempty"`
}

// BulkAction names an operation applied to several bookings at once.
type BulkAction string

// Bulk actions accepted by the backend.
const (
	BulkUpdateStatus BulkAction = "update_status"
	BulkAssign       BulkAction = "assign"
	BulkDelete       BulkAction = "delete"
)

// BulkRequest is the payload of a bulk booking action.
type BulkRequest struct {
	BookingIDs []int64       `json:"booking_ids"`
	Action     BulkAction    `json:"action"`
	Status     BookingStatus `json:"status,omitempty"`
	AssignedTo *int64        `json:"assigned_to,omitempty"`
}
