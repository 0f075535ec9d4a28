// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/olegiv/studio-site/internal/model"
)

// BookingQuery selects one page of the admin bookings list.
// Filters are passed through as query parameters.
type BookingQuery struct {
	Page    int
	PerPage int
	Filters url.Values
}

func (q BookingQuery) values() url.Values {
	v := url.Values{}
	for key, vals := range q.Filters {
		for _, val := range vals {
			if val != "" {
				v.Add(key, val)
			}
		}
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(q.PerPage))
	}
	return v
}

// BookingPage is one server-side page of bookings.
type BookingPage struct {
	Items      []model.Booking
	Page       int
	TotalPages int
	TotalItems int
}

// ListBookings fetches a page of bookings.
func (c *Client) ListBookings(ctx context.Context, q BookingQuery) (BookingPage, error) {
	body, err := c.do(ctx, http.MethodGet, "/admin/bookings", q.values(), nil)
	if err != nil {
		return BookingPage{}, err
	}

	var page BookingPage
	if err := decodeField(body, "bookings", &page.Items); err != nil {
		return BookingPage{}, err
	}
	page.Page = int(firstInt(body, "current_page", "page"))
	if page.Page < 1 {
		page.Page = max(q.Page, 1)
	}
	page.TotalPages = int(firstInt(body, "pages", "total_pages"))
	page.TotalItems = int(firstInt(body, "total", "total_items"))
	if page.TotalItems == 0 {
		page.TotalItems = len(page.Items)
	}
	if page.TotalPages < 1 {
		page.TotalPages = 1
	}
	return page, nil
}

// BookingStats fetches dashboard aggregates.
func (c *Client) BookingStats(ctx context.Context) (model.BookingStats, error) {
	var stats model.BookingStats
	body, err := c.do(ctx, http.MethodGet, "/admin/bookings/stats", nil, nil)
	if err != nil {
		return stats, err
	}
	if err := decodeField(body, "stats", &stats); err != nil {
		return stats, err
	}
	return stats, nil
}

// BulkAction applies one action to several bookings in a single call.
func (c *Client) BulkAction(ctx context.Context, req model.BulkRequest) error {
	_, err := c.do(ctx, http.MethodPost, "/admin/bookings/bulk-action", nil, req)
	return err
}

// GetBooking fetches one booking.
func (c *Client) GetBooking(ctx context.Context, id int64) (*model.Booking, error) {
	body, err := c.do(ctx, http.MethodGet, bookingPath(id), nil, nil)
	if err != nil {
		return nil, err
	}
	var b model.Booking
	if err := decodeField(body, "booking", &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateBooking changes status, assignment and notes of one booking.
func (c *Client) UpdateBooking(ctx context.Context, id int64, upd model.BookingUpdate) error {
	_, err := c.do(ctx, http.MethodPut, bookingPath(id), nil, upd)
	return err
}

// DeleteBooking removes one booking.
func (c *Client) DeleteBooking(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, bookingPath(id), nil, nil)
	return err
}

// CreateBooking submits the public booking form.
func (c *Client) CreateBooking(ctx context.Context, nb model.NewBooking) (*model.Booking, error) {
	body, err := c.do(ctx, http.MethodPost, "/bookings", nil, nb)
	if err != nil {
		return nil, err
	}
	var b model.Booking
	// A 201 may carry only a message; the created record is optional.
	if len(body) > 0 && gjson.ValidBytes(body) {
		_ = decodeField(body, "booking", &b)
	}
	return &b, nil
}

// BookingStatuses fetches the status enum.
func (c *Client) BookingStatuses(ctx context.Context) ([]model.BookingStatus, error) {
	body, err := c.do(ctx, http.MethodGet, "/booking-statuses", nil, nil)
	if err != nil {
		return nil, err
	}
	raw := stringList(body, "statuses")
	statuses := make([]model.BookingStatus, 0, len(raw))
	for _, s := range raw {
		statuses = append(statuses, model.ParseBookingStatus(s))
	}
	return statuses, nil
}

func bookingPath(id int64) string {
	return fmt.Sprintf("/bookings/%d", id)
}

func firstInt(body []byte, keys ...string) int64 {
	for _, k := range keys {
		if v := gjson.GetBytes(body, k); v.Exists() && v.Type == gjson.Number {
			return v.Int()
		}
	}
	return 0
}
