// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package listing filters, sorts and paginates the admin bookings and
// services lists. Every function is pure: the source slice is never modified.
package listing

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// All is the sentinel value of a categorical filter that selects everything.
const All = "all"

// Predicate reports whether an item passes one filter.
type Predicate[T any] func(T) bool

// Apply returns the items of source that satisfy every predicate, sorted
// stably by cmp when cmp is non-nil. The result is a new slice.
func Apply[T any](source []T, preds []Predicate[T], cmp func(a, b T) int) []T {
	out := make([]T, 0, len(source))
	for _, item := range source {
		if matchesAll(item, preds) {
			out = append(out, item)
		}
	}
	if cmp != nil {
		slices.SortStableFunc(out, cmp)
	}
	return out
}

func matchesAll[T any](item T, preds []Predicate[T]) bool {
	for _, p := range preds {
		if !p(item) {
			return false
		}
	}
	return true
}

// containsFold reports whether any field contains needle, ignoring case.
// needle must already be lower-cased.
func containsFold(needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// isAll reports whether a categorical filter value passes everything.
func isAll(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, All)
}

// Page parameter defaults.
const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// PerPageOptions are the selectable page sizes.
var PerPageOptions = []int{10, 20, 50, 100}

// PageParams is the requested page of a server-paginated list.
type PageParams struct {
	Page    int
	PerPage int
}

// ParsePage reads page and per_page from the query string. Invalid values
// fall back to page 1 and defaultPerPage.
func ParsePage(q url.Values, defaultPerPage int) PageParams {
	if defaultPerPage < 1 || defaultPerPage > MaxPerPage {
		defaultPerPage = DefaultPerPage
	}
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(q.Get("per_page"))
	if err != nil || !slices.Contains(PerPageOptions, perPage) {
		perPage = defaultPerPage
	}
	return PageParams{Page: page, PerPage: perPage}
}
