// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package listing

import (
	"cmp"
	"net/url"
	"strconv"
	"strings"

	"github.com/olegiv/studio-site/internal/model"
)

// SortField is a sortable services column.
type SortField string

// Service sort fields.
const (
	SortDisplayOrder SortField = "displayOrder"
	SortTitle        SortField = "title"
	SortPrice        SortField = "price"
	SortCreatedAt    SortField = "createdAt"
)

// SortFields lists the sort options in menu order.
var SortFields = []SortField{SortDisplayOrder, SortTitle, SortPrice, SortCreatedAt}

// Sort directions.
const (
	Asc  = "asc"
	Desc = "desc"
)

// Service status filter values.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// ServiceFilters is the filter and sort state of the services list.
type ServiceFilters struct {
	Search       string
	Category     string
	Status       string // all, active or inactive
	PriceMin     *float64
	PriceMax     *float64
	FeaturedOnly bool
	SortBy       SortField
	SortDir      string
}

// ParseServiceFilters reads the filter state from the query string.
func ParseServiceFilters(q url.Values) ServiceFilters {
	f := ServiceFilters{
		Search:       strings.TrimSpace(q.Get("search")),
		Category:     strings.TrimSpace(q.Get("category")),
		PriceMin:     parsePrice(q.Get("price_min")),
		PriceMax:     parsePrice(q.Get("price_max")),
		FeaturedOnly: q.Get("featured") == "1" || q.Get("featured") == "true" || q.Get("featured") == "on",
		SortBy:       SortDisplayOrder,
		SortDir:      Asc,
	}
	if isAll(f.Category) {
		f.Category = ""
	}
	switch s := strings.ToLower(strings.TrimSpace(q.Get("status"))); s {
	case StatusActive, StatusInactive:
		f.Status = s
	}
	for _, sf := range SortFields {
		if q.Get("sort") == string(sf) {
			f.SortBy = sf
		}
	}
	if q.Get("dir") == Desc {
		f.SortDir = Desc
	}
	return f
}

func parsePrice(s string) *float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

// Query encodes the filter state for links.
func (f ServiceFilters) Query() url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if !isAll(f.Category) {
		q.Set("category", f.Category)
	}
	if !isAll(f.Status) {
		q.Set("status", f.Status)
	}
	if f.PriceMin != nil {
		q.Set("price_min", strconv.FormatFloat(*f.PriceMin, 'f', -1, 64))
	}
	if f.PriceMax != nil {
		q.Set("price_max", strconv.FormatFloat(*f.PriceMax, 'f', -1, 64))
	}
	if f.FeaturedOnly {
		q.Set("featured", "1")
	}
	if f.SortBy != "" && f.SortBy != SortDisplayOrder {
		q.Set("sort", string(f.SortBy))
	}
	if f.SortDir == Desc {
		q.Set("dir", Desc)
	}
	return q
}

// Predicates returns one predicate per active filter.
func (f ServiceFilters) Predicates() []Predicate[model.Service] {
	var preds []Predicate[model.Service]

	if needle := strings.ToLower(strings.TrimSpace(f.Search)); needle != "" {
		preds = append(preds, func(s model.Service) bool {
			fields := append([]string{s.Title, s.Description, s.Category}, s.Features...)
			return containsFold(needle, fields...)
		})
	}
	if !isAll(f.Category) {
		category := strings.TrimSpace(f.Category)
		preds = append(preds, func(s model.Service) bool {
			return strings.EqualFold(s.Category, category)
		})
	}
	switch f.Status {
	case StatusActive:
		preds = append(preds, func(s model.Service) bool { return s.IsActive })
	case StatusInactive:
		preds = append(preds, func(s model.Service) bool { return !s.IsActive })
	}
	if f.PriceMin != nil {
		lo := *f.PriceMin
		preds = append(preds, func(s model.Service) bool { return s.LowerPrice() >= lo })
	}
	if f.PriceMax != nil {
		hi := *f.PriceMax
		preds = append(preds, func(s model.Service) bool { return s.UpperPrice() <= hi })
	}
	if f.FeaturedOnly {
		preds = append(preds, func(s model.Service) bool { return s.IsFeatured })
	}
	return preds
}

// Compare returns the comparator for the selected sort field and direction.
func (f ServiceFilters) Compare() func(a, b model.Service) int {
	var base func(a, b model.Service) int
	switch f.SortBy {
	case SortTitle:
		base = func(a, b model.Service) int {
			return cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		}
	case SortPrice:
		base = func(a, b model.Service) int { return cmp.Compare(a.LowerPrice(), b.LowerPrice()) }
	case SortCreatedAt:
		base = func(a, b model.Service) int { return a.CreatedAt.Compare(b.CreatedAt.Time) }
	default:
		base = func(a, b model.Service) int { return cmp.Compare(a.DisplayOrder, b.DisplayOrder) }
	}
	if f.SortDir == Desc {
		return func(a, b model.Service) int { return base(b, a) }
	}
	return base
}

// FilterServices applies the filters and the sort to source.
func FilterServices(source []model.Service, f ServiceFilters) []model.Service {
	return Apply(source, f.Predicates(), f.Compare())
}
