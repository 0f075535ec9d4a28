// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// DefaultCurrency prefixes formatted prices.
const DefaultCurrency = "Ksh"

// ContactForPricing is shown when a service has no price information.
const ContactForPricing = "Contact for pricing"

// FeaturesFallback is listed when a service has no features.
const FeaturesFallback = "Contact us for details"

// Service is a studio offering owned by the backend.
type Service struct {
	ID           int64     `json:"id"`
	Category     string    `json:"category"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description,omitempty"`
	PriceMin     *float64  `json:"price_min,omitempty"`
	PriceMax     *float64  `json:"price_max,omitempty"`
	PriceDisplay string    `json:"price_display,omitempty"`
	Features     []string  `json:"features"`
	IsActive     bool      `json:"is_active"`
	IsFeatured   bool      `json:"is_featured"`
	DisplayOrder int       `json:"display_order"`
	IconName     string    `json:"icon_name,omitempty"`
	CreatedAt    Timestamp `json:"created_at"`
	UpdatedAt    Timestamp `json:"updated_at"`
}

// PriceLabel formats the price for display.
func (s Service) PriceLabel(currency string) string {
	if s.PriceDisplay != "" {
		return s.PriceDisplay
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	switch {
	case s.PriceMin != nil && s.PriceMax != nil:
		return fmt.Sprintf("%s - %s", formatPrice(currency, *s.PriceMin), formatPrice(currency, *s.PriceMax))
	case s.PriceMin != nil:
		return "From " + formatPrice(currency, *s.PriceMin)
	case s.PriceMax != nil:
		return "Up to " + formatPrice(currency, *s.PriceMax)
	default:
		return ContactForPricing
	}
}

func formatPrice(currency string, amount float64) string {
	return currency + " " + humanize.Commaf(amount)
}

// FeatureList returns the features, or the fallback line when there are none.
func (s Service) FeatureList() []string {
	if len(s.Features) == 0 {
		return []string{FeaturesFallback}
	}
	return s.Features
}

// LowerPrice is the value compared against a minimum price bound.
func (s Service) LowerPrice() float64 {
	if s.PriceMin != nil {
		return *s.PriceMin
	}
	return 0
}

// UpperPrice is the value compared against a maximum price bound.
func (s Service) UpperPrice() float64 {
	switch {
	case s.PriceMax != nil:
		return *s.PriceMax
	case s.PriceMin != nil:
		return *s.PriceMin
	default:
		return 0
	}
}

// ServiceInput is the create/update payload of the admin services form.
type ServiceInput struct {
	Category     string   `json:"category"`
	Title        string   `json:"title"`
	Slug         string   `json:"slug,omitempty"`
	Description  string   `json:"description"`
	PriceMin     *float64 `json:"price_min"`
	PriceMax     *float64 `json:"price_max"`
	PriceDisplay string   `json:"price_display"`
	Features     []string `json:"features"`
	IsActive     bool     `json:"is_active"`
	IsFeatured   bool     `json:"is_featured"`
	DisplayOrder int      `json:"display_order"`
	IconName     string   `json:"icon_name"`
}

// Input converts a service into its editable form.
func (s Service) Input() ServiceInput {
	return ServiceInput{
		Category:     s.Category,
		Title:        s.Title,
		Slug:         s.Slug,
		Description:  s.Description,
		PriceMin:     s.PriceMin,
		PriceMax:     s.PriceMax,
		PriceDisplay: s.PriceDisplay,
		Features:     s.Features,
		IsActive:     s.IsActive,
		IsFeatured:   s.IsFeatured,
		DisplayOrder: s.DisplayOrder,
		IconName:     s.IconName,
	}
}
