// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// InquiryKind identifies which public form produced an inquiry.
type InquiryKind string

// Inquiry kinds.
const (
	InquiryQuote      InquiryKind = "quote"
	InquiryEnrollment InquiryKind = "enrollment"
	InquiryContact    InquiryKind = "contact"
)

// InquiryKinds lists every kind in display order.
var InquiryKinds = []InquiryKind{InquiryQuote, InquiryEnrollment, InquiryContact}

// Field is one labelled value of a submitted form, kept in submission order.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Inquiry is a quote, enrollment or contact request stored locally.
type Inquiry struct {
	ID        string
	Kind      InquiryKind
	Name      string
	Email     string
	Phone     string
	Fields    []Field
	Device    string
	CreatedAt time.Time
}
