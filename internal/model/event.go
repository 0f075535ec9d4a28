// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Event levels
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event categories
const (
	EventCategoryAuth    = "auth"
	EventCategoryBooking = "booking"
	EventCategoryService = "service"
	EventCategoryInquiry = "inquiry"
	EventCategoryCache   = "cache"
	EventCategorySystem  = "system"
)

// Event is a locally recorded log entry shown on the admin dashboard.
type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	Metadata  string // JSON object
	CreatedAt time.Time
}
