// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the studio domain types exchanged with the backend
// API: users, bookings, services and the locally stored inquiries and events.
package model

import (
	"encoding/json"
	"strings"
)

// Role is a canonical, upper-case user role.
type Role string

// Known roles.
const (
	RoleAdmin Role = "ADMIN"
	RoleStaff Role = "STAFF"
)

// ParseRole normalizes a role string to its canonical form.
// All role comparisons happen on parsed values only.
func ParseRole(s string) Role {
	return Role(strings.ToUpper(strings.TrimSpace(s)))
}

// UnmarshalJSON normalizes the role at decode time.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = ParseRole(s)
	return nil
}

// String returns the role as a string.
func (r Role) String() string {
	return string(r)
}

// Label returns a human-friendly role name.
func (r Role) Label() string {
	if r == "" {
		return ""
	}
	s := strings.ToLower(string(r))
	return strings.ToUpper(s[:1]) + s[1:]
}

// User is an authenticated backend account.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	FullName  string `json:"full_name"`
	Phone     string `json:"phone,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	IsActive  bool   `json:"is_active"`
}

// UnmarshalJSON decodes a user, defaulting IsActive to true when the
// backend omits the field.
func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	aux := struct {
		*plain
		IsActive *bool `json:"is_active"`
	}{plain: (*plain)(u)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	u.IsActive = aux.IsActive == nil || *aux.IsActive
	return nil
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// DisplayName returns the full name, falling back to the email address.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}
