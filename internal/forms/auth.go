// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package forms

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// MinPasswordLength for the first admin account.
const MinPasswordLength = 8

// Registration validation messages, in checking order.
const (
	ErrAllFieldsRequired Error = "All fields are required"
	ErrInvalidEmail      Error = "Please enter a valid email address"
	ErrPasswordTooShort  Error = "Password must be at least 8 characters long"
	ErrPasswordMismatch  Error = "Passwords do not match"
)

// ErrLoginRequired is returned when the login form is incomplete.
const ErrLoginRequired Error = "Email and password are required"

// Login is the admin login form.
type Login struct {
	Email    string
	Password string
	Next     string
}

// ParseLogin reads the login form. Passwords are kept verbatim.
func ParseLogin(form url.Values) Login {
	return Login{
		Email:    strings.TrimSpace(form.Get("email")),
		Password: form.Get("password"),
		Next:     form.Get("next"),
	}
}

// Validate checks the login form.
func (f Login) Validate() error {
	if f.Email == "" || f.Password == "" {
		return ErrLoginRequired
	}
	return nil
}

// RegisterFirstAdmin is the first-admin bootstrap form.
type RegisterFirstAdmin struct {
	FullName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// ParseRegisterFirstAdmin reads the registration form.
func ParseRegisterFirstAdmin(form url.Values) RegisterFirstAdmin {
	return RegisterFirstAdmin{
		FullName:        Clean(form.Get("full_name")),
		Email:           strings.TrimSpace(form.Get("email")),
		Password:        form.Get("password"),
		ConfirmPassword: form.Get("confirm_password"),
	}
}

// Validate returns the first failing rule. A failed form is never sent to
// the backend.
func (f RegisterFirstAdmin) Validate() error {
	if f.FullName == "" || f.Email == "" || f.Password == "" || f.ConfirmPassword == "" {
		return ErrAllFieldsRequired
	}
	if !strings.Contains(f.Email, "@") {
		return ErrInvalidEmail
	}
	if utf8.RuneCountInString(f.Password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if f.Password != f.ConfirmPassword {
		return ErrPasswordMismatch
	}
	return nil
}
