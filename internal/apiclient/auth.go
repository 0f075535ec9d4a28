// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package apiclient

import (
	"context"
	"errors"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/olegiv/studio-site/internal/model"
)

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// FirstAdmin is the first-admin registration payload.
type FirstAdmin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// Me returns the user owning the current backend session.
// An anonymous visitor gets an *Error with status 401.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	body, err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeUser(body)
}

// CheckAdmin reports whether any admin account exists.
func (c *Client) CheckAdmin(ctx context.Context) (bool, error) {
	body, err := c.do(ctx, http.MethodGet, "/auth/check-admin", nil, nil)
	if err != nil {
		return false, err
	}
	v := gjson.GetBytes(body, "admin_exists")
	if !v.Exists() || (v.Type != gjson.True && v.Type != gjson.False) {
		return false, errors.New("check-admin response has no admin_exists flag")
	}
	return v.Bool(), nil
}

// Login authenticates with email and password. The backend session cookie
// lands in the client's jar.
func (c *Client) Login(ctx context.Context, email, password string) (*model.User, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/login", nil, Credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return decodeUser(body)
}

// RegisterFirstAdmin creates the first admin account and signs it in.
func (c *Client) RegisterFirstAdmin(ctx context.Context, email, password, fullName string) (*model.User, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/register-first-admin", nil, FirstAdmin{
		Email:    email,
		Password: password,
		FullName: fullName,
	})
	if err != nil {
		return nil, err
	}
	return decodeUser(body)
}

// Logout ends the backend session.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	return err
}

func decodeUser(body []byte) (*model.User, error) {
	var u model.User
	if err := decodeField(body, "user", &u); err != nil {
		return nil, err
	}
	if u.ID == 0 && u.Email == "" {
		return nil, errors.New("response carries no user")
	}
	return &u, nil
}
