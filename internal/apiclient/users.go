// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package apiclient

import (
	"context"
	"net/http"

	"github.com/olegiv/studio-site/internal/model"
)

// ListUsers fetches the staff accounts bookings can be assigned to.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	body, err := c.do(ctx, http.MethodGet, "/admin/users", nil, nil)
	if err != nil {
		return nil, err
	}
	var users []model.User
	if err := decodeField(body, "users", &users); err != nil {
		return nil, err
	}
	return users, nil
}
