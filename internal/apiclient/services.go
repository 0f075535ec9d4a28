// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/olegiv/studio-site/internal/model"
)

// ListPublicServices fetches the active services shown on the public site.
func (c *Client) ListPublicServices(ctx context.Context) ([]model.Service, error) {
	return c.listServices(ctx, "/services")
}

// ListAdminServices fetches every service including inactive ones.
func (c *Client) ListAdminServices(ctx context.Context) ([]model.Service, error) {
	return c.listServices(ctx, "/admin/services")
}

func (c *Client) listServices(ctx context.Context, path string) ([]model.Service, error) {
	body, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	var services []model.Service
	if err := decodeField(body, "services", &services); err != nil {
		return nil, err
	}
	return services, nil
}

// GetService fetches one service.
func (c *Client) GetService(ctx context.Context, id int64) (*model.Service, error) {
	body, err := c.do(ctx, http.MethodGet, servicePath(id), nil, nil)
	if err != nil {
		return nil, err
	}
	var s model.Service
	if err := decodeField(body, "service", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateService creates a service.
func (c *Client) CreateService(ctx context.Context, in model.ServiceInput) error {
	_, err := c.do(ctx, http.MethodPost, "/admin/services", nil, in)
	return err
}

// UpdateService replaces a service.
func (c *Client) UpdateService(ctx context.Context, id int64, in model.ServiceInput) error {
	_, err := c.do(ctx, http.MethodPut, servicePath(id), nil, in)
	return err
}

// DeleteService removes a service.
func (c *Client) DeleteService(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, servicePath(id), nil, nil)
	return err
}

// ServiceCategories fetches the category enum.
func (c *Client) ServiceCategories(ctx context.Context) ([]string, error) {
	body, err := c.do(ctx, http.MethodGet, "/service-categories", nil, nil)
	if err != nil {
		return nil, err
	}
	return stringList(body, "categories"), nil
}

func servicePath(id int64) string {
	return fmt.Sprintf("/services/%d", id)
}
