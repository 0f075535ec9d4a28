// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const createInquiry = `-- name: CreateInquiry :one
INSERT INTO inquiries (id, kind, name, email, phone, fields, device, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, kind, name, email, phone, fields, device, created_at
`

type CreateInquiryParams struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Fields    string    `json:"fields"`
	Device    string    `json:"device"`
	CreatedAt time.Time `json:"created_at"`
}

func (q *Queries) CreateInquiry(ctx context.Context, arg CreateInquiryParams) (Inquiry, error) {
	row := q.db.QueryRowContext(ctx, createInquiry,
		arg.ID,
		arg.Kind,
		arg.Name,
		arg.Email,
		arg.Phone,
		arg.Fields,
		arg.Device,
		arg.CreatedAt,
	)
	var i Inquiry
	err := row.Scan(
		&i.ID,
		&i.Kind,
		&i.Name,
		&i.Email,
		&i.Phone,
		&i.Fields,
		&i.Device,
		&i.CreatedAt,
	)
	return i, err
}

const getInquiry = `-- name: GetInquiry :one
SELECT id, kind, name, email, phone, fields, device, created_at FROM inquiries
WHERE id = ?
`

func (q *Queries) GetInquiry(ctx context.Context, id string) (Inquiry, error) {
	row := q.db.QueryRowContext(ctx, getInquiry, id)
	var i Inquiry
	err := row.Scan(
		&i.ID,
		&i.Kind,
		&i.Name,
		&i.Email,
		&i.Phone,
		&i.Fields,
		&i.Device,
		&i.CreatedAt,
	)
	return i, err
}

const listInquiries = `-- name: ListInquiries :many
SELECT id, kind, name, email, phone, fields, device, created_at FROM inquiries
WHERE (?1 = '' OR kind = ?1)
ORDER BY created_at DESC
LIMIT ?2 OFFSET ?3
`

type ListInquiriesParams struct {
	Kind   string `json:"kind"`
	Limit  int64  `json:"limit"`
	Offset int64  `json:"offset"`
}

func (q *Queries) ListInquiries(ctx context.Context, arg ListInquiriesParams) ([]Inquiry, error) {
	rows, err := q.db.QueryContext(ctx, listInquiries, arg.Kind, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Inquiry{}
	for rows.Next() {
		var i Inquiry
		if err := rows.Scan(
			&i.ID,
			&i.Kind,
			&i.Name,
			&i.Email,
			&i.Phone,
			&i.Fields,
			&i.Device,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countInquiries = `-- name: CountInquiries :one
SELECT COUNT(*) FROM inquiries
WHERE (?1 = '' OR kind = ?1)
`

func (q *Queries) CountInquiries(ctx context.Context, kind string) (int64, error) {
	row := q.db.QueryRowContext(ctx, countInquiries, kind)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countInquiriesByKind = `-- name: CountInquiriesByKind :many
SELECT kind, COUNT(*) AS count FROM inquiries
GROUP BY kind
ORDER BY kind
`

type CountInquiriesByKindRow struct {
	Kind  string `json:"kind"`
	Count int64  `json:"count"`
}

func (q *Queries) CountInquiriesByKind(ctx context.Context) ([]CountInquiriesByKindRow, error) {
	rows, err := q.db.QueryContext(ctx, countInquiriesByKind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []CountInquiriesByKindRow{}
	for rows.Next() {
		var i CountInquiriesByKindRow
		if err := rows.Scan(&i.Kind, &i.Count); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteInquiry = `-- name: DeleteInquiry :exec
DELETE FROM inquiries WHERE id = ?
`

func (q *Queries) DeleteInquiry(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteInquiry, id)
	return err
}
