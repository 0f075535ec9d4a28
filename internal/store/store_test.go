// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "store-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	path := f.Name()
	_ = f.Close()

	db, err := NewDB(path)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := testDB(t)
	if err := Migrate(db); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}

	for _, table := range []string{"sessions", "events", "inquiries"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestEvents(t *testing.T) {
	db := testDB(t)
	q := New(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, msg := range []string{"old", "middle", "new"} {
		_, err := q.CreateEvent(ctx, CreateEventParams{
			Level:     "INFO",
			Category:  "system",
			Message:   msg,
			Metadata:  "{}",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("CreateEvent(%s): %v", msg, err)
		}
	}

	count, err := q.CountEvents(ctx)
	if err != nil {
		t.Fatalf("CountEvents: %v", err)
	}
	if count != 3 {
		t.Errorf("CountEvents = %d, want 3", count)
	}

	recent, err := q.ListRecentEvents(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(recent) != 2 || recent[0].Message != "new" || recent[1].Message != "middle" {
		t.Errorf("ListRecentEvents = %+v, want new then middle", recent)
	}

	deleted, err := q.DeleteEventsBefore(ctx, base.Add(90*time.Minute))
	if err != nil {
		t.Fatalf("DeleteEventsBefore: %v", err)
	}
	if deleted != 2 {
		t.Errorf("DeleteEventsBefore removed %d rows, want 2", deleted)
	}
}

func TestInquiries(t *testing.T) {
	db := testDB(t)
	q := New(db)
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	inputs := []CreateInquiryParams{
		{ID: "a", Kind: "contact", Name: "Ann", Email: "ann@example.com", Fields: "[]", Device: "desktop", CreatedAt: now},
		{ID: "b", Kind: "quote", Name: "Bob", Email: "bob@example.com", Fields: "[]", Device: "mobile", CreatedAt: now.Add(time.Minute)},
		{ID: "c", Kind: "contact", Name: "Cid", Email: "cid@example.com", Fields: "[]", Device: "tablet", CreatedAt: now.Add(2 * time.Minute)},
	}
	for _, in := range inputs {
		if _, err := q.CreateInquiry(ctx, in); err != nil {
			t.Fatalf("CreateInquiry(%s): %v", in.ID, err)
		}
	}

	all, err := q.ListInquiries(ctx, ListInquiriesParams{Limit: 10})
	if err != nil {
		t.Fatalf("ListInquiries: %v", err)
	}
	if len(all) != 3 || all[0].ID != "c" {
		t.Errorf("ListInquiries = %+v, want newest first", all)
	}

	contacts, err := q.ListInquiries(ctx, ListInquiriesParams{Kind: "contact", Limit: 10})
	if err != nil {
		t.Fatalf("ListInquiries(contact): %v", err)
	}
	if len(contacts) != 2 {
		t.Errorf("contact inquiries = %d, want 2", len(contacts))
	}

	n, err := q.CountInquiries(ctx, "quote")
	if err != nil {
		t.Fatalf("CountInquiries: %v", err)
	}
	if n != 1 {
		t.Errorf("CountInquiries(quote) = %d, want 1", n)
	}

	byKind, err := q.CountInquiriesByKind(ctx)
	if err != nil {
		t.Fatalf("CountInquiriesByKind: %v", err)
	}
	if len(byKind) != 2 || byKind[0].Kind != "contact" || byKind[0].Count != 2 {
		t.Errorf("CountInquiriesByKind = %+v", byKind)
	}

	got, err := q.GetInquiry(ctx, "b")
	if err != nil {
		t.Fatalf("GetInquiry: %v", err)
	}
	if got.Name != "Bob" || got.Device != "mobile" {
		t.Errorf("GetInquiry = %+v", got)
	}

	if err := q.DeleteInquiry(ctx, "b"); err != nil {
		t.Fatalf("DeleteInquiry: %v", err)
	}
	if _, err := q.GetInquiry(ctx, "b"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetInquiry after delete: err = %v, want sql.ErrNoRows", err)
	}
}

func TestWithTx_Rollback(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("BeginTx: %v", err)
	}
	_, err = New(db).WithTx(tx).CreateEvent(ctx, CreateEventParams{
		Level: "INFO", Category: "system", Message: "rolled back", Metadata: "{}", CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback: %v", err)
	}

	count, err := New(db).CountEvents(ctx)
	if err != nil {
		t.Fatalf("CountEvents: %v", err)
	}
	if count != 0 {
		t.Errorf("CountEvents = %d after rollback, want 0", count)
	}
}
