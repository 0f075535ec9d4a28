// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package theme

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type memPersister struct {
	mode  Mode
	saved int
	err   error
}

func (p *memPersister) Load() (Mode, bool) { return p.mode, p.mode != "" }

func (p *memPersister) Save(m Mode) error {
	if p.err != nil {
		return p.err
	}
	p.mode = m
	p.saved++
	return nil
}

func systemIs(m Mode) (SystemPreference, *int) {
	calls := 0
	return func() (Mode, bool) {
		calls++
		return m, m != ""
	}, &calls
}

func TestNewStore_Precedence(t *testing.T) {
	tests := []struct {
		name        string
		stored      Mode
		system      Mode
		want        Mode
		wantSysCall bool
	}{
		{"stored wins over system", Dark, Light, Dark, false},
		{"stored light wins over dark system", Light, Dark, Light, false},
		{"system used when nothing stored", "", Dark, Dark, true},
		{"default when nothing known", "", "", Light, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &memPersister{mode: tt.stored}
			sys, calls := systemIs(tt.system)
			s := NewStore(p, sys)

			if got := s.Mode(); got != tt.want {
				t.Errorf("Mode() = %q, want %q", got, tt.want)
			}
			if (*calls > 0) != tt.wantSysCall {
				t.Errorf("system preference consulted = %v, want %v", *calls > 0, tt.wantSysCall)
			}
			if p.saved != 0 {
				t.Error("initial mode must not be persisted")
			}
		})
	}
}

func TestStore_RoundTrip(t *testing.T) {
	p := &memPersister{}
	s := NewStore(p, nil)
	if err := s.Set(Dark); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	sys, calls := systemIs(Light)
	reloaded := NewStore(p, sys)
	if reloaded.Mode() != Dark {
		t.Errorf("reloaded Mode() = %q, want dark", reloaded.Mode())
	}
	if *calls != 0 {
		t.Error("system preference consulted despite stored value")
	}
}

func TestStore_Toggle(t *testing.T) {
	p := &memPersister{}
	s := NewStore(p, nil)

	m, err := s.Toggle()
	if err != nil || m != Dark || p.mode != Dark {
		t.Errorf("Toggle() = %q, %v; stored %q", m, err, p.mode)
	}
	m, _ = s.Toggle()
	if m != Light {
		t.Errorf("second Toggle() = %q", m)
	}
}

func TestStore_SaveError(t *testing.T) {
	p := &memPersister{err: errors.New("disk full")}
	s := NewStore(p, nil)

	if _, err := s.Toggle(); err == nil {
		t.Error("expected error")
	}
	if s.Mode() != Light {
		t.Errorf("mode changed despite failed save: %q", s.Mode())
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"dark": Dark, " LIGHT ": Light} {
		if got, ok := ParseMode(in); !ok || got != want {
			t.Errorf("ParseMode(%q) = %q, %v", in, got, ok)
		}
	}
	if _, ok := ParseMode("no-preference"); ok {
		t.Error("ParseMode should reject unknown values")
	}
}

func TestCookieRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/theme", nil)
	req.Header.Set(ClientHintHeader, "light")

	s := FromRequest(rec, req, true)
	if _, err := s.Toggle(); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName || cookies[0].Value != "dark" {
		t.Fatalf("cookies = %v", cookies)
	}
	if !cookies[0].Secure || cookies[0].MaxAge <= 0 {
		t.Errorf("cookie attributes = %+v", cookies[0])
	}

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookies[0])
	next.Header.Set(ClientHintHeader, "light")
	if got := FromRequest(httptest.NewRecorder(), next, true).Mode(); got != Dark {
		t.Errorf("Mode() after reload = %q, want dark", got)
	}
}

func TestClientHint(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(ClientHintHeader, "dark")
	if got := FromRequest(httptest.NewRecorder(), req, false).Mode(); got != Dark {
		t.Errorf("Mode() = %q, want dark from client hint", got)
	}

	req.AddCookie(&http.Cookie{Name: CookieName, Value: "garbage"})
	if got := FromRequest(httptest.NewRecorder(), req, false).Mode(); got != Dark {
		t.Errorf("invalid cookie should fall through to client hint, got %q", got)
	}
}

func TestNewStore_NilPersister(t *testing.T) {
	s := NewStore(nil, nil)
	if got := s.Mode(); got != Default {
		t.Fatalf("Mode() = %q, want %q", got, Default)
	}

	next, err := s.Toggle()
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if next != Dark || s.Mode() != Dark {
		t.Errorf("after Toggle mode = %q/%q, want dark", next, s.Mode())
	}
}
