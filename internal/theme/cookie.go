// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package theme

import (
	"net/http"
	"time"
)

// CookieName is the fixed key the mode is stored under.
const CookieName = "studio-theme"

// CookieMaxAge keeps the preference for a year.
const CookieMaxAge = 365 * 24 * time.Hour

// ClientHintHeader carries the browser's preferred color scheme.
const ClientHintHeader = "Sec-CH-Prefers-Color-Scheme"

// CookiePersister stores the mode in a long-lived cookie.
type CookiePersister struct {
	w      http.ResponseWriter
	r      *http.Request
	secure bool
}

// NewCookiePersister creates a persister for one request/response pair.
func NewCookiePersister(w http.ResponseWriter, r *http.Request, secure bool) *CookiePersister {
	return &CookiePersister{w: w, r: r, secure: secure}
}

// Load reads the mode cookie.
func (p *CookiePersister) Load() (Mode, bool) {
	c, err := p.r.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	return ParseMode(c.Value)
}

// Save writes the mode cookie.
func (p *CookiePersister) Save(m Mode) error {
	http.SetCookie(p.w, &http.Cookie{
		Name:     CookieName,
		Value:    string(m),
		Path:     "/",
		MaxAge:   int(CookieMaxAge.Seconds()),
		HttpOnly: false, // read by the inline script that avoids a flash of the wrong theme
		Secure:   p.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClientHint reads the system preference from the request's client hint.
func ClientHint(r *http.Request) SystemPreference {
	return func() (Mode, bool) {
		return ParseMode(r.Header.Get(ClientHintHeader))
	}
}

// FromRequest builds the per-request store.
func FromRequest(w http.ResponseWriter, r *http.Request, secure bool) *Store {
	return NewStore(NewCookiePersister(w, r, secure), ClientHint(r))
}
