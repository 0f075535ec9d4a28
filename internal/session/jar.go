// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/alexedwards/scs/v2"
)

// JarKey is the session key holding the relayed backend cookies.
const JarKey = "backend_cookies"

type storedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Host    string    `json:"host"`
	Path    string    `json:"path"`
	Expires time.Time `json:"expires,omitzero"`
	Secure  bool      `json:"secure,omitempty"`
}

func (c storedCookie) expired(now time.Time) bool {
	return !c.Expires.IsZero() && !c.Expires.After(now)
}

func (c storedCookie) matches(u *url.URL) bool {
	if !strings.EqualFold(c.Host, u.Hostname()) {
		return false
	}
	if c.Secure && u.Scheme != "https" {
		return false
	}
	p := u.Path
	if p == "" {
		p = "/"
	}
	if c.Path == "" || c.Path == "/" || p == c.Path {
		return true
	}
	return strings.HasPrefix(p, strings.TrimSuffix(c.Path, "/")+"/")
}

// Jar is an http.CookieJar that keeps the cookies the backend sets for one
// visitor inside that visitor's server-side session.
type Jar struct {
	sm  *scs.SessionManager
	ctx context.Context
	now func() time.Time

	mu sync.Mutex
}

// NewJar returns a jar bound to the session loaded into ctx.
func NewJar(ctx context.Context, sm *scs.SessionManager) *Jar {
	return &Jar{sm: sm, ctx: ctx, now: time.Now}
}

func (j *Jar) load() []storedCookie {
	raw := j.sm.GetBytes(j.ctx, JarKey)
	if len(raw) == 0 {
		return nil
	}
	var cookies []storedCookie
	if err := json.Unmarshal(raw, &cookies); err != nil {
		return nil
	}
	return cookies
}

func (j *Jar) save(cookies []storedCookie) {
	if len(cookies) == 0 {
		j.sm.Remove(j.ctx, JarKey)
		return
	}
	raw, err := json.Marshal(cookies)
	if err != nil {
		return
	}
	j.sm.Put(j.ctx, JarKey, raw)
}

// SetCookies stores cookies received from u. A cookie with a negative
// MaxAge or a past expiry removes the stored cookie of the same name.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	if len(cookies) == 0 {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now()
	stored := j.load()
	changed := false
	for _, c := range cookies {
		path := c.Path
		if path == "" {
			path = "/"
		}
		next := storedCookie{
			Name:   c.Name,
			Value:  c.Value,
			Host:   u.Hostname(),
			Path:   path,
			Secure: c.Secure,
		}
		switch {
		case c.MaxAge < 0:
			next.Expires = now
		case c.MaxAge > 0:
			next.Expires = now.Add(time.Duration(c.MaxAge) * time.Second)
		case !c.Expires.IsZero():
			next.Expires = c.Expires
		}

		kept := stored[:0]
		for _, s := range stored {
			if s.Name == next.Name && strings.EqualFold(s.Host, next.Host) && s.Path == next.Path {
				continue
			}
			kept = append(kept, s)
		}
		stored = kept
		if !next.expired(now) {
			stored = append(stored, next)
		}
		changed = true
	}
	if changed {
		j.save(stored)
	}
}

// Cookies returns the unexpired cookies to send to u.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now()
	var out []*http.Cookie
	for _, c := range j.load() {
		if c.expired(now) || !c.matches(u) {
			continue
		}
		out = append(out, &http.Cookie{Name: c.Name, Value: c.Value})
	}
	return out
}

// Clear drops every relayed cookie.
func (j *Jar) Clear() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.sm.Remove(j.ctx, JarKey)
}
