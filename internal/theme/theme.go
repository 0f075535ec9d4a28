// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package theme stores the visitor's light/dark preference.
package theme

import (
	"strings"
	"sync"
)

// Mode is a color scheme.
type Mode string

// Modes.
const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// Default is used when nothing is stored and the system preference is unknown.
const Default = Light

// ParseMode returns the mode named by s and whether s was valid.
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, true
	case Dark:
		return Dark, true
	default:
		return "", false
	}
}

// Opposite returns the other mode.
func (m Mode) Opposite() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

func (m Mode) String() string { return string(m) }

// Persister loads and saves a stored mode.
type Persister interface {
	// Load returns the stored mode, or false if nothing valid is stored.
	Load() (Mode, bool)
	Save(Mode) error
}

// SystemPreference reports the platform's preferred scheme, if known.
type SystemPreference func() (Mode, bool)

// Store holds the current mode. A stored value always wins; the system
// preference is read only when nothing is stored yet.
type Store struct {
	mu      sync.Mutex
	mode    Mode
	persist Persister
}

// MemoryPersister keeps the mode for the lifetime of the value.
type MemoryPersister struct {
	mode Mode
	set  bool
}

// Load returns the saved mode.
func (p *MemoryPersister) Load() (Mode, bool) { return p.mode, p.set }

// Save records m.
func (p *MemoryPersister) Save(m Mode) error {
	p.mode, p.set = m, true
	return nil
}

// NewStore loads the initial mode from p, falling back to system and then
// to Default. The fallback is not persisted. A nil p keeps the mode in memory.
func NewStore(p Persister, system SystemPreference) *Store {
	if p == nil {
		p = &MemoryPersister{}
	}
	s := &Store{persist: p, mode: Default}
	if m, ok := p.Load(); ok {
		s.mode = m
		return s
	}
	if system != nil {
		if m, ok := system(); ok {
			s.mode = m
		}
	}
	return s
}

// Mode returns the current mode.
func (s *Store) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Set changes and persists the mode.
func (s *Store) Set(m Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist.Save(m); err != nil {
		return err
	}
	s.mode = m
	return nil
}

// Toggle switches to the opposite mode and returns it.
func (s *Store) Toggle() (Mode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.mode.Opposite()
	if err := s.persist.Save(next); err != nil {
		return s.mode, err
	}
	s.mode = next
	return next, nil
}
