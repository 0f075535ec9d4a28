// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth holds a visitor's authentication state and the route guard
// that gates admin pages on it.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/olegiv/studio-site/internal/model"
)

// Fallback messages for failed mutations without a backend message.
const (
	LoginFailedMessage    = "Login failed. Please check your credentials."
	RegisterFailedMessage = "Registration failed. Please try again."
)

// Tristate is a boolean that may not be known yet.
type Tristate int

// Tristate values.
const (
	Unknown Tristate = iota
	True
	False
)

func (t Tristate) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

func tristateOf(b bool) Tristate {
	if b {
		return True
	}
	return False
}

// Session is a snapshot of the authentication state.
type Session struct {
	CurrentUser *model.User
	IsLoading   bool
	AdminExists Tristate
	LastError   string
}

// Authenticated reports whether a user is signed in.
func (s Session) Authenticated() bool {
	return s.CurrentUser != nil
}

// Resolved reports whether the initial resolution has settled.
func (s Session) Resolved() bool {
	return !s.IsLoading && s.AdminExists != Unknown
}

func (s Session) clone() Session {
	if s.CurrentUser != nil {
		u := *s.CurrentUser
		s.CurrentUser = &u
	}
	return s
}

// Backend is the subset of the studio API the store depends on.
type Backend interface {
	Me(ctx context.Context) (*model.User, error)
	CheckAdmin(ctx context.Context) (bool, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
	RegisterFirstAdmin(ctx context.Context, email, password, fullName string) (*model.User, error)
	Logout(ctx context.Context) error
}

// Error is returned by Login and RegisterFirstAdmin. Message is safe to show.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Store owns the authentication state of one visitor.
// State changes only through its methods.
type Store struct {
	backend Backend
	logger  *slog.Logger

	op      sync.Mutex // serializes operations
	once    sync.Once
	mu      sync.Mutex // guards the fields below
	state   Session
	inCycle bool
	subs    map[int]func(Session)
	nextSub int
}

// NewStore creates an unresolved store.
func NewStore(backend Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		backend: backend,
		logger:  logger,
		subs:    make(map[int]func(Session)),
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers fn to be called after every observable state change.
// During a resolution cycle only the loading start and the settled state
// are published.
func (s *Store) Subscribe(fn func(Session)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// update applies fn to the state and publishes the result unless a
// resolution cycle is running.
func (s *Store) update(fn func(*Session)) {
	s.mu.Lock()
	fn(&s.state)
	if s.state.Authenticated() {
		s.state.AdminExists = True
	}
	publish := !s.inCycle
	snap, subs := s.captureLocked()
	s.mu.Unlock()

	if publish {
		notify(subs, snap)
	}
}

func (s *Store) captureLocked() (Session, []func(Session)) {
	subs := make([]func(Session), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return s.state.clone(), subs
}

func notify(subs []func(Session), snap Session) {
	for _, fn := range subs {
		fn(snap)
	}
}

// CheckAuth asks the backend who is signed in.
// A 401 is the expected anonymous answer and leaves no error behind.
// Other failures are logged; they never surface as authentication errors.
func (s *Store) CheckAuth(ctx context.Context) bool {
	s.op.Lock()
	defer s.op.Unlock()
	return s.checkAuth(ctx)
}

func (s *Store) checkAuth(ctx context.Context) bool {
	user, err := s.backend.Me(ctx)
	switch {
	case err == nil && user != nil:
		s.update(func(st *Session) {
			st.CurrentUser = user
			st.LastError = ""
		})
		return true
	case statusOf(err) == 401:
		s.update(func(st *Session) {
			st.CurrentUser = nil
			st.LastError = ""
		})
	default:
		s.logger.Warn("auth check failed", "category", "auth", "error", err)
		s.update(func(st *Session) {
			st.CurrentUser = nil
		})
	}
	return false
}

// CheckAdminExists asks the backend whether an admin account exists.
// Failure yields false so the first-admin path stays reachable.
func (s *Store) CheckAdminExists(ctx context.Context) {
	s.op.Lock()
	defer s.op.Unlock()
	s.checkAdminExists(ctx)
}

func (s *Store) checkAdminExists(ctx context.Context) {
	exists, err := s.backend.CheckAdmin(ctx)
	if err != nil {
		s.logger.Warn("admin existence check failed", "category", "auth", "error", err)
		exists = false
	}
	s.update(func(st *Session) {
		st.AdminExists = tristateOf(exists)
	})
}

// Login signs in with email and password.
func (s *Store) Login(ctx context.Context, email, password string) error {
	s.op.Lock()
	defer s.op.Unlock()

	user, err := s.backend.Login(ctx, email, password)
	if err == nil && user == nil {
		err = errors.New("login response carries no user")
	}
	if err != nil {
		msg := messageOf(err, LoginFailedMessage)
		s.update(func(st *Session) { st.LastError = msg })
		return &Error{Message: msg, Err: err}
	}

	s.update(func(st *Session) {
		st.CurrentUser = user
		st.LastError = ""
	})
	s.checkAdminExists(ctx)
	return nil
}

// RegisterFirstAdmin creates the first admin account and signs it in.
func (s *Store) RegisterFirstAdmin(ctx context.Context, email, password, fullName string) error {
	s.op.Lock()
	defer s.op.Unlock()

	user, err := s.backend.RegisterFirstAdmin(ctx, email, password, fullName)
	if err == nil && user == nil {
		err = errors.New("registration response carries no user")
	}
	if err != nil {
		msg := messageOf(err, RegisterFailedMessage)
		s.update(func(st *Session) { st.LastError = msg })
		return &Error{Message: msg, Err: err}
	}

	s.update(func(st *Session) {
		st.CurrentUser = user
		st.AdminExists = True
		st.LastError = ""
	})
	return nil
}

// Logout ends the session. The user is cleared locally whatever the
// backend answers.
func (s *Store) Logout(ctx context.Context) {
	s.op.Lock()
	defer s.op.Unlock()

	if err := s.backend.Logout(ctx); err != nil {
		s.logger.Warn("backend logout failed", "category", "auth", "error", err)
	}
	s.update(func(st *Session) {
		st.CurrentUser = nil
	})
	s.checkAdminExists(ctx)
}

// Refresh re-resolves the session: CheckAuth, then CheckAdminExists.
// Loading goes true once and false once, whatever the calls return.
func (s *Store) Refresh(ctx context.Context) {
	s.op.Lock()
	defer s.op.Unlock()
	s.cycle(ctx)
}

// Resolve runs the initial resolution sequence. Only the first call does
// any work; later calls wait for it to finish.
func (s *Store) Resolve(ctx context.Context) {
	s.once.Do(func() {
		s.op.Lock()
		defer s.op.Unlock()
		s.cycle(ctx)
	})
}

func (s *Store) cycle(ctx context.Context) {
	s.mu.Lock()
	s.state.IsLoading = true
	s.inCycle = true
	snap, subs := s.captureLocked()
	s.mu.Unlock()
	notify(subs, snap)

	defer func() {
		s.mu.Lock()
		s.state.IsLoading = false
		s.inCycle = false
		snap, subs := s.captureLocked()
		s.mu.Unlock()
		notify(subs, snap)
	}()

	s.checkAuth(ctx)
	s.checkAdminExists(ctx)
}

// statusOf returns the HTTP status carried by err, or 0.
func statusOf(err error) int {
	var se interface{ HTTPStatus() int }
	if errors.As(err, &se) {
		return se.HTTPStatus()
	}
	return 0
}

// messageOf returns the backend-provided message carried by err.
func messageOf(err error, fallback string) string {
	var me interface{ UserMessage() string }
	if errors.As(err, &me) {
		if msg := me.UserMessage(); msg != "" {
			return msg
		}
	}
	return fallback
}
