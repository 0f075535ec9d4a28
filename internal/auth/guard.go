// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import "github.com/olegiv/studio-site/internal/model"

// Decision is the outcome of a guard check.
type Decision int

// Guard decisions.
const (
	Loading Decision = iota
	Render
	RedirectToLogin
	RedirectToHome
)

func (d Decision) String() string {
	switch d {
	case Loading:
		return "loading"
	case Render:
		return "render"
	case RedirectToLogin:
		return "redirect_to_login"
	case RedirectToHome:
		return "redirect_to_home"
	default:
		return "unknown"
	}
}

// RoleSet is a set of canonical roles. An empty set admits any signed-in user.
type RoleSet map[model.Role]struct{}

// Roles builds a RoleSet, normalizing each role.
func Roles(roles ...model.Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[model.ParseRole(string(r))] = struct{}{}
	}
	return set
}

// Has reports whether r is in the set.
func (rs RoleSet) Has(r model.Role) bool {
	_, ok := rs[r]
	return ok
}

// Guard decides what a protected page does for session s.
// Loading is checked before identity so a signed-in visitor is never sent
// to the login page while the session is still resolving.
func Guard(required RoleSet, s Session) Decision {
	if s.IsLoading {
		return Loading
	}
	if !s.Authenticated() {
		return RedirectToLogin
	}
	if len(required) > 0 && !required.Has(s.CurrentUser.Role) {
		return RedirectToHome
	}
	return Render
}
