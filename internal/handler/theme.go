// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/studio-site/internal/middleware"
	"github.com/olegiv/studio-site/internal/nav"
	"github.com/olegiv/studio-site/internal/theme"
)

// ToggleTheme handles POST /theme. A valid "mode" value sets the theme,
// otherwise the current theme flips. The visitor is sent back to "return".
func ToggleTheme(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	ts := middleware.GetTheme(r)
	var err error
	if m, ok := theme.ParseMode(r.PostFormValue("mode")); ok {
		err = ts.Set(m)
	} else {
		_, err = ts.Toggle()
	}
	if err != nil {
		slog.Warn("theme not saved", "error", err)
	}

	http.Redirect(w, r, SafeRedirect(r.PostFormValue("return"), nav.PathHome), http.StatusSeeOther)
}
