// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"github.com/olegiv/studio-site/internal/model"
	"github.com/olegiv/studio-site/internal/nav"
)

// mdRenderer converts service descriptions. Raw HTML in the source is
// dropped by goldmark and the output is sanitized again before use.
var mdRenderer = goldmark.New(
	goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
	goldmark.WithRendererOptions(goldmarkHTML.WithHardWraps()),
)

var ugcPolicy = bluemonday.UGCPolicy()

// Markdown renders s as sanitized HTML.
func Markdown(s string) template.HTML {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(s), &buf); err != nil {
		slog.Warn("markdown conversion failed", "error", err)
		return template.HTML(template.HTMLEscapeString(s))
	}
	return template.HTML(ugcPolicy.SanitizeBytes(buf.Bytes()))
}

// statusClasses maps booking statuses to badge classes.
var statusClasses = map[model.BookingStatus]string{
	model.BookingPending:   "badge-warning",
	model.BookingConfirmed: "badge-info",
	model.BookingCompleted: "badge-success",
	model.BookingCancelled: "badge-danger",
}

// TemplateFuncs returns the functions available to every template.
func (r *Renderer) TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		// Strings
		"lower":     strings.ToLower,
		"upper":     strings.ToUpper,
		"hasPrefix": strings.HasPrefix,
		"truncate": func(s string, length int) string {
			if utf8.RuneCountInString(s) <= length {
				return s
			}
			return string([]rune(s)[:length]) + "..."
		},
		"join": strings.Join,

		// Math
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"seq": func(start, end int) []int {
			var result []int
			for i := start; i <= end; i++ {
				result = append(result, i)
			}
			return result
		},

		// Time
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("Jan 2, 2006")
		},
		"formatDateTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("Jan 2, 2006 3:04 PM")
		},
		"formatISODate": func(s string) string {
			t, err := time.Parse(model.DateLayout, s)
			if err != nil {
				return s
			}
			return t.Format("Mon, Jan 2, 2006")
		},
		"timeAgo": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return humanize.Time(t)
		},

		// Numbers
		"formatNumber": func(n int) string { return humanize.Comma(int64(n)) },
		"price": func(s model.Service) string {
			return s.PriceLabel(r.currency)
		},
		"priceInput": func(p *float64) string {
			if p == nil {
				return ""
			}
			return humanize.Ftoa(*p)
		},

		// Content
		"markdown": Markdown,

		// Pointers
		"deref": func(p *int64) int64 {
			if p == nil {
				return 0
			}
			return *p
		},

		// Navigation
		"isActive": func(current string, link nav.Link, links []nav.Link) bool {
			return nav.IsActive(current, link, links)
		},
		"withQuery": func(base string, q url.Values) string {
			if len(q) == 0 {
				return base
			}
			return base + "?" + q.Encode()
		},

		// Bookings
		"statusClass": func(s model.BookingStatus) string {
			if c, ok := statusClasses[s]; ok {
				return c
			}
			return "badge-muted"
		},

		// Data structures
		"dict": func(values ...any) map[string]any {
			m := make(map[string]any, len(values)/2)
			for i := 0; i+1 < len(values); i += 2 {
				if key, ok := values[i].(string); ok {
					m[key] = values[i+1]
				}
			}
			return m
		},
	}
}
