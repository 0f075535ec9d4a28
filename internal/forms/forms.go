// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package forms parses and validates the public booking, quote, enrollment
// and contact forms and the admin authentication forms.
package forms

import (
	"html"
	"net/mail"
	"net/url"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/olegiv/studio-site/internal/model"
)

// Field length limits.
const (
	MaxTextLen      = 200
	MaxMultilineLen = 4000
)

// strict strips every tag from free-text input.
var strict = bluemonday.StrictPolicy()

// Clean strips markup and surrounding whitespace from a submitted value.
func Clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// Error is a validation failure whose text is shown to the user.
type Error string

func (e Error) Error() string { return string(e) }

// Errors maps field names to validation messages.
type Errors map[string]string

// Add records msg for field unless the field already has an error.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Any reports whether there are errors.
func (e Errors) Any() bool {
	return len(e) > 0
}

// Kind selects how a field is validated and rendered.
type Kind string

// Field kinds.
const (
	Text      Kind = "text"
	Email     Kind = "email"
	Phone     Kind = "tel"
	Date      Kind = "date"
	Time      Kind = "time"
	Multiline Kind = "textarea"
	Select    Kind = "select"
)

// FieldSpec describes one input of a form.
type FieldSpec struct {
	Name     string
	Label    string
	Kind     Kind
	Required bool
	Options  []string // Select only
	// FutureOnly rejects dates before today (Date only).
	FutureOnly bool
}

// Definition describes a public form.
type Definition struct {
	Kind    model.InquiryKind
	Title   string
	Success string
	Fields  []FieldSpec
}

// Field returns the spec named name.
func (d *Definition) Field(name string) (FieldSpec, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Submission is a parsed form.
type Submission struct {
	Definition *Definition
	Values     map[string]string
	Errors     Errors
}

// Parse reads every defined field from form, stripping markup.
func (d *Definition) Parse(form url.Values) *Submission {
	s := &Submission{
		Definition: d,
		Values:     make(map[string]string, len(d.Fields)),
		Errors:     make(Errors),
	}
	for _, f := range d.Fields {
		s.Values[f.Name] = Clean(form.Get(f.Name))
	}
	return s
}

// Empty returns an unsubmitted form for the first render.
func (d *Definition) Empty() *Submission {
	return d.Parse(url.Values{})
}

// Value returns the cleaned value of a field.
func (s *Submission) Value(name string) string {
	return s.Values[name]
}

// Validate checks every field against its spec and reports whether the
// submission is valid. now anchors future-only dates.
func (s *Submission) Validate(now time.Time) bool {
	today := now.Format(model.DateLayout)
	for _, f := range s.Definition.Fields {
		v := s.Values[f.Name]
		if v == "" {
			if f.Required {
				s.Errors.Add(f.Name, f.Label+" is required")
			}
			continue
		}
		if msg := checkField(f, v, today); msg != "" {
			s.Errors.Add(f.Name, msg)
		}
	}
	return !s.Errors.Any()
}

func checkField(f FieldSpec, v, today string) string {
	limit := MaxTextLen
	if f.Kind == Multiline {
		limit = MaxMultilineLen
	}
	if utf8.RuneCountInString(v) > limit {
		return f.Label + " is too long"
	}

	switch f.Kind {
	case Email:
		if !IsValidEmail(v) {
			return "Please enter a valid email address"
		}
	case Phone:
		if !isValidPhone(v) {
			return "Please enter a valid phone number"
		}
	case Date:
		if _, err := time.Parse(model.DateLayout, v); err != nil {
			return "Please enter a valid date"
		}
		if f.FutureOnly && v < today {
			return f.Label + " cannot be in the past"
		}
	case Time:
		if _, err := time.Parse("15:04", v); err != nil {
			return "Please enter a valid time"
		}
	case Select:
		if len(f.Options) > 0 && !slices.Contains(f.Options, v) {
			return "Please choose a valid option"
		}
	}
	return ""
}

// Fields returns the submitted values as labelled pairs in form order,
// skipping empty optional fields. The confirmation page echoes them verbatim.
func (s *Submission) Fields() []model.Field {
	out := make([]model.Field, 0, len(s.Definition.Fields))
	for _, f := range s.Definition.Fields {
		if v := s.Values[f.Name]; v != "" {
			out = append(out, model.Field{Label: f.Label, Value: v})
		}
	}
	return out
}

// Inquiry builds the record stored for the submission.
func (s *Submission) Inquiry(device string) model.Inquiry {
	return model.Inquiry{
		Kind:   s.Definition.Kind,
		Name:   s.Value("name"),
		Email:  s.Value("email"),
		Phone:  s.Value("phone"),
		Fields: s.Fields(),
		Device: device,
	}
}

// IsValidEmail checks that email parses as a bare address.
func IsValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func isValidPhone(p string) bool {
	digits := 0
	for _, r := range p {
		switch {
		case unicode.IsDigit(r):
			digits++
		case strings.ContainsRune("+-() .", r):
		default:
			return false
		}
	}
	return digits >= 7 && digits <= 15
}
