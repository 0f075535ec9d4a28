// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package forms

import "github.com/olegiv/studio-site/internal/model"

// ServiceTypes are the options of the booking and quote service selects.
var ServiceTypes = []string{
	"Wedding Photography",
	"Portrait Session",
	"Event Coverage",
	"Corporate Photography",
	"Product Photography",
	"Videography",
	"Other",
}

// BudgetRanges are the options of the budget selects.
var BudgetRanges = []string{
	"Under Ksh 20,000",
	"Ksh 20,000 - 50,000",
	"Ksh 50,000 - 100,000",
	"Ksh 100,000 - 250,000",
	"Above Ksh 250,000",
}

// Courses offered by the photography school.
var Courses = []string{
	"Photography Basics",
	"Advanced Photography",
	"Videography Essentials",
	"Photo Editing & Retouching",
}

// Schedules for school classes.
var Schedules = []string{"Weekday", "Weekend", "Evening"}

// ExperienceLevels for school applicants.
var ExperienceLevels = []string{"Beginner", "Intermediate", "Advanced"}

// Booking is the public booking form. It is submitted to the backend.
var Booking = &Definition{
	Title:   "Book a Session",
	Success: "Thank you! Your booking request has been received. We will contact you shortly to confirm.",
	Fields: []FieldSpec{
		{Name: "name", Label: "Full Name", Kind: Text, Required: true},
		{Name: "email", Label: "Email", Kind: Email, Required: true},
		{Name: "phone", Label: "Phone", Kind: Phone, Required: true},
		{Name: "service_type", Label: "Service", Kind: Select, Required: true, Options: ServiceTypes},
		{Name: "preferred_date", Label: "Preferred Date", Kind: Date, Required: true, FutureOnly: true},
		{Name: "preferred_time", Label: "Preferred Time", Kind: Time},
		{Name: "location", Label: "Location", Kind: Text},
		{Name: "budget_range", Label: "Budget", Kind: Select, Options: BudgetRanges},
		{Name: "additional_notes", Label: "Additional Notes", Kind: Multiline},
	},
}

// Quote is the quote request form.
var Quote = &Definition{
	Kind:    model.InquiryQuote,
	Title:   "Request a Quote",
	Success: "Thank you! We will send your quote within 24 hours.",
	Fields: []FieldSpec{
		{Name: "name", Label: "Full Name", Kind: Text, Required: true},
		{Name: "email", Label: "Email", Kind: Email, Required: true},
		{Name: "phone", Label: "Phone", Kind: Phone, Required: true},
		{Name: "company", Label: "Company", Kind: Text},
		{Name: "service_type", Label: "Service", Kind: Select, Required: true, Options: ServiceTypes},
		{Name: "event_date", Label: "Event Date", Kind: Date, FutureOnly: true},
		{Name: "location", Label: "Location", Kind: Text},
		{Name: "budget_range", Label: "Budget", Kind: Select, Options: BudgetRanges},
		{Name: "details", Label: "Project Details", Kind: Multiline, Required: true},
	},
}

// Enrollment is the photography school application form.
var Enrollment = &Definition{
	Kind:    model.InquiryEnrollment,
	Title:   "Enroll in a Course",
	Success: "Thank you for enrolling! Our school coordinator will contact you with the next steps.",
	Fields: []FieldSpec{
		{Name: "name", Label: "Full Name", Kind: Text, Required: true},
		{Name: "email", Label: "Email", Kind: Email, Required: true},
		{Name: "phone", Label: "Phone", Kind: Phone, Required: true},
		{Name: "course", Label: "Course", Kind: Select, Required: true, Options: Courses},
		{Name: "schedule", Label: "Preferred Schedule", Kind: Select, Required: true, Options: Schedules},
		{Name: "experience", Label: "Experience Level", Kind: Select, Options: ExperienceLevels},
		{Name: "has_camera", Label: "Own Camera", Kind: Select, Options: []string{"Yes", "No"}},
		{Name: "message", Label: "Message", Kind: Multiline},
	},
}

// Contact is the contact page form.
var Contact = &Definition{
	Kind:    model.InquiryContact,
	Title:   "Contact Us",
	Success: "Thank you for reaching out! We will get back to you soon.",
	Fields: []FieldSpec{
		{Name: "name", Label: "Name", Kind: Text, Required: true},
		{Name: "email", Label: "Email", Kind: Email, Required: true},
		{Name: "phone", Label: "Phone", Kind: Phone},
		{Name: "subject", Label: "Subject", Kind: Text, Required: true},
		{Name: "message", Label: "Message", Kind: Multiline, Required: true},
	},
}

// ByKind returns the inquiry form definition of kind.
func ByKind(kind model.InquiryKind) (*Definition, bool) {
	switch kind {
	case model.InquiryQuote:
		return Quote, true
	case model.InquiryEnrollment:
		return Enrollment, true
	case model.InquiryContact:
		return Contact, true
	default:
		return nil, false
	}
}

// NewBooking converts a valid booking submission into the backend payload.
func NewBooking(s *Submission) model.NewBooking {
	return model.NewBooking{
		ClientName:      s.Value("name"),
		ClientEmail:     s.Value("email"),
		ClientPhone:     s.Value("phone"),
		ServiceType:     s.Value("service_type"),
		PreferredDate:   s.Value("preferred_date"),
		PreferredTime:   s.Value("preferred_time"),
		Location:        s.Value("location"),
		BudgetRange:     s.Value("budget_range"),
		AdditionalNotes: s.Value("additional_notes"),
	}
}
