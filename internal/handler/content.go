// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import "github.com/olegiv/studio-site/internal/forms"

// GalleryItem is one portfolio tile.
type GalleryItem struct {
	Title    string
	Category string
	Caption  string
}

// Portfolio categories.
const (
	CategoryWeddings  = "Weddings"
	CategoryPortraits = "Portraits"
	CategoryEvents    = "Events"
	CategoryCorporate = "Corporate"
	CategoryProducts  = "Products"
)

// PortfolioCategories lists the gallery filters in display order.
var PortfolioCategories = []string{CategoryWeddings, CategoryPortraits, CategoryEvents, CategoryCorporate, CategoryProducts}

// Gallery is the portfolio shown on the public site.
var Gallery = []GalleryItem{
	{"Garden Vows", CategoryWeddings, "An afternoon ceremony at the arboretum"},
	{"First Dance", CategoryWeddings, "Reception lights and a packed dance floor"},
	{"Lakeside Portraits", CategoryPortraits, "Golden hour family session"},
	{"Studio Headshots", CategoryPortraits, "Clean backdrop executive portraits"},
	{"Annual Gala", CategoryEvents, "Full evening coverage for a charity dinner"},
	{"Product Launch", CategoryEvents, "Stage, keynote and audience moments"},
	{"Team Day", CategoryCorporate, "Office culture and team portraits"},
	{"Annual Report", CategoryCorporate, "Leadership and workplace imagery"},
	{"Coffee Line", CategoryProducts, "Packshots on seamless white"},
	{"Jewellery Collection", CategoryProducts, "Macro detail and lifestyle frames"},
}

// FilterGallery returns the items of category, or all items when category
// is empty or unknown.
func FilterGallery(category string) []GalleryItem {
	var out []GalleryItem
	for _, item := range Gallery {
		if item.Category == category {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return Gallery
	}
	return out
}

// Brand is a client shown on the brands page.
type Brand struct {
	Name     string
	Industry string
}

// Brands the studio has worked with.
var Brands = []Brand{
	{"Savannah Coffee", "Food & Beverage"},
	{"Rift Valley Telecom", "Telecommunications"},
	{"Kilima Bank", "Finance"},
	{"Msitu Outdoors", "Retail"},
	{"Pwani Resorts", "Hospitality"},
	{"Jua Energy", "Energy"},
}

// Course is a photography school offering.
type Course struct {
	Name     string
	Duration string
	Summary  string
}

// SchoolCourses are the courses listed on the school page. Names match the
// enrollment form options.
var SchoolCourses = []Course{
	{forms.Courses[0], "4 weeks", "Camera controls, exposure and composition for complete beginners."},
	{forms.Courses[1], "6 weeks", "Lighting, posing and retouching for portrait and wedding work."},
	{forms.Courses[2], "4 weeks", "Story-driven video, audio capture and editing."},
	{forms.Courses[3], "3 weeks", "Colour correction and retouching workflows."},
}

// TeamMember is shown on the about page.
type TeamMember struct {
	Name string
	Role string
}

// Team is the studio staff listed on the about page.
var Team = []TeamMember{
	{"Amani Otieno", "Lead Photographer"},
	{"Wanjiru Kamau", "Videographer"},
	{"Baraka Mwangi", "Photo Editor"},
	{"Zawadi Njeri", "School Coordinator"},
}
