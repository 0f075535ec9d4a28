// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds robots.txt and sitemap.xml for the public site.
package seo

import (
	"encoding/xml"
	"strings"
	"time"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Change frequency values used by the site.
const (
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
)

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapBuilder builds sitemap XML from site paths.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
	seen    map[string]bool
}

// NewSitemapBuilder creates a new sitemap builder.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL: strings.TrimSuffix(siteURL, "/"),
		urls:    make([]SitemapURL, 0),
		seen:    make(map[string]bool),
	}
}

// AddPath adds a site path. Duplicate paths are ignored and a zero lastMod
// is omitted.
func (b *SitemapBuilder) AddPath(path string, freq ChangeFreq, priority string, lastMod time.Time) {
	if b.seen[path] {
		return
	}
	b.seen[path] = true

	loc := b.siteURL + path
	if path == "/" {
		loc = b.siteURL + "/"
	}
	u := SitemapURL{Loc: loc, ChangeFreq: freq, Priority: priority}
	if !lastMod.IsZero() {
		u.LastMod = lastMod.UTC().Format(time.RFC3339)
	}
	b.urls = append(b.urls, u)
}

// Len returns the number of URLs added.
func (b *SitemapBuilder) Len() int {
	return len(b.urls)
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(output, xmlBytes...), nil
}
