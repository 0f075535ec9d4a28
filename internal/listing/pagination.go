// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package listing

import (
	"fmt"
	"net/url"
)

// Pagination holds pagination data for list templates. Page counts come
// from the backend.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	TotalItems  int
	HasPrev     bool
	HasNext     bool
	Pages       []PageLink
	BaseURL     string
	QueryString string
}

// PageLink is a single page link.
type PageLink struct {
	Number     int
	URL        string
	IsCurrent  bool
	IsEllipsis bool
}

// BuildPagination creates pagination data for a server-paginated list.
// baseURL is the path without query string (e.g. "/admin/bookings");
// query holds the parameters to preserve (filters, per_page).
func BuildPagination(currentPage, totalPages, totalItems int, baseURL string, query url.Values) Pagination {
	if totalPages < 1 {
		totalPages = 1
	}
	currentPage = max(1, min(currentPage, totalPages))

	p := Pagination{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		HasPrev:     currentPage > 1,
		HasNext:     currentPage < totalPages,
		BaseURL:     baseURL,
	}

	// Build query string without page parameter
	params := make(url.Values)
	for k, v := range query {
		if k != "page" && len(v) > 0 && v[0] != "" {
			params[k] = v
		}
	}
	if len(params) > 0 {
		p.QueryString = params.Encode()
	}

	p.Pages = pageWindow(currentPage, totalPages, p.PageURL)
	return p
}

// pageWindow returns 5 page numbers centered on the current page, with
// ellipses for gaps, always including the first and last pages.
func pageWindow(currentPage, totalPages int, buildURL func(int) string) []PageLink {
	var pages []PageLink

	start := currentPage - 2
	end := currentPage + 2
	if start < 1 {
		start = 1
		end = 5
	}
	if end > totalPages {
		end = totalPages
		start = max(end-4, 1)
	}

	if start > 1 {
		pages = append(pages, PageLink{Number: 1, URL: buildURL(1)})
		if start > 2 {
			pages = append(pages, PageLink{IsEllipsis: true})
		}
	}
	for i := start; i <= end; i++ {
		pages = append(pages, PageLink{Number: i, URL: buildURL(i), IsCurrent: i == currentPage})
	}
	if end < totalPages {
		if end < totalPages-1 {
			pages = append(pages, PageLink{IsEllipsis: true})
		}
		pages = append(pages, PageLink{Number: totalPages, URL: buildURL(totalPages)})
	}
	return pages
}

// PageURL returns the URL for a specific page number.
func (p Pagination) PageURL(page int) string {
	if p.QueryString != "" {
		return fmt.Sprintf("%s?%s&page=%d", p.BaseURL, p.QueryString, page)
	}
	return fmt.Sprintf("%s?page=%d", p.BaseURL, page)
}

// PrevURL returns the URL for the previous page.
func (p Pagination) PrevURL() string {
	return p.PageURL(p.CurrentPage - 1)
}

// NextURL returns the URL for the next page.
func (p Pagination) NextURL() string {
	return p.PageURL(p.CurrentPage + 1)
}

// ShouldShow returns true if there is more than one page.
func (p Pagination) ShouldShow() bool {
	return p.TotalPages > 1
}
