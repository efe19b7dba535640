// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for paginated results.
//
// # Overview
//
// Queries page through results with an offset/limit pair. This package turns
// that pair into page-based navigation metadata for API responses.
package pagination

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 20
	// MaxLimit is the upper bound for items per page.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds a page and limit.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the OFFSET value derived from [Page] and [Limit].
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta constructs pagination metadata for a response.
//
// It automatically calculates the TotalPages based on the total count and limit.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// FromOffset converts an offset/limit pair into page-based [Params].
//
// # Clamping
//
// A limit outside (0, [MaxLimit]] falls back to [DefaultLimit]; a negative
// offset is treated as zero. Offsets that are not a multiple of the limit land
// on the page containing the first item.
func FromOffset(offset, limit int) Params {
	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}

	return Params{Page: offset/limit + DefaultPage, Limit: limit}
}
