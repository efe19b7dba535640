// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package state

// FacetValue is one bucket of a facet.
type FacetValue struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
	Count int    `json:"count"`
}

// Facet is the aggregation of a field across a result set.
type Facet struct {
	Total  int          `json:"total"`
	Values []FacetValue `json:"values,omitempty"`
}

// Result is a stored page of a paginated query.
//
// Results holds opaque ids in query order. The flags are optional so that a
// stored result only overrides the defaults it actually carries.
type Result struct {
	IsLoading  *bool      `json:"isLoading,omitempty"`
	IsError    *bool      `json:"isError,omitempty"`
	ShouldLoad *bool      `json:"shouldLoad,omitempty"`
	Error      *LoadError `json:"error,omitempty"`

	Results  []string         `json:"results,omitempty"`
	Total    int              `json:"total,omitempty"`
	Limit    int              `json:"limit,omitempty"`
	Offset   int              `json:"offset,omitempty"`
	Page     int              `json:"page,omitempty"`
	Pages    int              `json:"pages,omitempty"`
	Next     string           `json:"next,omitempty"`
	Previous string           `json:"previous,omitempty"`
	Facets   map[string]Facet `json:"facets,omitempty"`
}
