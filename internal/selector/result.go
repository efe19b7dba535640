// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package selector

import (
	"github.com/taibuivan/dossier/internal/state"
	"github.com/taibuivan/dossier/pkg/pointer"
	"github.com/taibuivan/dossier/pkg/query"
	"github.com/taibuivan/dossier/pkg/slice"
)

// Expander resolves one id of a result page into a record.
type Expander[T any] func(store *state.Store, id string) T

// Page is a paginated result whose ids have been expanded into records.
type Page[T any] struct {
	state.Status
	Results  []T                    `json:"results"`
	Total    int                    `json:"total"`
	Limit    int                    `json:"limit,omitempty"`
	Offset   int                    `json:"offset,omitempty"`
	Page     int                    `json:"page,omitempty"`
	Pages    int                    `json:"pages,omitempty"`
	Next     string                 `json:"next,omitempty"`
	Previous string                 `json:"previous,omitempty"`
	Facets   map[string]state.Facet `json:"facets,omitempty"`
}

/*
Result resolves the page stored under the query's canonical key.

Description: The page starts from the not-loaded defaults (no results,
ShouldLoad set). A stored result then overrides, field by field, whatever it
actually carries. Ids are expanded in their stored order, which is the order
the query defined; the resolver never re-sorts.

Parameters:
  - store: *state.Store
  - q: query.Query
  - expand: Expander[T] (what an id resolves to)

Returns:
  - Page[T]: The expanded page
*/
func Result[T any](store *state.Store, q query.Query, expand Expander[T]) Page[T] {
	store = snapshot(store)

	page := Page[T]{Status: state.NotLoaded()}
	var ids []string

	if stored, ok := store.Results[q.ToKey()]; ok && stored != nil {
		page.IsLoading = pointer.Fallback(stored.IsLoading, page.IsLoading)
		page.IsError = pointer.Fallback(stored.IsError, page.IsError)
		page.ShouldLoad = pointer.Fallback(stored.ShouldLoad, page.ShouldLoad)
		page.Error = stored.Error

		page.Total = stored.Total
		page.Limit = stored.Limit
		page.Offset = stored.Offset
		page.Page = stored.Page
		page.Pages = stored.Pages
		page.Next = stored.Next
		page.Previous = stored.Previous
		page.Facets = stored.Facets

		ids = stored.Results
	}

	page.Results = slice.Map(ids, func(id string) T {
		return expand(store, id)
	})

	return page
}

// EntitiesResult resolves a page of entities.
func EntitiesResult(store *state.Store, q query.Query) Page[*state.Entity] {
	return Result[*state.Entity](store, q, Entity)
}

// CollectionsResult resolves a page of collections.
func CollectionsResult(store *state.Store, q query.Query) Page[*state.Collection] {
	return Result[*state.Collection](store, q, Collection)
}

// NotificationsResult resolves a page of notifications.
func NotificationsResult(store *state.Store, q query.Query) Page[*state.Notification] {
	return Result[*state.Notification](store, q, func(store *state.Store, id string) *state.Notification {
		return Object(store.Notifications, id)
	})
}
