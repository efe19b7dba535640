// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package selector derives view-ready values from a [state.Store] snapshot.

Every selector is a pure function of the snapshot passed to it: nothing is
cached, fetched or written. Absence is reported as data, through the
[state.Status] flags of a placeholder record, never as an error or a panic.

Selector Families:

  - Objects: [Object] and [Singleton] resolve a table entry or a placeholder.
  - Results: [Result] expands a stored page of ids into records.
  - Views: [DocumentView], [EntityView] and [CollectionView] pick a default display mode.
  - Locale: [Locale] and [Metadata] keep locale-dependent metadata consistent.
*/
package selector

import "github.com/taibuivan/dossier/internal/state"

// record is satisfied by pointers to every state record type, which embed [state.Status].
type record[T any] interface {
	*T
	SetStatus(state.Status)
}

// Object returns table[id], or a not-loaded placeholder when id is empty or absent.
//
// The stored record is returned unchanged, including any loading or error
// flags set by the fetch collaborator.
func Object[T any, P record[T]](table map[string]*T, id string) *T {
	if id == "" {
		return placeholder[T, P]()
	}

	found, ok := table[id]
	if !ok || found == nil {
		return placeholder[T, P]()
	}

	return found
}

// Singleton applies the [Object] rule to a singleton table.
func Singleton[T any, P record[T]](found *T) *T {
	if found == nil {
		return placeholder[T, P]()
	}
	return found
}

func placeholder[T any, P record[T]]() *T {
	empty := new(T)
	P(empty).SetStatus(state.NotLoaded())
	return empty
}

// snapshot substitutes an empty store for nil so selectors stay total.
func snapshot(store *state.Store) *state.Store {
	if store == nil {
		return state.New()
	}
	return store
}
