// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package selector

import "github.com/taibuivan/dossier/internal/state"

// Locale returns the active UI locale.
//
// A local override wins over the locale the server chose for the metadata.
// With neither, it returns "" and the first metadata request carries no
// locale hint, leaving content negotiation to the server.
func Locale(store *state.Store) string {
	store = snapshot(store)

	if store.Config.Locale != "" {
		return store.Config.Locale
	}
	if store.Metadata != nil && store.Metadata.App != nil {
		return store.Metadata.App.Locale
	}

	return ""
}

// Metadata returns the application metadata, or a placeholder when the stored
// metadata was produced for a different locale than the active one.
//
// Stale metadata is thereby invalidated lazily: the placeholder asks for a
// reload in the new locale.
func Metadata(store *state.Store) *state.Metadata {
	store = snapshot(store)

	metadata := Singleton(store.Metadata)
	if metadata.App != nil && metadata.App.Locale != Locale(store) {
		return Singleton[state.Metadata](nil)
	}

	return metadata
}

// Schemata returns the schema model of the current metadata. It is never nil.
func Schemata(store *state.Store) state.Model {
	metadata := Metadata(store)
	if metadata.Schemata == nil {
		return state.Model{}
	}
	return metadata.Schemata
}
