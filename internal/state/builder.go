// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package state

import "maps"

// Builder assembles a snapshot from many records without copying tables.
//
// It writes into a private store that nobody else can observe, so each record
// costs one decode and one map insert. Use [Store.Put] once a snapshot is
// published.
type Builder struct {
	store *Store
	built bool
}

// NewBuilder returns a builder over an empty snapshot.
func NewBuilder() *Builder {
	return &Builder{store: New()}
}

// Put replaces the entry (table, id) with the decoded payload. On error the
// snapshot is left as it was.
func (builder *Builder) Put(table Table, id string, payload []byte) error {
	if builder.built {
		// The store may already be published; continue on a private copy.
		builder.store = builder.store.detach()
		builder.built = false
	}
	return builder.store.apply(table, id, payload, false)
}

// Store returns the assembled snapshot.
func (builder *Builder) Store() *Store {
	builder.built = true
	return builder.store
}

// detach copies every table so that later in-place writes stay private.
func (store *Store) detach() *Store {
	next := store.clone()
	next.Entities = maps.Clone(store.Entities)
	next.Collections = maps.Clone(store.Collections)
	next.Results = maps.Clone(store.Results)
	next.EntityTags = maps.Clone(store.EntityTags)
	next.EntityReferences = maps.Clone(store.EntityReferences)
	next.CollectionPermissions = maps.Clone(store.CollectionPermissions)
	next.CollectionXrefIndex = maps.Clone(store.CollectionXrefIndex)
	next.CollectionXrefMatches = maps.Clone(store.CollectionXrefMatches)
	next.DocumentContent = maps.Clone(store.DocumentContent)
	next.Notifications = maps.Clone(store.Notifications)
	next.LocalizedMetadata = maps.Clone(store.LocalizedMetadata)
	return next
}
