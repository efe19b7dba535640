// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package selector

import (
	"maps"
	"slices"

	"github.com/taibuivan/dossier/internal/state"
)

// # Mode Tags

const (
	// ModeView renders the document body in a viewer.
	ModeView = "view"

	// ModeBrowse lists the children of a folder-like document.
	ModeBrowse = "browse"

	// ModeInfo shows the property sheet; the default inside previews.
	ModeInfo = "info"
)

// viewableSchemata are rendered by a document viewer even when they also hold children.
var viewableSchemata = []string{
	state.SchemaEmail,
	state.SchemaHyperText,
	state.SchemaImage,
	state.SchemaPages,
	state.SchemaTable,
}

// # Document

// DocumentView returns the display mode for a document.
//
// An explicit mode always wins. Otherwise viewable documents open in
// [ModeView], folders in [ModeBrowse], and anything else in [ModeView].
// Rules are checked in that order, so a schema set matching both resolves to view.
func DocumentView(store *state.Store, documentID, mode string) string {
	if mode != "" {
		return mode
	}

	document := Entity(store, documentID)
	if document.Schemata.Has(viewableSchemata...) {
		return ModeView
	}
	if document.Schemata.Has(state.SchemaFolder) {
		return ModeBrowse
	}

	return ModeView
}

// # Entity

// EntityView returns the display mode for a generic entity.
//
// The default is the relation the entity is most prominently involved in:
// the qname of its first reference. Without references the mode is "" and
// the caller picks a fallback.
func EntityView(store *state.Store, entityID, mode string, isPreview bool) string {
	if mode != "" {
		return mode
	}
	if isPreview {
		return ModeInfo
	}

	references := EntityReferences(store, entityID)
	if references.Total > 0 && len(references.Results) > 0 {
		return references.Results[0].Property.Qname
	}

	return ""
}

// EntityReference returns the reference of an entity through qname, falling
// back to its first reference. It returns nil when the entity has none.
func EntityReference(store *state.Store, entityID, qname string) *state.Reference {
	references := EntityReferences(store, entityID)
	if references.Total == 0 || len(references.Results) == 0 {
		return nil
	}

	for index := range references.Results {
		if references.Results[index].Property.Qname == qname {
			return &references.Results[index]
		}
	}

	return &references.Results[0]
}

// # Collection

/*
CollectionView returns the schema tab a collection opens on.

Description: Every schema that is a kind of document is folded into a single
[state.SchemaDocument] bucket, then the bucket with the largest count wins.
An empty histogram yields [state.SchemaDocument].

Tie-break: buckets are scanned in lexicographic order and only a strictly
larger count replaces the leader, so among equal counts the smallest schema
name wins. The outcome never depends on map iteration order.
*/
func CollectionView(store *state.Store, collectionID, mode string, isPreview bool) string {
	if mode != "" {
		return mode
	}
	if isPreview {
		return ModeInfo
	}

	store = snapshot(store)
	collection := Collection(store, collectionID)

	// The raw model is used on purpose: schema ancestry does not depend on locale.
	var model state.Model
	if store.Metadata != nil {
		model = store.Metadata.Schemata
	}

	buckets := make(map[string]int, len(collection.Schemata))
	for name, count := range collection.Schemata {
		bucket := name
		if model.GetSchema(name).IsDocument() {
			bucket = state.SchemaDocument
		}
		buckets[bucket] += count
	}

	largestSchema, largestCount := state.SchemaDocument, 0
	for _, bucket := range slices.Sorted(maps.Keys(buckets)) {
		if buckets[bucket] > largestCount {
			largestSchema, largestCount = bucket, buckets[bucket]
		}
	}

	return largestSchema
}
