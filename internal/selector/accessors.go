// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package selector

import (
	"github.com/taibuivan/dossier/internal/state"
	"github.com/taibuivan/dossier/pkg/query"
)

// DefaultQueryLogLimit is the number of recent searches shown by default.
const DefaultQueryLogLimit = 9

// # Records

// Entity returns an entity or its placeholder.
func Entity(store *state.Store, entityID string) *state.Entity {
	return Object(snapshot(store).Entities, entityID)
}

// Collection returns a collection or its placeholder.
func Collection(store *state.Store, collectionID string) *state.Collection {
	return Object(snapshot(store).Collections, collectionID)
}

// DocumentContent returns the extracted body of a document.
func DocumentContent(store *state.Store, documentID string) *state.DocumentContent {
	return Object(snapshot(store).DocumentContent, documentID)
}

func EntityTags(store *state.Store, entityID string) *state.EntityTags {
	return Object(snapshot(store).EntityTags, entityID)
}

func EntityReferences(store *state.Store, entityID string) *state.EntityReferences {
	return Object(snapshot(store).EntityReferences, entityID)
}

func CollectionPermissions(store *state.Store, collectionID string) *state.Permissions {
	return Object(snapshot(store).CollectionPermissions, collectionID)
}

func CollectionXrefIndex(store *state.Store, collectionID string) *state.XrefIndex {
	return Object(snapshot(store).CollectionXrefIndex, collectionID)
}

// CollectionXrefMatches returns the match page stored under the query's key.
func CollectionXrefMatches(store *state.Store, q query.Query) *state.XrefMatches {
	return Object(snapshot(store).CollectionXrefMatches, q.ToKey())
}

// # Singletons

func Session(store *state.Store) *state.Session {
	return Singleton(snapshot(store).Session)
}

func Statistics(store *state.Store) *state.Statistics {
	return Singleton(snapshot(store).Statistics)
}

func Alerts(store *state.Store) *state.Alerts {
	return Singleton(snapshot(store).Alerts)
}

func QueryLogs(store *state.Store) *state.QueryLogs {
	return Singleton(snapshot(store).QueryLogs)
}

// QueryLogsLimited returns the search history truncated to limit entries.
// A non-positive limit means [DefaultQueryLogLimit].
func QueryLogsLimited(store *state.Store, limit int) *state.QueryLogs {
	if limit <= 0 {
		limit = DefaultQueryLogLimit
	}

	logs := QueryLogs(store)
	limited := *logs
	limited.Results = []state.QueryLog{}
	if len(logs.Results) > 0 {
		limited.Results = append(limited.Results, logs.Results[:min(limit, len(logs.Results))]...)
	}

	return &limited
}
