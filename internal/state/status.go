// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package state defines the normalized, in-memory store that every selector reads.

The store is a set of independent tables (entities, collections, paginated
results, references, permissions, ...) plus a handful of singleton records
(metadata, session, statistics). It is populated by ingest collaborators and is
read-only from the point of view of the selector layer.

Lifecycle:

  - Immutability: a [*Store] is never mutated after it is published.
  - Replacement: writers derive a successor with [Store.Put], which replaces a
    single table entry wholesale and shares every other table.
  - Absence: missing data is never an error. Every record embeds [Status] so
    that "not loaded", "loading" and "failed" travel as data.
*/
package state

// # Load Status

// LoadError is the failure payload attached by the fetch collaborator.
type LoadError struct {
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
}

// Status carries the loading flags embedded in every record.
type Status struct {
	IsLoading  bool       `json:"isLoading"`
	IsError    bool       `json:"isError"`
	ShouldLoad bool       `json:"shouldLoad"`
	Error      *LoadError `json:"error,omitempty"`
}

// NotLoaded returns the placeholder status for data that has not been fetched.
func NotLoaded() Status {
	return Status{ShouldLoad: true}
}

// SetStatus replaces the flags. It lets generic code build placeholders for any record type.
func (s *Status) SetStatus(status Status) {
	*s = status
}

// IsReady reports whether the record holds usable data.
func (s Status) IsReady() bool {
	return !s.IsLoading && !s.IsError && !s.ShouldLoad
}
