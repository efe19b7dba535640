// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
)

// # Tables

// Table names a store table as it appears on the wire.
type Table string

const (
	TableEntities              Table = "entities"
	TableCollections           Table = "collections"
	TableResults               Table = "results"
	TableEntityTags            Table = "entityTags"
	TableEntityReferences      Table = "entityReferences"
	TableCollectionPermissions Table = "collectionPermissions"
	TableCollectionXrefIndex   Table = "collectionXrefIndex"
	TableCollectionXrefMatches Table = "collectionXrefMatches"
	TableDocumentContent       Table = "documentContent"
	TableNotifications         Table = "notifications"
	TableLocalizedMetadata     Table = "localizedMetadata"
	TableMetadata              Table = "metadata"
	TableSession               Table = "session"
	TableAlerts                Table = "alerts"
	TableStatistics            Table = "statistics"
	TableQueryLogs             Table = "queryLogs"
)

// Tables returns every table the store holds, keyed tables first.
func Tables() []Table {
	return []Table{
		TableEntities,
		TableCollections,
		TableResults,
		TableEntityTags,
		TableEntityReferences,
		TableCollectionPermissions,
		TableCollectionXrefIndex,
		TableCollectionXrefMatches,
		TableDocumentContent,
		TableNotifications,
		TableLocalizedMetadata,
		TableMetadata,
		TableSession,
		TableAlerts,
		TableStatistics,
		TableQueryLogs,
	}
}

// IsValid reports whether t is a known table.
func (t Table) IsValid() bool {
	for _, known := range Tables() {
		if t == known {
			return true
		}
	}
	return false
}

// IsSingleton reports whether t holds a single record rather than an id-keyed table.
func (t Table) IsSingleton() bool {
	switch t {
	case TableMetadata, TableSession, TableAlerts, TableStatistics, TableQueryLogs:
		return true
	}
	return false
}

// IsQueryKeyed reports whether entries of t are keyed by a canonical query key.
func (t Table) IsQueryKeyed() bool {
	return t == TableResults || t == TableCollectionXrefMatches
}

var (
	// ErrUnknownTable is returned when a write names a table the store does not hold.
	ErrUnknownTable = errors.New("state: unknown table")

	// ErrMissingID is returned when a keyed table is written without an id.
	ErrMissingID = errors.New("state: missing record id")
)

// # Store

// Store is one immutable snapshot of the normalized client state.
//
// Nil maps and nil singletons are valid and read as "not loaded".
type Store struct {
	Config Config `json:"config"`

	Metadata   *Metadata   `json:"metadata,omitempty"`
	Session    *Session    `json:"session,omitempty"`
	Alerts     *Alerts     `json:"alerts,omitempty"`
	Statistics *Statistics `json:"statistics,omitempty"`
	QueryLogs  *QueryLogs  `json:"queryLogs,omitempty"`

	Entities              map[string]*Entity           `json:"entities,omitempty"`
	Collections           map[string]*Collection       `json:"collections,omitempty"`
	Results               map[string]*Result           `json:"results,omitempty"`
	EntityTags            map[string]*EntityTags       `json:"entityTags,omitempty"`
	EntityReferences      map[string]*EntityReferences `json:"entityReferences,omitempty"`
	CollectionPermissions map[string]*Permissions      `json:"collectionPermissions,omitempty"`
	CollectionXrefIndex   map[string]*XrefIndex        `json:"collectionXrefIndex,omitempty"`
	CollectionXrefMatches map[string]*XrefMatches      `json:"collectionXrefMatches,omitempty"`
	DocumentContent       map[string]*DocumentContent  `json:"documentContent,omitempty"`
	Notifications         map[string]*Notification     `json:"notifications,omitempty"`

	// LocalizedMetadata holds the metadata produced for each locale, keyed by locale.
	LocalizedMetadata map[string]*Metadata `json:"localizedMetadata,omitempty"`
}

// New returns an empty snapshot.
func New() *Store {
	return &Store{}
}

// WithSession returns a copy of the snapshot bound to session.
func (store *Store) WithSession(session *Session) *Store {
	next := store.clone()
	next.Session = session
	return next
}

// WithConfig returns a copy of the snapshot bound to the local configuration.
func (store *Store) WithConfig(config Config) *Store {
	next := store.clone()
	next.Config = config
	return next
}

// Localized returns a copy of the snapshot whose metadata is the one produced
// for locale. Without such an entry the snapshot is returned unchanged.
func (store *Store) Localized(locale string) *Store {
	if store == nil || locale == "" {
		return store
	}
	metadata, ok := store.LocalizedMetadata[locale]
	if !ok || metadata == nil {
		return store
	}
	next := store.clone()
	next.Metadata = metadata
	return next
}

/*
Put returns a successor snapshot in which the entry (table, id) is replaced by
the decoded payload.

Description: Only the written table is copied; every other table is shared
with the receiver, which is left untouched. Singleton tables ignore id.

Parameters:
  - table: Table
  - id: string (record id, or canonical query key for query-keyed tables)
  - payload: []byte (JSON encoding of the table's record type)

Returns:
  - *Store: The successor snapshot
  - error: ErrUnknownTable, ErrMissingID or a decoding failure
*/
func (store *Store) Put(table Table, id string, payload []byte) (*Store, error) {
	next := store.clone()
	if err := next.apply(table, id, payload, true); err != nil {
		return nil, err
	}
	return next, nil
}

// apply decodes payload into the entry (table, id) of store. When shared is
// set the written table is copied first, since other snapshots may reference it.
func (store *Store) apply(table Table, id string, payload []byte, shared bool) error {
	if !table.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	if !table.IsSingleton() && id == "" {
		return fmt.Errorf("%w: table %q", ErrMissingID, table)
	}

	var err error

	switch table {
	case TableEntities:
		err = putRecord(&store.Entities, id, payload, shared)
	case TableCollections:
		err = putRecord(&store.Collections, id, payload, shared)
	case TableResults:
		err = putRecord(&store.Results, id, payload, shared)
	case TableEntityTags:
		err = putRecord(&store.EntityTags, id, payload, shared)
	case TableEntityReferences:
		err = putRecord(&store.EntityReferences, id, payload, shared)
	case TableCollectionPermissions:
		err = putRecord(&store.CollectionPermissions, id, payload, shared)
	case TableCollectionXrefIndex:
		err = putRecord(&store.CollectionXrefIndex, id, payload, shared)
	case TableCollectionXrefMatches:
		err = putRecord(&store.CollectionXrefMatches, id, payload, shared)
	case TableDocumentContent:
		err = putRecord(&store.DocumentContent, id, payload, shared)
	case TableNotifications:
		err = putRecord(&store.Notifications, id, payload, shared)
	case TableLocalizedMetadata:
		err = putRecord(&store.LocalizedMetadata, id, payload, shared)
	case TableMetadata:
		err = putSingleton(&store.Metadata, payload)
	case TableSession:
		err = putSingleton(&store.Session, payload)
	case TableAlerts:
		err = putSingleton(&store.Alerts, payload)
	case TableStatistics:
		err = putSingleton(&store.Statistics, payload)
	case TableQueryLogs:
		err = putSingleton(&store.QueryLogs, payload)
	}

	if err != nil {
		return fmt.Errorf("state: decode %s record: %w", table, err)
	}
	return nil
}

// clone copies the snapshot header. Tables are shared.
func (store *Store) clone() *Store {
	if store == nil {
		return New()
	}
	next := *store
	return &next
}

// putRecord decodes payload and stores it under id. The table is left
// untouched when decoding fails.
func putRecord[T any](table *map[string]*T, id string, payload []byte, shared bool) error {
	record, err := decode[T](payload)
	if err != nil {
		return err
	}

	if shared || *table == nil {
		next := make(map[string]*T, len(*table)+1)
		maps.Copy(next, *table)
		*table = next
	}
	(*table)[id] = record
	return nil
}

func putSingleton[T any](field **T, payload []byte) error {
	record, err := decode[T](payload)
	if err != nil {
		return err
	}
	*field = record
	return nil
}

func decode[T any](payload []byte) (*T, error) {
	record := new(T)
	if err := json.Unmarshal(payload, record); err != nil {
		return nil, err
	}
	return record, nil
}
