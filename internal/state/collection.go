// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package state

// SchemaHistogram maps a schema name to the number of member entities of that schema.
type SchemaHistogram map[string]int

// Collection is a grouping of entities with aggregate schema counts.
type Collection struct {
	Status
	ID        string          `json:"id,omitempty"`
	ForeignID string          `json:"foreign_id,omitempty"`
	Label     string          `json:"label,omitempty"`
	Summary   string          `json:"summary,omitempty"`
	Category  string          `json:"category,omitempty"`
	Casefile  bool            `json:"casefile,omitempty"`
	Writeable bool            `json:"writeable,omitempty"`
	Count     int             `json:"count,omitempty"`
	Schemata  SchemaHistogram `json:"schemata,omitempty"`
}

// # Permissions

// Role is a user or group that can be granted access to a collection.
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`
}

// Permission is the access a role holds on a collection.
type Permission struct {
	Role  Role `json:"role"`
	Read  bool `json:"read"`
	Write bool `json:"write"`
}

// Permissions is the access control list of a collection.
type Permissions struct {
	Status
	Total   int          `json:"total"`
	Results []Permission `json:"results,omitempty"`
}

// # Cross-referencing

// XrefSummary counts the matches a collection has against another collection.
type XrefSummary struct {
	CollectionID string `json:"collection_id"`
	Matches      int    `json:"matches"`
}

// XrefIndex lists the collections a collection was cross-referenced against.
type XrefIndex struct {
	Status
	Total   int           `json:"total"`
	Results []XrefSummary `json:"results,omitempty"`
}

// XrefMatch pairs an entity with a candidate match from another collection.
type XrefMatch struct {
	Score  float64 `json:"score"`
	Entity *Entity `json:"entity,omitempty"`
	Match  *Entity `json:"match,omitempty"`
}

// XrefMatches is a page of cross-reference matches, keyed by query.
type XrefMatches struct {
	Status
	Total   int         `json:"total"`
	Limit   int         `json:"limit,omitempty"`
	Offset  int         `json:"offset,omitempty"`
	Results []XrefMatch `json:"results,omitempty"`
}
