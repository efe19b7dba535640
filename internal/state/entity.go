// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package state

import "slices"

// # Schema Names

const (
	SchemaDocument  = "Document"
	SchemaFolder    = "Folder"
	SchemaPackage   = "Package"
	SchemaWorkbook  = "Workbook"
	SchemaEmail     = "Email"
	SchemaHyperText = "HyperText"
	SchemaImage     = "Image"
	SchemaPages     = "Pages"
	SchemaTable     = "Table"
)

// searchableSchemata lists the schemata whose children can be searched in place.
var searchableSchemata = []string{SchemaFolder, SchemaPackage, SchemaWorkbook}

// SchemaSet is the set of schema names an entity conforms to.
// Order carries no meaning; membership is all that matters.
type SchemaSet []string

// Contains reports whether name is a member of the set.
func (set SchemaSet) Contains(name string) bool {
	return slices.Contains(set, name)
}

// Has reports whether the set intersects names.
func (set SchemaSet) Has(names ...string) bool {
	for _, name := range names {
		if set.Contains(name) {
			return true
		}
	}
	return false
}

// # Entities

// Entity is a schema-typed record such as a document, folder or person.
type Entity struct {
	Status
	ID           string              `json:"id,omitempty"`
	Schema       string              `json:"schema,omitempty"`
	Schemata     SchemaSet           `json:"schemata,omitempty"`
	Title        string              `json:"title,omitempty"`
	FileName     string              `json:"file_name,omitempty"`
	Name         string              `json:"name,omitempty"`
	CollectionID string              `json:"collection_id,omitempty"`
	ParentID     string              `json:"parent_id,omitempty"`
	Properties   map[string][]string `json:"properties,omitempty"`
}

// Caption returns the first non-empty of title, file name and name.
func (entity *Entity) Caption() string {
	for _, candidate := range []string{entity.Title, entity.FileName, entity.Name} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

// HasSearch reports whether free-text search applies within this entity.
func (entity *Entity) HasSearch() bool {
	return entity.Schemata.Has(searchableSchemata...)
}

// # References and Tags

// Property identifies a typed relation between entities.
type Property struct {
	Name  string `json:"name"`
	Qname string `json:"qname"`
	Label string `json:"label,omitempty"`
	Range string `json:"range,omitempty"`
}

// Reference counts the entities pointing at an entity through one property.
type Reference struct {
	Property Property `json:"property"`
	Schema   string   `json:"schema,omitempty"`
	Count    int      `json:"count"`
}

// EntityReferences is the reference list of a single entity.
type EntityReferences struct {
	Status
	Total   int         `json:"total"`
	Results []Reference `json:"results,omitempty"`
}

// Tag is an extracted value (name, email, phone) shared with other entities.
type Tag struct {
	Field string `json:"field"`
	Value string `json:"value"`
	Count int    `json:"count"`
}

// EntityTags is the tag list of a single entity.
type EntityTags struct {
	Status
	Total   int   `json:"total"`
	Results []Tag `json:"results,omitempty"`
}

// DocumentContent holds the extracted body of a document.
type DocumentContent struct {
	Status
	Text string `json:"text,omitempty"`
	HTML string `json:"html,omitempty"`
}
