// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package state

import (
	"slices"
	"time"
)

// # Schema Model

// Schema describes one entity type of the data model.
type Schema struct {
	Name     string   `json:"name"`
	Label    string   `json:"label,omitempty"`
	Plural   string   `json:"plural,omitempty"`
	Abstract bool     `json:"abstract,omitempty"`
	Extends  []string `json:"extends,omitempty"`

	// Schemata lists the schema itself and all of its ancestors.
	Schemata []string `json:"schemata,omitempty"`
}

// IsA reports whether the schema is name or descends from it.
func (schema *Schema) IsA(name string) bool {
	if schema == nil {
		return false
	}
	return schema.Name == name || slices.Contains(schema.Schemata, name)
}

// IsDocument reports whether the schema is any kind of document.
func (schema *Schema) IsDocument() bool {
	return schema.IsA(SchemaDocument)
}

// Model is the schema registry served with the application metadata.
// A nil Model is valid and knows no schemata.
type Model map[string]*Schema

// GetSchema returns the named schema. Unknown names yield a bare schema
// that only conforms to itself.
func (model Model) GetSchema(name string) *Schema {
	schema, ok := model[name]
	if !ok || schema == nil {
		return &Schema{Name: name, Schemata: []string{name}}
	}

	if len(schema.Schemata) > 0 && schema.Name != "" {
		return schema
	}

	resolved := *schema
	resolved.Name = name
	resolved.Schemata = model.lineage(name)
	return &resolved
}

// lineage walks the extends graph breadth-first.
func (model Model) lineage(name string) []string {
	seen := map[string]bool{name: true}
	queue := []string{name}
	lineage := []string{}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		lineage = append(lineage, current)

		schema, ok := model[current]
		if !ok || schema == nil {
			continue
		}
		for _, parent := range schema.Extends {
			if !seen[parent] {
				seen[parent] = true
				queue = append(queue, parent)
			}
		}
	}

	return lineage
}

// # Application Metadata

// App is the branding and locale block of the metadata.
type App struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
	Locale      string `json:"locale"`
	Logo        string `json:"logo,omitempty"`
	Favicon     string `json:"favicon,omitempty"`
}

// Auth describes the login options offered by the backend.
type Auth struct {
	PasswordLogin bool   `json:"password_login,omitempty"`
	OAuth         bool   `json:"oauth,omitempty"`
	OAuthURI      string `json:"oauth_uri,omitempty"`
	Registration  string `json:"registration_uri,omitempty"`
}

// Metadata is the locale-dependent application description.
type Metadata struct {
	Status
	App        *App              `json:"app,omitempty"`
	Auth       *Auth             `json:"auth,omitempty"`
	Schemata   Model             `json:"schemata,omitempty"`
	Categories map[string]string `json:"categories,omitempty"`
}

// # Session and Local Configuration

// Session describes the current user.
type Session struct {
	Status
	LoggedIn bool   `json:"loggedIn"`
	UserID   string `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Config is the user's local configuration, e.g. a locale override.
type Config struct {
	Locale string `json:"locale,omitempty"`
}

// # Singletons

// Statistics is the system-wide summary shown on the home screen.
type Statistics struct {
	Status
	Collections int            `json:"collections"`
	Entities    int            `json:"entities"`
	Schemata    map[string]int `json:"schemata,omitempty"`
	Countries   map[string]int `json:"countries,omitempty"`
}

// Alert is a saved search the user is notified about.
type Alert struct {
	ID    string `json:"id"`
	Query string `json:"query"`
}

// Alerts is the user's list of saved searches.
type Alerts struct {
	Status
	Total   int     `json:"total"`
	Results []Alert `json:"results,omitempty"`
}

// QueryLog is one entry of the user's search history.
type QueryLog struct {
	Query     string    `json:"query"`
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"created_at"`
}

// QueryLogs is the user's search history, most recent first.
type QueryLogs struct {
	Status
	Total   int        `json:"total"`
	Results []QueryLog `json:"results,omitempty"`
}

// Notification reports an event on a watched entity or collection.
type Notification struct {
	Status
	ID        string         `json:"id,omitempty"`
	Event     string         `json:"event,omitempty"`
	Params    map[string]any `json:"params,omitempty"`
	CreatedAt time.Time      `json:"created_at,omitempty"`
}
