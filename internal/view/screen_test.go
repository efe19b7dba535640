// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view_test

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dossier/internal/state"
	"github.com/taibuivan/dossier/internal/view"
	"github.com/taibuivan/dossier/pkg/query"
)

func flagged(status state.Status) *state.Entity {
	return &state.Entity{Status: status, ID: "doc", Title: "Annual report", Schemata: state.SchemaSet{"Pages", "Document"}}
}

/*
TestDocumentScreen_State verifies the layout chosen for each record state.
*/
func TestDocumentScreen_State(t *testing.T) {
	tests := []struct {
		name   string
		store  *state.Store
		want   view.ScreenState
		hasErr bool
	}{
		{name: "Missing", store: state.New(), want: view.ScreenLoading},
		{name: "Loading", store: &state.Store{Entities: map[string]*state.Entity{"doc": flagged(state.Status{IsLoading: true})}}, want: view.ScreenLoading},
		{name: "Error", store: &state.Store{Entities: map[string]*state.Entity{"doc": flagged(state.Status{IsError: true, ShouldLoad: true, Error: &state.LoadError{Message: "gone"}})}}, want: view.ScreenError, hasErr: true},
		{name: "Ready", store: &state.Store{Entities: map[string]*state.Entity{"doc": flagged(state.Status{})}}, want: view.ScreenReady},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen := view.DocumentScreen(tt.store, "doc", query.New("entities", nil, "document"), "")
			assert.Equal(t, tt.want, screen.State)
			assert.Equal(t, tt.hasErr, screen.Error != nil)
		})
	}
}

/*
TestDocumentScreen_Ready verifies the composed fields of a loaded document.
*/
func TestDocumentScreen_Ready(t *testing.T) {
	store := &state.Store{Entities: map[string]*state.Entity{"doc": flagged(state.Status{})}}
	q, err := query.FromLocation("entities", "document:q=revenue", nil, "document")
	require.NoError(t, err)

	screen := view.DocumentScreen(store, "doc", q, "")
	assert.Equal(t, "Annual report", screen.Title)
	assert.Equal(t, "view", screen.ActiveMode)
	assert.Equal(t, "revenue", screen.SearchText)
	assert.False(t, screen.HasSearch)

	assert.Equal(t, "info", view.DocumentScreen(store, "doc", q, "info").ActiveMode)
}

/*
TestSearchLocation verifies that previews and paging are reset while other hash state survives.
*/
func TestSearchLocation(t *testing.T) {
	q, err := query.FromLocation("entities", "document:q=old&document:filter:schema=Email", nil, "document")
	require.NoError(t, err)

	current := view.Location{
		Pathname: "/documents/doc",
		Search:   "document:q=old",
		Hash:     "#preview:id=7&preview:type=entity&preview:mode=info&page=3&mode=browse",
	}

	next, err := view.SearchLocation(q, current, "new")
	require.NoError(t, err)

	assert.Equal(t, "/documents/doc", next.Pathname)
	assert.Equal(t, "mode=browse", next.Hash)

	search, err := url.ParseQuery(next.Search)
	require.NoError(t, err)
	assert.Equal(t, "new", search.Get("document:q"))
	assert.Equal(t, "Email", search.Get("document:filter:schema"))

	_, err = view.SearchLocation(q, view.Location{Hash: "%zz"}, "x")
	assert.Error(t, err)
}

/*
TestScreenFrame verifies title composition and forced authentication.
*/
func TestScreenFrame(t *testing.T) {
	store := &state.Store{
		Metadata: &state.Metadata{
			App:  &state.App{Title: "Dossier", Favicon: "/favicon.png"},
			Auth: &state.Auth{PasswordLogin: true},
		},
		Session: &state.Session{},
	}

	frame := view.ScreenFrame(store, "Leaks", "", true)
	assert.Equal(t, "Leaks - Dossier", frame.Title)
	assert.Equal(t, "/favicon.png", frame.Favicon)
	assert.True(t, frame.ForceAuth)
	require.NotNil(t, frame.Auth)
	assert.True(t, frame.Auth.PasswordLogin)

	loggedIn := store.WithSession(&state.Session{LoggedIn: true})
	frame = view.ScreenFrame(loggedIn, "", "", true)
	assert.Equal(t, "Dossier", frame.Title)
	assert.False(t, frame.ForceAuth)
	assert.Nil(t, frame.Auth)

	// Without metadata the title is used as-is
	assert.Equal(t, "Leaks", view.ScreenFrame(state.New(), "Leaks", "", false).Title)
}

/*
TestScreenFrame_Description verifies the description is carried only when given.
*/
func TestScreenFrame_Description(t *testing.T) {
	tests := []struct {
		name        string
		description string
		wantJSON    bool
	}{
		{name: "given", description: "Documents leaked in 2024", wantJSON: true},
		{name: "omitted", description: "", wantJSON: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := view.ScreenFrame(state.New(), "Leaks", tt.description, false)
			assert.Equal(t, tt.description, frame.Description)

			encoded, err := json.Marshal(frame)
			require.NoError(t, err)
			assert.Equal(t, tt.wantJSON, strings.Contains(string(encoded), `"description"`))
		})
	}
}

/*
TestScreenFrame_OtherLocaleMetadata verifies metadata from another locale
still brands the chrome while reporting itself as not loaded.
*/
func TestScreenFrame_OtherLocaleMetadata(t *testing.T) {
	store := (&state.Store{
		Metadata: &state.Metadata{
			App:  &state.App{Title: "Dossier", Locale: "en", Favicon: "/favicon.png"},
			Auth: &state.Auth{OAuth: true},
		},
	}).WithConfig(state.Config{Locale: "de"})

	frame := view.ScreenFrame(store, "Leaks", "", true)

	assert.Equal(t, "Leaks - Dossier", frame.Title)
	assert.Equal(t, "/favicon.png", frame.Favicon)
	require.NotNil(t, frame.Auth)
	assert.True(t, frame.Auth.OAuth)
	assert.True(t, frame.Metadata.ShouldLoad)
}
