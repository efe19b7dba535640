// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package view exposes the selectors over HTTP and composes the screen models a
client renders directly.

# Snapshots

Every request resolves against one snapshot: the published store overlaid
with the caller's session and locale choice. Handlers never mutate it.
*/
package view

import (
	"net/url"
	"strings"

	"github.com/taibuivan/dossier/internal/selector"
	"github.com/taibuivan/dossier/internal/state"
	"github.com/taibuivan/dossier/pkg/query"
)

// # Screen State

// ScreenState tells a client which of the three screen layouts to render.
type ScreenState string

const (
	ScreenError   ScreenState = "error"
	ScreenLoading ScreenState = "loading"
	ScreenReady   ScreenState = "ready"
)

// screenState maps record flags to a layout. Errors win over loading.
func screenState(status state.Status) ScreenState {
	switch {
	case status.IsError:
		return ScreenError
	case status.ShouldLoad || status.IsLoading:
		return ScreenLoading
	default:
		return ScreenReady
	}
}

// # Document Screen

// Document is the model of the document screen.
type Document struct {
	State      ScreenState      `json:"state"`
	DocumentID string           `json:"documentId"`
	Document   *state.Entity    `json:"document"`
	Error      *state.LoadError `json:"error,omitempty"`
	Title      string           `json:"title,omitempty"`
	HasSearch  bool             `json:"hasSearch"`
	ActiveMode string           `json:"activeMode"`
	SearchText string           `json:"searchText"`
}

// DocumentScreen composes the document screen. hashMode is the mode chosen in
// the location hash, or "" to let the document's schemata decide.
func DocumentScreen(store *state.Store, documentID string, q query.Query, hashMode string) Document {
	document := selector.Entity(store, documentID)

	return Document{
		State:      screenState(document.Status),
		DocumentID: documentID,
		Document:   document,
		Error:      document.Error,
		Title:      document.Caption(),
		HasSearch:  document.HasSearch(),
		ActiveMode: selector.DocumentView(store, documentID, hashMode),
		SearchText: q.GetString(query.ParamText),
	}
}

// Location is a client-side navigation target.
type Location struct {
	Pathname string `json:"pathname"`
	Search   string `json:"search"`
	Hash     string `json:"hash"`
}

// previewHashParams close the preview pane and reset paging when a new search starts.
var previewHashParams = []string{"preview:id", "preview:type", "preview:mode", "page"}

/*
SearchLocation returns where a search inside a document navigates to.

Description: The pathname is kept, the query text is replaced, and the hash
loses the preview and paging parameters so the new results start on a clean
first page. Other hash parameters survive.

Parameters:
  - q: query.Query (the document's scoped entity query)
  - current: Location
  - text: string (new search text; "" clears the search)

Returns:
  - Location
  - error: Malformed hash
*/
func SearchLocation(q query.Query, current Location, text string) (Location, error) {
	hash, err := url.ParseQuery(strings.TrimPrefix(current.Hash, "#"))
	if err != nil {
		return Location{}, err
	}
	for _, name := range previewHashParams {
		hash.Del(name)
	}

	return Location{
		Pathname: current.Pathname,
		Search:   q.SetString(query.ParamText, text).ToLocation(),
		Hash:     hash.Encode(),
	}, nil
}

// # Frame

// Frame is the chrome around every screen.
type Frame struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Favicon     string          `json:"favicon,omitempty"`
	ForceAuth   bool            `json:"forceAuth"`
	Auth        *state.Auth     `json:"auth,omitempty"`
	Metadata    *state.Metadata `json:"metadata"`
	Session     *state.Session  `json:"session"`
}

// ScreenFrame composes the frame for a screen titled title. When requireSession
// is set and nobody is logged in, the screen body is replaced by a login prompt
// carrying the backend's auth options.
//
// Metadata produced for another locale still brands the chrome until the
// active locale's metadata arrives; Frame.Metadata reports it as not loaded.
func ScreenFrame(store *state.Store, title, description string, requireSession bool) Frame {
	metadata := selector.Metadata(store)
	session := selector.Session(store)

	frame := Frame{
		Title:       title,
		Description: description,
		ForceAuth:   requireSession && !session.LoggedIn,
		Metadata:    metadata,
		Session:     session,
	}

	chrome := metadata
	if chrome.App == nil && store != nil && store.Metadata != nil {
		chrome = store.Metadata
	}

	if app := chrome.App; app != nil {
		frame.Favicon = app.Favicon
		switch {
		case title == "":
			frame.Title = app.Title
		case app.Title != "":
			frame.Title = title + " - " + app.Title
		}
	}

	if frame.ForceAuth {
		frame.Auth = chrome.Auth
	}

	return frame
}
