// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package state_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dossier/internal/state"
)

/*
TestStore_PutIsCopyOnWrite verifies that Put replaces one entry and leaves the receiver intact.
*/
func TestStore_PutIsCopyOnWrite(t *testing.T) {
	original := &state.Store{
		Entities:    map[string]*state.Entity{"a": {ID: "a", Title: "old"}},
		Collections: map[string]*state.Collection{"c": {ID: "c"}},
	}

	next, err := original.Put(state.TableEntities, "a", []byte(`{"id":"a","title":"new","schemata":["Email"]}`))
	require.NoError(t, err)

	assert.Equal(t, "old", original.Entities["a"].Title)
	assert.Equal(t, "new", next.Entities["a"].Title)
	assert.True(t, next.Entities["a"].Schemata.Contains("Email"))
	assert.Same(t, original.Collections["c"], next.Collections["c"])
}

/*
TestStore_PutSingleton verifies singleton tables ignore the id.
*/
func TestStore_PutSingleton(t *testing.T) {
	next, err := state.New().Put(state.TableMetadata, "", []byte(`{"app":{"title":"Dossier","locale":"de"}}`))
	require.NoError(t, err)
	require.NotNil(t, next.Metadata)
	assert.Equal(t, "de", next.Metadata.App.Locale)
}

/*
TestStore_PutErrors covers unknown tables, missing ids and bad payloads.
*/
func TestStore_PutErrors(t *testing.T) {
	store := state.New()

	_, err := store.Put("widgets", "1", []byte(`{}`))
	assert.ErrorIs(t, err, state.ErrUnknownTable)

	_, err = store.Put(state.TableEntities, "", []byte(`{}`))
	assert.ErrorIs(t, err, state.ErrMissingID)

	_, err = store.Put(state.TableEntities, "1", []byte(`{"schemata": 4}`))
	assert.Error(t, err)
}

/*
TestStore_WithSession verifies request-scoped copies.
*/
func TestStore_WithSession(t *testing.T) {
	base := state.New()
	scoped := base.WithSession(&state.Session{LoggedIn: true})

	assert.Nil(t, base.Session)
	assert.True(t, scoped.Session.LoggedIn)
}

/*
TestTable_Kinds checks table classification.
*/
func TestTable_Kinds(t *testing.T) {
	assert.True(t, state.TableMetadata.IsSingleton())
	assert.False(t, state.TableEntities.IsSingleton())
	assert.True(t, state.TableResults.IsQueryKeyed())
	assert.True(t, state.TableCollectionXrefMatches.IsQueryKeyed())
	assert.False(t, state.Table("nope").IsValid())
}

/*
TestModel_GetSchema verifies ancestry resolution through extends.
*/
func TestModel_GetSchema(t *testing.T) {
	model := state.Model{
		"Thing":    {Extends: nil},
		"Document": {Extends: []string{"Thing"}},
		"Pages":    {Extends: []string{"Document"}},
		"Image":    {Name: "Image", Schemata: []string{"Image", "Thing"}},
	}

	assert.True(t, model.GetSchema("Pages").IsDocument())
	assert.Equal(t, []string{"Pages", "Document", "Thing"}, model.GetSchema("Pages").Schemata)
	assert.False(t, model.GetSchema("Image").IsDocument())
	assert.False(t, model.GetSchema("Unknown").IsDocument())

	var empty state.Model
	assert.True(t, empty.GetSchema("Document").IsDocument())
}

/*
TestEntity_Caption verifies the title fallback chain.
*/
func TestEntity_Caption(t *testing.T) {
	assert.Equal(t, "Title", (&state.Entity{Title: "Title", FileName: "f.pdf"}).Caption())
	assert.Equal(t, "f.pdf", (&state.Entity{FileName: "f.pdf", Name: "n"}).Caption())
	assert.Equal(t, "n", (&state.Entity{Name: "n"}).Caption())
	assert.True(t, (&state.Entity{Schemata: state.SchemaSet{"Package"}}).HasSearch())
	assert.False(t, (&state.Entity{Schemata: state.SchemaSet{"Email"}}).HasSearch())
}

/*
TestLoadFixture decodes a YAML snapshot with numeric keys and loading flags.
*/
func TestLoadFixture(t *testing.T) {
	document := `
config:
  locale: fr
metadata:
  app: {title: Dossier, locale: en}
entities:
  doc-1:
    schemata: [Email, Document]
    file_name: mail.eml
collections:
  12:
    schemata: {Email: 3, Person: 1}
results:
  "entities?q=acme":
    isLoading: true
    results: [doc-1]
`
	store, err := state.LoadFixture(strings.NewReader(document))
	require.NoError(t, err)

	assert.Equal(t, "fr", store.Config.Locale)
	assert.Equal(t, "mail.eml", store.Entities["doc-1"].Caption())
	assert.Equal(t, 3, store.Collections["12"].Schemata["Email"])
	require.NotNil(t, store.Results["entities?q=acme"].IsLoading)
	assert.True(t, *store.Results["entities?q=acme"].IsLoading)

	empty, err := state.LoadFixture(strings.NewReader(""))
	require.NoError(t, err)
	assert.NotNil(t, empty)
}
