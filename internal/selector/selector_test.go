// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package selector_test

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dossier/internal/selector"
	"github.com/taibuivan/dossier/internal/state"
	"github.com/taibuivan/dossier/pkg/pointer"
	"github.com/taibuivan/dossier/pkg/query"
)

// model is a small schema registry in which Email and Pages are documents but Image is not.
func model() state.Model {
	return state.Model{
		"Thing":    {Name: "Thing"},
		"Document": {Name: "Document", Extends: []string{"Thing"}},
		"Email":    {Name: "Email", Extends: []string{"Document"}},
		"Pages":    {Name: "Pages", Extends: []string{"Document"}},
		"Image":    {Name: "Image", Extends: []string{"Thing"}},
		"Person":   {Name: "Person", Extends: []string{"Thing"}},
	}
}

func fixture() *state.Store {
	return &state.Store{
		Metadata: &state.Metadata{
			App:      &state.App{Title: "Dossier", Locale: "en"},
			Schemata: model(),
		},
		Entities: map[string]*state.Entity{
			"doc-1":    {ID: "doc-1", Schemata: state.SchemaSet{"Email", "Document"}},
			"folder-1": {ID: "folder-1", Schemata: state.SchemaSet{"Folder", "Document"}},
			"pkg-1":    {ID: "pkg-1", Schemata: state.SchemaSet{"Package"}},
			"loading":  {Status: state.Status{IsLoading: true}},
		},
		Collections: map[string]*state.Collection{
			"c-docs":  {ID: "c-docs", Schemata: state.SchemaHistogram{"Image": 2, "Document": 5}},
			"c-fold":  {ID: "c-fold", Schemata: state.SchemaHistogram{"Email": 2, "Pages": 2, "Person": 3}},
			"c-tie":   {ID: "c-tie", Schemata: state.SchemaHistogram{"B": 3, "A": 3}},
			"c-empty": {ID: "c-empty"},
		},
		EntityReferences: map[string]*state.EntityReferences{
			"person-1": {
				Total: 2,
				Results: []state.Reference{
					{Property: state.Property{Qname: "Ownership:owner"}, Count: 4},
					{Property: state.Property{Qname: "Directorship:director"}, Count: 1},
				},
			},
			"person-2": {Total: 0},
		},
	}
}

/*
TestObject_Placeholder verifies that empty and unknown ids resolve to the not-loaded placeholder.
*/
func TestObject_Placeholder(t *testing.T) {
	store := fixture()

	for _, id := range []string{"", "missing"} {
		entity := selector.Object(store.Entities, id)
		require.NotNil(t, entity)
		assert.Equal(t, state.NotLoaded(), entity.Status, "id %q", id)
		assert.Empty(t, entity.ID)
	}

	// Nil tables behave like empty ones
	tags := selector.Object[state.EntityTags](nil, "doc-1")
	assert.True(t, tags.ShouldLoad)
}

/*
TestObject_PassesStoredFlags verifies that a stored record is returned unchanged.
*/
func TestObject_PassesStoredFlags(t *testing.T) {
	store := fixture()

	loading := selector.Entity(store, "loading")
	assert.True(t, loading.IsLoading)
	assert.False(t, loading.ShouldLoad)
	assert.Same(t, store.Entities["doc-1"], selector.Entity(store, "doc-1"))
}

/*
TestSingleton_NilStore verifies that every accessor is total, even on a nil store.
*/
func TestSingleton_NilStore(t *testing.T) {
	assert.True(t, selector.Session(nil).ShouldLoad)
	assert.True(t, selector.Statistics(nil).ShouldLoad)
	assert.True(t, selector.Alerts(nil).ShouldLoad)
	assert.True(t, selector.Metadata(nil).ShouldLoad)
	assert.True(t, selector.Entity(nil, "x").ShouldLoad)
	assert.Equal(t, "", selector.Locale(nil))
}

/*
TestResult_Defaults verifies the page returned for a query that was never stored.
*/
func TestResult_Defaults(t *testing.T) {
	page := selector.EntitiesResult(fixture(), query.New("entities", nil, ""))

	assert.True(t, page.ShouldLoad)
	assert.False(t, page.IsLoading)
	assert.False(t, page.IsError)
	assert.NotNil(t, page.Results)
	assert.Empty(t, page.Results)
}

/*
TestResult_OrderAndMetadata verifies that ids expand in stored order and metadata is kept verbatim.
*/
func TestResult_OrderAndMetadata(t *testing.T) {
	store := fixture()
	q := query.New("entities", nil, "").SetString(query.ParamText, "acme")
	store.Results = map[string]*state.Result{
		q.ToKey(): {
			ShouldLoad: pointer.To(false),
			Results:    []string{"pkg-1", "doc-1", "folder-1"},
			Total:      3,
			Limit:      20,
			Next:       "cursor-2",
		},
	}

	page := selector.EntitiesResult(store, q)

	require.Len(t, page.Results, 3)
	assert.Equal(t, "pkg-1", page.Results[0].ID)
	assert.Equal(t, "doc-1", page.Results[1].ID)
	assert.Equal(t, "folder-1", page.Results[2].ID)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, "cursor-2", page.Next)
	assert.False(t, page.ShouldLoad)

	// Custom expanders see the same order
	ids := selector.Result[string](store, q, func(_ *state.Store, id string) string { return "#" + id })
	assert.Equal(t, []string{"#pkg-1", "#doc-1", "#folder-1"}, ids.Results)
}

/*
TestResult_FlagOverlay verifies that stored flags override only the defaults they define.
*/
func TestResult_FlagOverlay(t *testing.T) {
	store := fixture()
	q := query.New("collections", nil, "")
	store.Results = map[string]*state.Result{
		q.ToKey(): {IsLoading: pointer.To(true)},
	}

	page := selector.CollectionsResult(store, q)

	assert.True(t, page.IsLoading)
	assert.True(t, page.ShouldLoad, "undefined flags keep their default")
	assert.Empty(t, page.Results)
}

/*
TestResult_ErrorPassthrough verifies that a stored failure reaches the page unchanged.
*/
func TestResult_ErrorPassthrough(t *testing.T) {
	store := fixture()
	q := query.New("entities", nil, "")
	store.Results = map[string]*state.Result{
		q.ToKey(): {
			IsError: pointer.To(true),
			Error:   &state.LoadError{Message: "boom", Status: 500},
		},
	}

	page := selector.EntitiesResult(store, q)

	assert.True(t, page.IsError)
	require.NotNil(t, page.Error)
	assert.Equal(t, state.LoadError{Message: "boom", Status: 500}, *page.Error)
	assert.True(t, page.ShouldLoad, "undefined flags keep their default")
	assert.False(t, page.IsLoading)
	assert.Empty(t, page.Results)
}

/*
TestResult_SideEffectFree verifies that resolving twice yields equal output and leaves the store intact.
*/
func TestResult_SideEffectFree(t *testing.T) {
	store := fixture()
	q := query.New("entities", nil, "")
	store.Results = map[string]*state.Result{
		q.ToKey(): {Results: []string{"doc-1", "missing"}, Total: 2},
	}

	first := selector.EntitiesResult(store, q)
	second := selector.EntitiesResult(store, q)

	assert.Empty(t, cmp.Diff(first, second))
	assert.Equal(t, []string{"doc-1", "missing"}, store.Results[q.ToKey()].Results)
	assert.True(t, first.Results[1].ShouldLoad)
}

/*
TestDocumentView covers explicit modes and the schema rules.
*/
func TestDocumentView(t *testing.T) {
	store := fixture()

	tests := []struct {
		name       string
		documentID string
		mode       string
		expected   string
	}{
		{"explicit_overrides_folder", "folder-1", "view", "view"},
		{"email_views", "doc-1", "", selector.ModeView},
		{"folder_browses", "folder-1", "", selector.ModeBrowse},
		{"package_defaults_to_view", "pkg-1", "", selector.ModeView},
		{"missing_defaults_to_view", "nope", "", selector.ModeView},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, selector.DocumentView(store, tt.documentID, tt.mode))
		})
	}
}

/*
TestDocumentView_ViewableWinsOverFolder verifies the fixed rule order.
*/
func TestDocumentView_ViewableWinsOverFolder(t *testing.T) {
	store := &state.Store{Entities: map[string]*state.Entity{
		"both": {Schemata: state.SchemaSet{"Folder", "Email"}},
	}}
	assert.Equal(t, selector.ModeView, selector.DocumentView(store, "both", ""))
}

/*
TestEntityView covers explicit modes, previews and the first-reference default.
*/
func TestEntityView(t *testing.T) {
	store := fixture()

	assert.Equal(t, "tags", selector.EntityView(store, "person-1", "tags", true))
	assert.Equal(t, selector.ModeInfo, selector.EntityView(store, "person-1", "", true))
	assert.Equal(t, "Ownership:owner", selector.EntityView(store, "person-1", "", false))
	assert.Equal(t, "", selector.EntityView(store, "person-2", "", false))
	assert.Equal(t, "", selector.EntityView(store, "unknown", "", false))
}

/*
TestEntityReference verifies qname lookup and the first-reference fallback.
*/
func TestEntityReference(t *testing.T) {
	store := fixture()

	ref := selector.EntityReference(store, "person-1", "Directorship:director")
	require.NotNil(t, ref)
	assert.Equal(t, 1, ref.Count)

	fallback := selector.EntityReference(store, "person-1", "Unknown:rel")
	require.NotNil(t, fallback)
	assert.Equal(t, "Ownership:owner", fallback.Property.Qname)

	assert.Nil(t, selector.EntityReference(store, "person-2", "Ownership:owner"))
}

/*
TestCollectionView covers folding, defaults and the lexicographic tie-break.
*/
func TestCollectionView(t *testing.T) {
	store := fixture()

	tests := []struct {
		name         string
		collectionID string
		mode         string
		preview      bool
		expected     string
	}{
		{"explicit", "c-docs", "Person", false, "Person"},
		{"preview", "c-docs", "", true, selector.ModeInfo},
		{"document_beats_image", "c-docs", "", false, state.SchemaDocument},
		{"folded_documents_win", "c-fold", "", false, state.SchemaDocument},
		{"empty_histogram", "c-empty", "", false, state.SchemaDocument},
		{"missing_collection", "c-none", "", false, state.SchemaDocument},
		{"tie_smallest_name", "c-tie", "", false, "A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, selector.CollectionView(store, tt.collectionID, tt.mode, tt.preview))
		})
	}
}

/*
TestCollectionView_TieIsStable verifies that repeated runs agree despite map iteration order.
*/
func TestCollectionView_TieIsStable(t *testing.T) {
	store := &state.Store{Collections: map[string]*state.Collection{
		"c": {Schemata: state.SchemaHistogram{"Zeta": 4, "Alpha": 4, "Mid": 4, "Beta": 1}},
	}}

	for range 50 {
		require.Equal(t, "Alpha", selector.CollectionView(store, "c", "", false))
	}
}

/*
TestLocale covers override, metadata and the empty fallback.
*/
func TestLocale(t *testing.T) {
	withMetadata := func(locale string) *state.Store {
		return &state.Store{Metadata: &state.Metadata{App: &state.App{Locale: locale}}}
	}

	assert.Equal(t, "fr", selector.Locale(withMetadata("en").WithConfig(state.Config{Locale: "fr"})))
	assert.Equal(t, "de", selector.Locale(withMetadata("de")))
	assert.Equal(t, "", selector.Locale(state.New()))
}

/*
TestMetadata_LocaleGuard verifies that metadata for another locale is treated as absent.
*/
func TestMetadata_LocaleGuard(t *testing.T) {
	store := fixture()

	assert.Same(t, store.Metadata, selector.Metadata(store))

	stale := selector.Metadata(store.WithConfig(state.Config{Locale: "fr"}))
	assert.True(t, stale.ShouldLoad)
	assert.Nil(t, stale.App)

	assert.Empty(t, selector.Schemata(store.WithConfig(state.Config{Locale: "fr"})))
	assert.True(t, selector.Schemata(store).GetSchema("Email").IsDocument())
}

/*
TestCollectionXrefMatches verifies lookup by canonical query key.
*/
func TestCollectionXrefMatches(t *testing.T) {
	q := query.New("collections/1/xref", url.Values{"filter:match_collection_id": {"2"}}, "")
	store := &state.Store{CollectionXrefMatches: map[string]*state.XrefMatches{
		q.ToKey(): {Total: 7},
	}}

	assert.Equal(t, 7, selector.CollectionXrefMatches(store, q).Total)
	assert.True(t, selector.CollectionXrefMatches(store, q.SetString("offset", "20")).ShouldLoad)
}

/*
TestQueryLogsLimited verifies truncation, the default limit and status passthrough.
*/
func TestQueryLogsLimited(t *testing.T) {
	logs := make([]state.QueryLog, 12)
	for index := range logs {
		logs[index].Query = string(rune('a' + index))
	}
	store := &state.Store{QueryLogs: &state.QueryLogs{Total: 12, Results: logs}}

	assert.Len(t, selector.QueryLogsLimited(store, 0).Results, selector.DefaultQueryLogLimit)
	assert.Len(t, selector.QueryLogsLimited(store, 3).Results, 3)
	assert.Len(t, selector.QueryLogsLimited(store, 50).Results, 12)
	assert.Len(t, store.QueryLogs.Results, 12)

	empty := selector.QueryLogsLimited(state.New(), 5)
	assert.True(t, empty.ShouldLoad)
	assert.NotNil(t, empty.Results)
	assert.Empty(t, empty.Results)
}
