// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package query_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dossier/pkg/query"
)

/*
TestQuery_KeyIsOrderIndependent verifies that equivalent filters built in different orders share a key.
*/
func TestQuery_KeyIsOrderIndependent(t *testing.T) {
	first := query.New("entities", nil, "").
		SetString(query.ParamText, "acme").
		SetFilter("schema", "Email", "Pages").
		SetFilter("collection_id", "7")

	second := query.New("entities", nil, "").
		SetFilter("collection_id", "7").
		Add(query.FilterPrefix+"schema", "Pages").
		Add(query.FilterPrefix+"schema", "Email").
		SetString(query.ParamText, "acme")

	assert.Equal(t, first.ToKey(), second.ToKey())
	assert.Equal(t, first.Fingerprint(), second.Fingerprint())
	assert.Len(t, first.Fingerprint(), 64)
}

/*
TestQuery_KeyNormalization verifies deduplication, empty values and ordered parameters.
*/
func TestQuery_KeyNormalization(t *testing.T) {
	base := query.New("entities", nil, "")

	dup := base.SetList("filter:schema", []string{"Email", "Email", ""})
	single := base.SetFilter("schema", "Email")
	assert.Equal(t, single.ToKey(), dup.ToKey())

	// Sort order is significant
	byDateThenName := base.SetList(query.ParamSort, []string{"date", "name"})
	byNameThenDate := base.SetList(query.ParamSort, []string{"name", "date"})
	assert.NotEqual(t, byDateThenName.ToKey(), byNameThenDate.ToKey())

	// Different paths never collide
	assert.NotEqual(t, query.New("collections", nil, "").ToKey(), base.ToKey())
}

/*
TestQuery_Context verifies that context participates in the key but not in the location.
*/
func TestQuery_Context(t *testing.T) {
	context := url.Values{"filter:collection_id": {"3"}}
	q := query.New("entities", context, "").SetString(query.ParamText, "bank")

	assert.Contains(t, q.ToKey(), "filter%3Acollection_id=3")
	assert.Equal(t, "q=bank", q.ToLocation())
	assert.Equal(t, []string{"3"}, q.GetFilter("collection_id"))

	// Mutating the caller's context afterwards has no effect
	context.Set("filter:collection_id", "4")
	assert.Equal(t, []string{"3"}, q.GetFilter("collection_id"))
}

/*
TestQuery_Immutable verifies that mutators leave the receiver untouched.
*/
func TestQuery_Immutable(t *testing.T) {
	original := query.New("entities", nil, "").SetString(query.ParamText, "one")
	key := original.ToKey()

	changed := original.SetString(query.ParamText, "two").Add("filter:schema", "Email")
	_ = original.Clear(query.ParamText).Remove("filter:schema", "Email")

	assert.Equal(t, key, original.ToKey())
	assert.Equal(t, "one", original.GetString(query.ParamText))
	assert.Equal(t, "two", changed.GetString(query.ParamText))

	// Returned lists are copies
	list := changed.GetList("filter:schema")
	list[0] = "Person"
	assert.Equal(t, []string{"Email"}, changed.GetFilter("schema"))
}

/*
TestQuery_FromLocation verifies prefix scoping and the location round trip.
*/
func TestQuery_FromLocation(t *testing.T) {
	q, err := query.FromLocation("entities", "?document:q=invoice&q=other&document:filter:schema=Email", nil, "document")
	require.NoError(t, err)

	assert.Equal(t, "invoice", q.GetString(query.ParamText))
	assert.Equal(t, []string{"Email"}, q.GetFilter("schema"))

	location := q.SetString(query.ParamText, "receipt").ToLocation()
	assert.Equal(t, "document%3Afilter%3Aschema=Email&document%3Aq=receipt", location)

	reparsed, err := query.FromLocation("entities", location, nil, "document")
	require.NoError(t, err)
	assert.Equal(t, "receipt", reparsed.GetString(query.ParamText))

	_, err = query.FromLocation("entities", "%zz", nil, "")
	assert.Error(t, err)
}

/*
TestQuery_Paging verifies limit clamping and page arithmetic.
*/
func TestQuery_Paging(t *testing.T) {
	q := query.New("entities", nil, "")
	assert.Equal(t, 20, q.Limit())
	assert.Equal(t, 0, q.Offset())

	q = q.SetString(query.ParamLimit, "10").SetPage(3)
	assert.Equal(t, 20, q.Offset())
	assert.Equal(t, 3, q.Pagination().Page)

	assert.Equal(t, 20, q.SetString(query.ParamLimit, "5000").Limit())
	assert.Equal(t, 0, q.SetString(query.ParamOffset, "-4").Offset())
	assert.Empty(t, q.SetPage(1).GetString(query.ParamOffset))
}

/*
TestStringSlice checks the comma-separated parameter parser.
*/
func TestStringSlice(t *testing.T) {
	assert.Nil(t, query.StringSlice(""))
	assert.Equal(t, []string{"a", "b"}, query.StringSlice(" a, ,b "))
}
