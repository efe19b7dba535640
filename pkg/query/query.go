// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package query implements the immutable search query used to address
paginated results.

A [Query] pairs an API path with two parameter sets:

  - State: the user-controlled parameters (text, filters, sort, paging), which
    round-trip through the browser location.
  - Context: fixed parameters supplied by the screen (e.g. the collection a
    search is scoped to), which never appear in the location.

# Canonical Keys

[Query.ToKey] produces the lookup key of the result table. It is independent
of the order in which parameters were set: keys are sorted, values are
deduplicated and sorted (except for order-significant parameters such as
"sort"), and empty values are dropped.

All mutators return a new Query and leave the receiver untouched.
*/
package query

import (
	"encoding/hex"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/taibuivan/dossier/pkg/convert"
	"github.com/taibuivan/dossier/pkg/pagination"
	"github.com/taibuivan/dossier/pkg/slice"
)

// # Parameter Names

const (
	ParamText   = "q"
	ParamLimit  = "limit"
	ParamOffset = "offset"
	ParamSort   = "sort"
	ParamFacet  = "facet"

	// FilterPrefix namespaces field filters, e.g. "filter:schema".
	FilterPrefix = "filter:"

	// prefixSeparator joins a screen prefix and a parameter name in the location.
	prefixSeparator = ":"
)

// orderedParams are parameters whose value order carries meaning.
var orderedParams = map[string]bool{
	ParamSort: true,
}

// Query is an immutable filter/sort/paging specification.
// The zero value is an empty query on the empty path.
type Query struct {
	path    string
	prefix  string
	state   url.Values
	context url.Values
}

// # Construction

// New creates an empty query on path with fixed context parameters.
// A non-empty prefix scopes the query's parameters in the location (e.g. "document:q").
func New(path string, context url.Values, prefix string) Query {
	return Query{
		path:    path,
		prefix:  prefix,
		state:   url.Values{},
		context: cloneValues(context),
	}
}

/*
FromLocation parses the state of a query from a URL query string.

Description: When prefix is set, only parameters named "<prefix>:<name>" are
kept and the prefix is stripped; everything else in the location belongs to
other screens.

Parameters:
  - path: string (API path the query addresses, e.g. "entities")
  - rawQuery: string (location search, with or without the leading "?")
  - context: url.Values (fixed parameters)
  - prefix: string

Returns:
  - Query: The parsed query
  - error: Malformed query string
*/
func FromLocation(path, rawQuery string, context url.Values, prefix string) (Query, error) {
	parsed, err := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	if err != nil {
		return Query{}, err
	}

	query := New(path, context, prefix)
	for name, values := range parsed {
		if prefix != "" {
			scoped, ok := strings.CutPrefix(name, prefix+prefixSeparator)
			if !ok {
				continue
			}
			name = scoped
		}
		query.state[name] = append(query.state[name], values...)
	}

	return query, nil
}

// # Accessors

// Path returns the API path the query addresses.
func (query Query) Path() string {
	return query.path
}

// GetList returns the values of name. State takes precedence over context.
func (query Query) GetList(name string) []string {
	if values, ok := query.state[name]; ok {
		return slices.Clone(values)
	}
	return slices.Clone(query.context[name])
}

// GetString returns the first value of name, or "".
func (query Query) GetString(name string) string {
	values := query.GetList(name)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// GetInt returns name parsed as an integer, or fallback.
func (query Query) GetInt(name string, fallback int) int {
	return convert.ToIntD(query.GetString(name), fallback)
}

// GetFilter returns the values of the field filter.
func (query Query) GetFilter(field string) []string {
	return query.GetList(FilterPrefix + field)
}

// HasText reports whether the query carries a free-text term.
func (query Query) HasText() bool {
	return strings.TrimSpace(query.GetString(ParamText)) != ""
}

// Limit returns the page size, clamped to the pagination bounds.
func (query Query) Limit() int {
	return pagination.FromOffset(0, query.GetInt(ParamLimit, pagination.DefaultLimit)).Limit
}

// Offset returns the index of the first result, never negative.
func (query Query) Offset() int {
	return max(query.GetInt(ParamOffset, 0), 0)
}

// Pagination returns the page-based view of offset and limit.
func (query Query) Pagination() pagination.Params {
	return pagination.FromOffset(query.Offset(), query.Limit())
}

// # Mutators

// SetList returns a copy of the query with name set to values.
// Setting no non-empty values removes the parameter.
func (query Query) SetList(name string, values []string) Query {
	next := query.clone()
	values = slice.Filter(values, isPresent)
	if len(values) == 0 {
		delete(next.state, name)
		return next
	}
	next.state[name] = values
	return next
}

// SetString returns a copy of the query with name set to value. An empty value removes it.
func (query Query) SetString(name, value string) Query {
	return query.SetList(name, []string{value})
}

// Add returns a copy of the query with value appended to name, unless already present.
func (query Query) Add(name, value string) Query {
	values := query.GetList(name)
	if slices.Contains(values, value) {
		return query.clone()
	}
	return query.SetList(name, append(values, value))
}

// Remove returns a copy of the query without value in name.
func (query Query) Remove(name, value string) Query {
	return query.SetList(name, slice.Filter(query.GetList(name), func(existing string) bool {
		return existing != value
	}))
}

// Clear returns a copy of the query without name.
func (query Query) Clear(name string) Query {
	next := query.clone()
	delete(next.state, name)
	return next
}

// SetFilter returns a copy of the query filtering field by values.
func (query Query) SetFilter(field string, values ...string) Query {
	return query.SetList(FilterPrefix+field, values)
}

// SetPage returns a copy of the query positioned on the 1-indexed page.
func (query Query) SetPage(page int) Query {
	params := pagination.Params{Page: page, Limit: query.Limit()}
	if params.Offset() == 0 {
		return query.Clear(ParamOffset)
	}
	return query.SetString(ParamOffset, strconv.Itoa(params.Offset()))
}

// # Serialization

// ToKey returns the canonical key of the query: its path and the merged,
// normalized context and state parameters.
func (query Query) ToKey() string {
	merged := url.Values{}
	for name, values := range query.context {
		merged[name] = values
	}
	for name, values := range query.state {
		merged[name] = values
	}

	canonical := url.Values{}
	for name, values := range merged {
		values = slice.Filter(values, isPresent)
		if !orderedParams[name] {
			values = slices.Clone(values)
			slices.Sort(values)
			values = slices.Compact(values)
		}
		if len(values) > 0 {
			canonical[name] = values
		}
	}

	return query.path + "?" + canonical.Encode()
}

// ToLocation returns the URL query string of the query state, with the prefix applied.
func (query Query) ToLocation() string {
	location := url.Values{}
	for name, values := range query.state {
		if query.prefix != "" {
			name = query.prefix + prefixSeparator + name
		}
		location[name] = values
	}
	return location.Encode()
}

// Fingerprint returns a fixed-length digest of [Query.ToKey], suitable as a storage key.
func (query Query) Fingerprint() string {
	return FingerprintKey(query.ToKey())
}

// String implements fmt.Stringer.
func (query Query) String() string {
	return query.ToKey()
}

// FingerprintKey hashes an already canonical key with BLAKE2b-256.
func FingerprintKey(key string) string {
	sum := blake2b.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// # Parsing Helpers

// StringSlice parses a single comma-separated query string
// into a trimmed slice of strings.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}

func (query Query) clone() Query {
	return Query{
		path:    query.path,
		prefix:  query.prefix,
		state:   cloneValues(query.state),
		context: query.context,
	}
}

func cloneValues(values url.Values) url.Values {
	cloned := make(url.Values, len(values))
	for name, list := range values {
		cloned[name] = slices.Clone(list)
	}
	return cloned
}

func isPresent(value string) bool {
	return value != ""
}
