// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `
metadata:
  app: {title: Dossier, locale: en}
  schemata:
    Pages: {extends: [Document]}
entities:
  doc-1: {id: doc-1, schemata: [Folder, Document]}
  doc-2: {id: doc-2, file_name: b.pdf, schemata: [Pages, Document]}
collections:
  "7": {id: "7", schemata: {Pages: 3, Person: 2}}
results:
  "entities?filter%3Aschema=Pages&q=report": {results: [doc-2], total: 1}
`

// run executes dossierctl with args and the fixture on stdin.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := newRootCommand()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(fixture))
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})

	err := root.Execute()
	return out.String(), err
}

func decode(t *testing.T, out string) map[string]any {
	t.Helper()
	decoded := map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	return decoded
}

/*
TestView verifies the display mode commands.
*/
func TestView(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"FolderBrowses", []string{"view", "document", "doc-1"}, "browse"},
		{"PagesView", []string{"view", "document", "doc-2"}, "view"},
		{"ExplicitMode", []string{"view", "document", "doc-2", "--mode", "info"}, "info"},
		{"EntityPreview", []string{"view", "entity", "doc-2", "--preview"}, "info"},
		{"CollectionDocuments", []string{"view", "collection", "7"}, "Document"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append([]string{"--fixture", "-"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, decode(t, out)["view"])
		})
	}
}

/*
TestLocale verifies the locale override flag and the stale metadata placeholder.
*/
func TestLocale(t *testing.T) {
	out, err := run(t, "--fixture", "-", "locale")
	require.NoError(t, err)
	assert.Equal(t, "en", decode(t, out)["locale"])

	out, err = run(t, "--fixture", "-", "--locale", "de", "metadata")
	require.NoError(t, err)
	assert.Equal(t, true, decode(t, out)["shouldLoad"])
}

/*
TestKey verifies that parameter order does not change the key.
*/
func TestKey(t *testing.T) {
	first, err := run(t, "key", "entities", "q=report&filter:schema=Pages")
	require.NoError(t, err)
	second, err := run(t, "key", "entities", "filter:schema=Pages&q=report")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "entities?filter%3Aschema=Pages&q=report", decode(t, first)["key"])
	assert.Len(t, decode(t, first)["fingerprint"], 64)
}

/*
TestResult verifies result resolution and argument validation.
*/
func TestResult(t *testing.T) {
	out, err := run(t, "--fixture", "-", "result", "entities", "filter:schema=Pages&q=report")
	require.NoError(t, err)

	page := decode(t, out)
	require.Len(t, page["results"], 1)
	assert.Equal(t, "b.pdf", page["results"].([]any)[0].(map[string]any)["file_name"])

	_, err = run(t, "--fixture", "-", "result", "alerts", "")
	assert.Error(t, err)
}

/*
TestFixture verifies fixture loading from a file and the missing fixture error.
*/
func TestFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o600))

	out, err := run(t, "--fixture", path, "view", "collection", "7")
	require.NoError(t, err)
	assert.Equal(t, "Document", decode(t, out)["view"])

	_, err = run(t, "locale")
	assert.ErrorIs(t, err, errNoFixture)
}
