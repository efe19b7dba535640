// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

/*
LoadFixture decodes a YAML snapshot.

Description: The document uses the same field names as the JSON wire format
(e.g. "entities", "isLoading", "file_name"). It is converted to JSON first so
that a single set of struct tags governs both encodings.

Parameters:
  - reader: io.Reader (YAML document)

Returns:
  - *Store: The decoded snapshot
  - error: YAML or JSON decoding failures
*/
func LoadFixture(reader io.Reader) (*Store, error) {
	var document any
	if err := yaml.NewDecoder(reader).Decode(&document); err != nil {
		if errors.Is(err, io.EOF) {
			return New(), nil
		}
		return nil, fmt.Errorf("state: parse fixture: %w", err)
	}

	payload, err := json.Marshal(normalize(document))
	if err != nil {
		return nil, fmt.Errorf("state: convert fixture: %w", err)
	}

	store := New()
	if err := json.Unmarshal(payload, store); err != nil {
		return nil, fmt.Errorf("state: decode fixture: %w", err)
	}

	return store, nil
}

// normalize rewrites YAML maps with non-string keys (e.g. numeric ids) into JSON-compatible maps.
func normalize(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		for key, inner := range typed {
			typed[key] = normalize(inner)
		}
		return typed
	case map[any]any:
		converted := make(map[string]any, len(typed))
		for key, inner := range typed {
			converted[fmt.Sprint(key)] = normalize(inner)
		}
		return converted
	case []any:
		for index, inner := range typed {
			typed[index] = normalize(inner)
		}
		return typed
	default:
		return value
	}
}
