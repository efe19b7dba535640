// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides the identifiers used on the wire: request ids and
anonymous client ids.

  - Request ids are Version 7 values, ordered by creation time.
  - Client ids may be any UUID version; they are stored in canonical form so
    that one client maps to one preference key.
*/
package uuid

import "github.com/google/uuid"

// # Generators

// New generates a new UUIDv7 string. It falls back to a random UUIDv4 when
// the clock sequence cannot be read.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// # Parsing

// Canonical parses raw in any of the accepted UUID encodings (braced, URN,
// upper case) and returns its lowercase hyphenated form.
func Canonical(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}
