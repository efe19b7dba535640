// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides fault-tolerant conversions for query parameters.

Malformed input falls back to a default instead of failing. Do not use this
package where distinguishing malformed data from a default matters.
*/
package convert

import (
	"strconv"
	"strings"
)

// ToIntD converts a string to an int, returning the provided default if parsing fails or string is empty.
func ToIntD(str string, def int) int {

	// If the string is empty, return the default value
	if str == "" {
		return def
	}

	if v, err := strconv.Atoi(strings.TrimSpace(str)); err == nil {
		return v
	}

	return def
}

// ToBool parses a boolean flag ("true", "1", "yes", "false", "0", "no").
// A present but empty flag ("?preview") counts as true.
func ToBool(s string, present bool) bool {
	if !present {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "yes", "on":
		return true
	case "no", "off":
		return false
	}

	v, _ := strconv.ParseBool(s)
	return v
}
