// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package preference keeps the per-caller interface locale.

It is the server-side counterpart of a browser's local settings: an explicit
choice overrides the language negotiated from Accept-Language and is
remembered per user, or per anonymous client id, until it expires.
*/
package preference

import (
	"context"
	"errors"
	"time"
)

// ErrNotSet is returned when the owner has no stored preference.
var ErrNotSet = errors.New("preference: not set")

// Repository defines the storage contract for locale preferences.
type Repository interface {

	/*
		GetLocale returns the stored locale of owner.

		Returns:
		  - string: Canonical locale tag
		  - error: ErrNotSet when nothing is stored
	*/
	GetLocale(context context.Context, owner string) (string, error)

	// SetLocale stores locale for owner, refreshing its expiry to ttl.
	SetLocale(context context.Context, owner, locale string, ttl time.Duration) error

	// ClearLocale removes the stored locale of owner. Clearing an absent entry is not an error.
	ClearLocale(context context.Context, owner string) error
}
