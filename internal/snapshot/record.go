// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package snapshot

import (
	"time"

	"github.com/taibuivan/dossier/internal/state"
)

// Record is one persisted store entry.
//
// ID is the record id for keyed tables, the canonical query key for
// query-keyed tables, and empty for singletons.
type Record struct {
	Table     state.Table
	ID        string
	Payload   []byte
	UpdatedAt time.Time
}
