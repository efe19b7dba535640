// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package snapshot owns the state snapshot the API serves and keeps it in sync
with PostgreSQL.

# Concurrency

Readers call [Holder.Current] once per request and resolve every selector
against that value, so a request never observes a half-applied write.
Writers are serialized: each one derives a successor with [state.Store.Put],
persists the record, then publishes the successor atomically.
*/
package snapshot

import (
	"sync"
	"sync/atomic"

	"github.com/taibuivan/dossier/internal/state"
)

// Holder publishes the current snapshot.
type Holder struct {
	current atomic.Pointer[state.Store]
	writer  sync.Mutex
}

// NewHolder returns a holder serving initial (an empty snapshot when nil).
func NewHolder(initial *state.Store) *Holder {
	if initial == nil {
		initial = state.New()
	}
	holder := &Holder{}
	holder.current.Store(initial)
	return holder
}

// Current returns the published snapshot. It never returns nil.
func (holder *Holder) Current() *state.Store {
	return holder.current.Load()
}

// Update derives a successor from the published snapshot and publishes it.
// When derive fails nothing is published. Calls are serialized.
func (holder *Holder) Update(derive func(current *state.Store) (*state.Store, error)) error {
	holder.writer.Lock()
	defer holder.writer.Unlock()

	next, err := derive(holder.current.Load())
	if err != nil {
		return err
	}
	holder.current.Store(next)
	return nil
}
