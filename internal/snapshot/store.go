// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package snapshot

import "context"

// # Snapshot Data Access

// Repository defines the persistence contract for snapshot records.
type Repository interface {

	/*
		LoadRecords returns every persisted record, oldest write first.

		Parameters:
		  - context: context.Context

		Returns:
		  - []Record: All records of all tables
		  - error: Database retrieval failures
	*/
	LoadRecords(context context.Context) ([]Record, error)

	/*
		SaveRecord inserts the record or replaces the stored one wholesale.

		Parameters:
		  - context: context.Context
		  - record: Record

		Returns:
		  - error: Persistence failures
	*/
	SaveRecord(context context.Context, record Record) error
}
