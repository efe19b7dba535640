// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package snapshot

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/dossier/internal/platform/database/schema"
	"github.com/taibuivan/dossier/internal/platform/dberr"
	"github.com/taibuivan/dossier/internal/state"
	"github.com/taibuivan/dossier/pkg/query"
)

// PostgresRepository implements [Repository] using pgx.
//
// Query-keyed tables live in dossier.state_result under the fingerprint of
// their key; every other table lives in dossier.state_record.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed snapshot store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
LoadRecords reads both state tables.

Returns:
  - []Record: Records ordered by their last write
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) LoadRecords(context context.Context) ([]Record, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s FROM %s
		UNION ALL
		SELECT %s, %s, %s, %s FROM %s
		ORDER BY 4`,
		schema.StateRecord.TableName, schema.StateRecord.RecordID, schema.StateRecord.Payload, schema.StateRecord.UpdatedAt,
		schema.StateRecord.Table,
		schema.StateResult.TableName, schema.StateResult.QueryKey, schema.StateResult.Payload, schema.StateResult.UpdatedAt,
		schema.StateResult.Table,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "load_state_records")
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var record Record
		var table string
		if err := rows.Scan(&table, &record.ID, &record.Payload, &record.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_state_record")
		}
		record.Table = state.Table(table)
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_state_records")
	}

	return records, nil
}

/*
SaveRecord upserts a record into the table matching its kind.

Parameters:
  - context: context.Context
  - record: Record

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) SaveRecord(context context.Context, record Record) error {
	if record.Table.IsQueryKeyed() {
		return repository.saveResult(context, record)
	}

	statement := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (%s, %s) DO UPDATE SET
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s`,
		schema.StateRecord.Table,
		schema.StateRecord.TableName, schema.StateRecord.RecordID, schema.StateRecord.Payload, schema.StateRecord.UpdatedAt,
		schema.StateRecord.TableName, schema.StateRecord.RecordID,
		schema.StateRecord.Payload, schema.StateRecord.Payload,
		schema.StateRecord.UpdatedAt, schema.StateRecord.UpdatedAt,
	)

	if _, err := repository.pool.Exec(context, statement, string(record.Table), record.ID, record.Payload); err != nil {
		return dberr.Wrap(err, "save_state_record")
	}
	return nil
}

func (repository *PostgresRepository) saveResult(context context.Context, record Record) error {
	statement := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (%s) DO UPDATE SET
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s`,
		schema.StateResult.Table,
		schema.StateResult.Fingerprint, schema.StateResult.TableName, schema.StateResult.QueryKey,
		schema.StateResult.Payload, schema.StateResult.UpdatedAt,
		schema.StateResult.Fingerprint,
		schema.StateResult.QueryKey, schema.StateResult.QueryKey,
		schema.StateResult.Payload, schema.StateResult.Payload,
		schema.StateResult.UpdatedAt, schema.StateResult.UpdatedAt,
	)

	// The table takes part in the fingerprint: results and xref matches may share a key
	fingerprint := query.FingerprintKey(string(record.Table) + " " + record.ID)

	_, err := repository.pool.Exec(context, statement, fingerprint, string(record.Table), record.ID, record.Payload)
	if err != nil {
		return dberr.Wrap(err, "save_state_result")
	}
	return nil
}
