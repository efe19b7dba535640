// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package snapshot

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/taibuivan/dossier/internal/platform/apperr"
	"github.com/taibuivan/dossier/internal/platform/validate"
	"github.com/taibuivan/dossier/internal/state"
	"github.com/taibuivan/dossier/pkg/query"
)

// # Service Layer

// Service keeps the published snapshot and its persisted records in step.
type Service struct {
	repo   Repository
	holder *Holder
	logger *slog.Logger
}

// NewService constructs a new snapshot [Service].
func NewService(repo Repository, holder *Holder, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		holder: holder,
		logger: logger,
	}
}

// Current returns the published snapshot.
func (service *Service) Current() *state.Store {
	return service.holder.Current()
}

/*
Load rebuilds the published snapshot from the repository.

Description: Records are replayed oldest first into a private snapshot that
is published once, so loading is linear in the number of records. A record
that no longer decodes (e.g. an unknown table left behind by an older
release) is skipped and logged rather than failing the whole load.

Parameters:
  - context: context.Context

Returns:
  - int: Number of records applied
  - error: Repository failures
*/
func (service *Service) Load(context context.Context) (int, error) {
	started := time.Now()

	records, err := service.repo.LoadRecords(context)
	if err != nil {
		return 0, err
	}

	builder := state.NewBuilder()
	applied := 0
	for _, record := range records {
		if err := builder.Put(record.Table, record.ID, record.Payload); err != nil {
			service.logger.WarnContext(context, "state_record_skipped",
				slog.String("table", string(record.Table)),
				slog.String("id", record.ID),
				slog.Any("error", err),
			)
			continue
		}
		applied++
	}

	err = service.holder.Update(func(_ *state.Store) (*state.Store, error) {
		return builder.Store(), nil
	})
	if err != nil {
		return 0, err
	}

	service.logger.InfoContext(context, "snapshot_loaded",
		slog.Int("records", applied),
		slog.Int("skipped", len(records)-applied),
		slog.Int64("duration_ms", time.Since(started).Milliseconds()),
	)

	return applied, nil
}

/*
Put replaces one record of the snapshot.

Description: Metadata addressed with an id is the metadata produced for the
locale named by the id and is stored in the localized metadata table.

Parameters:
  - context: context.Context
  - table: state.Table
  - id: string (record id; must be empty for singleton tables)
  - payload: []byte (JSON encoding of the table's record type)

Returns:
  - error: VALIDATION_ERROR, UNPROCESSABLE for payloads that do not decode, or persistence failures
*/
func (service *Service) Put(context context.Context, table state.Table, id string, payload []byte) error {
	if table == state.TableMetadata && id != "" {
		table = state.TableLocalizedMetadata
	}

	validator := &validate.Validator{}
	validator.Custom("table", !table.IsValid(), "Unknown table")
	validator.Custom("table", table.IsQueryKeyed(), "Query-keyed tables are written by query")
	switch {
	case table.IsSingleton():
		validator.Custom("id", id != "", "Singleton tables take no id")
	case table == state.TableLocalizedMetadata:
		validator.LocaleTag("id", id)
	case table.IsValid():
		validator.RecordID("id", id)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	return service.write(context, Record{Table: table, ID: id, Payload: payload})
}

/*
PutResult stores a paginated result under the canonical key of its query.

Parameters:
  - context: context.Context
  - table: state.Table (results or collectionXrefMatches)
  - q: query.Query (the query the result answers)
  - payload: []byte

Returns:
  - string: The canonical key the result is stored under
  - error: VALIDATION_ERROR, UNPROCESSABLE or persistence failures
*/
func (service *Service) PutResult(context context.Context, table state.Table, q query.Query, payload []byte) (string, error) {
	key := q.ToKey()

	validator := &validate.Validator{}
	validator.Custom("table", !table.IsQueryKeyed(), "Table is not keyed by query")
	validator.Required("path", q.Path())
	validator.RecordID("key", key)
	if err := validator.Err(); err != nil {
		return "", err
	}

	return key, service.write(context, Record{Table: table, ID: key, Payload: payload})
}

// write decodes, persists and publishes a record while holding the writer lock,
// so the published order matches the persisted order.
func (service *Service) write(context context.Context, record Record) error {
	err := service.holder.Update(func(current *state.Store) (*state.Store, error) {
		next, err := current.Put(record.Table, record.ID, record.Payload)
		if err != nil {
			return nil, apperr.Unprocessable("Payload does not match the table's record type", err)
		}

		if err := service.repo.SaveRecord(context, record); err != nil {
			return nil, err
		}

		return next, nil
	})
	if err != nil {
		var appError *apperr.AppError
		if !errors.As(err, &appError) {
			err = apperr.Internal(err)
		}
		return err
	}

	service.logger.InfoContext(context, "state_record_replaced",
		slog.String("table", string(record.Table)),
		slog.String("id", record.ID),
		slog.Int("bytes", len(record.Payload)),
	)

	return nil
}
