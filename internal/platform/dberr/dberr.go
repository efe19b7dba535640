// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/dossier/internal/platform/apperr"
)

// Wrap classifies a database error as an [apperr.AppError], hiding driver details
// from clients. action names the failed operation for the server-side log.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("Record")
	}

	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return &apperr.AppError{
			Code:       "STORAGE_TIMEOUT",
			Message:    "The storage backend did not answer in time",
			HTTPStatus: http.StatusServiceUnavailable,
			Cause:      fmt.Errorf("%s: %w", action, err),
		}
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
