// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dossier/internal/platform/apperr"
	"github.com/taibuivan/dossier/internal/platform/dberr"
)

/*
TestWrap verifies the classification of driver errors.
*/
func TestWrap(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "noop"))

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "NoRows", err: pgx.ErrNoRows, wantStatus: http.StatusNotFound},
		{name: "Deadline", err: context.DeadlineExceeded, wantStatus: http.StatusServiceUnavailable},
		{name: "Other", err: errors.New("connection reset"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := apperr.As(dberr.Wrap(tt.err, "load state"))
			require.NotNil(t, wrapped)
			assert.Equal(t, tt.wantStatus, wrapped.HTTPStatus)
		})
	}
}
