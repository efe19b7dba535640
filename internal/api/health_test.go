// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dossier/internal/api"
)

/*
TestHealth_Readiness verifies the readiness status for healthy and failing dependencies.
*/
func TestHealth_Readiness(t *testing.T) {
	healthy := func(context.Context) error { return nil }
	failing := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		deps       api.HealthDependencies
		wantStatus int
		wantState  string
	}{
		{"AllHealthy", api.HealthDependencies{CheckDatabase: healthy, CheckCache: healthy}, http.StatusOK, "ready"},
		{"CacheDown", api.HealthDependencies{CheckDatabase: healthy, CheckCache: failing}, http.StatusServiceUnavailable, "degraded"},
		{"NoChecks", api.HealthDependencies{}, http.StatusOK, "ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, readiness := api.NewHealthHandlers(tt.deps, slog.New(slog.NewJSONHandler(io.Discard, nil)))

			recorder := httptest.NewRecorder()
			readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.wantStatus, recorder.Code)

			var envelope struct {
				Data struct {
					Status string `json:"status"`
				} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
			assert.Equal(t, tt.wantState, envelope.Data.Status)
		})
	}
}

/*
TestHealth_Liveness verifies that the liveness probe always answers 200.
*/
func TestHealth_Liveness(t *testing.T) {
	liveness, _ := api.NewHealthHandlers(api.HealthDependencies{}, slog.New(slog.NewJSONHandler(io.Discard, nil)))

	recorder := httptest.NewRecorder()
	liveness(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "dossier-api")
}
