// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/dossier/internal/platform/ctxutil"
	"github.com/taibuivan/dossier/internal/platform/sec"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 1. Initially should return the default logger
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_PreferenceOwner verifies that users take precedence over anonymous clients.
*/
func TestContext_PreferenceOwner(t *testing.T) {
	tests := []struct {
		name     string
		claims   *sec.AuthClaims
		clientID string
		want     string
	}{
		{name: "Anonymous", want: ""},
		{name: "Client", clientID: "tab-1", want: "client:tab-1"},
		{name: "User", claims: &sec.AuthClaims{UserID: "42"}, clientID: "tab-1", want: "user:42"},
		{name: "UserWithoutID", claims: &sec.AuthClaims{}, clientID: "tab-1", want: "client:tab-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if tt.claims != nil {
				ctx = ctxutil.WithAuthUser(ctx, tt.claims)
			}
			if tt.clientID != "" {
				ctx = ctxutil.WithClientID(ctx, tt.clientID)
			}
			assert.Equal(t, tt.want, ctxutil.PreferenceOwner(ctx))
		})
	}
}

/*
TestContext_AuthUser verifies that AuthClaims can be stored in context.
*/
func TestContext_AuthUser(t *testing.T) {
	ctx := context.Background()
	claims := &sec.AuthClaims{
		UserID: "user-123",
		Role:   "admin",
	}

	assert.Nil(t, ctxutil.GetAuthUser(ctx))

	ctx = ctxutil.WithAuthUser(ctx, claims)
	retrieved := ctxutil.GetAuthUser(ctx)

	assert.NotNil(t, retrieved)
	assert.Equal(t, "user-123", retrieved.UserID)
	assert.Equal(t, "admin", retrieved.Role)
}
