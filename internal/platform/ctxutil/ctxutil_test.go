// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package ctxutil_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark/internal/platform/ctxutil"
	"github.com/shelfmark/shelfmark/internal/platform/sec"
)

/*
TestRequestID_RoundTrip verifies storage and retrieval of the correlation ID.
*/
func TestRequestID_RoundTrip(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", ctxutil.GetRequestID(ctx))
}

/*
TestGetLogger_Fallback ensures a usable logger is always returned.
*/
func TestGetLogger_Fallback(t *testing.T) {
	ctx := context.Background()

	// Without an attached logger, the default must be returned (never nil).
	logger := ctxutil.GetLogger(ctx)
	require.NotNil(t, logger)

	attached := slog.Default().With(slog.String("scope", "test"))
	ctx = ctxutil.WithLogger(ctx, attached)
	assert.Same(t, attached, ctxutil.GetLogger(ctx))
}

/*
TestAuthUser_RoundTrip verifies auth claims storage and the anonymous fallback.
*/
func TestAuthUser_RoundTrip(t *testing.T) {
	ctx := context.Background()

	assert.Nil(t, ctxutil.GetAuthUser(ctx))

	claims := &sec.AuthClaims{UserID: "user-1", Username: "reader"}
	ctx = ctxutil.WithAuthUser(ctx, claims)

	got := ctxutil.GetAuthUser(ctx)
	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.UserID)
}
