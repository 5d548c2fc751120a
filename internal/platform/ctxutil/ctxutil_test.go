// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buihoang/memoria/internal/access"
	"github.com/buihoang/memoria/internal/platform/ctxutil"
)

/*
TestRequestID verifies the round trip and the empty-context default.
*/
func TestRequestID(t *testing.T) {
	ctx := ctxutil.WithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", ctxutil.GetRequestID(ctx))

	assert.Equal(t, "", ctxutil.GetRequestID(context.Background()))
}

/*
TestLogger verifies the round trip and the default-logger fallback.
*/
func TestLogger(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	ctx := ctxutil.WithLogger(context.Background(), logger)
	assert.Same(t, logger, ctxutil.GetLogger(ctx))

	assert.NotNil(t, ctxutil.GetLogger(context.Background()))
}

/*
TestPrincipal verifies both principal kinds survive the round trip.
*/
func TestPrincipal(t *testing.T) {
	session := access.SessionPrincipal{UserID: "u1", Role: access.RoleAdmin}
	ctx := ctxutil.WithPrincipal(context.Background(), session)
	assert.Equal(t, session, ctxutil.GetPrincipal(ctx))

	share := access.SharePrincipal{ResourceType: access.ResourcePhoto, ResourceID: "p1"}
	ctx = ctxutil.WithPrincipal(context.Background(), share)
	assert.Equal(t, share, ctxutil.GetPrincipal(ctx))

	assert.Nil(t, ctxutil.GetPrincipal(context.Background()))
}

/*
TestGetSessionPrincipal verifies the session-only accessor rejects share
principals and anonymous contexts.
*/
func TestGetSessionPrincipal(t *testing.T) {
	session := access.SessionPrincipal{UserID: "u1", Role: access.RoleViewer}
	ctx := ctxutil.WithPrincipal(context.Background(), session)

	got, ok := ctxutil.GetSessionPrincipal(ctx)
	require.True(t, ok)
	assert.Equal(t, session, got)

	share := access.SharePrincipal{ResourceType: access.ResourceAlbum, ResourceID: "a1"}
	_, ok = ctxutil.GetSessionPrincipal(ctxutil.WithPrincipal(context.Background(), share))
	assert.False(t, ok)

	_, ok = ctxutil.GetSessionPrincipal(context.Background())
	assert.False(t, ok)
}
