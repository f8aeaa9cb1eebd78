package context_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ctxutil "github.com/hyperterse/dataexplorer/core/shared/context"
)

func TestWithRequestID(t *testing.T) {
	ctx := ctxutil.WithRequestID(context.Background(), "test-request-id")
	assert.Equal(t, "test-request-id", ctxutil.GetRequestID(ctx))
}

func TestGetRequestID_NotSet(t *testing.T) {
	assert.Empty(t, ctxutil.GetRequestID(context.Background()))
}

func TestWithQueryName(t *testing.T) {
	ctx := ctxutil.WithQueryName(context.Background(), "top_users")
	assert.Equal(t, "top_users", ctxutil.GetQueryName(ctx))
	assert.Empty(t, ctxutil.GetQueryName(context.Background()))
}

func TestGenerateRequestID(t *testing.T) {
	id1 := ctxutil.GenerateRequestID()
	id2 := ctxutil.GenerateRequestID()

	_, err := uuid.Parse(id1)
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)
}

func TestEnsureRequestID(t *testing.T) {
	ctx, id := ctxutil.EnsureRequestID(context.Background())
	assert.NotEmpty(t, id)
	assert.Equal(t, id, ctxutil.GetRequestID(ctx))

	again, sameID := ctxutil.EnsureRequestID(ctx)
	assert.Equal(t, id, sameID)
	assert.Equal(t, ctx, again)
}
