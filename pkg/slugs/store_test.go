package slugs

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekaya-inc/entropy/pkg/apperrors"
	"github.com/ekaya-inc/entropy/pkg/models"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	res := &models.SlugReservation{Scope: "page", Slug: "about", Base: "about"}
	require.NoError(t, store.Reserve(ctx, res))
	assert.NotEqual(t, uuid.Nil, res.ID)
	assert.False(t, res.CreatedAt.IsZero())

	exists, err := store.Exists(ctx, "page", "about")
	require.NoError(t, err)
	assert.True(t, exists)

	err = store.Reserve(ctx, &models.SlugReservation{Scope: "page", Slug: "about"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	require.NoError(t, store.Release(ctx, "page", "about"))
	exists, err = store.Exists(ctx, "page", "about")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.ErrorIs(t, store.Release(ctx, "page", "about"), apperrors.ErrNotFound)
	assert.ErrorIs(t, store.Release(ctx, "nowhere", "about"), apperrors.ErrNotFound)
}
