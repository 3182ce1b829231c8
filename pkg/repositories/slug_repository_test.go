//go:build integration

package repositories

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ekaya-inc/entropy/pkg/apperrors"
	"github.com/ekaya-inc/entropy/pkg/models"
	"github.com/ekaya-inc/entropy/pkg/naming"
	"github.com/ekaya-inc/entropy/pkg/slugs"
	"github.com/ekaya-inc/entropy/pkg/testhelpers"
)

// slugTestContext holds test dependencies for slug repository tests.
type slugTestContext struct {
	t     *testing.T
	repo  SlugRepository
	scope string
}

// setupSlugTest gives every test its own scope so tests never share rows.
func setupSlugTest(t *testing.T) *slugTestContext {
	testDB := testhelpers.GetTestDB(t)
	tc := &slugTestContext{
		t:     t,
		repo:  NewSlugRepository(testDB.DB),
		scope: "test-" + uuid.NewString()[:8],
	}
	t.Cleanup(func() {
		_, _ = testDB.DB.Exec(context.Background(),
			"DELETE FROM entropy_slug_reservations WHERE scope = $1", tc.scope)
	})
	return tc
}

func TestSlugRepository_ReserveAndExists(t *testing.T) {
	tc := setupSlugTest(t)
	ctx := context.Background()

	res := &models.SlugReservation{Scope: tc.scope, Slug: "blog-post", Base: "blog-post"}
	require.NoError(t, tc.repo.Reserve(ctx, res))
	assert.NotEqual(t, uuid.Nil, res.ID)
	assert.False(t, res.CreatedAt.IsZero())

	exists, err := tc.repo.Exists(ctx, tc.scope, "blog-post")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = tc.repo.Exists(ctx, tc.scope, "other")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSlugRepository_ReserveConflict(t *testing.T) {
	tc := setupSlugTest(t)
	ctx := context.Background()

	require.NoError(t, tc.repo.Reserve(ctx, &models.SlugReservation{Scope: tc.scope, Slug: "dup", Base: "dup"}))

	err := tc.repo.Reserve(ctx, &models.SlugReservation{Scope: tc.scope, Slug: "dup", Base: "dup"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestSlugRepository_SameSlugDifferentScopes(t *testing.T) {
	tc := setupSlugTest(t)
	other := setupSlugTest(t)
	ctx := context.Background()

	require.NoError(t, tc.repo.Reserve(ctx, &models.SlugReservation{Scope: tc.scope, Slug: "shared", Base: "shared"}))
	require.NoError(t, other.repo.Reserve(ctx, &models.SlugReservation{Scope: other.scope, Slug: "shared", Base: "shared"}))
}

func TestSlugRepository_Release(t *testing.T) {
	tc := setupSlugTest(t)
	ctx := context.Background()

	require.NoError(t, tc.repo.Reserve(ctx, &models.SlugReservation{Scope: tc.scope, Slug: "gone", Base: "gone"}))
	require.NoError(t, tc.repo.Release(ctx, tc.scope, "gone"))

	err := tc.repo.Release(ctx, tc.scope, "gone")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSlugRepository_AllocatorSuffixes(t *testing.T) {
	tc := setupSlugTest(t)
	ctx := context.Background()
	alloc := slugs.NewAllocator(tc.repo, naming.NewResolver(naming.Options{}), slugs.Config{}, zap.NewNop())

	var got []string
	for i := 0; i < 3; i++ {
		res, err := alloc.Allocate(ctx, tc.scope, "Blog Post")
		require.NoError(t, err)
		got = append(got, res.Slug)
	}
	assert.Equal(t, []string{"blog-post", "blog-post-1", "blog-post-2"}, got)

	listed, err := tc.repo.GetByScope(ctx, tc.scope)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, 2, listed[2].Suffix)
}

func TestSlugRepository_ConcurrentAllocationsAreUnique(t *testing.T) {
	tc := setupSlugTest(t)
	ctx := context.Background()
	alloc := slugs.NewAllocator(tc.repo, nil, slugs.Config{}, zap.NewNop())

	const workers = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = map[string]bool{}
		errs []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := alloc.Allocate(ctx, tc.scope, "Race")
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			seen[res.Slug] = true
		}()
	}
	wg.Wait()

	require.Empty(t, errs)
	assert.Len(t, seen, workers)
	for slug := range seen {
		assert.True(t, strings.HasPrefix(slug, "race"), slug)
	}
}
