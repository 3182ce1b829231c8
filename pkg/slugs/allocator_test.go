package slugs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ekaya-inc/entropy/pkg/apperrors"
	"github.com/ekaya-inc/entropy/pkg/models"
	"github.com/ekaya-inc/entropy/pkg/naming"
	"github.com/ekaya-inc/entropy/pkg/retry"
)

// flakyStore fails the first failures Reserve calls with err, then delegates.
type flakyStore struct {
	*MemoryStore
	mu       sync.Mutex
	failures int
	err      error
	calls    int
}

func (s *flakyStore) Reserve(ctx context.Context, res *models.SlugReservation) error {
	s.mu.Lock()
	s.calls++
	fail := s.failures > 0
	if fail {
		s.failures--
	}
	s.mu.Unlock()
	if fail {
		return s.err
	}
	return s.MemoryStore.Reserve(ctx, res)
}

func fastRetry() *retry.Config {
	return &retry.Config{MaxRetries: 3, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Multiplier: 2}
}

func TestAllocator_AppendsSuffixes(t *testing.T) {
	alloc := NewAllocator(NewMemoryStore(), nil, Config{}, zap.NewNop())
	ctx := context.Background()

	var got []string
	for i := 0; i < 3; i++ {
		res, err := alloc.Allocate(ctx, "blog-post", "Hello World")
		require.NoError(t, err)
		got = append(got, res.Slug)
		assert.Equal(t, "hello-world", res.Base)
		assert.Equal(t, i, res.Suffix)
	}
	assert.Equal(t, []string{"hello-world", "hello-world-1", "hello-world-2"}, got)
}

func TestAllocator_ScopesAreIndependent(t *testing.T) {
	alloc := NewAllocator(NewMemoryStore(), nil, Config{}, nil)
	ctx := context.Background()

	a, err := alloc.Allocate(ctx, "blog-post", "Hello")
	require.NoError(t, err)
	b, err := alloc.Allocate(ctx, "page", "Hello")
	require.NoError(t, err)

	assert.Equal(t, "hello", a.Slug)
	assert.Equal(t, "hello", b.Slug)
}

func TestAllocator_ReleaseFreesSlug(t *testing.T) {
	alloc := NewAllocator(NewMemoryStore(), nil, Config{}, nil)
	ctx := context.Background()

	_, err := alloc.Allocate(ctx, "page", "About")
	require.NoError(t, err)
	require.NoError(t, alloc.Release(ctx, "page", "about"))

	res, err := alloc.Allocate(ctx, "page", "About")
	require.NoError(t, err)
	assert.Equal(t, "about", res.Slug)

	err = alloc.Release(ctx, "page", "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAllocator_Exhausted(t *testing.T) {
	alloc := NewAllocator(NewMemoryStore(), nil, Config{MaxAttempts: 2}, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := alloc.Allocate(ctx, "page", "About")
		require.NoError(t, err)
	}

	_, err := alloc.Allocate(ctx, "page", "About")
	assert.ErrorIs(t, err, ErrSlugExhausted)
}

func TestAllocator_InvalidInput(t *testing.T) {
	alloc := NewAllocator(NewMemoryStore(), nil, Config{}, nil)
	ctx := context.Background()

	_, err := alloc.Allocate(ctx, "Not A Scope", "About")
	assert.ErrorIs(t, err, apperrors.ErrInvalidScope)

	_, err = alloc.Allocate(ctx, "page", "")
	assert.ErrorIs(t, err, naming.ErrConfiguration)

	_, err = alloc.Allocate(ctx, "page", "???")
	assert.ErrorIs(t, err, naming.ErrConfiguration)
}

func TestAllocator_RespectsMaxSlugLength(t *testing.T) {
	resolver := naming.NewResolver(naming.Options{MaxSlugLength: 10})
	alloc := NewAllocator(NewMemoryStore(), resolver, Config{}, nil)
	ctx := context.Background()

	first, err := alloc.Allocate(ctx, "page", "abcdefghij")
	require.NoError(t, err)
	assert.Equal(t, "abcdefghij", first.Slug)

	second, err := alloc.Allocate(ctx, "page", "abcdefghij")
	require.NoError(t, err)
	assert.Equal(t, "abcdefgh-1", second.Slug)
	assert.LessOrEqual(t, len(second.Slug), 10)
}

func TestAllocator_SuffixNeverExceedsMaxSlugLength(t *testing.T) {
	resolver := naming.NewResolver(naming.Options{MaxSlugLength: 3})
	alloc := NewAllocator(NewMemoryStore(), resolver, Config{}, nil)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		res, err := alloc.Allocate(ctx, "page", "a")
		require.NoError(t, err)
		assert.LessOrEqual(t, len(res.Slug), 3, "slug %q", res.Slug)
	}

	// "a-10" would be four bytes long.
	_, err := alloc.Allocate(ctx, "page", "a")
	assert.ErrorIs(t, err, ErrSlugExhausted)
}

func TestAllocator_RetriesTransientStoreErrors(t *testing.T) {
	store := &flakyStore{MemoryStore: NewMemoryStore(), failures: 2, err: &pgconn.PgError{Code: "40001"}}
	alloc := NewAllocator(store, nil, Config{Retry: fastRetry()}, nil)

	res, err := alloc.Allocate(context.Background(), "page", "Retry Me")
	require.NoError(t, err)
	assert.Equal(t, "retry-me", res.Slug)
	assert.Equal(t, 3, store.calls)
}

func TestAllocator_PermanentStoreErrorStops(t *testing.T) {
	boom := errors.New("permission denied for table entropy_slug_reservations")
	store := &flakyStore{MemoryStore: NewMemoryStore(), failures: 100, err: boom}
	alloc := NewAllocator(store, nil, Config{Retry: fastRetry()}, nil)

	_, err := alloc.Allocate(context.Background(), "page", "Nope")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, store.calls)
}

func TestAllocator_ContextCanceled(t *testing.T) {
	alloc := NewAllocator(NewMemoryStore(), nil, Config{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := alloc.Allocate(ctx, "page", "About")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAllocator_ConcurrentAllocationsAreUnique(t *testing.T) {
	alloc := NewAllocator(NewMemoryStore(), nil, Config{}, nil)
	ctx := context.Background()

	const workers = 20
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[string]bool)
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := alloc.Allocate(ctx, "page", "Same Title")
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			seen[res.Slug] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers)
}
