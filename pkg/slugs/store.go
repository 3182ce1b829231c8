package slugs

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ekaya-inc/entropy/pkg/apperrors"
	"github.com/ekaya-inc/entropy/pkg/models"
)

// Store persists slug reservations. Implementations must make Reserve atomic:
// of two concurrent reservations of the same (scope, slug) exactly one wins
// and the other gets apperrors.ErrConflict.
type Store interface {
	// Reserve claims res.Slug within res.Scope, filling in ID and CreatedAt.
	Reserve(ctx context.Context, res *models.SlugReservation) error
	Exists(ctx context.Context, scope, slug string) (bool, error)
	// Release frees a slug. Returns apperrors.ErrNotFound if it was not reserved.
	Release(ctx context.Context, scope, slug string) error
}

// MemoryStore is an in-process Store, safe for concurrent use.
type MemoryStore struct {
	mu    sync.Mutex
	slugs map[string]map[string]models.SlugReservation
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slugs: make(map[string]map[string]models.SlugReservation)}
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) Reserve(ctx context.Context, res *models.SlugReservation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	scope := s.slugs[res.Scope]
	if scope == nil {
		scope = make(map[string]models.SlugReservation)
		s.slugs[res.Scope] = scope
	}
	if _, taken := scope[res.Slug]; taken {
		return apperrors.ErrConflict
	}

	res.ID = uuid.New()
	res.CreatedAt = time.Now()
	scope[res.Slug] = *res
	return nil
}

func (s *MemoryStore) Exists(ctx context.Context, scope, slug string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.slugs[scope][slug]
	return ok, nil
}

func (s *MemoryStore) Release(ctx context.Context, scope, slug string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.slugs[scope][slug]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.slugs[scope], slug)
	return nil
}
