// Package slugs allocates slugs that are unique within a scope, appending
// "-1", "-2", ... to the base slug until a free one is found.
package slugs

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ekaya-inc/entropy/pkg/apperrors"
	"github.com/ekaya-inc/entropy/pkg/models"
	"github.com/ekaya-inc/entropy/pkg/naming"
	"github.com/ekaya-inc/entropy/pkg/retry"
)

// DefaultMaxAttempts bounds the suffix search.
const DefaultMaxAttempts = 1000

// ErrSlugExhausted is returned when every candidate up to MaxAttempts is
// taken, or when the slug length cap leaves no room for a longer suffix.
var ErrSlugExhausted = errors.New("no free slug within attempt limit")

// Config tunes an Allocator.
type Config struct {
	MaxAttempts int
	// Retry governs transient store failures. Nil uses retry.DefaultConfig().
	Retry *retry.Config
}

// Allocator hands out unique slugs backed by a Store.
type Allocator struct {
	store    Store
	resolver *naming.Resolver
	cfg      Config
	logger   *zap.Logger
}

// NewAllocator creates an Allocator.
func NewAllocator(store Store, resolver *naming.Resolver, cfg Config, logger *zap.Logger) *Allocator {
	if resolver == nil {
		resolver = naming.NewResolver(naming.Options{})
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Allocator{
		store:    store,
		resolver: resolver,
		cfg:      cfg,
		logger:   logger.Named("slugs"),
	}
}

// Allocate slugifies sluggable and reserves the first free candidate in
// scope: base, base-1, base-2, ...
func (a *Allocator) Allocate(ctx context.Context, scope, sluggable string) (*models.SlugReservation, error) {
	if !naming.IsSlug(scope) {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidScope, scope)
	}

	base, err := a.resolver.Slug(sluggable, "")
	if err != nil {
		return nil, err
	}

	for suffix := 0; suffix < a.cfg.MaxAttempts; suffix++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		slug, ok := a.candidate(base, suffix)
		if !ok {
			break
		}
		res := &models.SlugReservation{
			Scope:  scope,
			Slug:   slug,
			Base:   base,
			Suffix: suffix,
		}

		err := retry.DoIfRetryable(ctx, a.cfg.Retry, func() error {
			return a.store.Reserve(ctx, res)
		})
		if err == nil {
			a.logger.Debug("Reserved slug",
				zap.String("scope", scope),
				zap.String("slug", res.Slug),
				zap.Int("suffix", suffix))
			return res, nil
		}
		if !errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("failed to reserve slug %q: %w", res.Slug, err)
		}
	}

	a.logger.Warn("Slug suffixes exhausted",
		zap.String("scope", scope),
		zap.String("base", base),
		zap.Int("max_attempts", a.cfg.MaxAttempts))
	return nil, fmt.Errorf("%w: %q in scope %q", ErrSlugExhausted, base, scope)
}

// Release frees a previously allocated slug.
func (a *Allocator) Release(ctx context.Context, scope, slug string) error {
	return retry.DoIfRetryable(ctx, a.cfg.Retry, func() error {
		return a.store.Release(ctx, scope, slug)
	})
}

// candidate appends "-<suffix>" to base, shortening base if needed so the
// result still respects the resolver's length cap. It reports false once the
// suffix alone leaves no room for at least one character of base.
func (a *Allocator) candidate(base string, suffix int) (string, bool) {
	if suffix == 0 {
		return base, true
	}
	tail := naming.SlugSeparator + strconv.Itoa(suffix)
	if limit := a.resolver.MaxSlugLength(); limit > 0 && len(base)+len(tail) > limit {
		keep := limit - len(tail)
		if keep < 1 {
			return "", false
		}
		base = strings.TrimRight(base[:keep], naming.SlugSeparator)
	}
	return base + tail, true
}
