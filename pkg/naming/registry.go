package naming

import (
	"reflect"
	"sync"

	"go.uber.org/zap"

	"github.com/ekaya-inc/entropy/pkg/models"
)

// Registry caches derived names. Each (type, identifier) pair is resolved
// once, on first access, and the result (or error) is kept for the lifetime
// of the Registry.
type Registry struct {
	resolver *Resolver
	logger   *zap.Logger
	entries  sync.Map // registryKey -> *registryEntry
}

type registryKey struct {
	typ        reflect.Type
	identifier string
}

type registryEntry struct {
	once  sync.Once
	names models.Names
	err   error
}

// NewRegistry creates a Registry backed by resolver. A nil resolver uses the
// default options.
func NewRegistry(resolver *Resolver, logger *zap.Logger) *Registry {
	if resolver == nil {
		resolver = NewResolver(Options{})
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		resolver: resolver,
		logger:   logger.Named("naming"),
	}
}

// Names returns the derived names for v, computing them on first access.
func (r *Registry) Names(v NameResolvable) (models.Names, error) {
	if v == nil {
		return models.Names{}, configErr("identifier", "", "nil value")
	}
	entity := EntityOf(v)
	return r.lookup(registryKey{typ: reflect.TypeOf(v), identifier: entity.Identifier}, entity)
}

// Resolve returns the derived names for an entity declared as data rather
// than as a Go type. Entities are cached by identifier.
func (r *Registry) Resolve(entity models.Entity) (models.Names, error) {
	return r.lookup(registryKey{identifier: entity.Identifier}, entity)
}

// Len reports how many entries have been cached.
func (r *Registry) Len() int {
	n := 0
	r.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (r *Registry) lookup(key registryKey, entity models.Entity) (models.Names, error) {
	v, _ := r.entries.LoadOrStore(key, &registryEntry{})
	entry := v.(*registryEntry)

	entry.once.Do(func() {
		entry.names, entry.err = r.resolver.Resolve(entity)
		if entry.err != nil {
			r.logger.Warn("Failed to derive names",
				zap.String("identifier", entity.Identifier),
				zap.Error(entry.err))
			return
		}
		r.logger.Debug("Derived names",
			zap.String("identifier", entity.Identifier),
			zap.String("display_name", entry.names.DisplayName),
			zap.String("slug", entry.names.Slug))
	})

	return entry.names, entry.err
}
