package naming

import "github.com/ekaya-inc/entropy/pkg/models"

// NameResolvable is implemented by host types that take part in the naming
// convention. Only the identifier is required; the optional interfaces below
// supply overrides.
type NameResolvable interface {
	NamingIdentifier() string
}

// DisplayNamer overrides the derived display name.
type DisplayNamer interface {
	DisplayName() string
}

// PluralNamer overrides the derived plural name.
type PluralNamer interface {
	PluralName() string
}

// Slugger overrides the derived slug. The value must already be a valid slug.
type Slugger interface {
	Slug() string
}

// AppLabeler places the type's templates under an application directory.
type AppLabeler interface {
	AppLabel() string
}

// EntityOf collects the identifier and any overrides declared by v.
func EntityOf(v NameResolvable) models.Entity {
	e := models.Entity{Identifier: v.NamingIdentifier()}
	if d, ok := v.(DisplayNamer); ok {
		e.DisplayNameOverride = d.DisplayName()
	}
	if p, ok := v.(PluralNamer); ok {
		e.PluralOverride = p.PluralName()
	}
	if s, ok := v.(Slugger); ok {
		e.SlugOverride = s.Slug()
	}
	if a, ok := v.(AppLabeler); ok {
		e.App = a.AppLabel()
	}
	return e
}
