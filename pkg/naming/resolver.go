package naming

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jinzhu/inflection"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ekaya-inc/entropy/pkg/models"
)

const (
	// SlugSeparator joins words in a slug.
	SlugSeparator = "-"
	// DefaultTemplateSuffix is appended to template paths when none is configured.
	DefaultTemplateSuffix = ".html"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// IsSlug reports whether s is lowercase alphanumerics joined by single hyphens.
func IsSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// Options tune a Resolver. The zero value gives the package defaults.
type Options struct {
	// MaxSlugLength caps derived slugs, cutting on a word boundary. 0 means no cap.
	MaxSlugLength int
	// TemplateSuffix is appended by TemplatePath. Empty means DefaultTemplateSuffix.
	TemplateSuffix string
	// Overrides supplies project-level overrides keyed by identifier. They
	// only fill in what an entity does not declare itself.
	Overrides map[string]models.Entity
}

// Resolver derives names according to its Options. It holds no mutable
// state and is safe for concurrent use.
type Resolver struct {
	opts Options
}

// NewResolver creates a Resolver with the given options.
func NewResolver(opts Options) *Resolver {
	return &Resolver{opts: opts}
}

// ResolveDisplayName returns override verbatim when it is non-empty, otherwise
// a title cased rendering of identifier: "blog_post" -> "Blog Post".
func ResolveDisplayName(identifier, override string) (string, error) {
	if strings.TrimSpace(identifier) == "" {
		return "", configErr("display_name", identifier, "identifier is empty")
	}
	if override != "" {
		return override, nil
	}

	words := splitWords(identifier)
	if len(words) == 0 {
		return "", configErr("display_name", identifier, "identifier contains no letters or digits")
	}

	// NoLower keeps acronyms such as "HTTP" intact.
	caser := cases.Title(language.Und, cases.NoLower)
	for i, w := range words {
		words[i] = caser.String(w)
	}
	return strings.Join(words, " "), nil
}

// ResolveSlug returns a URL path segment for identifier: "Blog Post" -> "blog-post".
// A non-empty override is returned as is, provided it is already a valid slug.
func ResolveSlug(identifier, override string) (string, error) {
	return resolveSlug(identifier, override, 0)
}

func resolveSlug(identifier, override string, maxLen int) (string, error) {
	if strings.TrimSpace(identifier) == "" {
		return "", configErr("slug", identifier, "identifier is empty")
	}
	if override != "" {
		if !IsSlug(override) {
			return "", configErr("slug", identifier, fmt.Sprintf("override %q is not a valid slug", override))
		}
		return override, nil
	}

	slug := slugify(identifier)
	if slug == "" {
		return "", configErr("slug", identifier, "identifier contains no characters usable in a slug")
	}
	if maxLen > 0 {
		slug = truncateSlug(slug, maxLen)
	}
	return slug, nil
}

// slugify folds diacritics, splits into words and keeps only [a-z0-9] runs.
func slugify(s string) string {
	var parts []string
	for _, w := range splitWords(foldDiacritics(s)) {
		w = strings.ToLower(w)
		parts = append(parts, strings.FieldsFunc(w, func(r rune) bool {
			return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
		})...)
	}
	return strings.Join(parts, SlugSeparator)
}

// truncateSlug keeps whole words while they fit in maxLen. A single word
// longer than maxLen is cut.
func truncateSlug(slug string, maxLen int) string {
	if len(slug) <= maxLen {
		return slug
	}
	out := ""
	for _, part := range strings.Split(slug, SlugSeparator) {
		candidate := part
		if out != "" {
			candidate = out + SlugSeparator + part
		}
		if len(candidate) > maxLen {
			break
		}
		out = candidate
	}
	if out == "" {
		out = slug[:maxLen]
	}
	return out
}

// ResolvePlural returns override when non-empty, otherwise the display name
// of identifier with its last word pluralised: "category" -> "Categories".
func ResolvePlural(identifier, override string) (string, error) {
	if strings.TrimSpace(identifier) == "" {
		return "", configErr("plural_name", identifier, "identifier is empty")
	}
	if override != "" {
		return override, nil
	}
	display, err := ResolveDisplayName(identifier, "")
	if err != nil {
		return "", err
	}
	return pluralize(display), nil
}

func pluralize(display string) string {
	idx := strings.LastIndex(display, " ")
	return display[:idx+1] + inflection.Plural(display[idx+1:])
}

// ResolveTemplatePath builds "<app>/<name><suffix>" where name is the slug of
// identifier with underscores: ("blog", "BlogPost", "_detail.html") ->
// "blog/blog_post_detail.html". An empty app yields just the file name.
func ResolveTemplatePath(app, identifier, suffix string) (string, error) {
	if strings.TrimSpace(identifier) == "" {
		return "", configErr("template_path", identifier, "identifier is empty")
	}
	slug := slugify(identifier)
	if slug == "" {
		return "", configErr("template_path", identifier, "identifier contains no characters usable in a path")
	}
	name := strings.ReplaceAll(slug, SlugSeparator, "_") + suffix
	if app == "" {
		return name, nil
	}
	return strings.Trim(app, "/") + "/" + name, nil
}

// DisplayName resolves a display name, consulting project overrides.
func (r *Resolver) DisplayName(identifier, override string) (string, error) {
	if override == "" {
		override = r.opts.Overrides[identifier].DisplayNameOverride
	}
	return ResolveDisplayName(identifier, override)
}

// Slug resolves a slug, consulting project overrides and MaxSlugLength. It
// picks the same source as Resolve, so a project display name override also
// drives the slug.
func (r *Resolver) Slug(identifier, override string) (string, error) {
	if strings.TrimSpace(identifier) == "" {
		return "", configErr("slug", identifier, "identifier is empty")
	}
	entity := models.Entity{Identifier: identifier, SlugOverride: override}
	return r.entitySlug(entity.WithDefaults(r.opts.Overrides[identifier]))
}

// TemplatePath resolves a template path with the configured suffix.
func (r *Resolver) TemplatePath(app, identifier string) (string, error) {
	suffix := r.opts.TemplateSuffix
	if suffix == "" {
		suffix = DefaultTemplateSuffix
	}
	if app == "" {
		app = r.opts.Overrides[identifier].App
	}
	return ResolveTemplatePath(app, identifier, suffix)
}

// Resolve derives every name for entity. When only a display name override
// is given, plural and slug are derived from it so that no derived value
// contradicts the override.
func (r *Resolver) Resolve(entity models.Entity) (models.Names, error) {
	if strings.TrimSpace(entity.Identifier) == "" {
		return models.Names{}, configErr("identifier", "", "identifier is empty")
	}
	entity = entity.WithDefaults(r.opts.Overrides[entity.Identifier])

	display, err := ResolveDisplayName(entity.Identifier, entity.DisplayNameOverride)
	if err != nil {
		return models.Names{}, err
	}

	var plural string
	if entity.PluralOverride != "" {
		plural = entity.PluralOverride
	} else {
		plural = pluralize(display)
	}

	slug, err := r.entitySlug(entity)
	if err != nil {
		return models.Names{}, err
	}

	tmpl, err := r.TemplatePath(entity.App, entity.Identifier)
	if err != nil {
		return models.Names{}, err
	}

	return models.Names{
		DisplayName:  display,
		PluralName:   plural,
		Slug:         slug,
		TemplatePath: tmpl,
	}, nil
}

// entitySlug prefers the display name override as the slug source and falls
// back to the identifier when the override has nothing sluggable in it.
func (r *Resolver) entitySlug(entity models.Entity) (string, error) {
	source := entity.Identifier
	if entity.SlugOverride == "" && slugify(entity.DisplayNameOverride) != "" {
		source = entity.DisplayNameOverride
	}
	return resolveSlug(source, entity.SlugOverride, r.opts.MaxSlugLength)
}

// MaxSlugLength reports the configured slug length cap, 0 if uncapped.
func (r *Resolver) MaxSlugLength() int {
	return r.opts.MaxSlugLength
}
