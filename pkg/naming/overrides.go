package naming

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ekaya-inc/entropy/pkg/models"
)

// overridesFile is the on-disk layout:
//
//	entities:
//	  blog_post:
//	    display_name: Article
//	    slug: articles
type overridesFile struct {
	Entities map[string]models.Entity `yaml:"entities"`
}

// LoadOverrides reads project-level overrides from a YAML file. Slug
// overrides are validated up front so a bad file fails at startup.
func LoadOverrides(path string) (map[string]models.Entity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read overrides file: %w", err)
	}
	return ParseOverrides(data)
}

// ParseOverrides decodes the YAML overrides layout.
func ParseOverrides(data []byte) (map[string]models.Entity, error) {
	var f overridesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse overrides: %w", err)
	}

	out := make(map[string]models.Entity, len(f.Entities))
	for id, e := range f.Entities {
		if id == "" {
			return nil, configErr("identifier", "", "overrides file contains an empty identifier")
		}
		e.Identifier = id
		if e.SlugOverride != "" && !IsSlug(e.SlugOverride) {
			return nil, configErr("slug", id, fmt.Sprintf("override %q is not a valid slug", e.SlugOverride))
		}
		out[id] = e
	}
	return out, nil
}
