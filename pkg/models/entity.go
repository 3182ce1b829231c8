package models

// Entity is a named component of a host application (a content type, model
// or view) whose names are derived by convention.
type Entity struct {
	// Identifier is the component's code name, unique within a project.
	Identifier string `json:"identifier" yaml:"identifier"`
	// App is the application label used as the template directory.
	App string `json:"app,omitempty" yaml:"app,omitempty"`

	DisplayNameOverride string `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	PluralOverride      string `json:"plural_name,omitempty" yaml:"plural_name,omitempty"`
	SlugOverride        string `json:"slug,omitempty" yaml:"slug,omitempty"`
}

// Names holds the values derived for an Entity.
type Names struct {
	DisplayName  string `json:"display_name"`
	PluralName   string `json:"plural_name"`
	Slug         string `json:"slug"`
	TemplatePath string `json:"template_path"`
}

// WithDefaults returns e with every empty override filled from defaults.
// Values already set on e are kept.
func (e Entity) WithDefaults(defaults Entity) Entity {
	if e.App == "" {
		e.App = defaults.App
	}
	if e.DisplayNameOverride == "" {
		e.DisplayNameOverride = defaults.DisplayNameOverride
	}
	if e.PluralOverride == "" {
		e.PluralOverride = defaults.PluralOverride
	}
	if e.SlugOverride == "" {
		e.SlugOverride = defaults.SlugOverride
	}
	return e
}
