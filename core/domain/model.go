package domain

// Model is a parsed configuration file.
type Model struct {
	// Host is the default forum hostname, without scheme
	Host     string  `yaml:"host" validate:"omitempty,hostname_port|hostname_rfc1123"`
	APIKey   string  `yaml:"api_key" validate:"-"`
	LogLevel int     `yaml:"log_level" validate:"min=0,max=4"`
	Server   *Server `yaml:"server" validate:"omitempty"`
	// Queries keep the order in which they appear in the file
	Queries []*QueryDefinition `yaml:"queries" validate:"dive"`
}

// Server holds settings for the serve command.
type Server struct {
	Port string `yaml:"port" validate:"omitempty,numeric"`
}

// QueryDefinition is a saved remote query referenced by a local name.
type QueryDefinition struct {
	Name        string            `yaml:"name" validate:"required"`
	ID          QueryID           `yaml:"id" validate:"required"`
	Description string            `yaml:"description" validate:"-"`
	Params      map[string]string `yaml:"params" validate:"-"`
}

// FindQuery returns the definition with the given name.
func (m *Model) FindQuery(name string) (*QueryDefinition, bool) {
	if m == nil {
		return nil, false
	}
	for _, q := range m.Queries {
		if q.Name == name {
			return q, true
		}
	}
	return nil, false
}

// MergedParams returns the configured params overlaid with overrides.
func (q *QueryDefinition) MergedParams(overrides map[string]string) map[string]string {
	params := make(map[string]string, len(q.Params)+len(overrides))
	for k, v := range q.Params {
		params[k] = v
	}
	for k, v := range overrides {
		params[k] = v
	}
	return params
}
