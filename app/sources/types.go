package sources

import (
	"strings"

	"github.com/autoxpress/partsearch/app/listing"
)

// Query describes one search request as handed to a provider.
type Query struct {
	Text       string
	Vehicle    listing.Vehicle
	MaxResults int
}

// Term builds the marketplace search term from the vehicle descriptor,
// falling back to the free-text query when no descriptor fields are set.
func (q Query) Term() string {
	fields := []string{q.Vehicle.Year, q.Vehicle.Make, q.Vehicle.Model, q.Vehicle.Part}
	var parts []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			parts = append(parts, f)
		}
	}

	if len(parts) == 0 {
		return strings.TrimSpace(q.Text)
	}
	return strings.Join(parts, " ")
}

// Configuration types, one YAML file per source.

type Config struct {
	ID       string         // Derived from filename (without .yml extension)
	Source   ConfigSource   `yaml:"source"`
	Settings ConfigSettings `yaml:"settings"`
}

type ConfigSource struct {
	Name      string `yaml:"name"`
	Kind      string `yaml:"kind"` // ebay | google | amazon | rss
	URL       string `yaml:"url"`
	APIKeyEnv string `yaml:"api_key_env"` // env var holding the API key, if any
}

type ConfigSettings struct {
	Enabled    bool `yaml:"enabled"`
	Timeout    int  `yaml:"timeout"` // seconds
	MaxResults int  `yaml:"max_results"`
}
