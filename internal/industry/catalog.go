// Package industry holds the curated industry taxonomy and builds search
// queries from it.
package industry

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Industry is one curated taxonomy entry.
type Industry struct {
	Name          string   `json:"name"           yaml:"name"`
	Keywords      []string `json:"keywords"       yaml:"keywords"`
	NAICSCodes    []string `json:"naics_codes"    yaml:"naics_codes"`
	SubIndustries []string `json:"sub_industries" yaml:"sub_industries"`
}

type catalogFile struct {
	Industries []Industry `yaml:"industries"`
}

var (
	loadOnce   sync.Once
	catalog    []Industry
	byName     map[string]Industry
	errCatalog error
)

// ParseCatalog decodes a YAML taxonomy document.
func ParseCatalog(data []byte) ([]Industry, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse industry catalog: %w", err)
	}
	for i, ind := range file.Industries {
		if ind.Name == "" {
			return nil, fmt.Errorf("industry catalog entry %d has no name", i)
		}
	}
	return file.Industries, nil
}

func load() {
	loadOnce.Do(func() {
		catalog, errCatalog = ParseCatalog(catalogYAML)
		byName = make(map[string]Industry, len(catalog))
		for _, ind := range catalog {
			byName[ind.Name] = ind
		}
	})
}

// All returns every curated industry in catalog order.
func All() []Industry {
	load()
	out := make([]Industry, len(catalog))
	copy(out, catalog)
	return out
}

// Names returns the curated industry names in catalog order.
func Names() []string {
	load()
	names := make([]string, 0, len(catalog))
	for _, ind := range catalog {
		names = append(names, ind.Name)
	}
	return names
}

// Lookup returns the curated entry for an exact industry name.
func Lookup(name string) (Industry, bool) {
	load()
	ind, ok := byName[name]
	return ind, ok
}

// Err reports a failure to decode the embedded catalog.
func Err() error {
	load()
	return errCatalog
}
