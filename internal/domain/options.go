package domain

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// JobOptions is the typed view of a job's free-form configuration.
type JobOptions struct {
	// Sources selects source adapters by name. Empty means all.
	Sources []string `mapstructure:"sources"  json:"sources,omitempty"`
	// Location is a free-text geographic filter such as "Austin, TX".
	Location string `mapstructure:"location" json:"location,omitempty"`
}

// Options decodes the job configuration into JobOptions.
func (j *Job) Options() (JobOptions, error) {
	var opts JobOptions
	if len(j.Config) == 0 {
		return opts, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &opts,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return opts, fmt.Errorf("create options decoder: %w", err)
	}
	if decodeErr := decoder.Decode(map[string]any(j.Config)); decodeErr != nil {
		return opts, fmt.Errorf("decode job options: %w", decodeErr)
	}

	opts.Location = strings.TrimSpace(opts.Location)
	return opts, nil
}

// ToConfig converts options back into the JSONB representation.
func (o JobOptions) ToConfig() JSONBMap {
	cfg := JSONBMap{}
	if len(o.Sources) > 0 {
		sources := make([]any, 0, len(o.Sources))
		for _, s := range o.Sources {
			sources = append(sources, s)
		}
		cfg["sources"] = sources
	}
	if o.Location != "" {
		cfg["location"] = o.Location
	}
	return cfg
}

// SourceEnabled reports whether the named source is selected.
func (o JobOptions) SourceEnabled(name string) bool {
	if len(o.Sources) == 0 {
		return true
	}
	for _, s := range o.Sources {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return true
		}
	}
	return false
}
