package sources

import "strings"

// Registry maps source names to sources, preserving registration order.
type Registry struct {
	order   []string
	sources map[string]Source
}

// NewRegistry creates a registry. Later sources with a duplicate name replace earlier ones.
func NewRegistry(srcs ...Source) *Registry {
	r := &Registry{sources: make(map[string]Source, len(srcs))}
	for _, s := range srcs {
		r.Register(s)
	}
	return r
}

// Register adds or replaces a source.
func (r *Registry) Register(s Source) {
	key := strings.ToLower(s.Name())
	if _, exists := r.sources[key]; !exists {
		r.order = append(r.order, key)
	}
	r.sources[key] = s
}

// Get returns the source with the given name, case-insensitively.
func (r *Registry) Get(name string) (Source, bool) {
	s, ok := r.sources[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

// Names lists registered source names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Select resolves requested names in registration order. An empty request
// selects every source. Names that match nothing are returned as unknown.
func (r *Registry) Select(names []string) (selected []Source, unknown []string) {
	if len(names) == 0 {
		for _, key := range r.order {
			selected = append(selected, r.sources[key])
		}
		return selected, nil
	}

	want := make(map[string]struct{}, len(names))
	for _, n := range names {
		key := strings.ToLower(strings.TrimSpace(n))
		if key == "" {
			continue
		}
		if _, ok := r.sources[key]; !ok {
			unknown = append(unknown, n)
			continue
		}
		want[key] = struct{}{}
	}
	for _, key := range r.order {
		if _, ok := want[key]; ok {
			selected = append(selected, r.sources[key])
		}
	}
	return selected, unknown
}
