package codegen

import "sort"

// Backend maps source types to target types.
type Backend struct {
	Name  string
	Types map[string]string
	// Target type for source types missing from Types.
	Fallback string
}

// GoBackend is the default backend.
var GoBackend = Backend{
	Name: "go",
	Types: map[string]string{
		"int":    "int",
		"float":  "float64",
		"str":    "string",
		"string": "string",
		"bool":   "bool",
		"list":   "[]any",
	},
	Fallback: "any",
}

var backends = map[string]Backend{GoBackend.Name: GoBackend}

// LookupBackend returns the backend with the given name.
func LookupBackend(name string) (Backend, bool) {
	b, ok := backends[name]
	return b, ok
}

// BackendNames returns the names of all backends, sorted.
func BackendNames() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Type maps a source type.
func (b Backend) Type(t string) string {
	if target, ok := b.Types[t]; ok {
		return target
	}
	if b.Fallback == "" {
		return "any"
	}
	return b.Fallback
}

// With returns a copy of the backend with some type mappings overridden.
func (b Backend) With(overrides map[string]string) Backend {
	types := make(map[string]string, len(b.Types)+len(overrides))
	for k, v := range b.Types {
		types[k] = v
	}
	for k, v := range overrides {
		types[k] = v
	}
	b.Types = types
	return b
}
