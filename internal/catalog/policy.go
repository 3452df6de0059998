package catalog

import "slices"

// Evaluate applies the deployment policy to the full tool catalog and returns
// the entries admitted into the registry, preserving catalog declaration order.
//
// The write-capable catalog entries are only considered when allowWrite is true;
// when it is false, any entry tagged "write" is additionally rejected by tag.
// An entry whose name appears in excludeTools is rejected regardless of tags.
// Evaluate is a pure function and is called exactly once, at startup.
func Evaluate(allowWrite bool, excludeTools []string) []Tool {
	all := baseCatalog()
	if allowWrite {
		all = append(all, writeCatalog()...)
	}

	var excludeTags []string
	if !allowWrite {
		excludeTags = []string{TagWrite}
	}

	var entries []Tool
	for _, t := range all {
		if slices.Contains(excludeTools, t.Name) {
			continue
		}
		excluded := false
		for _, tag := range excludeTags {
			if t.HasTag(tag) {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}
		entries = append(entries, t)
	}
	return entries
}

// Registry holds the policy-filtered set of tools for the process lifetime.
// It is read-only after construction: concurrent lookups need no synchronization.
type Registry struct {
	entries []Tool
	byName  map[string]*Tool
}

// NewRegistry builds a registry from the given entries.
func NewRegistry(entries []Tool) *Registry {
	r := &Registry{
		entries: entries,
		byName:  make(map[string]*Tool, len(entries)),
	}
	for i := range r.entries {
		r.byName[r.entries[i].Name] = &r.entries[i]
	}
	return r
}

// Tools returns all registry entries in catalog declaration order.
func (r *Registry) Tools() []Tool {
	return r.entries
}

// Lookup resolves a tool by name.
func (r *Registry) Lookup(name string) (*Tool, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Names returns the names of all registry entries, in order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.entries))
	for i, t := range r.entries {
		names[i] = t.Name
	}
	return names
}
