// Package conventions holds the in-memory registry of named naming
// conventions. The registry is loaded from a YAML file at startup and
// refreshed when the file changes; the process never writes it back.
package conventions

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"ad-matrix-engine/internal/cache"
	"ad-matrix-engine/internal/naming"
)

type snapshot struct {
	byName map[string]naming.Convention
	names  []string
}

// Registry exposes read-only, lock-free lookups over the loaded
// conventions.
type Registry struct {
	snap cache.Snapshot[snapshot]
}

func NewRegistry() *Registry { return &Registry{} }

type conventionsFile struct {
	Conventions []naming.Convention `yaml:"conventions"`
}

// LoadFile replaces the registry contents with the conventions decoded
// from path. Entries without a name or template are rejected so a
// half-edited file never poisons the registry.
func (r *Registry) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open conventions file: %w", err)
	}
	defer f.Close()

	var doc conventionsFile
	if err := yaml.NewDecoder(f).Decode(&doc); err != nil {
		return fmt.Errorf("decode conventions file %s: %w", path, err)
	}

	snap := snapshot{byName: map[string]naming.Convention{}}
	for _, c := range doc.Conventions {
		if c.Name == "" {
			return fmt.Errorf("convention without a name in %s", path)
		}
		if res := naming.ValidateTemplate(c.Template); !res.Valid {
			return fmt.Errorf("convention %q: %v", c.Name, res.Errors)
		}
		if _, dup := snap.byName[c.Name]; dup {
			return fmt.Errorf("duplicate convention %q in %s", c.Name, path)
		}
		snap.byName[c.Name] = c
		snap.names = append(snap.names, c.Name)
	}
	sort.Strings(snap.names)

	r.snap.Store(snap)
	return nil
}

// Get returns the convention registered under name.
func (r *Registry) Get(name string) (naming.Convention, bool) {
	s, ok := r.snap.Load()
	if !ok {
		return naming.Convention{}, false
	}
	c, ok := s.byName[name]
	return c, ok
}

// Names lists the registered convention names, sorted.
func (r *Registry) Names() []string {
	s, ok := r.snap.Load()
	if !ok {
		return nil
	}
	return append([]string(nil), s.names...)
}
