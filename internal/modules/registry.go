package modules

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
)

var ErrUnknownModule = errors.New("modules: unknown module")

// Registry maps module ids to their scripts. It is read-only once built.
type Registry struct {
	items map[string]Module
}

// NewRegistry builds the fixed installer module set.
func NewRegistry() *Registry {
	items := make(map[string]Module, len(builtin))
	for _, m := range builtin {
		items[m.ID] = m
	}
	return &Registry{items: items}
}

// Lookup returns the module for an exact id match.
func (r *Registry) Lookup(id string) (Module, bool) {
	m, ok := r.items[id]
	return m, ok
}

// Resolve is Lookup with an ErrUnknownModule error for missing ids.
func (r *Registry) Resolve(id string) (Module, error) {
	m, ok := r.Lookup(id)
	if !ok {
		return Module{}, fmt.Errorf("%w: %q", ErrUnknownModule, id)
	}
	return m, nil
}

// List returns modules ordered by id.
func (r *Registry) List() []Module {
	list := make([]Module, 0, len(r.items))
	for _, m := range r.items {
		list = append(list, m)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	return list
}

// Len reports the number of registered modules.
func (r *Registry) Len() int {
	return len(r.items)
}

// Command returns the argv that launches m's script inside workDir.
func Command(m Module, workDir string) (string, []string) {
	return filepath.Join(workDir, m.Script), nil
}
