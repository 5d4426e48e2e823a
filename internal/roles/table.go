package roles

import (
	"sort"

	"github.com/sourceplane/roleci/internal/model"
	"github.com/sourceplane/roleci/internal/normalize"
)

// Table resolves role names to their CI configuration.
// It is read-only once built.
type Table struct {
	entries map[string]model.RoleConfig
}

// NewTable builds a table from the built-in entries with overrides layered on top.
// An override replaces the built-in record for that role wholesale.
func NewTable(overrides map[string]model.RoleConfig) *Table {
	entries := make(map[string]model.RoleConfig, len(builtin)+len(overrides))
	for name, cfg := range builtin {
		entries[name] = normalize.RoleConfig(cfg)
	}
	for name, cfg := range overrides {
		entries[name] = normalize.RoleConfig(cfg)
	}
	return &Table{entries: entries}
}

// Resolve returns the configuration for name, falling back to DefaultConfig.
// The returned record is a copy.
func (t *Table) Resolve(name string) model.RoleConfig {
	if cfg, ok := t.entries[name]; ok {
		return cfg.Clone()
	}
	return DefaultConfig()
}

// Has reports whether name has an explicit entry
func (t *Table) Has(name string) bool {
	_, ok := t.entries[name]
	return ok
}

// Names returns the roles with explicit entries, sorted
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
