// Package registry models the external inference server's model
// registry as an injected dependency: a name-to-class-path table
// populated once at startup, before the server takes over the process.
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Entry is a single registration: a public model name mapped to the
// Python module-qualified class path ("pkg.mod:Class") the server
// resolves lazily at request-serving time.
type Entry struct {
	Name      string `json:"name"`
	ClassPath string `json:"class_path"`
}

// Registry accepts model registrations. Implementations must reject
// invalid input with an error; they are not required to be idempotent
// across repeated registration of the same name.
type Registry interface {
	Register(name, classPath string) error
}

// RegisterAll submits entries in declared order, stopping at the
// first failure. Earlier successful registrations are not rolled
// back; a partial table is unusable anyway because the caller treats
// any error as fatal.
func RegisterAll(reg Registry, entries []Entry) error {
	for _, e := range entries {
		if err := reg.Register(e.Name, e.ClassPath); err != nil {
			return fmt.Errorf("register model %q: %w", e.Name, err)
		}
	}
	return nil
}

// Table is an in-memory Registry. It backs the models listing and
// every test; the production path uses EnvTable instead.
type Table struct {
	mu      sync.RWMutex
	entries map[string]string
	order   []string
}

func NewTable() *Table {
	return &Table{entries: make(map[string]string)}
}

// Register validates and stores the mapping. Re-registering a name
// overwrites the previous class path, matching the external
// registry's last-write-wins behavior.
func (t *Table) Register(name, classPath string) error {
	if name == "" {
		return fmt.Errorf("model name is empty")
	}
	if _, _, err := ParseClassPath(classPath); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.entries[name]; !ok {
		t.order = append(t.order, name)
	}
	t.entries[name] = classPath
	return nil
}

// Resolve returns the class path registered for name.
func (t *Table) Resolve(name string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	cp, ok := t.entries[name]
	return cp, ok
}

// Entries returns the table contents in registration order.
func (t *Table) Entries() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Entry, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, Entry{Name: name, ClassPath: t.entries[name]})
	}
	return out
}

// Names returns the registered model names, sorted.
func (t *Table) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
