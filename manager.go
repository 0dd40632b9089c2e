package bal

import (
	"fmt"
	"sort"
)

// Manager holds context factories for multiple binary-data families
// keyed by a user-chosen name (e.g. "xilinx", "altera"), so tooling can
// pick a format at run time.
type Manager struct {
	factories map[string]*Factory
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{factories: make(map[string]*Factory)}
}

// Register adds a factory under key. Registering the same key twice is
// an error.
func (m *Manager) Register(key string, factory *Factory) error {
	if _, ok := m.factories[key]; ok {
		return fmt.Errorf("%w: factory for %q", ErrAlreadyRegistered, key)
	}
	m.factories[key] = factory
	return nil
}

// Get returns the factory registered under key.
func (m *Manager) Get(key string) (*Factory, error) {
	factory, ok := m.factories[key]
	if !ok {
		return nil, fmt.Errorf("bal: no factory registered for %q", key)
	}
	return factory, nil
}

// Keys returns the registered keys, sorted.
func (m *Manager) Keys() []string {
	keys := make([]string, 0, len(m.factories))
	for k := range m.factories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
