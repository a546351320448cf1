package store

import (
	"fmt"
	"sort"
)

// MockPresetStore is an in-memory PresetRepository for tests.
type MockPresetStore struct {
	Presets map[string]Preset
	Saved   int

	// Error flags for testing error conditions
	LoadError error
	SaveError error
}

func (m *MockPresetStore) Load() error {
	return m.LoadError
}

func (m *MockPresetStore) Save() error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Saved++
	return nil
}

func (m *MockPresetStore) Get(name string) (Preset, bool) {
	p, ok := m.Presets[name]
	return p, ok
}

func (m *MockPresetStore) Put(name string, p Preset) error {
	if name == "" {
		return fmt.Errorf("preset name cannot be empty")
	}
	if m.Presets == nil {
		m.Presets = make(map[string]Preset)
	}
	m.Presets[name] = p
	return nil
}

func (m *MockPresetStore) Delete(name string) bool {
	if _, ok := m.Presets[name]; !ok {
		return false
	}
	delete(m.Presets, name)
	return true
}

func (m *MockPresetStore) Names() []string {
	names := make([]string, 0, len(m.Presets))
	for name := range m.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	_ PresetRepository = (*MockPresetStore)(nil)
	_ PresetRepository = (*PresetStore)(nil)
)
