package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"expense-view/internal/filter"
	"expense-view/internal/logging"

	"gopkg.in/yaml.v3"
)

// DefaultPresetsFile is used when no presets file is configured.
const DefaultPresetsFile = "presets.yaml"

// ConfigDirName is the per-user and per-project configuration directory.
const ConfigDirName = ".expense-view"

// Preset is a named filter with an optional sort applied to every month table.
type Preset struct {
	Criteria filter.Criteria `yaml:"criteria"`
	Sort     string          `yaml:"sort,omitempty"`
}

type presetsDocument struct {
	Presets map[string]Preset `yaml:"presets"`
}

// PresetRepository is the behaviour the CLI needs from a presets store.
type PresetRepository interface {
	Load() error
	Save() error
	Get(name string) (Preset, bool)
	Put(name string, p Preset) error
	Delete(name string) bool
	Names() []string
}

// PresetStore manages the YAML file of saved filter presets.
type PresetStore struct {
	File    string
	logger  logging.Logger
	presets map[string]Preset
}

// NewPresetStore creates a store for the given file. A relative name is looked
// up in the usual configuration locations.
func NewPresetStore(file string, logger logging.Logger) *PresetStore {
	if file == "" {
		file = DefaultPresetsFile
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &PresetStore{File: file, logger: logger, presets: make(map[string]Preset)}
}

// FindPresetFile looks for filename in the current directory, ./.expense-view
// and ~/.expense-view.
func FindPresetFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join(ConfigDirName, filename),
	}
	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(home, ConfigDirName, filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// writePath is the existing file if there is one, otherwise the per-user location.
func (s *PresetStore) writePath() (string, error) {
	path, err := FindPresetFile(s.File)
	if err == nil {
		return path, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	if filepath.IsAbs(s.File) {
		return s.File, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(ConfigDirName, s.File), nil
	}
	return filepath.Join(home, ConfigDirName, s.File), nil
}

// Load reads the presets file. A missing file yields an empty store.
func (s *PresetStore) Load() error {
	path, err := FindPresetFile(s.File)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("Presets file not found, starting empty",
				logging.Field{Key: logging.FieldFile, Value: s.File})
			s.presets = make(map[string]Preset)
			return nil
		}
		return fmt.Errorf("error resolving presets file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading presets file: %w", err)
	}

	var doc presetsDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("error parsing presets file %s: %w", path, err)
	}
	if doc.Presets == nil {
		doc.Presets = make(map[string]Preset)
	}
	s.presets = doc.Presets

	s.logger.Debug("Loaded presets",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(s.presets)})
	return nil
}

// Save writes all presets back to disk, creating the directory if needed.
func (s *PresetStore) Save() error {
	path, err := s.writePath()
	if err != nil {
		return fmt.Errorf("error resolving presets file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(presetsDocument{Presets: s.presets})
	if err != nil {
		return fmt.Errorf("error marshaling presets: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing presets: %w", err)
	}

	s.logger.Debug("Saved presets",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(s.presets)})
	return nil
}

func (s *PresetStore) Get(name string) (Preset, bool) {
	p, ok := s.presets[name]
	return p, ok
}

// Put adds or replaces a preset in memory; call Save to persist it.
func (s *PresetStore) Put(name string, p Preset) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("preset name cannot be empty")
	}
	if s.presets == nil {
		s.presets = make(map[string]Preset)
	}
	s.presets[name] = p
	return nil
}

// Delete removes a preset and reports whether it existed.
func (s *PresetStore) Delete(name string) bool {
	if _, ok := s.presets[name]; !ok {
		return false
	}
	delete(s.presets, name)
	return true
}

// Names returns the preset names in alphabetical order.
func (s *PresetStore) Names() []string {
	names := make([]string, 0, len(s.presets))
	for name := range s.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
