package store

import (
	"os"
	"path/filepath"
	"testing"

	"expense-view/internal/filter"
	"expense-view/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestFindPresetFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "presets.yaml")
	writeFile(t, file, "presets: {}\n")

	found, err := FindPresetFile(file)
	assert.NoError(t, err)
	assert.Equal(t, file, found)

	_, err = FindPresetFile(filepath.Join(dir, "nonexistent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindPresetFile_ProjectDirectory(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, os.MkdirAll(ConfigDirName, 0755))
	writeFile(t, filepath.Join(ConfigDirName, "presets.yaml"), "presets: {}\n")

	found, err := FindPresetFile("presets.yaml")
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(ConfigDirName, "presets.yaml"), found)
}

func TestPresetStore_LoadMissingFile(t *testing.T) {
	logger := logging.NewMockLogger()
	s := NewPresetStore(filepath.Join(t.TempDir(), "missing.yaml"), logger)

	require.NoError(t, s.Load())
	assert.Empty(t, s.Names())
	assert.True(t, logger.HasEntry("DEBUG", "Presets file not found, starting empty"))
}

func TestPresetStore_Load(t *testing.T) {
	file := filepath.Join(t.TempDir(), "presets.yaml")
	writeFile(t, file, `presets:
  groceries:
    criteria:
      search: coles
      essential: essential
    sort: amount:desc
  big:
    criteria:
      min_amount: "500"
`)
	s := NewPresetStore(file, logging.NewMockLogger())

	require.NoError(t, s.Load())
	assert.Equal(t, []string{"big", "groceries"}, s.Names())

	p, ok := s.Get("groceries")
	require.True(t, ok)
	assert.Equal(t, filter.Criteria{Search: "coles", Essential: "essential"}, p.Criteria)
	assert.Equal(t, "amount:desc", p.Sort)
}

func TestPresetStore_LoadMalformed(t *testing.T) {
	file := filepath.Join(t.TempDir(), "presets.yaml")
	writeFile(t, file, "presets: [not: a map")
	s := NewPresetStore(file, logging.NewMockLogger())

	assert.Error(t, s.Load())
}

func TestPresetStore_SaveRoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", "presets.yaml")
	s := NewPresetStore(file, logging.NewMockLogger())
	require.NoError(t, s.Put("income-2025", Preset{Criteria: filter.Criteria{Year: "2025", Type: "income"}}))
	require.NoError(t, s.Save())

	reloaded := NewPresetStore(file, logging.NewMockLogger())
	require.NoError(t, reloaded.Load())
	p, ok := reloaded.Get("income-2025")
	require.True(t, ok)
	assert.Equal(t, "2025", p.Criteria.Year)
	assert.Equal(t, "income", p.Criteria.Type)
}

func TestPresetStore_PutAndDelete(t *testing.T) {
	s := NewPresetStore("", logging.NewMockLogger())
	assert.Equal(t, DefaultPresetsFile, s.File)

	assert.Error(t, s.Put("  ", Preset{}))
	require.NoError(t, s.Put("a", Preset{Sort: "date"}))

	assert.True(t, s.Delete("a"))
	assert.False(t, s.Delete("a"))
	_, ok := s.Get("a")
	assert.False(t, ok)
}

func TestMockPresetStore(t *testing.T) {
	m := &MockPresetStore{}
	require.NoError(t, m.Put("x", Preset{Sort: "amount"}))
	require.NoError(t, m.Save())
	assert.Equal(t, 1, m.Saved)
	assert.Equal(t, []string{"x"}, m.Names())
	assert.True(t, m.Delete("x"))
}
