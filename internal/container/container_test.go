package container

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"expense-view/internal/config"
	"expense-view/internal/filter"
	"expense-view/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Server.BaseURL = "http://localhost:5000"
	cfg.Server.TimeoutSeconds = 5
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.CSV.Delimiter = ","
	cfg.Display.CurrencySymbol = "$"
	cfg.Presets.File = filepath.Join(t.TempDir(), "presets.yaml")
	return cfg
}

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name        string
		config      func(t *testing.T) *config.Config
		expectError bool
		errorMsg    string
	}{
		{
			name:        "nil config",
			config:      func(*testing.T) *config.Config { return nil },
			expectError: true,
			errorMsg:    "configuration cannot be nil",
		},
		{
			name:   "valid config",
			config: testConfig,
		},
		{
			name: "bad base url",
			config: func(t *testing.T) *config.Config {
				cfg := testConfig(t)
				cfg.Server.BaseURL = "localhost"
				return cfg
			},
			expectError: true,
			errorMsg:    "failed to create API client",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewContainer(tt.config(t))
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, c)
			defer func() { _ = c.Close() }()

			assert.NotNil(t, c.GetLogger())
			assert.NotNil(t, c.GetConfig())
			assert.NotNil(t, c.GetClient())
			assert.NotNil(t, c.GetController())
			assert.NotNil(t, c.GetRenderer())
			assert.Equal(t, "http://localhost:5000", c.GetClient().BaseURL())
		})
	}
}

func TestContainer_LogFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Log.File = filepath.Join(t.TempDir(), "logs", "app.log")

	c, err := NewContainer(cfg)
	require.NoError(t, err)
	c.GetLogger().Info("hello from the test")
	require.NoError(t, c.Close())

	data, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from the test")
}

func TestContainer_GetPresets(t *testing.T) {
	cfg := testConfig(t)
	c, err := NewContainer(cfg)
	require.NoError(t, err)

	presets, err := c.GetPresets()
	require.NoError(t, err)
	require.NoError(t, presets.Put("groceries", store.Preset{Criteria: filter.Criteria{Search: "coles"}}))
	require.NoError(t, presets.Save())

	again, err := c.GetPresets()
	require.NoError(t, err)
	assert.Same(t, presets, again)

	_, err = os.Stat(cfg.Presets.File)
	assert.NoError(t, err)
}

func TestContainer_GetPresetsMalformed(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.Presets.File, []byte("presets: [not a map"), 0644))

	c, err := NewContainer(cfg)
	require.NoError(t, err)

	_, err = c.GetPresets()
	assert.Error(t, err)
}

func TestContainer_Authenticate(t *testing.T) {
	logins := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/login" {
			logins++
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cfg := testConfig(t)
	cfg.Server.BaseURL = srv.URL

	c, err := NewContainer(cfg)
	require.NoError(t, err)
	require.NoError(t, c.Authenticate(context.Background()))
	assert.Zero(t, logins, "no password, no login")

	cfg.Server.Password = "secret"
	c, err = NewContainer(cfg)
	require.NoError(t, err)
	require.NoError(t, c.Authenticate(context.Background()))
	require.NoError(t, c.Authenticate(context.Background()))
	assert.Equal(t, 1, logins)
}
