package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	isolate(t)

	config, err := InitializeConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", config.Server.BaseURL)
	assert.Zero(t, config.Server.TimeoutSeconds)
	assert.Zero(t, config.Timeout(), "requests are unbounded by default")
	assert.Empty(t, config.Server.Password)
	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Empty(t, config.Log.File)
	assert.Equal(t, ",", config.CSV.Delimiter)
	assert.Equal(t, ',', config.Delimiter())
	assert.Equal(t, "$", config.Display.CurrencySymbol)
	assert.Equal(t, "2006-01-02", config.Display.DateLayout)
	assert.Equal(t, "presets.yaml", config.Presets.File)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	isolate(t)

	testEnvVars := map[string]string{
		"EXPENSE_SERVER_BASE_URL":         "https://expenses.example.com",
		"EXPENSE_SERVER_TIMEOUT_SECONDS":  "5",
		"EXPENSE_LOG_LEVEL":               "debug",
		"EXPENSE_LOG_FORMAT":              "json",
		"EXPENSE_CSV_DELIMITER":           ";",
		"EXPENSE_DISPLAY_CURRENCY_SYMBOL": "€",
		"EXPENSE_PASSWORD":                "hunter2",
	}
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := InitializeConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "https://expenses.example.com", config.Server.BaseURL)
	assert.Equal(t, 5, config.Server.TimeoutSeconds)
	assert.Equal(t, 5*time.Second, config.Timeout())
	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, ';', config.Delimiter())
	assert.Equal(t, "€", config.Display.CurrencySymbol)
	assert.Equal(t, "hunter2", config.Server.Password)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	dir := isolate(t)

	configContent := `
server:
  base_url: "http://budget.local:8080"
  timeout_seconds: 10
log:
  level: "warn"
  file: "/tmp/expense-view.log"
csv:
  delimiter: "|"
presets:
  file: "my-presets.yaml"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(configContent), 0644))

	config, err := InitializeConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "http://budget.local:8080", config.Server.BaseURL)
	assert.Equal(t, 10, config.Server.TimeoutSeconds)
	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "/tmp/expense-view.log", config.Log.File)
	assert.Equal(t, "|", config.CSV.Delimiter)
	assert.Equal(t, "my-presets.yaml", config.Presets.File)
}

func TestInitializeConfig_ExplicitFile(t *testing.T) {
	isolate(t)
	file := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(file, []byte("log:\n  level: error\n"), 0644))

	config, err := InitializeConfig(file, nil)
	require.NoError(t, err)
	assert.Equal(t, "error", config.Log.Level)

	_, err = InitializeConfig(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	dir := isolate(t)

	configContent := `
server:
  base_url: "http://from-file:5000"
log:
  level: "warn"
csv:
  delimiter: "|"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(configContent), 0644))

	t.Setenv("EXPENSE_LOG_LEVEL", "error")
	t.Setenv("EXPENSE_SERVER_BASE_URL", "http://from-env:5000")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("server", "", "")
	flags.String("log-level", "", "")
	require.NoError(t, flags.Set("server", "http://from-flag:5000"))

	config, err := InitializeConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, "http://from-flag:5000", config.Server.BaseURL) // flag wins
	assert.Equal(t, "error", config.Log.Level)                      // env wins over file, unset flag ignored
	assert.Equal(t, "|", config.CSV.Delimiter)                      // config file value
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		wantErr      string
	}{
		{"relative base url", func(c *Config) { c.Server.BaseURL = "localhost:5000" }, "server.base_url"},
		{"ftp base url", func(c *Config) { c.Server.BaseURL = "ftp://host" }, "server.base_url"},
		{"negative timeout", func(c *Config) { c.Server.TimeoutSeconds = -1 }, "timeout_seconds"},
		{"huge timeout", func(c *Config) { c.Server.TimeoutSeconds = 601 }, "timeout_seconds"},
		{"log level", func(c *Config) { c.Log.Level = "verbose" }, "invalid log level"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
		{"empty delimiter", func(c *Config) { c.CSV.Delimiter = "" }, "single character"},
		{"long delimiter", func(c *Config) { c.CSV.Delimiter = ";;" }, "single character"},
		{"presets file", func(c *Config) { c.Presets.File = "" }, "presets.file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.modifyConfig(config)
			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	assert.NoError(t, validateConfig(validConfig()))
}

func TestFindEnvFileAndGetEnv(t *testing.T) {
	dir := isolate(t)

	_, ok := FindEnvFile()
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("EXPENSE_PASSWORD=x\n"), 0644))
	file, ok := FindEnvFile()
	assert.True(t, ok)
	assert.Equal(t, ".env", file)

	t.Setenv("EXPENSE_TEST_VALUE", "set")
	assert.Equal(t, "set", GetEnv("EXPENSE_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetEnv("EXPENSE_TEST_MISSING", "fallback"))
}

func TestDefaultLogFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	assert.Equal(t, filepath.Join(home, ".expense-view", DefaultLogFileName), DefaultLogFile())
}

func validConfig() *Config {
	c := &Config{}
	c.Server.BaseURL = "http://localhost:5000"
	c.Server.TimeoutSeconds = 30
	c.Log.Level = "info"
	c.Log.Format = "text"
	c.CSV.Delimiter = ","
	c.Presets.File = "presets.yaml"
	return c
}

// isolate runs the test from an empty directory with an empty HOME and no
// EXPENSE_* variables, so no real config or .env leaks in.
func isolate(t *testing.T) string {
	t.Helper()
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, EnvPrefix+"_") {
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}
	}
	dir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	chdir(t, dir)
	return dir
}

func TestConfigureLogging(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	logger := ConfigureLogging()
	assert.Equal(t, "debug", logger.GetLevel().String())

	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")
	logger = ConfigureLogging()
	assert.Equal(t, "info", logger.GetLevel().String())
}
