package root_test

import (
	"testing"

	"expense-view/cmd/root"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	root.Init()
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "expense-view", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "expense backend")
	assert.Contains(t, root.Cmd.Long, "terminal client for the expense tracker backend")
	assert.NotNil(t, root.Cmd.Run)
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
	assert.NotNil(t, root.Cmd.PersistentPostRun)
	assert.True(t, root.Cmd.SilenceUsage)
}

func TestRootCommand_Flags(t *testing.T) {
	for _, name := range []string{
		"config", "server", "timeout", "log-level", "log-format",
		"log-file", "csv-delimiter", "currency", "presets-file",
	} {
		assert.NotNil(t, root.Cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestRootCommand_Run(t *testing.T) {
	assert.NotPanics(t, func() {
		root.Cmd.Run(&cobra.Command{}, []string{})
	})
}

func TestGetContainerBeforeInit(t *testing.T) {
	original := root.AppContainer
	defer func() { root.AppContainer = original }()
	root.AppContainer = nil

	_, err := root.GetContainer()
	assert.Error(t, err)
	assert.NotNil(t, root.GetLogger())
}

func TestPersistentPreRunBuildsContainer(t *testing.T) {
	original := root.AppContainer
	defer func() { root.AppContainer = original }()

	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())
	t.Setenv("EXPENSE_PASSWORD", "")

	cmd := &cobra.Command{Use: "probe", Annotations: map[string]string{root.AnnotationSkipAuth: "true"}}
	require.NoError(t, root.Cmd.PersistentPreRunE(cmd, nil))

	c, err := root.GetContainer()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", c.GetClient().BaseURL())
	root.Cmd.PersistentPostRun(cmd, nil)
}
