// Package tui implements the tui command: the interactive browser.
package tui

import (
	"expense-view/cmd/root"
	"expense-view/internal/tui"

	"github.com/spf13/cobra"
)

// Cmd represents the tui command
var Cmd = &cobra.Command{
	Use:     "tui",
	Aliases: []string{"browse"},
	Short:   "Browse and edit transactions interactively",
	Long: `Open the full-screen browser: month tables with per-table sorting, filters,
search, multi-select with bulk actions, statistics, categories and duplicates.

Logs go to the log file instead of the terminal while the browser is open.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{root.AnnotationLogToFile: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		return tui.Run(cmd.Context(), c.GetController(), c.GetRenderer(), c.GetLogger())
	},
}
