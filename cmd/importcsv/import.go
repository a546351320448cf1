// Package importcsv implements the import command: upload a bank CSV export.
package importcsv

import (
	"fmt"
	"os"
	"path/filepath"

	"expense-view/cmd/common"
	"expense-view/cmd/root"
	"expense-view/internal/logging"
	"expense-view/internal/validation"

	"github.com/spf13/cobra"
)

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:   "import <file.csv>...",
	Short: "Import bank CSV exports",
	Long: `Upload one or more bank CSV exports to the backend. The backend detects
the bank format, skips rows it cannot read and reports them, and applies
learned categorization rules to the imported transactions.`,
	Example: `  expense-view import ~/Downloads/statement.csv`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		logger := c.GetLogger()
		ctrl := c.GetController()

		for _, path := range args {
			if err := validation.IsValidImportFile(path); err != nil {
				return err
			}
		}

		for _, path := range args {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", path, err)
			}
			logger.Info("Importing file", logging.F(logging.FieldFile, path))
			err = ctrl.Import(cmd.Context(), filepath.Base(path), f)
			_ = f.Close()
			if err := common.Report(cmd.OutOrStdout(), ctrl, err); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}
		return nil
	},
}
