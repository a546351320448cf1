// Package duplicates implements the duplicates command group.
package duplicates

import (
	"fmt"
	"io"

	"expense-view/cmd/common"
	"expense-view/cmd/root"
	"expense-view/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the duplicates command group
var Cmd = &cobra.Command{
	Use:     "duplicates",
	Aliases: []string{"dups"},
	Short:   "Find and remove duplicate transactions",
	Long: `Duplicates are transactions with the same date, description and amount.
The backend keeps the oldest transaction of each group; the rest are removable.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show duplicate groups",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		ctrl := c.GetController()
		if err := common.Report(io.Discard, ctrl, ctrl.LoadDuplicates(cmd.Context())); err != nil {
			return err
		}
		report := ctrl.View().Duplicates
		if report == nil {
			return fmt.Errorf("no duplicate report received")
		}
		fmt.Fprintln(cmd.OutOrStdout(), c.GetRenderer().Duplicates(*report))
		return nil
	},
}

var yes bool

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove every redundant duplicate",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !yes {
			return fmt.Errorf("refusing to remove duplicates without --yes")
		}
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		ctrl := c.GetController()
		if err := common.Report(io.Discard, ctrl, ctrl.LoadDuplicates(cmd.Context())); err != nil {
			return err
		}
		report := ctrl.View().Duplicates
		if report == nil || len(report.RedundantIDs()) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No duplicates found.")
			return nil
		}
		ids := report.RedundantIDs()
		c.GetLogger().Info("Removing duplicates", logging.F(logging.FieldCount, len(ids)))
		return common.Report(cmd.OutOrStdout(), ctrl, ctrl.RemoveDuplicates(cmd.Context(), ids))
	},
}

func init() {
	removeCmd.Flags().BoolVar(&yes, "yes", false, "Confirm the removal")
	Cmd.AddCommand(listCmd, removeCmd)
}
