// Package recategorize implements the recategorize-stations command.
package recategorize

import (
	"expense-view/cmd/common"
	"expense-view/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the recategorize-stations command
var Cmd = &cobra.Command{
	Use:   "recategorize-stations",
	Short: "Split service-station purchases into fuel and food",
	Long: `Ask the backend to re-examine service-station transactions: large amounts
move to Transport (fuel), small ones to Food.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		ctrl := c.GetController()
		return common.Report(cmd.OutOrStdout(), ctrl, ctrl.RecategorizeServiceStations(cmd.Context()))
	},
}
