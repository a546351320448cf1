// Package rules implements the rules command group: learned categorization rules.
package rules

import (
	"fmt"

	"expense-view/cmd/common"
	"expense-view/cmd/root"
	"expense-view/internal/apierror"

	"github.com/spf13/cobra"
)

// Cmd represents the rules command group
var Cmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect categorization rules learned from manual edits",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List learned rules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		rules, err := c.GetClient().ListLearnedRules(cmd.Context())
		if err != nil {
			return fmt.Errorf("%s", apierror.UserMessage(err))
		}
		fmt.Fprintln(cmd.OutOrStdout(), c.GetRenderer().LearnedRules(rules))
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Forget a learned rule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		id, err := common.ParseID(args[0])
		if err != nil {
			return err
		}
		if err := c.GetClient().DeleteLearnedRule(cmd.Context(), id); err != nil {
			return fmt.Errorf("%s", apierror.UserMessage(err))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted rule #%d\n", id)
		return nil
	},
}

func init() {
	Cmd.AddCommand(listCmd, deleteCmd)
}
