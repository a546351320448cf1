// Package cash implements the cash command group: recorded balances and runway.
package cash

import (
	"fmt"

	"expense-view/cmd/common"
	"expense-view/cmd/root"
	"expense-view/internal/apierror"
	"expense-view/internal/models"
	"expense-view/internal/validation"

	"github.com/spf13/cobra"
)

// Cmd represents the cash command group
var Cmd = &cobra.Command{
	Use:   "cash",
	Short: "Track cash positions and runway",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded cash positions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		positions, err := c.GetClient().ListCashPositions(cmd.Context())
		if err != nil {
			return userError(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), c.GetRenderer().CashPositions(positions))
		return nil
	},
}

var (
	date   string
	amount string
	notes  string
)

// buildInput reads the position flags into a validated input.
func buildInput() (models.CashPositionInput, error) {
	var in models.CashPositionInput
	d, err := common.ParseDate(date)
	if err != nil {
		return in, err
	}
	a, err := common.ParseAmount(amount)
	if err != nil {
		return in, err
	}
	in = models.CashPositionInput{Date: d, Amount: a, Notes: notes}
	return in, validation.CashPositionInput(in)
}

var addCmd = &cobra.Command{
	Use:     "add",
	Short:   "Record a cash position",
	Example: `  expense-view cash add --date 2025-03-31 --amount 12500`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		in, err := buildInput()
		if err != nil {
			return err
		}
		id, err := c.GetClient().CreateCashPosition(cmd.Context(), in)
		if err != nil {
			return userError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Recorded cash position #%d\n", id)
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace a cash position",
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
		in, err := buildInput()
		if err != nil {
			return err
		}
		if err := c.GetClient().UpdateCashPosition(cmd.Context(), id, in); err != nil {
			return userError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated cash position #%d\n", id)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a cash position",
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
		if err := c.GetClient().DeleteCashPosition(cmd.Context(), id); err != nil {
			return userError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted cash position #%d\n", id)
		return nil
	},
}

var runwayCmd = &cobra.Command{
	Use:   "runway",
	Short: "Show how long current cash lasts at the recent burn rate",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		rw, err := c.GetClient().Runway(cmd.Context())
		if err != nil {
			return userError(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), c.GetRenderer().Runway(rw))
		return nil
	},
}

func userError(err error) error {
	return fmt.Errorf("%s", apierror.UserMessage(err))
}

func init() {
	for _, sub := range []*cobra.Command{addCmd, updateCmd} {
		sub.Flags().StringVar(&date, "date", "", "Balance date (required)")
		sub.Flags().StringVarP(&amount, "amount", "a", "", "Balance amount (required)")
		sub.Flags().StringVar(&notes, "notes", "", "Notes")
		_ = sub.MarkFlagRequired("date")
		_ = sub.MarkFlagRequired("amount")
	}
	Cmd.AddCommand(listCmd, addCmd, updateCmd, deleteCmd, runwayCmd)
}
