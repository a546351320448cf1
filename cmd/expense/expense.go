// Package expense implements the expense command group: create, edit, delete
// and bulk-update transactions.
package expense

import (
	"fmt"
	"io"
	"strings"

	"expense-view/cmd/common"
	"expense-view/cmd/root"
	"expense-view/internal/models"
	"expense-view/internal/validation"

	"github.com/spf13/cobra"
)

// Cmd represents the expense command group
var Cmd = &cobra.Command{
	Use:     "expense",
	Aliases: []string{"tx"},
	Short:   "Add, update, delete and bulk-edit transactions",
	Long: `Add, update and delete single transactions, delete everything, and
apply categories or the essential flag to many transactions at once.

Every change re-fetches the transaction list so the printed status reflects
what the backend stored.`,
}

var addOpts struct {
	description string
	amount      string
	date        string
	category    string
	income      bool
	essential   bool
	recurring   bool
	frequency   string
	notes       string
	tags        string
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new transaction",
	Example: `  expense-view expense add -d "Coles" -a 42.10 --date 2025-03-01 -c Groceries --essential
  expense-view expense add -d "Salary" -a 5200 --income`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		ctrl := c.GetController()

		in, err := buildInput(cmd)
		if err != nil {
			return err
		}
		if addOpts.category != "" {
			if err := common.Report(io.Discard, ctrl, ctrl.Refresh(cmd.Context())); err != nil {
				return err
			}
			if in.CategoryID, err = common.ResolveCategory(ctrl, addOpts.category); err != nil {
				return err
			}
		}
		return common.Report(cmd.OutOrStdout(), ctrl, ctrl.Create(cmd.Context(), in))
	},
}

func buildInput(cmd *cobra.Command) (models.TransactionInput, error) {
	amount, err := common.ParseAmount(addOpts.amount)
	if err != nil {
		return models.TransactionInput{}, err
	}
	date := addOpts.date
	if date != "" {
		if date, err = common.ParseDate(date); err != nil {
			return models.TransactionInput{}, err
		}
	}
	kind := models.TypeExpense
	if addOpts.income {
		kind = models.TypeIncome
	}
	in := models.TransactionInput{
		Description:        strings.TrimSpace(addOpts.description),
		Amount:             amount,
		Date:               date,
		IsRecurring:        addOpts.recurring,
		RecurringFrequency: addOpts.frequency,
		IsEssential:        addOpts.essential,
		TransactionType:    kind,
		Notes:              addOpts.notes,
		Tags:               common.ParseTags(addOpts.tags),
	}
	if in.RecurringFrequency != "" && !in.IsRecurring {
		return in, fmt.Errorf("--frequency requires --recurring")
	}
	return in, validation.TransactionInput(in)
}

var updateOpts struct {
	description   string
	amount        string
	date          string
	category      string
	clearCategory bool
	essential     bool
	optional      bool
	notes         string
	tags          string
}

var updateCmd = &cobra.Command{
	Use:     "update <id>",
	Short:   "Change fields of a transaction",
	Long:    "Change only the fields given as flags; everything else stays as stored.",
	Example: `  expense-view expense update 42 --category Transport --essential`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		ctrl := c.GetController()

		id, err := common.ParseID(args[0])
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("category") {
			if err := common.Report(io.Discard, ctrl, ctrl.Refresh(cmd.Context())); err != nil {
				return err
			}
		}
		patch, err := buildPatch(cmd, func(name string) (*int, error) {
			return common.ResolveCategory(ctrl, name)
		})
		if err != nil {
			return err
		}
		return common.Report(cmd.OutOrStdout(), ctrl, ctrl.Update(cmd.Context(), id, patch))
	},
}

// buildPatch turns the changed update flags into a patch.
func buildPatch(cmd *cobra.Command, resolve func(string) (*int, error)) (models.TransactionPatch, error) {
	var patch models.TransactionPatch
	changed := cmd.Flags().Changed

	if changed("description") {
		d := updateOpts.description
		patch.Description = &d
	}
	if changed("amount") {
		amount, err := common.ParseAmount(updateOpts.amount)
		if err != nil {
			return patch, err
		}
		patch.Amount = &amount
	}
	if changed("date") {
		date, err := common.ParseDate(updateOpts.date)
		if err != nil {
			return patch, err
		}
		patch.Date = &date
	}
	if changed("category") {
		id, err := resolve(updateOpts.category)
		if err != nil {
			return patch, err
		}
		patch.CategoryID = id
		patch.ClearCategory = id == nil
	}
	if updateOpts.clearCategory {
		patch.CategoryID, patch.ClearCategory = nil, true
	}
	switch {
	case updateOpts.essential && updateOpts.optional:
		return patch, fmt.Errorf("--essential and --optional are mutually exclusive")
	case updateOpts.essential:
		v := true
		patch.IsEssential = &v
	case updateOpts.optional:
		v := false
		patch.IsEssential = &v
	}
	if changed("notes") {
		n := updateOpts.notes
		patch.Notes = &n
	}
	if changed("tags") {
		patch.Tags = common.ParseTags(updateOpts.tags)
		if patch.Tags == nil {
			patch.Tags = []string{}
		}
	}
	return patch, validation.TransactionPatch(patch)
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>...",
	Aliases: []string{"rm"},
	Short:   "Delete one or more transactions",
	Example: `  expense-view expense delete 42
  expense-view expense delete 42,43 57`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		ctrl := c.GetController()

		ids, err := common.ParseIDs(args)
		if err != nil {
			return err
		}
		if len(ids) == 1 {
			return common.Report(cmd.OutOrStdout(), ctrl, ctrl.Delete(cmd.Context(), ids[0]))
		}
		if err := selectIDs(cmd, ids); err != nil {
			return err
		}
		return common.Report(cmd.OutOrStdout(), ctrl, ctrl.DeleteSelected(cmd.Context()))
	},
}

var confirmDeleteAll bool

var deleteAllCmd = &cobra.Command{
	Use:   "delete-all",
	Short: "Delete every transaction",
	Long:  "Delete every transaction stored by the backend. Requires --yes.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmDeleteAll {
			return fmt.Errorf("refusing to delete all transactions without --yes")
		}
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		ctrl := c.GetController()
		return common.Report(cmd.OutOrStdout(), ctrl, ctrl.DeleteAll(cmd.Context()))
	},
}

// selectIDs loads the snapshot and selects ids, failing on ids the backend does not know.
func selectIDs(cmd *cobra.Command, ids []int) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	ctrl := c.GetController()
	if err := common.Report(io.Discard, ctrl, ctrl.Refresh(cmd.Context())); err != nil {
		return err
	}
	var unknown []string
	for _, id := range ids {
		if _, ok := ctrl.Transaction(id); !ok {
			unknown = append(unknown, fmt.Sprintf("#%d", id))
			continue
		}
		ctrl.ToggleSelection(id, true)
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unknown transaction(s): %s", strings.Join(unknown, ", "))
	}
	return nil
}

func init() {
	f := addCmd.Flags()
	f.StringVarP(&addOpts.description, "description", "d", "", "Description (required)")
	f.StringVarP(&addOpts.amount, "amount", "a", "", "Positive amount (required)")
	f.StringVar(&addOpts.date, "date", "", "Date, YYYY-MM-DD or DD/MM/YYYY (required)")
	f.StringVarP(&addOpts.category, "category", "c", "", "Category name")
	f.BoolVar(&addOpts.income, "income", false, "Record income instead of an expense")
	f.BoolVar(&addOpts.essential, "essential", false, "Mark as essential")
	f.BoolVar(&addOpts.recurring, "recurring", false, "Mark as recurring")
	f.StringVar(&addOpts.frequency, "frequency", "", "Recurring frequency, e.g. monthly")
	f.StringVar(&addOpts.notes, "notes", "", "Free-form notes")
	f.StringVar(&addOpts.tags, "tags", "", "Comma separated tags")
	_ = addCmd.MarkFlagRequired("description")
	_ = addCmd.MarkFlagRequired("amount")
	_ = addCmd.MarkFlagRequired("date")

	f = updateCmd.Flags()
	f.StringVarP(&updateOpts.description, "description", "d", "", "New description")
	f.StringVarP(&updateOpts.amount, "amount", "a", "", "New amount")
	f.StringVar(&updateOpts.date, "date", "", "New date")
	f.StringVarP(&updateOpts.category, "category", "c", "", "New category name (\"Uncategorized\" clears it)")
	f.BoolVar(&updateOpts.clearCategory, "clear-category", false, "Remove the category")
	f.BoolVar(&updateOpts.essential, "essential", false, "Mark as essential")
	f.BoolVar(&updateOpts.optional, "optional", false, "Mark as optional")
	f.StringVar(&updateOpts.notes, "notes", "", "New notes")
	f.StringVar(&updateOpts.tags, "tags", "", "New comma separated tags (empty clears)")

	deleteAllCmd.Flags().BoolVar(&confirmDeleteAll, "yes", false, "Confirm deleting every transaction")

	Cmd.AddCommand(addCmd, updateCmd, deleteCmd, deleteAllCmd, categorizeCmd, essentialCmd)
}
