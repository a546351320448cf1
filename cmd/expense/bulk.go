package expense

import (
	"fmt"
	"io"

	"expense-view/cmd/common"
	"expense-view/cmd/root"
	"expense-view/internal/models"

	"github.com/spf13/cobra"
)

var categorizeOpts struct {
	description string
	category    string
	essential   bool
	fuzzy       bool
	keywords    string
}

var categorizeCmd = &cobra.Command{
	Use:   "categorize [id]...",
	Short: "Set the category of many transactions",
	Long: `Set the category of many transactions at once.

With ids, the listed transactions move to --category. With --description,
every transaction matching the description does, and the backend learns a
rule for future imports; --fuzzy matches on keywords instead of the exact text.`,
	Example: `  expense-view expense categorize 12 14,15 --category Groceries
  expense-view expense categorize --description "SHELL 1234" --category Transport --essential
  expense-view expense categorize --description "SHELL 1234" --fuzzy --keywords shell --category Transport`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		ctrl := c.GetController()

		if categorizeOpts.description != "" && len(args) > 0 {
			return fmt.Errorf("give either ids or --description, not both")
		}

		if categorizeOpts.description != "" {
			if err := common.Report(io.Discard, ctrl, ctrl.Refresh(cmd.Context())); err != nil {
				return err
			}
			categoryID, err := common.ResolveCategory(ctrl, categorizeOpts.category)
			if err != nil {
				return err
			}
			req := models.BulkCategoryByDescription{
				Description: categorizeOpts.description,
				CategoryID:  categoryID,
				IsEssential: categorizeOpts.essential,
				MatchMode:   models.MatchExact,
			}
			if categorizeOpts.fuzzy {
				req.MatchMode = models.MatchFuzzy
				req.FuzzyKeywords = categorizeOpts.keywords
			}
			return common.Report(cmd.OutOrStdout(), ctrl, ctrl.BulkCategoryByDescription(cmd.Context(), req))
		}

		ids, err := common.ParseIDs(args)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return fmt.Errorf("give transaction ids or --description")
		}
		if err := selectIDs(cmd, ids); err != nil {
			return err
		}
		categoryID, err := common.ResolveCategory(ctrl, categorizeOpts.category)
		if err != nil {
			return err
		}
		return common.Report(cmd.OutOrStdout(), ctrl, ctrl.BulkCategorySelected(cmd.Context(), categoryID))
	},
}

var essentialOptional bool

var essentialCmd = &cobra.Command{
	Use:   "essential <id>...",
	Short: "Mark transactions as essential (or optional with --optional)",
	Example: `  expense-view expense essential 12 13
  expense-view expense essential 12,13 --optional`,
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
		if err := selectIDs(cmd, ids); err != nil {
			return err
		}
		return common.Report(cmd.OutOrStdout(), ctrl, ctrl.BulkEssentialSelected(cmd.Context(), !essentialOptional))
	},
}

func init() {
	f := categorizeCmd.Flags()
	f.StringVarP(&categorizeOpts.category, "category", "c", "", "Target category (\"Uncategorized\" clears it)")
	f.StringVarP(&categorizeOpts.description, "description", "d", "", "Match transactions by description instead of ids")
	f.BoolVar(&categorizeOpts.essential, "essential", false, "With --description, also mark the matches as essential")
	f.BoolVar(&categorizeOpts.fuzzy, "fuzzy", false, "With --description, match on keywords")
	f.StringVar(&categorizeOpts.keywords, "keywords", "", "Keywords for --fuzzy (default: derived by the backend)")
	_ = categorizeCmd.MarkFlagRequired("category")

	essentialCmd.Flags().BoolVar(&essentialOptional, "optional", false, "Mark as optional instead")
}
