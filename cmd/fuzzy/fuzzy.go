// Package fuzzy implements the fuzzy-preview command.
package fuzzy

import (
	"fmt"
	"strings"

	"expense-view/cmd/root"
	"expense-view/internal/apierror"
	"expense-view/internal/models"
	"expense-view/internal/validation"

	"github.com/spf13/cobra"
)

var (
	description string
	keywords    string
)

// Cmd represents the fuzzy-preview command
var Cmd = &cobra.Command{
	Use:   "fuzzy-preview",
	Short: "Preview which transactions a fuzzy description match would touch",
	Long: `Ask the backend which keywords it would derive from a description and how
many transactions they match. Use it before "expense categorize --fuzzy".`,
	Example: `  expense-view fuzzy-preview -d "WOOLWORTHS 1234 SYDNEY"`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		req := models.FuzzyMatchRequest{Description: strings.TrimSpace(description), FuzzyKeywords: keywords}
		if err := validation.BulkByDescription(models.BulkCategoryByDescription{Description: req.Description}); err != nil {
			return err
		}
		preview, err := c.GetClient().FuzzyMatchPreview(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("%s", apierror.UserMessage(err))
		}
		writePreview(cmd, preview)
		return nil
	},
}

func writePreview(cmd *cobra.Command, p models.FuzzyMatchPreview) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Keywords: %s\n", p.Keywords)
	fmt.Fprintf(out, "Matches:  %d transaction(s)\n", p.MatchCount)
	for _, s := range p.Samples {
		fmt.Fprintf(out, "  %s\n", s)
	}
}

func init() {
	Cmd.Flags().StringVarP(&description, "description", "d", "", "Description to match (required)")
	Cmd.Flags().StringVar(&keywords, "keywords", "", "Override the derived keywords")
	_ = Cmd.MarkFlagRequired("description")
}
