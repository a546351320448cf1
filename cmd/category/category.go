// Package category implements the category command group.
package category

import (
	"fmt"
	"io"
	"strings"

	"expense-view/cmd/common"
	"expense-view/cmd/root"
	"expense-view/internal/apierror"
	"expense-view/internal/logging"
	"expense-view/internal/models"
	"expense-view/internal/render"
	"expense-view/internal/validation"

	"github.com/spf13/cobra"
)

// Cmd represents the category command group
var Cmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"categories"},
	Short:   "List and manage categories",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories with how many transactions use each",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		ctrl := c.GetController()
		if err := common.Report(io.Discard, ctrl, ctrl.Refresh(cmd.Context())); err != nil {
			return err
		}
		counts := render.CategoryUsage(ctrl.Filtered())
		fmt.Fprintln(cmd.OutOrStdout(), c.GetRenderer().Categories(ctrl.View().Categories, counts))
		return nil
	},
}

var (
	name  string
	color string
)

var addCmd = &cobra.Command{
	Use:     "add",
	Short:   "Create a category",
	Example: `  expense-view category add --name Groceries --color "#27ae60"`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		in := models.CategoryInput{Name: strings.TrimSpace(name), Color: color}
		if err := validation.CategoryInput(in, true); err != nil {
			return err
		}
		id, err := c.GetClient().CreateCategory(cmd.Context(), in)
		if err != nil {
			return userError(err)
		}
		c.GetLogger().Info("Category created", logging.F(logging.FieldCategory, in.Name))
		fmt.Fprintf(cmd.OutOrStdout(), "Added category #%d %s\n", id, in.Name)
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:     "update <id>",
	Short:   "Rename or recolor a category",
	Example: `  expense-view category update 3 --color "#e67e22"`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		id, err := common.ParseID(args[0])
		if err != nil {
			return err
		}
		in := models.CategoryInput{Name: strings.TrimSpace(name), Color: color}
		if err := validation.CategoryInput(in, false); err != nil {
			return err
		}
		if err := c.GetClient().UpdateCategory(cmd.Context(), id, in); err != nil {
			return userError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated category #%d\n", id)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a category; its transactions become uncategorized",
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
		affected, err := c.GetClient().DeleteCategory(cmd.Context(), id)
		if err != nil {
			return userError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted category #%d, %d transaction(s) now uncategorized\n", id, affected)
		return nil
	},
}

func userError(err error) error {
	return fmt.Errorf("%s", apierror.UserMessage(err))
}

func init() {
	addCmd.Flags().StringVarP(&name, "name", "n", "", "Category name (required)")
	addCmd.Flags().StringVar(&color, "color", "", "Display color as #rrggbb (default: backend default)")
	_ = addCmd.MarkFlagRequired("name")

	updateCmd.Flags().StringVarP(&name, "name", "n", "", "New name")
	updateCmd.Flags().StringVar(&color, "color", "", "New color as #rrggbb")

	Cmd.AddCommand(listCmd, addCmd, updateCmd, deleteCmd)
}
