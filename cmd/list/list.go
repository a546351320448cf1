// Package list implements the list command: filtered, month-grouped transactions.
package list

import (
	"fmt"
	"io"
	"strings"

	"expense-view/cmd/common"
	"expense-view/cmd/root"
	"expense-view/internal/filter"
	"expense-view/internal/logging"
	"expense-view/internal/models"
	"expense-view/internal/render"
	"expense-view/internal/store"
	"expense-view/internal/validation"
	"expense-view/internal/view"

	"github.com/spf13/cobra"
)

// Options holds the list flags.
type Options struct {
	Criteria    filter.Criteria
	Sort        string
	Format      string
	Preset      string
	SavePreset  string
	ListPresets bool
}

var opts Options

// Cmd represents the list command
var Cmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions grouped by month",
	Long: `List transactions grouped by month, most recent month first.

Filters combine: only transactions passing every given filter are shown.
--sort orders the rows inside every month table. --format csv writes the
filtered rows to stdout for spreadsheets. Filters can be saved as named
presets with --save-preset and reused with --preset.`,
	Example: `  expense-view list --year 2025 --type expense --sort amount:desc
  expense-view list --search coles --format csv > coles.csv
  expense-view list --category Groceries --save-preset groceries
  expense-view list --preset groceries`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, cmd.OutOrStdout())
	},
}

func init() {
	f := Cmd.Flags()
	f.StringVarP(&opts.Criteria.Search, "search", "s", "", "Case-insensitive substring of the description")
	f.StringVarP(&opts.Criteria.Year, "year", "y", "", "Only transactions of this year (YYYY)")
	f.StringVarP(&opts.Criteria.Category, "category", "c", "", "Only this category (exact name, \"Uncategorized\" for none)")
	f.StringVarP(&opts.Criteria.Type, "type", "t", "", "expense or income")
	f.StringVarP(&opts.Criteria.Essential, "essential", "e", "", "essential or optional")
	f.StringVar(&opts.Criteria.MinAmount, "min", "", "Minimum amount (inclusive)")
	f.StringVar(&opts.Criteria.MaxAmount, "max", "", "Maximum amount (inclusive)")
	f.StringVar(&opts.Sort, "sort", "", "Sort rows: column[:asc|desc], column one of "+strings.Join(columnNames(), ", "))
	f.StringVarP(&opts.Format, "format", "f", validation.FormatTable, "Output format: table or csv")
	f.StringVar(&opts.Preset, "preset", "", "Start from a saved preset; explicit flags override it")
	f.StringVar(&opts.SavePreset, "save-preset", "", "Save the effective filter and sort under this name")
	f.BoolVar(&opts.ListPresets, "list-presets", false, "Print saved preset names and exit")
}

func columnNames() []string {
	cols := view.Columns()
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = string(c)
	}
	return names
}

func run(cmd *cobra.Command, out io.Writer) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	logger := c.GetLogger()

	if err := validation.IsValidOutputFormat(opts.Format); err != nil {
		return err
	}

	presets, err := c.GetPresets()
	if err != nil {
		return err
	}
	if opts.ListPresets {
		return printPresets(out, presets)
	}

	criteria, sortSpec, err := Effective(cmd, opts, presets)
	if err != nil {
		return err
	}

	var sortKey *view.SortKey
	if sortSpec != "" {
		key, err := view.ParseSortKey(sortSpec)
		if err != nil {
			return err
		}
		sortKey = &key
	}

	if opts.SavePreset != "" {
		if err := presets.Put(opts.SavePreset, store.Preset{Criteria: criteria, Sort: sortSpec}); err != nil {
			return err
		}
		if err := presets.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved preset %q\n", opts.SavePreset)
	}

	ctrl := c.GetController()
	if err := common.Report(io.Discard, ctrl, ctrl.Refresh(cmd.Context())); err != nil {
		return err
	}
	ctrl.SetCriteria(criteria)
	if sortKey != nil {
		ctrl.SetSort(*sortKey)
	}

	vm := ctrl.View()
	logger.Debug("Listing transactions",
		logging.F(logging.FieldCount, vm.Visible),
		logging.F("total", vm.Total),
		logging.F("filter", vm.CriteriaSummary))

	if opts.Format == validation.FormatCSV {
		return render.WriteCSV(out, Flatten(vm.Groups), c.GetConfig().Delimiter())
	}

	r := c.GetRenderer()
	fmt.Fprintln(out, r.TransactionTables(vm.Groups, render.TableOptions{Sorts: vm.Sorts}))
	fmt.Fprintln(out, r.Styles.Subtle.Render(fmt.Sprintf("%d of %d transaction(s) · %s", vm.Visible, vm.Total, vm.CriteriaSummary)))
	return nil
}

// Effective merges a preset with the flags the user set explicitly.
func Effective(cmd *cobra.Command, o Options, presets store.PresetRepository) (filter.Criteria, string, error) {
	if o.Preset == "" {
		return o.Criteria, o.Sort, nil
	}
	p, ok := presets.Get(o.Preset)
	if !ok {
		return filter.Criteria{}, "", fmt.Errorf("no preset named %q (saved: %s)", o.Preset, strings.Join(presets.Names(), ", "))
	}

	criteria, sortSpec := p.Criteria, p.Sort
	changed := func(name string) bool { return cmd.Flags().Changed(name) }
	if changed("search") {
		criteria.Search = o.Criteria.Search
	}
	if changed("year") {
		criteria.Year = o.Criteria.Year
	}
	if changed("category") {
		criteria.Category = o.Criteria.Category
	}
	if changed("type") {
		criteria.Type = o.Criteria.Type
	}
	if changed("essential") {
		criteria.Essential = o.Criteria.Essential
	}
	if changed("min") {
		criteria.MinAmount = o.Criteria.MinAmount
	}
	if changed("max") {
		criteria.MaxAmount = o.Criteria.MaxAmount
	}
	if changed("sort") {
		sortSpec = o.Sort
	}
	return criteria, sortSpec, nil
}

// Flatten returns the rows of all groups in display order.
func Flatten(groups []view.Group) []models.Transaction {
	var rows []models.Transaction
	for _, g := range groups {
		rows = append(rows, g.Transactions...)
	}
	return rows
}

func printPresets(out io.Writer, presets store.PresetRepository) error {
	names := presets.Names()
	if len(names) == 0 {
		fmt.Fprintln(out, "No saved presets.")
		return nil
	}
	for _, name := range names {
		p, _ := presets.Get(name)
		line := fmt.Sprintf("%-20s %s", name, p.Criteria.Describe())
		if p.Sort != "" {
			line += " · sort " + p.Sort
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
