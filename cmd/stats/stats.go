// Package stats implements the stats command.
package stats

import (
	"fmt"
	"io"
	"time"

	"expense-view/cmd/common"
	"expense-view/cmd/root"
	"expense-view/internal/api"
	"expense-view/internal/dateutils"
	"expense-view/internal/render"

	"github.com/spf13/cobra"
)

var (
	period    string
	year      string
	showTrend bool
)

// Cmd represents the stats command
var Cmd = &cobra.Command{
	Use:   "stats",
	Short: "Show income, spending and category statistics",
	Long: `Show the statistics the backend computes for a period: income,
expenses and net, the essential/optional split, spending by category and,
with --trend, the month by month trend.

Periods: month, last3months, last12months, year, all, custom-YYYY-MM.`,
	Example: `  expense-view stats
  expense-view stats --period year --year 2024 --trend
  expense-view stats --period custom-2025-03`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		if period != "" {
			if err := dateutils.ValidatePeriod(period); err != nil {
				return err
			}
		}

		ctrl := c.GetController()
		ctrl.SetStatisticsQuery(api.StatisticsQuery{Period: period, Year: year})
		if err := common.Report(io.Discard, ctrl, ctrl.LoadStatistics(cmd.Context())); err != nil {
			return err
		}

		vm := ctrl.View()
		if vm.Statistics == nil {
			return fmt.Errorf("no statistics returned")
		}
		effective := period
		if effective == "" {
			effective = dateutils.PeriodMonth
		}

		r := c.GetRenderer()
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, r.Styles.Title.Render(dateutils.PeriodLabel(effective, time.Now())))
		fmt.Fprintln(out, r.Summary(*vm.Statistics))
		fmt.Fprintln(out, r.CategoryBreakdown(render.CategoryDataset(*vm.Statistics)))
		if showTrend {
			fmt.Fprintln(out, r.MonthlyTrend(vm.Statistics.MonthlyTrend))
		}
		return nil
	},
}

func init() {
	Cmd.Flags().StringVarP(&period, "period", "p", "", "Aggregation period (default: current month)")
	Cmd.Flags().StringVarP(&year, "year", "y", "", "Year for year-based periods")
	Cmd.Flags().BoolVar(&showTrend, "trend", false, "Also print the monthly trend")
}
