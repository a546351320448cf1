package render

import (
	"fmt"
	"sort"
	"strings"

	"expense-view/internal/currencyutils"
	"expense-view/internal/models"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
)

const barWidth = 30

// ChartDataset is the category breakdown in chart form, largest first.
type ChartDataset struct {
	Labels []string
	Values []decimal.Decimal
	Colors []string
}

// Total sums the dataset values.
func (d ChartDataset) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range d.Values {
		total = total.Add(v)
	}
	return total
}

// CategoryDataset builds the breakdown of expense categories from statistics.
// Ties are broken by name so the order is stable.
func CategoryDataset(stats models.Statistics) ChartDataset {
	type entry struct {
		name string
		stat models.CategoryStat
	}
	entries := make([]entry, 0, len(stats.ByCategory))
	for name, stat := range stats.ByCategory {
		if stat.Type == models.TypeIncome {
			continue
		}
		entries = append(entries, entry{name, stat})
	}
	sort.Slice(entries, func(i, j int) bool {
		if c := entries[i].stat.Amount.Cmp(entries[j].stat.Amount); c != 0 {
			return c > 0
		}
		return entries[i].name < entries[j].name
	})

	ds := ChartDataset{
		Labels: make([]string, 0, len(entries)),
		Values: make([]decimal.Decimal, 0, len(entries)),
		Colors: make([]string, 0, len(entries)),
	}
	for _, e := range entries {
		color := e.stat.Color
		if color == "" {
			color = models.DefaultCategoryColor
		}
		ds.Labels = append(ds.Labels, e.name)
		ds.Values = append(ds.Values, e.stat.Amount)
		ds.Colors = append(ds.Colors, color)
	}
	return ds
}

// Summary renders the headline numbers of a statistics response.
func (r *Renderer) Summary(stats models.Statistics) string {
	line := func(label string, value string) string {
		return fmt.Sprintf("%-18s %s", label, value)
	}
	lines := []string{
		r.Styles.Title.Render("Summary"),
		line("Income", r.Styles.Income.Render(r.money(stats.YearIncome))),
		line("Expenses", r.Styles.Expense.Render(r.money(stats.YearExpenses))),
		line("Net", r.signed(stats.YearNet)),
		line("This month net", r.signed(stats.MonthNet)),
		line("Essential", r.money(stats.EssentialTotal)),
		line("Optional", r.money(stats.OptionalTotal)),
		line("Month over month", currencyutils.FormatPercent(stats.MoMChange)),
	}
	return r.Styles.Box.Render(strings.Join(lines, "\n"))
}

// CategoryBreakdown renders the dataset as horizontal bars in each category's color.
func (r *Renderer) CategoryBreakdown(ds ChartDataset) string {
	if len(ds.Labels) == 0 {
		return r.Styles.Subtle.Render("No spending in this period.")
	}

	maxValue := decimal.Zero
	labelWidth := 0
	for i, v := range ds.Values {
		if v.GreaterThan(maxValue) {
			maxValue = v
		}
		if w := lipgloss.Width(ds.Labels[i]); w > labelWidth {
			labelWidth = w
		}
	}
	total := ds.Total()

	lines := []string{r.Styles.Title.Render("Spending by category")}
	for i, label := range ds.Labels {
		width := 0
		if maxValue.IsPositive() {
			width = int(ds.Values[i].Mul(decimal.NewFromInt(barWidth)).Div(maxValue).Round(0).IntPart())
		}
		if width == 0 && ds.Values[i].IsPositive() {
			width = 1
		}
		bar := lipgloss.NewStyle().Foreground(lipgloss.Color(ds.Colors[i])).Render(strings.Repeat("█", width))
		share := decimal.Zero
		if total.IsPositive() {
			share = ds.Values[i].Mul(decimal.NewFromInt(100)).Div(total)
		}
		lines = append(lines, fmt.Sprintf("%-*s %s%s %s (%s)",
			labelWidth, label, bar, strings.Repeat(" ", barWidth-width),
			r.money(ds.Values[i]), currencyutils.FormatPercent(share)))
	}
	return strings.Join(lines, "\n")
}

// MonthlyTrend renders the per-month trend as a table.
func (r *Renderer) MonthlyTrend(trend []models.MonthlyTrend) string {
	rows := make([][]string, 0, len(trend))
	for _, m := range trend {
		rows = append(rows, []string{
			m.Month,
			r.money(m.Income),
			r.money(m.Expenses),
			r.money(m.Net),
			r.money(m.Essential),
			r.money(m.Optional),
		})
	}
	return r.simpleTable("Monthly trend", []string{"Month", "Income", "Expenses", "Net", "Essential", "Optional"}, rows, 1)
}

// Duplicates renders the groups of likely duplicates. The first item of each
// group is the one kept on removal.
func (r *Renderer) Duplicates(report models.DuplicateReport) string {
	if len(report.Duplicates) == 0 {
		return r.Styles.Subtle.Render("No duplicates found.")
	}
	rows := make([][]string, 0)
	for _, g := range report.Duplicates {
		for i, item := range g.Items {
			action := "remove"
			if i == 0 {
				action = "keep"
			}
			rows = append(rows, []string{
				g.Date, g.Amount, fmt.Sprintf("#%d", item.ID), truncate(item.Description, 40),
				item.SourceAccount, item.Category, action,
			})
		}
	}
	title := fmt.Sprintf("Duplicates: %d group(s), %d removable", report.TotalGroups, len(report.RedundantIDs()))
	return r.simpleTable(title, []string{"Date", "Amount", "ID", "Description", "Account", "Category", "Action"}, rows, -1)
}

// Runway renders the cash runway projection.
func (r *Renderer) Runway(rw models.Runway) string {
	months := "∞ (not burning cash)"
	if rw.RunwayMonths != nil {
		months = rw.RunwayMonths.StringFixed(1) + " months"
	}
	until := "-"
	if rw.RunwayDate != nil {
		until = *rw.RunwayDate
	}
	lines := []string{
		r.Styles.Title.Render("Cash runway"),
		fmt.Sprintf("%-14s %s", "Cash", r.money(rw.CurrentCash)),
		fmt.Sprintf("%-14s %s", "As of", orDash(rw.CurrentCashDate)),
		fmt.Sprintf("%-14s %s", "Monthly burn", r.signed(rw.MonthlyBurn.Neg())),
		fmt.Sprintf("%-14s %s", "Runway", months),
		fmt.Sprintf("%-14s %s", "Runs out", until),
	}
	if rw.Message != "" && rw.Message != "success" {
		lines = append(lines, r.Styles.Subtle.Render(rw.Message))
	}
	return r.Styles.Box.Render(strings.Join(lines, "\n"))
}

// Categories renders the category list with a color swatch and optional usage counts.
func (r *Renderer) Categories(cats []models.Category, counts map[string]int) string {
	rows := make([][]string, 0, len(cats))
	for _, c := range cats {
		color := c.Color
		if color == "" {
			color = models.DefaultCategoryColor
		}
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("■■")
		rows = append(rows, []string{fmt.Sprintf("%d", c.ID), swatch, c.Name, color, fmt.Sprintf("%d", counts[c.Name])})
	}
	return r.simpleTable("Categories", []string{"ID", "", "Name", "Color", "Used"}, rows, 4)
}

// CategoryUsage counts transactions per category name.
func CategoryUsage(txs []models.Transaction) map[string]int {
	counts := make(map[string]int)
	for _, tx := range txs {
		counts[tx.CategoryName()]++
	}
	return counts
}

// CashPositions renders recorded balances.
func (r *Renderer) CashPositions(positions []models.CashPosition) string {
	rows := make([][]string, 0, len(positions))
	for _, p := range positions {
		rows = append(rows, []string{fmt.Sprintf("%d", p.ID), p.Date, r.money(p.Amount), p.Notes})
	}
	return r.simpleTable("Cash positions", []string{"ID", "Date", "Amount", "Notes"}, rows, 2)
}

// LearnedRules renders the backend's learned categorization rules.
func (r *Renderer) LearnedRules(rules []models.LearnedRule) string {
	rows := make([][]string, 0, len(rules))
	for _, rule := range rules {
		rows = append(rows, []string{
			fmt.Sprintf("%d", rule.ID), rule.Pattern, orDash(rule.Category),
			Label(typeLabel(rule.IsEssential)), fmt.Sprintf("%d", rule.MatchCount),
		})
	}
	return r.simpleTable("Learned rules", []string{"ID", "Pattern", "Category", "Type", "Matches"}, rows, 4)
}

// Tabs renders the tab bar with the active tab highlighted.
func (r *Renderer) Tabs(names []string, active string) string {
	parts := make([]string, 0, len(names))
	for i, name := range names {
		label := fmt.Sprintf("F%d %s", i+1, Label(name))
		if name == active {
			parts = append(parts, r.Styles.ActiveTab.Render(label))
		} else {
			parts = append(parts, r.Styles.InactiveTab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// simpleTable renders a titled table. rightCol is right-aligned; -1 for none.
func (r *Renderer) simpleTable(title string, headers []string, rows [][]string, rightCol int) string {
	if len(rows) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, r.Styles.Title.Render(title), r.Styles.Subtle.Render("Nothing to show."))
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.Styles.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.Styles.Header
			}
			if col == rightCol {
				return r.Styles.Cell.Align(lipgloss.Right)
			}
			return r.Styles.Cell
		})
	return lipgloss.JoinVertical(lipgloss.Left, r.Styles.Title.Render(title), t.String())
}

func typeLabel(essential bool) string {
	if essential {
		return models.LabelEssential
	}
	return models.LabelOptional
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
