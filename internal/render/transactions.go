package render

import (
	"fmt"
	"strings"

	"expense-view/internal/models"
	"expense-view/internal/view"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/shopspring/decimal"
)

// TableOptions carries the per-frame state the transaction tables depend on.
type TableOptions struct {
	Sorts    view.SortState
	Selected map[int]bool
	// CursorID highlights one row; zero highlights none.
	CursorID int
	// ShowSelection adds the checkbox column.
	ShowSelection bool
}

var columnTitles = map[view.Column]string{
	view.ColumnDate:        "Date",
	view.ColumnDescription: "Description",
	view.ColumnAccount:     "Account",
	view.ColumnCategory:    "Category",
	view.ColumnType:        "Type",
	view.ColumnAmount:      "Amount",
}

// SortIndicator returns the arrow shown next to a column heading.
func SortIndicator(key view.SortKey, active bool, col view.Column) string {
	if !active || key.Column != col {
		return ""
	}
	if key.Direction == view.Descending {
		return " ▼"
	}
	return " ▲"
}

// TransactionTables renders one table per month group, most recent first.
func (r *Renderer) TransactionTables(groups []view.Group, opts TableOptions) string {
	if len(groups) == 0 {
		return r.Styles.Subtle.Render("No transactions match the current filter.")
	}
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		parts = append(parts, r.TransactionTable(g, opts))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// TransactionTable renders a single month group with its heading and totals.
func (r *Renderer) TransactionTable(g view.Group, opts TableOptions) string {
	key, active := opts.Sorts.Get(g.Key)

	headers := make([]string, 0, len(columnTitles)+1)
	if opts.ShowSelection {
		headers = append(headers, " ")
	}
	for i, col := range view.Columns() {
		headers = append(headers, fmt.Sprintf("%d %s%s", i+1, columnTitles[col], SortIndicator(key, active, col)))
	}

	rows := make([][]string, 0, len(g.Transactions))
	for _, tx := range g.Transactions {
		row := make([]string, 0, len(headers))
		if opts.ShowSelection {
			mark := "[ ]"
			if opts.Selected[tx.ID] {
				mark = "[x]"
			}
			row = append(row, mark)
		}
		row = append(row,
			tx.Date,
			truncate(tx.Description, 40),
			tx.AccountName(),
			tx.CategoryName(),
			Label(tx.TypeLabel()),
			r.txAmount(tx),
		)
		rows = append(rows, row)
	}

	amountCol := len(headers) - 1
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.Styles.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.Styles.Header
			}
			style := r.Styles.Cell
			if row >= 0 && row < len(g.Transactions) {
				tx := g.Transactions[row]
				switch {
				case tx.ID == opts.CursorID && opts.CursorID != 0:
					style = r.Styles.Cursor
				case opts.Selected[tx.ID]:
					style = r.Styles.Selected
				}
			}
			if col == amountCol {
				style = style.Align(lipgloss.Right)
			}
			return style
		})

	return lipgloss.JoinVertical(lipgloss.Left, r.groupHeading(g), t.String())
}

func (r *Renderer) groupHeading(g view.Group) string {
	totals := view.GroupTotals(g)
	parts := []string{
		r.Styles.Title.Render(g.Label()),
		r.Styles.Subtle.Render(fmt.Sprintf("%d transaction(s)", totals.Count)),
		"spent " + r.Styles.Expense.Render(r.money(totals.Expenses)),
	}
	if !totals.Income.IsZero() {
		parts = append(parts, "earned "+r.Styles.Income.Render(r.money(totals.Income)))
	}
	return strings.Join(parts, "  ")
}

func (r *Renderer) txAmount(tx models.Transaction) string {
	if tx.IsIncome() {
		return "+" + r.money(tx.Amount)
	}
	return r.money(tx.Amount)
}

// SelectionBar summarizes the bulk selection, or returns "" when nothing is selected.
func (r *Renderer) SelectionBar(count int, total decimal.Decimal) string {
	if count == 0 {
		return ""
	}
	return r.Styles.Selected.Render(fmt.Sprintf("%d selected · %s", count, r.money(total)))
}

// StatusLine shows the last error, or the last status message when there is no error.
func (r *Renderer) StatusLine(lastError, status string, busy bool) string {
	var parts []string
	if busy {
		parts = append(parts, r.Styles.Subtle.Render("working…"))
	}
	switch {
	case lastError != "":
		parts = append(parts, r.Styles.Error.Render("✗ "+lastError))
	case status != "":
		parts = append(parts, r.Styles.Status.Render(status))
	}
	return strings.Join(parts, " ")
}

// truncate cuts s to max terminal cells, wide runes counted as two.
func truncate(s string, max int) string {
	return ansi.Truncate(s, max, "…")
}
