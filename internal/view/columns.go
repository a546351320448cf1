package view

import (
	"fmt"
	"strings"

	"expense-view/internal/models"
)

// Column identifies a sortable column of a transaction table.
type Column string

// Sortable columns.
const (
	ColumnDate        Column = "date"
	ColumnDescription Column = "description"
	ColumnAccount     Column = "account"
	ColumnCategory    Column = "category"
	ColumnType        Column = "type"
	ColumnAmount      Column = "amount"
)

// comparator returns <0, 0 or >0 like strings.Compare.
type comparator func(a, b *models.Transaction) int

var comparators = map[Column]comparator{
	ColumnDate: func(a, b *models.Transaction) int {
		return strings.Compare(a.Date, b.Date)
	},
	ColumnDescription: func(a, b *models.Transaction) int {
		return strings.Compare(a.Description, b.Description)
	},
	ColumnAccount: func(a, b *models.Transaction) int {
		return strings.Compare(a.AccountName(), b.AccountName())
	},
	ColumnCategory: func(a, b *models.Transaction) int {
		return strings.Compare(a.CategoryName(), b.CategoryName())
	},
	ColumnType: func(a, b *models.Transaction) int {
		return strings.Compare(a.TypeLabel(), b.TypeLabel())
	},
	ColumnAmount: func(a, b *models.Transaction) int {
		return a.Amount.Cmp(b.Amount)
	},
}

// Columns returns the sortable columns in display order.
func Columns() []Column {
	return []Column{ColumnDate, ColumnDescription, ColumnAccount, ColumnCategory, ColumnType, ColumnAmount}
}

// ParseColumn resolves a column name, case-insensitively.
func ParseColumn(name string) (Column, error) {
	col := Column(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := comparators[col]; !ok {
		return "", fmt.Errorf("unknown sort column %q (valid: %s)", name, joinColumns())
	}
	return col, nil
}

// Compare orders two transactions by the given column in ascending direction.
func Compare(col Column, a, b models.Transaction) int {
	cmp, ok := comparators[col]
	if !ok {
		return 0
	}
	return cmp(&a, &b)
}

func joinColumns() string {
	cols := Columns()
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
