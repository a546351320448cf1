// Package view groups filtered transactions into month tables and orders their rows.
package view

import (
	"sort"

	"expense-view/internal/dateutils"
	"expense-view/internal/models"

	"github.com/shopspring/decimal"
)

// Group is the month table for one YYYY-MM key.
type Group struct {
	Key          string
	Transactions []models.Transaction
}

// Label returns the display heading, e.g. "Jan 2025".
func (g Group) Label() string {
	return dateutils.MonthLabel(g.Key)
}

// Totals aggregates the amounts of a group.
type Totals struct {
	Count    int
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Net      decimal.Decimal
}

// GroupByMonth partitions txs by month key. Groups are ordered most recent first
// with the unknown-date group last; rows keep their input order.
func GroupByMonth(txs []models.Transaction) []Group {
	index := make(map[string]int)
	groups := make([]Group, 0)
	for i := range txs {
		key := dateutils.MonthKey(txs[i].Date)
		pos, ok := index[key]
		if !ok {
			pos = len(groups)
			index[key] = pos
			groups = append(groups, Group{Key: key})
		}
		groups[pos].Transactions = append(groups[pos].Transactions, txs[i])
	}

	sort.Slice(groups, func(i, j int) bool {
		return keyLess(groups[j].Key, groups[i].Key)
	})
	return groups
}

// keyLess orders month keys ascending with the unknown key before every month,
// so a descending walk puts it last.
func keyLess(a, b string) bool {
	if a == dateutils.UnknownMonthKey {
		return b != dateutils.UnknownMonthKey
	}
	if b == dateutils.UnknownMonthKey {
		return false
	}
	return a < b
}

// Arrange groups txs by month and applies each group's sort key, if any.
func Arrange(txs []models.Transaction, states SortState) []Group {
	groups := GroupByMonth(txs)
	for i := range groups {
		if key, ok := states.Get(groups[i].Key); ok {
			groups[i].Transactions = Sort(groups[i].Transactions, key.Column, key.Direction)
		}
	}
	return groups
}

// GroupTotals sums income and expenses of a group. Net is income minus expenses.
func GroupTotals(g Group) Totals {
	t := Totals{Income: decimal.Zero, Expenses: decimal.Zero}
	for _, tx := range g.Transactions {
		if tx.IsIncome() {
			t.Income = t.Income.Add(tx.Amount)
		} else {
			t.Expenses = t.Expenses.Add(tx.Amount)
		}
		t.Count++
	}
	t.Net = t.Income.Sub(t.Expenses)
	return t
}
