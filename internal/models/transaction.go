// Package models provides the data structures exchanged with the expense backend.
package models

import (
	"strings"

	"expense-view/internal/dateutils"

	"github.com/shopspring/decimal"
)

// Transaction types as stored by the backend.
const (
	TypeExpense = "expense"
	TypeIncome  = "income"
)

// Labels used for the essential/optional classification.
const (
	LabelEssential = "essential"
	LabelOptional  = "optional"
)

// Uncategorized is the display name of a transaction without a category.
const Uncategorized = "Uncategorized"

// Transaction is a single income or expense record as returned by GET /api/expenses.
type Transaction struct {
	ID                 int             `json:"id"`
	Date               string          `json:"date"`
	Description        string          `json:"description"`
	Amount             decimal.Decimal `json:"amount"`
	TransactionType    string          `json:"transaction_type"`
	Category           string          `json:"category"`
	CategoryID         *int            `json:"category_id"`
	IsEssential        bool            `json:"is_essential"`
	IsRecurring        bool            `json:"is_recurring"`
	RecurringFrequency string          `json:"recurring_frequency,omitempty"`
	SourceAccount      string          `json:"source_account,omitempty"`
	BPAYBillerCode     string          `json:"bpay_biller_code,omitempty"`
	Notes              string          `json:"notes,omitempty"`
	Tags               []string        `json:"tags,omitempty"`
}

// CategoryName returns the display name of the category, falling back to Uncategorized.
func (t Transaction) CategoryName() string {
	if t.Category == "" {
		return Uncategorized
	}
	return t.Category
}

// AccountName returns the source account, or "" when the backend sent none.
func (t Transaction) AccountName() string {
	return t.SourceAccount
}

// MonthKey returns the YYYY-MM grouping key of the transaction date.
func (t Transaction) MonthKey() string {
	return dateutils.MonthKey(t.Date)
}

// HasCategory reports whether the transaction references a category.
func (t Transaction) HasCategory() bool {
	return t.CategoryID != nil || (t.Category != "" && t.Category != Uncategorized)
}

// TypeLabel returns "essential" or "optional".
func (t Transaction) TypeLabel() string {
	if t.IsEssential {
		return LabelEssential
	}
	return LabelOptional
}

// Kind returns the transaction type, defaulting to expense like the backend does.
func (t Transaction) Kind() string {
	if t.TransactionType == "" {
		return TypeExpense
	}
	return strings.ToLower(t.TransactionType)
}

// IsIncome reports whether the transaction is an income record.
func (t Transaction) IsIncome() bool {
	return t.Kind() == TypeIncome
}

// Year returns the 4-character year prefix of the date, or "" when the date is too short.
func (t Transaction) Year() string {
	if len(t.Date) < 4 {
		return ""
	}
	return t.Date[:4]
}

// SignedAmount returns the amount as a positive value for income and negative for expenses.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.IsIncome() {
		return t.Amount
	}
	return t.Amount.Neg()
}
