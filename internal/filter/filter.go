// Package filter reduces a transaction list to the rows matching the user's criteria.
package filter

import (
	"sort"
	"strings"

	"expense-view/internal/currencyutils"
	"expense-view/internal/dateutils"
	"expense-view/internal/models"

	"github.com/shopspring/decimal"
)

// Values accepted by Criteria.Essential.
const (
	EssentialOnly = models.LabelEssential
	OptionalOnly  = models.LabelOptional
)

// Criteria holds the raw filter inputs. Every field is optional and an empty
// value places no constraint on its dimension. Values that cannot be
// interpreted (an amount bound that is not a number, an essential flag other
// than "essential"/"optional") are treated as empty.
type Criteria struct {
	Search    string `yaml:"search,omitempty"`
	Year      string `yaml:"year,omitempty"`
	Category  string `yaml:"category,omitempty"`
	Essential string `yaml:"essential,omitempty"`
	Type      string `yaml:"type,omitempty"`
	MinAmount string `yaml:"min_amount,omitempty"`
	MaxAmount string `yaml:"max_amount,omitempty"`
}

type predicate func(tx *models.Transaction) bool

// Apply returns the transactions that pass every active predicate, in input order.
// The input slice is not modified.
func Apply(txs []models.Transaction, c Criteria) []models.Transaction {
	preds := c.compile()
	out := make([]models.Transaction, 0, len(txs))
	for i := range txs {
		if matchAll(preds, &txs[i]) {
			out = append(out, txs[i])
		}
	}
	return out
}

// Matches reports whether a single transaction passes the criteria.
func (c Criteria) Matches(tx models.Transaction) bool {
	return matchAll(c.compile(), &tx)
}

// IsEmpty reports whether no dimension is constrained.
func (c Criteria) IsEmpty() bool {
	return len(c.compile()) == 0
}

func matchAll(preds []predicate, tx *models.Transaction) bool {
	for _, p := range preds {
		if !p(tx) {
			return false
		}
	}
	return true
}

func (c Criteria) compile() []predicate {
	var preds []predicate

	if term := strings.ToLower(strings.TrimSpace(c.Search)); term != "" {
		preds = append(preds, func(tx *models.Transaction) bool {
			return strings.Contains(strings.ToLower(tx.Description), term)
		})
	}

	if year := strings.TrimSpace(c.Year); year != "" {
		preds = append(preds, func(tx *models.Transaction) bool {
			return dateutils.YearOf(tx.Date) == year
		})
	}

	if c.Category != "" {
		category := c.Category
		preds = append(preds, func(tx *models.Transaction) bool {
			return tx.CategoryName() == category
		})
	}

	switch strings.ToLower(strings.TrimSpace(c.Essential)) {
	case EssentialOnly:
		preds = append(preds, func(tx *models.Transaction) bool { return tx.IsEssential })
	case OptionalOnly:
		preds = append(preds, func(tx *models.Transaction) bool { return !tx.IsEssential })
	}

	if kind := strings.ToLower(strings.TrimSpace(c.Type)); kind != "" {
		preds = append(preds, func(tx *models.Transaction) bool {
			return tx.Kind() == kind
		})
	}

	if minAmount, ok := parseBound(c.MinAmount); ok {
		preds = append(preds, func(tx *models.Transaction) bool {
			return tx.Amount.GreaterThanOrEqual(minAmount)
		})
	}

	if maxAmount, ok := parseBound(c.MaxAmount); ok {
		preds = append(preds, func(tx *models.Transaction) bool {
			return tx.Amount.LessThanOrEqual(maxAmount)
		})
	}

	return preds
}

func parseBound(raw string) (decimal.Decimal, bool) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero, false
	}
	v, err := currencyutils.ParseAmount(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}

// Describe lists the active constraints, e.g. `search "coles", year 2025, amount ≥ 10`.
func (c Criteria) Describe() string {
	var parts []string
	if term := strings.TrimSpace(c.Search); term != "" {
		parts = append(parts, `search "`+term+`"`)
	}
	if year := strings.TrimSpace(c.Year); year != "" {
		parts = append(parts, "year "+year)
	}
	if c.Category != "" {
		parts = append(parts, "category "+c.Category)
	}
	switch strings.ToLower(strings.TrimSpace(c.Essential)) {
	case EssentialOnly, OptionalOnly:
		parts = append(parts, strings.ToLower(strings.TrimSpace(c.Essential))+" only")
	}
	if kind := strings.TrimSpace(c.Type); kind != "" {
		parts = append(parts, kind+"s")
	}
	if v, ok := parseBound(c.MinAmount); ok {
		parts = append(parts, "amount ≥ "+v.String())
	}
	if v, ok := parseBound(c.MaxAmount); ok {
		parts = append(parts, "amount ≤ "+v.String())
	}
	if len(parts) == 0 {
		return "all transactions"
	}
	return strings.Join(parts, ", ")
}

// AvailableYears returns the distinct years present in txs, most recent first.
func AvailableYears(txs []models.Transaction) []string {
	seen := make(map[string]struct{})
	for i := range txs {
		if y := dateutils.YearOf(txs[i].Date); y != "" {
			seen[y] = struct{}{}
		}
	}
	years := make([]string, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(years)))
	return years
}
