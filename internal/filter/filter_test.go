package filter

import (
	"testing"

	"expense-view/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catID(id int) *int { return &id }

func fixture() []models.Transaction {
	return []models.Transaction{
		{ID: 1, Date: "2025-01-05", Description: "COLES SUPERMARKET", Amount: decimal.NewFromInt(40), TransactionType: "expense", Category: "Food & Dining", CategoryID: catID(1), IsEssential: true, SourceAccount: "amex"},
		{ID: 2, Date: "2025-01-20", Description: "Netflix.com", Amount: decimal.NewFromInt(10), TransactionType: "expense", Category: "Subscriptions", CategoryID: catID(13), SourceAccount: "everyday"},
		{ID: 3, Date: "2024-12-24", Description: "Salary ACME", Amount: decimal.NewFromInt(3200), TransactionType: "income", Category: "Uncategorized"},
		{ID: 4, Date: "2024-11-02", Description: "Shell Coles Express", Amount: decimal.RequireFromString("65.20"), TransactionType: "expense", Category: "Transportation", CategoryID: catID(2), IsEssential: true},
		{ID: 5, Date: "bad-date", Description: "mystery", Amount: decimal.RequireFromString("0.99"), TransactionType: "expense"},
	}
}

func ids(txs []models.Transaction) []int {
	out := make([]int, 0, len(txs))
	for _, tx := range txs {
		out = append(out, tx.ID)
	}
	return out
}

func TestApply_SingleDimensions(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		expected []int
	}{
		{"search is case-insensitive substring", Criteria{Search: "coles"}, []int{1, 4}},
		{"search ignores surrounding whitespace", Criteria{Search: "  NETFLIX "}, []int{2}},
		{"blank search passes everything", Criteria{Search: "   "}, []int{1, 2, 3, 4, 5}},
		{"year matches date prefix", Criteria{Year: "2024"}, []int{3, 4}},
		{"year with no match", Criteria{Year: "2019"}, []int{}},
		{"category exact", Criteria{Category: "Subscriptions"}, []int{2}},
		{"category is case-sensitive", Criteria{Category: "subscriptions"}, []int{}},
		{"uncategorized matches missing and explicit", Criteria{Category: "Uncategorized"}, []int{3, 5}},
		{"essential only", Criteria{Essential: "essential"}, []int{1, 4}},
		{"optional only", Criteria{Essential: "optional"}, []int{2, 3, 5}},
		{"unknown essential flag is unconstrained", Criteria{Essential: "sometimes"}, []int{1, 2, 3, 4, 5}},
		{"type income", Criteria{Type: "income"}, []int{3}},
		{"type expense", Criteria{Type: "expense"}, []int{1, 2, 4, 5}},
		{"min amount inclusive", Criteria{MinAmount: "40"}, []int{1, 3, 4}},
		{"max amount inclusive", Criteria{MaxAmount: "10"}, []int{2, 5}},
		{"amount range", Criteria{MinAmount: "10", MaxAmount: "65.20"}, []int{1, 2, 4}},
		{"amount bound with currency symbol", Criteria{MinAmount: "$1,000"}, []int{3}},
		{"non-numeric bounds are unset", Criteria{MinAmount: "lots", MaxAmount: "abc"}, []int{1, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(Apply(fixture(), tt.criteria)))
		})
	}
}

func TestApply_Conjunction(t *testing.T) {
	got := Apply(fixture(), Criteria{Search: "coles", Year: "2025", Essential: "essential"})
	assert.Equal(t, []int{1}, ids(got))
}

func TestApply_EmptyCriteriaIsNoOp(t *testing.T) {
	txs := fixture()
	assert.Equal(t, txs, Apply(txs, Criteria{}))
	assert.True(t, Criteria{}.IsEmpty())
	assert.True(t, Criteria{MinAmount: "x"}.IsEmpty())
	assert.False(t, Criteria{Year: "2025"}.IsEmpty())
}

func TestApply_Idempotent(t *testing.T) {
	criteria := []Criteria{
		{},
		{Search: "e"},
		{Year: "2025", Type: "expense"},
		{Essential: "optional", MaxAmount: "100"},
		{Category: "Transportation", MinAmount: "1"},
	}
	for _, c := range criteria {
		once := Apply(fixture(), c)
		twice := Apply(once, c)
		assert.Equal(t, once, twice, c.Describe())
	}
}

func TestApply_OrderIndependentAcrossDimensions(t *testing.T) {
	all := Criteria{Search: "s", Year: "2024", Type: "expense"}
	stepwise := Apply(Apply(Apply(fixture(), Criteria{Type: "expense"}), Criteria{Year: "2024"}), Criteria{Search: "s"})
	assert.Equal(t, Apply(fixture(), all), stepwise)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	txs := fixture()
	before := fixture()
	_ = Apply(txs, Criteria{Search: "coles", MinAmount: "1"})
	assert.Equal(t, before, txs)
}

func TestApply_NilInput(t *testing.T) {
	got := Apply(nil, Criteria{Search: "x"})
	require.NotNil(t, got)
	assert.Empty(t, got)
}

// Store holds an essential 40 and an optional 10 in January; only the first survives.
func TestApply_ScenarioA(t *testing.T) {
	store := []models.Transaction{
		{ID: 1, Date: "2025-01-05", Amount: decimal.NewFromInt(40), TransactionType: "expense", IsEssential: true},
		{ID: 2, Date: "2025-01-20", Amount: decimal.NewFromInt(10), TransactionType: "expense", IsEssential: false},
	}
	assert.Equal(t, []int{1}, ids(Apply(store, Criteria{Essential: "essential"})))
}

func TestCriteria_Matches(t *testing.T) {
	tx := fixture()[0]
	assert.True(t, Criteria{Search: "super"}.Matches(tx))
	assert.False(t, Criteria{Type: "income"}.Matches(tx))
}

func TestCriteria_Describe(t *testing.T) {
	assert.Equal(t, "all transactions", Criteria{}.Describe())
	assert.Equal(t,
		`search "coles", year 2025, category Food & Dining, essential only, expenses, amount ≥ 10, amount ≤ 50.5`,
		Criteria{Search: "coles", Year: "2025", Category: "Food & Dining", Essential: "Essential", Type: "expense", MinAmount: "10", MaxAmount: "50.50"}.Describe())
}

func TestAvailableYears(t *testing.T) {
	assert.Equal(t, []string{"2025", "2024"}, AvailableYears(fixture()))
	assert.Empty(t, AvailableYears(nil))
}
