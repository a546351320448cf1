package store

import (
	"testing"

	"expense-view/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txs(ids ...int) []models.Transaction {
	out := make([]models.Transaction, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Transaction{ID: id, Amount: decimal.NewFromInt(int64(id * 10))})
	}
	return out
}

func TestStore_ReplaceAndLookup(t *testing.T) {
	s := New()
	seq := s.NextSeq()

	require.True(t, s.Replace(seq, txs(3, 1, 2), []models.Category{{ID: 1, Name: "Food", Color: "#ff0000"}}))

	assert.Equal(t, seq, s.Seq())
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []int{1, 2, 3}, s.IDs())
	assert.True(t, s.Has(2))
	assert.False(t, s.Has(9))

	tx, ok := s.Get(1)
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(10).Equal(tx.Amount))

	all := s.All()
	assert.Equal(t, 3, all[0].ID, "backend order is kept")
	all[0].Description = "changed"
	got, _ := s.Get(3)
	assert.Empty(t, got.Description, "All returns a copy")
}

func TestStore_ReplaceIsWholesale(t *testing.T) {
	s := New()
	s.Replace(s.NextSeq(), txs(1, 2), nil)
	s.Replace(s.NextSeq(), txs(2, 3), nil)

	assert.Equal(t, []int{2, 3}, s.IDs())
	assert.False(t, s.Has(1))
}

func TestStore_RejectsStaleSnapshot(t *testing.T) {
	s := New()
	first := s.NextSeq()
	second := s.NextSeq()

	require.True(t, s.Replace(second, txs(1), nil))
	assert.False(t, s.Replace(first, txs(1, 2, 3), nil), "older fetch completing late is discarded")
	assert.False(t, s.Replace(second, txs(7), nil), "same fetch applied twice is discarded")

	assert.Equal(t, []int{1}, s.IDs())
	assert.Equal(t, second, s.Seq())
}

func TestStore_ReplaceWithExternalSeqAdvancesIssuer(t *testing.T) {
	s := New()
	require.True(t, s.Replace(5, txs(1), nil))
	assert.Equal(t, uint64(6), s.NextSeq())
}

func TestStore_Empty(t *testing.T) {
	s := New()
	assert.Empty(t, s.All())
	assert.Empty(t, s.IDs())
	assert.Empty(t, s.Categories())
	_, ok := s.Get(1)
	assert.False(t, ok)
}

func TestStore_Categories(t *testing.T) {
	s := New()
	cats := []models.Category{
		{ID: 1, Name: "Food & Dining", Color: "#e74c3c"},
		{ID: 2, Name: "Transportation", Color: ""},
	}
	s.Replace(s.NextSeq(), nil, cats)

	c, ok := s.CategoryByName("Food & Dining")
	require.True(t, ok)
	assert.Equal(t, 1, c.ID)
	_, ok = s.CategoryByName("food & dining")
	assert.False(t, ok)

	c, ok = s.CategoryByID(2)
	require.True(t, ok)
	assert.Equal(t, "Transportation", c.Name)

	assert.Equal(t, "#e74c3c", s.CategoryColor("Food & Dining"))
	assert.Equal(t, models.DefaultCategoryColor, s.CategoryColor("Transportation"))
	assert.Equal(t, models.DefaultCategoryColor, s.CategoryColor("Nope"))
	assert.Equal(t, models.UncategorizedColor, s.CategoryColor(models.Uncategorized))
}
