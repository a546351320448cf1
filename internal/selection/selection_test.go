package selection

import (
	"testing"

	"expense-view/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type mapSource map[int]models.Transaction

func (m mapSource) Get(id int) (models.Transaction, bool) {
	tx, ok := m[id]
	return tx, ok
}

func source(amounts map[int]int64) mapSource {
	src := make(mapSource, len(amounts))
	for id, amount := range amounts {
		src[id] = models.Transaction{ID: id, Amount: decimal.NewFromInt(amount)}
	}
	return src
}

func TestTracker_ScenarioC(t *testing.T) {
	src := source(map[int]int64{1: 40, 2: 10})
	tr := New()

	tr.Toggle(1, true)
	tr.Toggle(2, true)
	assert.True(t, decimal.NewFromInt(50).Equal(tr.Total(src)))

	delete(src, 2)
	pruned := tr.Reconcile(src)

	assert.Equal(t, 1, pruned)
	assert.Equal(t, []int{1}, tr.IDs())
	assert.True(t, decimal.NewFromInt(40).Equal(tr.Total(src)))
}

func TestTracker_TotalIgnoresMissingIDs(t *testing.T) {
	src := source(map[int]int64{1: 40})
	tr := New()
	tr.Set([]int{1, 99})

	assert.True(t, decimal.NewFromInt(40).Equal(tr.Total(src)))
	assert.Equal(t, 2, tr.Len(), "total does not prune")
}

func TestTracker_Toggle(t *testing.T) {
	tr := New()
	tr.Toggle(3, true)
	tr.Toggle(3, true)
	assert.Equal(t, 1, tr.Len())
	assert.True(t, tr.Contains(3))

	tr.Toggle(3, false)
	tr.Toggle(4, false)
	assert.Equal(t, 0, tr.Len())
	assert.False(t, tr.Contains(3))
}

func TestTracker_Flip(t *testing.T) {
	tr := New()
	assert.True(t, tr.Flip(7))
	assert.False(t, tr.Flip(7))
	assert.False(t, tr.Contains(7))
}

func TestTracker_ZeroValue(t *testing.T) {
	var tr Tracker
	assert.False(t, tr.Contains(1))
	assert.Empty(t, tr.IDs())
	tr.Toggle(1, true)
	assert.Equal(t, []int{1}, tr.IDs())
	assert.True(t, decimal.Zero.Equal(tr.Total(mapSource{})))
}

func TestTracker_ClearAndIDs(t *testing.T) {
	tr := New()
	tr.Set([]int{5, 1, 3})
	assert.Equal(t, []int{1, 3, 5}, tr.IDs())

	tr.Clear()
	assert.Equal(t, 0, tr.Len())
	assert.Empty(t, tr.IDs())
}

func TestTracker_ReconcileKeepsSubsetOfStore(t *testing.T) {
	src := source(map[int]int64{1: 1, 2: 2, 3: 3})
	tr := New()
	tr.Set([]int{1, 2, 3, 4, 5})

	assert.Equal(t, 2, tr.Reconcile(src))
	for _, id := range tr.IDs() {
		_, ok := src.Get(id)
		assert.True(t, ok)
	}
	assert.True(t, decimal.NewFromInt(6).Equal(tr.Total(src)))
	assert.Equal(t, 0, tr.Reconcile(src))
}
