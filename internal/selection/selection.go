// Package selection tracks the transactions marked for a bulk action.
package selection

import (
	"sort"

	"expense-view/internal/models"

	"github.com/shopspring/decimal"
)

// Source resolves transaction ids against the current store snapshot.
type Source interface {
	Get(id int) (models.Transaction, bool)
}

// Tracker is the set of selected transaction ids. The zero value is empty and ready to use.
type Tracker struct {
	ids map[int]struct{}
}

// New returns an empty tracker.
func New() *Tracker {
	return &Tracker{ids: make(map[int]struct{})}
}

// Toggle adds id when included is true and removes it otherwise.
func (t *Tracker) Toggle(id int, included bool) {
	if included {
		if t.ids == nil {
			t.ids = make(map[int]struct{})
		}
		t.ids[id] = struct{}{}
		return
	}
	delete(t.ids, id)
}

// Flip inverts the selection state of id and returns the new state.
func (t *Tracker) Flip(id int) bool {
	on := !t.Contains(id)
	t.Toggle(id, on)
	return on
}

// Set selects every id in ids.
func (t *Tracker) Set(ids []int) {
	for _, id := range ids {
		t.Toggle(id, true)
	}
}

// Clear empties the selection.
func (t *Tracker) Clear() {
	t.ids = make(map[int]struct{})
}

func (t *Tracker) Contains(id int) bool {
	_, ok := t.ids[id]
	return ok
}

func (t *Tracker) Len() int {
	return len(t.ids)
}

// IDs returns the selected ids in ascending order.
func (t *Tracker) IDs() []int {
	out := make([]int, 0, len(t.ids))
	for id := range t.ids {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Total sums the amounts of selected transactions present in src.
// Ids that src no longer knows contribute nothing.
func (t *Tracker) Total(src Source) decimal.Decimal {
	total := decimal.Zero
	for id := range t.ids {
		if tx, ok := src.Get(id); ok {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// Reconcile drops ids that src no longer holds and returns how many were removed.
func (t *Tracker) Reconcile(src Source) int {
	pruned := 0
	for id := range t.ids {
		if _, ok := src.Get(id); !ok {
			delete(t.ids, id)
			pruned++
		}
	}
	return pruned
}
