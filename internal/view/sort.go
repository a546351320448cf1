package view

import (
	"fmt"
	"sort"
	"strings"

	"expense-view/internal/models"
)

// Direction of a sort.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// SortKey is the active column and direction of one table.
type SortKey struct {
	Column    Column
	Direction Direction
}

func (k SortKey) String() string {
	return fmt.Sprintf("%s:%s", k.Column, k.Direction)
}

// ParseSortKey parses "column" or "column:asc|desc".
func ParseSortKey(s string) (SortKey, error) {
	name, dir, _ := strings.Cut(s, ":")
	col, err := ParseColumn(name)
	if err != nil {
		return SortKey{}, err
	}
	key := SortKey{Column: col}
	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "", "asc":
	case "desc":
		key.Direction = Descending
	default:
		return SortKey{}, fmt.Errorf("unknown sort direction %q (valid: asc, desc)", dir)
	}
	return key, nil
}

// SortState holds the sort key of each table, keyed by table (month group) key.
// Tables without an entry keep their natural order.
type SortState map[string]SortKey

// Get returns the sort key of a table.
func (s SortState) Get(table string) (SortKey, bool) {
	k, ok := s[table]
	return k, ok
}

// Toggle activates col on a table. Toggling the active column flips its
// direction; any other column starts ascending.
func (s SortState) Toggle(table string, col Column) SortKey {
	current, ok := s[table]
	next := SortKey{Column: col, Direction: Ascending}
	if ok && current.Column == col {
		next.Direction = current.Direction.Flip()
	}
	s[table] = next
	return next
}

// Set stores an explicit sort key for a table.
func (s SortState) Set(table string, key SortKey) {
	s[table] = key
}

// Clear restores natural order for a table.
func (s SortState) Clear(table string) {
	delete(s, table)
}

// Clone returns an independent copy.
func (s SortState) Clone() SortState {
	out := make(SortState, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Sort returns a stably sorted copy of txs. Equal keys keep their input order in
// both directions. An unknown column leaves the order untouched.
func Sort(txs []models.Transaction, col Column, dir Direction) []models.Transaction {
	out := make([]models.Transaction, len(txs))
	copy(out, txs)

	cmp, ok := comparators[col]
	if !ok {
		return out
	}
	sign := 1
	if dir == Descending {
		sign = -1
	}
	sort.SliceStable(out, func(i, j int) bool {
		return sign*cmp(&out[i], &out[j]) < 0
	})
	return out
}
