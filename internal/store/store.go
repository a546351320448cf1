// Package store holds the client-side snapshot of backend data and the saved filter presets.
package store

import (
	"sort"

	"expense-view/internal/models"
)

// Store is the latest fetched snapshot of transactions and categories.
// Snapshots are replaced wholesale and tagged with the fetch sequence that
// produced them, so a slow fetch cannot overwrite a newer one. A Store is owned
// by a single goroutine and is not safe for concurrent use.
type Store struct {
	issued     uint64
	seq        uint64
	txs        []models.Transaction
	index      map[int]int
	categories []models.Category
}

// New returns an empty store.
func New() *Store {
	return &Store{index: make(map[int]int)}
}

// NextSeq issues the sequence number for a fetch that is about to start.
func (s *Store) NextSeq() uint64 {
	s.issued++
	return s.issued
}

// Seq returns the sequence number of the snapshot currently held.
func (s *Store) Seq() uint64 {
	return s.seq
}

// Replace installs a fetched snapshot. It returns false, leaving the store
// untouched, when seq is not newer than the snapshot already held.
func (s *Store) Replace(seq uint64, txs []models.Transaction, categories []models.Category) bool {
	if seq <= s.seq {
		return false
	}
	s.seq = seq
	if seq > s.issued {
		s.issued = seq
	}

	s.txs = make([]models.Transaction, len(txs))
	copy(s.txs, txs)
	s.index = make(map[int]int, len(txs))
	for i := range s.txs {
		s.index[s.txs[i].ID] = i
	}

	s.categories = make([]models.Category, len(categories))
	copy(s.categories, categories)
	return true
}

// Get returns the transaction with the given id.
func (s *Store) Get(id int) (models.Transaction, bool) {
	i, ok := s.index[id]
	if !ok {
		return models.Transaction{}, false
	}
	return s.txs[i], true
}

// Has reports whether id is in the snapshot.
func (s *Store) Has(id int) bool {
	_, ok := s.index[id]
	return ok
}

// All returns a copy of the transactions in backend order.
func (s *Store) All() []models.Transaction {
	out := make([]models.Transaction, len(s.txs))
	copy(out, s.txs)
	return out
}

// IDs returns the transaction ids in ascending order.
func (s *Store) IDs() []int {
	ids := make([]int, 0, len(s.txs))
	for i := range s.txs {
		ids = append(ids, s.txs[i].ID)
	}
	sort.Ints(ids)
	return ids
}

func (s *Store) Len() int {
	return len(s.txs)
}

// Categories returns a copy of the categories in backend order.
func (s *Store) Categories() []models.Category {
	out := make([]models.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// CategoryByName looks a category up by its exact name.
func (s *Store) CategoryByName(name string) (models.Category, bool) {
	for _, c := range s.categories {
		if c.Name == name {
			return c, true
		}
	}
	return models.Category{}, false
}

// CategoryByID looks a category up by id.
func (s *Store) CategoryByID(id int) (models.Category, bool) {
	for _, c := range s.categories {
		if c.ID == id {
			return c, true
		}
	}
	return models.Category{}, false
}

// CategoryColor returns the color of a category name, with the backend's
// fallbacks for uncategorized and unknown names.
func (s *Store) CategoryColor(name string) string {
	if name == "" || name == models.Uncategorized {
		return models.UncategorizedColor
	}
	if c, ok := s.CategoryByName(name); ok && c.Color != "" {
		return c.Color
	}
	return models.DefaultCategoryColor
}
