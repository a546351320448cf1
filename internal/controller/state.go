// Package controller owns the application state and orchestrates backend calls.
package controller

import (
	"expense-view/internal/api"
	"expense-view/internal/filter"
	"expense-view/internal/models"
	"expense-view/internal/selection"
	"expense-view/internal/store"
	"expense-view/internal/view"
)

// Tab is a top-level screen of the interactive view.
type Tab string

const (
	TabTransactions Tab = "transactions"
	TabStatistics   Tab = "statistics"
	TabDuplicates   Tab = "duplicates"
	TabCategories   Tab = "categories"
)

// Tabs lists the screens in display order.
func Tabs() []Tab {
	return []Tab{TabTransactions, TabStatistics, TabDuplicates, TabCategories}
}

// State is everything the views render from. It is only touched by the
// Controller on its owning goroutine.
type State struct {
	Store      *store.Store
	Criteria   filter.Criteria
	Sorts      view.SortState
	Selection  *selection.Tracker
	ActiveTab  Tab
	LastError  string
	Status     string
	Pending    int
	StatsQuery api.StatisticsQuery
	Statistics *models.Statistics
	Duplicates *models.DuplicateReport
}

func newState() *State {
	return &State{
		Store:     store.New(),
		Sorts:     view.SortState{},
		Selection: selection.New(),
		ActiveTab: TabTransactions,
	}
}
