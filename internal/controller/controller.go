package controller

import (
	"context"
	"io"

	"expense-view/internal/api"
	"expense-view/internal/apierror"
	"expense-view/internal/filter"
	"expense-view/internal/logging"
	"expense-view/internal/models"
	"expense-view/internal/view"

	"github.com/shopspring/decimal"
)

// Controller owns the State. Every read and write goes through it, and all
// calls must come from the same goroutine. Network work is split out as Tasks
// so an event loop can run it elsewhere and hand the Result back to Apply.
type Controller struct {
	backend Backend
	logger  logging.Logger
	state   *State
}

// New creates a controller with an empty store.
func New(backend Backend, logger logging.Logger) *Controller {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Controller{backend: backend, logger: logger, state: newState()}
}

// Apply folds a finished task into the state. Failed operations leave the
// store, selection and sort state as they were and record a user message.
func (c *Controller) Apply(res Result) {
	if c.state.Pending > 0 {
		c.state.Pending--
	}
	log := c.logger.WithFields(logging.F(logging.FieldOperation, res.Op))

	fresh := true
	if res.Snapshot != nil {
		fresh = c.state.Store.Replace(res.Seq, res.Snapshot.Transactions, res.Snapshot.Categories)
		if fresh {
			pruned := c.state.Selection.Reconcile(c.state.Store)
			log.Debug("Store replaced",
				logging.F(logging.FieldSequence, res.Seq),
				logging.F(logging.FieldCount, c.state.Store.Len()),
				logging.F(logging.FieldPruned, pruned))
		} else {
			log.Debug("Discarded stale snapshot",
				logging.F(logging.FieldSequence, res.Seq),
				logging.F("current_seq", c.state.Store.Seq()))
		}
		if res.Err == nil {
			for _, id := range res.Deselect {
				c.state.Selection.Toggle(id, false)
			}
		}
	}

	// Reports riding on a stale snapshot are older than the ones installed.
	if fresh {
		if res.Mutated {
			c.state.Statistics, c.state.Duplicates = nil, nil
		}
		if res.Statistics != nil {
			c.state.Statistics = res.Statistics
		}
		if res.Duplicates != nil {
			c.state.Duplicates = res.Duplicates
		}
	}

	if res.Err != nil {
		c.state.LastError = apierror.UserMessage(res.Err)
		c.state.Status = res.Status
		log.WithError(res.Err).Warn("Operation failed")
		return
	}
	c.state.LastError = ""
	if res.Status != "" {
		c.state.Status = res.Status
		log.Info(res.Status)
	}
}

// run executes a task on the calling goroutine and applies it.
func (c *Controller) run(task Task) error {
	res := task()
	c.Apply(res)
	return res.Err
}

// Refresh replaces the store with a fresh fetch and reconciles the selection.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.run(c.BeginRefresh(ctx))
}

func (c *Controller) Create(ctx context.Context, in models.TransactionInput) error {
	return c.run(c.BeginCreate(ctx, in))
}

func (c *Controller) Update(ctx context.Context, id int, patch models.TransactionPatch) error {
	return c.run(c.BeginUpdate(ctx, id, patch))
}

func (c *Controller) Delete(ctx context.Context, id int) error {
	return c.run(c.BeginDelete(ctx, id))
}

func (c *Controller) DeleteSelected(ctx context.Context) error {
	return c.run(c.BeginDeleteSelected(ctx))
}

func (c *Controller) DeleteAll(ctx context.Context) error {
	return c.run(c.BeginDeleteAll(ctx))
}

func (c *Controller) BulkCategoryByDescription(ctx context.Context, req models.BulkCategoryByDescription) error {
	return c.run(c.BeginBulkCategoryByDescription(ctx, req))
}

func (c *Controller) BulkCategorySelected(ctx context.Context, categoryID *int) error {
	return c.run(c.BeginBulkCategorySelected(ctx, categoryID))
}

func (c *Controller) BulkEssentialSelected(ctx context.Context, essential bool) error {
	return c.run(c.BeginBulkEssentialSelected(ctx, essential))
}

func (c *Controller) Import(ctx context.Context, filename string, r io.Reader) error {
	return c.run(c.BeginImport(ctx, filename, r))
}

func (c *Controller) RemoveDuplicates(ctx context.Context, ids []int) error {
	return c.run(c.BeginRemoveDuplicates(ctx, ids))
}

func (c *Controller) RecategorizeServiceStations(ctx context.Context) error {
	return c.run(c.BeginRecategorizeServiceStations(ctx))
}

func (c *Controller) LoadStatistics(ctx context.Context) error {
	return c.run(c.BeginStatistics(ctx))
}

func (c *Controller) LoadDuplicates(ctx context.Context) error {
	return c.run(c.BeginDuplicates(ctx))
}

// SetCriteria replaces the active filter. Sort state and selection are kept.
func (c *Controller) SetCriteria(criteria filter.Criteria) {
	c.state.Criteria = criteria
}

// Criteria returns the active filter.
func (c *Controller) Criteria() filter.Criteria {
	return c.state.Criteria
}

// ToggleSort activates col on a month table, flipping its direction if already active.
func (c *Controller) ToggleSort(table string, col view.Column) view.SortKey {
	return c.state.Sorts.Toggle(table, col)
}

// SetSort sets the same sort key on every month table of the current snapshot.
// The CLI uses it since it has no per-table interaction.
func (c *Controller) SetSort(key view.SortKey) {
	for _, tx := range c.state.Store.All() {
		c.state.Sorts.Set(tx.MonthKey(), key)
	}
}

func (c *Controller) ClearSort(table string) {
	c.state.Sorts.Clear(table)
}

// ToggleSelection marks or unmarks one transaction. Unknown ids are ignored.
func (c *Controller) ToggleSelection(id int, included bool) {
	if included && !c.state.Store.Has(id) {
		return
	}
	c.state.Selection.Toggle(id, included)
}

// FlipSelection inverts the selection of one transaction.
func (c *Controller) FlipSelection(id int) {
	c.ToggleSelection(id, !c.state.Selection.Contains(id))
}

// SelectVisible selects every transaction passing the current filter.
func (c *Controller) SelectVisible() {
	for _, tx := range filter.Apply(c.state.Store.All(), c.state.Criteria) {
		c.state.Selection.Toggle(tx.ID, true)
	}
}

func (c *Controller) ClearSelection() {
	c.state.Selection.Clear()
}

func (c *Controller) SetActiveTab(tab Tab) {
	c.state.ActiveTab = tab
}

func (c *Controller) ActiveTab() Tab {
	return c.state.ActiveTab
}

// SetStatisticsQuery selects the period used by LoadStatistics.
func (c *Controller) SetStatisticsQuery(q api.StatisticsQuery) {
	c.state.StatsQuery = q
}

// DismissError clears the last error message.
func (c *Controller) DismissError() {
	c.state.LastError = ""
}

// Transaction looks up a transaction in the current snapshot.
func (c *Controller) Transaction(id int) (models.Transaction, bool) {
	return c.state.Store.Get(id)
}

// CategoryByName resolves a category in the current snapshot.
func (c *Controller) CategoryByName(name string) (models.Category, bool) {
	return c.state.Store.CategoryByName(name)
}

// ViewModel is what the renderers need for one frame.
type ViewModel struct {
	Groups          []view.Group
	Visible         int
	Total           int
	Selected        map[int]bool
	SelectedCount   int
	SelectedTotal   decimal.Decimal
	Criteria        filter.Criteria
	CriteriaSummary string
	Years           []string
	Categories      []models.Category
	CategoryColors  map[string]string
	Sorts           view.SortState
	ActiveTab       Tab
	LastError       string
	Status          string
	Busy            bool
	StatsQuery      api.StatisticsQuery
	Statistics      *models.Statistics
	Duplicates      *models.DuplicateReport
}

// View derives the current frame: filter, then group by month, then apply each table's sort.
func (c *Controller) View() ViewModel {
	s := c.state
	all := s.Store.All()
	filtered := filter.Apply(all, s.Criteria)

	selected := make(map[int]bool, s.Selection.Len())
	for _, id := range s.Selection.IDs() {
		selected[id] = true
	}

	categories := s.Store.Categories()
	colors := make(map[string]string, len(categories)+1)
	for _, cat := range categories {
		colors[cat.Name] = s.Store.CategoryColor(cat.Name)
	}
	colors[models.Uncategorized] = models.UncategorizedColor

	return ViewModel{
		Groups:          view.Arrange(filtered, s.Sorts),
		Visible:         len(filtered),
		Total:           len(all),
		Selected:        selected,
		SelectedCount:   s.Selection.Len(),
		SelectedTotal:   s.Selection.Total(s.Store),
		Criteria:        s.Criteria,
		CriteriaSummary: s.Criteria.Describe(),
		Years:           filter.AvailableYears(all),
		Categories:      categories,
		CategoryColors:  colors,
		Sorts:           s.Sorts.Clone(),
		ActiveTab:       s.ActiveTab,
		LastError:       s.LastError,
		Status:          s.Status,
		Busy:            s.Pending > 0,
		StatsQuery:      s.StatsQuery,
		Statistics:      s.Statistics,
		Duplicates:      s.Duplicates,
	}
}

// Filtered returns the transactions passing the current filter in store order.
func (c *Controller) Filtered() []models.Transaction {
	return filter.Apply(c.state.Store.All(), c.state.Criteria)
}
