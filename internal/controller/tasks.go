package controller

import (
	"context"
	"fmt"
	"io"

	"expense-view/internal/models"
	"expense-view/internal/validation"
)

// Operation names, used in results and logs.
const (
	OpRefresh        = "refresh"
	OpCreate         = "create"
	OpUpdate         = "update"
	OpDelete         = "delete"
	OpDeleteSelected = "delete-selected"
	OpDeleteAll      = "delete-all"
	OpBulkByDesc     = "bulk-category-description"
	OpBulkCategory   = "bulk-category-selected"
	OpBulkEssential  = "bulk-essential-selected"
	OpImport         = "import"
	OpRemoveDups     = "remove-duplicates"
	OpRecategorize   = "recategorize-service-stations"
	OpStatistics     = "statistics"
	OpDuplicates     = "duplicates"
)

// Snapshot is one consistent fetch of backend data.
type Snapshot struct {
	Transactions []models.Transaction
	Categories   []models.Category
}

// Result is the outcome of a Task, folded into the state by Apply.
// A non-nil Snapshot is installed even when Err is set, because it reflects
// what the backend holds after a partially applied bulk action.
type Result struct {
	Op       string
	Seq      uint64
	Snapshot *Snapshot
	Status   string
	Err      error
	// Deselect lists the ids the operation acted on; they leave the selection
	// once it succeeds. Ids selected while it ran are kept.
	Deselect []int
	// Mutated marks a backend change: loaded reports are replaced by
	// Statistics and Duplicates below, or dropped when they could not be refetched.
	Mutated    bool
	Statistics *models.Statistics
	Duplicates *models.DuplicateReport
}

// Task performs the network part of an operation. It touches only the
// backend, so it may run on any goroutine.
type Task func() Result

func fetchSnapshot(ctx context.Context, b Backend) (*Snapshot, error) {
	// Categories first: transaction rows resolve colors against them.
	cats, err := b.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	txs, err := b.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	return &Snapshot{Transactions: txs, Categories: cats}, nil
}

// failed returns a task that reports err without touching the network.
func (c *Controller) failed(op string, err error) Task {
	c.state.Pending++
	return func() Result { return Result{Op: op, Err: err} }
}

// mutation runs call and, on success, fetches a fresh snapshot tagged with a
// sequence number issued now, plus whichever reports are currently loaded.
func (c *Controller) mutation(ctx context.Context, op string, deselect []int, call func(context.Context) (string, error)) Task {
	seq := c.state.Store.NextSeq()
	c.state.Pending++
	backend := c.backend
	reload := c.reportReloader()
	return func() Result {
		status, err := call(ctx)
		if err != nil {
			return Result{Op: op, Err: err}
		}
		res := Result{Op: op, Status: status, Mutated: true}
		reload(ctx, &res)
		snap, err := fetchSnapshot(ctx, backend)
		if err != nil {
			res.Err = err
			return res
		}
		res.Seq, res.Snapshot, res.Deselect = seq, snap, deselect
		return res
	}
}

// reportReloader captures which reports are loaded now and returns a function
// that refetches them into a Result. A report that fails to load is left nil,
// so Apply drops it and the next visit to its tab loads it again.
func (c *Controller) reportReloader() func(context.Context, *Result) {
	backend := c.backend
	q := c.state.StatsQuery
	stats := c.state.Statistics != nil
	dups := c.state.Duplicates != nil
	return func(ctx context.Context, res *Result) {
		if stats {
			if s, err := backend.Statistics(ctx, q); err == nil {
				res.Statistics = &s
			}
		}
		if dups {
			if d, err := backend.ListDuplicates(ctx); err == nil {
				res.Duplicates = &d
			}
		}
	}
}

// BeginRefresh fetches categories and transactions.
func (c *Controller) BeginRefresh(ctx context.Context) Task {
	seq := c.state.Store.NextSeq()
	c.state.Pending++
	backend := c.backend
	return func() Result {
		snap, err := fetchSnapshot(ctx, backend)
		if err != nil {
			return Result{Op: OpRefresh, Err: err}
		}
		return Result{Op: OpRefresh, Seq: seq, Snapshot: snap}
	}
}

func (c *Controller) BeginCreate(ctx context.Context, in models.TransactionInput) Task {
	if err := validation.TransactionInput(in); err != nil {
		return c.failed(OpCreate, err)
	}
	return c.mutation(ctx, OpCreate, nil, func(ctx context.Context) (string, error) {
		id, err := c.backend.CreateTransaction(ctx, in)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Added transaction #%d", id), nil
	})
}

func (c *Controller) BeginUpdate(ctx context.Context, id int, patch models.TransactionPatch) Task {
	if err := validation.TransactionPatch(patch); err != nil {
		return c.failed(OpUpdate, err)
	}
	return c.mutation(ctx, OpUpdate, nil, func(ctx context.Context) (string, error) {
		if err := c.backend.UpdateTransaction(ctx, id, patch); err != nil {
			return "", err
		}
		return fmt.Sprintf("Updated transaction #%d", id), nil
	})
}

func (c *Controller) BeginDelete(ctx context.Context, id int) Task {
	return c.mutation(ctx, OpDelete, nil, func(ctx context.Context) (string, error) {
		if err := c.backend.DeleteTransaction(ctx, id); err != nil {
			return "", err
		}
		return fmt.Sprintf("Deleted transaction #%d", id), nil
	})
}

// BeginDeleteSelected deletes every selected transaction one by one. The store
// is refreshed afterwards even if some deletions failed.
func (c *Controller) BeginDeleteSelected(ctx context.Context) Task {
	ids := c.state.Selection.IDs()
	if err := validation.IDs(ids); err != nil {
		return c.failed(OpDeleteSelected, err)
	}
	seq := c.state.Store.NextSeq()
	c.state.Pending++
	backend := c.backend
	reload := c.reportReloader()
	return func() Result {
		deleted := 0
		var firstErr error
		for _, id := range ids {
			if err := backend.DeleteTransaction(ctx, id); err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			deleted++
		}
		res := Result{
			Op:     OpDeleteSelected,
			Status: fmt.Sprintf("Deleted %d of %d transaction(s)", deleted, len(ids)),
			Err:    firstErr,
		}
		if firstErr == nil {
			res.Deselect = ids
		}
		if deleted == 0 {
			return res
		}
		res.Mutated = true
		reload(ctx, &res)
		snap, err := fetchSnapshot(ctx, backend)
		if err != nil {
			if res.Err == nil {
				res.Err = err
			}
			return res
		}
		res.Seq, res.Snapshot = seq, snap
		return res
	}
}

func (c *Controller) BeginDeleteAll(ctx context.Context) Task {
	return c.mutation(ctx, OpDeleteAll, nil, func(ctx context.Context) (string, error) {
		n, err := c.backend.DeleteAllTransactions(ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Deleted %d transaction(s)", n), nil
	})
}

// BeginBulkCategoryByDescription recategorizes every transaction sharing a description.
func (c *Controller) BeginBulkCategoryByDescription(ctx context.Context, req models.BulkCategoryByDescription) Task {
	if err := validation.BulkByDescription(req); err != nil {
		return c.failed(OpBulkByDesc, err)
	}
	return c.mutation(ctx, OpBulkByDesc, nil, func(ctx context.Context) (string, error) {
		res, err := c.backend.BulkCategoryByDescription(ctx, req)
		if err != nil {
			return "", err
		}
		return bulkStatus(res, "Updated %d transaction(s)"), nil
	})
}

// BeginBulkCategorySelected moves the selected transactions to a category; nil clears it.
func (c *Controller) BeginBulkCategorySelected(ctx context.Context, categoryID *int) Task {
	ids := c.state.Selection.IDs()
	if err := validation.IDs(ids); err != nil {
		return c.failed(OpBulkCategory, err)
	}
	req := models.BulkCategoryByIDs{ExpenseIDs: ids, CategoryID: categoryID}
	return c.mutation(ctx, OpBulkCategory, ids, func(ctx context.Context) (string, error) {
		res, err := c.backend.BulkCategoryByIDs(ctx, req)
		if err != nil {
			return "", err
		}
		n := res.Affected()
		if n == 0 {
			n = len(ids)
		}
		return fmt.Sprintf("Updated category for %d transaction(s)", n), nil
	})
}

func (c *Controller) BeginBulkEssentialSelected(ctx context.Context, essential bool) Task {
	ids := c.state.Selection.IDs()
	if err := validation.IDs(ids); err != nil {
		return c.failed(OpBulkEssential, err)
	}
	req := models.BulkEssential{ExpenseIDs: ids, IsEssential: essential}
	label := models.LabelOptional
	if essential {
		label = models.LabelEssential
	}
	return c.mutation(ctx, OpBulkEssential, ids, func(ctx context.Context) (string, error) {
		res, err := c.backend.BulkEssential(ctx, req)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Updated %d transaction(s) as %s", res.Affected(), label), nil
	})
}

// BeginImport uploads a CSV read from r. Row-level errors are reported in the status.
func (c *Controller) BeginImport(ctx context.Context, filename string, r io.Reader) Task {
	return c.mutation(ctx, OpImport, nil, func(ctx context.Context) (string, error) {
		res, err := c.backend.ImportCSV(ctx, filename, r)
		if err != nil {
			return "", err
		}
		status := fmt.Sprintf("Imported %d transaction(s)", res.Imported)
		if len(res.Errors) > 0 {
			status += fmt.Sprintf(" with %d row error(s)", len(res.Errors))
		}
		return status, nil
	})
}

func (c *Controller) BeginRemoveDuplicates(ctx context.Context, ids []int) Task {
	if err := validation.IDs(ids); err != nil {
		return c.failed(OpRemoveDups, err)
	}
	return c.mutation(ctx, OpRemoveDups, nil, func(ctx context.Context) (string, error) {
		n, err := c.backend.RemoveDuplicates(ctx, ids)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Removed %d duplicate(s)", n), nil
	})
}

func (c *Controller) BeginRecategorizeServiceStations(ctx context.Context) Task {
	return c.mutation(ctx, OpRecategorize, nil, func(ctx context.Context) (string, error) {
		res, err := c.backend.RecategorizeServiceStations(ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Recategorized %d service station transaction(s)", res.UpdatedToTransport+res.UpdatedToFood), nil
	})
}

// BeginStatistics loads aggregates for the current statistics query.
func (c *Controller) BeginStatistics(ctx context.Context) Task {
	q := c.state.StatsQuery
	c.state.Pending++
	backend := c.backend
	return func() Result {
		stats, err := backend.Statistics(ctx, q)
		if err != nil {
			return Result{Op: OpStatistics, Err: err}
		}
		return Result{Op: OpStatistics, Statistics: &stats}
	}
}

func (c *Controller) BeginDuplicates(ctx context.Context) Task {
	c.state.Pending++
	backend := c.backend
	return func() Result {
		report, err := backend.ListDuplicates(ctx)
		if err != nil {
			return Result{Op: OpDuplicates, Err: err}
		}
		return Result{Op: OpDuplicates, Duplicates: &report}
	}
}

func bulkStatus(res models.BulkResult, format string) string {
	if res.Message != "" {
		return res.Message
	}
	return fmt.Sprintf(format, res.Affected())
}
