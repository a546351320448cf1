package controller

import (
	"context"
	"errors"
	"io"
	"sort"

	"expense-view/internal/api"
	"expense-view/internal/apierror"
	"expense-view/internal/models"

	"github.com/shopspring/decimal"
)

// fakeBackend is an in-memory backend. Setting fail makes the named call
// return that error.
type fakeBackend struct {
	txs      map[int]models.Transaction
	cats     []models.Category
	nextID   int
	fail     map[string]error
	calls    []string
	stats    models.Statistics
	dupes    models.DuplicateReport
	imported []string
}

func newFakeBackend(txs ...models.Transaction) *fakeBackend {
	f := &fakeBackend{txs: make(map[int]models.Transaction), nextID: 100, fail: make(map[string]error)}
	for _, tx := range txs {
		f.txs[tx.ID] = tx
	}
	f.cats = []models.Category{{ID: 1, Name: "Food & Dining", Color: "#e74c3c"}, {ID: 2, Name: "Transportation", Color: "#3498db"}}
	return f
}

func expense(id int, date string, amount int64, essential bool) models.Transaction {
	return models.Transaction{
		ID: id, Date: date, Description: "tx", Amount: decimal.NewFromInt(amount),
		TransactionType: models.TypeExpense, IsEssential: essential,
	}
}

func (f *fakeBackend) call(name string) error {
	f.calls = append(f.calls, name)
	return f.fail[name]
}

func serverError(msg string) error {
	return &apierror.APIError{Method: "POST", Endpoint: "/api", StatusCode: 400, Message: msg}
}

func (f *fakeBackend) ListTransactions(context.Context) ([]models.Transaction, error) {
	if err := f.call("ListTransactions"); err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(f.txs))
	for id := range f.txs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]models.Transaction, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.txs[id])
	}
	return out, nil
}

func (f *fakeBackend) ListCategories(context.Context) ([]models.Category, error) {
	if err := f.call("ListCategories"); err != nil {
		return nil, err
	}
	return f.cats, nil
}

func (f *fakeBackend) CreateTransaction(_ context.Context, in models.TransactionInput) (int, error) {
	if err := f.call("CreateTransaction"); err != nil {
		return 0, err
	}
	f.nextID++
	f.txs[f.nextID] = models.Transaction{ID: f.nextID, Date: in.Date, Description: in.Description, Amount: in.Amount, TransactionType: in.TransactionType}
	return f.nextID, nil
}

func (f *fakeBackend) UpdateTransaction(_ context.Context, id int, patch models.TransactionPatch) error {
	if err := f.call("UpdateTransaction"); err != nil {
		return err
	}
	tx, ok := f.txs[id]
	if !ok {
		return &apierror.APIError{StatusCode: 404}
	}
	if patch.IsEssential != nil {
		tx.IsEssential = *patch.IsEssential
	}
	if patch.Notes != nil {
		tx.Notes = *patch.Notes
	}
	f.txs[id] = tx
	return nil
}

func (f *fakeBackend) DeleteTransaction(_ context.Context, id int) error {
	if err := f.call("DeleteTransaction"); err != nil {
		return err
	}
	if _, ok := f.txs[id]; !ok {
		return &apierror.APIError{StatusCode: 404}
	}
	delete(f.txs, id)
	return nil
}

func (f *fakeBackend) DeleteAllTransactions(context.Context) (int, error) {
	if err := f.call("DeleteAllTransactions"); err != nil {
		return 0, err
	}
	n := len(f.txs)
	f.txs = make(map[int]models.Transaction)
	return n, nil
}

func (f *fakeBackend) BulkCategoryByDescription(_ context.Context, req models.BulkCategoryByDescription) (models.BulkResult, error) {
	if err := f.call("BulkCategoryByDescription"); err != nil {
		return models.BulkResult{}, err
	}
	n := 0
	for id, tx := range f.txs {
		if tx.Description == req.Description {
			tx.CategoryID = req.CategoryID
			tx.IsEssential = req.IsEssential
			f.txs[id] = tx
			n++
		}
	}
	if n == 0 {
		return models.BulkResult{}, &apierror.APIError{StatusCode: 404, Message: "No expenses found with that description"}
	}
	return models.BulkResult{Count: n}, nil
}

func (f *fakeBackend) BulkCategoryByIDs(_ context.Context, req models.BulkCategoryByIDs) (models.BulkResult, error) {
	if err := f.call("BulkCategoryByIDs"); err != nil {
		return models.BulkResult{}, err
	}
	for _, id := range req.ExpenseIDs {
		tx := f.txs[id]
		tx.CategoryID = req.CategoryID
		f.txs[id] = tx
	}
	return models.BulkResult{Count: len(req.ExpenseIDs)}, nil
}

func (f *fakeBackend) BulkEssential(_ context.Context, req models.BulkEssential) (models.BulkResult, error) {
	if err := f.call("BulkEssential"); err != nil {
		return models.BulkResult{}, err
	}
	for _, id := range req.ExpenseIDs {
		tx := f.txs[id]
		tx.IsEssential = req.IsEssential
		f.txs[id] = tx
	}
	return models.BulkResult{UpdatedCount: len(req.ExpenseIDs)}, nil
}

func (f *fakeBackend) ImportCSV(_ context.Context, filename string, r io.Reader) (models.ImportResult, error) {
	if err := f.call("ImportCSV"); err != nil {
		return models.ImportResult{}, err
	}
	data, _ := io.ReadAll(r)
	f.imported = append(f.imported, filename+":"+string(data))
	f.nextID++
	f.txs[f.nextID] = expense(f.nextID, "2025-04-01", 12, false)
	return models.ImportResult{Imported: 1, Errors: []string{"Row 3: bad amount"}}, nil
}

func (f *fakeBackend) RemoveDuplicates(_ context.Context, ids []int) (int, error) {
	if err := f.call("RemoveDuplicates"); err != nil {
		return 0, err
	}
	n := 0
	for _, id := range ids {
		if _, ok := f.txs[id]; ok {
			delete(f.txs, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeBackend) RecategorizeServiceStations(context.Context) (models.RecategorizeResult, error) {
	if err := f.call("RecategorizeServiceStations"); err != nil {
		return models.RecategorizeResult{}, err
	}
	return models.RecategorizeResult{UpdatedToTransport: 2, UpdatedToFood: 1}, nil
}

func (f *fakeBackend) Statistics(_ context.Context, q api.StatisticsQuery) (models.Statistics, error) {
	if err := f.call("Statistics:" + q.Period); err != nil {
		return models.Statistics{}, err
	}
	return f.stats, nil
}

func (f *fakeBackend) ListDuplicates(context.Context) (models.DuplicateReport, error) {
	if err := f.call("ListDuplicates"); err != nil {
		return models.DuplicateReport{}, err
	}
	return f.dupes, nil
}

var errNetwork = &apierror.TransportError{Method: "GET", Endpoint: "/api/expenses", Err: errors.New("connection refused")}
