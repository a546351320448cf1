package controller

import (
	"context"
	"io"

	"expense-view/internal/api"
	"expense-view/internal/models"
)

// Backend is the subset of the REST client the controller drives.
type Backend interface {
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateTransaction(ctx context.Context, in models.TransactionInput) (int, error)
	UpdateTransaction(ctx context.Context, id int, patch models.TransactionPatch) error
	DeleteTransaction(ctx context.Context, id int) error
	DeleteAllTransactions(ctx context.Context) (int, error)
	BulkCategoryByDescription(ctx context.Context, req models.BulkCategoryByDescription) (models.BulkResult, error)
	BulkCategoryByIDs(ctx context.Context, req models.BulkCategoryByIDs) (models.BulkResult, error)
	BulkEssential(ctx context.Context, req models.BulkEssential) (models.BulkResult, error)
	ImportCSV(ctx context.Context, filename string, r io.Reader) (models.ImportResult, error)
	RemoveDuplicates(ctx context.Context, ids []int) (int, error)
	RecategorizeServiceStations(ctx context.Context) (models.RecategorizeResult, error)
	Statistics(ctx context.Context, q api.StatisticsQuery) (models.Statistics, error)
	ListDuplicates(ctx context.Context) (models.DuplicateReport, error)
}

var _ Backend = (*api.Client)(nil)
