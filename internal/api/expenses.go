package api

import (
	"context"
	"fmt"
	"net/http"

	"expense-view/internal/apierror"
	"expense-view/internal/models"
)

// ListTransactions fetches every transaction, most recent first.
func (c *Client) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := c.doJSON(ctx, http.MethodGet, "/api/expenses", nil, nil, &txs); err != nil {
		return nil, err
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	return txs, nil
}

// CreateTransaction adds a transaction and returns its id.
func (c *Client) CreateTransaction(ctx context.Context, in models.TransactionInput) (int, error) {
	var created models.Created
	if err := c.doJSON(ctx, http.MethodPost, "/api/expenses", nil, in, &created); err != nil {
		return 0, err
	}
	return created.ID, nil
}

// UpdateTransaction applies a partial update.
func (c *Client) UpdateTransaction(ctx context.Context, id int, patch models.TransactionPatch) error {
	if patch.IsEmpty() {
		return &apierror.ValidationError{Field: "update", Reason: "nothing to change"}
	}
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/expenses/%d", id), nil, patch.Body(), nil)
}

func (c *Client) DeleteTransaction(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/expenses/%d", id), nil, nil, nil)
}

// DeleteAllTransactions removes every transaction and returns how many were deleted.
func (c *Client) DeleteAllTransactions(ctx context.Context) (int, error) {
	var res models.BulkResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/expenses/delete-all", nil, nil, &res); err != nil {
		return 0, err
	}
	return res.Affected(), nil
}

// BulkCategoryByDescription recategorizes every transaction matching a description.
func (c *Client) BulkCategoryByDescription(ctx context.Context, req models.BulkCategoryByDescription) (models.BulkResult, error) {
	var res models.BulkResult
	err := c.doJSON(ctx, http.MethodPost, "/api/expenses/bulk-update-category", nil, req, &res)
	return res, err
}

// BulkCategoryByIDs recategorizes an explicit set of transactions.
func (c *Client) BulkCategoryByIDs(ctx context.Context, req models.BulkCategoryByIDs) (models.BulkResult, error) {
	if len(req.ExpenseIDs) == 0 {
		return models.BulkResult{}, &apierror.ValidationError{Field: "expense_ids", Reason: "no transactions selected"}
	}
	var res models.BulkResult
	err := c.doJSON(ctx, http.MethodPost, "/api/expenses/bulk-update-category", nil, req, &res)
	return res, err
}

// BulkEssential sets the essential flag on an explicit set of transactions.
func (c *Client) BulkEssential(ctx context.Context, req models.BulkEssential) (models.BulkResult, error) {
	if len(req.ExpenseIDs) == 0 {
		return models.BulkResult{}, &apierror.ValidationError{Field: "expense_ids", Reason: "no transactions selected"}
	}
	var res models.BulkResult
	err := c.doJSON(ctx, http.MethodPost, "/api/expenses/bulk-update-essential", nil, req, &res)
	return res, err
}

// FuzzyMatchPreview asks the backend which keywords it would match a description on.
func (c *Client) FuzzyMatchPreview(ctx context.Context, req models.FuzzyMatchRequest) (models.FuzzyMatchPreview, error) {
	var res models.FuzzyMatchPreview
	err := c.doJSON(ctx, http.MethodPost, "/api/expenses/fuzzy-match-preview", nil, req, &res)
	return res, err
}

// RecategorizeServiceStations runs the backend's fuel/convenience split.
func (c *Client) RecategorizeServiceStations(ctx context.Context) (models.RecategorizeResult, error) {
	var res models.RecategorizeResult
	err := c.doJSON(ctx, http.MethodPost, "/api/expenses/recategorize-service-stations", nil, nil, &res)
	return res, err
}
