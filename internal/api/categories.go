package api

import (
	"context"
	"fmt"
	"net/http"

	"expense-view/internal/models"
)

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := c.doJSON(ctx, http.MethodGet, "/api/categories", nil, nil, &cats); err != nil {
		return nil, err
	}
	if cats == nil {
		cats = []models.Category{}
	}
	return cats, nil
}

// CreateCategory adds a category and returns its id.
func (c *Client) CreateCategory(ctx context.Context, in models.CategoryInput) (int, error) {
	var created models.Created
	if err := c.doJSON(ctx, http.MethodPost, "/api/categories", nil, in, &created); err != nil {
		return 0, err
	}
	return created.ID, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id int, in models.CategoryInput) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/categories/%d", id), nil, in, nil)
}

// DeleteCategory removes a category; its transactions become uncategorized.
// It returns how many transactions were affected.
func (c *Client) DeleteCategory(ctx context.Context, id int) (int, error) {
	var res models.BulkResult
	if err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/categories/%d", id), nil, nil, &res); err != nil {
		return 0, err
	}
	return res.Affected(), nil
}

func (c *Client) ListLearnedRules(ctx context.Context) ([]models.LearnedRule, error) {
	var rules []models.LearnedRule
	if err := c.doJSON(ctx, http.MethodGet, "/api/learned-rules", nil, nil, &rules); err != nil {
		return nil, err
	}
	if rules == nil {
		rules = []models.LearnedRule{}
	}
	return rules, nil
}

func (c *Client) DeleteLearnedRule(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/learned-rules/%d", id), nil, nil, nil)
}
