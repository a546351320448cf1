package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"expense-view/internal/apierror"
	"expense-view/internal/models"
)

// StatisticsQuery selects the aggregation period. Empty fields use the backend defaults.
type StatisticsQuery struct {
	Period string
	Year   string
}

func (q StatisticsQuery) values() url.Values {
	v := url.Values{}
	if q.Period != "" {
		v.Set("period", q.Period)
	}
	if q.Year != "" {
		v.Set("year", q.Year)
	}
	return v
}

func (c *Client) Statistics(ctx context.Context, q StatisticsQuery) (models.Statistics, error) {
	var stats models.Statistics
	err := c.doJSON(ctx, http.MethodGet, "/api/statistics", q.values(), nil, &stats)
	return stats, err
}

func (c *Client) ListDuplicates(ctx context.Context) (models.DuplicateReport, error) {
	var report models.DuplicateReport
	err := c.doJSON(ctx, http.MethodGet, "/api/duplicates", nil, nil, &report)
	return report, err
}

type removeDuplicatesRequest struct {
	IDs []int `json:"ids"`
}

// RemoveDuplicates deletes the given transactions and returns how many were removed.
func (c *Client) RemoveDuplicates(ctx context.Context, ids []int) (int, error) {
	if len(ids) == 0 {
		return 0, &apierror.ValidationError{Field: "ids", Reason: "no duplicates selected"}
	}
	var res models.BulkResult
	if err := c.doJSON(ctx, http.MethodDelete, "/api/duplicates/remove", nil, removeDuplicatesRequest{IDs: ids}, &res); err != nil {
		return 0, err
	}
	return res.Affected(), nil
}

// ExportPDF streams the generated report into w and returns the bytes written.
func (c *Client) ExportPDF(ctx context.Context, req models.PDFExportRequest, w io.Writer) (int64, error) {
	const path = "/api/export/pdf"
	payload, err := json.Marshal(req)
	if err != nil {
		return 0, fmt.Errorf("failed to encode export request: %w", err)
	}

	resp, err := c.send(ctx, http.MethodPost, path, nil, bytes.NewReader(payload), "application/json")
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, &apierror.TransportError{Method: http.MethodPost, Endpoint: path, Err: err}
	}
	return n, nil
}

// ListCashPositions returns the recorded balances, most recent first.
func (c *Client) ListCashPositions(ctx context.Context) ([]models.CashPosition, error) {
	var positions []models.CashPosition
	if err := c.doJSON(ctx, http.MethodGet, "/api/cash-position", nil, nil, &positions); err != nil {
		return nil, err
	}
	if positions == nil {
		positions = []models.CashPosition{}
	}
	return positions, nil
}

func (c *Client) CreateCashPosition(ctx context.Context, in models.CashPositionInput) (int, error) {
	var created models.Created
	if err := c.doJSON(ctx, http.MethodPost, "/api/cash-position", nil, in, &created); err != nil {
		return 0, err
	}
	return created.ID, nil
}

func (c *Client) UpdateCashPosition(ctx context.Context, id int, in models.CashPositionInput) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/cash-position/%d", id), nil, in, nil)
}

func (c *Client) DeleteCashPosition(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/cash-position/%d", id), nil, nil, nil)
}

func (c *Client) Runway(ctx context.Context) (models.Runway, error) {
	var runway models.Runway
	err := c.doJSON(ctx, http.MethodGet, "/api/cash-position/runway", nil, nil, &runway)
	return runway, err
}
