package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"expense-view/internal/apierror"
	"expense-view/internal/models"
)

// ImportCSV uploads a bank export. The backend parses and categorizes the rows;
// per-row failures come back in ImportResult.Errors.
func (c *Client) ImportCSV(ctx context.Context, filename string, r io.Reader) (models.ImportResult, error) {
	const path = "/api/import-csv"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return models.ImportResult{}, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return models.ImportResult{}, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return models.ImportResult{}, fmt.Errorf("failed to finish upload body: %w", err)
	}

	resp, err := c.send(ctx, http.MethodPost, path, nil, &buf, mw.FormDataContentType())
	if err != nil {
		return models.ImportResult{}, err
	}
	defer resp.Body.Close()

	var res models.ImportResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return models.ImportResult{}, &apierror.TransportError{Method: http.MethodPost, Endpoint: path, Err: fmt.Errorf("decode response: %w", err)}
	}
	return res, nil
}
