package validation_test

import (
	"os"
	"path/filepath"
	"testing"

	"expense-view/internal/apierror"
	"expense-view/internal/models"
	"expense-view/internal/validation"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsValidImportFile(t *testing.T) {
	tmpDir := t.TempDir()
	csvFile := filepath.Join(tmpDir, "statement.CSV")
	txtFile := filepath.Join(tmpDir, "notes.txt")
	assert.NoError(t, os.WriteFile(csvFile, []byte("Date,Amount\n"), 0600))
	assert.NoError(t, os.WriteFile(txtFile, []byte("x"), 0600))

	tests := []struct {
		name        string
		path        string
		expectError bool
		errContains string
	}{
		{name: "csv file", path: csvFile},
		{name: "missing file", path: filepath.Join(tmpDir, "missing.csv"), expectError: true, errContains: "path does not exist"},
		{name: "directory", path: tmpDir, expectError: true, errContains: "not a regular file"},
		{name: "wrong extension", path: txtFile, expectError: true, errContains: "only .csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.IsValidImportFile(tt.path)
			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsValidOutputFormat(t *testing.T) {
	assert.NoError(t, validation.IsValidOutputFormat("table"))
	assert.NoError(t, validation.IsValidOutputFormat("csv"))
	err := validation.IsValidOutputFormat("xml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format: xml")
}

func TestIsValidOutputDir(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, validation.IsValidOutputDir(filepath.Join(dir, "report.pdf")))
	assert.Error(t, validation.IsValidOutputDir(filepath.Join(dir, "nope", "report.pdf")))
}

func TestTransactionInput(t *testing.T) {
	valid := models.TransactionInput{
		Description:     "Coffee",
		Amount:          decimal.RequireFromString("4.50"),
		Date:            "2025-03-01",
		TransactionType: models.TypeExpense,
	}

	tests := []struct {
		name   string
		modify func(in *models.TransactionInput)
		field  string
	}{
		{"valid", func(*models.TransactionInput) {}, ""},
		{"default type", func(in *models.TransactionInput) { in.TransactionType = "" }, ""},
		{"blank description", func(in *models.TransactionInput) { in.Description = "  " }, "description"},
		{"bad date", func(in *models.TransactionInput) { in.Date = "01/03/2025" }, "date"},
		{"zero amount", func(in *models.TransactionInput) { in.Amount = decimal.Zero }, "amount"},
		{"negative amount", func(in *models.TransactionInput) { in.Amount = decimal.NewFromInt(-1) }, "amount"},
		{"unknown type", func(in *models.TransactionInput) { in.TransactionType = "transfer" }, "transaction_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.modify(&in)
			err := validation.TransactionInput(in)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var valErr *apierror.ValidationError
			if assert.ErrorAs(t, err, &valErr) {
				assert.Equal(t, tt.field, valErr.Field)
			}
		})
	}
}

func TestTransactionPatch(t *testing.T) {
	empty := ""
	badDate := "yesterday"
	notes := "ok"
	zero := decimal.Zero

	assert.Error(t, validation.TransactionPatch(models.TransactionPatch{}))
	assert.Error(t, validation.TransactionPatch(models.TransactionPatch{Description: &empty}))
	assert.Error(t, validation.TransactionPatch(models.TransactionPatch{Date: &badDate}))
	assert.Error(t, validation.TransactionPatch(models.TransactionPatch{Amount: &zero}))
	assert.NoError(t, validation.TransactionPatch(models.TransactionPatch{Notes: &notes}))
	assert.NoError(t, validation.TransactionPatch(models.TransactionPatch{ClearCategory: true}))
}

func TestCategoryInput(t *testing.T) {
	assert.NoError(t, validation.CategoryInput(models.CategoryInput{Name: "Pets", Color: "#A1b2C3"}, true))
	assert.NoError(t, validation.CategoryInput(models.CategoryInput{Name: "Pets"}, true))
	assert.Error(t, validation.CategoryInput(models.CategoryInput{Color: "#a1b2c3"}, true))
	assert.Error(t, validation.CategoryInput(models.CategoryInput{Name: "Pets", Color: "red"}, true))
	assert.NoError(t, validation.CategoryInput(models.CategoryInput{Color: "#a1b2c3"}, false))
	assert.Error(t, validation.CategoryInput(models.CategoryInput{}, false))
}

func TestCashPositionInput(t *testing.T) {
	assert.NoError(t, validation.CashPositionInput(models.CashPositionInput{Date: "2025-01-31", Amount: decimal.NewFromInt(-20)}))
	assert.Error(t, validation.CashPositionInput(models.CashPositionInput{Date: "31/01/2025"}))
}

func TestBulkByDescription(t *testing.T) {
	assert.NoError(t, validation.BulkByDescription(models.BulkCategoryByDescription{Description: "NETFLIX"}))
	assert.NoError(t, validation.BulkByDescription(models.BulkCategoryByDescription{Description: "NETFLIX", MatchMode: models.MatchFuzzy}))
	assert.Error(t, validation.BulkByDescription(models.BulkCategoryByDescription{}))
	assert.Error(t, validation.BulkByDescription(models.BulkCategoryByDescription{Description: "x", MatchMode: "regex"}))
}

func TestIDs(t *testing.T) {
	assert.NoError(t, validation.IDs([]int{1}))
	err := validation.IDs(nil)
	assert.Equal(t, "invalid selection: no transactions selected", err.Error())
	assert.Equal(t, err.Error(), apierror.UserMessage(err))
}
