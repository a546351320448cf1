// Package validation checks user input before it is sent to the backend.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"expense-view/internal/apierror"
	"expense-view/internal/dateutils"
	"expense-view/internal/models"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Output formats supported by the list command.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
)

func invalid(field, reason string) error {
	return &apierror.ValidationError{Field: field, Reason: reason}
}

// IsValidImportFile checks that path is an existing regular .csv file.
func IsValidImportFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is not a regular file", path)
	}
	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		return fmt.Errorf("unsupported import file %s: only .csv bank exports are accepted", path)
	}
	return nil
}

// IsValidOutputFormat checks if the given format is supported.
func IsValidOutputFormat(format string) error {
	switch format {
	case FormatTable, FormatCSV:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s. Supported formats are 'table', 'csv'", format)
	}
}

// IsValidOutputDir checks that the directory a file will be written to exists.
func IsValidOutputDir(path string) error {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("output directory %s is not accessible: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output directory %s is not a directory", dir)
	}
	return nil
}

// TransactionInput checks a new transaction.
func TransactionInput(in models.TransactionInput) error {
	if strings.TrimSpace(in.Description) == "" {
		return invalid("description", "cannot be empty")
	}
	if !dateutils.IsISODate(in.Date) {
		return invalid("date", fmt.Sprintf("%q is not a YYYY-MM-DD date", in.Date))
	}
	if !in.Amount.IsPositive() {
		return invalid("amount", "must be greater than zero")
	}
	return TransactionType(in.TransactionType)
}

// TransactionType accepts "expense", "income" or empty (the backend default).
func TransactionType(kind string) error {
	switch kind {
	case "", models.TypeExpense, models.TypeIncome:
		return nil
	default:
		return invalid("transaction_type", fmt.Sprintf("%q must be %q or %q", kind, models.TypeExpense, models.TypeIncome))
	}
}

// TransactionPatch checks the fields a partial update sets.
func TransactionPatch(p models.TransactionPatch) error {
	if p.IsEmpty() {
		return invalid("update", "nothing to change")
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		return invalid("description", "cannot be empty")
	}
	if p.Date != nil && !dateutils.IsISODate(*p.Date) {
		return invalid("date", fmt.Sprintf("%q is not a YYYY-MM-DD date", *p.Date))
	}
	if p.Amount != nil && !p.Amount.IsPositive() {
		return invalid("amount", "must be greater than zero")
	}
	return nil
}

// CategoryInput checks a category. Name is required for creation only.
func CategoryInput(in models.CategoryInput, requireName bool) error {
	if requireName && strings.TrimSpace(in.Name) == "" {
		return invalid("name", "cannot be empty")
	}
	if !requireName && in.Name == "" && in.Color == "" {
		return invalid("category", "nothing to change")
	}
	if in.Color != "" && !IsHexColor(in.Color) {
		return invalid("color", fmt.Sprintf("%q is not a #rrggbb color", in.Color))
	}
	return nil
}

// IsHexColor reports whether s is a #rrggbb color.
func IsHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}

// CashPositionInput checks a recorded balance. Zero and negative balances are allowed.
func CashPositionInput(in models.CashPositionInput) error {
	if !dateutils.IsISODate(in.Date) {
		return invalid("date", fmt.Sprintf("%q is not a YYYY-MM-DD date", in.Date))
	}
	return nil
}

// BulkByDescription checks a match-by-description recategorization.
func BulkByDescription(req models.BulkCategoryByDescription) error {
	if strings.TrimSpace(req.Description) == "" {
		return invalid("description", "cannot be empty")
	}
	switch req.MatchMode {
	case "", models.MatchExact, models.MatchFuzzy:
	default:
		return invalid("match_mode", fmt.Sprintf("%q must be %q or %q", req.MatchMode, models.MatchExact, models.MatchFuzzy))
	}
	return nil
}

// IDs checks that a bulk action has something to act on.
func IDs(ids []int) error {
	if len(ids) == 0 {
		return invalid("selection", "no transactions selected")
	}
	return nil
}
