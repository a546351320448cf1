package models

import "github.com/shopspring/decimal"

// TransactionInput is the body of POST /api/expenses.
type TransactionInput struct {
	Description        string          `json:"description"`
	Amount             decimal.Decimal `json:"amount"`
	Date               string          `json:"date"`
	CategoryID         *int            `json:"category_id,omitempty"`
	IsRecurring        bool            `json:"is_recurring"`
	RecurringFrequency string          `json:"recurring_frequency,omitempty"`
	IsEssential        bool            `json:"is_essential"`
	TransactionType    string          `json:"transaction_type"`
	Notes              string          `json:"notes,omitempty"`
	Tags               []string        `json:"tags,omitempty"`
}

// TransactionPatch is the body of PUT /api/expenses/{id}. Only non-nil fields are sent.
// ClearCategory sends an explicit null category_id.
type TransactionPatch struct {
	Description   *string
	Amount        *decimal.Decimal
	Date          *string
	CategoryID    *int
	ClearCategory bool
	IsEssential   *bool
	Notes         *string
	Tags          []string
}

// Body converts the patch to the partial JSON object the backend expects.
func (p TransactionPatch) Body() map[string]interface{} {
	body := make(map[string]interface{})
	if p.Description != nil {
		body["description"] = *p.Description
	}
	if p.Amount != nil {
		body["amount"] = *p.Amount
	}
	if p.Date != nil {
		body["date"] = *p.Date
	}
	if p.ClearCategory {
		body["category_id"] = nil
	} else if p.CategoryID != nil {
		body["category_id"] = *p.CategoryID
	}
	if p.IsEssential != nil {
		body["is_essential"] = *p.IsEssential
	}
	if p.Notes != nil {
		body["notes"] = *p.Notes
	}
	if p.Tags != nil {
		body["tags"] = p.Tags
	}
	return body
}

// IsEmpty reports whether the patch would change nothing.
func (p TransactionPatch) IsEmpty() bool {
	return len(p.Body()) == 0
}

// Match modes accepted by the bulk category endpoint.
const (
	MatchExact = "exact"
	MatchFuzzy = "fuzzy"
)

// BulkCategoryByDescription updates every transaction matching a description.
type BulkCategoryByDescription struct {
	Description   string `json:"description"`
	CategoryID    *int   `json:"category_id"`
	IsEssential   bool   `json:"is_essential"`
	MatchMode     string `json:"match_mode,omitempty"`
	FuzzyKeywords string `json:"fuzzy_keywords,omitempty"`
}

// BulkCategoryByIDs updates the category of an explicit set of transactions.
type BulkCategoryByIDs struct {
	ExpenseIDs []int `json:"expense_ids"`
	CategoryID *int  `json:"category_id"`
}

// BulkEssential updates the essential flag of an explicit set of transactions.
type BulkEssential struct {
	ExpenseIDs  []int `json:"expense_ids"`
	IsEssential bool  `json:"is_essential"`
}

// BulkResult is the response of the bulk update and delete endpoints.
// The backend reports the affected rows under different keys depending on the endpoint.
type BulkResult struct {
	Message      string `json:"message"`
	Count        int    `json:"count"`
	UpdatedCount int    `json:"updated_count"`
	RemovedCount int    `json:"removed_count"`
	MatchType    string `json:"match_type,omitempty"`
}

// Affected returns whichever row count the endpoint filled in.
func (r BulkResult) Affected() int {
	switch {
	case r.Count > 0:
		return r.Count
	case r.UpdatedCount > 0:
		return r.UpdatedCount
	default:
		return r.RemovedCount
	}
}

// Created is the response of create endpoints.
type Created struct {
	Message string `json:"message"`
	ID      int    `json:"id"`
}

// ImportResult is the response of POST /api/import-csv.
type ImportResult struct {
	Message  string   `json:"message"`
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}

// FuzzyMatchRequest is the body of POST /api/expenses/fuzzy-match-preview.
type FuzzyMatchRequest struct {
	Description   string `json:"description"`
	FuzzyKeywords string `json:"fuzzy_keywords,omitempty"`
}

// FuzzyMatchPreview is the keyword string the backend derived and how many transactions it matches.
type FuzzyMatchPreview struct {
	Keywords   string   `json:"keywords"`
	MatchCount int      `json:"match_count"`
	Samples    []string `json:"samples,omitempty"`
}

// RecategorizeResult is the response of POST /api/expenses/recategorize-service-stations.
type RecategorizeResult struct {
	Message            string   `json:"message"`
	UpdatedToTransport int      `json:"updated_to_transport"`
	UpdatedToFood      int      `json:"updated_to_food"`
	Details            []string `json:"details"`
}

// PDFSections selects the sections of the exported report.
type PDFSections struct {
	Summary           bool `json:"summary"`
	EssentialOptional bool `json:"essential_optional"`
	CategoryBreakdown bool `json:"category_breakdown"`
	MonthlyTrend      bool `json:"monthly_trend"`
}

// DefaultPDFSections mirrors the backend defaults.
func DefaultPDFSections() PDFSections {
	return PDFSections{Summary: true, EssentialOptional: true, CategoryBreakdown: true}
}

// PDFExportRequest is the body of POST /api/export/pdf.
type PDFExportRequest struct {
	Period   string      `json:"period"`
	Sections PDFSections `json:"sections"`
	Title    string      `json:"title,omitempty"`
}
