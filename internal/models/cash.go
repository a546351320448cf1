package models

import "github.com/shopspring/decimal"

// CashPosition is a recorded cash balance at a date.
type CashPosition struct {
	ID     int             `json:"id"`
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Notes  string          `json:"notes,omitempty"`
}

// CashPositionInput is the body of POST/PUT /api/cash-position.
type CashPositionInput struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Notes  string          `json:"notes"`
}

// Runway is the response of GET /api/cash-position/runway.
// RunwayMonths and RunwayDate are nil when the burn rate is not positive.
type Runway struct {
	CurrentCash     decimal.Decimal  `json:"current_cash"`
	CurrentCashDate string           `json:"current_cash_date,omitempty"`
	RunwayMonths    *decimal.Decimal `json:"runway_months"`
	RunwayDate      *string          `json:"runway_date"`
	MonthlyBurn     decimal.Decimal  `json:"monthly_burn"`
	Message         string           `json:"message"`
}
