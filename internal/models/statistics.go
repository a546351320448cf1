package models

import "github.com/shopspring/decimal"

// CategoryStat aggregates the transactions of one category in a statistics period.
type CategoryStat struct {
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
	Color  string          `json:"color"`
	Type   string          `json:"type"`
}

// MonthlyTrend is one month of the yearly trend returned by the statistics endpoint.
type MonthlyTrend struct {
	Month     string          `json:"month"`
	Income    decimal.Decimal `json:"income"`
	Expenses  decimal.Decimal `json:"expenses"`
	Net       decimal.Decimal `json:"net"`
	Essential decimal.Decimal `json:"essential"`
	Optional  decimal.Decimal `json:"optional"`
}

// Statistics is the response of GET /api/statistics.
type Statistics struct {
	IncomeTotal    decimal.Decimal         `json:"income_total"`
	ExpenseTotal   decimal.Decimal         `json:"expense_total"`
	NetPosition    decimal.Decimal         `json:"net_position"`
	YearIncome     decimal.Decimal         `json:"year_income"`
	YearExpenses   decimal.Decimal         `json:"year_expenses"`
	YearNet        decimal.Decimal         `json:"year_net"`
	MonthIncome    decimal.Decimal         `json:"month_income"`
	MonthExpenses  decimal.Decimal         `json:"month_expenses"`
	MonthNet       decimal.Decimal         `json:"month_net"`
	Count          int                     `json:"count"`
	EssentialTotal decimal.Decimal         `json:"essential_total"`
	OptionalTotal  decimal.Decimal         `json:"optional_total"`
	ByCategory     map[string]CategoryStat `json:"by_category"`
	MonthlyTrend   []MonthlyTrend          `json:"monthly_trend"`
	MoMChange      decimal.Decimal         `json:"mom_change"`
}
