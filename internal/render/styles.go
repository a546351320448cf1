// Package render turns engine output into terminal text. Every function is a
// pure function of its arguments.
package render

import (
	"expense-view/internal/currencyutils"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Styles used by the renderers.
type Styles struct {
	Title       lipgloss.Style
	Subtle      lipgloss.Style
	Header      lipgloss.Style
	Cell        lipgloss.Style
	Selected    lipgloss.Style
	Cursor      lipgloss.Style
	Income      lipgloss.Style
	Expense     lipgloss.Style
	Error       lipgloss.Style
	Status      lipgloss.Style
	Border      lipgloss.Style
	Box         lipgloss.Style
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
}

// DefaultStyles returns the standard palette.
func DefaultStyles() Styles {
	return Styles{
		Title:       lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Bold(true),
		Subtle:      lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
		Header:      lipgloss.NewStyle().Foreground(lipgloss.Color("#D1D5DB")).Bold(true).Padding(0, 1),
		Cell:        lipgloss.NewStyle().Padding(0, 1),
		Selected:    lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#FFD54A")),
		Cursor:      lipgloss.NewStyle().Padding(0, 1).Reverse(true),
		Income:      lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff00")),
		Expense:     lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")).Bold(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("#6CBFE6")),
		Border:      lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		Box:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2),
		ActiveTab:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD54A")).Padding(0, 1),
		InactiveTab: lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")).Padding(0, 1),
	}
}

// Renderer formats amounts with a currency symbol and draws with Styles.
type Renderer struct {
	Styles Styles
	Symbol string
}

// New returns a renderer using the default styles.
func New(symbol string) *Renderer {
	return &Renderer{Styles: DefaultStyles(), Symbol: symbol}
}

func (r *Renderer) money(d decimal.Decimal) string {
	return currencyutils.FormatAmount(d, r.Symbol)
}

// signed colors an amount green when positive and red when negative.
func (r *Renderer) signed(d decimal.Decimal) string {
	if d.IsNegative() {
		return r.Styles.Expense.Render(r.money(d))
	}
	return r.Styles.Income.Render(currencyutils.FormatSigned(d, r.Symbol))
}

// Label title-cases a lowercase backend label such as "essential" or "income".
func Label(s string) string {
	return titleCaser.String(s)
}
