// Package tui is the interactive terminal view. It drives a Controller from
// the bubbletea event loop: key presses become controller inputs, network
// work runs as tea.Cmd and its results are applied back in Update.
package tui

import (
	"context"
	"fmt"
	"strings"

	"expense-view/internal/controller"
	"expense-view/internal/logging"
	"expense-view/internal/models"
	"expense-view/internal/render"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeAmount
	modeConfirm
)

// resultMsg carries a finished controller task back to the event loop.
type resultMsg struct {
	result controller.Result
}

// Model is the bubbletea model of the interactive view.
type Model struct {
	ctx      context.Context
	ctrl     *controller.Controller
	renderer *render.Renderer
	logger   logging.Logger

	viewport viewport.Model
	search   textinput.Model

	mode    mode
	cursor  int
	rows    []models.Transaction
	confirm *confirmation

	width, height int
}

// confirmation is a destructive action waiting for the user to press enter.
type confirmation struct {
	prompt string
	task   func() controller.Task
}

// New builds the model. The controller must only be used from the event loop afterwards.
func New(ctx context.Context, ctrl *controller.Controller, renderer *render.Renderer, logger logging.Logger) Model {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search descriptions"
	search.CharLimit = 120

	m := Model{
		ctx:      ctx,
		ctrl:     ctrl,
		renderer: renderer,
		logger:   logger,
		viewport: viewport.New(80, 20),
		search:   search,
	}
	m.syncContent()
	return m
}

// Run starts the interactive view on the alternate screen and blocks until the user quits.
func Run(ctx context.Context, ctrl *controller.Controller, renderer *render.Renderer, logger logging.Logger) error {
	logger.Info("Starting interactive view")
	p := tea.NewProgram(New(ctx, ctrl, renderer, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interactive view failed: %w", err)
	}
	logger.Info("Interactive view closed")
	return nil
}

func (m Model) Init() tea.Cmd {
	return m.dispatch(m.ctrl.BeginRefresh(m.ctx))
}

// dispatch wraps a task as a command; the task runs off the event loop.
func (m Model) dispatch(task controller.Task) tea.Cmd {
	return func() tea.Msg {
		return resultMsg{result: task()}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-lipgloss.Height(m.header())-lipgloss.Height(m.footer()), 3)
		m.search.Width = max(msg.Width-4, 10)
		m.syncContent()
		return m, nil

	case resultMsg:
		m.ctrl.Apply(msg.result)
		if msg.result.Err != nil {
			m.logger.WithError(msg.result.Err).Warn("Background operation failed",
				logging.F(logging.FieldOperation, msg.result.Op))
		}
		var cmd tea.Cmd
		if msg.result.Mutated {
			cmd = m.reloadActiveReport()
		}
		m.syncContent()
		return m, cmd

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch, modeAmount:
			return m.updateSearch(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, m.header(), m.viewport.View(), m.footer())
}

func (m Model) header() string {
	tabs := controller.Tabs()
	names := make([]string, len(tabs))
	for i, t := range tabs {
		names[i] = string(t)
	}
	return m.renderer.Tabs(names, string(m.ctrl.ActiveTab()))
}

func (m Model) footer() string {
	vm := m.ctrl.View()
	lines := make([]string, 0, 4)

	switch m.mode {
	case modeSearch, modeAmount:
		lines = append(lines, m.search.View())
	case modeConfirm:
		lines = append(lines, m.renderer.Styles.Error.Render(m.confirm.prompt+" [enter to confirm, any key to cancel]"))
	}

	if vm.ActiveTab == controller.TabTransactions {
		info := fmt.Sprintf("%d of %d · %s", vm.Visible, vm.Total, vm.CriteriaSummary)
		if bar := m.renderer.SelectionBar(vm.SelectedCount, vm.SelectedTotal); bar != "" {
			info += "  " + bar
		}
		lines = append(lines, m.renderer.Styles.Subtle.Render(info))
	}
	if status := m.renderer.StatusLine(vm.LastError, vm.Status, vm.Busy); status != "" {
		lines = append(lines, status)
	}
	lines = append(lines, m.renderer.Styles.Subtle.Render(helpFor(vm.ActiveTab)))
	return strings.Join(lines, "\n")
}

// syncContent re-renders the active tab into the viewport and keeps the cursor in range.
func (m *Model) syncContent() {
	vm := m.ctrl.View()

	m.rows = make([]models.Transaction, 0, vm.Visible)
	for _, g := range vm.Groups {
		m.rows = append(m.rows, g.Transactions...)
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	var content string
	switch vm.ActiveTab {
	case controller.TabStatistics:
		content = m.statisticsView(vm)
	case controller.TabDuplicates:
		if vm.Duplicates == nil {
			content = m.renderer.Styles.Subtle.Render("Loading duplicates…")
		} else {
			content = m.renderer.Duplicates(*vm.Duplicates)
		}
	case controller.TabCategories:
		content = m.renderer.Categories(vm.Categories, render.CategoryUsage(m.ctrl.Filtered()))
	default:
		content = m.renderer.TransactionTables(vm.Groups, render.TableOptions{
			Sorts:         vm.Sorts,
			Selected:      vm.Selected,
			CursorID:      m.cursorID(),
			ShowSelection: true,
		})
	}
	m.viewport.SetContent(content)
}

func (m Model) statisticsView(vm controller.ViewModel) string {
	if vm.Statistics == nil {
		return m.renderer.Styles.Subtle.Render("Loading statistics…")
	}
	stats := *vm.Statistics
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderer.Styles.Subtle.Render("Period: "+m.statsPeriod()),
		m.renderer.Summary(stats),
		m.renderer.CategoryBreakdown(render.CategoryDataset(stats)),
		m.renderer.MonthlyTrend(stats.MonthlyTrend),
	)
}

func (m Model) cursorID() int {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return 0
	}
	return m.rows[m.cursor].ID
}
