package tui

import (
	"fmt"
	"strconv"
	"strings"

	"expense-view/internal/api"
	"expense-view/internal/controller"
	"expense-view/internal/dateutils"
	"expense-view/internal/filter"
	"expense-view/internal/models"
	"expense-view/internal/view"

	tea "github.com/charmbracelet/bubbletea"
)

var statisticsPeriods = []string{
	dateutils.PeriodMonth,
	dateutils.PeriodLast3Months,
	dateutils.PeriodLast12Months,
	dateutils.PeriodYear,
	dateutils.PeriodAll,
}

func helpFor(tab controller.Tab) string {
	switch tab {
	case controller.TabStatistics:
		return "p period · r refresh · tab next · q quit"
	case controller.TabDuplicates:
		return "X remove duplicates · r refresh · tab next · q quit"
	case controller.TabCategories:
		return "r refresh · tab next · q quit"
	default:
		return "/ search · y year · g category · t type · e essential · m amount · 1-6 sort · space select · a all · c clear · E/O mark · D delete · r refresh · q quit"
	}
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab":
		cmd = m.switchTab(1)
	case "shift+tab":
		cmd = m.switchTab(-1)
	case "f1", "f2", "f3", "f4":
		idx, _ := strconv.Atoi(msg.String()[1:])
		cmd = m.openTab(controller.Tabs()[idx-1])
	case "r":
		cmd = m.refresh()
	case "x":
		m.ctrl.DismissError()
	default:
		switch m.ctrl.ActiveTab() {
		case controller.TabTransactions:
			return m.updateTransactions(msg)
		case controller.TabStatistics:
			if msg.String() == "p" {
				q := api.StatisticsQuery{Period: next(statisticsPeriods, m.statsPeriod(), false)}
				m.ctrl.SetStatisticsQuery(q)
				cmd = m.dispatch(m.ctrl.BeginStatistics(m.ctx))
			}
		case controller.TabDuplicates:
			if msg.String() == "X" {
				m.askRemoveDuplicates()
			}
		}
		if cmd == nil {
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			cmd = vpCmd
		}
	}

	m.syncContent()
	return m, cmd
}

func (m Model) updateTransactions(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	criteria := m.ctrl.Criteria()

	switch key := msg.String(); key {
	case "j", "down":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "/":
		cmd = m.prompt(modeSearch, "/ ", "search descriptions", criteria.Search)
	case "m":
		cmd = m.prompt(modeAmount, "amount ", "min-max, e.g. 10-250, 50- or -20", formatAmountRange(criteria.MinAmount, criteria.MaxAmount))
	case "g":
		criteria.Category = next(categoryNames(m.ctrl.View().Categories), criteria.Category, true)
		m.ctrl.SetCriteria(criteria)
	case "y":
		criteria.Year = next(m.ctrl.View().Years, criteria.Year, true)
		m.ctrl.SetCriteria(criteria)
	case "t":
		criteria.Type = next([]string{models.TypeExpense, models.TypeIncome}, criteria.Type, true)
		m.ctrl.SetCriteria(criteria)
	case "e":
		criteria.Essential = next([]string{filter.EssentialOnly, filter.OptionalOnly}, criteria.Essential, true)
		m.ctrl.SetCriteria(criteria)
	case "1", "2", "3", "4", "5", "6":
		if m.cursorID() != 0 {
			idx, _ := strconv.Atoi(key)
			m.ctrl.ToggleSort(m.rows[m.cursor].MonthKey(), view.Columns()[idx-1])
		}
	case "0":
		if m.cursorID() != 0 {
			m.ctrl.ClearSort(m.rows[m.cursor].MonthKey())
		}
	case " ":
		if id := m.cursorID(); id != 0 {
			m.ctrl.FlipSelection(id)
		}
	case "a":
		m.ctrl.SelectVisible()
	case "c":
		m.ctrl.ClearSelection()
	case "E":
		cmd = m.dispatch(m.ctrl.BeginBulkEssentialSelected(m.ctx, true))
	case "O":
		cmd = m.dispatch(m.ctrl.BeginBulkEssentialSelected(m.ctx, false))
	case "D":
		m.askDeleteSelected()
	case "d":
		m.askDeleteCursor()
	default:
		var vpCmd tea.Cmd
		m.viewport, vpCmd = m.viewport.Update(msg)
		cmd = vpCmd
	}

	m.syncContent()
	m.followCursor()
	return m, cmd
}

// prompt opens the footer text input for a filter value.
func (m *Model) prompt(md mode, label, placeholder, value string) tea.Cmd {
	m.mode = md
	m.search.Prompt = label
	m.search.Placeholder = placeholder
	m.search.SetValue(value)
	m.search.CursorEnd()
	return m.search.Focus()
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		criteria := m.ctrl.Criteria()
		if m.mode == modeAmount {
			criteria.MinAmount, criteria.MaxAmount = parseAmountRange(m.search.Value())
		} else {
			criteria.Search = m.search.Value()
		}
		m.ctrl.SetCriteria(criteria)
		m.leaveSearch()
		m.cursor = 0
		m.syncContent()
		return m, nil
	case "esc":
		m.leaveSearch()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *Model) leaveSearch() {
	m.mode = modeBrowse
	m.search.Blur()
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pending := m.confirm
	m.confirm = nil
	m.mode = modeBrowse
	if msg.String() != "enter" || pending == nil {
		return m, nil
	}
	cmd := m.dispatch(pending.task())
	m.syncContent()
	return m, cmd
}

func (m *Model) ask(prompt string, task func() controller.Task) {
	m.confirm = &confirmation{prompt: prompt, task: task}
	m.mode = modeConfirm
}

func (m *Model) askDeleteSelected() {
	count := m.ctrl.View().SelectedCount
	if count == 0 {
		return
	}
	m.ask(fmt.Sprintf("Delete %d selected transaction(s)?", count), func() controller.Task {
		return m.ctrl.BeginDeleteSelected(m.ctx)
	})
}

func (m *Model) askDeleteCursor() {
	id := m.cursorID()
	if id == 0 {
		return
	}
	tx := m.rows[m.cursor]
	m.ask(fmt.Sprintf("Delete transaction #%d %q?", id, tx.Description), func() controller.Task {
		return m.ctrl.BeginDelete(m.ctx, id)
	})
}

func (m *Model) askRemoveDuplicates() {
	vm := m.ctrl.View()
	if vm.Duplicates == nil {
		return
	}
	ids := vm.Duplicates.RedundantIDs()
	if len(ids) == 0 {
		return
	}
	m.ask(fmt.Sprintf("Remove %d duplicate transaction(s)?", len(ids)), func() controller.Task {
		return m.ctrl.BeginRemoveDuplicates(m.ctx, ids)
	})
}

func (m *Model) switchTab(step int) tea.Cmd {
	tabs := controller.Tabs()
	current := 0
	for i, t := range tabs {
		if t == m.ctrl.ActiveTab() {
			current = i
		}
	}
	return m.openTab(tabs[(current+step+len(tabs))%len(tabs)])
}

// openTab activates a tab and loads its data the first time it is shown.
func (m *Model) openTab(tab controller.Tab) tea.Cmd {
	m.ctrl.SetActiveTab(tab)
	m.viewport.GotoTop()
	return m.reloadActiveReport()
}

// reloadActiveReport fetches the report of the active tab when none is loaded,
// e.g. after a change dropped it.
func (m *Model) reloadActiveReport() tea.Cmd {
	vm := m.ctrl.View()
	switch {
	case vm.ActiveTab == controller.TabStatistics && vm.Statistics == nil:
		return m.dispatch(m.ctrl.BeginStatistics(m.ctx))
	case vm.ActiveTab == controller.TabDuplicates && vm.Duplicates == nil:
		return m.dispatch(m.ctrl.BeginDuplicates(m.ctx))
	}
	return nil
}

func (m *Model) refresh() tea.Cmd {
	switch m.ctrl.ActiveTab() {
	case controller.TabStatistics:
		return tea.Batch(m.dispatch(m.ctrl.BeginRefresh(m.ctx)), m.dispatch(m.ctrl.BeginStatistics(m.ctx)))
	case controller.TabDuplicates:
		return tea.Batch(m.dispatch(m.ctrl.BeginRefresh(m.ctx)), m.dispatch(m.ctrl.BeginDuplicates(m.ctx)))
	default:
		return m.dispatch(m.ctrl.BeginRefresh(m.ctx))
	}
}

func (m Model) statsPeriod() string {
	if p := m.ctrl.View().StatsQuery.Period; p != "" {
		return p
	}
	return dateutils.PeriodMonth
}

// followCursor scrolls the viewport so the cursor row stays visible. Each
// table row is one line; headings and borders are approximated per group.
func (m *Model) followCursor() {
	line := 0
	seen := 0
	for _, g := range m.ctrl.View().Groups {
		line += 4 // heading, top border, header, separator
		if m.cursor < seen+len(g.Transactions) {
			line += m.cursor - seen
			break
		}
		seen += len(g.Transactions)
		line += len(g.Transactions) + 1
	}
	switch {
	case line < m.viewport.YOffset:
		m.viewport.SetYOffset(line)
	case line >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}

// categoryNames lists the category filter values: every known category, then Uncategorized.
func categoryNames(cats []models.Category) []string {
	names := make([]string, 0, len(cats)+1)
	for _, c := range cats {
		if c.Name != "" && c.Name != models.Uncategorized {
			names = append(names, c.Name)
		}
	}
	return append(names, models.Uncategorized)
}

// parseAmountRange splits "min-max" into its bounds. Either side may be
// omitted ("50-", "-20") and a single number is a lower bound.
func parseAmountRange(input string) (minAmount, maxAmount string) {
	input = strings.TrimSpace(input)
	lo, hi, found := strings.Cut(input, "-")
	if !found {
		return input, ""
	}
	return strings.TrimSpace(lo), strings.TrimSpace(hi)
}

func formatAmountRange(minAmount, maxAmount string) string {
	if minAmount == "" && maxAmount == "" {
		return ""
	}
	return minAmount + "-" + maxAmount
}

// next cycles through values. With wrapEmpty the cycle passes through "" (unset).
func next(values []string, current string, wrapEmpty bool) string {
	if len(values) == 0 {
		return ""
	}
	for i, v := range values {
		if v != current {
			continue
		}
		if i+1 < len(values) {
			return values[i+1]
		}
		if wrapEmpty {
			return ""
		}
		return values[0]
	}
	return values[0]
}
