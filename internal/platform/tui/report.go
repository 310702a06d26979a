package tui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/touch-arcade/internal/catalog"
	"github.com/vovakirdan/touch-arcade/internal/compat"
	"github.com/vovakirdan/touch-arcade/internal/device"
)

// Report browser layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show preset list sidebar
	sidebarWidth       = 22 // Width of preset list sidebar
)

// ReportKeyMap defines the key bindings for the report browser.
type ReportKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	NextPreset key.Binding
	PrevPreset key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReportKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextPreset, k.PrevPreset, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ReportKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPreset, k.PrevPreset},
		{k.Back, k.Quit},
	}
}

// DefaultReportKeyMap returns default key bindings.
func DefaultReportKeyMap() ReportKeyMap {
	return ReportKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev device"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next device"),
		),
		NextPreset: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next device"),
		),
		PrevPreset: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev device"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReportModel is the Bubble Tea model for the report browser: one
// device preset at a time, a table of per-game compatibility results.
type ReportModel struct {
	reqs    *compat.Registry
	cat     *catalog.Catalog
	presets map[string]device.Snapshot
	names   []string // sorted preset names
	cursor  int      // selected preset index

	games   []string
	reports []compat.Report

	table       table.Model
	help        help.Model
	keys        ReportKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewReportModel creates a report browser over the given presets.
func NewReportModel(reqs *compat.Registry, cat *catalog.Catalog, presets map[string]device.Snapshot, width, height int) ReportModel {
	keys := DefaultReportKeyMap()
	h := help.New()
	h.ShowAll = false

	m := ReportModel{
		reqs:        reqs,
		cat:         cat,
		presets:     presets,
		names:       device.PresetNames(presets),
		games:       gameUnion(cat, reqs),
		keys:        keys,
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()

	if len(m.names) > 0 {
		m.loadReports(m.names[0])
	}

	return m
}

// gameUnion merges the catalog and requirements game lists.
func gameUnion(cat *catalog.Catalog, reqs *compat.Registry) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, id := range cat.Games() {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, id := range reqs.Games() {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// createTable creates a new table with appropriate columns.
func (m *ReportModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Game", Width: 14},
		{Title: "Score", Width: 6},
		{Title: "OK", Width: 4},
		{Title: "Worst issue", Width: 24},
	}

	tableWidth := m.width - 4
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}

	if extra := tableWidth - 54; extra > 0 {
		columns[3].Width += min(extra, 40)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadReports runs the checker for every game on the named preset.
func (m *ReportModel) loadReports(preset string) {
	snap := m.presets[preset]
	checker := compat.NewChecker(m.reqs, m.cat,
		func() device.Snapshot { return snap },
		compat.WithLogger(log.New(io.Discard)),
	)

	m.reports = m.reports[:0]
	for _, id := range m.games {
		m.reports = append(m.reports, checker.Check(id))
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the current reports.
func (m *ReportModel) updateTableRows() {
	rows := make([]table.Row, len(m.reports))
	for i, r := range m.reports {
		ok := "yes"
		if !r.Compatible {
			ok = "NO"
		}
		rows[i] = table.Row{
			r.GameID,
			fmt.Sprintf("%d", r.Score),
			ok,
			worstIssue(r),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// worstIssue returns the message of the most severe issue, or a dash.
func worstIssue(r compat.Report) string {
	if len(r.Issues) == 0 {
		return "-"
	}
	worst := r.Issues[0]
	for _, is := range r.Issues[1:] {
		if is.Severity > worst.Severity {
			worst = is
		}
	}
	return worst.Message
}

// Init initializes the report browser.
func (m ReportModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the report browser.
func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextPreset), key.Matches(msg, m.keys.Right):
			if len(m.names) > 0 {
				m.cursor = (m.cursor + 1) % len(m.names)
				m.loadReports(m.names[m.cursor])
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevPreset), key.Matches(msg, m.keys.Left):
			if len(m.names) > 0 {
				m.cursor--
				if m.cursor < 0 {
					m.cursor = len(m.names) - 1
				}
				m.loadReports(m.names[m.cursor])
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the report browser.
func (m ReportModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "COMPATIBILITY"
	if len(m.names) > 0 {
		title = fmt.Sprintf("COMPATIBILITY - %s", m.names[m.cursor])
	}

	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the browser with a device sidebar.
func (m ReportModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Devices\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, name := range m.names {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		maxLen := sidebarWidth - 6
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	sidebarRendered := sidebarStyle.Render(sidebar.String())

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	tableRendered := tableStyle.Render(m.renderTableContent())

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebarRendered, "  ", tableRendered)
}

// renderNarrowLayout renders device tabs above the table.
func (m ReportModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.names))
	for i, name := range m.names {
		short := name
		if len(short) > 12 {
			short = short[:11] + "."
		}
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(short)
		} else {
			tabs[i] = tabStyle.Render(" " + short + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if len(tabLine) > m.width-4 && len(m.names) > 0 {
		tabLine = fmt.Sprintf("< %s >", m.names[m.cursor])
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m ReportModel) renderTableContent() string {
	if len(m.reports) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No games configured.")
	}

	return m.table.View()
}

// centerText pads text to be horizontally centered in the given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// IsQuitting returns true if the user wants to quit entirely.
func (m ReportModel) IsQuitting() bool {
	return m.quitting
}

// RunReport runs the report browser.
// Returns true if the user backed out rather than quitting.
func RunReport(reqs *compat.Registry, cat *catalog.Catalog, presets map[string]device.Snapshot, width, height int) (goBack bool, err error) {
	model := NewReportModel(reqs, cat, presets, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ReportModel)
	if !ok {
		return false, nil
	}

	return m.goingBack, nil
}
