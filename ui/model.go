package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	btable "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/lepinkainen/csvview/store"
	tbl "github.com/lepinkainen/csvview/table"
)

const (
	sidebarWidth = 24
	minColWidth  = 8
)

// Model is the interactive viewer: a data grid, a parse progress bar
// and a filter sidebar, all fed by the parsing engine. The engine,
// store and handler are injected so tests can drive the model without
// a terminal.
type Model struct {
	path    string
	engine  *tbl.Engine
	handler *store.Handler

	state   store.State
	run     uuid.UUID
	haveRun bool

	grid        btable.Model
	prog        progress.Model
	selectedCol int

	width    int
	height   int
	showHelp bool
	quitting bool
}

// NewModel wires the viewer together.
func NewModel(path string, engine *tbl.Engine, handler *store.Handler) Model {
	grid := btable.New(btable.WithFocused(true))
	styles := btable.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(lipgloss.Color("86"))
	styles.Selected = SelectedStyle
	grid.SetStyles(styles)

	return Model{
		path:    path,
		engine:  engine,
		handler: handler,
		grid:    grid,
		prog:    progress.New(progress.WithDefaultGradient()),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return waitForEngine(m.engine.Messages())
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.grid.SetHeight(max(3, msg.Height-9))
		m.setColumns(m.state.Header)

	case EngineMsg:
		m.consume(msg.Envelope)
		return m, waitForEngine(m.engine.Messages())

	case EngineClosedMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "?":
		m.showHelp = !m.showHelp

	case "h":
		meta := m.handler.Meta()
		if meta.HeaderToggleDisabled {
			return m, nil
		}
		on := !meta.HasHeader
		m.handler.SetHasHeader(on)
		m.grid.SetRows(nil)
		m.engine.SetHeader(on)

	case "s":
		if name := m.selectedColumnName(); name != "" {
			m.engine.RequestSum(name)
		}

	case "f":
		if name := m.selectedColumnName(); name != "" {
			m.engine.AddFilter(name)
		}

	case "left":
		if m.selectedCol > 0 {
			m.selectedCol--
			m.setColumns(m.state.Header)
		}

	case "right":
		if m.selectedCol < len(m.state.Header)-1 {
			m.selectedCol++
			m.setColumns(m.state.Header)
		}

	default:
		var cmd tea.Cmd
		m.grid, cmd = m.grid.Update(msg)
		return m, cmd
	}

	return m, nil
}

// consume folds one engine envelope through the boundary handler and
// refreshes the widgets that depend on it. A new run ID means the
// engine reparsed; everything accumulated from the old run is stale.
func (m *Model) consume(env tbl.Envelope) {
	if m.haveRun && env.RunID != m.run {
		m.grid.SetRows(nil)
		m.handler.Reset()
	}
	m.run, m.haveRun = env.RunID, true

	m.handler.Handle(env.Payload)
	m.state = m.handler.State()

	switch env.Payload.(type) {
	case store.HeaderMsg:
		m.setColumns(m.state.Header)
	case store.ChunkMsg:
		rows := m.grid.Rows()
		for _, r := range m.state.Chunk {
			rows = append(rows, btable.Row(padRow(r, len(m.state.Header))))
		}
		m.grid.SetRows(rows)
	}
}

func (m *Model) setColumns(names []string) {
	if len(names) == 0 {
		return
	}
	if m.selectedCol >= len(names) {
		m.selectedCol = len(names) - 1
	}

	avail := m.width - sidebarWidth - 4
	w := minColWidth
	if n := len(names); n > 0 && avail/n > w {
		w = avail / n
	}

	cols := make([]btable.Column, len(names))
	for i, name := range names {
		title := name
		if i == m.selectedCol {
			title = "▸" + name
		}
		cols[i] = btable.Column{Title: title, Width: w}
	}
	m.grid.SetColumns(cols)
}

func (m Model) selectedColumnName() string {
	if m.selectedCol < len(m.state.Header) {
		return m.state.Header[m.selectedCol]
	}
	return ""
}

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	header := HeaderStyle.Render(fmt.Sprintf("csvview — %s", m.path))

	status := m.renderStatus()
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), m.grid.View())

	footer := "Controls: [←/→] column  [s] sum  [f] filter  [h] header  [?] help  [q] quit"
	if m.showHelp {
		footer = m.renderHelp()
	}

	return strings.Join([]string{header, status, body, footer}, "\n")
}

func (m Model) renderStatus() string {
	st := m.handler.Status()
	switch st {
	case store.StatusLoading:
		return fmt.Sprintf("%s %s", ProcessingStyle.Render("Parsing"),
			m.prog.ViewAs(m.state.Progress/100))
	case store.StatusReady:
		line := SuccessStyle.Render("Ready")
		if m.state.Result != "" {
			line += InfoStyle.Render(fmt.Sprintf("  sum = %s", m.state.Result))
		}
		return line
	case store.StatusFailed:
		return ErrorStyle.Render("Failed — see log")
	default:
		return InfoStyle.Render("Empty")
	}
}

func (m Model) renderSidebar() string {
	meta := m.handler.Meta()

	var b strings.Builder
	b.WriteString(InfoStyle.Render("Filters"))
	b.WriteString("\n")
	if len(m.state.Names) == 0 {
		b.WriteString("  (none)\n")
	}
	for i, name := range m.state.Names {
		if i == meta.SelectedID-1 {
			b.WriteString(SelectedStyle.Render("  " + name))
		} else {
			b.WriteString("  " + name)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if meta.HasHeader {
		b.WriteString("Header: on\n")
	} else {
		b.WriteString("Header: off\n")
	}

	return SidebarStyle.Width(sidebarWidth).Render(b.String())
}

func (m Model) renderHelp() string {
	help := []string{
		"",
		"Navigation:",
		"  ↑/↓ or j/k   Scroll rows",
		"  ←/→          Select column",
		"",
		"Actions:",
		"  s            Sum the selected column",
		"  f            Add the selected column as a filter",
		"  h            Toggle header row (when parse is done)",
		"  ?            Toggle this help",
		"  q            Quit",
		"",
	}
	return strings.Join(help, "\n")
}

func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}
