package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/rooftops/internal/core"
	"github.com/vovakirdan/rooftops/internal/registry"
)

// MenuModel is the Bubble Tea model for the variant picker.
type MenuModel struct {
	items     []registry.GameInfo
	table     table.Model
	help      help.Model
	keyMapper *KeyMapper
	config    core.RuntimeConfig
	status    string // Error from the previous run, if any
	quitting  bool
	selected  *registry.GameInfo
}

// NewMenuModel creates a menu listing every registered variant.
func NewMenuModel(cfg core.RuntimeConfig) MenuModel {
	items := registry.List()

	m := MenuModel{
		items:     items,
		help:      help.New(),
		keyMapper: NewKeyMapper(),
		config:    cfg,
	}
	m.table = m.createTable()
	return m
}

// createTable builds the variant table.
func (m *MenuModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Variant", Width: 16},
		{Title: "Title", Width: 24},
	}

	rows := make([]table.Row, 0, len(m.items))
	for _, it := range m.items {
		rows = append(rows, table.Row{it.ID, it.Title})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(core.Max(len(rows)+1, 2)),
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

// WithStatus returns a copy of the menu showing msg under the title.
func (m MenuModel) WithStatus(msg string) MenuModel {
	m.status = msg
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapMenuKey(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionUp:
		m.table.MoveUp(1)

	case core.ActionDown:
		m.table.MoveDown(1)

	case core.ActionConfirm:
		if len(m.items) > 0 {
			selected := m.items[m.table.Cursor()]
			m.selected = &selected
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("R O O F T O P S"), m.config.ScreenW))
	b.WriteString("\n\n")

	if m.status != "" {
		b.WriteString(centerText(errorStyle.Render(m.status), m.config.ScreenW))
		b.WriteString("\n\n")
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())
	b.WriteString(lipgloss.PlaceHorizontal(m.config.ScreenW, lipgloss.Center, box))
	b.WriteString("\n\n")

	b.WriteString(centerText(statusStyle.Render(m.help.ShortHelpView(m.keyMapper.Keys().MenuHelp())), m.config.ScreenW))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected variant, or nil if none selected.
func (m MenuModel) Selected() *registry.GameInfo {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID string
	Config core.RuntimeConfig
	Quit   bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig, status string) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(cfg).WithStatus(status),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.IsQuitting() || m.Selected() == nil {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	return MenuResult{
		GameID: m.Selected().ID,
		Config: m.Config(),
	}, nil
}
