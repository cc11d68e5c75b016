package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/rooftops/internal/core"
	"github.com/vovakirdan/rooftops/internal/heartbeat"
	"github.com/vovakirdan/rooftops/internal/registry"
)

// heartbeatMsg carries one heartbeat status update into the update loop.
type heartbeatMsg heartbeat.Event

// waitForHeartbeat blocks on the next heartbeat event.
// A nil or closed channel stops the subscription.
func waitForHeartbeat(events <-chan heartbeat.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return heartbeatMsg(ev)
	}
}

// HeartbeatSource hands out heartbeat subscriptions, one per program run.
type HeartbeatSource interface {
	Subscribe() (<-chan heartbeat.Event, func())
}

// Model is the Bubble Tea model for running one rooftops variant.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	config    core.RuntimeConfig
	queue     *core.InputQueue
	clock     *frameClock
	gameState core.GameState
	keyMapper *KeyMapper
	help      help.Model
	events    <-chan heartbeat.Event
	hbStatus  string
	quitting  bool
	allowBack bool
	back      bool
}

// NewModel creates a model for a game that has already been Reset.
// events may be nil when no heartbeat client runs.
func NewModel(game registry.Game, cfg core.RuntimeConfig, events <-chan heartbeat.Event) Model {
	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, playfieldHeight(cfg.ScreenH)),
		config:    cfg,
		queue:     &core.InputQueue{},
		clock:     &frameClock{},
		gameState: game.State(),
		keyMapper: NewKeyMapper(),
		help:      h,
		events:    events,
	}
}

// withMenu lets the back key return control to an enclosing menu.
func (m Model) withMenu() Model {
	m.allowBack = true
	return m
}

// playfieldHeight leaves one row for the help footer.
func playfieldHeight(h int) int {
	return core.Max(h-1, 1)
}

// Init starts the frame loop and the heartbeat subscription.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.config.FrameRate), waitForHeartbeat(m.events))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case heartbeatMsg:
		m.hbStatus = heartbeat.Event(msg).String()
		return m, waitForHeartbeat(m.events)
	}

	return m, nil
}

// handleKey queues presses; they reach the game on the next frame.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToQueue(msg, m.queue) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize adapts the screen buffer. The simulation works in world
// units, so the session keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playfieldHeight(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick feeds the frame's presses and elapsed time to the game.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	frame := m.queue.Drain()

	if m.allowBack && frame.Has(core.ActionBack) {
		m.back = true
		return m, nil
	}

	result := m.game.Step(frame, m.clock.elapsed(now))
	m.gameState = result.State

	if m.gameState.GameOver {
		m.quitting = true
		return m, tea.Quit
	}

	return m, tickCmd(m.config.FrameRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".rooftops", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.hbStatus != "" {
		m.screen.DrawTextColored(1, m.screen.Height()-1, " "+m.hbStatus+" ", core.ColorGray)
	}

	return RenderScreen(m.screen) + "\n" + m.help.ShortHelpView(m.keyMapper.Keys().ShortHelp())
}

// GameState returns the last state reported by the game.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// IsQuitting returns true if the user quit or the session ended.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.back
}

// Run resets the game, then runs it until the user quits or the session ends.
// hb may be nil. The subscription ends with the run, which releases the
// reader the program leaves behind.
func Run(game registry.Game, cfg core.RuntimeConfig, hb HeartbeatSource) error {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := game.Reset(cfg); err != nil {
		return err
	}

	var events <-chan heartbeat.Event
	if hb != nil {
		ch, unsubscribe := hb.Subscribe()
		defer unsubscribe()
		events = ch
	}

	p := tea.NewProgram(
		NewModel(game, cfg, events),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
