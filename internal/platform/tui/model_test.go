package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/rooftops/internal/core"
	"github.com/vovakirdan/rooftops/internal/heartbeat"
	"github.com/vovakirdan/rooftops/internal/registry"
)

type recordingGame struct {
	frames   []core.InputFrame
	elapsed  []time.Duration
	state    core.GameState
	endAfter int
	resets   int
}

func (g *recordingGame) ID() string    { return "recording" }
func (g *recordingGame) Title() string { return "Recording" }

func (g *recordingGame) Reset(core.RuntimeConfig) error {
	g.resets++
	return nil
}

func (g *recordingGame) Step(in core.InputFrame, elapsed time.Duration) core.StepResult {
	g.frames = append(g.frames, in)
	g.elapsed = append(g.elapsed, elapsed)
	if g.endAfter > 0 && len(g.frames) >= g.endAfter {
		g.state = core.GameState{GameOver: true, Status: "ended"}
	}
	return core.StepResult{State: g.state, Ticks: 1}
}

func (g *recordingGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "frames")
}

func (g *recordingGame) State() core.GameState { return g.state }

func init() {
	registry.Register("recording", func() registry.Game { return &recordingGame{} })
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 12, FrameRate: 60}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	got, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, expected Model", next)
	}
	return got, cmd
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionJump, false},
		{"w", keyRune('w'), core.ActionJump, false},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump, false},
		{"restart", keyRune('r'), core.ActionRestart, false},
		{"back", keyRune('b'), core.ActionBack, false},
		{"q", keyRune('q'), core.ActionQuit, true},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", keyRune('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey() = (%v, %v), expected (%v, %v)", action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapMenuKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{keyRune('k'), core.ActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown},
		{keyRune('j'), core.ActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{tea.KeyMsg{Type: tea.KeySpace}, core.ActionConfirm},
		{keyRune('q'), core.ActionQuit},
		{keyRune('x'), core.ActionNone},
	}

	for _, tt := range tests {
		if got := km.MapMenuKey(tt.msg); got != tt.action {
			t.Errorf("MapMenuKey(%q) = %v, expected %v", tt.msg.String(), got, tt.action)
		}
	}
}

func TestMapKeyToQueueSkipsUnbound(t *testing.T) {
	km := NewKeyMapper()
	var q core.InputQueue

	km.MapKeyToQueue(keyRune('z'), &q)
	km.MapKeyToQueue(tea.KeyMsg{Type: tea.KeySpace}, &q)
	if quit := km.MapKeyToQueue(keyRune('q'), &q); !quit {
		t.Error("MapKeyToQueue(q) = false, expected true")
	}

	if q.Len() != 1 {
		t.Errorf("queue length = %d, expected 1", q.Len())
	}
}

func TestFrameClock(t *testing.T) {
	var c frameClock
	start := time.Unix(100, 0)

	if got := c.elapsed(start); got != 0 {
		t.Errorf("first elapsed() = %v, expected 0", got)
	}
	if got := c.elapsed(start.Add(16 * time.Millisecond)); got != 16*time.Millisecond {
		t.Errorf("elapsed() = %v, expected 16ms", got)
	}
	if got := c.elapsed(start); got != 0 {
		t.Errorf("backwards elapsed() = %v, expected 0", got)
	}
}

func TestModelDeliversEachPressOnce(t *testing.T) {
	game := &recordingGame{}
	m := NewModel(game, testConfig(), nil)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m, _ = update(t, m, keyRune('r'))

	now := time.Unix(200, 0)
	m, cmd := update(t, m, TickMsg(now))
	if cmd == nil {
		t.Error("tick should schedule the next frame")
	}
	m, _ = update(t, m, TickMsg(now.Add(20*time.Millisecond)))

	if len(game.frames) != 2 {
		t.Fatalf("Step calls = %d, expected 2", len(game.frames))
	}
	if got := game.frames[0].Count(core.ActionJump); got != 2 {
		t.Errorf("first frame jumps = %d, expected 2", got)
	}
	if !game.frames[0].Has(core.ActionRestart) {
		t.Error("first frame should carry the restart press")
	}
	if got := len(game.frames[1].Actions); got != 0 {
		t.Errorf("second frame presses = %d, expected 0", got)
	}
	if game.elapsed[1] != 20*time.Millisecond {
		t.Errorf("second frame elapsed = %v, expected 20ms", game.elapsed[1])
	}
	if m.IsQuitting() {
		t.Error("model should still be running")
	}
}

func TestModelQuitKey(t *testing.T) {
	m := NewModel(&recordingGame{}, testConfig(), nil)
	m, cmd := update(t, m, keyRune('q'))

	if !m.IsQuitting() {
		t.Error("IsQuitting() = false after q")
	}
	if cmd == nil {
		t.Error("q should return tea.Quit")
	}
	if m.View() != "" {
		t.Error("View() should be empty once quitting")
	}
}

func TestModelQuitsWhenGameEnds(t *testing.T) {
	game := &recordingGame{endAfter: 1}
	m := NewModel(game, testConfig(), nil)

	m, _ = update(t, m, TickMsg(time.Unix(300, 0)))
	if !m.GameState().GameOver {
		t.Error("GameState().GameOver = false, expected true")
	}
	if !m.IsQuitting() {
		t.Error("model should quit when the run ends")
	}
}

func TestModelBackOnlyWithMenu(t *testing.T) {
	game := &recordingGame{}
	plain := NewModel(game, testConfig(), nil)
	plain, _ = update(t, plain, keyRune('b'))
	plain, _ = update(t, plain, TickMsg(time.Unix(400, 0)))
	if plain.BackToMenu() {
		t.Error("BackToMenu() = true without an enclosing menu")
	}

	menued := NewModel(game, testConfig(), nil).withMenu()
	menued, _ = update(t, menued, keyRune('b'))
	steps := len(game.frames)
	menued, _ = update(t, menued, TickMsg(time.Unix(401, 0)))
	if !menued.BackToMenu() {
		t.Error("BackToMenu() = false, expected true")
	}
	if len(game.frames) != steps {
		t.Error("back frame should not step the game")
	}
}

func TestModelResizeKeepsRunning(t *testing.T) {
	game := &recordingGame{}
	m := NewModel(game, testConfig(), nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})

	if m.screen.Width() != 60 || m.screen.Height() != 19 {
		t.Errorf("screen = %dx%d, expected 60x19", m.screen.Width(), m.screen.Height())
	}
	if game.resets != 0 {
		t.Errorf("resize reset the game %d times", game.resets)
	}
}

func TestModelShowsHeartbeat(t *testing.T) {
	events := make(chan heartbeat.Event, 1)
	m := NewModel(&recordingGame{}, testConfig(), events)

	ev := heartbeat.Event{Kind: heartbeat.EventPong, Uptime: 12500 * time.Millisecond, RTT: 3 * time.Millisecond}
	m, cmd := update(t, m, heartbeatMsg(ev))
	if cmd == nil {
		t.Error("heartbeat update should resubscribe")
	}

	view := m.View()
	if !strings.Contains(view, "hb: up 12.5s") {
		t.Errorf("View() missing heartbeat status:\n%s", view)
	}
	if !strings.Contains(view, "frames") {
		t.Errorf("View() missing game output:\n%s", view)
	}
}

func TestMenuSelectsVariant(t *testing.T) {
	m := NewMenuModel(testConfig())
	idx := -1
	for i, it := range m.items {
		if it.ID == "recording" {
			idx = i
		}
	}
	if idx < 0 {
		t.Fatal("recording variant missing from menu")
	}
	for range idx {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = next.(MenuModel)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if m.Selected() == nil || m.Selected().ID != "recording" {
		t.Fatalf("Selected() = %v, expected recording", m.Selected())
	}
	if cmd == nil {
		t.Error("selection should quit the menu program")
	}
}

func TestMenuStatusShown(t *testing.T) {
	m := NewMenuModel(testConfig()).WithStatus("bad config")
	if !strings.Contains(m.View(), "bad config") {
		t.Error("View() should show the status line")
	}
}

func TestSessionModelStartsAndReturns(t *testing.T) {
	s := NewSessionModel(testConfig(), nil)
	for i, it := range s.menu.items {
		if it.ID == "recording" {
			for range i {
				next, _ := s.Update(tea.KeyMsg{Type: tea.KeyDown})
				s = next.(SessionModel)
			}
		}
	}

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = next.(SessionModel)
	if !s.inGame {
		t.Fatal("session should be in game after selection")
	}

	next, _ = s.Update(keyRune('b'))
	s = next.(SessionModel)
	next, _ = s.Update(TickMsg(time.Unix(500, 0)))
	s = next.(SessionModel)
	if s.inGame {
		t.Error("back should return to the menu")
	}
	if s.quitting {
		t.Error("session should keep running in the menu")
	}
}

func TestWaitForHeartbeatStopsOnClosedSubscription(t *testing.T) {
	if cmd := waitForHeartbeat(nil); cmd != nil {
		t.Error("waitForHeartbeat(nil) should not subscribe")
	}

	events := make(chan heartbeat.Event, 1)
	cmd := waitForHeartbeat(events)
	events <- heartbeat.Event{Kind: heartbeat.EventPong, Uptime: time.Second}
	if msg, ok := cmd().(heartbeatMsg); !ok || msg.Uptime != time.Second {
		t.Errorf("cmd() = %v, expected the queued event", msg)
	}

	// An ended run closes its subscription; the parked reader must return
	// without consuming anything.
	close(events)
	if msg := waitForHeartbeat(events)(); msg != nil {
		t.Errorf("cmd() on closed channel = %v, expected nil", msg)
	}
}
