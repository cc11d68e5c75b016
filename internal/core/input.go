package core

// Action represents a semantic input action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionJump           // Space, W, Up - jump, fast-fall, resume
	ActionUp             // menu navigation
	ActionDown           // menu navigation
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B - go back to menu
	ActionRestart        // R - start a fresh run
	ActionQuit           // Q, Esc, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame holds the discrete press events delivered to one host frame,
// in arrival order. Every press appears exactly once.
type InputFrame struct {
	Actions []Action
}

// Count returns how many times the action was pressed in this frame.
func (f InputFrame) Count(a Action) int {
	n := 0
	for _, got := range f.Actions {
		if got == a {
			n++
		}
	}
	return n
}

// Has returns true if the action was pressed at least once in this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Count(a) > 0
}

// InputQueue collects press events between host frames.
// It is edge-triggered: each Push is one press, and Drain hands every queued
// press over exactly once.
type InputQueue struct {
	pending []Action
}

// Push records a single press.
func (q *InputQueue) Push(a Action) {
	if a == ActionNone {
		return
	}
	q.pending = append(q.pending, a)
}

// Len returns the number of queued presses.
func (q *InputQueue) Len() int {
	return len(q.pending)
}

// Drain returns all queued presses and empties the queue.
func (q *InputQueue) Drain() InputFrame {
	frame := InputFrame{Actions: q.pending}
	q.pending = nil
	return frame
}
