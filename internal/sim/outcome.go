package sim

import "fmt"

// SessionState is the overall mode of a game session.
type SessionState uint8

const (
	StateRunning SessionState = iota
	StatePaused                // Waiting for a press to resume
	StateEnded                 // Terminal; the host should stop
)

func (s SessionState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	default:
		return fmt.Sprintf("SessionState(%d)", uint8(s))
	}
}

// LossPolicy selects what a lost session turns into.
type LossPolicy uint8

const (
	PolicyPause LossPolicy = iota // Pause and wait for a resume press
	PolicyExit                    // End the session for good
)

func (p LossPolicy) String() string {
	if p == PolicyExit {
		return "exit"
	}
	return "pause"
}

// target returns the state a lost session moves to.
func (p LossPolicy) target() SessionState {
	if p == PolicyExit {
		return StateEnded
	}
	return StatePaused
}

// EvaluateOutcome moves a running session out of Running on a left hit.
// It returns the new state and whether a transition happened. Velocity is
// not considered. Non-running sessions are returned unchanged.
func EvaluateOutcome(state SessionState, c Collision, policy LossPolicy) (SessionState, bool) {
	if state != StateRunning || c.Side != SideLeft {
		return state, false
	}
	return policy.target(), true
}
