package core

import "testing"

func TestInputQueueDrainsOnce(t *testing.T) {
	var q InputQueue
	q.Push(ActionJump)
	q.Push(ActionNone) // ignored
	q.Push(ActionJump)
	q.Push(ActionRestart)

	if q.Len() != 3 {
		t.Fatalf("Len() = %d, expected 3", q.Len())
	}

	frame := q.Drain()
	if got := frame.Count(ActionJump); got != 2 {
		t.Errorf("Count(Jump) = %d, expected 2", got)
	}
	if !frame.Has(ActionRestart) {
		t.Error("frame should contain Restart")
	}

	// A second drain must not deliver the same presses again
	again := q.Drain()
	if len(again.Actions) != 0 {
		t.Errorf("second Drain() returned %v, expected empty", again.Actions)
	}
	if q.Len() != 0 {
		t.Errorf("Len() after Drain = %d, expected 0", q.Len())
	}
}

func TestInputQueuePushAfterDrain(t *testing.T) {
	var q InputQueue
	q.Push(ActionJump)
	first := q.Drain()
	q.Push(ActionJump)

	// Earlier frame must not be affected by later presses
	if first.Count(ActionJump) != 1 {
		t.Errorf("first frame Count(Jump) = %d, expected 1", first.Count(ActionJump))
	}
	if q.Drain().Count(ActionJump) != 1 {
		t.Error("second frame should hold exactly the later press")
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionJump:    "Jump",
		ActionQuit:    "Quit",
		ActionRestart: "Restart",
		Action(99):    "Unknown",
	}
	for a, want := range tests {
		if got := a.String(); got != want {
			t.Errorf("Action(%d).String() = %q, expected %q", int(a), got, want)
		}
	}
}
