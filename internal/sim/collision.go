package sim

// Side classifies which face of an obstacle the actor hit.
type Side uint8

const (
	SideNone   Side = iota // No collision this tick
	SideTop                // Actor came down on the obstacle's upper face
	SideLeft               // Actor struck the obstacle's leading edge
	SideRight              // Actor struck the trailing edge
	SideBottom             // Actor struck the underside
)

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideBottom:
		return "bottom"
	default:
		return "none"
	}
}

// Collision is the single per-tick detection result. It is produced by
// Detect and passed by value to ResolveLanding and EvaluateOutcome.
type Collision struct {
	Side     Side
	Obstacle Box // Snapshot of the obstacle hit, zero when Side is SideNone
	Index    int // Pool index of the obstacle, -1 when Side is SideNone
}

// NoCollision is the absent result.
var NoCollision = Collision{Side: SideNone, Index: -1}

// Hit reports whether a collision was found.
func (c Collision) Hit() bool {
	return c.Side != SideNone
}

// Classify tests a against b and returns the side of b that a penetrated
// least. Touching edges are not a collision. Equal depths resolve in the
// order top, left, right, bottom.
func Classify(a, b Box) Side {
	if !a.Overlaps(b) {
		return SideNone
	}

	depths := [...]struct {
		side  Side
		depth float64
	}{
		{SideTop, b.Top() - a.Bottom()},
		{SideLeft, a.Right() - b.Left()},
		{SideRight, b.Right() - a.Left()},
		{SideBottom, a.Top() - b.Bottom()},
	}

	best := depths[0]
	for _, d := range depths[1:] {
		if d.depth < best.depth {
			best = d
		}
	}
	return best.side
}

// Detect scans obstacles in pool order and returns the first qualifying hit.
//
// Each obstacle is tested at the actor's true position first; any side
// counts. Failing that, the actor is lowered by tolerance and retested, and
// only a top hit is accepted. The shifted test never reports other sides.
func Detect(a Actor, obstacles []Box, tolerance float64) Collision {
	lowered := a.Box.Shifted(0, -tolerance)
	for i, o := range obstacles {
		if side := Classify(a.Box, o); side != SideNone {
			return Collision{Side: side, Obstacle: o, Index: i}
		}
		if tolerance > 0 && Classify(lowered, o) == SideTop {
			return Collision{Side: SideTop, Obstacle: o, Index: i}
		}
	}
	return NoCollision
}
