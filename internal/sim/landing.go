package sim

// ResolveLanding applies this tick's collision to the actor's floor state.
//
// Nothing happens while the actor is ascending. A top hit snaps the actor
// onto the obstacle surface and grounds it. No hit makes it airborne.
// Other sides leave floor state alone.
func ResolveLanding(a *Actor, c Collision) {
	if a.Velocity > 0 {
		return
	}

	switch c.Side {
	case SideTop:
		a.OnFloor = true
		a.Velocity = 0
		a.Y = a.HalfH + c.Obstacle.HalfH + c.Obstacle.Y
	case SideNone:
		a.OnFloor = false
	}
}
