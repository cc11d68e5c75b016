package sim

// ApplyGravity accelerates an airborne actor. Grounded actors are untouched.
// Must run before Integrate within a tick (semi-implicit Euler).
func ApplyGravity(a *Actor, gravity, dt float64) {
	if a.OnFloor {
		return
	}
	a.Velocity += gravity * dt
}

// Integrate moves the actor vertically by its velocity.
func Integrate(a *Actor, dt float64) {
	a.Y += a.Velocity * dt
}
