package sim

// HandleJump reacts to one discrete press.
//
// A grounded actor launches with jumpForce. An airborne actor is pushed down
// to fastFallForce unless it already falls at least that fast.
func HandleJump(a *Actor, jumpForce, fastFallForce float64) {
	if a.OnFloor {
		a.Velocity = jumpForce
		a.OnFloor = false
		return
	}
	if a.Velocity > fastFallForce {
		a.Velocity = fastFallForce
	}
}
