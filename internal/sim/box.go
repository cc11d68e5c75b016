// Package sim implements the fixed-timestep rooftops simulation: a pool of
// scrolling obstacles, a single falling actor, collision classification,
// landing resolution and the session outcome.
//
// World coordinates have their origin at the screen center and y grows
// upward. All functions are deterministic given the injected random source.
package sim

// Box is an axis-aligned rectangle given by its center and half-extents.
type Box struct {
	X, Y         float64 // Center
	HalfW, HalfH float64 // Half-extents, strictly positive
}

// Left returns the x of the left edge.
func (b Box) Left() float64 { return b.X - b.HalfW }

// Right returns the x of the right edge.
func (b Box) Right() float64 { return b.X + b.HalfW }

// Top returns the y of the upper edge.
func (b Box) Top() float64 { return b.Y + b.HalfH }

// Bottom returns the y of the lower edge.
func (b Box) Bottom() float64 { return b.Y - b.HalfH }

// Shifted returns a copy of the box moved by (dx, dy).
func (b Box) Shifted(dx, dy float64) Box {
	b.X += dx
	b.Y += dy
	return b
}

// Overlaps reports whether two boxes share interior area.
// Boxes that only touch along an edge do not overlap.
func (b Box) Overlaps(o Box) bool {
	return b.Left() < o.Right() && b.Right() > o.Left() &&
		b.Bottom() < o.Top() && b.Top() > o.Bottom()
}
