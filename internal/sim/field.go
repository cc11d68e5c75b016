package sim

import "github.com/vovakirdan/rooftops/internal/config"

// Rand is the random source used for obstacle respawns.
// *math/rand.Rand satisfies it; tests inject fixed sequences.
type Rand interface {
	Float64() float64 // uniform in [0, 1)
}

// Field is a fixed-size pool of obstacles scrolling to the left.
// Obstacles are never allocated or removed after NewField; they are
// recycled in place once they leave the view on the left.
type Field struct {
	obstacles []Box
	cfg       config.FieldConfig
	speed     float64
	upper     float64
	lower     float64
}

// NewField lays out cfg.Count obstacles at upper-gap, upper-2*gap, ...,
// down to the lower limit, each with a randomized height offset and width.
func NewField(cfg config.FieldConfig, scrollSpeed float64, rng Rand) *Field {
	f := &Field{
		obstacles: make([]Box, cfg.Count),
		cfg:       cfg,
		speed:     scrollSpeed,
		upper:     cfg.UpperLimit(),
		lower:     cfg.LowerLimit(),
	}
	for i := range f.obstacles {
		o := &f.obstacles[i]
		o.X = f.upper - float64(i+1)*cfg.Gap
		o.HalfH = cfg.BaseHeight / 2
		f.randomize(o, rng)
	}
	return f
}

// Scroll moves every obstacle left by speed*dt.
func (f *Field) Scroll(dt float64) {
	dx := f.speed * dt
	for i := range f.obstacles {
		f.obstacles[i].X -= dx
	}
}

// Recycle moves every obstacle that crossed the lower limit back to the upper
// limit with a new height offset and width. Height is kept.
// It returns how many obstacles were recycled.
func (f *Field) Recycle(rng Rand) int {
	n := 0
	for i := range f.obstacles {
		o := &f.obstacles[i]
		if o.X >= f.lower {
			continue
		}
		o.X = f.upper
		f.randomize(o, rng)
		n++
	}
	return n
}

// randomize draws a new vertical offset and width for o.
// The random source is consumed in a fixed order: offset first, then width.
func (f *Field) randomize(o *Box, rng Rand) {
	o.Y = f.cfg.Horizon + (1-2*rng.Float64())*f.cfg.HeightOffsetRange
	width := f.cfg.WidthMin + rng.Float64()*(f.cfg.WidthMax-f.cfg.WidthMin)
	o.HalfW = width / 2
}

// Obstacles returns the pool in layout order. Callers must not modify it.
func (f *Field) Obstacles() []Box {
	return f.obstacles
}

// Limits returns the recycle threshold and the re-entry position.
func (f *Field) Limits() (lower, upper float64) {
	return f.lower, f.upper
}
