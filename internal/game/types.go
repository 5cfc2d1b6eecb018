package game

import (
	"gonum.org/v1/gonum/spatial/r2"

	"chosenoffset.com/kaleidoscope/internal/ui/controls"
)

// Message represents an on-screen message that fades over time.
type Message struct {
	Text     string
	TimeLeft float64 // Seconds remaining
	MaxTime  float64 // Initial duration
}

// Viewport maps the square world region [-Extent, Extent]² onto a screen
// rectangle. World y points up, screen y points down.
type Viewport struct {
	Rect   controls.Rect
	Extent float64
}

// Scale returns screen pixels per world unit.
func (v Viewport) Scale() float64 {
	side := v.Rect.W
	if v.Rect.H < side {
		side = v.Rect.H
	}
	return float64(side) / (2 * v.Extent)
}

// center returns the screen position of the world origin.
func (v Viewport) center() (float64, float64) {
	return float64(v.Rect.X) + float64(v.Rect.W)/2, float64(v.Rect.Y) + float64(v.Rect.H)/2
}

// ToScreen converts a world point to screen coordinates.
func (v Viewport) ToScreen(p r2.Vec) (float32, float32) {
	cx, cy := v.center()
	s := v.Scale()
	return float32(cx + p.X*s), float32(cy - p.Y*s)
}

// ToWorld converts a screen position to world coordinates.
func (v Viewport) ToWorld(x, y int) r2.Vec {
	cx, cy := v.center()
	s := v.Scale()
	return r2.Vec{X: (float64(x) - cx) / s, Y: (cy - float64(y)) / s}
}

// Contains reports whether the screen position lies in the plot.
func (v Viewport) Contains(x, y int) bool {
	return v.Rect.Contains(x, y)
}
