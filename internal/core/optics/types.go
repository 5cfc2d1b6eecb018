// Package optics computes the virtual images formed by two plane mirrors that
// meet at a common origin.
package optics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Mirror identifies one of the two mirrors.
type Mirror int

const (
	Mirror1 Mirror = iota // Fixed along the 0° line
	Mirror2               // Along the θ line
)

// String returns the short label used in HUD and plot legends.
func (m Mirror) String() string {
	if m == Mirror2 {
		return "M2"
	}
	return "M1"
}

// Params is one immutable computation input
type Params struct {
	MirrorAngle float64 // θ in degrees, 0 means parallel mirrors
	Radius      float64 // Object distance from the origin
	ObjectAngle float64 // φ in degrees
}

// Object returns the Cartesian position of the real object.
func (p Params) Object() r2.Vec {
	return polar(p.Radius, degToRad(p.ObjectAngle))
}

// Image is one distinct virtual image.
type Image struct {
	Pos      r2.Vec   // Cartesian position
	Angle    float64  // Normalized angle in radians, in (-π, π]
	Sequence []Mirror // Reflections applied to the object, in order
	Level    int      // len(Sequence)
}

// AngleDegrees returns the image angle in degrees.
func (im Image) AngleDegrees() float64 {
	return im.Angle * 180 / math.Pi
}

// RayPath is a straight two-point path from the object to an image
type RayPath [2]r2.Vec

// Result holds everything a caller needs to display one configuration.
type Result struct {
	Params Params
	Object r2.Vec

	// Images in discovery order, capped at Theoretical.
	Images []Image

	Theoretical int
	Formula     string
	Exact       bool // Formula is an identity rather than an approximation
	Parallel    bool // θ = 0, no finite enumeration

	// Depth is the number of reflection levels actually scanned.
	Depth int
}

// Count returns the number of images found.
func (r Result) Count() int {
	return len(r.Images)
}

// Shortfall reports how many images the enumeration missed compared with the
// theoretical count. It is positive when the object lies on a mirror or a
// bisector (coincident images) or when the depth bound was too shallow.
func (r Result) Shortfall() int {
	if r.Parallel {
		return 0
	}
	return r.Theoretical - len(r.Images)
}

// Angles returns the image angles in radians, in discovery order.
func (r Result) Angles() []float64 {
	angles := make([]float64, len(r.Images))
	for i, im := range r.Images {
		angles[i] = im.Angle
	}
	return angles
}

// Positions returns the image positions in discovery order.
func (r Result) Positions() []r2.Vec {
	pts := make([]r2.Vec, len(r.Images))
	for i, im := range r.Images {
		pts[i] = im.Pos
	}
	return pts
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func polar(radius, angle float64) r2.Vec {
	return r2.Vec{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
}
