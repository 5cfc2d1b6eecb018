package optics

import (
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// keyPrecision is the number of decimals kept in a position key.
	keyPrecision = 3
	// Tolerance is the per-coordinate distance under which two positions are
	// the same image.
	Tolerance = 1e-3
)

type posKey struct {
	X, Y float64
}

func keyOf(p r2.Vec) posKey {
	return posKey{X: scalar.Round(p.X, keyPrecision), Y: scalar.Round(p.Y, keyPrecision)}
}

// seenSet tracks positions already emitted (the object included). A position
// is a duplicate if its rounded key was seen, or if it lies within Tolerance
// of a kept point in both coordinates. The second test catches pairs that
// straddle a rounding boundary.
type seenSet struct {
	keys   map[posKey]struct{}
	points []r2.Vec
}

func newSeenSet(seed r2.Vec) *seenSet {
	s := &seenSet{keys: make(map[posKey]struct{})}
	s.add(seed)
	return s
}

func (s *seenSet) add(p r2.Vec) {
	s.keys[keyOf(p)] = struct{}{}
	s.points = append(s.points, p)
}

func (s *seenSet) contains(p r2.Vec) bool {
	if _, ok := s.keys[keyOf(p)]; ok {
		return true
	}
	for _, q := range s.points {
		if SamePosition(p, q) {
			return true
		}
	}
	return false
}

// SamePosition reports whether two positions collapse to one image.
func SamePosition(a, b r2.Vec) bool {
	return scalar.EqualWithinAbs(a.X, b.X, Tolerance) && scalar.EqualWithinAbs(a.Y, b.Y, Tolerance)
}
