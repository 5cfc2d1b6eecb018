package optics

import (
	"math"
)

const (
	// DefaultDepth is the number of reflection levels scanned when no option
	// overrides it.
	DefaultDepth = 5
	// exhaustiveDepth is the deepest level at which every binary word is
	// evaluated. Deeper levels only evaluate the two alternating words.
	exhaustiveDepth = 5
	// maxDepth bounds adaptive scans for tiny angles.
	maxDepth = 4096
)

// Options tunes the enumeration depth.
type Options struct {
	// MaxDepth replaces DefaultDepth when positive.
	MaxDepth int
	// Adaptive raises the depth to ceil(360/θ) so that small angles are not
	// cut short before reaching the theoretical count.
	Adaptive bool
}

func (o Options) depth(theta float64) int {
	depth := DefaultDepth
	if o.MaxDepth > 0 {
		depth = o.MaxDepth
	}
	if o.Adaptive && theta > 0 {
		need := math.Ceil(360 / theta)
		if need > maxDepth {
			need = maxDepth
		}
		if int(need) > depth {
			depth = int(need)
		}
	}
	if depth > maxDepth {
		depth = maxDepth
	}
	return depth
}

// Generate enumerates the virtual images for p using the default depth.
func Generate(p Params) Result {
	return GenerateWithOptions(p, Options{})
}

// GenerateWithOptions enumerates the virtual images for p.
//
// Starting from the object angle φ, every sequence of reflections up to the
// configured depth is applied, where reflecting in a mirror at angle m maps
// an angle a to 2m - a. Each resulting position is kept if it differs from
// the object and from every image found before it. The list is capped at the
// theoretical count, preserving discovery order.
func GenerateWithOptions(p Params, opts Options) Result {
	res := Result{
		Params: p,
		Object: p.Object(),
	}
	if p.MirrorAngle == 0 {
		res.Formula = ParallelFormula
		res.Parallel = true
		return res
	}

	res.Theoretical, res.Formula, res.Exact = TheoreticalCount(p.MirrorAngle)
	if res.Theoretical == 0 {
		return res
	}

	mirrorAngles := [2]float64{0, degToRad(p.MirrorAngle)}
	phi := degToRad(p.ObjectAngle)
	seen := newSeenSet(res.Object)
	depth := opts.depth(p.MirrorAngle)

	try := func(seq []Mirror) {
		angle := normalizeAngle(reflectSequence(phi, seq, mirrorAngles))
		pos := polar(p.Radius, angle)
		if seen.contains(pos) {
			return
		}
		seen.add(pos)
		res.Images = append(res.Images, Image{
			Pos:      pos,
			Angle:    angle,
			Sequence: seq,
			Level:    len(seq),
		})
	}

	for level := 1; level <= depth; level++ {
		res.Depth = level
		if level <= exhaustiveDepth {
			for word := 0; word < 1<<level; word++ {
				try(wordSequence(word, level))
			}
		} else {
			// A word with two equal adjacent mirrors reduces to a shorter
			// word, so only the alternating ones can reach a new angle.
			first, second := Mirror1, Mirror2
			if level%2 == 0 {
				first, second = Mirror2, Mirror1
			}
			try(alternating(first, level))
			try(alternating(second, level))
		}
		if len(res.Images) >= res.Theoretical {
			break
		}
	}

	if len(res.Images) > res.Theoretical {
		res.Images = res.Images[:res.Theoretical]
	}
	return res
}

// wordSequence expands a binary word: bit j selects the mirror hit at step j.
func wordSequence(word, length int) []Mirror {
	seq := make([]Mirror, length)
	for j := 0; j < length; j++ {
		seq[j] = Mirror((word >> j) & 1)
	}
	return seq
}

// alternating returns first, other, first, ... of the given length.
func alternating(first Mirror, length int) []Mirror {
	seq := make([]Mirror, length)
	for j := range seq {
		seq[j] = first
		if j%2 == 1 {
			seq[j] = 1 - first
		}
	}
	return seq
}

// Reflect maps an angle to its mirror image about a line through the origin
// at mirrorAngle (both in radians).
func Reflect(angle, mirrorAngle float64) float64 {
	return 2*mirrorAngle - angle
}

func reflectSequence(angle float64, seq []Mirror, mirrorAngles [2]float64) float64 {
	for _, m := range seq {
		angle = Reflect(angle, mirrorAngles[m])
	}
	return angle
}

// normalizeAngle reduces an angle into (-π, π].
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}
