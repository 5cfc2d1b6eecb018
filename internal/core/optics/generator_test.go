package optics

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"
)

const floatTol = 1e-9

func imageDegrees(res Result) []float64 {
	out := make([]float64, len(res.Images))
	for i, im := range res.Images {
		out[i] = im.AngleDegrees()
	}
	return out
}

func TestGenerateSixtyDegrees(t *testing.T) {
	res := Generate(Params{MirrorAngle: 60, Radius: 3.0, ObjectAngle: 30})

	if res.Theoretical != 5 {
		t.Errorf("Expected theoretical count 5, got %d", res.Theoretical)
	}
	if !res.Exact {
		t.Error("Expected exact formula for 60°")
	}
	if res.Formula != "N = 360°/60° - 1 = 5" {
		t.Errorf("Unexpected formula %q", res.Formula)
	}

	want := []float64{-30, 90, -90, 150, -150}
	got := imageDegrees(res)
	if len(got) != len(want) {
		t.Fatalf("Expected %d images, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if !scalar.EqualWithinAbs(got[i], want[i], floatTol) {
			t.Errorf("Image %d: expected angle %v, got %v", i+1, want[i], got[i])
		}
	}

	if res.Depth != 3 {
		t.Errorf("Expected enumeration to stop after 3 levels, got %d", res.Depth)
	}
	if res.Shortfall() != 0 {
		t.Errorf("Expected no shortfall, got %d", res.Shortfall())
	}
}

func TestGenerateObjectOnMirror(t *testing.T) {
	res := Generate(Params{MirrorAngle: 90, Radius: 2.0, ObjectAngle: 0})

	if res.Theoretical != 3 {
		t.Errorf("Expected theoretical count 3, got %d", res.Theoretical)
	}

	object := r2.Vec{X: 2, Y: 0}
	for i, im := range res.Images {
		if SamePosition(im.Pos, object) {
			t.Errorf("Image %d coincides with the object at %v", i+1, im.Pos)
		}
		if !scalar.EqualWithinAbs(r2.Norm(im.Pos), 2.0, floatTol) {
			t.Errorf("Image %d: expected radius 2.0, got %v", i+1, r2.Norm(im.Pos))
		}
	}

	// The object lies on mirror 1, so its only distinct image is at 180°.
	if len(res.Images) != 1 {
		t.Fatalf("Expected 1 distinct image, got %d", len(res.Images))
	}
	if !SamePosition(res.Images[0].Pos, r2.Vec{X: -2, Y: 0}) {
		t.Errorf("Expected image at (-2, 0), got %v", res.Images[0].Pos)
	}
	if res.Shortfall() != 2 {
		t.Errorf("Expected shortfall 2, got %d", res.Shortfall())
	}
}

func TestGenerateApproximateCount(t *testing.T) {
	res := Generate(Params{MirrorAngle: 70, Radius: 1.0, ObjectAngle: 45})

	if res.Exact {
		t.Error("Expected approximate formula for 70°")
	}
	if !strings.Contains(res.Formula, "≈") {
		t.Errorf("Expected formula to be marked approximate, got %q", res.Formula)
	}
	if res.Theoretical != 5 {
		t.Errorf("Expected theoretical count 5, got %d", res.Theoretical)
	}
	if len(res.Images) > 5 {
		t.Errorf("Expected at most 5 images, got %d", len(res.Images))
	}
}

func TestGenerateParallelMirrors(t *testing.T) {
	for _, p := range []Params{
		{MirrorAngle: 0, Radius: 3, ObjectAngle: 30},
		{MirrorAngle: 0, Radius: 0.5, ObjectAngle: -720},
	} {
		res := Generate(p)
		if len(res.Images) != 0 {
			t.Errorf("Expected no images for parallel mirrors, got %d", len(res.Images))
		}
		if res.Theoretical != 0 {
			t.Errorf("Expected count 0, got %d", res.Theoretical)
		}
		if !res.Parallel {
			t.Error("Expected Parallel to be set")
		}
		if !strings.Contains(res.Formula, "infinite") {
			t.Errorf("Expected formula to mention infinite images, got %q", res.Formula)
		}
	}
}

func TestGenerateInvariants(t *testing.T) {
	thetas := []float64{1, 7, 10, 30, 45, 47.5, 60, 70, 72, 90, 100, 120, 135, 180, 200, 270}
	phis := []float64{0, 12.5, 30, 45, 90, 181, 359, -40, 725}
	radii := []float64{0.5, 1, 3, 4.5, 12}

	for _, theta := range thetas {
		for _, phi := range phis {
			for _, r := range radii {
				for _, opts := range []Options{{}, {Adaptive: true}} {
					p := Params{MirrorAngle: theta, Radius: r, ObjectAngle: phi}
					res := GenerateWithOptions(p, opts)

					if len(res.Images) > res.Theoretical {
						t.Errorf("%+v: %d images exceed theoretical %d", p, len(res.Images), res.Theoretical)
					}
					for i, im := range res.Images {
						if SamePosition(im.Pos, res.Object) {
							t.Errorf("%+v: image %d coincides with object", p, i+1)
						}
						if im.Angle <= -math.Pi || im.Angle > math.Pi {
							t.Errorf("%+v: image %d angle %v outside (-π, π]", p, i+1, im.Angle)
						}
						if !scalar.EqualWithinAbs(r2.Norm(im.Pos), r, 1e-9*r) {
							t.Errorf("%+v: image %d at radius %v", p, i+1, r2.Norm(im.Pos))
						}
						if im.Level != len(im.Sequence) {
							t.Errorf("%+v: image %d level %d with sequence %v", p, i+1, im.Level, im.Sequence)
						}
						for j := 0; j < i; j++ {
							if SamePosition(im.Pos, res.Images[j].Pos) {
								t.Errorf("%+v: images %d and %d coincide", p, j+1, i+1)
							}
						}
					}
				}
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	p := Params{MirrorAngle: 45, Radius: 2.5, ObjectAngle: 17}
	a := Generate(p)
	b := Generate(p)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Expected identical results, got %v and %v", a.Positions(), b.Positions())
	}
}

func TestTheoreticalCountDivisors(t *testing.T) {
	for _, theta := range []int{1, 2, 3, 4, 5, 6, 8, 9, 10, 12, 15, 20, 24, 30, 36, 40, 45, 60, 72, 90, 120, 180} {
		n, formula, exact := TheoreticalCount(float64(theta))
		if !exact {
			t.Errorf("θ=%d: expected exact formula", theta)
		}
		if n != 360/theta-1 {
			t.Errorf("θ=%d: expected %d, got %d", theta, 360/theta-1, n)
		}
		if strings.Contains(formula, "≈") {
			t.Errorf("θ=%d: exact formula marked approximate: %q", theta, formula)
		}
	}
}

func TestTheoreticalCountFractionalDivisors(t *testing.T) {
	tests := []struct {
		theta   float64
		want    int
		formula string
	}{
		{22.5, 15, "N = 360°/22.5° - 1 = 15"},
		{11.25, 31, "N = 360°/11.25° - 1 = 31"},
		{7.5, 47, "N = 360°/7.5° - 1 = 47"},
		{2.5, 143, "N = 360°/2.5° - 1 = 143"},
	}
	for _, tt := range tests {
		n, formula, exact := TheoreticalCount(tt.theta)
		if !exact {
			t.Errorf("θ=%v: expected exact formula", tt.theta)
		}
		if n != tt.want {
			t.Errorf("θ=%v: expected %d, got %d", tt.theta, tt.want, n)
		}
		if formula != tt.formula {
			t.Errorf("θ=%v: expected %q, got %q", tt.theta, tt.formula, formula)
		}
	}
}

func TestAdaptiveDepthFractionalDivisorHasNoShortfall(t *testing.T) {
	for _, theta := range []float64{22.5, 11.25, 7.5} {
		res := GenerateWithOptions(Params{MirrorAngle: theta, Radius: 1, ObjectAngle: 3}, Options{Adaptive: true})
		if !res.Exact {
			t.Errorf("θ=%v: expected exact count", theta)
		}
		if got := res.Shortfall(); got != 0 {
			t.Errorf("θ=%v: expected no shortfall, got %d (found %d of %d)", theta, got, res.Count(), res.Theoretical)
		}
	}
}

func TestTheoreticalCountApproximate(t *testing.T) {
	tests := []struct {
		theta float64
		want  int
	}{
		{70, 5},
		{100, 3},
		{7, 51},
		{47.5, 7},
		{60.5, 5},
		{200, 1},
		{270, 1},
	}
	for _, tt := range tests {
		n, formula, exact := TheoreticalCount(tt.theta)
		if exact {
			t.Errorf("θ=%v: expected approximate formula", tt.theta)
		}
		if n != tt.want {
			t.Errorf("θ=%v: expected %d, got %d", tt.theta, tt.want, n)
		}
		if !strings.Contains(formula, "≈") {
			t.Errorf("θ=%v: expected ≈ in %q", tt.theta, formula)
		}
	}

	if _, formula, _ := TheoreticalCount(70); formula != "N ≈ 360°/70° ≈ 5" {
		t.Errorf("Unexpected formula %q", formula)
	}
}

func TestTheoreticalCountNegativeAngle(t *testing.T) {
	n, _, _ := TheoreticalCount(-30)
	if n != 0 {
		t.Errorf("Expected negative angle to clamp to 0, got %d", n)
	}
	res := Generate(Params{MirrorAngle: -30, Radius: 1, ObjectAngle: 10})
	if len(res.Images) != 0 {
		t.Errorf("Expected no images, got %d", len(res.Images))
	}
}

func TestDefaultDepthUnderEnumeratesSmallAngles(t *testing.T) {
	res := Generate(Params{MirrorAngle: 10, Radius: 3, ObjectAngle: 5})

	if res.Theoretical != 35 {
		t.Fatalf("Expected theoretical count 35, got %d", res.Theoretical)
	}
	// Each level past the first can only add the two alternating words.
	if len(res.Images) != 10 {
		t.Errorf("Expected 10 images within %d levels, got %d", DefaultDepth, len(res.Images))
	}
	if res.Depth != DefaultDepth {
		t.Errorf("Expected depth %d, got %d", DefaultDepth, res.Depth)
	}
	if res.Shortfall() != 25 {
		t.Errorf("Expected shortfall 25, got %d", res.Shortfall())
	}
}

func TestAdaptiveDepthReachesTheoreticalCount(t *testing.T) {
	for _, phi := range []float64{5, 3} {
		res := GenerateWithOptions(Params{MirrorAngle: 10, Radius: 3, ObjectAngle: phi}, Options{Adaptive: true})
		if len(res.Images) != 35 {
			t.Errorf("φ=%v: expected 35 images, got %d", phi, len(res.Images))
		}
		if res.Shortfall() != 0 {
			t.Errorf("φ=%v: expected no shortfall, got %d", phi, res.Shortfall())
		}
		if res.Depth > 36 {
			t.Errorf("φ=%v: expected depth at most 36, got %d", phi, res.Depth)
		}
	}
}

// bruteForce evaluates every binary word at every level, with no early stop.
func bruteForce(p Params, depth int) []Image {
	mirrorAngles := [2]float64{0, degToRad(p.MirrorAngle)}
	phi := degToRad(p.ObjectAngle)
	seen := newSeenSet(p.Object())
	var images []Image
	for level := 1; level <= depth; level++ {
		for word := 0; word < 1<<level; word++ {
			seq := wordSequence(word, level)
			angle := normalizeAngle(reflectSequence(phi, seq, mirrorAngles))
			pos := polar(p.Radius, angle)
			if seen.contains(pos) {
				continue
			}
			seen.add(pos)
			images = append(images, Image{Pos: pos, Angle: angle, Sequence: seq, Level: level})
		}
	}
	n, _, _ := TheoreticalCount(p.MirrorAngle)
	if len(images) > n {
		images = images[:n]
	}
	return images
}

func TestAlternatingWordsMatchFullEnumeration(t *testing.T) {
	for _, p := range []Params{
		{MirrorAngle: 20, Radius: 2, ObjectAngle: 7},
		{MirrorAngle: 15, Radius: 1, ObjectAngle: 40},
		{MirrorAngle: 13, Radius: 4, ObjectAngle: 200},
	} {
		const depth = 9
		want := bruteForce(p, depth)
		got := GenerateWithOptions(p, Options{MaxDepth: depth}).Images

		if len(got) != len(want) {
			t.Fatalf("%+v: expected %d images, got %d", p, len(want), len(got))
		}
		for i := range want {
			if !SamePosition(got[i].Pos, want[i].Pos) {
				t.Errorf("%+v: image %d expected %v, got %v", p, i+1, want[i].Pos, got[i].Pos)
			}
			if !reflect.DeepEqual(got[i].Sequence, want[i].Sequence) {
				t.Errorf("%+v: image %d expected sequence %v, got %v", p, i+1, want[i].Sequence, got[i].Sequence)
			}
		}
	}
}

func TestWordSequence(t *testing.T) {
	tests := []struct {
		word, length int
		want         []Mirror
	}{
		{0, 1, []Mirror{Mirror1}},
		{1, 1, []Mirror{Mirror2}},
		{1, 2, []Mirror{Mirror2, Mirror1}},
		{2, 2, []Mirror{Mirror1, Mirror2}},
		{5, 3, []Mirror{Mirror2, Mirror1, Mirror2}},
	}
	for _, tt := range tests {
		if got := wordSequence(tt.word, tt.length); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("wordSequence(%d, %d): expected %v, got %v", tt.word, tt.length, tt.want, got)
		}
	}

	if got := alternating(Mirror2, 4); !reflect.DeepEqual(got, []Mirror{Mirror2, Mirror1, Mirror2, Mirror1}) {
		t.Errorf("Unexpected alternating sequence %v", got)
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-5 * math.Pi / 2, -math.Pi / 2},
	}
	for _, tt := range tests {
		if got := normalizeAngle(tt.in); !scalar.EqualWithinAbs(got, tt.want, floatTol) {
			t.Errorf("normalizeAngle(%v): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}
