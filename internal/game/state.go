package game

import (
	"fmt"
	"math"

	"chosenoffset.com/kaleidoscope/internal/core/optics"
	"chosenoffset.com/kaleidoscope/internal/simulation"
)

// Field names a text-entry target.
type Field int

const (
	FieldMirrorAngle Field = iota
	FieldObjectAngle
	FieldRadius
)

func (f Field) String() string {
	switch f {
	case FieldMirrorAngle:
		return "θ"
	case FieldObjectAngle:
		return "φ"
	case FieldRadius:
		return "r"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// State owns the current parameters and the last computed result. Every
// mutation recomputes the result from scratch.
type State struct {
	config *simulation.Config

	params   optics.Params
	showRays bool
	opts     optics.Options

	result optics.Result
	rays   []optics.RayPath
}

// NewState creates a state initialized from the config defaults.
func NewState(cfg *simulation.Config) *State {
	if cfg == nil {
		cfg = simulation.DefaultConfig()
	}
	s := &State{config: cfg}
	s.Reset()
	return s
}

// Params returns the current parameters.
func (s *State) Params() optics.Params { return s.params }

// Result returns the result for the current parameters.
func (s *State) Result() optics.Result { return s.result }

// Rays returns the ray paths to draw, nil when rays are hidden.
func (s *State) Rays() []optics.RayPath { return s.rays }

// ShowRays reports whether ray paths are displayed.
func (s *State) ShowRays() bool { return s.showRays }

// Adaptive reports whether the generator scales its depth with 360/θ.
func (s *State) Adaptive() bool { return s.opts.Adaptive }

// SetMirrorAngle applies a slider value, snapped to the configured step and
// clamped to the configured range.
func (s *State) SetMirrorAngle(v float64) {
	l := s.config.Limits
	if l.MirrorAngleStep > 0 {
		v = l.MirrorAngleMin + math.Round((v-l.MirrorAngleMin)/l.MirrorAngleStep)*l.MirrorAngleStep
	}
	s.params.MirrorAngle = clamp(v, l.MirrorAngleMin, l.MirrorAngleMax)
	s.recompute()
}

// SetObjectAngle applies a slider value, normalized to [0, 360).
func (s *State) SetObjectAngle(v float64) {
	s.params.ObjectAngle = optics.NormalizeDegrees(v)
	s.recompute()
}

// SetRadius applies a slider value, clamped to the slider range.
func (s *State) SetRadius(v float64) {
	l := s.config.Limits
	s.params.Radius = clamp(v, l.RadiusMin, l.RadiusMax)
	s.recompute()
}

// Submit applies text typed into one of the entry boxes. On error the
// previous value stays in effect.
func (s *State) Submit(field Field, text string) error {
	v, err := optics.ParseNumber(text)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}

	switch field {
	case FieldMirrorAngle:
		if err := optics.ValidateMirrorRange(v); err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
		s.params.MirrorAngle = v
	case FieldObjectAngle:
		s.params.ObjectAngle = optics.NormalizeDegrees(v)
	case FieldRadius:
		if err := optics.ValidateRadius(v); err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
		s.params.Radius = v
	default:
		return fmt.Errorf("unknown field %v", field)
	}

	s.recompute()
	return nil
}

// PlaceObject moves the object to the world point (x, y). The angle always
// follows the point; the radius only changes when it is within the slider
// range. It reports whether the radius changed.
func (s *State) PlaceObject(x, y float64) bool {
	l := s.config.Limits
	r := math.Hypot(x, y)
	phi := math.Atan2(y, x) * 180 / math.Pi

	s.params.ObjectAngle = optics.NormalizeDegrees(phi)
	moved := r >= l.RadiusMin && r <= l.RadiusMax
	if moved {
		s.params.Radius = r
	}
	s.recompute()
	return moved
}

// ToggleRays flips ray display and returns the new setting.
func (s *State) ToggleRays() bool {
	s.showRays = !s.showRays
	s.rays = optics.RayPaths(s.result.Object, s.result.Images, s.showRays)
	return s.showRays
}

// ToggleAdaptive flips adaptive depth and returns the new setting.
func (s *State) ToggleAdaptive() bool {
	s.opts.Adaptive = !s.opts.Adaptive
	s.recompute()
	return s.opts.Adaptive
}

// Reset restores the configured defaults, rays off.
func (s *State) Reset() {
	s.params = s.config.DefaultParams()
	s.showRays = s.config.Defaults.ShowRays
	s.opts = s.config.GeneratorOptions()
	s.recompute()
}

func (s *State) recompute() {
	s.result = optics.GenerateWithOptions(s.params, s.opts)
	s.rays = optics.RayPaths(s.result.Object, s.result.Images, s.showRays)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
