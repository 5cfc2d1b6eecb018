package optics

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Supported mirror angle range in degrees. Zero is accepted separately as the
// parallel-mirror case.
const (
	MinMirrorAngle = 1.0
	MaxMirrorAngle = 270.0
)

var (
	ErrInvalidAngle  = errors.New("invalid mirror angle")
	ErrInvalidRadius = errors.New("invalid object radius")
	ErrInvalidNumber = errors.New("not a valid number")
)

// ValidateMirrorAngle accepts 0 (parallel mirrors) or a value within
// [MinMirrorAngle, MaxMirrorAngle].
func ValidateMirrorAngle(theta float64) error {
	if theta == 0 {
		return nil
	}
	return ValidateMirrorRange(theta)
}

// ValidateMirrorRange accepts only [MinMirrorAngle, MaxMirrorAngle]. Entry
// fields use it since they have no parallel-mirror setting.
func ValidateMirrorRange(theta float64) error {
	if math.IsNaN(theta) || theta < MinMirrorAngle || theta > MaxMirrorAngle {
		return fmt.Errorf("%w: %s° must be between %s° and %s°", ErrInvalidAngle,
			FormatDegrees(theta), FormatDegrees(MinMirrorAngle), FormatDegrees(MaxMirrorAngle))
	}
	return nil
}

// ValidateRadius rejects non-positive and non-finite radii.
func ValidateRadius(r float64) error {
	if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
		return fmt.Errorf("%w: %v must be greater than 0", ErrInvalidRadius, r)
	}
	return nil
}

// Validate checks p before it is handed to Generate. Generate itself never
// fails; it just produces meaningless output for invalid input.
func (p Params) Validate() error {
	if err := ValidateMirrorAngle(p.MirrorAngle); err != nil {
		return err
	}
	if err := ValidateRadius(p.Radius); err != nil {
		return err
	}
	if math.IsNaN(p.ObjectAngle) || math.IsInf(p.ObjectAngle, 0) {
		return fmt.Errorf("%w: object angle %v", ErrInvalidNumber, p.ObjectAngle)
	}
	return nil
}

// ParseNumber parses user-entered text as a finite float.
func ParseNumber(text string) (float64, error) {
	s := strings.TrimSpace(text)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return v, nil
}

// NormalizeDegrees maps any finite angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}
