// Package simulation provides configuration for the mirror simulation.
// Values are loaded from an optional JSON file layered over the defaults.
package simulation

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"chosenoffset.com/kaleidoscope/internal/core/optics"
)

// Config holds all tunable settings
type Config struct {
	// Initial values, also restored by Reset
	Defaults DefaultsConfig `json:"defaults"`

	// Slider ranges
	Limits LimitsConfig `json:"limits"`

	// Image enumeration
	Generator GeneratorConfig `json:"generator"`

	// Plot area and window
	View ViewConfig `json:"view"`

	// Optional overlays
	Display DisplayConfig `json:"display"`
}

// DefaultsConfig holds the starting parameters
type DefaultsConfig struct {
	MirrorAngle float64 `json:"mirror_angle"` // θ in degrees
	ObjectAngle float64 `json:"object_angle"` // φ in degrees
	Radius      float64 `json:"radius"`
	ShowRays    bool    `json:"show_rays"`
}

// LimitsConfig defines the slider ranges and steps
type LimitsConfig struct {
	MirrorAngleMin  float64 `json:"mirror_angle_min"`
	MirrorAngleMax  float64 `json:"mirror_angle_max"`
	MirrorAngleStep float64 `json:"mirror_angle_step"` // 0 = continuous
	ObjectAngleMin  float64 `json:"object_angle_min"`
	ObjectAngleMax  float64 `json:"object_angle_max"`
	ObjectAngleStep float64 `json:"object_angle_step"`
	RadiusMin       float64 `json:"radius_min"`
	RadiusMax       float64 `json:"radius_max"`
	RadiusStep      float64 `json:"radius_step"`
}

// GeneratorConfig controls how deep the reflection search goes
type GeneratorConfig struct {
	MaxDepth int  `json:"max_depth"` // Reflection levels, 0 = optics.DefaultDepth
	Adaptive bool `json:"adaptive"`  // Scale depth with 360/θ
}

// ViewConfig defines the plot extent and window size
type ViewConfig struct {
	Extent       float64 `json:"extent"`        // Plot shows [-Extent, Extent] on both axes
	MirrorLength float64 `json:"mirror_length"` // Drawn length of each mirror
	GridStep     float64 `json:"grid_step"`
	WindowWidth  int     `json:"window_width"`
	WindowHeight int     `json:"window_height"`
}

// DisplayConfig toggles the optional overlays
type DisplayConfig struct {
	ShowLegend      bool `json:"show_legend"`
	ShowExplanation bool `json:"show_explanation"`
	ShowLabels      bool `json:"show_labels"` // Number each image
}

// DefaultConfig returns the classic classroom setup: 60° mirrors with the
// object at r=3, φ=30°.
func DefaultConfig() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			MirrorAngle: 60,
			ObjectAngle: 30,
			Radius:      3.0,
			ShowRays:    false,
		},
		Limits: LimitsConfig{
			MirrorAngleMin:  optics.MinMirrorAngle,
			MirrorAngleMax:  optics.MaxMirrorAngle,
			MirrorAngleStep: 1,
			ObjectAngleMin:  0,
			ObjectAngleMax:  360,
			ObjectAngleStep: 1,
			RadiusMin:       0.5,
			RadiusMax:       4.5,
			RadiusStep:      0.1,
		},
		Generator: GeneratorConfig{
			MaxDepth: optics.DefaultDepth,
			Adaptive: false,
		},
		View: ViewConfig{
			Extent:       5,
			MirrorLength: 5,
			GridStep:     1,
			WindowWidth:  960,
			WindowHeight: 960,
		},
		Display: DisplayConfig{
			ShowLegend:      false,
			ShowExplanation: false,
			ShowLabels:      true,
		},
	}
}

// LoadConfig loads the config from a JSON file
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig() // Start with defaults
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read simulation config: %w", err)
	}

	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse simulation config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config %s: %w", path, err)
	}

	return config, nil
}

// Validate checks that ranges are ordered and the defaults are usable
func (c *Config) Validate() error {
	var errs []error

	l := c.Limits
	if l.MirrorAngleMin < optics.MinMirrorAngle || l.MirrorAngleMax > optics.MaxMirrorAngle || l.MirrorAngleMin >= l.MirrorAngleMax {
		errs = append(errs, fmt.Errorf("mirror angle range [%v, %v] must lie within [%v, %v]",
			l.MirrorAngleMin, l.MirrorAngleMax, optics.MinMirrorAngle, optics.MaxMirrorAngle))
	}
	if l.ObjectAngleMin >= l.ObjectAngleMax {
		errs = append(errs, fmt.Errorf("object angle range [%v, %v] is empty", l.ObjectAngleMin, l.ObjectAngleMax))
	}
	if l.RadiusMin <= 0 || l.RadiusMin >= l.RadiusMax {
		errs = append(errs, fmt.Errorf("radius range [%v, %v] must be positive and non-empty", l.RadiusMin, l.RadiusMax))
	}
	if l.MirrorAngleStep < 0 || l.ObjectAngleStep < 0 || l.RadiusStep < 0 {
		errs = append(errs, errors.New("slider steps must not be negative"))
	}

	p := c.DefaultParams()
	if err := p.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("defaults: %w", err))
	}

	if c.Generator.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max_depth %d must not be negative", c.Generator.MaxDepth))
	}
	if c.View.Extent <= 0 || c.View.MirrorLength <= 0 {
		errs = append(errs, errors.New("view extent and mirror length must be positive"))
	}
	if c.View.WindowWidth <= 0 || c.View.WindowHeight <= 0 {
		errs = append(errs, errors.New("window size must be positive"))
	}

	return errors.Join(errs...)
}

// DefaultParams returns the configured starting parameters.
func (c *Config) DefaultParams() optics.Params {
	return optics.Params{
		MirrorAngle: c.Defaults.MirrorAngle,
		Radius:      c.Defaults.Radius,
		ObjectAngle: c.Defaults.ObjectAngle,
	}
}

// GeneratorOptions converts the generator section to optics.Options.
func (c *Config) GeneratorOptions() optics.Options {
	return optics.Options{
		MaxDepth: c.Generator.MaxDepth,
		Adaptive: c.Generator.Adaptive,
	}
}
