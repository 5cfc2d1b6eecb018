// Package hud draws the text panels laid over the mirror plot: the info box,
// the formula box and the optional explanation and legend.
package hud

import (
	"fmt"
	"image/color"
	"strings"

	"chosenoffset.com/kaleidoscope/internal/core/optics"
	"chosenoffset.com/kaleidoscope/internal/render"
	"chosenoffset.com/kaleidoscope/internal/ui/controls"
)

// Panel background colors
var (
	colorWheat      = color.RGBA{245, 222, 179, 255}
	colorLightBlue  = color.RGBA{173, 216, 230, 255}
	colorLightGreen = color.RGBA{144, 238, 144, 255}
	colorPanelEdge  = color.RGBA{90, 90, 90, 255}
	colorPanelText  = color.RGBA{20, 20, 20, 255}
	colorWarning    = color.RGBA{150, 40, 0, 255}
)

// Legend swatch colors, shared with the plot drawing.
var (
	ColorMirror1 = color.RGBA{0, 0, 255, 255}
	ColorMirror2 = color.RGBA{255, 0, 0, 255}
	ColorObject  = color.RGBA{0, 128, 0, 255}
	ColorImage   = color.RGBA{255, 0, 0, 204}
)

// Config defines which panels to display
type Config struct {
	ShowInfo        bool    `json:"show_info"`
	ShowFormula     bool    `json:"show_formula"`
	ShowExplanation bool    `json:"show_explanation"`
	ShowLegend      bool    `json:"show_legend"`
	Opacity         float64 `json:"opacity"` // Background opacity (0-1)
}

// DefaultConfig shows the info and formula boxes only
func DefaultConfig() *Config {
	return &Config{
		ShowInfo:    true,
		ShowFormula: true,
		Opacity:     0.85,
	}
}

// HUD manages the panels drawn over the plot area
type HUD struct {
	config *Config
	plot   controls.Rect

	result   optics.Result
	adaptive bool
}

// New creates a new HUD over the given plot rectangle
func New(config *Config, plot controls.Rect) *HUD {
	if config == nil {
		config = DefaultConfig()
	}
	return &HUD{config: config, plot: plot}
}

// SetResult updates the displayed result
func (h *HUD) SetResult(res optics.Result, adaptive bool) {
	h.result = res
	h.adaptive = adaptive
}

// SetPlotArea moves the panels with the plot
func (h *HUD) SetPlotArea(plot controls.Rect) {
	h.plot = plot
}

// Config returns the live configuration
func (h *HUD) Config() *Config {
	return h.config
}

// InfoLines returns the info box contents for a result.
func InfoLines(res optics.Result) []string {
	p := res.Params
	lines := []string{
		fmt.Sprintf("Mirror angle: %s°", optics.FormatDegrees(p.MirrorAngle)),
		fmt.Sprintf("Object: r=%.1f, φ=%s°", p.Radius, optics.FormatDegrees(p.ObjectAngle)),
		fmt.Sprintf("Number of images: %d", res.Theoretical),
		fmt.Sprintf("Formula: %s", res.Formula),
	}
	return lines
}

// StatusLine describes how many images were found, or "" when the
// enumeration reached the theoretical count.
func StatusLine(res optics.Result, adaptive bool) string {
	short := res.Shortfall()
	if short == 0 {
		return ""
	}
	mode := "fixed"
	if adaptive {
		mode = "adaptive"
	}
	return fmt.Sprintf("Showing %d of %d (%s depth %d)", res.Count(), res.Theoretical, mode, res.Depth)
}

// FormulaLines returns the mirror equation box contents, or nil for
// parallel mirrors.
func FormulaLines(res optics.Result) []string {
	if res.Parallel {
		return nil
	}
	theta := optics.FormatDegrees(res.Params.MirrorAngle)
	lines := []string{
		"Mirror equation:",
		"N = 360°/θ - 1",
		fmt.Sprintf("For θ = %s°:", theta),
	}
	if res.Exact {
		lines = append(lines, fmt.Sprintf("N = 360/%s - 1 = %d", theta, res.Theoretical))
	} else {
		lines = append(lines, fmt.Sprintf("N ≈ 360/%s ≈ %d", theta, res.Theoretical))
	}
	return lines
}

// ExplanationLines returns the explanatory notes for a result.
func ExplanationLines(res optics.Result) []string {
	if res.Parallel {
		return nil
	}
	p := res.Params
	return []string{
		fmt.Sprintf("Mirror 2 is at %s° from Mirror 1", optics.FormatDegrees(p.MirrorAngle)),
		fmt.Sprintf("Each reflection changes the angle by %s°", optics.FormatDegrees(2*p.MirrorAngle)),
		fmt.Sprintf("Images are %.1f units from the origin", p.Radius),
	}
}

// LegendEntry is one labelled swatch in the legend.
type LegendEntry struct {
	Label string
	Color color.Color
}

// LegendEntries lists the legend contents
func LegendEntries() []LegendEntry {
	return []LegendEntry{
		{"Mirror 1", ColorMirror1},
		{"Mirror 2", ColorMirror2},
		{"Object", ColorObject},
		{"Image", ColorImage},
	}
}

// Draw renders the enabled panels
func (h *HUD) Draw(r render.Renderer, dst render.Image) {
	const padding = 8
	p := h.plot

	if h.config.ShowInfo {
		lines := InfoLines(h.result)
		_, ht := h.panelSize(r, lines)
		h.drawPanel(r, dst, p.X+padding, p.Y+p.H-ht-padding, lines, colorWheat)
	}

	if h.config.ShowFormula {
		if lines := FormulaLines(h.result); lines != nil {
			w, _ := h.panelSize(r, lines)
			h.drawPanel(r, dst, p.X+p.W-w-padding, p.Y+padding, lines, colorLightBlue)
		}
	}

	if h.config.ShowExplanation {
		if lines := ExplanationLines(h.result); lines != nil {
			w, ht := h.panelSize(r, lines)
			h.drawPanel(r, dst, p.X+p.W-w-padding, p.Y+p.H-ht-padding, lines, colorLightGreen)
		}
	}

	if h.config.ShowLegend {
		h.drawLegend(r, dst, p.X+padding, p.Y+padding)
	}

	if status := StatusLine(h.result, h.adaptive); status != "" {
		sw, _ := r.MeasureText(status, 1)
		r.DrawText(dst, status, p.X+(p.W-sw)/2, p.Y+padding, colorWarning, 1)
	}
}

// panelSize returns the outer size of a panel holding lines
func (h *HUD) panelSize(r render.Renderer, lines []string) (int, int) {
	w, ht := r.MeasureText(strings.Join(lines, "\n"), 1)
	return w + 16, ht + 12
}

// drawPanel draws a semi-transparent box with text
func (h *HUD) drawPanel(r render.Renderer, dst render.Image, x, y int, lines []string, bg color.RGBA) {
	w, ht := h.panelSize(r, lines)

	bg.A = uint8(h.config.Opacity * 255)
	r.FillRect(dst, float32(x), float32(y), float32(w), float32(ht), bg)
	r.StrokeRect(dst, float32(x), float32(y), float32(w), float32(ht), 1, colorPanelEdge)
	r.DrawText(dst, strings.Join(lines, "\n"), x+8, y+6, colorPanelText, 1)
}

// drawLegend draws the color key
func (h *HUD) drawLegend(r render.Renderer, dst render.Image, x, y int) {
	entries := LegendEntries()
	const rowHeight = 18

	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = e.Label
	}
	tw, _ := r.MeasureText(strings.Join(labels, "\n"), 1)
	w, ht := tw+40, len(entries)*rowHeight+10

	bg := color.RGBA{255, 255, 255, uint8(h.config.Opacity * 255)}
	r.FillRect(dst, float32(x), float32(y), float32(w), float32(ht), bg)
	r.StrokeRect(dst, float32(x), float32(y), float32(w), float32(ht), 1, colorPanelEdge)

	for i, e := range entries {
		rowY := y + 5 + i*rowHeight
		midY := float32(rowY) + rowHeight/2
		if strings.HasPrefix(e.Label, "Mirror") {
			r.StrokeLine(dst, float32(x+8), midY, float32(x+28), midY, 3, e.Color)
		} else {
			r.FillCircle(dst, float32(x+18), midY, 5, e.Color)
		}
		_, lh := r.MeasureText(e.Label, 1)
		r.DrawText(dst, e.Label, x+34, rowY+(rowHeight-lh)/2, colorPanelText, 1)
	}
}
