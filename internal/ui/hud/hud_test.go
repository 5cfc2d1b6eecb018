package hud

import (
	"strings"
	"testing"

	"chosenoffset.com/kaleidoscope/internal/core/optics"
	"chosenoffset.com/kaleidoscope/internal/render/rendertest"
	"chosenoffset.com/kaleidoscope/internal/ui/controls"
)

func TestInfoLines(t *testing.T) {
	res := optics.Generate(optics.Params{MirrorAngle: 60, Radius: 3, ObjectAngle: 30})
	lines := InfoLines(res)

	want := []string{
		"Mirror angle: 60°",
		"Object: r=3.0, φ=30°",
		"Number of images: 5",
		"Formula: N = 360°/60° - 1 = 5",
	}
	if len(lines) != len(want) {
		t.Fatalf("Expected %d lines, got %d: %v", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("Line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestFormulaLines(t *testing.T) {
	exact := FormulaLines(optics.Generate(optics.Params{MirrorAngle: 45, Radius: 3, ObjectAngle: 10}))
	if got := exact[len(exact)-1]; got != "N = 360/45 - 1 = 7" {
		t.Errorf("Expected exact formula, got %q", got)
	}
	if exact[2] != "For θ = 45°:" {
		t.Errorf("Expected θ line, got %q", exact[2])
	}

	approx := FormulaLines(optics.Generate(optics.Params{MirrorAngle: 47.5, Radius: 3, ObjectAngle: 10}))
	if got := approx[len(approx)-1]; got != "N ≈ 360/47.5 ≈ 7" {
		t.Errorf("Expected approximate formula, got %q", got)
	}

	fractional := FormulaLines(optics.Generate(optics.Params{MirrorAngle: 22.5, Radius: 3, ObjectAngle: 10}))
	if got := fractional[len(fractional)-1]; got != "N = 360/22.5 - 1 = 15" {
		t.Errorf("Expected exact formula for 22.5°, got %q", got)
	}

	if lines := FormulaLines(optics.Generate(optics.Params{MirrorAngle: 0, Radius: 3, ObjectAngle: 10})); lines != nil {
		t.Errorf("Expected no formula box for parallel mirrors, got %v", lines)
	}
}

func TestStatusLine(t *testing.T) {
	full := optics.Generate(optics.Params{MirrorAngle: 60, Radius: 3, ObjectAngle: 30})
	if s := StatusLine(full, false); s != "" {
		t.Errorf("Expected no status for a complete result, got %q", s)
	}

	short := optics.Generate(optics.Params{MirrorAngle: 10, Radius: 3, ObjectAngle: 5})
	s := StatusLine(short, false)
	if s != "Showing 10 of 35 (fixed depth 5)" {
		t.Errorf("Unexpected status %q", s)
	}
}

func TestExplanationLines(t *testing.T) {
	lines := ExplanationLines(optics.Generate(optics.Params{MirrorAngle: 60, Radius: 3, ObjectAngle: 30}))
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(lines))
	}
	if lines[1] != "Each reflection changes the angle by 120°" {
		t.Errorf("Unexpected explanation %q", lines[1])
	}
}

func TestDrawDefaultPanels(t *testing.T) {
	r := &rendertest.Renderer{}
	dst := &rendertest.Image{W: 800, H: 800}

	h := New(nil, controls.Rect{X: 0, Y: 0, W: 600, H: 600})
	h.SetResult(optics.Generate(optics.Params{MirrorAngle: 60, Radius: 3, ObjectAngle: 30}), false)
	h.Draw(r, dst)

	if !r.HasText("Number of images: 5") {
		t.Errorf("Expected info box, got %v", r.Texts())
	}
	if !r.HasText("Mirror equation:") {
		t.Error("Expected formula box")
	}
	if r.HasText("Each reflection") {
		t.Error("Expected explanation hidden by default")
	}
	for _, text := range r.Texts() {
		if strings.Contains(text, "Object") && !strings.Contains(text, "r=3.0") {
			t.Errorf("Unexpected legend text %q with legend disabled", text)
		}
	}
}

func TestDrawOptionalPanels(t *testing.T) {
	r := &rendertest.Renderer{}
	dst := &rendertest.Image{W: 800, H: 800}

	cfg := DefaultConfig()
	cfg.ShowExplanation = true
	cfg.ShowLegend = true
	h := New(cfg, controls.Rect{X: 0, Y: 0, W: 600, H: 600})
	h.SetResult(optics.Generate(optics.Params{MirrorAngle: 10, Radius: 3, ObjectAngle: 5}), true)
	h.Draw(r, dst)

	if !r.HasText("Mirror 2 is at 10° from Mirror 1") {
		t.Error("Expected explanation panel")
	}
	for _, e := range LegendEntries() {
		if !r.HasText(e.Label) {
			t.Errorf("Expected legend entry %q", e.Label)
		}
	}
	if !r.HasText("adaptive depth") {
		t.Error("Expected shortfall status")
	}
}
