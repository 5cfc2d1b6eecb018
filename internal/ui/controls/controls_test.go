package controls

import (
	"math"
	"testing"

	"chosenoffset.com/kaleidoscope/internal/render"
	"chosenoffset.com/kaleidoscope/internal/render/rendertest"
)

func TestSliderClickAndDrag(t *testing.T) {
	s := NewSlider("θ", Rect{X: 100, Y: 50, W: 200, H: 16}, 1, 270, 1, 60)
	in := rendertest.NewInput()

	// Click a quarter of the way along the track.
	in.Press(150, 55)
	if !s.Update(in) {
		t.Fatal("Expected click on track to change value")
	}
	if s.Value() != 68 {
		t.Errorf("Expected 68, got %v", s.Value())
	}
	if !s.Dragging() {
		t.Error("Expected slider to be dragging")
	}
	in.Next()

	// Drag past the end; the value clamps.
	in.MoveTo(400, 200)
	if !s.Update(in) {
		t.Fatal("Expected drag to change value")
	}
	if s.Value() != 270 {
		t.Errorf("Expected clamp to 270, got %v", s.Value())
	}
	in.Next()

	in.Release(400, 200)
	if s.Update(in) {
		t.Error("Expected release at same value to report no change")
	}
	if s.Dragging() {
		t.Error("Expected drag to end on release")
	}
	in.Next()

	in.MoveTo(100, 55)
	if s.Update(in) {
		t.Error("Expected no change after release")
	}
}

func TestSliderIgnoresClicksOutside(t *testing.T) {
	s := NewSlider("r", Rect{X: 100, Y: 50, W: 200, H: 16}, 0.5, 4.5, 0.1, 3)
	in := rendertest.NewInput()

	in.Press(150, 10)
	if s.Update(in) {
		t.Error("Expected click above the track to be ignored")
	}
	if s.Value() != 3 {
		t.Errorf("Expected 3, got %v", s.Value())
	}
}

func TestSliderSnap(t *testing.T) {
	s := NewSlider("r", Rect{W: 100, H: 10}, 0.5, 4.5, 0.1, 2.34)
	if s.Value() != 2.34 {
		t.Errorf("Expected SetValue to keep 2.34, got %v", s.Value())
	}

	// Dragging snaps to the step.
	in := rendertest.NewInput()
	in.Press(46, 5)
	s.Update(in)
	if math.Abs(s.Value()-2.3) > 1e-9 {
		t.Errorf("Expected drag to snap to 2.3, got %v", s.Value())
	}

	s.SetValue(10)
	if s.Value() != 4.5 {
		t.Errorf("Expected clamp to 4.5, got %v", s.Value())
	}
	s.SetValue(math.NaN())
	if s.Value() != 0.5 {
		t.Errorf("Expected NaN to reset to min, got %v", s.Value())
	}

	continuous := NewSlider("φ", Rect{W: 100, H: 10}, 0, 360, 0, 47.25)
	if continuous.Value() != 47.25 {
		t.Errorf("Expected continuous slider to keep 47.25, got %v", continuous.Value())
	}
}

func TestTextBoxTypingAndSubmit(t *testing.T) {
	box := NewTextBox("θ", Rect{X: 10, Y: 10, W: 80, H: 20}, "60")
	in := rendertest.NewInput()

	// Typing without focus does nothing.
	in.Type("9")
	if _, ok := box.Update(in); ok {
		t.Error("Expected unfocused box to ignore input")
	}
	if box.Text() != "60" {
		t.Errorf("Expected text unchanged, got %q", box.Text())
	}
	in.Next()

	in.Press(20, 15)
	box.Update(in)
	if !box.Focused() {
		t.Fatal("Expected click to focus the box")
	}
	in.Next()

	in.Tap(render.KeyBackspace)
	box.Update(in)
	in.Next()
	in.Tap(render.KeyBackspace)
	box.Update(in)
	in.Next()
	if box.Text() != "" {
		t.Errorf("Expected empty text after two backspaces, got %q", box.Text())
	}

	in.Type("45")
	in.Tap(render.KeyEnter)
	text, ok := box.Update(in)
	if !ok {
		t.Fatal("Expected Enter to submit")
	}
	if text != "45" {
		t.Errorf("Expected submitted text 45, got %q", text)
	}
	in.Next()

	// SetText is ignored while focused so it cannot clobber typing.
	box.SetText("99")
	if box.Text() != "45" {
		t.Errorf("Expected focused text to stay 45, got %q", box.Text())
	}

	in.Press(300, 300)
	box.Update(in)
	if box.Focused() {
		t.Error("Expected click outside to remove focus")
	}
	box.SetText("99")
	if box.Text() != "99" {
		t.Errorf("Expected SetText to apply after blur, got %q", box.Text())
	}
}

func TestTextBoxMaxLen(t *testing.T) {
	box := NewTextBox("r", Rect{W: 50, H: 20}, "")
	box.MaxLen = 4
	box.SetFocused(true)

	in := rendertest.NewInput()
	in.Type("123456")
	box.Update(in)
	if box.Text() != "1234" {
		t.Errorf("Expected text capped at 1234, got %q", box.Text())
	}
}

func TestFocusNext(t *testing.T) {
	a := NewTextBox("a", Rect{}, "")
	b := NewTextBox("b", Rect{}, "")
	c := NewTextBox("c", Rect{}, "")
	widgets := []Focusable{a, b, c}

	FocusNext(widgets, false)
	if !a.Focused() {
		t.Error("Expected first widget focused")
	}
	FocusNext(widgets, false)
	if a.Focused() || !b.Focused() {
		t.Error("Expected focus to move to second widget")
	}
	FocusNext(widgets, true)
	FocusNext(widgets, true)
	if !c.Focused() {
		t.Error("Expected backwards focus to wrap to last widget")
	}
	FocusNext(widgets, false)
	if !a.Focused() || c.Focused() {
		t.Error("Expected forward focus to wrap to first widget")
	}

	FocusNext(nil, false)
}

func TestCheckboxToggle(t *testing.T) {
	cb := &Checkbox{Label: "Show rays", Bounds: Rect{X: 10, Y: 10, W: 16, H: 16}}
	in := rendertest.NewInput()

	in.Press(15, 15)
	if !cb.Update(in) || !cb.Checked {
		t.Fatal("Expected click on box to check it")
	}
	in.Next()

	// The label is part of the hit area.
	in.Press(50, 15)
	if !cb.Update(in) || cb.Checked {
		t.Error("Expected click on label to uncheck it")
	}
	in.Next()

	in.Press(500, 15)
	if cb.Update(in) {
		t.Error("Expected click far away to be ignored")
	}
}

func TestButtonClick(t *testing.T) {
	btn := &Button{Label: "Reset", Bounds: Rect{X: 10, Y: 10, W: 80, H: 24}}
	in := rendertest.NewInput()

	in.Press(20, 20)
	if btn.Update(in) {
		t.Error("Expected no click on press")
	}
	in.Next()
	in.Release(25, 20)
	if !btn.Update(in) {
		t.Error("Expected click on release over the button")
	}
	in.Next()

	// Releasing elsewhere cancels the click.
	in.Press(20, 20)
	btn.Update(in)
	in.Next()
	in.Release(300, 300)
	if btn.Update(in) {
		t.Error("Expected release outside to cancel the click")
	}
}

func TestWidgetsDraw(t *testing.T) {
	r := &rendertest.Renderer{}
	dst := &rendertest.Image{W: 400, H: 400}

	s := NewSlider("Mirror angle θ", Rect{X: 100, Y: 50, W: 200, H: 16}, 1, 270, 1, 60)
	s.Format = "%.0f°"
	s.Draw(r, dst)
	if !r.HasText("Mirror angle θ: 60°") {
		t.Errorf("Expected slider readout, got %v", r.Texts())
	}

	box := NewTextBox("θ", Rect{X: 100, Y: 100, W: 60, H: 20}, "60")
	box.SetFocused(true)
	box.Draw(r, dst)
	if !r.HasText("60|") {
		t.Error("Expected caret in focused text box")
	}

	cb := &Checkbox{Label: "Show rays", Bounds: Rect{X: 10, Y: 10, W: 16, H: 16}, Checked: true}
	r.Reset()
	cb.Draw(r, dst)
	if r.Count("line") != 2 {
		t.Errorf("Expected tick mark of 2 lines, got %d", r.Count("line"))
	}
}
