// Package controls provides the small set of immediate-mode widgets used by
// the mirror simulation: sliders, numeric text boxes, a checkbox and buttons.
// Widgets read input through render.InputManager and draw through
// render.Renderer, so they can be exercised without a window.
package controls

import (
	"fmt"
	"image/color"
	"math"

	"chosenoffset.com/kaleidoscope/internal/render"
)

// Palette shared by every widget
var (
	colorTrack      = color.RGBA{200, 200, 205, 255}
	colorFill       = color.RGBA{90, 130, 200, 255}
	colorKnob       = color.RGBA{60, 90, 160, 255}
	colorKnobActive = color.RGBA{30, 60, 130, 255}
	colorText       = color.RGBA{20, 20, 20, 255}
	colorBox        = color.RGBA{255, 255, 255, 255}
	colorBorder     = color.RGBA{120, 120, 130, 255}
	colorFocus      = color.RGBA{60, 110, 220, 255}
	colorButton     = color.RGBA{225, 225, 230, 255}
	colorButtonHot  = color.RGBA{205, 215, 235, 255}
	colorButtonDown = color.RGBA{180, 195, 225, 255}
)

// Rect is an axis-aligned screen rectangle.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (px, py) lies inside the rectangle.
func (r Rect) Contains(px, py int) bool {
	return px >= r.X && px < r.X+r.W && py >= r.Y && py < r.Y+r.H
}

// Slider is a horizontal value slider. Clicking the track jumps to the
// clicked value and dragging follows the cursor.
type Slider struct {
	Label  string
	Bounds Rect
	Min    float64
	Max    float64
	Step   float64 // 0 = continuous
	Format string  // fmt verb for the value readout

	value    float64
	dragging bool
}

// NewSlider creates a slider with its value clamped into [min, max].
func NewSlider(label string, bounds Rect, min, max, step, value float64) *Slider {
	s := &Slider{
		Label:  label,
		Bounds: bounds,
		Min:    min,
		Max:    max,
		Step:   step,
		Format: "%.1f",
	}
	s.SetValue(value)
	return s
}

// Value returns the current value.
func (s *Slider) Value() float64 {
	return s.value
}

// SetValue moves the knob without reporting a change. The value is clamped
// but not snapped, so typed values keep their precision.
func (s *Slider) SetValue(v float64) {
	if math.IsNaN(v) {
		v = s.Min
	}
	s.value = math.Max(s.Min, math.Min(s.Max, v))
}

// Dragging reports whether the knob is held.
func (s *Slider) Dragging() bool {
	return s.dragging
}

func (s *Slider) snap(v float64) float64 {
	if math.IsNaN(v) {
		return s.Min
	}
	if s.Step > 0 {
		v = s.Min + math.Round((v-s.Min)/s.Step)*s.Step
	}
	return math.Max(s.Min, math.Min(s.Max, v))
}

// valueAt converts a cursor x coordinate into a slider value.
func (s *Slider) valueAt(x int) float64 {
	if s.Bounds.W <= 0 {
		return s.Min
	}
	t := float64(x-s.Bounds.X) / float64(s.Bounds.W)
	t = math.Max(0, math.Min(1, t))
	return s.snap(s.Min + t*(s.Max-s.Min))
}

// Update handles mouse interaction and reports whether the value changed.
func (s *Slider) Update(in render.InputManager) bool {
	mx, my := in.GetCursorPosition()

	if in.IsMouseButtonJustPressed(render.MouseButtonLeft) && s.Bounds.Contains(mx, my) {
		s.dragging = true
	}
	if !s.dragging {
		return false
	}

	v := s.valueAt(mx)
	if in.IsMouseButtonJustReleased(render.MouseButtonLeft) || !in.IsMouseButtonPressed(render.MouseButtonLeft) {
		s.dragging = false
	}
	if v == s.value {
		return false
	}
	s.value = v
	return true
}

// fraction returns the knob position in [0, 1].
func (s *Slider) fraction() float64 {
	if s.Max == s.Min {
		return 0
	}
	return (s.value - s.Min) / (s.Max - s.Min)
}

// Draw renders the label, track, knob and value readout.
func (s *Slider) Draw(r render.Renderer, dst render.Image) {
	b := s.Bounds
	midY := float32(b.Y) + float32(b.H)/2

	label := fmt.Sprintf("%s: "+s.Format, s.Label, s.value)
	_, th := r.MeasureText(label, 1)
	r.DrawText(dst, label, b.X, b.Y-th-2, colorText, 1)

	r.FillRect(dst, float32(b.X), midY-2, float32(b.W), 4, colorTrack)
	knobX := float32(b.X) + float32(s.fraction())*float32(b.W)
	r.FillRect(dst, float32(b.X), midY-2, knobX-float32(b.X), 4, colorFill)

	knob := colorKnob
	if s.dragging {
		knob = colorKnobActive
	}
	r.FillCircle(dst, knobX, midY, float32(b.H)/2, knob)
}

// TextBox is a single-line text entry. It takes keyboard input while focused
// and reports the text when Enter is pressed.
type TextBox struct {
	Label  string
	Bounds Rect
	MaxLen int

	text    string
	focused bool
}

// NewTextBox creates an unfocused text box.
func NewTextBox(label string, bounds Rect, text string) *TextBox {
	return &TextBox{Label: label, Bounds: bounds, MaxLen: 16, text: text}
}

// Text returns the current contents.
func (t *TextBox) Text() string {
	return t.text
}

// SetText replaces the contents. Ignored while the user is typing.
func (t *TextBox) SetText(text string) {
	if t.focused {
		return
	}
	t.text = text
}

// Focused reports whether the box has keyboard focus.
func (t *TextBox) Focused() bool {
	return t.focused
}

// SetFocused gives or removes keyboard focus.
func (t *TextBox) SetFocused(focused bool) {
	t.focused = focused
}

// Update handles focus changes and typing. It returns the text and true when
// the user submits with Enter. Submitting keeps the focus.
func (t *TextBox) Update(in render.InputManager) (string, bool) {
	if in.IsMouseButtonJustPressed(render.MouseButtonLeft) {
		mx, my := in.GetCursorPosition()
		t.focused = t.Bounds.Contains(mx, my)
	}
	if !t.focused {
		return "", false
	}

	if in.IsKeyJustPressed(render.KeyBackspace) && len(t.text) > 0 {
		runes := []rune(t.text)
		t.text = string(runes[:len(runes)-1])
	}

	chars := in.AppendInputChars(nil)
	for _, c := range chars {
		if t.MaxLen > 0 && len([]rune(t.text)) >= t.MaxLen {
			break
		}
		t.text += string(c)
	}

	if in.IsKeyJustPressed(render.KeyEnter) {
		return t.text, true
	}
	return "", false
}

// Draw renders the label to the left of the box and the contents inside.
func (t *TextBox) Draw(r render.Renderer, dst render.Image) {
	b := t.Bounds
	lw, lh := r.MeasureText(t.Label, 1)
	r.DrawText(dst, t.Label, b.X-lw-6, b.Y+(b.H-lh)/2, colorText, 1)

	r.FillRect(dst, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), colorBox)
	border, width := colorBorder, float32(1)
	if t.focused {
		border, width = colorFocus, 2
	}
	r.StrokeRect(dst, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), width, border)

	content := t.text
	if t.focused {
		content += "|"
	}
	_, ch := r.MeasureText(content, 1)
	r.DrawText(dst, content, b.X+4, b.Y+(b.H-ch)/2, colorText, 1)
}

// Focusable is a widget that takes keyboard focus.
type Focusable interface {
	Focused() bool
	SetFocused(bool)
}

// FocusNext moves focus to the next widget in order, or the previous one when
// backwards is set. With nothing focused the first (or last) widget wins.
func FocusNext(widgets []Focusable, backwards bool) {
	if len(widgets) == 0 {
		return
	}

	current := -1
	for i, w := range widgets {
		if w.Focused() {
			current = i
		}
		w.SetFocused(false)
	}

	var next int
	switch {
	case current < 0 && backwards:
		next = len(widgets) - 1
	case current < 0:
		next = 0
	case backwards:
		next = (current - 1 + len(widgets)) % len(widgets)
	default:
		next = (current + 1) % len(widgets)
	}
	widgets[next].SetFocused(true)
}

// Checkbox toggles a boolean on click.
type Checkbox struct {
	Label   string
	Bounds  Rect // The square box; the label is drawn to its right
	Checked bool
}

// Update toggles the box when it is clicked and reports the change.
func (c *Checkbox) Update(in render.InputManager) bool {
	if !in.IsMouseButtonJustPressed(render.MouseButtonLeft) {
		return false
	}
	mx, my := in.GetCursorPosition()
	if !c.hitArea().Contains(mx, my) {
		return false
	}
	c.Checked = !c.Checked
	return true
}

// hitArea includes the label so the text is clickable too.
func (c *Checkbox) hitArea() Rect {
	area := c.Bounds
	area.W += 8 + 8*len(c.Label)
	return area
}

// Draw renders the box, the tick and the label.
func (c *Checkbox) Draw(r render.Renderer, dst render.Image) {
	b := c.Bounds
	r.FillRect(dst, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), colorBox)
	r.StrokeRect(dst, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 1, colorBorder)
	if c.Checked {
		x0, y0 := float32(b.X), float32(b.Y)
		w, h := float32(b.W), float32(b.H)
		r.StrokeLine(dst, x0+w*0.2, y0+h*0.55, x0+w*0.42, y0+h*0.78, 2, colorKnob)
		r.StrokeLine(dst, x0+w*0.42, y0+h*0.78, x0+w*0.82, y0+h*0.22, 2, colorKnob)
	}
	_, lh := r.MeasureText(c.Label, 1)
	r.DrawText(dst, c.Label, b.X+b.W+8, b.Y+(b.H-lh)/2, colorText, 1)
}

// Button fires when the mouse is pressed and released over it.
type Button struct {
	Label  string
	Bounds Rect

	hovered bool
	pressed bool
}

// Update tracks hover and press state and reports a completed click.
func (b *Button) Update(in render.InputManager) bool {
	mx, my := in.GetCursorPosition()
	b.hovered = b.Bounds.Contains(mx, my)

	if b.hovered && in.IsMouseButtonJustPressed(render.MouseButtonLeft) {
		b.pressed = true
	}
	if in.IsMouseButtonJustReleased(render.MouseButtonLeft) {
		clicked := b.pressed && b.hovered
		b.pressed = false
		return clicked
	}
	return false
}

// Draw renders the button with hover and pressed feedback.
func (b *Button) Draw(r render.Renderer, dst render.Image) {
	bg := colorButton
	switch {
	case b.pressed:
		bg = colorButtonDown
	case b.hovered:
		bg = colorButtonHot
	}
	x, y, w, h := float32(b.Bounds.X), float32(b.Bounds.Y), float32(b.Bounds.W), float32(b.Bounds.H)
	r.FillRect(dst, x, y, w, h, bg)
	r.StrokeRect(dst, x, y, w, h, 1, colorBorder)

	tw, th := r.MeasureText(b.Label, 1)
	r.DrawText(dst, b.Label, b.Bounds.X+(b.Bounds.W-tw)/2, b.Bounds.Y+(b.Bounds.H-th)/2, colorText, 1)
}
