// Package rendertest provides in-memory implementations of the render
// interfaces for tests that run without a window or GPU.
package rendertest

import (
	"image/color"
	"strings"

	"chosenoffset.com/kaleidoscope/internal/render"
)

// Op records one draw call made on a Renderer.
type Op struct {
	Kind   string // "circle", "stroke-circle", "rect", "stroke-rect", "line", "polygon", "text"
	X, Y   float32
	X1, Y1 float32
	Text   string
	Color  color.Color
}

// Renderer records draw calls. Text is measured as 7x14 pixels per rune.
type Renderer struct {
	Ops []Op
}

var _ render.Renderer = (*Renderer)(nil)

func (r *Renderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "circle", X: x, Y: y, Color: clr})
}

func (r *Renderer) StrokeCircle(dst render.Image, x, y, radius float32, strokeWidth float32, clr color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "stroke-circle", X: x, Y: y, Color: clr})
}

func (r *Renderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "rect", X: x, Y: y, X1: x + width, Y1: y + height, Color: clr})
}

func (r *Renderer) StrokeRect(dst render.Image, x, y, width, height float32, strokeWidth float32, clr color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "stroke-rect", X: x, Y: y, X1: x + width, Y1: y + height, Color: clr})
}

func (r *Renderer) StrokeLine(dst render.Image, x0, y0, x1, y1 float32, strokeWidth float32, clr color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "line", X: x0, Y: y0, X1: x1, Y1: y1, Color: clr})
}

func (r *Renderer) FillPolygon(dst render.Image, points []render.Point, clr color.Color) {
	if len(points) == 0 {
		return
	}
	r.Ops = append(r.Ops, Op{Kind: "polygon", X: points[0].X, Y: points[0].Y, Color: clr})
}

func (r *Renderer) DrawText(dst render.Image, text string, x, y int, clr color.Color, scale float64) {
	r.Ops = append(r.Ops, Op{Kind: "text", X: float32(x), Y: float32(y), Text: text, Color: clr})
}

func (r *Renderer) MeasureText(text string, scale float64) (width, height int) {
	if scale <= 0 {
		scale = 1
	}
	widest := 0
	lines := strings.Split(text, "\n")
	for _, line := range lines {
		if n := len([]rune(line)); n > widest {
			widest = n
		}
	}
	return int(float64(widest*7) * scale), int(float64(len(lines)*14) * scale)
}

// Count returns the number of recorded ops of a kind.
func (r *Renderer) Count(kind string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Texts returns every string drawn, in order.
func (r *Renderer) Texts() []string {
	var texts []string
	for _, op := range r.Ops {
		if op.Kind == "text" {
			texts = append(texts, op.Text)
		}
	}
	return texts
}

// HasText reports whether any drawn string contains substr.
func (r *Renderer) HasText(substr string) bool {
	for _, t := range r.Texts() {
		if strings.Contains(t, substr) {
			return true
		}
	}
	return false
}

// Reset forgets recorded ops.
func (r *Renderer) Reset() {
	r.Ops = r.Ops[:0]
}

// Image is a sized surface that records its last fill color.
type Image struct {
	W, H   int
	Filled color.Color
}

var _ render.Image = (*Image)(nil)

func (i *Image) Fill(clr color.Color) { i.Filled = clr }

// Input is a scripted InputManager. Tests set the fields for one tick, call
// Update on the widget, then call Next to clear the edge-triggered state.
type Input struct {
	MouseX, MouseY int

	Held         map[render.MouseButton]bool
	JustPressed  map[render.MouseButton]bool
	JustReleased map[render.MouseButton]bool

	Keys     map[render.Key]bool
	KeysJust map[render.Key]bool
	Chars    []rune
}

var _ render.InputManager = (*Input)(nil)

// NewInput creates an idle input with the cursor at the origin.
func NewInput() *Input {
	in := &Input{}
	in.reset()
	in.Held = make(map[render.MouseButton]bool)
	in.Keys = make(map[render.Key]bool)
	return in
}

func (in *Input) reset() {
	in.JustPressed = make(map[render.MouseButton]bool)
	in.JustReleased = make(map[render.MouseButton]bool)
	in.KeysJust = make(map[render.Key]bool)
	in.Chars = nil
}

// Next ends the current tick.
func (in *Input) Next() {
	in.reset()
}

// MoveTo places the cursor.
func (in *Input) MoveTo(x, y int) {
	in.MouseX, in.MouseY = x, y
}

// Press pushes the left button down at (x, y) this tick.
func (in *Input) Press(x, y int) {
	in.MoveTo(x, y)
	in.Held[render.MouseButtonLeft] = true
	in.JustPressed[render.MouseButtonLeft] = true
}

// Release lets go of the left button at (x, y) this tick.
func (in *Input) Release(x, y int) {
	in.MoveTo(x, y)
	in.Held[render.MouseButtonLeft] = false
	in.JustReleased[render.MouseButtonLeft] = true
}

// Tap presses a key this tick.
func (in *Input) Tap(key render.Key) {
	in.KeysJust[key] = true
}

// Type queues typed characters for this tick.
func (in *Input) Type(s string) {
	in.Chars = append(in.Chars, []rune(s)...)
}

func (in *Input) IsKeyPressed(key render.Key) bool     { return in.Keys[key] || in.KeysJust[key] }
func (in *Input) IsKeyJustPressed(key render.Key) bool { return in.KeysJust[key] }
func (in *Input) GetCursorPosition() (x, y int)        { return in.MouseX, in.MouseY }

func (in *Input) IsMouseButtonPressed(b render.MouseButton) bool      { return in.Held[b] }
func (in *Input) IsMouseButtonJustPressed(b render.MouseButton) bool  { return in.JustPressed[b] }
func (in *Input) IsMouseButtonJustReleased(b render.MouseButton) bool { return in.JustReleased[b] }

func (in *Input) AppendInputChars(runes []rune) []rune {
	return append(runes, in.Chars...)
}
