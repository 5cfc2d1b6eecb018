package game

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"gonum.org/v1/gonum/floats/scalar"

	"chosenoffset.com/kaleidoscope/internal/core/optics"
	"chosenoffset.com/kaleidoscope/internal/plotexport"
	"chosenoffset.com/kaleidoscope/internal/render"
	"chosenoffset.com/kaleidoscope/internal/simulation"
	"chosenoffset.com/kaleidoscope/internal/ui/controls"
	"chosenoffset.com/kaleidoscope/internal/ui/hud"
)

// messageDuration is how long on-screen messages stay visible, in seconds.
const messageDuration = 3.0

// Game is the interactive front end: a plot of the mirrors and images with
// sliders, text boxes, a rays checkbox and a reset button underneath.
type Game struct {
	ScreenWidth  int
	ScreenHeight int
	Config       *simulation.Config
	State        *State
	Renderer     render.Renderer
	InputMgr     render.InputManager
	View         Viewport
	HUD          *hud.HUD

	// PickPath asks for an output file; "" means the user canceled.
	// Export is disabled while it is nil.
	PickPath func(defaultName string) (string, error)
	// Export writes the plot of a result to path.
	Export func(path string, res optics.Result, showRays bool) error

	// Controls
	thetaSlider  *controls.Slider
	phiSlider    *controls.Slider
	radiusSlider *controls.Slider
	thetaBox     *controls.TextBox
	phiBox       *controls.TextBox
	radiusBox    *controls.TextBox
	raysCheck    *controls.Checkbox
	resetButton  *controls.Button

	// UI state
	Messages []Message
}

// New creates the front end for cfg. A nil cfg uses the defaults.
func New(cfg *simulation.Config, r render.Renderer, input render.InputManager) *Game {
	if cfg == nil {
		cfg = simulation.DefaultConfig()
	}

	g := &Game{
		ScreenWidth:  cfg.View.WindowWidth,
		ScreenHeight: cfg.View.WindowHeight,
		Config:       cfg,
		State:        NewState(cfg),
		Renderer:     r,
		InputMgr:     input,
	}
	g.Export = g.exportToFile
	g.layout()

	hudConfig := hud.DefaultConfig()
	hudConfig.ShowExplanation = cfg.Display.ShowExplanation
	hudConfig.ShowLegend = cfg.Display.ShowLegend
	g.HUD = hud.New(hudConfig, g.View.Rect)

	g.syncControls()
	return g
}

// layout positions the plot and the controls for the current screen size.
func (g *Game) layout() {
	w, h := g.ScreenWidth, g.ScreenHeight

	side := w - 80
	if h-240 < side {
		side = h - 240
	}
	plot := controls.Rect{X: (w - side) / 2, Y: 24, W: side, H: side}
	g.View = Viewport{Rect: plot, Extent: g.Config.View.Extent}

	l := g.Config.Limits
	p := g.State.Params()
	rowY := plot.Y + plot.H + 40
	sliderW := w - 360
	boxX := w - 220
	sideX := w - 120

	g.thetaSlider = controls.NewSlider("Mirror angle θ", controls.Rect{X: 60, Y: rowY, W: sliderW, H: 14},
		l.MirrorAngleMin, l.MirrorAngleMax, l.MirrorAngleStep, p.MirrorAngle)
	g.thetaSlider.Format = "%.0f°"
	g.phiSlider = controls.NewSlider("Object angle φ", controls.Rect{X: 60, Y: rowY + 50, W: sliderW, H: 14},
		l.ObjectAngleMin, l.ObjectAngleMax, l.ObjectAngleStep, p.ObjectAngle)
	g.phiSlider.Format = "%.0f°"
	g.radiusSlider = controls.NewSlider("Object radius r", controls.Rect{X: 60, Y: rowY + 100, W: sliderW, H: 14},
		l.RadiusMin, l.RadiusMax, l.RadiusStep, p.Radius)
	g.radiusSlider.Format = "%.2f"

	g.thetaBox = controls.NewTextBox("θ:", controls.Rect{X: boxX, Y: rowY - 4, W: 80, H: 22}, "")
	g.phiBox = controls.NewTextBox("φ:", controls.Rect{X: boxX, Y: rowY + 46, W: 80, H: 22}, "")
	g.radiusBox = controls.NewTextBox("r:", controls.Rect{X: boxX, Y: rowY + 96, W: 80, H: 22}, "")

	g.resetButton = &controls.Button{Label: "Reset", Bounds: controls.Rect{X: sideX, Y: rowY - 6, W: 90, H: 26}}
	g.raysCheck = &controls.Checkbox{Label: "Show rays", Bounds: controls.Rect{X: sideX, Y: rowY + 49, W: 16, H: 16}}
}

// textBoxes returns the entry boxes in tab order.
func (g *Game) textBoxes() []*controls.TextBox {
	return []*controls.TextBox{g.thetaBox, g.phiBox, g.radiusBox}
}

func (g *Game) typing() bool {
	for _, box := range g.textBoxes() {
		if box.Focused() {
			return true
		}
	}
	return false
}

// Update handles input for one tick.
func (g *Game) Update() error {
	// Delta time for timers (assuming 60 FPS)
	dt := 1.0 / 60.0
	g.updateMessages(dt)

	in := g.InputMgr
	typing := g.typing()

	// Escape leaves a text box first, then quits
	if in.IsKeyJustPressed(render.KeyEscape) {
		if !typing {
			return render.ErrQuit
		}
		for _, box := range g.textBoxes() {
			box.SetFocused(false)
		}
		g.syncControls()
		return nil
	}

	// Shortcuts share keys with text entry, so they only apply when not typing
	if !typing {
		switch {
		case in.IsKeyJustPressed(render.KeyQ):
			return render.ErrQuit
		case in.IsKeyJustPressed(render.KeyR):
			g.reset()
		case in.IsKeyJustPressed(render.KeyT):
			g.toggleRays()
		case in.IsKeyJustPressed(render.KeyD):
			if g.State.ToggleAdaptive() {
				g.ShowMessage("Adaptive depth on")
			} else {
				g.ShowMessage("Adaptive depth off")
			}
		case in.IsKeyJustPressed(render.KeyP):
			g.exportPlot()
		}
		g.nudge(in)
	}

	if in.IsKeyJustPressed(render.KeyTab) {
		boxes := g.textBoxes()
		focusables := make([]controls.Focusable, len(boxes))
		for i, box := range boxes {
			focusables[i] = box
		}
		controls.FocusNext(focusables, in.IsKeyPressed(render.KeyShift))
	}

	// Sliders
	if g.thetaSlider.Update(in) {
		g.State.SetMirrorAngle(g.thetaSlider.Value())
	}
	if g.phiSlider.Update(in) {
		g.State.SetObjectAngle(g.phiSlider.Value())
	}
	if g.radiusSlider.Update(in) {
		g.State.SetRadius(g.radiusSlider.Value())
	}

	// Text entry
	fields := []Field{FieldMirrorAngle, FieldObjectAngle, FieldRadius}
	for i, box := range g.textBoxes() {
		if text, ok := box.Update(in); ok {
			g.submit(fields[i], box, text)
		}
	}

	if g.raysCheck.Update(in) {
		g.toggleRays()
	}
	if g.resetButton.Update(in) {
		g.reset()
	}

	// Click-to-place inside the plot
	if in.IsMouseButtonJustPressed(render.MouseButtonLeft) {
		mx, my := in.GetCursorPosition()
		if g.View.Contains(mx, my) {
			p := g.View.ToWorld(mx, my)
			if !g.State.PlaceObject(p.X, p.Y) {
				log.Printf("Click at (%.2f, %.2f) outside radius range, angle only", p.X, p.Y)
			}
		}
	}

	g.syncControls()
	return nil
}

// nudge moves θ with the left/right arrows and φ with up/down, one slider
// step per press.
func (g *Game) nudge(in render.InputManager) {
	l := g.Config.Limits
	p := g.State.Params()
	switch {
	case in.IsKeyJustPressed(render.KeyLeft):
		g.State.SetMirrorAngle(p.MirrorAngle - stepOrOne(l.MirrorAngleStep))
	case in.IsKeyJustPressed(render.KeyRight):
		g.State.SetMirrorAngle(p.MirrorAngle + stepOrOne(l.MirrorAngleStep))
	case in.IsKeyJustPressed(render.KeyUp):
		g.State.SetObjectAngle(p.ObjectAngle + stepOrOne(l.ObjectAngleStep))
	case in.IsKeyJustPressed(render.KeyDown):
		g.State.SetObjectAngle(p.ObjectAngle - stepOrOne(l.ObjectAngleStep))
	}
}

// stepOrOne returns step, or 1 for continuous sliders.
func stepOrOne(step float64) float64 {
	if step > 0 {
		return step
	}
	return 1
}

// submit applies typed text and reports rejections on screen.
func (g *Game) submit(field Field, box *controls.TextBox, text string) {
	err := g.State.Submit(field, text)
	if err == nil {
		box.SetFocused(false)
		return
	}

	log.Printf("Rejected %s input %q: %v", field, text, err)
	switch {
	case errors.Is(err, optics.ErrInvalidNumber):
		g.ShowMessage("Enter a valid number")
	case errors.Is(err, optics.ErrInvalidAngle):
		g.ShowMessage(fmt.Sprintf("Angle must be between %s and %s°",
			optics.FormatDegrees(optics.MinMirrorAngle), optics.FormatDegrees(optics.MaxMirrorAngle)))
	case errors.Is(err, optics.ErrInvalidRadius):
		g.ShowMessage("Radius must be greater than 0")
	default:
		g.ShowMessage(err.Error())
	}
}

func (g *Game) reset() {
	for _, box := range g.textBoxes() {
		box.SetFocused(false)
	}
	g.State.Reset()
	g.syncControls()
}

func (g *Game) toggleRays() {
	g.State.ToggleRays()
	g.raysCheck.Checked = g.State.ShowRays()
}

// syncControls pushes the current state into every widget and the HUD.
func (g *Game) syncControls() {
	p := g.State.Params()

	g.thetaSlider.SetValue(p.MirrorAngle)
	g.phiSlider.SetValue(p.ObjectAngle)
	g.radiusSlider.SetValue(p.Radius)

	g.thetaBox.SetText(formatValue(p.MirrorAngle))
	g.phiBox.SetText(formatValue(p.ObjectAngle))
	g.radiusBox.SetText(formatValue(p.Radius))

	g.raysCheck.Checked = g.State.ShowRays()
	g.HUD.SetResult(g.State.Result(), g.State.Adaptive())
}

// formatValue prints v with at most three decimals and no trailing zeros.
func formatValue(v float64) string {
	return strconv.FormatFloat(scalar.Round(v, 3), 'f', -1, 64)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenWidth, g.ScreenHeight
}

func (g *Game) updateMessages(dt float64) {
	var active []Message
	for _, msg := range g.Messages {
		msg.TimeLeft -= dt
		if msg.TimeLeft > 0 {
			active = append(active, msg)
		}
	}
	g.Messages = active
}

// ShowMessage adds a new message to be displayed on screen.
func (g *Game) ShowMessage(text string) {
	g.Messages = append(g.Messages, Message{
		Text:     text,
		TimeLeft: messageDuration,
		MaxTime:  messageDuration,
	})

	log.Printf("Message: %s", text)
}

// exportPlot asks for a file name and writes the current plot to it.
func (g *Game) exportPlot() {
	if g.PickPath == nil || g.Export == nil {
		g.ShowMessage("Export is not available")
		return
	}

	path, err := g.PickPath(plotexport.DefaultName(g.State.Params()))
	if err != nil {
		g.ShowMessage(fmt.Sprintf("Export failed: %v", err))
		return
	}
	if path == "" {
		return
	}

	if err := g.Export(path, g.State.Result(), g.State.ShowRays()); err != nil {
		g.ShowMessage(fmt.Sprintf("Export failed: %v", err))
		return
	}
	g.ShowMessage("Saved " + path)
}

// exportToFile is the default exporter, configured from the view and
// display settings.
func (g *Game) exportToFile(path string, res optics.Result, showRays bool) error {
	opts := plotexport.DefaultOptions()
	opts.Extent = g.Config.View.Extent
	opts.MirrorLength = g.Config.View.MirrorLength
	opts.ShowLabels = g.Config.Display.ShowLabels
	opts.ShowLegend = g.Config.Display.ShowLegend
	opts.ShowRays = showRays
	return plotexport.Save(path, res, opts)
}
