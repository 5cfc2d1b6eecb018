package game

import (
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/gonum/spatial/r2"

	"chosenoffset.com/kaleidoscope/internal/render"
	"chosenoffset.com/kaleidoscope/internal/ui/hud"
)

var (
	colorBackground = color.RGBA{245, 245, 245, 255}
	colorPlot       = color.RGBA{255, 255, 255, 255}
	colorGrid       = color.RGBA{225, 225, 225, 255}
	colorAxis       = color.RGBA{150, 150, 150, 255}
	colorFrame      = color.RGBA{60, 60, 60, 255}
	colorTitle      = color.RGBA{20, 20, 20, 255}
	colorLabel      = color.RGBA{139, 0, 0, 255}
	colorObjectEdge = color.RGBA{0, 0, 0, 255}
	colorHelp       = color.RGBA{90, 90, 90, 255}

	rayColors = []color.NRGBA{
		{255, 165, 0, 178}, // orange
		{128, 0, 128, 178}, // purple
		{165, 42, 42, 178}, // brown
	}
)

const (
	title    = "Angular Mirrors - Geometric Optics"
	helpText = "R reset   T rays   D adaptive depth   P export   Arrows θ/φ   Tab/Enter edit values   Esc quit"

	// Label offset from each image, in world units along its radius
	labelOffset = 0.2
)

// Draw renders the whole screen.
func (g *Game) Draw(screen render.Image) {
	screen.Fill(colorBackground)

	g.drawPlotArea(screen)
	g.drawMirrors(screen)
	g.drawRays(screen)
	g.drawImages(screen)
	g.drawObject(screen)

	g.HUD.Draw(g.Renderer, screen)
	g.drawControls(screen)
	g.drawUI(screen)
}

// drawPlotArea draws the plot background, grid, axes and title.
func (g *Game) drawPlotArea(screen render.Image) {
	r := g.Renderer
	rect := g.View.Rect
	x, y, w, h := float32(rect.X), float32(rect.Y), float32(rect.W), float32(rect.H)

	r.FillRect(screen, x, y, w, h, colorPlot)

	extent := g.Config.View.Extent
	step := g.Config.View.GridStep
	if step > 0 {
		for v := -math.Floor(extent/step) * step; v <= extent; v += step {
			gx, _ := g.View.ToScreen(r2.Vec{X: v})
			_, gy := g.View.ToScreen(r2.Vec{Y: v})
			r.StrokeLine(screen, gx, y, gx, y+h, 1, colorGrid)
			r.StrokeLine(screen, x, gy, x+w, gy, 1, colorGrid)
		}
	}

	ox, oy := g.View.ToScreen(r2.Vec{})
	r.StrokeLine(screen, x, oy, x+w, oy, 1, colorAxis)
	r.StrokeLine(screen, ox, y, ox, y+h, 1, colorAxis)
	r.StrokeRect(screen, x, y, w, h, 1, colorFrame)

	tw, th := r.MeasureText(title, 1.1)
	r.DrawText(screen, title, rect.X+(rect.W-tw)/2, rect.Y-th-4, colorTitle, 1.1)
}

// drawMirrors draws mirror 1 along 0° and mirror 2 along θ.
func (g *Game) drawMirrors(screen render.Image) {
	length := g.Config.View.MirrorLength
	theta := g.State.Params().MirrorAngle * math.Pi / 180

	ox, oy := g.View.ToScreen(r2.Vec{})
	x1, y1 := g.View.ToScreen(r2.Vec{X: length})
	x2, y2 := g.View.ToScreen(r2.Scale(length, r2.Vec{X: math.Cos(theta), Y: math.Sin(theta)}))

	g.Renderer.StrokeLine(screen, ox, oy, x1, y1, 3, hud.ColorMirror1)
	g.Renderer.StrokeLine(screen, ox, oy, x2, y2, 3, hud.ColorMirror2)
}

// drawObject draws the real object as a green dot with a black edge.
func (g *Game) drawObject(screen render.Image) {
	x, y := g.View.ToScreen(g.State.Result().Object)
	g.Renderer.FillCircle(screen, x, y, 9, hud.ColorObject)
	g.Renderer.StrokeCircle(screen, x, y, 9, 2, colorObjectEdge)
}

// drawImages draws each virtual image with its number next to it.
func (g *Game) drawImages(screen render.Image) {
	for i, im := range g.State.Result().Images {
		x, y := g.View.ToScreen(im.Pos)
		g.Renderer.FillCircle(screen, x, y, 6, hud.ColorImage)

		if !g.Config.Display.ShowLabels {
			continue
		}
		dir := math.Atan2(im.Pos.Y, im.Pos.X)
		at := r2.Add(im.Pos, r2.Vec{X: labelOffset * math.Cos(dir), Y: labelOffset * math.Sin(dir)})
		lx, ly := g.View.ToScreen(at)
		label := strconv.Itoa(i + 1)
		tw, th := g.Renderer.MeasureText(label, 0.8)
		g.Renderer.DrawText(screen, label, int(lx)-tw/2, int(ly)-th/2, colorLabel, 0.8)
	}
}

// drawRays draws each ray path as a dashed line ending in an arrowhead.
func (g *Game) drawRays(screen render.Image) {
	for i, path := range g.State.Rays() {
		clr := rayColors[i%len(rayColors)]
		x0, y0 := g.View.ToScreen(path[0])
		x1, y1 := g.View.ToScreen(path[1])
		g.drawDashedLine(screen, x0, y0, x1, y1, 8, 5, 1.5, clr)
		g.drawArrowHead(screen, x0, y0, x1, y1, 12, clr)
	}
}

// drawDashedLine strokes alternating dash and gap lengths from (x0, y0).
func (g *Game) drawDashedLine(screen render.Image, x0, y0, x1, y1, dash, gap, width float32, clr color.Color) {
	dx, dy := x1-x0, y1-y0
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		return
	}
	ux, uy := dx/length, dy/length

	for d := float32(0); d < length; d += dash + gap {
		end := d + dash
		if end > length {
			end = length
		}
		g.Renderer.StrokeLine(screen, x0+ux*d, y0+uy*d, x0+ux*end, y0+uy*end, width, clr)
	}
}

// drawArrowHead fills a triangle pointing at (x1, y1) along the segment.
func (g *Game) drawArrowHead(screen render.Image, x0, y0, x1, y1, size float32, clr color.Color) {
	dx, dy := x1-x0, y1-y0
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length < size {
		return
	}
	ux, uy := dx/length, dy/length
	bx, by := x1-ux*size, y1-uy*size
	px, py := -uy*size*0.4, ux*size*0.4

	g.Renderer.FillPolygon(screen, []render.Point{
		{X: x1, Y: y1},
		{X: bx + px, Y: by + py},
		{X: bx - px, Y: by - py},
	}, clr)
}

// drawControls draws the sliders, text boxes, checkbox and reset button.
func (g *Game) drawControls(screen render.Image) {
	r := g.Renderer
	g.thetaSlider.Draw(r, screen)
	g.phiSlider.Draw(r, screen)
	g.radiusSlider.Draw(r, screen)
	for _, box := range g.textBoxes() {
		box.Draw(r, screen)
	}
	g.raysCheck.Draw(r, screen)
	g.resetButton.Draw(r, screen)
}

// drawUI draws fading messages over the plot and the key help line.
func (g *Game) drawUI(screen render.Image) {
	rect := g.View.Rect
	y := rect.Y + rect.H - 30
	for i := len(g.Messages) - 1; i >= 0; i-- {
		msg := g.Messages[i]
		alpha := uint8(255 * (msg.TimeLeft / msg.MaxTime))
		tw, _ := g.Renderer.MeasureText(msg.Text, 1)
		g.Renderer.DrawText(screen, msg.Text, rect.X+(rect.W-tw)/2, y, color.NRGBA{150, 20, 20, alpha}, 1.0)
		y -= 20
	}

	_, th := g.Renderer.MeasureText(helpText, 0.9)
	g.Renderer.DrawText(screen, helpText, 20, g.ScreenHeight-th-8, colorHelp, 0.9)
}
