// Package plotexport renders a mirror configuration to a static image file
// with gonum/plot.
package plotexport

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"chosenoffset.com/kaleidoscope/internal/core/optics"
)

var (
	colorMirror1 = color.RGBA{0, 0, 255, 255}
	colorMirror2 = color.RGBA{255, 0, 0, 255}
	colorObject  = color.RGBA{0, 128, 0, 255}
	colorImage   = color.RGBA{255, 0, 0, 204}
	colorLabel   = color.RGBA{139, 0, 0, 255}
	colorEdge    = color.RGBA{0, 0, 0, 255}

	rayColors = []color.Color{
		color.NRGBA{255, 165, 0, 178}, // orange
		color.NRGBA{128, 0, 128, 178}, // purple
		color.NRGBA{165, 42, 42, 178}, // brown
	}
)

// Formats accepted by Save and WriteTo
var formats = map[string]bool{
	"png": true, "svg": true, "pdf": true, "jpg": true, "jpeg": true,
	"eps": true, "tif": true, "tiff": true,
}

// Options controls what is drawn and at which size.
type Options struct {
	Extent       float64 // Axes span [-Extent, Extent]
	MirrorLength float64
	ShowRays     bool
	ShowLabels   bool // Number each image
	ShowLegend   bool
	Width        vg.Length
	Height       vg.Length
}

// DefaultOptions matches the interactive view: ±5 axes, labelled images.
func DefaultOptions() Options {
	return Options{
		Extent:       5,
		MirrorLength: 5,
		ShowLabels:   true,
		Width:        6 * vg.Inch,
		Height:       6 * vg.Inch,
	}
}

// DefaultName suggests a file name for a configuration.
func DefaultName(p optics.Params) string {
	return fmt.Sprintf("mirrors-%sdeg.png", optics.FormatDegrees(p.MirrorAngle))
}

// Build creates the plot for a result.
func Build(res optics.Result, opts Options) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Angular mirrors, θ = %s°: %s", optics.FormatDegrees(res.Params.MirrorAngle), res.Formula)
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"
	p.X.Min, p.X.Max = -opts.Extent, opts.Extent
	p.Y.Min, p.Y.Max = -opts.Extent, opts.Extent
	p.Add(plotter.NewGrid())

	// Mirrors
	theta := res.Params.MirrorAngle * math.Pi / 180
	m1, err := segment(0, 0, opts.MirrorLength, 0)
	if err != nil {
		return nil, err
	}
	m1.LineStyle.Width = vg.Points(3)
	m1.LineStyle.Color = colorMirror1

	m2, err := segment(0, 0, opts.MirrorLength*math.Cos(theta), opts.MirrorLength*math.Sin(theta))
	if err != nil {
		return nil, err
	}
	m2.LineStyle.Width = vg.Points(3)
	m2.LineStyle.Color = colorMirror2
	p.Add(m1, m2)

	// Rays under the points
	for i, path := range optics.RayPaths(res.Object, res.Images, opts.ShowRays) {
		clr := rayColors[i%len(rayColors)]
		ray, err := segment(path[0].X, path[0].Y, path[1].X, path[1].Y)
		if err != nil {
			return nil, err
		}
		ray.LineStyle.Width = vg.Points(1.5)
		ray.LineStyle.Color = clr
		ray.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}

		head, err := arrowHead(path, opts.Extent/25)
		if err != nil {
			return nil, err
		}
		head.Color = clr
		head.LineStyle.Width = 0
		p.Add(ray, head)
	}

	// Images
	var images *plotter.Scatter
	if len(res.Images) > 0 {
		pts := make(plotter.XYs, len(res.Images))
		for i, im := range res.Images {
			pts[i] = plotter.XY{X: im.Pos.X, Y: im.Pos.Y}
		}
		images, err = plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("failed to plot images: %w", err)
		}
		images.GlyphStyle.Shape = draw.CircleGlyph{}
		images.GlyphStyle.Color = colorImage
		images.GlyphStyle.Radius = vg.Points(5)
		p.Add(images)

		if opts.ShowLabels {
			labels, err := imageLabels(res.Images)
			if err != nil {
				return nil, err
			}
			p.Add(labels)
		}
	}

	// Object on top, with a black edge
	obj := plotter.XYs{{X: res.Object.X, Y: res.Object.Y}}
	object, err := plotter.NewScatter(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to plot object: %w", err)
	}
	object.GlyphStyle.Shape = draw.CircleGlyph{}
	object.GlyphStyle.Color = colorObject
	object.GlyphStyle.Radius = vg.Points(7)
	edge, err := plotter.NewScatter(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to plot object: %w", err)
	}
	edge.GlyphStyle.Shape = draw.RingGlyph{}
	edge.GlyphStyle.Color = colorEdge
	edge.GlyphStyle.Radius = vg.Points(7)
	p.Add(object, edge)

	if opts.ShowLegend {
		p.Legend.Top = true
		p.Legend.Left = true
		p.Legend.Add("Mirror 1", m1)
		p.Legend.Add("Mirror 2", m2)
		p.Legend.Add("Object", object)
		if images != nil {
			p.Legend.Add("Image", images)
		}
	}

	return p, nil
}

// segment returns a two-point line.
func segment(x0, y0, x1, y1 float64) (*plotter.Line, error) {
	line, err := plotter.NewLine(plotter.XYs{{X: x0, Y: y0}, {X: x1, Y: y1}})
	if err != nil {
		return nil, fmt.Errorf("failed to plot segment: %w", err)
	}
	return line, nil
}

// arrowHead returns a triangle of the given size pointing at the end of path.
func arrowHead(path optics.RayPath, size float64) (*plotter.Polygon, error) {
	from, to := path[0], path[1]
	dx, dy := to.X-from.X, to.Y-from.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		length = 1
	}
	ux, uy := dx/length, dy/length
	bx, by := to.X-ux*size, to.Y-uy*size
	px, py := -uy*size*0.4, ux*size*0.4

	poly, err := plotter.NewPolygon(plotter.XYs{
		{X: to.X, Y: to.Y},
		{X: bx + px, Y: by + py},
		{X: bx - px, Y: by - py},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to plot arrow: %w", err)
	}
	return poly, nil
}

// imageLabels numbers the images, offset 0.2 units outwards along their radius.
func imageLabels(images []optics.Image) (*plotter.Labels, error) {
	xys := make(plotter.XYs, len(images))
	names := make([]string, len(images))
	for i, im := range images {
		dir := math.Atan2(im.Pos.Y, im.Pos.X)
		xys[i] = plotter.XY{X: im.Pos.X + 0.2*math.Cos(dir), Y: im.Pos.Y + 0.2*math.Sin(dir)}
		names[i] = strconv.Itoa(i + 1)
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: names})
	if err != nil {
		return nil, fmt.Errorf("failed to label images: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Color = colorLabel
	}
	return labels, nil
}

// formatOf returns the lower-case extension of path without the dot.
func formatOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Save writes the plot to path. The format follows the file extension.
func Save(path string, res optics.Result, opts Options) error {
	format := formatOf(path)
	if !formats[format] {
		return fmt.Errorf("unsupported export format %q", filepath.Ext(path))
	}

	p, err := Build(res, opts)
	if err != nil {
		return err
	}
	if err := p.Save(opts.Width, opts.Height, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}

// WriteTo writes the plot to w in the given format (png, svg, pdf, ...).
func WriteTo(w io.Writer, format string, res optics.Result, opts Options) error {
	format = strings.ToLower(format)
	if !formats[format] {
		return fmt.Errorf("unsupported export format %q", format)
	}

	p, err := Build(res, opts)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(opts.Width, opts.Height, format)
	if err != nil {
		return fmt.Errorf("failed to render plot: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write plot: %w", err)
	}
	return nil
}
