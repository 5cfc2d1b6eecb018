// Command mirrorplot prints the images formed by two angled mirrors and can
// write the plot to a file without opening a window.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"chosenoffset.com/kaleidoscope/internal/core/optics"
	"chosenoffset.com/kaleidoscope/internal/plotexport"
	"chosenoffset.com/kaleidoscope/internal/simulation"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("mirrorplot: %v", err)
	}
}

// run parses args, prints the image table to out and writes the plot if -out is set.
// Flags that are not given fall back to the config file, then to the defaults.
func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("mirrorplot", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to a JSON config file")
	theta := fs.Float64("theta", 0, "Mirror angle θ in degrees (0 for parallel mirrors)")
	radius := fs.Float64("radius", 0, "Object distance from the origin")
	phi := fs.Float64("phi", 0, "Object angle φ in degrees")
	rays := fs.Bool("rays", false, "Draw ray paths to the first images")
	depth := fs.Int("depth", 0, "Reflection depth to scan")
	adaptive := fs.Bool("adaptive", false, "Scan deep enough to reach the theoretical count")
	outPath := fs.String("out", "", "Write the plot to this file (.png, .svg, .pdf, ...)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := simulation.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	params := cfg.DefaultParams()
	opts := cfg.GeneratorOptions()
	showRays := cfg.Defaults.ShowRays

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "theta":
			params.MirrorAngle = *theta
		case "radius":
			params.Radius = *radius
		case "phi":
			params.ObjectAngle = optics.NormalizeDegrees(*phi)
		case "rays":
			showRays = *rays
		case "depth":
			opts.MaxDepth = *depth
		case "adaptive":
			opts.Adaptive = *adaptive
		}
	})

	if err := params.Validate(); err != nil {
		return err
	}
	if opts.MaxDepth < 1 {
		return fmt.Errorf("depth must be at least 1, got %d", opts.MaxDepth)
	}

	res := optics.GenerateWithOptions(params, opts)
	if err := writeTable(out, res); err != nil {
		return err
	}
	log.Printf("%s", res.Formula)
	if n := res.Shortfall(); n > 0 {
		log.Printf("Found %d of %d images at depth %d", res.Count(), res.Theoretical, res.Depth)
	}

	if *outPath == "" {
		return nil
	}
	plotOpts := plotexport.DefaultOptions()
	plotOpts.Extent = cfg.View.Extent
	plotOpts.MirrorLength = cfg.View.MirrorLength
	plotOpts.ShowLabels = cfg.Display.ShowLabels
	plotOpts.ShowLegend = cfg.Display.ShowLegend
	plotOpts.ShowRays = showRays
	if err := plotexport.Save(*outPath, res, plotOpts); err != nil {
		return err
	}
	log.Printf("Saved %s", *outPath)
	return nil
}

// writeTable prints one row per image in discovery order.
func writeTable(out io.Writer, res optics.Result) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tx\ty\tangle\treflections")
	for i, im := range res.Images {
		seq := make([]string, len(im.Sequence))
		for j, m := range im.Sequence {
			seq[j] = m.String()
		}
		fmt.Fprintf(tw, "%d\t%.3f\t%.3f\t%.1f°\t%s\n", i+1, im.Pos.X, im.Pos.Y, im.AngleDegrees(), strings.Join(seq, " "))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}
