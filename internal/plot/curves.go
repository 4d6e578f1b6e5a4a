// Package plot renders training and validation curves as PNG line
// charts, one series per model variant.
package plot

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Series is one named curve, indexed by epoch starting at 1.
type Series struct {
	Name   string
	Values []float64
}

// SaveCurves writes a single chart overlaying all series.
func SaveCurves(title, yLabel, outPath string, series []Series) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "epoch"
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	for i, s := range series {
		xys := make(plotter.XYs, len(s.Values))
		for e, v := range s.Values {
			xys[e].X = float64(e + 1)
			xys[e].Y = v
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("[Plot] building line %q: %w", s.Name, err)
		}
		line.Color = plotutil.Color(i)
		line.Dashes = plotutil.Dashes(i)
		p.Add(line)
		p.Legend.Add(s.Name, line)
	}
	p.Legend.Top = true

	if err := p.Save(8*vg.Inch, 5*vg.Inch, outPath); err != nil {
		return fmt.Errorf("[Plot] saving %s: %w", outPath, err)
	}
	slog.Debug("[Plot] Chart written", slog.String("path", outPath))
	return nil
}
