package analysis

import (
	"fmt"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// PlotSize is the default size of saved charts.
var PlotSize = struct{ Width, Height vg.Length }{10 * vg.Inch, 6 * vg.Inch}

// SavePolarPlot draws CL, CD and CM against AoA. The image format follows
// the file extension (png, svg, pdf, ...).
func SavePolarPlot(path, title string, points []PolarPoint) error {
	lift := make(plotter.XYs, len(points))
	drag := make(plotter.XYs, len(points))
	torque := make(plotter.XYs, len(points))
	for i, p := range points {
		lift[i].X, lift[i].Y = p.AoADeg, p.Lift
		drag[i].X, drag[i].Y = p.AoADeg, p.Drag
		torque[i].X, torque[i].Y = p.AoADeg, p.Torque
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "AoA (deg)"
	p.Y.Label.Text = "coefficient"
	p.Add(plotter.NewGrid())

	if err := plotutil.AddLines(p, "CL", lift, "CD", drag, "CM", torque); err != nil {
		return fmt.Errorf("polar plot: %w", err)
	}
	return p.Save(PlotSize.Width, PlotSize.Height, path)
}

// SaveSeriesPlot draws each named series against xs.
func SaveSeriesPlot(path, title, xLabel string, xs []float64, series map[string][]float64) error {
	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Add(plotter.NewGrid())

	lines := make([]interface{}, 0, 2*len(names))
	for _, name := range names {
		ys := series[name]
		n := min(len(xs), len(ys))
		pts := make(plotter.XYs, n)
		for i := 0; i < n; i++ {
			pts[i].X, pts[i].Y = xs[i], ys[i]
		}
		lines = append(lines, name, pts)
	}

	if err := plotutil.AddLines(p, lines...); err != nil {
		return fmt.Errorf("series plot: %w", err)
	}
	return p.Save(PlotSize.Width, PlotSize.Height, path)
}
