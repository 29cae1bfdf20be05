// Package chart renders reduced tables as labelled scatter plots.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"electviz/pkg/table"
)

var ErrNoPoints = errors.New("chart: no finite points to plot")

// Options selects the plotted columns.
type Options struct {
	X, Y  string
	Label string // optional; empty draws unlabelled points
	Title string
}

// Scatter builds a scatter plot of columns X against Y of t, annotating
// each point with its Label value. Rows with a non-finite coordinate are
// skipped.
func Scatter(t *table.Table, opts Options) (*plot.Plot, error) {
	xs, err := numeric(t, opts.X)
	if err != nil {
		return nil, err
	}
	ys, err := numeric(t, opts.Y)
	if err != nil {
		return nil, err
	}
	var labels table.Column
	if opts.Label != "" {
		if labels, err = t.Column(opts.Label); err != nil {
			return nil, fmt.Errorf("chart: %w", err)
		}
	}

	var (
		pts   plotter.XYs
		names []string
	)
	for i := range xs {
		if !finite(xs[i]) || !finite(ys[i]) {
			continue
		}
		pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
		if opts.Label != "" {
			names = append(names, labels.Label(i))
		}
	}
	if len(pts) == 0 {
		return nil, ErrNoPoints
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.X
	p.Y.Label.Text = opts.Y
	p.Add(plotter.NewGrid())

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Color = color.RGBA{R: 50, G: 50, B: 255, A: 255}
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	s.GlyphStyle.Radius = vg.Points(3)
	p.Add(s)

	if len(names) > 0 {
		l, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: names})
		if err != nil {
			return nil, err
		}
		p.Add(l)
	}
	return p, nil
}

// Save writes p to path; the format follows the extension (.png, .svg,
// .pdf, ...). Sizes are in inches.
func Save(p *plot.Plot, path string, width, height float64) error {
	return p.Save(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch, path)
}

func numeric(t *table.Table, name string) ([]float64, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}
	if c.Kind != table.Numeric {
		return nil, fmt.Errorf("chart: %w: %q", table.ErrNotNumeric, name)
	}
	return c.Floats, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
