// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package plot draws the radial functions of a converted pseudopotential.
package plot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/pdiddy/upf2psp8/internal/psp8"
	"github.com/pdiddy/upf2psp8/pkg/types"
)

const (
	defaultWidth  = 16.0
	defaultHeight = 10.0
)

// channelColors distinguishes l = 0..4.
var channelColors = [psp8.MaxChannels]color.RGBA{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
}

// Render draws every projector and the local potential against radius and
// saves the image to cfg.Output. The image format follows the file extension.
func Render(f *psp8.File, cfg types.PlotConfig) error {
	p, err := build(f)
	if err != nil {
		return err
	}

	w, h := cfg.Width, cfg.Height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	if err := p.Save(vg.Length(w)*vg.Centimeter, vg.Length(h)*vg.Centimeter, cfg.Output); err != nil {
		return fmt.Errorf("saving plot %s: %w", cfg.Output, err)
	}
	return nil
}

func build(f *psp8.File) (*plot.Plot, error) {
	if len(f.Grid) == 0 {
		return nil, fmt.Errorf("no radial grid to plot")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s  ONCVPSP-%s", f.Header.Symbol, f.Header.Version)
	p.X.Label.Text = "r (bohr)"
	p.Y.Label.Text = "Hartree"
	p.Add(plotter.NewGrid())

	for _, ch := range f.Channels {
		for k, proj := range ch.Projectors {
			line, err := plotter.NewLine(series(f.Grid, proj))
			if err != nil {
				return nil, fmt.Errorf("projector l=%d #%d: %w", ch.L, k+1, err)
			}
			line.Color = channelColors[ch.L]
			if k > 0 {
				line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
			}
			p.Add(line)
			p.Legend.Add(fmt.Sprintf("beta l=%d #%d", ch.L, k+1), line)
		}
	}

	local, err := plotter.NewLine(series(f.Grid, f.Local))
	if err != nil {
		return nil, fmt.Errorf("local potential: %w", err)
	}
	local.Color = color.Gray{Y: 64}
	local.Width = vg.Points(1.5)
	p.Add(local)
	p.Legend.Add("v_loc", local)
	p.Legend.Top = false

	return p, nil
}

func series(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	return pts
}
