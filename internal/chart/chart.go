// Package chart renders a simulation result as a PNG line chart: state of
// charge as the primary series, with solar output and daylight hours scaled
// onto the same axis.
package chart

import (
	"bytes"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"solar_battery_sim/internal/model"
	"solar_battery_sim/internal/simulator"
)

var palette = []color.RGBA{
	{B: 255, A: 255},               // blue
	{R: 255, A: 255},               // red
	{R: 0, G: 128, B: 0, A: 255},   // green
	{R: 255, G: 146, A: 255},       // orange
	{R: 180, B: 180, A: 255},       // purple
}

const (
	chartWidth  = 10 * vg.Inch
	chartHeight = 7.5 * vg.Inch
)

// RenderPNG renders the result to PNG bytes.
func RenderPNG(res simulator.Result) ([]byte, error) {
	p, err := build(res)
	if err != nil {
		return nil, err
	}

	w, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile renders the result and writes it to path.
func WriteFile(res simulator.Result, path string) error {
	png, err := RenderPNG(res)
	if err != nil {
		return err
	}
	return os.WriteFile(path, png, 0o644)
}

func build(res simulator.Result) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Solar Battery Simulation"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Y.Label.Text = "Battery Charge [Wh]"
	p.Legend.Top = true
	p.BackgroundColor = color.White

	chargeMax := seriesMax(res.Charge)

	primary := []model.Series{res.Charge}
	// Secondary series are rescaled so their peak matches the primary peak,
	// standing in for a right-hand axis.
	secondary := []model.Series{res.Solar, res.Daylight}

	ci := 0
	for _, s := range primary {
		line, err := plotter.NewLine(toXYs(s, 1))
		if err != nil {
			return nil, err
		}
		line.Color = palette[ci%len(palette)]
		p.Add(line)
		p.Legend.Add(s.Name, line)
		ci++
	}
	for _, s := range secondary {
		scale := 1.0
		if max := seriesMax(s); max > 0 && chargeMax > 0 {
			scale = chargeMax / max
		}
		line, err := plotter.NewLine(toXYs(s, scale))
		if err != nil {
			return nil, err
		}
		line.Color = palette[ci%len(palette)]
		p.Add(line)
		p.Legend.Add(s.Name+" (scaled)", line)
		ci++
	}

	return p, nil
}

func toXYs(s model.Series, scale float64) plotter.XYs {
	xys := make(plotter.XYs, len(s.Points))
	for i, pt := range s.Points {
		xys[i].X = float64(pt.Timestamp.Unix())
		xys[i].Y = pt.Value * scale
	}
	return xys
}

func seriesMax(s model.Series) float64 {
	var max float64
	for _, pt := range s.Points {
		if pt.Value > max {
			max = pt.Value
		}
	}
	return max
}
