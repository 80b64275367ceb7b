// chart.go
//
// Enterprise registry with free-text values and a value-frequency chart
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of enterprise-values.
// enterprise-values is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// enterprise-values is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with enterprise-values.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

// Package chart draws the value frequency table as a horizontal bar chart.
package chart

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/localnerve/enterprise-values/internal/values"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Chart labels
const (
	Title     = "Valores repetidos"
	AxisLabel = "Incidencias"
)

// Format is an output image encoding
type Format string

// Supported formats
const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ParseFormat accepts "png" or "svg", case-insensitively. Empty means PNG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return PNG, nil
	case "svg":
		return SVG, nil
	}
	return "", fmt.Errorf("unsupported chart format %q", s)
}

// ContentType is the MIME type of f
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

var barColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}

const (
	width      = 16 * vg.Centimeter
	minHeight  = 6 * vg.Centimeter
	rowHeight  = vg.Centimeter
	barWidth   = 0.6 * vg.Centimeter
	headerRoom = 3 * vg.Centimeter
)

// Plot builds the chart: one bar per name, length equal to its count, in
// first-appearance order from the bottom up
func Plot(freq *values.Frequency) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = Title
	p.X.Label.Text = AxisLabel
	p.X.Min = 0
	p.X.Tick.Marker = plot.TickerFunc(integerTicks)

	if freq == nil || freq.Len() == 0 {
		p.X.Max = 1
		p.HideY()
		return p, nil
	}

	counts := make(plotter.Values, freq.Len())
	for i, c := range freq.Counts {
		counts[i] = float64(c)
	}

	bars, err := plotter.NewBarChart(counts, barWidth)
	if err != nil {
		return nil, fmt.Errorf("build bars: %w", err)
	}
	bars.Horizontal = true
	bars.Color = barColor
	bars.LineStyle.Width = 0

	p.Add(bars)
	p.NominalY(freq.Names...)

	return p, nil
}

// Render draws freq to w in format
func Render(w io.Writer, freq *values.Frequency, format Format) error {
	p, err := Plot(freq)
	if err != nil {
		return err
	}

	height := minHeight
	if freq != nil {
		if h := headerRoom + vg.Length(freq.Len())*rowHeight; h > height {
			height = h
		}
	}

	switch format {
	case SVG:
		canvas := vgsvg.New(width, height)
		p.Draw(draw.New(canvas))
		_, err = canvas.WriteTo(w)
	case PNG, "":
		canvas := vgimg.New(width, height)
		p.Draw(draw.New(canvas))
		_, err = vgimg.PngCanvas{Canvas: canvas}.WriteTo(w)
	default:
		return fmt.Errorf("unsupported chart format %q", format)
	}
	if err != nil {
		return fmt.Errorf("write %s chart: %w", format, err)
	}
	return nil
}

// integerTicks labels whole numbers only, since counts are integral
func integerTicks(min, max float64) []plot.Tick {
	step := 1.0
	for (max-min)/step > 10 {
		step *= 2
	}
	var ticks []plot.Tick
	for v := 0.0; v <= max; v += step {
		if v < min {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: fmt.Sprintf("%d", int(v))})
	}
	return ticks
}
