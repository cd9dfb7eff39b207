// Package charts draws models.ChartSpec values as SVG or PNG images.
package charts

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"spacex-dashboard/models"
)

// Options sets the image size. Zero values pick a size per chart kind.
type Options struct {
	Width  int
	Height int
}

const noDataLabel = "No data"

// RenderSVG draws spec as SVG into w.
func RenderSVG(spec models.ChartSpec, w io.Writer, opts Options) error {
	return render(spec, w, chart.SVG, opts)
}

// RenderPNG draws spec as PNG into w.
func RenderPNG(spec models.ChartSpec, w io.Writer, opts Options) error {
	return render(spec, w, chart.PNG, opts)
}

func render(spec models.ChartSpec, w io.Writer, provider chart.RendererProvider, opts Options) error {
	switch spec.Kind {
	case models.ChartPie:
		return pieChart(spec, opts).Render(provider, w)
	case models.ChartScatter:
		if len(spec.Points) == 0 {
			return placeholder(spec.Title, opts, 1000, 450).Render(provider, w)
		}
		c := scatterChart(spec, opts)
		c.Elements = []chart.Renderable{chart.LegendLeft(&c)}
		return c.Render(provider, w)
	default:
		return fmt.Errorf("charts: unknown chart kind %q", spec.Kind)
	}
}

func pieChart(spec models.ChartSpec, opts Options) chart.PieChart {
	total := 0.0
	for _, s := range spec.Slices {
		total += s.Value
	}
	if total <= 0 {
		return placeholder(spec.Title, opts, 600, 450)
	}

	values := make([]chart.Value, 0, len(spec.Slices))
	for i, s := range spec.Slices {
		if s.Value <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: s.Label,
			Value: s.Value,
			Style: chart.Style{
				FillColor:   sliceColor(s.Color, i),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 2,
			},
		})
	}

	width, height := size(opts, 600, 450)
	return chart.PieChart{
		Title:  spec.Title,
		Width:  width,
		Height: height,
		Values: values,
	}
}

// placeholder is a single grey slice so that empty selections still draw.
func placeholder(title string, opts Options, defWidth, defHeight int) chart.PieChart {
	width, height := size(opts, defWidth, defHeight)
	return chart.PieChart{
		Title:  title,
		Width:  width,
		Height: height,
		Values: []chart.Value{{
			Label: noDataLabel,
			Value: 1,
			Style: chart.Style{FillColor: chart.ColorLightGray},
		}},
	}
}

func scatterChart(spec models.ChartSpec, opts Options) chart.Chart {
	groups := spec.Groups
	if len(groups) == 0 {
		groups = groupsOf(spec.Points)
	}

	series := make([]chart.Series, 0, len(groups))
	for i, group := range groups {
		var xs, ys []float64
		for _, p := range spec.Points {
			if p.Group == group {
				xs = append(xs, p.X)
				ys = append(ys, p.Y)
			}
		}
		if len(xs) == 0 {
			continue
		}
		name := group
		if name == "" {
			name = "unknown"
		}
		series = append(series, chart.ContinuousSeries{
			Name:    name,
			XValues: xs,
			YValues: ys,
			Style:   pointStyle(chart.GetDefaultColor(i)),
		})
	}

	width, height := size(opts, 1000, 450)
	return chart.Chart{
		Title:      spec.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:  spec.XLabel,
			Range: xRange(spec.Points),
		},
		YAxis: chart.YAxis{
			Name:  spec.YLabel,
			Range: &chart.ContinuousRange{Min: -0.25, Max: 1.25},
			Ticks: []chart.Tick{
				{Value: 0, Label: "0"},
				{Value: 1, Label: "1"},
			},
		},
		Series: series,
	}
}

// pointStyle returns a style that renders points only (no connecting line)
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    5,
		DotColor:    col,
	}
}

// xRange pads the payload axis so a single point or a single payload
// value still yields a non-zero range.
func xRange(points []models.ChartPoint) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		lo = math.Min(lo, p.X)
		hi = math.Max(hi, p.X)
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = 500
	}
	return &chart.ContinuousRange{Min: math.Max(0, lo-pad), Max: hi + pad}
}

func groupsOf(points []models.ChartPoint) []string {
	seen := make(map[string]struct{})
	var groups []string
	for _, p := range points {
		if _, ok := seen[p.Group]; !ok {
			seen[p.Group] = struct{}{}
			groups = append(groups, p.Group)
		}
	}
	return groups
}

func sliceColor(name string, index int) drawing.Color {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return chart.GetDefaultColor(index)
	case "red":
		return drawing.ColorRed
	case "blue":
		return drawing.ColorBlue
	case "green":
		return drawing.ColorGreen
	default:
		return drawing.ColorFromHex(strings.TrimPrefix(name, "#"))
	}
}

func size(opts Options, defWidth, defHeight int) (int, int) {
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = defWidth
	}
	if height <= 0 {
		height = defHeight
	}
	return width, height
}
