package charts

import (
	"bytes"
	"fmt"
	"math"

	"mbtidash/domain/mbti"
	"mbtidash/internal/errors"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Bar is one labelled bar. Highlight bars are drawn in HighlightColor.
type Bar struct {
	Label     string
	Value     float64
	Highlight bool
}

const (
	barWidth   = 44
	barSpacing = 12
	minWidth   = 480
	height     = 420
)

// TypeBars converts a per-type distribution to bars.
func TypeBars(values []mbti.TypeValue) []Bar {
	bars := make([]Bar, len(values))
	for i, v := range values {
		bars[i] = Bar{Label: string(v.Type), Value: v.Value}
	}
	return bars
}

// CountryBars converts a ranking to bars, highlighting the reference country.
func CountryBars(values []mbti.CountryValue) []Bar {
	bars := make([]Bar, len(values))
	for i, v := range values {
		bars[i] = Bar{Label: v.Country, Value: v.Value, Highlight: v.Reference}
	}
	return bars
}

// chartValues assigns palette colours in order; highlighted bars get the highlight colour.
func chartValues(bars []Bar) []chart.Value {
	values := make([]chart.Value, len(bars))
	for i, b := range bars {
		fill := PaletteColor(i)
		if b.Highlight {
			fill = HighlightColor
		}
		values[i] = chart.Value{
			Label: b.Label,
			Value: b.Value,
			Style: chart.Style{
				FillColor:   fill,
				StrokeColor: fill,
				StrokeWidth: 1,
			},
		}
	}
	return values
}

// RenderSVG draws a vertical bar chart with a 0..max percent axis.
func RenderSVG(title string, bars []Bar) ([]byte, error) {
	if len(bars) == 0 {
		return nil, errors.RenderFailed(title, fmt.Errorf("no values to plot"))
	}

	maxValue := 0.0
	for _, b := range bars {
		if math.IsNaN(b.Value) || math.IsInf(b.Value, 0) {
			return nil, errors.RenderFailed(title, fmt.Errorf("bar %q has no finite value", b.Label))
		}
		maxValue = math.Max(maxValue, b.Value)
	}
	if maxValue <= 0 {
		maxValue = 1
	}

	width := len(bars)*(barWidth+barSpacing) + 120
	if width < minWidth {
		width = minWidth
	}

	graph := chart.BarChart{
		Title:      title,
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{
			Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 24},
		},
		XAxis: chart.Style{
			FontSize: 9,
		},
		YAxis: chart.YAxis{
			Name:  "Percent (%)",
			Range: &chart.ContinuousRange{Min: 0, Max: niceCeiling(maxValue)},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Bars: chartValues(bars),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.SVG, &buf); err != nil {
		return nil, errors.RenderFailed(title, err)
	}
	return buf.Bytes(), nil
}

// niceCeiling leaves 10% headroom above v and rounds up to a multiple of 5.
func niceCeiling(v float64) float64 {
	return math.Ceil((v+v/10)/5) * 5
}

// HighlightColor marks the reference country.
var HighlightColor = drawing.ColorRed

// pastel is the qualitative pastel palette used for ordinary bars.
var pastel = []drawing.Color{
	drawing.ColorFromHex("66c5cc"),
	drawing.ColorFromHex("f6cf71"),
	drawing.ColorFromHex("f89c74"),
	drawing.ColorFromHex("dcb0f2"),
	drawing.ColorFromHex("87c55f"),
	drawing.ColorFromHex("9eb9f3"),
	drawing.ColorFromHex("fe88b1"),
	drawing.ColorFromHex("c9db74"),
	drawing.ColorFromHex("8be0a4"),
	drawing.ColorFromHex("b497e7"),
	drawing.ColorFromHex("b3b3b3"),
}

// PaletteColor returns the i-th pastel colour, cycling.
func PaletteColor(i int) drawing.Color {
	return pastel[i%len(pastel)]
}
