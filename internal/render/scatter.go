package render

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"launchdash/pkg/chartapi"
)

const (
	dotWidth     = 5
	legendHeight = 22
)

// The outcome axis leaves headroom above 1 for the legend band. go-chart
// derives the y range from explicit ticks, so the bounds carry blank ticks.
const (
	outcomeMin = -0.25
	outcomeMax = 1.25
)

func outcomeTicks() []chart.Tick {
	return []chart.Tick{{Value: outcomeMin}, {Value: 0, Label: "0"}, {Value: 1, Label: "1"}, {Value: outcomeMax}}
}

// Scatter writes s to w, one dot color per series. The x axis spans the
// selected payload range even when no point falls inside it.
func Scatter(w io.Writer, s chartapi.Scatter, format chartapi.Format, opts Options) error {
	rp, err := provider(format)
	if err != nil {
		return err
	}
	width, height := opts.size()

	var series []chart.Series
	var entries []legendEntry
	for i, src := range s.Series {
		if len(src.Points) == 0 {
			continue
		}
		xs := make([]float64, len(src.Points))
		ys := make([]float64, len(src.Points))
		for j, p := range src.Points {
			xs[j], ys[j] = p.X, p.Y
		}
		color := chart.GetDefaultColor(i)
		series = append(series, chart.ContinuousSeries{
			Name:    src.Name,
			XValues: xs,
			YValues: ys,
			Style:   dotStyle(color),
		})
		entries = append(entries, legendEntry{label: src.Name, color: color})
	}
	if len(series) == 0 {
		// go-chart refuses empty charts; an invisible point keeps the axes.
		series = append(series, chart.ContinuousSeries{
			XValues: []float64{s.XAxis.Min},
			YValues: []float64{0},
			Style:   dotStyle(drawing.ColorTransparent),
		})
	}

	xMin, xMax := s.XAxis.Min, s.XAxis.Max
	if xMax <= xMin {
		xMax = xMin + 1
	}
	ch := chart.Chart{
		Title:      s.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:  s.XAxis.Label,
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
		},
		YAxis: chart.YAxis{
			Name:  s.YAxis.Label,
			Range: &chart.ContinuousRange{Min: outcomeMin, Max: outcomeMax},
			Ticks: outcomeTicks(),
		},
		Series: series,
	}
	if len(entries) > 0 {
		ch.Elements = []chart.Renderable{legend(s.ColorKey, entries)}
	}
	if err := ch.Render(rp, w); err != nil {
		return fmt.Errorf("render scatter: %w", err)
	}
	return nil
}

func dotStyle(color drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    dotWidth,
		DotColor:    color,
	}
}

type legendEntry struct {
	label string
	color drawing.Color
}

// legend draws a single row of colored dots along the top of the plot area,
// inside the headroom the outcome axis leaves above 1.
func legend(title string, entries []legendEntry) chart.Renderable {
	return func(r chart.Renderer, box chart.Box, defaults chart.Style) {
		r.SetFont(defaults.GetFont())
		r.SetFontSize(9)
		r.SetFontColor(drawing.ColorBlack)
		x := box.Left + 8
		y := box.Top + legendHeight/2
		if title != "" {
			r.Text(title+":", x, y+4)
			x += r.MeasureText(title+":").Width() + 10
		}
		for _, e := range entries {
			r.SetFillColor(e.color)
			r.SetStrokeColor(e.color)
			r.SetStrokeWidth(1)
			r.Circle(dotWidth, x+dotWidth, y)
			r.FillStroke()
			x += 2*dotWidth + 4
			r.SetFontColor(drawing.ColorBlack)
			r.Text(e.label, x, y+4)
			x += r.MeasureText(e.label).Width() + 12
		}
	}
}
