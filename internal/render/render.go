// Package render draws chart specifications as PNG or SVG images with go-chart.
package render

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"launchdash/pkg/chartapi"
)

// ErrUnsupportedFormat is returned for formats other than png and svg.
var ErrUnsupportedFormat = errors.New("render: unsupported image format")

// Default canvas size in pixels.
const (
	DefaultWidth  = 800
	DefaultHeight = 450
)

// Options sizes the rendered image. Zero values fall back to the defaults.
type Options struct {
	Width  int
	Height int
}

func (o Options) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

// ContentType returns the MIME type of an image format.
func ContentType(format chartapi.Format) (string, error) {
	switch format {
	case chartapi.FormatPNG:
		return "image/png", nil
	case chartapi.FormatSVG:
		return "image/svg+xml", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

func provider(format chartapi.Format) (chart.RendererProvider, error) {
	switch format {
	case chartapi.FormatPNG:
		return chart.PNG, nil
	case chartapi.FormatSVG:
		return chart.SVG, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

var noDataColor = drawing.ColorFromHex("cccccc")

// Pie writes p to w. A pie without any positive slice is drawn as a single
// grey "no data" disc.
func Pie(w io.Writer, p chartapi.Pie, format chartapi.Format, opts Options) error {
	rp, err := provider(format)
	if err != nil {
		return err
	}
	width, height := opts.size()
	values := make([]chart.Value, 0, len(p.Slices))
	for _, s := range p.Slices {
		if s.Value <= 0 {
			continue
		}
		values = append(values, chart.Value{Label: sliceLabel(s), Value: s.Value})
	}
	if len(values) == 0 {
		values = append(values, chart.Value{
			Label: "no data",
			Value: 1,
			Style: chart.Style{FillColor: noDataColor, StrokeColor: drawing.ColorWhite},
		})
	}
	pie := chart.PieChart{
		Title:  p.Title,
		Width:  width,
		Height: height,
		Values: values,
	}
	if err := pie.Render(rp, w); err != nil {
		return fmt.Errorf("render pie: %w", err)
	}
	return nil
}

func sliceLabel(s chartapi.Slice) string {
	return s.Label + " (" + strconv.FormatFloat(s.Value, 'f', -1, 64) + ")"
}
