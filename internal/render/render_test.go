package render

import (
	"bytes"
	"errors"
	"image/png"
	"strings"
	"testing"

	"launchdash/pkg/chartapi"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func samplePie() chartapi.Pie {
	return chartapi.Pie{
		Title:  "Total Success Launches by Site",
		Slices: []chartapi.Slice{{Label: "CCAFS LC-40", Value: 7}, {Label: "KSC LC-39A", Value: 10}, {Label: "VAFB SLC-4E", Value: 0}},
	}
}

func sampleScatter() chartapi.Scatter {
	return chartapi.Scatter{
		Title:    "Correlation between Payload and Launch Outcome",
		ColorKey: "Booster Version Category",
		XAxis:    chartapi.Axis{Label: "Payload Mass (kg)", Min: 0, Max: 10000},
		YAxis:    chartapi.Axis{Label: "Launch Outcome (1=Success, 0=Fail)", Min: 0, Max: 1},
		Series: []chartapi.Series{
			{Name: "v1.0", Points: []chartapi.Point{{X: 0, Y: 0}, {X: 525, Y: 0}}},
			{Name: "FT", Points: []chartapi.Point{{X: 2490, Y: 1}, {X: 5300, Y: 1}}},
		},
	}
}

func TestPiePNGHonorsSize(t *testing.T) {
	var buf bytes.Buffer
	if err := Pie(&buf, samplePie(), chartapi.FormatPNG, Options{Width: 320, Height: 240}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Fatalf("output is not a png")
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != 320 || cfg.Height != 240 {
		t.Fatalf("unexpected size %dx%d", cfg.Width, cfg.Height)
	}
}

func TestPieWithoutPositiveSlicesStillRenders(t *testing.T) {
	pie := chartapi.Pie{Title: "Success vs. Failure for site X", Slices: []chartapi.Slice{{Label: "0", Value: 0}}}
	var buf bytes.Buffer
	if err := Pie(&buf, pie, chartapi.FormatSVG, Options{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "<svg") {
		t.Fatalf("output is not svg: %.40q", buf.String())
	}
	if !strings.Contains(buf.String(), "no data") {
		t.Fatalf("expected placeholder label in svg")
	}
}

func TestScatterFormats(t *testing.T) {
	var pngBuf, svgBuf bytes.Buffer
	if err := Scatter(&pngBuf, sampleScatter(), chartapi.FormatPNG, Options{}); err != nil {
		t.Fatalf("png: %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(pngBuf.Bytes()))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != DefaultWidth || cfg.Height != DefaultHeight {
		t.Fatalf("unexpected default size %dx%d", cfg.Width, cfg.Height)
	}
	if err := Scatter(&svgBuf, sampleScatter(), chartapi.FormatSVG, Options{}); err != nil {
		t.Fatalf("svg: %v", err)
	}
	out := svgBuf.String()
	if !strings.HasPrefix(out, "<svg") || !strings.Contains(out, "FT") {
		t.Fatalf("svg missing legend entries")
	}
}

func TestScatterEmptySelectionAndDegenerateRange(t *testing.T) {
	empty := sampleScatter()
	empty.Series = nil
	empty.XAxis.Min, empty.XAxis.Max = 4000, 4000
	var buf bytes.Buffer
	if err := Scatter(&buf, empty, chartapi.FormatPNG, Options{Width: 400, Height: 300}); err != nil {
		t.Fatalf("render empty: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Fatalf("output is not a png")
	}
}

func TestUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Pie(&buf, samplePie(), chartapi.FormatJSON, Options{}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if err := Scatter(&buf, sampleScatter(), chartapi.Format("gif"), Options{}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("nothing should be written for unsupported formats")
	}
	if ct, err := ContentType(chartapi.FormatSVG); err != nil || ct != "image/svg+xml" {
		t.Fatalf("unexpected content type %q %v", ct, err)
	}
	if _, err := ContentType(chartapi.FormatCSV); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("csv is not an image format")
	}
}
