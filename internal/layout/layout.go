// Package layout declares the static dashboard page: title, site dropdown,
// payload slider and the two chart regions, with their initial values.
package layout

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"launchdash/internal/launch"
	"launchdash/internal/selector"
)

// Element ids shared by the page, its script and the HTTP adapter.
const (
	SiteDropdownID  = "site-dropdown"
	PayloadSliderID = "payload-slider"
	PieChartID      = "success-pie-chart"
	ScatterChartID  = "success-payload-scatter-chart"
)

// Slider bounds exposed to the user.
const (
	SliderMin  = 0
	SliderMax  = 10000
	SliderStep = 1000
)

type Heading struct {
	Text      string `json:"text"`
	TextAlign string `json:"text_align"`
	Color     string `json:"color"`
	FontSize  int    `json:"font_size"`
}

type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Dropdown struct {
	ID          string   `json:"id"`
	Options     []Option `json:"options"`
	Value       string   `json:"value"`
	Placeholder string   `json:"placeholder"`
	Searchable  bool     `json:"searchable"`
}

type RangeSlider struct {
	ID    string     `json:"id"`
	Label string     `json:"label"`
	Min   float64    `json:"min"`
	Max   float64    `json:"max"`
	Step  float64    `json:"step"`
	Value [2]float64 `json:"value"`
}

// Graph is a chart region redrawn whenever one of its inputs changes.
type Graph struct {
	ID     string   `json:"id"`
	Inputs []string `json:"inputs"`
}

type Layout struct {
	Title         Heading     `json:"title"`
	SiteDropdown  Dropdown    `json:"site_dropdown"`
	PayloadSlider RangeSlider `json:"payload_slider"`
	PieChart      Graph       `json:"pie_chart"`
	ScatterChart  Graph       `json:"scatter_chart"`
}

// Build assembles the layout for ds. The slider starts at the dataset's
// payload bounds.
func Build(ds *launch.Dataset) Layout {
	options := []Option{{Label: "All Sites", Value: selector.AllSites}}
	for _, site := range ds.Sites() {
		options = append(options, Option{Label: site, Value: site})
	}
	return Layout{
		Title: Heading{
			Text:      "SpaceX Launch Records Dashboard",
			TextAlign: "center",
			Color:     "#503D36",
			FontSize:  40,
		},
		SiteDropdown: Dropdown{
			ID:          SiteDropdownID,
			Options:     options,
			Value:       selector.AllSites,
			Placeholder: "Select a Launch Site here",
			Searchable:  true,
		},
		PayloadSlider: RangeSlider{
			ID:    PayloadSliderID,
			Label: "Payload range (Kg):",
			Min:   SliderMin,
			Max:   SliderMax,
			Step:  SliderStep,
			Value: [2]float64{ds.MinPayload(), ds.MaxPayload()},
		},
		PieChart:     Graph{ID: PieChartID, Inputs: []string{SiteDropdownID}},
		ScatterChart: Graph{ID: ScatterChartID, Inputs: []string{SiteDropdownID, PayloadSliderID}},
	}
}

// DefaultRange is the payload range selected before the user moves the slider.
func (l Layout) DefaultRange() selector.PayloadRange {
	return selector.PayloadRange{Low: l.PayloadSlider.Value[0], High: l.PayloadSlider.Value[1]}
}

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/*.js
var staticFS embed.FS

var page = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// Static exposes the page script, rooted so that "dashboard.js" resolves.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// RenderPage writes the HTML page for l.
func RenderPage(w io.Writer, l Layout) error {
	if err := page.ExecuteTemplate(w, "page.html", l); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
