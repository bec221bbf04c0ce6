// Package chartapi defines the chart specifications exchanged between the
// launch selectors and any rendering boundary (JSON clients, image renderers).
// Specifications are plain values: labels, values, titles and axis metadata,
// independent of how they are drawn.
package chartapi

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatPNG  Format = "png"
	FormatSVG  Format = "svg"
)

// Aggregation names how slice values were derived.
type Aggregation string

const (
	AggregationSum   Aggregation = "sum"
	AggregationCount Aggregation = "count"
)

type Slice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type Pie struct {
	Title       string      `json:"title"`
	Names       string      `json:"names"`
	Aggregation Aggregation `json:"aggregation"`
	Slices      []Slice     `json:"slices"`
}

// Total returns the sum of all slice values.
func (p Pie) Total() float64 {
	var total float64
	for _, s := range p.Slices {
		total += s.Value
	}
	return total
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Series groups the points sharing one color key.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

type Axis struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

type Scatter struct {
	Title    string   `json:"title"`
	ColorKey string   `json:"color_key"`
	XAxis    Axis     `json:"x_axis"`
	YAxis    Axis     `json:"y_axis"`
	Series   []Series `json:"series"`
}

// PointCount returns the number of points across all series.
func (s Scatter) PointCount() int {
	n := 0
	for _, series := range s.Series {
		n += len(series.Points)
	}
	return n
}
