package layout

// ContentType assigns what a page region holds.
type ContentType string

const (
	TypeText   ContentType = "text"   // static text with substitutions
	TypeMetric ContentType = "metric" // one derived metric as formatted text
	TypeChart  ContentType = "chart"  // a chart projected from the model
	TypeImage  ContentType = "image"  // static image reference
)

// ChartKind selects a chart projection.
type ChartKind string

const (
	ChartGoalsTrend  ChartKind = "goals_trend"
	ChartWinLoss     ChartKind = "win_loss"
	ChartPredictions ChartKind = "predictions"
	ChartGauge       ChartKind = "metric_gauge"
)

// Region is a named rectangle on the page with an assigned content type.
// Coordinates are absolute page units (points, origin top-left). The
// region set is hand-specified configuration, not computed.
type Region struct {
	Name string  `koanf:"name"`
	X    float64 `koanf:"x"`
	Y    float64 `koanf:"y"`
	W    float64 `koanf:"w"`
	H    float64 `koanf:"h"`

	Type  ContentType `koanf:"type"`
	Label string      `koanf:"label"`

	// Type-specific settings.
	Text   string    `koanf:"text"`   // TypeText: template with {placeholders}
	Metric string    `koanf:"metric"` // TypeMetric: metric name
	Chart  ChartKind `koanf:"chart"`  // TypeChart: projection kind
	Image  string    `koanf:"image"`  // TypeImage: asset reference
}

// ContentKind tags what a rendered region carries.
type ContentKind string

const (
	KindText  ContentKind = "text"
	KindChart ContentKind = "chart"
	KindImage ContentKind = "image"
)

// RegionContent is one rendered (region, content) pair. Placeholder
// marks the expected missing-metric / unknown-prediction state, as
// opposed to real rendered data.
type RegionContent struct {
	Region      Region
	Kind        ContentKind
	Placeholder bool

	Text     string     // KindText
	Chart    *ChartSpec // KindChart
	ImageRef string     // KindImage
}

// Page is the finished page description handed to the exporter: the
// page size plus rendered contents in region order. This boundary is
// the contract the export pipeline depends on.
type Page struct {
	Width    float64
	Height   float64
	Team     string
	TeamName string
	Contents []RegionContent
}

// ChartSpec is a drawable chart: series of labeled points with a fixed
// value range. Points with Unknown set have no usable value and must be
// drawn as the placeholder mark, not as zero.
type ChartSpec struct {
	Kind  ChartKind
	Title string
	YMin  float64
	YMax  float64

	Series []Series
}

// Series is one named sequence of points.
type Series struct {
	Name   string
	Points []Point
}

// Point is one labeled chart value.
type Point struct {
	Label   string
	Value   float64
	Unknown bool
}
