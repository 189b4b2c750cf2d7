package export

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fogleman/gg"
	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coldrink/rinkreport/internal/contracts"
	"github.com/coldrink/rinkreport/internal/layout"
	"github.com/coldrink/rinkreport/internal/metrics"
	"github.com/coldrink/rinkreport/internal/report"
)

func testPage(t *testing.T) *layout.Page {
	t.Helper()

	day := func(d int) time.Time {
		return time.Date(2025, 10, d, 19, 0, 0, 0, time.UTC)
	}
	values := map[string]float64{}
	for _, def := range metrics.Definitions() {
		switch {
		case def.Min < 0:
			values[def.Name] = -20
		case def.Max < 100:
			values[def.Name] = 2.8
		default:
			values[def.Name] = 48.7
		}
	}

	model := &report.Model{
		Team:     "PIT",
		TeamName: "Pittsburgh Penguins",
		Record:   &contracts.TeamRecord{Wins: 1, Losses: 1, GamesPlayed: 2},
		Streak:   contracts.Streak{Kind: contracts.StreakLoss, Count: 1},
		Games: []contracts.GameRecord{
			{GameID: 1, Date: day(1), Opponent: "EDM", GoalsFor: 3, GoalsAgainst: 1},
			{GameID: 2, Date: day(3), Opponent: "WPG", GoalsFor: 2, GoalsAgainst: 4},
		},
		Metrics: values,
		Predictions: map[int64]report.PredictionValue{
			1: {Known: true, Pct: 55.5},
		},
	}

	page, err := layout.NewEngine(nil).Layout(model)
	require.NoError(t, err)
	return page
}

// tinyPNG builds a valid 4x4 PNG for asset tests.
func tinyPNG(t *testing.T) []byte {
	t.Helper()
	dc := gg.NewContext(4, 4)
	dc.SetRGB(1, 0, 0)
	dc.Clear()
	var buf bytes.Buffer
	require.NoError(t, dc.EncodePNG(&buf))
	return buf.Bytes()
}

func TestPDFExport(t *testing.T) {
	page := testPage(t)
	exporter := NewPDFExporter(AssetMap{"logo:PIT": tinyPNG(t)})
	assert.Equal(t, "pdf", exporter.Format())

	var buf bytes.Buffer
	require.NoError(t, exporter.Export(page, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")), "output must start with a PDF header")
	assert.Greater(t, buf.Len(), 1000)
}

func TestPDFExportMissingAsset(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPDFExporter(nil).Export(testPage(t), &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestPNGExportDimensions(t *testing.T) {
	page := testPage(t)
	exporter := NewPNGExporter(AssetMap{"logo:PIT": tinyPNG(t)})
	assert.Equal(t, "png", exporter.Format())

	var buf bytes.Buffer
	require.NoError(t, exporter.Export(page, &buf))

	img, err := png.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	// Letter at 300 DPI.
	assert.Equal(t, 2550, img.Bounds().Dx())
	assert.Equal(t, 3300, img.Bounds().Dy())
}

func TestPNGExportCustomDPI(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPNGExporterDPI(nil, 72).Export(testPage(t), &buf))

	img, err := png.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 612, img.Bounds().Dx())
	assert.Equal(t, 792, img.Bounds().Dy())
}

func TestExportFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "PIT.pdf")

	require.NoError(t, ExportFile(NewPDFExporter(nil), testPage(t), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

// chartPage builds a single-chart page so chart drawing can be
// exercised without a full model.
func chartPage(points []layout.Point) *layout.Page {
	return &layout.Page{
		Width:    240,
		Height:   160,
		Team:     "PIT",
		TeamName: "Pittsburgh Penguins",
		Contents: []layout.RegionContent{{
			Region: layout.Region{
				Name: "chart_predictions", Type: layout.TypeChart, Chart: layout.ChartPredictions,
				X: 20, Y: 20, W: 200, H: 120,
			},
			Kind: layout.KindChart,
			Chart: &layout.ChartSpec{
				Kind:   layout.ChartPredictions,
				Title:  "Pre-Game Win Probability",
				YMin:   0,
				YMax:   100,
				Series: []layout.Series{{Name: "Win Probability", Points: points}},
			},
		}},
	}
}

// inked reports whether any pixel in the rectangle is darker than
// near-white.
func inked(img image.Image, x0, y0, x1, y1 int) bool {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r < 0xc000 || g < 0xc000 || b < 0xc000 {
				return true
			}
		}
	}
	return false
}

func TestPNGChartPointLabels(t *testing.T) {
	render := func(points []layout.Point) image.Image {
		var buf bytes.Buffer
		require.NoError(t, NewPNGExporterDPI(nil, 72).Export(chartPage(points), &buf))
		img, err := png.Decode(bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		return img
	}

	// The plot spans x 46..194 with its baseline at y 126. Labels sit
	// just above their marks, in bands no other element paints.

	// A known point at 50 draws its value above the mid-plot marker.
	assert.True(t, inked(render([]layout.Point{{Label: "Oct 1", Value: 50}}), 95, 64, 145, 77),
		"value label missing above the data point")

	// An unknown point gets the placeholder word above the baseline
	// mark, never a number.
	assert.True(t, inked(render([]layout.Point{{Label: "Oct 1", Unknown: true}}), 95, 109, 145, 122),
		"placeholder label missing above the baseline mark")

	// An empty series leaves both bands blank.
	blank := render(nil)
	assert.False(t, inked(blank, 95, 64, 145, 77))
	assert.False(t, inked(blank, 95, 109, 145, 122))
}

func TestPDFChartPointLabels(t *testing.T) {
	// Compression off so the content stream is inspectable.
	render := func(points []layout.Point) string {
		pdf := gofpdf.NewCustom(&gofpdf.InitType{
			UnitStr: "pt",
			Size:    gofpdf.SizeType{Wd: 240, Ht: 160},
		})
		pdf.SetCompression(false)
		pdf.SetMargins(0, 0, 0)
		pdf.SetAutoPageBreak(false, 0)
		pdf.AddPage()

		page := chartPage(points)
		NewPDFExporter(nil).drawChart(pdf, page.Contents[0], [3]int{0, 0, 0})

		var buf bytes.Buffer
		require.NoError(t, pdf.Output(&buf))
		return buf.String()
	}

	assert.Contains(t, render([]layout.Point{{Label: "Oct 1", Value: 55.5}}), "(55.5) Tj")
	assert.Contains(t, render([]layout.Point{{Label: "Oct 1", Unknown: true}}), "(unknown) Tj")
	assert.NotContains(t, render([]layout.Point{{Label: "Oct 1", Unknown: true}}), "(0.0) Tj",
		"unknown points must not be labeled as zero")
}

func TestSniffImageType(t *testing.T) {
	assert.Equal(t, "PNG", sniffImageType(tinyPNG(t)))
	assert.Equal(t, "JPG", sniffImageType([]byte{0xFF, 0xD8, 0xFF, 0xE0}))
	assert.Equal(t, "", sniffImageType([]byte("<svg></svg>")))
}
