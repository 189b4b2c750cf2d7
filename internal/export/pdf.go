package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/coldrink/rinkreport/internal/layout"
	"github.com/coldrink/rinkreport/internal/nhl"
)

// PDFExporter renders pages as vector PDF documents at the template's
// native point size.
type PDFExporter struct {
	assets Assets
}

func NewPDFExporter(assets Assets) *PDFExporter {
	if assets == nil {
		assets = AssetMap{}
	}
	return &PDFExporter{assets: assets}
}

func (e *PDFExporter) Format() string { return "pdf" }

func (e *PDFExporter) Export(page *layout.Page, w io.Writer) error {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: page.Width, Ht: page.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	ar, ag, ab := nhl.TeamColor(page.Team)
	accent := [3]int{ar, ag, ab}

	for _, content := range page.Contents {
		switch content.Kind {
		case layout.KindText:
			e.drawText(pdf, content, accent)
		case layout.KindChart:
			e.drawChart(pdf, content, accent)
		case layout.KindImage:
			e.drawImage(pdf, content)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func (e *PDFExporter) drawText(pdf *gofpdf.Fpdf, c layout.RegionContent, accent [3]int) {
	r := c.Region
	y := r.Y

	if r.Name == "header" {
		pdf.SetTextColor(accent[0], accent[1], accent[2])
		pdf.SetFont("Helvetica", "B", 28)
		pdf.Text(r.X, y+r.H-12, c.Text)
		return
	}

	if r.Label != "" {
		pdf.SetTextColor(120, 120, 120)
		pdf.SetFont("Helvetica", "", 8)
		pdf.Text(r.X+4, y+10, r.Label)

		pdf.SetDrawColor(210, 210, 210)
		pdf.Rect(r.X, r.Y, r.W, r.H, "D")
	}

	if c.Placeholder {
		pdf.SetTextColor(150, 150, 150)
	} else {
		pdf.SetTextColor(20, 20, 20)
	}
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Text(r.X+4, r.Y+r.H-8, c.Text)
}

func (e *PDFExporter) drawChart(pdf *gofpdf.Fpdf, c layout.RegionContent, accent [3]int) {
	spec := c.Chart
	r := c.Region
	p := chartPlot(r)

	pdf.SetTextColor(60, 60, 60)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.Text(r.X, r.Y+10, spec.Title)

	// Axes.
	pdf.SetDrawColor(160, 160, 160)
	pdf.Line(p.x, p.y, p.x, p.y+p.h)
	pdf.Line(p.x, p.y+p.h, p.x+p.w, p.y+p.h)
	if spec.YMin < 0 && spec.YMax > 0 {
		zero := p.yAt(spec, 0)
		pdf.SetDrawColor(200, 200, 200)
		pdf.Line(p.x, zero, p.x+p.w, zero)
	}

	for si, series := range spec.Series {
		cr, cg, cb := seriesColor(si, accent)
		if spec.Kind == layout.ChartWinLoss || spec.Kind == layout.ChartGauge {
			e.drawBars(pdf, p, spec, series, cr, cg, cb)
		} else {
			e.drawLine(pdf, p, spec, series, cr, cg, cb)
		}
	}
}

func (e *PDFExporter) drawLine(pdf *gofpdf.Fpdf, p plot, spec *layout.ChartSpec, s layout.Series, cr, cg, cb int) {
	n := len(s.Points)
	pdf.SetDrawColor(cr, cg, cb)
	pdf.SetFillColor(cr, cg, cb)

	prevX, prevY := 0.0, 0.0
	prevKnown := false
	for i, pt := range s.Points {
		x := p.xAt(i, n)
		if pt.Unknown {
			// Placeholder mark: hollow circle on the baseline, never a
			// zero-valued data point.
			pdf.SetDrawColor(150, 150, 150)
			pdf.Circle(x, p.y+p.h, 2.2, "D")
			e.pointLabel(pdf, x, p.y+p.h-4, pt)
			pdf.SetDrawColor(cr, cg, cb)
			prevKnown = false
			continue
		}
		y := p.yAt(spec, pt.Value)
		if prevKnown {
			pdf.Line(prevX, prevY, x, y)
		}
		pdf.Circle(x, y, 1.6, "F")
		e.pointLabel(pdf, x, y-4, pt)
		prevX, prevY, prevKnown = x, y, true
	}
}

func (e *PDFExporter) drawBars(pdf *gofpdf.Fpdf, p plot, spec *layout.ChartSpec, s layout.Series, cr, cg, cb int) {
	n := len(s.Points)
	barW := p.w / float64(n) * 0.6
	base := p.yAt(spec, 0)
	if spec.YMin >= 0 {
		base = p.y + p.h
	}

	for i, pt := range s.Points {
		x := p.xAt(i, n) - barW/2
		if pt.Unknown {
			pdf.SetDrawColor(150, 150, 150)
			pdf.Circle(p.xAt(i, n), p.y+p.h, 2.2, "D")
			e.pointLabel(pdf, p.xAt(i, n), p.y+p.h-4, pt)
			continue
		}
		y := p.yAt(spec, pt.Value)
		pdf.SetFillColor(cr, cg, cb)
		if y <= base {
			pdf.Rect(x, y, barW, base-y, "F")
			e.pointLabel(pdf, p.xAt(i, n), y-3, pt)
		} else {
			pdf.Rect(x, base, barW, y-base, "F")
			e.pointLabel(pdf, p.xAt(i, n), y+8, pt)
		}
	}
}

// pointLabel writes a chart point's value above its mark. The text
// comes from the same formatting rule the text regions use.
func (e *PDFExporter) pointLabel(pdf *gofpdf.Fpdf, x, y float64, pt layout.Point) {
	label := layout.ChartLabel(pt)
	pdf.SetFont("Helvetica", "", 5)
	pdf.SetTextColor(100, 100, 100)
	pdf.Text(x-pdf.GetStringWidth(label)/2, y, label)
}

func (e *PDFExporter) drawImage(pdf *gofpdf.Fpdf, c layout.RegionContent) {
	r := c.Region
	data, ok := e.assets.Image(c.ImageRef)
	if !ok {
		pdf.SetDrawColor(210, 210, 210)
		pdf.Rect(r.X, r.Y, r.W, r.H, "D")
		return
	}

	imgType := sniffImageType(data)
	if imgType == "" {
		pdf.SetDrawColor(210, 210, 210)
		pdf.Rect(r.X, r.Y, r.W, r.H, "D")
		return
	}

	opts := gofpdf.ImageOptions{ImageType: imgType}
	pdf.RegisterImageOptionsReader(c.ImageRef, opts, bytes.NewReader(data))
	pdf.ImageOptions(c.ImageRef, r.X, r.Y, r.W, r.H, false, opts, 0, "")
}

// seriesColor gives the first series the team accent and later series
// a fixed neutral palette.
func seriesColor(i int, accent [3]int) (int, int, int) {
	switch i {
	case 0:
		return accent[0], accent[1], accent[2]
	case 1:
		return 90, 90, 90
	default:
		return 170, 170, 170
	}
}

func sniffImageType(data []byte) string {
	switch {
	case len(data) > 8 && bytes.HasPrefix(data, []byte("\x89PNG")):
		return "PNG"
	case len(data) > 2 && data[0] == 0xFF && data[1] == 0xD8:
		return "JPG"
	case len(data) > 6 && bytes.HasPrefix(data, []byte("GIF8")):
		return "GIF"
	default:
		return ""
	}
}
