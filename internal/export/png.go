package export

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"

	"github.com/fogleman/gg"

	"github.com/coldrink/rinkreport/internal/layout"
	"github.com/coldrink/rinkreport/internal/nhl"
)

// DefaultDPI is the raster resolution for PNG exports. 300 DPI turns a
// letter page into a 2550x3300 pixel image.
const DefaultDPI = 300

// PNGExporter rasterizes pages at a fixed DPI. All drawing happens in
// page points; the context scale converts to pixels.
type PNGExporter struct {
	assets Assets
	dpi    float64
}

func NewPNGExporter(assets Assets) *PNGExporter {
	return NewPNGExporterDPI(assets, DefaultDPI)
}

func NewPNGExporterDPI(assets Assets, dpi float64) *PNGExporter {
	if assets == nil {
		assets = AssetMap{}
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &PNGExporter{assets: assets, dpi: dpi}
}

func (e *PNGExporter) Format() string { return "png" }

func (e *PNGExporter) Export(page *layout.Page, w io.Writer) error {
	scale := e.dpi / 72.0
	dc := gg.NewContext(
		int(math.Round(page.Width*scale)),
		int(math.Round(page.Height*scale)),
	)
	dc.Scale(scale, scale)

	dc.SetRGB(1, 1, 1)
	dc.Clear()

	ar, ag, ab := nhl.TeamColor(page.Team)
	accent := [3]int{ar, ag, ab}

	for _, content := range page.Contents {
		switch content.Kind {
		case layout.KindText:
			e.drawText(dc, content, accent)
		case layout.KindChart:
			e.drawChart(dc, content, accent)
		case layout.KindImage:
			e.drawImage(dc, content)
		}
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

func setRGB255(dc *gg.Context, r, g, b int) {
	dc.SetRGB(float64(r)/255, float64(g)/255, float64(b)/255)
}

func (e *PNGExporter) drawText(dc *gg.Context, c layout.RegionContent, accent [3]int) {
	r := c.Region

	if r.Name == "header" {
		setRGB255(dc, accent[0], accent[1], accent[2])
		dc.DrawStringAnchored(c.Text, r.X, r.Y+r.H/2, 0, 0.4)
		return
	}

	if r.Label != "" {
		setRGB255(dc, 120, 120, 120)
		dc.DrawString(r.Label, r.X+4, r.Y+10)

		setRGB255(dc, 210, 210, 210)
		dc.DrawRectangle(r.X, r.Y, r.W, r.H)
		dc.Stroke()
	}

	if c.Placeholder {
		setRGB255(dc, 150, 150, 150)
	} else {
		setRGB255(dc, 20, 20, 20)
	}
	dc.DrawString(c.Text, r.X+4, r.Y+r.H-8)
}

func (e *PNGExporter) drawChart(dc *gg.Context, c layout.RegionContent, accent [3]int) {
	spec := c.Chart
	r := c.Region
	p := chartPlot(r)

	setRGB255(dc, 60, 60, 60)
	dc.DrawString(spec.Title, r.X, r.Y+10)

	setRGB255(dc, 160, 160, 160)
	dc.DrawLine(p.x, p.y, p.x, p.y+p.h)
	dc.DrawLine(p.x, p.y+p.h, p.x+p.w, p.y+p.h)
	dc.Stroke()
	if spec.YMin < 0 && spec.YMax > 0 {
		zero := p.yAt(spec, 0)
		setRGB255(dc, 200, 200, 200)
		dc.DrawLine(p.x, zero, p.x+p.w, zero)
		dc.Stroke()
	}

	for si, series := range spec.Series {
		cr, cg, cb := seriesColor(si, accent)
		if spec.Kind == layout.ChartWinLoss || spec.Kind == layout.ChartGauge {
			e.drawBars(dc, p, spec, series, cr, cg, cb)
		} else {
			e.drawLine(dc, p, spec, series, cr, cg, cb)
		}
	}
}

func (e *PNGExporter) drawLine(dc *gg.Context, p plot, spec *layout.ChartSpec, s layout.Series, cr, cg, cb int) {
	n := len(s.Points)

	prevX, prevY := 0.0, 0.0
	prevKnown := false
	for i, pt := range s.Points {
		x := p.xAt(i, n)
		if pt.Unknown {
			setRGB255(dc, 150, 150, 150)
			dc.DrawCircle(x, p.y+p.h, 2.2)
			dc.Stroke()
			pointLabel(dc, x, p.y+p.h-4, pt)
			prevKnown = false
			continue
		}
		y := p.yAt(spec, pt.Value)
		setRGB255(dc, cr, cg, cb)
		if prevKnown {
			dc.DrawLine(prevX, prevY, x, y)
			dc.Stroke()
		}
		dc.DrawCircle(x, y, 1.6)
		dc.Fill()
		pointLabel(dc, x, y-4, pt)
		prevX, prevY, prevKnown = x, y, true
	}
}

func (e *PNGExporter) drawBars(dc *gg.Context, p plot, spec *layout.ChartSpec, s layout.Series, cr, cg, cb int) {
	n := len(s.Points)
	barW := p.w / float64(n) * 0.6
	base := p.yAt(spec, 0)
	if spec.YMin >= 0 {
		base = p.y + p.h
	}

	for i, pt := range s.Points {
		if pt.Unknown {
			setRGB255(dc, 150, 150, 150)
			dc.DrawCircle(p.xAt(i, n), p.y+p.h, 2.2)
			dc.Stroke()
			pointLabel(dc, p.xAt(i, n), p.y+p.h-4, pt)
			continue
		}
		x := p.xAt(i, n) - barW/2
		y := p.yAt(spec, pt.Value)
		setRGB255(dc, cr, cg, cb)
		if y <= base {
			dc.DrawRectangle(x, y, barW, base-y)
		} else {
			dc.DrawRectangle(x, base, barW, y-base)
		}
		dc.Fill()
		if y <= base {
			pointLabel(dc, p.xAt(i, n), y-3, pt)
		} else {
			pointLabel(dc, p.xAt(i, n), y+8, pt)
		}
	}
}

// pointLabel writes a chart point's value above its mark, using the
// same formatting rule as the text regions.
func pointLabel(dc *gg.Context, x, y float64, pt layout.Point) {
	setRGB255(dc, 100, 100, 100)
	dc.DrawStringAnchored(layout.ChartLabel(pt), x, y, 0.5, 0)
}

func (e *PNGExporter) drawImage(dc *gg.Context, c layout.RegionContent) {
	r := c.Region

	data, ok := e.assets.Image(c.ImageRef)
	if ok {
		if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
			e.drawFitted(dc, img, r)
			return
		}
	}

	setRGB255(dc, 210, 210, 210)
	dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	dc.Stroke()
}

// drawFitted scales the image to fit the region, preserving aspect
// ratio and centering it.
func (e *PNGExporter) drawFitted(dc *gg.Context, img image.Image, r layout.Region) {
	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw == 0 || ih == 0 {
		return
	}

	fit := math.Min(r.W/iw, r.H/ih)
	dc.Push()
	dc.Translate(r.X+(r.W-iw*fit)/2, r.Y+(r.H-ih*fit)/2)
	dc.Scale(fit, fit)
	dc.DrawImage(img, 0, 0)
	dc.Pop()
}
