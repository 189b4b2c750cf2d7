// Package export renders finished page descriptions into deliverable
// files. Every backend consumes the same layout.Page; none of them
// recompute or reformat values.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/coldrink/rinkreport/internal/layout"
)

// Exporter renders a laid-out page into one output format.
type Exporter interface {
	// Format is the file extension the backend produces, without dot.
	Format() string
	// Export writes the rendered page to w.
	Export(page *layout.Page, w io.Writer) error
}

// Assets supplies image bytes for page image references. A missing
// asset is not an error; the backend draws the region's outline
// instead.
type Assets interface {
	Image(ref string) ([]byte, bool)
}

// AssetMap is the in-memory Assets implementation the generator fills
// before exporting.
type AssetMap map[string][]byte

func (m AssetMap) Image(ref string) ([]byte, bool) {
	data, ok := m[ref]
	return data, ok
}

// ExportFile renders the page to path, creating parent directories as
// needed. The file is written atomically via a temp file so a crashed
// export never leaves a truncated deliverable behind.
func ExportFile(e Exporter, page *layout.Page, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".rinkreport-*")
	if err != nil {
		return fmt.Errorf("create temp output: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := e.Export(page, tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("export %s: %w", e.Format(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("finalize output: %w", err)
	}
	return nil
}

// plot is the inner drawing area of a chart region, inset so the title
// and axis labels fit inside the region bounds.
type plot struct {
	x, y, w, h float64
}

const (
	plotTitleInset  = 16.0
	plotBottomInset = 14.0
	plotSideInset   = 26.0
)

func chartPlot(r layout.Region) plot {
	return plot{
		x: r.X + plotSideInset,
		y: r.Y + plotTitleInset,
		w: r.W - 2*plotSideInset,
		h: r.H - plotTitleInset - plotBottomInset,
	}
}

// xAt spaces n points evenly across the plot width.
func (p plot) xAt(i, n int) float64 {
	if n <= 1 {
		return p.x + p.w/2
	}
	return p.x + p.w*float64(i)/float64(n-1)
}

// yAt maps a data value into plot coordinates, y growing downward.
func (p plot) yAt(spec *layout.ChartSpec, v float64) float64 {
	span := spec.YMax - spec.YMin
	if span <= 0 {
		return p.y + p.h
	}
	frac := (v - spec.YMin) / span
	return p.y + p.h*(1-frac)
}
