// Package generator wires the data, layout and export pipeline into
// one operation: produce the report files for a team.
package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/coldrink/rinkreport/internal/assets"
	"github.com/coldrink/rinkreport/internal/export"
	"github.com/coldrink/rinkreport/internal/layout"
	"github.com/coldrink/rinkreport/internal/nhl"
	"github.com/coldrink/rinkreport/internal/predictions"
	"github.com/coldrink/rinkreport/internal/report"
	"github.com/coldrink/rinkreport/internal/snapshot"
	"github.com/coldrink/rinkreport/pkg/config"
	"github.com/coldrink/rinkreport/pkg/httputil"
	"github.com/coldrink/rinkreport/pkg/logger"
)

// DefaultFormats lists the formats Generate produces when the caller
// passes none.
var DefaultFormats = []string{"pdf", "png"}

// Result describes one finished generation run.
type Result struct {
	RunID       string
	Team        string
	Paths       map[string]string // format -> written file
	GeneratedAt time.Time
	Duration    time.Duration
}

// Generator produces report files for teams. It owns the data source,
// the prediction cache and the snapshot store, and is safe to reuse
// across runs.
type Generator struct {
	cfg      *config.Config
	logger   *logger.Logger
	builder  *report.Builder
	engine   *layout.Engine
	resolver *assets.Resolver
	store    *snapshot.Store
}

// New wires a generator from configuration. A missing prediction file
// degrades to an empty cache; every prediction region then renders the
// unknown placeholder.
func New(cfg *config.Config, log *logger.Logger) (*Generator, error) {
	httpClient := httputil.New(cfg, log)
	client := nhl.NewClient(cfg, httpClient, log)

	var source report.DataSource = client
	var store *snapshot.Store
	if cfg.Snapshot.Enabled {
		s, err := snapshot.Open(cfg.Snapshot.Path, cfg.Snapshot.TTL)
		if err != nil {
			return nil, fmt.Errorf("open snapshot store: %w", err)
		}
		store = s
		source = snapshot.NewCachedSource(client, store, log)
	}

	preds, err := loadPredictions(cfg, log)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, err
	}

	template, err := loadTemplate(cfg)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, err
	}

	return &Generator{
		cfg:      cfg,
		logger:   log,
		builder:  report.NewBuilder(source, preds, log),
		engine:   layout.NewEngine(template),
		resolver: assets.NewResolver(httpClient, log, cfg.NHL.LogoBaseURL),
		store:    store,
	}, nil
}

// Close releases the snapshot store.
func (g *Generator) Close() error {
	if g.store == nil {
		return nil
	}
	return g.store.Close()
}

// Generate builds, lays out and exports one team's report in the given
// formats. The model is assembled all-or-nothing; export failures for
// one format abort the run.
func (g *Generator) Generate(ctx context.Context, team string, formats []string) (*Result, error) {
	start := time.Now()
	team = strings.ToUpper(team)
	if len(formats) == 0 {
		formats = DefaultFormats
	}

	runID := uuid.NewString()
	log := g.logger.WithFields(map[string]interface{}{
		"run_id": runID,
		"team":   team,
	})
	log.Info("generating report")

	page, pageAssets, err := g.buildPage(ctx, team, log)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:       runID,
		Team:        team,
		Paths:       make(map[string]string, len(formats)),
		GeneratedAt: start.UTC(),
	}

	for _, format := range formats {
		exporter, err := exporterFor(format, pageAssets)
		if err != nil {
			return nil, err
		}
		path := g.outputPath(team, format)
		if err := export.ExportFile(exporter, page, path); err != nil {
			return nil, err
		}
		result.Paths[format] = path
		log.WithField("path", path).Info("report written")
	}

	result.Duration = time.Since(start)
	return result, nil
}

// Render builds one team's report and streams it to w in the given
// format. Serving mode uses this to write straight to the response.
func (g *Generator) Render(ctx context.Context, team, format string, w io.Writer) error {
	team = strings.ToUpper(team)
	log := g.logger.WithField("team", team)

	page, pageAssets, err := g.buildPage(ctx, team, log)
	if err != nil {
		return err
	}

	exporter, err := exporterFor(format, pageAssets)
	if err != nil {
		return err
	}
	return exporter.Export(page, w)
}

func (g *Generator) buildPage(ctx context.Context, team string, log *logger.Logger) (*layout.Page, export.AssetMap, error) {
	model, err := g.builder.Build(ctx, team)
	if err != nil {
		return nil, nil, err
	}

	page, err := g.engine.Layout(model)
	if err != nil {
		return nil, nil, err
	}

	return page, g.collectAssets(ctx, page, log), nil
}

// collectAssets resolves the artwork the page references. Artwork is
// decoration; a failed fetch is logged and the region falls back to
// its outline.
func (g *Generator) collectAssets(ctx context.Context, page *layout.Page, log *logger.Logger) export.AssetMap {
	out := export.AssetMap{}
	for _, content := range page.Contents {
		if content.Kind != layout.KindImage {
			continue
		}
		ref := content.ImageRef
		if _, done := out[ref]; done || !strings.HasPrefix(ref, assets.LogoRefPrefix) {
			continue
		}
		team := strings.TrimPrefix(ref, assets.LogoRefPrefix)
		data, err := g.resolver.Logo(ctx, team)
		if err != nil {
			log.WithError(err).Warn("logo unavailable, rendering without it")
			continue
		}
		out[ref] = data
	}
	return out
}

func (g *Generator) outputPath(team, format string) string {
	name := fmt.Sprintf("%s_%s_report.%s", team, g.cfg.Season, format)
	return filepath.Join(g.cfg.OutputDir, name)
}

func exporterFor(format string, pageAssets export.Assets) (export.Exporter, error) {
	switch strings.ToLower(format) {
	case "pdf":
		return export.NewPDFExporter(pageAssets), nil
	case "png":
		return export.NewPNGExporter(pageAssets), nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

func loadPredictions(cfg *config.Config, log *logger.Logger) (*predictions.Cache, error) {
	if cfg.PredictionsFile == "" {
		return predictions.Empty(), nil
	}
	preds, err := predictions.LoadFile(cfg.PredictionsFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.WithField("path", cfg.PredictionsFile).
				Warn("prediction snapshot missing, predictions render as unknown")
			return predictions.Empty(), nil
		}
		return nil, fmt.Errorf("load predictions: %w", err)
	}
	log.WithField("predictions", preds.Len()).Debug("prediction snapshot loaded")
	return preds, nil
}

func loadTemplate(cfg *config.Config) (*layout.Template, error) {
	if cfg.LayoutFile == "" {
		return nil, nil
	}
	return layout.LoadTemplate(cfg.LayoutFile)
}
