// Package layout deterministically maps a finished report model onto a
// fixed set of page regions, producing the page description the export
// pipeline consumes. It draws nothing itself.
package layout

import (
	"fmt"
	"math"
	"strings"

	"github.com/coldrink/rinkreport/internal/contracts"
	"github.com/coldrink/rinkreport/internal/metrics"
	"github.com/coldrink/rinkreport/internal/report"
)

// Engine lays out report models against one template.
type Engine struct {
	template *Template
}

// NewEngine creates a layout engine for the given template; nil means
// the compiled-in default page plan.
func NewEngine(template *Template) *Engine {
	if template == nil {
		template = DefaultTemplate()
	}
	return &Engine{template: template}
}

// Layout renders the model onto the template's regions, in template
// order. A missing metric degrades to a placeholder in its region; a
// structurally corrupt model fails the whole layout fast.
func (e *Engine) Layout(model *report.Model) (*Page, error) {
	if err := checkModel(model); err != nil {
		return nil, err
	}

	page := &Page{
		Width:    e.template.Width,
		Height:   e.template.Height,
		Team:     model.Team,
		TeamName: model.TeamName,
		Contents: make([]RegionContent, 0, len(e.template.Regions)),
	}

	for _, region := range e.template.Regions {
		content, err := renderRegion(region, model)
		if err != nil {
			return nil, err
		}
		page.Contents = append(page.Contents, content)
	}

	return page, nil
}

// checkModel fails fast on models that should never have reached layout.
func checkModel(model *report.Model) error {
	if model == nil {
		return invariant("nil report model")
	}
	if model.Team == "" {
		return invariant("report model without team identifier")
	}
	if len(model.Games) == 0 {
		return invariant("report model with no games survived assembly")
	}

	for name, value := range model.Metrics {
		def, ok := metrics.Lookup(name)
		if !ok {
			return invariant("model carries undeclared metric %q", name)
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return invariant("metric %q is not a finite number", name)
		}
		if value < def.Min || value > def.Max {
			return invariant("metric %q value %g outside declared range [%g,%g]",
				name, value, def.Min, def.Max)
		}
	}

	for gameID, p := range model.Predictions {
		if p.Known && (p.Pct < 0 || p.Pct > 100 || math.IsNaN(p.Pct)) {
			return invariant("prediction for game %d has impossible probability %g", gameID, p.Pct)
		}
	}

	return nil
}

func renderRegion(region Region, model *report.Model) (RegionContent, error) {
	switch region.Type {
	case TypeText:
		return RegionContent{
			Region: region,
			Kind:   KindText,
			Text:   expand(region.Text, model),
		}, nil

	case TypeMetric:
		value, ok := model.Metric(region.Metric)
		if !ok {
			// A single missing metric must not abort every other region.
			return RegionContent{
				Region:      region,
				Kind:        KindText,
				Placeholder: true,
				Text:        MetricPlaceholder,
			}, nil
		}
		text := FormatValue(value)
		if def, ok := metrics.Lookup(region.Metric); ok && def.Percent {
			text = FormatPercent(value)
		}
		return RegionContent{
			Region: region,
			Kind:   KindText,
			Text:   text,
		}, nil

	case TypeChart:
		spec, err := buildChart(region.Chart, region, model)
		if err != nil {
			return RegionContent{}, err
		}
		return RegionContent{Region: region, Kind: KindChart, Chart: spec}, nil

	case TypeImage:
		return RegionContent{
			Region:   region,
			Kind:     KindImage,
			ImageRef: expand(region.Image, model),
		}, nil

	default:
		return RegionContent{}, invariant("region %q has unknown content type %q", region.Name, region.Type)
	}
}

// expand substitutes model values into a text template. Unrecognized
// placeholders are left as-is so template typos are visible on the page.
func expand(text string, model *report.Model) string {
	r := strings.NewReplacer(
		"{team}", model.Team,
		"{team_name}", model.TeamName,
		"{record}", formatRecord(model.Record),
		"{home_record}", formatSplit(model.Record, true),
		"{away_record}", formatSplit(model.Record, false),
		"{streak}", formatStreak(model.Streak),
		"{wins_above_expected}", fmt.Sprintf("%d", model.WinsAboveExpected),
	)
	return r.Replace(text)
}

func formatRecord(r *contracts.TeamRecord) string {
	if r == nil {
		return MetricPlaceholder
	}
	return fmt.Sprintf("%d-%d-%d (%d GP)", r.Wins, r.Losses, r.OTLosses, r.GamesPlayed)
}

// formatSplit renders one side of the home/away record. Split losses
// fold OT losses in, so wins plus losses equals games on that side.
func formatSplit(r *contracts.TeamRecord, home bool) string {
	if r == nil {
		return MetricPlaceholder
	}
	if home {
		return fmt.Sprintf("%d-%d", r.HomeWins, r.HomeLosses)
	}
	return fmt.Sprintf("%d-%d", r.AwayWins, r.AwayLosses)
}

func formatStreak(s contracts.Streak) string {
	switch s.Kind {
	case contracts.StreakWin:
		return fmt.Sprintf("W%d", s.Count)
	case contracts.StreakLoss:
		return fmt.Sprintf("L%d", s.Count)
	default:
		return "-"
	}
}
