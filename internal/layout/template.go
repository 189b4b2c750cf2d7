package layout

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/coldrink/rinkreport/internal/metrics"
)

// Letter page size in points.
const (
	PageWidth  = 612.0
	PageHeight = 792.0
)

// Template is the page plan: a fixed, ordered set of regions on a page
// of a given size.
type Template struct {
	Width   float64  `koanf:"width"`
	Height  float64  `koanf:"height"`
	Regions []Region `koanf:"regions"`
}

// LoadTemplate reads a YAML page plan from disk. Missing page size
// falls back to letter.
func LoadTemplate(path string) (*Template, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load layout template: %w", err)
	}

	var tpl Template
	if err := k.UnmarshalWithConf("", &tpl, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("parse layout template: %w", err)
	}

	if tpl.Width == 0 {
		tpl.Width = PageWidth
	}
	if tpl.Height == 0 {
		tpl.Height = PageHeight
	}

	if err := tpl.Validate(); err != nil {
		return nil, err
	}
	return &tpl, nil
}

// Validate rejects templates that cannot be laid out.
func (t *Template) Validate() error {
	if len(t.Regions) == 0 {
		return fmt.Errorf("layout template has no regions")
	}

	seen := map[string]bool{}
	for _, r := range t.Regions {
		if r.Name == "" {
			return fmt.Errorf("layout template: region with empty name")
		}
		if seen[r.Name] {
			return fmt.Errorf("layout template: duplicate region %q", r.Name)
		}
		seen[r.Name] = true

		switch r.Type {
		case TypeText, TypeMetric, TypeChart, TypeImage:
		default:
			return fmt.Errorf("layout template: region %q has unknown type %q", r.Name, r.Type)
		}

		if r.W <= 0 || r.H <= 0 {
			return fmt.Errorf("layout template: region %q has non-positive size", r.Name)
		}
		if r.X < 0 || r.Y < 0 || r.X+r.W > t.Width || r.Y+r.H > t.Height {
			return fmt.Errorf("layout template: region %q exceeds page bounds", r.Name)
		}
	}
	return nil
}

// DefaultTemplate is the compiled-in page plan: header band, record and
// streak boxes, a grid of metric tiles, three charts and a footer.
func DefaultTemplate() *Template {
	tiles := []struct {
		name   string
		metric string
		label  string
	}{
		{"tile_shooting", metrics.ShootingPercentage, "Shooting %"},
		{"tile_save", metrics.SavePercentage, "Save %"},
		{"tile_possession", metrics.PossessionPct, "Possession %"},
		{"tile_shot_share", metrics.ShotShare, "Shot Share %"},
		{"tile_powerplay", metrics.PowerPlayPct, "Power Play %"},
		{"tile_faceoff", metrics.FaceoffPct, "Faceoff %"},
		{"tile_clutch", metrics.ClutchRate, "Clutch Rate"},
		{"tile_momentum", metrics.Momentum, "Momentum"},
		{"tile_pythag", metrics.PythagoreanWinPct, "Expected Win %"},
		{"tile_gpg", metrics.GoalsPerGame, "Goals / Game"},
		{"tile_gapg", metrics.GoalsAgainstPerGame, "Goals Against / Game"},
		{"tile_winpct", metrics.WinPct, "Win %"},
	}

	regions := []Region{
		{Name: "header", Type: TypeText, Text: "{team_name}", Label: "Team",
			X: 36, Y: 24, W: 420, H: 48},
		{Name: "subtitle", Type: TypeText, Text: "Season Report",
			X: 36, Y: 72, W: 420, H: 20},
		{Name: "logo", Type: TypeImage, Image: "logo:{team}",
			X: 480, Y: 24, W: 96, H: 68},
		{Name: "record", Type: TypeText, Text: "{record}", Label: "Record",
			X: 36, Y: 104, W: 150, H: 24},
		{Name: "streak", Type: TypeText, Text: "{streak}", Label: "Streak",
			X: 194, Y: 104, W: 70, H: 24},
		{Name: "home_away", Type: TypeText, Text: "{home_record} home, {away_record} away", Label: "Home / Away",
			X: 272, Y: 104, W: 160, H: 24},
		{Name: "above_expected", Type: TypeText, Text: "{wins_above_expected} upset wins", Label: "Upsets",
			X: 440, Y: 104, W: 136, H: 24},
	}

	// Metric tile grid: 4 columns.
	const (
		gridTop     = 148.0
		tileW       = 132.0
		tileH       = 52.0
		gutter      = 12.0
		gridLeft    = 36.0
		tilesPerRow = 4
	)
	for i, tile := range tiles {
		col := i % tilesPerRow
		row := i / tilesPerRow
		regions = append(regions, Region{
			Name:   tile.name,
			Type:   TypeMetric,
			Metric: tile.metric,
			Label:  tile.label,
			X:      gridLeft + float64(col)*(tileW+gutter),
			Y:      gridTop + float64(row)*(tileH+gutter),
			W:      tileW,
			H:      tileH,
		})
	}

	regions = append(regions,
		Region{Name: "chart_goals", Type: TypeChart, Chart: ChartGoalsTrend, Label: "Goals For / Against",
			X: 36, Y: 352, W: 540, H: 120},
		Region{Name: "chart_winloss", Type: TypeChart, Chart: ChartWinLoss, Label: "Goal Differential",
			X: 36, Y: 488, W: 408, H: 100},
		Region{Name: "gauge_possession", Type: TypeChart, Chart: ChartGauge, Metric: metrics.PossessionPct, Label: "Possession",
			X: 456, Y: 488, W: 120, H: 100},
		Region{Name: "chart_predictions", Type: TypeChart, Chart: ChartPredictions, Label: "Pre-Game Win Probability",
			X: 36, Y: 604, W: 540, H: 120},
		Region{Name: "footer", Type: TypeText, Text: "rinkreport | {team} season summary",
			X: 36, Y: 744, W: 540, H: 20},
	)

	return &Template{Width: PageWidth, Height: PageHeight, Regions: regions}
}
