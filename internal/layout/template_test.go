package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coldrink/rinkreport/internal/metrics"
)

func writeTemplate(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadTemplate(t *testing.T) {
	path := writeTemplate(t, `
width: 612
height: 792
regions:
  - name: header
    type: text
    text: "{team_name}"
    x: 36
    y: 24
    w: 420
    h: 48
  - name: tile_winpct
    type: metric
    metric: win_pct
    label: "Win %"
    x: 36
    y: 104
    w: 132
    h: 52
  - name: chart_goals
    type: chart
    chart: goals_trend
    x: 36
    y: 352
    w: 540
    h: 120
`)

	tpl, err := LoadTemplate(path)
	require.NoError(t, err)
	require.Len(t, tpl.Regions, 3)
	assert.Equal(t, TypeText, tpl.Regions[0].Type)
	assert.Equal(t, metrics.WinPct, tpl.Regions[1].Metric)
	assert.Equal(t, ChartGoalsTrend, tpl.Regions[2].Chart)
}

func TestLoadTemplateDefaultsPageSize(t *testing.T) {
	path := writeTemplate(t, `
regions:
  - name: header
    type: text
    text: hello
    x: 0
    y: 0
    w: 100
    h: 20
`)
	tpl, err := LoadTemplate(path)
	require.NoError(t, err)
	assert.Equal(t, PageWidth, tpl.Width)
	assert.Equal(t, PageHeight, tpl.Height)
}

func TestLoadTemplateMissingFile(t *testing.T) {
	_, err := LoadTemplate(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestTemplateValidate(t *testing.T) {
	base := func() *Template {
		return &Template{
			Width:  612,
			Height: 792,
			Regions: []Region{
				{Name: "a", Type: TypeText, X: 0, Y: 0, W: 100, H: 20},
			},
		}
	}

	tests := []struct {
		name   string
		mutate func(tpl *Template)
		want   string
	}{
		{"no regions", func(tpl *Template) { tpl.Regions = nil }, "no regions"},
		{"empty name", func(tpl *Template) { tpl.Regions[0].Name = "" }, "empty name"},
		{"duplicate name", func(tpl *Template) {
			tpl.Regions = append(tpl.Regions, tpl.Regions[0])
		}, "duplicate"},
		{"unknown type", func(tpl *Template) { tpl.Regions[0].Type = "video" }, "unknown type"},
		{"zero size", func(tpl *Template) { tpl.Regions[0].W = 0 }, "non-positive size"},
		{"out of bounds", func(tpl *Template) { tpl.Regions[0].X = 600 }, "exceeds page bounds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := base()
			tt.mutate(tpl)
			err := tpl.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	assert.NoError(t, base().Validate())
}

func TestDefaultTemplateIsValid(t *testing.T) {
	tpl := DefaultTemplate()
	require.NoError(t, tpl.Validate())

	// Every declared metric gets a tile on the default page.
	byMetric := map[string]bool{}
	for _, r := range tpl.Regions {
		if r.Type == TypeMetric {
			byMetric[r.Metric] = true
		}
	}
	for _, def := range metrics.Definitions() {
		assert.True(t, byMetric[def.Name], "no tile for metric %q", def.Name)
	}
}
