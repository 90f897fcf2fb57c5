package renderer

import (
	"strings"
	"testing"

	"qbench/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestTickPosition(t *testing.T) {
	tests := []struct {
		name                  string
		value, min, max, size float64
		expected              float64
	}{
		{name: "midpoint", value: 50, min: 0, max: 100, size: 700, expected: 350},
		{name: "minimum", value: 0, min: 0, max: 100, size: 700, expected: 0},
		{name: "maximum", value: 100, min: 0, max: 100, size: 700, expected: 700},
		{name: "shifted range", value: 15, min: 10, max: 20, size: 400, expected: 200},
		{name: "degenerate axis", value: 5, min: 3, max: 3, size: 700, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TickPosition(tt.value, tt.min, tt.max, tt.size)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestThresholdClass(t *testing.T) {
	thresholds := []model.Threshold{
		{Value: 0, Class: "low"},
		{Value: 50, Class: "medium"},
		{Value: 90, Class: "high"},
	}

	tests := []struct {
		name     string
		value    float64
		expected string
	}{
		{name: "below all", value: -1, expected: ""},
		{name: "first threshold", value: 0, expected: "low"},
		{name: "between thresholds", value: 75, expected: "medium"},
		{name: "last threshold wins", value: 95, expected: "high"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ThresholdClass(thresholds, tt.value))
		})
	}
}

func TestThresholdClass_InputOrderMatters(t *testing.T) {
	// Класс берется из последнего удовлетворенного порога в порядке списка,
	// не из наибольшего по значению
	descending := []model.Threshold{
		{Value: 90, Class: "high"},
		{Value: 0, Class: "low"},
	}
	assert.Equal(t, "low", ThresholdClass(descending, 95))
}

func TestBuildNavLinks(t *testing.T) {
	existing := []NavLink{
		{Href: "../alpha/", Text: "Alpha"},
		{Href: "../beta/", Text: "Beta"},
	}

	pos := 1
	cfg := &model.LeaderboardConfig{
		ID:         "gamma",
		Title:      "Gamma",
		Navigation: &model.Navigation{Position: &pos},
	}

	out := BuildNavLinks(cfg, existing)
	lines := strings.Split(out, "\n")

	// 4 базовые ссылки + 2 существующих лидерборда + новая
	assert.Len(t, lines, 7)
	// position=1 ставит новую ссылку после базовых и первого лидерборда
	assert.Contains(t, lines[4], "Alpha")
	assert.Contains(t, lines[5], `<li><a href="../gamma/" class="active">Gamma</a></li>`)
	assert.Contains(t, lines[6], "Beta")
}

func TestBuildNavLinks_AppendWithoutPosition(t *testing.T) {
	cfg := &model.LeaderboardConfig{ID: "gamma", Title: "Gamma"}
	out := BuildNavLinks(cfg, []NavLink{{Href: "../alpha/", Text: "Alpha"}})

	lines := strings.Split(out, "\n")
	assert.Contains(t, lines[len(lines)-1], "Gamma")
}

func TestBuildNavLinks_ReplacesExistingTitle(t *testing.T) {
	cfg := &model.LeaderboardConfig{ID: "alpha", Title: "Alpha"}
	out := BuildNavLinks(cfg, []NavLink{{Href: "../alpha/", Text: "Alpha"}})

	assert.Equal(t, 1, strings.Count(out, ">Alpha<"), "link must not be duplicated on regeneration")
}

func TestBuildNavLinks_PositionPastEnd(t *testing.T) {
	pos := 99
	cfg := &model.LeaderboardConfig{
		ID:         "gamma",
		Title:      "Gamma",
		Navigation: &model.Navigation{Position: &pos},
	}

	out := BuildNavLinks(cfg, nil)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 5)
	assert.Contains(t, lines[4], "Gamma")
}

func TestBuildTableHeader(t *testing.T) {
	columns := []model.Column{
		{ID: "rank", Name: "Rank", Type: "number", Width: "60px"},
		{ID: "fidelity", Name: "Fidelity", Type: "percentage", Sortable: true, DefaultSort: true, SortDirection: "desc", ClassName: "highlight"},
	}

	out := BuildTableHeader(columns)

	assert.Contains(t, out, `<th class="col-number" style="width: 60px" data-column="rank">Rank</th>`)
	assert.Contains(t, out, `class="col-percentage highlight sortable"`)
	assert.Contains(t, out, `data-sortable="true"`)
	assert.Contains(t, out, `data-default-sort="desc"`)
}

func TestBuildAxisTicks(t *testing.T) {
	axis := model.Axis{
		Field:      "qubits",
		Label:      "Qubits",
		Min:        0,
		Max:        100,
		Ticks:      []float64{0, 50, 100},
		TickLabels: []string{"0", "50", "100"},
	}

	t.Run("horizontal", func(t *testing.T) {
		out := BuildAxisTicks(axis, false)
		assert.Contains(t, out, `style="left: 0px;"`)
		assert.Contains(t, out, `style="left: 350px;"`)
		assert.Contains(t, out, `style="left: 700px;"`)
	})

	t.Run("vertical is inverted", func(t *testing.T) {
		out := BuildAxisTicks(axis, true)
		// Большее значение ближе к верху графика
		assert.Contains(t, out, `style="top: 400px;">0<`)
		assert.Contains(t, out, `style="top: 200px;">50<`)
		assert.Contains(t, out, `style="top: 0px;">100<`)
	})

	t.Run("mismatched labels yield nothing", func(t *testing.T) {
		bad := axis
		bad.TickLabels = []string{"0", "50"}
		assert.Empty(t, BuildAxisTicks(bad, false))
	})
}

func TestBuildReferenceLine(t *testing.T) {
	y := 99.0
	v := &model.Visualization{
		YAxis: model.Axis{Min: 0, Max: 100},
		ReferenceLine: &model.ReferenceLine{
			Y:     &y,
			Label: "Threshold",
		},
	}

	out := BuildReferenceLine(v)
	assert.Contains(t, out, "reference-line-h")
	assert.Contains(t, out, "line-dashed")
	assert.Contains(t, out, `style="top: 4px;"`)
	assert.Contains(t, out, "Threshold")
}

func TestBuildReferenceLine_Absent(t *testing.T) {
	assert.Empty(t, BuildReferenceLine(nil))
	assert.Empty(t, BuildReferenceLine(&model.Visualization{}))
}

func TestBuildLegend_StableOrder(t *testing.T) {
	points := model.DataPoints{
		CategoryField: "platform",
		Categories: map[string]model.Category{
			"trapped_ion":     {Shape: "square", Color: "#ff7f0e", Label: "Trapped ion"},
			"superconducting": {Shape: "circle", Color: "#1f77b4", Label: "Superconducting"},
		},
	}

	out := BuildLegend(points)
	assert.Less(t, strings.Index(out, "Superconducting"), strings.Index(out, "Trapped ion"))
	assert.Contains(t, out, "marker-circle")
	assert.Contains(t, out, "background-color: #ff7f0e;")
}

func TestBuildContentSections(t *testing.T) {
	content := &model.Content{
		Sections: []model.ContentSection{
			{Title: "About", Type: "text", Content: "Benchmark overview."},
			{Title: "Platforms", Type: "cards", Cards: []model.Card{
				{Title: "Superconducting", Content: "Fast gates."},
			}},
			{Title: "Metrics", Type: "grid", Cards: []model.Card{
				{Title: "Fidelity", Content: "Gate quality."},
			}},
		},
	}

	out := BuildContentSections(content)
	assert.Contains(t, out, "<h2>About</h2>")
	assert.Contains(t, out, "<p>Benchmark overview.</p>")
	assert.Contains(t, out, `<div class="content-cards">`)
	assert.Contains(t, out, `<div class="content-grid">`)
	assert.Contains(t, out, "<h3>Superconducting</h3>")

	assert.Empty(t, BuildContentSections(nil))
	assert.Empty(t, BuildContentSections(&model.Content{}))
}
