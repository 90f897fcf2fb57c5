package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formValues() map[string]string {
	return map[string]string{
		"title":      "Quantum Volume Leaderboard",
		"id":         "",
		"short":      "QV across platforms",
		"long":       "",
		"xfield":     "qubits",
		"xlabel":     "Number of qubits",
		"xrange":     "0,100",
		"yfield":     "quantum_volume",
		"ylabel":     "Quantum volume",
		"yrange":     "0, 1024",
		"catfield":   "platform",
		"categories": "superconducting:Superconducting, ion:Trapped ion",
	}
}

func TestBuildConfig(t *testing.T) {
	cfg, err := buildConfig(formValues())
	require.NoError(t, err)

	// Пустой id выводится из заголовка
	assert.Equal(t, "quantum-volume-leaderboard", cfg.ID)
	assert.Equal(t, "Quantum Volume Leaderboard", cfg.Title)

	require.Len(t, cfg.Columns, 4)
	assert.Equal(t, "rank", cfg.Columns[0].ID)
	assert.True(t, cfg.Columns[0].DefaultSort)

	v := cfg.Visualization
	require.NotNil(t, v)
	assert.Equal(t, "scatter", v.Type)
	assert.Equal(t, 1024.0, v.YAxis.Max)
	require.Len(t, v.DataPoints.Categories, 2)
	assert.Equal(t, "Superconducting", v.DataPoints.Categories["superconducting"].Label)

	// Собранная форма проходит общую валидацию
	assert.False(t, cfg.Validate().HasErrors(), "form output must validate: %v", cfg.Validate())
}

func TestBuildConfig_ExplicitID(t *testing.T) {
	values := formValues()
	values["id"] = "qv-2026"

	cfg, err := buildConfig(values)
	require.NoError(t, err)
	assert.Equal(t, "qv-2026", cfg.ID)
}

func TestBuildConfig_BadRange(t *testing.T) {
	values := formValues()
	values["xrange"] = "zero to hundred"

	_, err := buildConfig(values)
	assert.ErrorContains(t, err, "invalid x axis range")
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		min, max float64
		wantErr  bool
	}{
		{name: "plain", value: "0,100", min: 0, max: 100},
		{name: "spaces", value: " -5 , 10.5 ", min: -5, max: 10.5},
		{name: "missing comma", value: "100", wantErr: true},
		{name: "not a number", value: "a,b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max, err := parseRange(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.min, min)
			assert.Equal(t, tt.max, max)
		})
	}
}

func TestParseCategories(t *testing.T) {
	categories, err := parseCategories("a:Alpha, b:Beta, c:Gamma, d:Delta")
	require.NoError(t, err)
	require.Len(t, categories, 4)

	// Формы циклически перебираются по порядку ввода
	assert.Equal(t, "circle", categories["a"].Shape)
	assert.Equal(t, "square", categories["b"].Shape)
	assert.Equal(t, "triangle", categories["c"].Shape)
	assert.Equal(t, "circle", categories["d"].Shape)

	_, err = parseCategories("no-colon")
	assert.ErrorContains(t, err, "expected key:Label")

	_, err = parseCategories("")
	assert.ErrorContains(t, err, "at least one category is required")
}
