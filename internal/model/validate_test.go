package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// validConfig возвращает минимальную корректную конфигурацию для тестов
func validConfig() *LeaderboardConfig {
	return &LeaderboardConfig{
		ID:               "qc-test",
		Title:            "QC Test",
		ShortDescription: "Quantum benchmark test",
		Columns: []Column{
			{ID: "rank", Name: "Rank", Type: "number"},
			{ID: "fidelity", Name: "Fidelity", Type: "percentage"},
		},
		Visualization: &Visualization{
			Type:  "scatter",
			XAxis: Axis{Field: "qubits", Label: "Qubits"},
			YAxis: Axis{Field: "fidelity", Label: "Fidelity"},
			DataPoints: DataPoints{
				CategoryField: "platform",
				Categories: map[string]Category{
					"superconducting": {Shape: "circle", Color: "#1f77b4", Label: "Superconducting"},
				},
			},
		},
		Content: &Content{Sections: []ContentSection{}},
	}
}

func TestLeaderboardConfig_Validate(t *testing.T) {
	tests := []struct {
		name       string
		modify     func(c *LeaderboardConfig)
		wantFields []string
	}{
		{
			name:       "valid config",
			modify:     func(c *LeaderboardConfig) {},
			wantFields: nil,
		},
		{
			name:       "missing id",
			modify:     func(c *LeaderboardConfig) { c.ID = "" },
			wantFields: []string{"id"},
		},
		{
			name:       "id with invalid characters",
			modify:     func(c *LeaderboardConfig) { c.ID = "QC Test!" },
			wantFields: []string{"id"},
		},
		{
			name:       "missing title",
			modify:     func(c *LeaderboardConfig) { c.Title = "" },
			wantFields: []string{"title"},
		},
		{
			name:       "missing short description",
			modify:     func(c *LeaderboardConfig) { c.ShortDescription = "" },
			wantFields: []string{"shortDescription"},
		},
		{
			name: "negative navigation position",
			modify: func(c *LeaderboardConfig) {
				pos := -1
				c.Navigation = &Navigation{Position: &pos}
			},
			wantFields: []string{"navigation.position"},
		},
		{
			name:       "no columns",
			modify:     func(c *LeaderboardConfig) { c.Columns = nil },
			wantFields: []string{"columns"},
		},
		{
			name: "missing rank column",
			modify: func(c *LeaderboardConfig) {
				c.Columns = []Column{{ID: "fidelity", Name: "Fidelity", Type: "number"}}
			},
			wantFields: []string{"columns"},
		},
		{
			name: "unknown column type",
			modify: func(c *LeaderboardConfig) {
				c.Columns[1].Type = "float"
			},
			wantFields: []string{"columns[1].type"},
		},
		{
			name: "duplicate column ids",
			modify: func(c *LeaderboardConfig) {
				c.Columns = append(c.Columns, Column{ID: "rank", Name: "Rank2", Type: "number"})
			},
			wantFields: []string{"columns[2].id"},
		},
		{
			name: "two default sort columns",
			modify: func(c *LeaderboardConfig) {
				c.Columns[0].DefaultSort = true
				c.Columns[1].DefaultSort = true
			},
			wantFields: []string{"columns"},
		},
		{
			name:       "missing visualization",
			modify:     func(c *LeaderboardConfig) { c.Visualization = nil },
			wantFields: []string{"visualization"},
		},
		{
			name: "unknown visualization type",
			modify: func(c *LeaderboardConfig) {
				c.Visualization.Type = "pie"
			},
			wantFields: []string{"visualization.type"},
		},
		{
			name: "missing axis field and label",
			modify: func(c *LeaderboardConfig) {
				c.Visualization.XAxis = Axis{}
			},
			wantFields: []string{"visualization.xAxis.field", "visualization.xAxis.label"},
		},
		{
			name: "no categories",
			modify: func(c *LeaderboardConfig) {
				c.Visualization.DataPoints.Categories = nil
			},
			wantFields: []string{"visualization.dataPoints.categories"},
		},
		{
			name: "category with unknown shape",
			modify: func(c *LeaderboardConfig) {
				c.Visualization.DataPoints.Categories["trapped_ion"] = Category{Shape: "star", Color: "#333", Label: "Trapped ion"}
			},
			wantFields: []string{"visualization.dataPoints.categories.trapped_ion.shape"},
		},
		{
			name:       "missing content",
			modify:     func(c *LeaderboardConfig) { c.Content = nil },
			wantFields: []string{"content"},
		},
		{
			name:       "missing sections",
			modify:     func(c *LeaderboardConfig) { c.Content = &Content{} },
			wantFields: []string{"content.sections"},
		},
		{
			name: "text section without content",
			modify: func(c *LeaderboardConfig) {
				c.Content.Sections = []ContentSection{{Title: "About", Type: "text"}}
			},
			wantFields: []string{"content.sections[0].content"},
		},
		{
			name: "card without title",
			modify: func(c *LeaderboardConfig) {
				c.Content.Sections = []ContentSection{{
					Title: "Platforms",
					Type:  "cards",
					Cards: []Card{{Content: "text"}},
				}}
			},
			wantFields: []string{"content.sections[0].cards[0].title"},
		},
		{
			name: "entry with unknown field",
			modify: func(c *LeaderboardConfig) {
				c.InitialEntries = []map[string]any{
					{"rank": 1, "fidelity": 99.5, "vendor": "Acme"},
				}
			},
			wantFields: []string{"initialEntries[0].vendor"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)

			errs := cfg.Validate()

			if len(tt.wantFields) == 0 {
				assert.False(t, errs.HasErrors(), "expected no errors, got: %v", errs)
				return
			}

			got := make(map[string]int)
			for _, err := range errs {
				got[err.Field]++
			}
			for _, field := range tt.wantFields {
				assert.Equal(t, 1, got[field], "expected exactly one error for field %q, errors: %v", field, errs)
			}
		})
	}
}

func TestLeaderboardConfig_Validate_CollectsAllErrors(t *testing.T) {
	cfg := &LeaderboardConfig{}
	errs := cfg.Validate()

	// Пустая конфигурация дает ошибки сразу по всем обязательным полям
	fields := make(map[string]bool)
	for _, err := range errs {
		fields[err.Field] = true
	}
	for _, want := range []string{"id", "title", "shortDescription", "columns", "visualization", "content"} {
		assert.True(t, fields[want], "expected an error for field %q, got: %v", want, errs)
	}
}

func TestLeaderboardConfig_FieldNames(t *testing.T) {
	cfg := validConfig()
	fields := cfg.FieldNames()

	for _, want := range []string{"rank", "fidelity", "qubits", "platform"} {
		if _, ok := fields[want]; !ok {
			t.Errorf("Expected field %q in FieldNames(), got %v", want, fields)
		}
	}
	if _, ok := fields[""]; ok {
		t.Error("FieldNames() must not contain the empty field")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	var errs ValidationErrors
	errs.Add("id", "is required")
	errs.Add("title", "is required")

	assert.Contains(t, errs.Error(), "'id'")
	assert.Contains(t, errs.Error(), "'title'")
	assert.True(t, errs.HasErrors())
}
