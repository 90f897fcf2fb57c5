package renderer

import (
	"testing"

	"qbench/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildClientScript(t *testing.T) {
	cfg := pageConfig()
	cfg.Columns[1].Formatting = &model.Formatting{
		Thresholds: []model.Threshold{
			{Value: 0, Class: "low"},
			{Value: 99, Class: "high"},
		},
	}

	script, err := BuildClientScript(cfg)
	require.NoError(t, err)

	assert.Contains(t, script, `var LEADERBOARD_ID = "qc-test";`)
	assert.Contains(t, script, `'../../data/leaderboard-data.json'`)
	// Пороги колонок попадают в скрипт как есть
	assert.Contains(t, script, `{"value":0,"class":"low"}`)
	assert.Contains(t, script, `{"value":99,"class":"high"}`)
	// Конфигурация графика включает поля осей и категории
	assert.Contains(t, script, `"xField":"qubits"`)
	assert.Contains(t, script, `"yField":"fidelity"`)
	assert.Contains(t, script, `"categoryField":"platform"`)
	assert.Contains(t, script, `"superconducting"`)
	// %% из формата не протекает в результат
	assert.NotContains(t, script, "%!")
	assert.Contains(t, script, "value + '%';")
}
