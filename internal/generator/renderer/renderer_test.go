package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender_NoEscaping(t *testing.T) {
	// Подстановка должна оставаться сырой: HTML фрагменты и пользовательский
	// текст вставляются без экранирования
	out, err := Render(`<h1>{{.Title}}</h1>{{.Fragment}}`, map[string]string{
		"Title":    "Fidelity < 99% & rising",
		"Fragment": `<div class="chart"></div>`,
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	assert.Equal(t, `<h1>Fidelity < 99% & rising</h1><div class="chart"></div>`, out)
}

func TestRender_MissingKey(t *testing.T) {
	_, err := Render(`{{.Missing}}`, map[string]string{"Title": "x"})
	assert.ErrorContains(t, err, "template rendering failed")
}

func TestRender_ParseError(t *testing.T) {
	_, err := Render(`{{.Broken`, nil)
	assert.ErrorContains(t, err, "template rendering failed")
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected string
	}{
		{name: "fraction", value: 0.995, expected: "99.5%"},
		{name: "whole", value: 1, expected: "100.0%"},
		{name: "zero", value: 0, expected: "0.0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Percent(tt.value))
		})
	}
}
