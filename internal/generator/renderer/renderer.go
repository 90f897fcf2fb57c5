// Package renderer builds the leaderboard HTML page from a template and a
// validated leaderboard configuration.
package renderer

import (
	"fmt"
	"strings"
	"text/template"
)

// funcMap contains the named helper transforms available to templates.
// eq, gt and lt are provided by text/template itself.
var funcMap = template.FuncMap{
	"percent": Percent,
	"join":    strings.Join,
}

// Render substitutes data into templateSource and returns the result.
//
// The template engine is text/template, not html/template: substitution must
// stay raw. Escaping titles and descriptions here corrupted pages with HTML
// entities before, so pre-built fragments and user text are inserted verbatim.
func Render(templateSource string, data any) (string, error) {
	tmpl, err := template.New("page").Funcs(funcMap).Option("missingkey=error").Parse(templateSource)
	if err != nil {
		return "", fmt.Errorf("template rendering failed: %w", err)
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("template rendering failed: %w", err)
	}

	return out.String(), nil
}

// Percent formats a fraction as a percentage with one decimal place
func Percent(value float64) string {
	return fmt.Sprintf("%.1f%%", value*100)
}
