package chat

import (
	"fmt"
	"strings"

	"qbench/internal/model"
)

// systemPrompt инструктирует модель собирать конфигурацию лидерборда
const systemPrompt = `You are an assistant that helps a user describe a new quantum-computing benchmark leaderboard for a static website. Ask short, focused questions to collect: a title, a one-line description, a longer description, the table columns (every leaderboard has a "rank" column of type number; other column types are number, text, percentage, time, hardware), a chart (type scatter, bar or line; x and y axis field names and labels with min and max; a category field with categories, each category having shape circle, square or triangle, a color and a label) and optional content sections (type text, cards or grid).

Once you have enough information, reply with the complete configuration as a single JSON object inside a ` + "```json" + ` code block, using this shape:

{
  "id": "url-safe-id",
  "title": "...",
  "shortDescription": "...",
  "longDescription": "...",
  "columns": [{"id": "rank", "name": "Rank", "type": "number"}],
  "visualization": {
    "type": "scatter",
    "xAxis": {"field": "...", "label": "...", "min": 0, "max": 100},
    "yAxis": {"field": "...", "label": "...", "min": 0, "max": 100},
    "dataPoints": {"categoryField": "...", "categories": {"key": {"shape": "circle", "color": "#1f77b4", "label": "..."}}}
  },
  "content": {"sections": []}
}

Keep any explanation outside the code block short. If the user corrects something, reply with the full updated JSON object again.`

// SystemPrompt возвращает системный промпт ассистента
func SystemPrompt() string {
	return systemPrompt
}

// FormatValidationErrors форматирует список ошибок валидации для пользователя
func FormatValidationErrors(errs model.ValidationErrors) string {
	if !errs.HasErrors() {
		return ""
	}

	var out strings.Builder
	out.WriteString(fmt.Sprintf("The configuration still has %d issue(s):\n", len(errs)))
	for _, err := range errs {
		out.WriteString(fmt.Sprintf("  - %s: %s\n", err.Field, err.Message))
	}
	return strings.TrimRight(out.String(), "\n")
}
