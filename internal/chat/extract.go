package chat

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ExtractJSON ищет в ответе модели JSON объект конфигурации. Сначала
// срезаются markdown ограждения ```json, затем берется последний
// сбалансированный {...} блок.
func ExtractJSON(response string) (string, bool) {
	cleaned := response

	// Убираем markdown блоки ```json
	if start := strings.Index(cleaned, "```json"); start != -1 {
		start += len("```json")
		if end := strings.LastIndex(cleaned, "```"); end > start {
			cleaned = cleaned[start:end]
		}
	}

	// Ищем последний сбалансированный JSON объект
	lastBrace := strings.LastIndex(cleaned, "}")
	if lastBrace == -1 {
		return "", false
	}

	depth := 0
	inString := false
	for i := lastBrace; i >= 0; i-- {
		ch := cleaned[i]
		if inString {
			// Обратный проход: кавычка закрывает строку, если не экранирована
			if ch == '"' && (i == 0 || cleaned[i-1] != '\\') {
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '}':
			depth++
		case '{':
			depth--
			if depth == 0 {
				candidate := strings.TrimSpace(cleaned[i : lastBrace+1])
				return candidate, true
			}
		}
	}

	return "", false
}

// Slugify превращает заголовок в URL-безопасный идентификатор лидерборда
func Slugify(title string) string {
	// Убираем диакритику
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	normalized, _, err := transform.String(t, title)
	if err != nil {
		normalized = title
	}

	var out strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(normalized) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			out.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				out.WriteRune('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(out.String(), "-")
}
