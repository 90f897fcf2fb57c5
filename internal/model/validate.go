// Package model содержит валидацию конфигурации лидерборда.
package model

import (
	"fmt"
	"sort"
)

// Validate проверяет конфигурацию лидерборда и возвращает полный список
// нарушений. Проверка не прерывается на первой ошибке: интерфейсу нужен
// весь список сразу.
func (c *LeaderboardConfig) Validate() ValidationErrors {
	var errs ValidationErrors

	if err := ValidateRequired("id", c.ID); err != nil {
		errs = append(errs, *err)
	} else if err := ValidateID("id", c.ID); err != nil {
		errs = append(errs, *err)
	}

	if err := ValidateRequired("title", c.Title); err != nil {
		errs = append(errs, *err)
	}
	if err := ValidateRequired("shortDescription", c.ShortDescription); err != nil {
		errs = append(errs, *err)
	}

	if c.Navigation != nil && c.Navigation.Position != nil {
		if err := ValidateNonNegativeInt("navigation.position", *c.Navigation.Position); err != nil {
			errs = append(errs, *err)
		}
	}

	c.validateColumns(&errs)
	c.validateVisualization(&errs)
	c.validateContent(&errs)
	c.validateEntries(&errs)

	return errs
}

// validateColumns проверяет колонки таблицы
func (c *LeaderboardConfig) validateColumns(errs *ValidationErrors) {
	if len(c.Columns) == 0 {
		errs.Add("columns", "is required and must contain at least one column")
		return
	}

	seen := make(map[string]struct{})
	hasRank := false
	defaultSortCount := 0

	for i, col := range c.Columns {
		path := fmt.Sprintf("columns[%d]", i)

		if err := ValidateRequired(path+".id", col.ID); err != nil {
			*errs = append(*errs, *err)
		} else {
			if _, dup := seen[col.ID]; dup {
				errs.Add(path+".id", fmt.Sprintf("duplicate column id '%s'", col.ID))
			}
			seen[col.ID] = struct{}{}
			if col.ID == "rank" {
				hasRank = true
			}
		}

		if err := ValidateRequired(path+".name", col.Name); err != nil {
			*errs = append(*errs, *err)
		}

		if err := ValidateRequired(path+".type", col.Type); err != nil {
			*errs = append(*errs, *err)
		} else if err := ValidateEnum(path+".type", col.Type, ColumnTypes); err != nil {
			*errs = append(*errs, *err)
		}

		if col.DefaultSort {
			defaultSortCount++
		}
	}

	if !hasRank {
		errs.Add("columns", "must include a column with id 'rank'")
	}
	if defaultSortCount > 1 {
		errs.Add("columns", "at most one column may set defaultSort")
	}
}

// validateVisualization проверяет настройки графика
func (c *LeaderboardConfig) validateVisualization(errs *ValidationErrors) {
	v := c.Visualization
	if v == nil {
		errs.Add("visualization", "is required")
		return
	}

	if err := ValidateRequired("visualization.type", v.Type); err != nil {
		*errs = append(*errs, *err)
	} else if err := ValidateEnum("visualization.type", v.Type, VisualizationTypes); err != nil {
		*errs = append(*errs, *err)
	}

	validateAxis(errs, "visualization.xAxis", v.XAxis)
	validateAxis(errs, "visualization.yAxis", v.YAxis)

	if err := ValidateRequired("visualization.dataPoints.categoryField", v.DataPoints.CategoryField); err != nil {
		*errs = append(*errs, *err)
	}

	if len(v.DataPoints.Categories) == 0 {
		errs.Add("visualization.dataPoints.categories", "is required and must contain at least one category")
		return
	}

	// Стабильный порядок ошибок для повторяемых прогонов
	keys := make([]string, 0, len(v.DataPoints.Categories))
	for key := range v.DataPoints.Categories {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		cat := v.DataPoints.Categories[key]
		path := "visualization.dataPoints.categories." + key

		if err := ValidateRequired(path+".shape", cat.Shape); err != nil {
			*errs = append(*errs, *err)
		} else if err := ValidateEnum(path+".shape", cat.Shape, CategoryShapes); err != nil {
			*errs = append(*errs, *err)
		}
		if err := ValidateRequired(path+".color", cat.Color); err != nil {
			*errs = append(*errs, *err)
		}
		if err := ValidateRequired(path+".label", cat.Label); err != nil {
			*errs = append(*errs, *err)
		}
	}
}

// validateAxis проверяет одну ось графика
func validateAxis(errs *ValidationErrors, path string, axis Axis) {
	if err := ValidateRequired(path+".field", axis.Field); err != nil {
		*errs = append(*errs, *err)
	}
	if err := ValidateRequired(path+".label", axis.Label); err != nil {
		*errs = append(*errs, *err)
	}
}

// validateContent проверяет секции содержимого
func (c *LeaderboardConfig) validateContent(errs *ValidationErrors) {
	if c.Content == nil {
		errs.Add("content", "is required")
		return
	}
	if c.Content.Sections == nil {
		errs.Add("content.sections", "is required (may be empty)")
		return
	}

	for i, section := range c.Content.Sections {
		path := fmt.Sprintf("content.sections[%d]", i)

		if err := ValidateRequired(path+".title", section.Title); err != nil {
			*errs = append(*errs, *err)
		}

		if err := ValidateRequired(path+".type", section.Type); err != nil {
			*errs = append(*errs, *err)
			continue
		}
		if err := ValidateEnum(path+".type", section.Type, SectionTypes); err != nil {
			*errs = append(*errs, *err)
			continue
		}

		switch section.Type {
		case "text":
			if err := ValidateRequired(path+".content", section.Content); err != nil {
				*errs = append(*errs, *err)
			}
		case "cards":
			for j, card := range section.Cards {
				cardPath := fmt.Sprintf("%s.cards[%d]", path, j)
				if err := ValidateRequired(cardPath+".title", card.Title); err != nil {
					*errs = append(*errs, *err)
				}
				if err := ValidateRequired(cardPath+".content", card.Content); err != nil {
					*errs = append(*errs, *err)
				}
			}
		}
	}
}

// validateEntries проверяет, что поля начальных записей известны конфигурации
func (c *LeaderboardConfig) validateEntries(errs *ValidationErrors) {
	if len(c.InitialEntries) == 0 {
		return
	}

	known := c.FieldNames()
	for i, entry := range c.InitialEntries {
		keys := make([]string, 0, len(entry))
		for key := range entry {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			if _, ok := known[key]; !ok {
				errs.Add(fmt.Sprintf("initialEntries[%d].%s", i, key),
					"does not match any column id or visualization field")
			}
		}
	}
}
