// Package model содержит модели данных лидерборда.
//
// Группа: ENTITIES - Основные сущности
// Содержит: LeaderboardConfig, Column, Visualization, ContentSection
package model

// LeaderboardConfig представляет конфигурацию одного лидерборда
type LeaderboardConfig struct {
	ID               string           `json:"id" yaml:"id"`
	Title            string           `json:"title" yaml:"title"`
	ShortDescription string           `json:"shortDescription" yaml:"shortDescription"`
	LongDescription  string           `json:"longDescription,omitempty" yaml:"longDescription,omitempty"`
	Navigation       *Navigation      `json:"navigation,omitempty" yaml:"navigation,omitempty"`
	Columns          []Column         `json:"columns" yaml:"columns"`
	Visualization    *Visualization   `json:"visualization" yaml:"visualization"`
	Content          *Content         `json:"content" yaml:"content"`
	InitialStats     map[string]any   `json:"initialStats,omitempty" yaml:"initialStats,omitempty"`
	InitialEntries   []map[string]any `json:"initialEntries,omitempty" yaml:"initialEntries,omitempty"`
	CustomCSS        string           `json:"customCss,omitempty" yaml:"customCss,omitempty"`
}

// Navigation представляет настройки позиции лидерборда в навигации
type Navigation struct {
	// Позиция вставки среди ссылок лидербордов, с нуля
	Position *int `json:"position,omitempty" yaml:"position,omitempty"`
}

// Column представляет колонку таблицы лидерборда
type Column struct {
	ID            string      `json:"id" yaml:"id"`
	Name          string      `json:"name" yaml:"name"`
	Type          string      `json:"type" yaml:"type"`
	Width         string      `json:"width,omitempty" yaml:"width,omitempty"`
	ClassName     string      `json:"className,omitempty" yaml:"className,omitempty"`
	Sortable      bool        `json:"sortable,omitempty" yaml:"sortable,omitempty"`
	DefaultSort   bool        `json:"defaultSort,omitempty" yaml:"defaultSort,omitempty"`
	SortDirection string      `json:"sortDirection,omitempty" yaml:"sortDirection,omitempty"`
	Formatting    *Formatting `json:"formatting,omitempty" yaml:"formatting,omitempty"`
}

// Formatting представляет правила форматирования значений колонки
type Formatting struct {
	Thresholds []Threshold `json:"thresholds,omitempty" yaml:"thresholds,omitempty"`
}

// Threshold представляет порог для выбора CSS класса ячейки.
//
// Пороги проверяются в порядке следования: класс берется из последнего
// порога, чей value меньше либо равен значению ячейки. Порядок входного
// списка значим.
type Threshold struct {
	Value float64 `json:"value" yaml:"value"`
	Class string  `json:"class" yaml:"class"`
}

// Visualization представляет настройки графика лидерборда
type Visualization struct {
	Type          string         `json:"type" yaml:"type"`
	XAxis         Axis           `json:"xAxis" yaml:"xAxis"`
	YAxis         Axis           `json:"yAxis" yaml:"yAxis"`
	DataPoints    DataPoints     `json:"dataPoints" yaml:"dataPoints"`
	ReferenceLine *ReferenceLine `json:"referenceLine,omitempty" yaml:"referenceLine,omitempty"`
}

// Axis представляет ось графика
type Axis struct {
	Field      string    `json:"field" yaml:"field"`
	Label      string    `json:"label" yaml:"label"`
	Min        float64   `json:"min,omitempty" yaml:"min,omitempty"`
	Max        float64   `json:"max,omitempty" yaml:"max,omitempty"`
	Ticks      []float64 `json:"ticks,omitempty" yaml:"ticks,omitempty"`
	TickLabels []string  `json:"tickLabels,omitempty" yaml:"tickLabels,omitempty"`
}

// DataPoints представляет привязку точек графика к категориям
type DataPoints struct {
	CategoryField string              `json:"categoryField" yaml:"categoryField"`
	Categories    map[string]Category `json:"categories" yaml:"categories"`
}

// Category представляет категорию точек графика
type Category struct {
	Shape string `json:"shape" yaml:"shape"`
	Color string `json:"color" yaml:"color"`
	Label string `json:"label" yaml:"label"`
}

// ReferenceLine представляет опорную линию графика
type ReferenceLine struct {
	X     *float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y     *float64 `json:"y,omitempty" yaml:"y,omitempty"`
	Label string   `json:"label,omitempty" yaml:"label,omitempty"`
	Style string   `json:"style,omitempty" yaml:"style,omitempty"`
}

// Content представляет текстовое содержимое страницы лидерборда
type Content struct {
	Sections []ContentSection `json:"sections" yaml:"sections"`
}

// ContentSection представляет секцию содержимого
type ContentSection struct {
	Title   string `json:"title" yaml:"title"`
	Type    string `json:"type" yaml:"type"`
	Content string `json:"content,omitempty" yaml:"content,omitempty"`
	Cards   []Card `json:"cards,omitempty" yaml:"cards,omitempty"`
}

// Card представляет карточку секции типа cards
type Card struct {
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
}

// Допустимые значения перечислений
var (
	ColumnTypes        = []string{"number", "text", "percentage", "time", "hardware"}
	VisualizationTypes = []string{"scatter", "bar", "line"}
	CategoryShapes     = []string{"circle", "square", "triangle"}
	SectionTypes       = []string{"text", "cards", "grid"}
)

// FieldNames возвращает множество допустимых имен полей записи лидерборда:
// идентификаторы колонок плюс поля осей и поле категории графика.
func (c *LeaderboardConfig) FieldNames() map[string]struct{} {
	fields := make(map[string]struct{})
	for _, col := range c.Columns {
		fields[col.ID] = struct{}{}
	}
	if c.Visualization != nil {
		fields[c.Visualization.XAxis.Field] = struct{}{}
		fields[c.Visualization.YAxis.Field] = struct{}{}
		fields[c.Visualization.DataPoints.CategoryField] = struct{}{}
	}
	delete(fields, "")
	return fields
}
