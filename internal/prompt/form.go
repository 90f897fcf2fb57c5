// Package prompt contains the interactive terminal form that builds a
// minimal leaderboard configuration without a config file.
package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"qbench/internal/chat"
	"qbench/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

// field is one question of the form
type field struct {
	key         string
	label       string
	placeholder string
	optional    bool
	input       textinput.Model
}

// formModel is the bubbletea model of the sequential form
type formModel struct {
	fields  []field
	index   int
	done    bool
	aborted bool
}

func newField(key, label, placeholder string, optional bool) field {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = 200
	return field{key: key, label: label, placeholder: placeholder, optional: optional, input: input}
}

func initialForm() formModel {
	fields := []field{
		newField("title", "Leaderboard title", "Quantum Volume Leaderboard", false),
		newField("id", "URL id (empty = derived from title)", "quantum-volume", true),
		newField("short", "Short description", "One line shown under the title", false),
		newField("long", "Long description", "A paragraph for the intro section", true),
		newField("xfield", "X axis field name", "qubits", false),
		newField("xlabel", "X axis label", "Number of qubits", false),
		newField("xrange", "X axis range min,max", "0,100", false),
		newField("yfield", "Y axis field name", "quantum_volume", false),
		newField("ylabel", "Y axis label", "Quantum volume", false),
		newField("yrange", "Y axis range min,max", "0,100", false),
		newField("catfield", "Category field name", "platform", false),
		newField("categories", "Categories key:Label, comma separated", "superconducting:Superconducting, ion:Trapped ion", false),
	}
	fields[0].input.Focus()
	return formModel{fields: fields}
}

// Init implements tea.Model
func (m formModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		case tea.KeyEnter:
			current := &m.fields[m.index]
			if strings.TrimSpace(current.input.Value()) == "" && !current.optional {
				return m, nil
			}
			current.input.Blur()
			if m.index == len(m.fields)-1 {
				m.done = true
				return m, tea.Quit
			}
			m.index++
			m.fields[m.index].input.Focus()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.fields[m.index].input, cmd = m.fields[m.index].input.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m formModel) View() string {
	var out strings.Builder
	out.WriteString(titleStyle.Render("New leaderboard") + "\n\n")

	for i := 0; i <= m.index && i < len(m.fields); i++ {
		f := m.fields[i]
		style := labelStyle
		if i == m.index && !m.done {
			style = activeStyle
		}
		out.WriteString(style.Render(f.label) + "\n")
		out.WriteString(f.input.View() + "\n")
	}

	out.WriteString("\n" + helpStyle.Render("enter: next field, esc: abort"))
	return out.String()
}

// Run shows the form and returns the collected configuration
func Run() (*model.LeaderboardConfig, error) {
	final, err := tea.NewProgram(initialForm()).Run()
	if err != nil {
		return nil, fmt.Errorf("interactive form failed: %w", err)
	}

	form := final.(formModel)
	if form.aborted {
		return nil, fmt.Errorf("interactive form aborted")
	}

	return buildConfig(form.values())
}

// values collects the entered answers by field key
func (m formModel) values() map[string]string {
	values := make(map[string]string, len(m.fields))
	for _, f := range m.fields {
		values[f.key] = strings.TrimSpace(f.input.Value())
	}
	return values
}

// markerPalette are the colors assigned to categories in input order
var markerPalette = []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b"}

// buildConfig assembles a leaderboard configuration from the form answers
func buildConfig(values map[string]string) (*model.LeaderboardConfig, error) {
	id := values["id"]
	if id == "" {
		id = chat.Slugify(values["title"])
	}

	xMin, xMax, err := parseRange(values["xrange"])
	if err != nil {
		return nil, fmt.Errorf("invalid x axis range: %w", err)
	}
	yMin, yMax, err := parseRange(values["yrange"])
	if err != nil {
		return nil, fmt.Errorf("invalid y axis range: %w", err)
	}

	categories, err := parseCategories(values["categories"])
	if err != nil {
		return nil, err
	}

	cfg := &model.LeaderboardConfig{
		ID:               id,
		Title:            values["title"],
		ShortDescription: values["short"],
		LongDescription:  values["long"],
		Columns: []model.Column{
			{ID: "rank", Name: "Rank", Type: "number", Width: "60px", Sortable: true, DefaultSort: true, SortDirection: "asc"},
			{ID: values["catfield"], Name: "System", Type: "hardware"},
			{ID: values["xfield"], Name: values["xlabel"], Type: "number", Sortable: true},
			{ID: values["yfield"], Name: values["ylabel"], Type: "number", Sortable: true},
		},
		Visualization: &model.Visualization{
			Type:  "scatter",
			XAxis: model.Axis{Field: values["xfield"], Label: values["xlabel"], Min: xMin, Max: xMax},
			YAxis: model.Axis{Field: values["yfield"], Label: values["ylabel"], Min: yMin, Max: yMax},
			DataPoints: model.DataPoints{
				CategoryField: values["catfield"],
				Categories:    categories,
			},
		},
		Content: &model.Content{Sections: []model.ContentSection{}},
	}

	return cfg, nil
}

// parseRange parses a "min,max" pair
func parseRange(value string) (float64, float64, error) {
	parts := strings.SplitN(value, ",", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected min,max, got %q", value)
	}
	min, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid min: %w", err)
	}
	max, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid max: %w", err)
	}
	return min, max, nil
}

// parseCategories parses "key:Label, key:Label" into visualization categories
func parseCategories(value string) (map[string]model.Category, error) {
	shapes := model.CategoryShapes
	categories := make(map[string]model.Category)

	for i, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, label, found := strings.Cut(part, ":")
		if !found {
			return nil, fmt.Errorf("invalid category %q, expected key:Label", part)
		}
		categories[strings.TrimSpace(key)] = model.Category{
			Shape: shapes[i%len(shapes)],
			Color: markerPalette[i%len(markerPalette)],
			Label: strings.TrimSpace(label),
		}
	}

	if len(categories) == 0 {
		return nil, fmt.Errorf("at least one category is required")
	}
	return categories, nil
}
