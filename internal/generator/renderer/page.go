package renderer

import (
	_ "embed"
	"sort"
	"time"

	"qbench/internal/model"
)

//go:embed assets/leaderboard.html.tmpl
var defaultTemplate string

// DefaultTemplate возвращает встроенный шаблон страницы лидерборда
func DefaultTemplate() string {
	return defaultTemplate
}

// PageData is the data passed to the page template. Fragment fields hold
// pre-rendered HTML strings.
type PageData struct {
	ID               string
	Title            string
	ShortDescription string
	LongDescription  string
	Keywords         []string
	CustomCSS        string
	NavLinks         string
	XAxisLabel       string
	YAxisLabel       string
	XTicks           string
	YTicks           string
	ReferenceLine    string
	Legend           string
	TableHeader      string
	ContentSections  string
	Script           string
	GeneratedAt      string
	PlotWidth        int
	PlotHeight       int
}

// BuildPage renders the full leaderboard page for a validated configuration.
// existing lists the already-published leaderboards for the navigation block.
func BuildPage(cfg *model.LeaderboardConfig, existing []NavLink, templateSource string) (string, error) {
	if templateSource == "" {
		templateSource = defaultTemplate
	}

	script, err := BuildClientScript(cfg)
	if err != nil {
		return "", err
	}

	v := cfg.Visualization
	data := PageData{
		ID:               cfg.ID,
		Title:            cfg.Title,
		ShortDescription: cfg.ShortDescription,
		LongDescription:  cfg.LongDescription,
		Keywords:         pageKeywords(cfg),
		CustomCSS:        cfg.CustomCSS,
		NavLinks:         BuildNavLinks(cfg, existing),
		XAxisLabel:       v.XAxis.Label,
		YAxisLabel:       v.YAxis.Label,
		XTicks:           BuildAxisTicks(v.XAxis, false),
		YTicks:           BuildAxisTicks(v.YAxis, true),
		ReferenceLine:    BuildReferenceLine(v),
		Legend:           BuildLegend(v.DataPoints),
		TableHeader:      BuildTableHeader(cfg.Columns),
		ContentSections:  BuildContentSections(cfg.Content),
		Script:           script,
		GeneratedAt:      time.Now().Format("2006-01-02"),
		PlotWidth:        int(PlotWidth),
		PlotHeight:       int(PlotHeight),
	}

	return Render(templateSource, data)
}

// pageKeywords собирает ключевые слова страницы из заголовка и категорий
func pageKeywords(cfg *model.LeaderboardConfig) []string {
	keywords := []string{"quantum computing", "benchmark", cfg.Title}

	labels := make([]string, 0, len(cfg.Visualization.DataPoints.Categories))
	for _, cat := range cfg.Visualization.DataPoints.Categories {
		labels = append(labels, cat.Label)
	}
	sort.Strings(labels)

	return append(keywords, labels...)
}
