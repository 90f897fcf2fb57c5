package renderer

import (
	"fmt"
	"sort"
	"strings"

	"qbench/internal/model"
)

// Plotting rectangle of the chart area, in pixels. The generated client
// script positions its markers inside the same rectangle.
const (
	PlotWidth  = 700.0
	PlotHeight = 400.0
)

// baselineLinks are the fixed site-wide links that precede all leaderboard
// links in every navigation list. Hrefs are relative to a leaderboard page
// at leaderboard/<id>/.
var baselineLinks = []NavLink{
	{Href: "../../index.html", Text: "Home"},
	{Href: "../../benchmarks.html", Text: "Benchmarks"},
	{Href: "../../methodology.html", Text: "Methodology"},
	{Href: "../../about.html", Text: "About"},
}

// BaselineLinkCount is the number of fixed links preceding leaderboard links
const BaselineLinkCount = 4

// NavLink представляет одну ссылку навигации
type NavLink struct {
	Href   string
	Text   string
	Active bool
}

// TickPosition computes the linear-interpolated pixel offset of value within
// a plotting span of the given size. A degenerate axis (max == min) maps
// everything to zero.
func TickPosition(value, min, max, size float64) float64 {
	if max == min {
		return 0
	}
	return (value - min) / (max - min) * size
}

// ThresholdClass picks the CSS class for a cell value. Thresholds are
// evaluated in input order and every satisfied threshold overwrites the
// previous pick, so with ascending values the last satisfied one wins.
// The generated client script mirrors this rule; keep the two in sync.
func ThresholdClass(thresholds []model.Threshold, value float64) string {
	class := ""
	for _, t := range thresholds {
		if value >= t.Value {
			class = t.Class
		}
	}
	return class
}

// BuildNavLinks builds the navigation link list for the generated page:
// the fixed baseline links, links to existing leaderboards, and the new
// leaderboard's link inserted at navigation.position (or appended) and
// marked active.
func BuildNavLinks(cfg *model.LeaderboardConfig, existing []NavLink) string {
	links := make([]NavLink, 0, len(baselineLinks)+len(existing)+1)
	links = append(links, baselineLinks...)
	for _, link := range existing {
		if link.Text == cfg.Title {
			continue
		}
		links = append(links, NavLink{Href: link.Href, Text: link.Text})
	}

	newLink := NavLink{Href: "../" + cfg.ID + "/", Text: cfg.Title, Active: true}

	index := len(links)
	if cfg.Navigation != nil && cfg.Navigation.Position != nil {
		index = *cfg.Navigation.Position + BaselineLinkCount
		if index > len(links) {
			index = len(links)
		}
	}

	links = append(links[:index], append([]NavLink{newLink}, links[index:]...)...)

	var out strings.Builder
	for _, link := range links {
		attr := ""
		if link.Active {
			attr = ` class="active"`
		}
		fmt.Fprintf(&out, "<li><a href=\"%s\"%s>%s</a></li>\n", link.Href, attr, link.Text)
	}
	return strings.TrimRight(out.String(), "\n")
}

// BuildTableHeader builds the <th> cells for the configured columns
func BuildTableHeader(columns []model.Column) string {
	var out strings.Builder
	for _, col := range columns {
		classes := []string{"col-" + col.Type}
		if col.ClassName != "" {
			classes = append(classes, col.ClassName)
		}
		if col.Sortable {
			classes = append(classes, "sortable")
		}

		out.WriteString(`<th class="` + strings.Join(classes, " ") + `"`)
		if col.Width != "" {
			out.WriteString(` style="width: ` + col.Width + `"`)
		}
		out.WriteString(` data-column="` + col.ID + `"`)
		if col.Sortable {
			out.WriteString(` data-sortable="true"`)
		}
		if col.DefaultSort {
			direction := col.SortDirection
			if direction == "" {
				direction = "asc"
			}
			out.WriteString(` data-default-sort="` + direction + `"`)
		}
		out.WriteString(">" + col.Name + "</th>\n")
	}
	return strings.TrimRight(out.String(), "\n")
}

// BuildAxisTicks builds positioned tick labels for one axis. The tick and
// tickLabel arrays must be parallel; a length mismatch yields no output.
// The y axis is inverted: a higher value sits closer to the top of the plot.
func BuildAxisTicks(axis model.Axis, vertical bool) string {
	if len(axis.Ticks) == 0 || len(axis.Ticks) != len(axis.TickLabels) {
		return ""
	}

	var out strings.Builder
	for i, tick := range axis.Ticks {
		label := axis.TickLabels[i]
		if vertical {
			top := PlotHeight - TickPosition(tick, axis.Min, axis.Max, PlotHeight)
			fmt.Fprintf(&out, "<div class=\"axis-tick axis-tick-y\" style=\"top: %.0fpx;\">%s</div>\n", top, label)
		} else {
			left := TickPosition(tick, axis.Min, axis.Max, PlotWidth)
			fmt.Fprintf(&out, "<div class=\"axis-tick axis-tick-x\" style=\"left: %.0fpx;\">%s</div>\n", left, label)
		}
	}
	return strings.TrimRight(out.String(), "\n")
}

// BuildReferenceLine builds the optional reference line markup: a horizontal
// line for referenceLine.y, a vertical line for referenceLine.x, or both.
func BuildReferenceLine(v *model.Visualization) string {
	if v == nil || v.ReferenceLine == nil {
		return ""
	}

	line := v.ReferenceLine
	style := line.Style
	if style == "" {
		style = "dashed"
	}

	var out strings.Builder
	if line.Y != nil {
		top := PlotHeight - TickPosition(*line.Y, v.YAxis.Min, v.YAxis.Max, PlotHeight)
		fmt.Fprintf(&out, "<div class=\"reference-line reference-line-h line-%s\" style=\"top: %.0fpx;\"></div>\n", style, top)
		if line.Label != "" {
			fmt.Fprintf(&out, "<div class=\"reference-line-label\" style=\"top: %.0fpx;\">%s</div>\n", top, line.Label)
		}
	}
	if line.X != nil {
		left := TickPosition(*line.X, v.XAxis.Min, v.XAxis.Max, PlotWidth)
		fmt.Fprintf(&out, "<div class=\"reference-line reference-line-v line-%s\" style=\"left: %.0fpx;\"></div>\n", style, left)
		if line.Label != "" && line.Y == nil {
			fmt.Fprintf(&out, "<div class=\"reference-line-label\" style=\"left: %.0fpx;\">%s</div>\n", left, line.Label)
		}
	}
	return strings.TrimRight(out.String(), "\n")
}

// BuildLegend builds legend items for the visualization categories, in
// stable key order.
func BuildLegend(points model.DataPoints) string {
	keys := make([]string, 0, len(points.Categories))
	for key := range points.Categories {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var out strings.Builder
	for _, key := range keys {
		cat := points.Categories[key]
		fmt.Fprintf(&out,
			"<div class=\"legend-item\" data-category=\"%s\"><span class=\"legend-marker marker-%s\" style=\"background-color: %s;\"></span>%s</div>\n",
			key, cat.Shape, cat.Color, cat.Label)
	}
	return strings.TrimRight(out.String(), "\n")
}

// BuildContentSections builds the content section blocks
func BuildContentSections(content *model.Content) string {
	if content == nil || len(content.Sections) == 0 {
		return ""
	}

	var out strings.Builder
	for _, section := range content.Sections {
		switch section.Type {
		case "text":
			fmt.Fprintf(&out, "<section class=\"content-section\">\n<h2>%s</h2>\n<p>%s</p>\n</section>\n",
				section.Title, section.Content)
		case "cards", "grid":
			class := "content-cards"
			if section.Type == "grid" {
				class = "content-grid"
			}
			fmt.Fprintf(&out, "<section class=\"content-section\">\n<h2>%s</h2>\n<div class=\"%s\">\n", section.Title, class)
			for _, card := range section.Cards {
				fmt.Fprintf(&out, "<div class=\"content-card\">\n<h3>%s</h3>\n<p>%s</p>\n</div>\n", card.Title, card.Content)
			}
			out.WriteString("</div>\n</section>\n")
		}
	}
	return strings.TrimRight(out.String(), "\n")
}
