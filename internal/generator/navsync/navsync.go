// Package navsync keeps the navigation fragment of every site page in sync
// with the set of generated leaderboards.
package navsync

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"qbench/internal/model"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// BaselineLinkCount is the number of fixed site links preceding all
// leaderboard links in a navigation list.
const BaselineLinkCount = 4

var (
	navPattern    = regexp.MustCompile(`(?s)<nav class="nav">.*?</nav>`)
	listPattern   = regexp.MustCompile(`(?s)<ul class="nav-links">(.*?)</ul>`)
	liIndent      = regexp.MustCompile(`\n([ \t]*)<li`)
	trailingSpace = regexp.MustCompile(`\n([ \t]*)$`)
)

// Link представляет одну ссылку навигации
type Link struct {
	Href   string
	Text   string
	Active bool
	// Прочие атрибуты тега <a>, кроме href и class
	Extra string
}

// Result summarizes a sync run. Per-file failures are warnings, not errors.
type Result struct {
	Updated  []string
	Skipped  []string
	Warnings []string
}

// Syncer представляет синхронизатор навигации
type Syncer struct {
	siteDir string
	logger  *zap.Logger
}

// NewSyncer создает синхронизатор для каталога сайта
func NewSyncer(siteDir string, logger *zap.Logger) *Syncer {
	return &Syncer{siteDir: siteDir, logger: logger}
}

// Sync rewrites the navigation fragment of every candidate page so it
// carries a link to cfg. Pages without the fragment are skipped with a
// warning. Only filesystem-level failures on the site root are fatal.
func (s *Syncer) Sync(cfg *model.LeaderboardConfig) (*Result, error) {
	files, err := s.candidateFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate site files: %w", err)
	}

	result := &Result{}
	for _, rel := range files {
		path := filepath.Join(s.siteDir, filepath.FromSlash(rel))
		changed, err := s.syncFile(path, rel, cfg)
		if err != nil {
			warning := fmt.Sprintf("%s: %v", rel, err)
			result.Warnings = append(result.Warnings, warning)
			result.Skipped = append(result.Skipped, rel)
			s.logger.Warn("Skipping file during navigation sync",
				zap.String("file", rel), zap.Error(err))
			continue
		}
		if changed {
			result.Updated = append(result.Updated, rel)
		} else {
			result.Skipped = append(result.Skipped, rel)
		}
	}

	s.logger.Info("Navigation sync finished",
		zap.Int("updated", len(result.Updated)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Int("warnings", len(result.Warnings)))
	return result, nil
}

// candidateFiles returns, relative to the site root, every *.html directly
// under the root plus every leaderboard/**/index.html.
func (s *Syncer) candidateFiles() ([]string, error) {
	entries, err := os.ReadDir(s.siteDir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			files = append(files, entry.Name())
		}
	}

	leaderboardDir := filepath.Join(s.siteDir, "leaderboard")
	err = filepath.WalkDir(leaderboardDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !d.IsDir() && d.Name() == "index.html" {
			rel, err := filepath.Rel(s.siteDir, path)
			if err != nil {
				return err
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return files, nil
}

// RelativeHref computes the href of the leaderboard with the given id as
// seen from a file at relFile (slash-separated, relative to the site root).
// Root-level files link down into leaderboard/<id>/; files inside the
// leaderboard tree climb one ../ per directory level past the first.
func RelativeHref(relFile, id string) string {
	depth := strings.Count(relFile, "/")
	if depth == 0 {
		return "leaderboard/" + id + "/"
	}
	return strings.Repeat("../", depth-1) + id + "/"
}

// syncFile rewrites one file's navigation fragment; returns whether the
// file content changed.
func (s *Syncer) syncFile(path, rel string, cfg *model.LeaderboardConfig) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read failed: %w", err)
	}
	content := string(data)

	navLoc := navPattern.FindStringIndex(content)
	if navLoc == nil {
		return false, fmt.Errorf("no navigation fragment found")
	}
	fragment := content[navLoc[0]:navLoc[1]]

	listLoc := listPattern.FindStringSubmatchIndex(fragment)
	if listLoc == nil {
		return false, fmt.Errorf("no nav-links list inside navigation fragment")
	}
	inner := fragment[listLoc[2]:listLoc[3]]

	links, err := parseLinks(inner)
	if err != nil {
		return false, fmt.Errorf("parse failed: %w", err)
	}

	merged := mergeLink(links, cfg, rel)
	newInner := serializeLinks(merged, inner)

	newFragment := fragment[:listLoc[2]] + newInner + fragment[listLoc[3]:]
	newContent := content[:navLoc[0]] + newFragment + content[navLoc[1]:]

	if newContent == content {
		return false, nil
	}

	if err := os.WriteFile(path, []byte(newContent), 0644); err != nil {
		return false, fmt.Errorf("write failed: %w", err)
	}
	return true, nil
}

// parseLinks extracts the ordered link list from the inner HTML of the
// nav-links <ul>.
func parseLinks(inner string) ([]Link, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<ul>" + inner + "</ul>"))
	if err != nil {
		return nil, err
	}

	var links []Link
	doc.Find("li a").Each(func(_ int, sel *goquery.Selection) {
		link := Link{
			Href: sel.AttrOr("href", ""),
			Text: strings.TrimSpace(sel.Text()),
		}
		if len(sel.Nodes) > 0 {
			link.Active, link.Extra = splitAttributes(sel.Nodes[0].Attr)
		}
		links = append(links, link)
	})
	return links, nil
}

// splitAttributes derives the active flag from the class attribute and
// keeps any remaining attributes verbatim.
func splitAttributes(attrs []html.Attribute) (bool, string) {
	active := false
	var extra []string
	for _, attr := range attrs {
		switch attr.Key {
		case "href":
		case "class":
			for _, class := range strings.Fields(attr.Val) {
				if class == "active" {
					active = true
				}
			}
		default:
			extra = append(extra, fmt.Sprintf(`%s="%s"`, attr.Key, attr.Val))
		}
	}
	return active, strings.Join(extra, " ")
}

// mergeLink merges the leaderboard's link into the parsed list. An existing
// link with the same text is replaced at the index it already occupies; a
// changed navigation.position does not move it. Otherwise the link is
// inserted at position+4 (after the baseline links) or appended.
func mergeLink(links []Link, cfg *model.LeaderboardConfig, relFile string) []Link {
	newLink := Link{
		Href: RelativeHref(relFile, cfg.ID),
		Text: cfg.Title,
		// Активной ссылка становится только на собственной странице лидерборда
		Active: relFile == "leaderboard/"+cfg.ID+"/index.html",
	}

	for i := range links {
		if links[i].Text == cfg.Title {
			links[i] = newLink
			return links
		}
	}

	index := len(links)
	if cfg.Navigation != nil && cfg.Navigation.Position != nil {
		index = *cfg.Navigation.Position + BaselineLinkCount
		if index > len(links) {
			index = len(links)
		}
	}

	return append(links[:index], append([]Link{newLink}, links[index:]...)...)
}

// serializeLinks writes the link list back using the indentation style of
// the original inner HTML.
func serializeLinks(links []Link, originalInner string) string {
	indent := "                "
	if m := liIndent.FindStringSubmatch(originalInner); m != nil {
		indent = m[1]
	}
	closing := ""
	if m := trailingSpace.FindStringSubmatch(originalInner); m != nil {
		closing = m[1]
	}

	var out strings.Builder
	out.WriteString("\n")
	for _, link := range links {
		out.WriteString(indent)
		out.WriteString("<li><a href=\"" + link.Href + "\"")
		if link.Active {
			out.WriteString(` class="active"`)
		}
		if link.Extra != "" {
			out.WriteString(" " + link.Extra)
		}
		out.WriteString(">" + link.Text + "</a></li>\n")
	}
	out.WriteString(closing)
	return out.String()
}
