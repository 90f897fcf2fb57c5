// Package generator содержит конвейер генерации артефактов лидерборда.
//
// Этапы выполняются строго последовательно: валидация, рендеринг и запись
// HTML, слияние с хранилищем, синхронизация навигации. Каждый этап
// принимает результат предыдущего, так что порядок виден в сигнатурах.
package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"qbench/internal/generator/datastore"
	"qbench/internal/generator/navsync"
	"qbench/internal/generator/renderer"
	"qbench/internal/model"

	"go.uber.org/zap"
)

// Options представляет настройки конвейера
type Options struct {
	SiteDir        string
	TemplatePath   string
	SkipNavigation bool
}

// Pipeline представляет конвейер генерации
type Pipeline struct {
	opts   Options
	store  *datastore.Store
	syncer *navsync.Syncer
	logger *zap.Logger
}

// New создает конвейер генерации
func New(opts Options, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		opts:   opts,
		store:  datastore.NewStore(opts.SiteDir, logger),
		syncer: navsync.NewSyncer(opts.SiteDir, logger),
		logger: logger,
	}
}

// Store возвращает хранилище лидербордов конвейера
func (p *Pipeline) Store() *datastore.Store {
	return p.store
}

// ValidatedConfig представляет результат этапа валидации
type ValidatedConfig struct {
	Config   *model.LeaderboardConfig
	Warnings []string
}

// RenderedPage представляет результат этапа рендеринга
type RenderedPage struct {
	Config     *model.LeaderboardConfig
	HTML       string
	OutputPath string
}

// Outcome представляет итог полного прогона конвейера
type Outcome struct {
	Page          *RenderedPage
	DatastorePath string
	Navigation    *navsync.Result
	Warnings      []string
}

// Validate проверяет конфигурацию. Ошибки схемы возвращаются полным
// списком до любого файлового ввода-вывода; занятый идентификатор — только
// предупреждение.
func (p *Pipeline) Validate(cfg *model.LeaderboardConfig) (*ValidatedConfig, error) {
	if errs := cfg.Validate(); errs.HasErrors() {
		return nil, errs
	}

	result := &ValidatedConfig{Config: cfg}

	exists, err := p.store.Has(cfg.ID)
	if err != nil {
		p.logger.Warn("Failed to check datastore for existing id", zap.Error(err))
	} else if exists {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("leaderboard '%s' already exists and will be overwritten", cfg.ID))
	}

	return result, nil
}

// Render renders the leaderboard page and writes it to
// <site>/leaderboard/<id>/index.html. Any failure here is fatal: no partial
// output is left behind for later stages.
func (p *Pipeline) Render(validated *ValidatedConfig) (*RenderedPage, error) {
	cfg := validated.Config

	templateSource := ""
	if p.opts.TemplatePath != "" {
		data, err := os.ReadFile(p.opts.TemplatePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read template: %w", err)
		}
		templateSource = string(data)
	}

	existing, err := p.store.List()
	if err != nil {
		return nil, err
	}
	navLinks := make([]renderer.NavLink, 0, len(existing))
	for _, summary := range existing {
		navLinks = append(navLinks, renderer.NavLink{
			Href: "../" + summary.ID + "/",
			Text: summary.Title,
		})
	}

	html, err := renderer.BuildPage(cfg, navLinks, templateSource)
	if err != nil {
		return nil, err
	}

	outputPath := filepath.Join(p.opts.SiteDir, "leaderboard", cfg.ID, "index.html")
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create leaderboard directory: %w", err)
	}
	if err := os.WriteFile(outputPath, []byte(html), 0644); err != nil {
		return nil, fmt.Errorf("failed to write leaderboard page: %w", err)
	}

	p.logger.Info("Leaderboard page written", zap.String("path", outputPath))
	return &RenderedPage{Config: cfg, HTML: html, OutputPath: outputPath}, nil
}

// Merge записывает конфигурацию страницы в общее хранилище
func (p *Pipeline) Merge(page *RenderedPage) error {
	return p.store.Merge(page.Config)
}

// SyncNavigation обновляет навигацию по всем страницам сайта
func (p *Pipeline) SyncNavigation(page *RenderedPage) (*navsync.Result, error) {
	if p.opts.SkipNavigation {
		p.logger.Info("Navigation sync skipped by request")
		return &navsync.Result{}, nil
	}
	return p.syncer.Sync(page.Config)
}

// Run прогоняет конфигурацию через все этапы конвейера
func (p *Pipeline) Run(cfg *model.LeaderboardConfig) (*Outcome, error) {
	validated, err := p.Validate(cfg)
	if err != nil {
		return nil, err
	}

	page, err := p.Render(validated)
	if err != nil {
		return nil, err
	}

	if err := p.Merge(page); err != nil {
		return nil, err
	}

	navigation, err := p.SyncNavigation(page)
	if err != nil {
		return nil, err
	}

	warnings := append([]string{}, validated.Warnings...)
	warnings = append(warnings, navigation.Warnings...)

	return &Outcome{
		Page:          page,
		DatastorePath: p.store.Path(),
		Navigation:    navigation,
		Warnings:      warnings,
	}, nil
}
