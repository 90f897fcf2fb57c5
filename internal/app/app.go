// Package app содержит фабрику компонентов приложения.
package app

import (
	"context"
	"fmt"

	"qbench/internal/chat"
	"qbench/internal/config"
	"qbench/internal/external/llm"
	"qbench/internal/generator"
	"qbench/internal/health"
	"qbench/internal/telegrambot"

	"go.uber.org/zap"
)

// App представляет собранное приложение ассистента
type App struct {
	bot    *telegrambot.Bot
	health *health.Server
	config *config.Config
	logger *zap.Logger
}

// NewAssistantApp собирает чат-ассистента со всеми зависимостями
func NewAssistantApp(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	chain, err := llm.BuildChain(cfg.LLMConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build LLM provider chain: %w", err)
	}

	assistant := chat.NewAssistant(chain, logger)

	pipeline := generator.New(generator.Options{
		SiteDir:      cfg.SiteDir,
		TemplatePath: cfg.TemplatePath,
	}, logger)

	bot, err := telegrambot.NewBot(cfg, assistant, pipeline, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	application := &App{
		bot:    bot,
		config: cfg,
		logger: logger,
	}

	if cfg.HealthCheckEnabled {
		application.health = health.NewServer(cfg.HealthPort, cfg.SiteDir, pipeline.Store(), logger)
	}

	return application, nil
}

// Start запускает приложение до отмены контекста
func (a *App) Start(ctx context.Context) error {
	if a.health != nil {
		go func() {
			if err := a.health.Start(); err != nil {
				a.logger.Warn("Health server stopped", zap.Error(err))
			}
		}()
		defer func() {
			if err := a.health.Stop(); err != nil {
				a.logger.Warn("Failed to stop health server", zap.Error(err))
			}
		}()
	}

	return a.bot.Start(ctx)
}
