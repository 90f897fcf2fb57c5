// Package llm содержит клиентов LLM провайдеров и цепочку перебора.
package llm

import (
	"context"
	"fmt"
	"strings"

	"qbench/internal/config"

	"go.uber.org/zap"
)

// Роли сообщений чата
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message представляет сообщение в чате
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider представляет одного LLM провайдера. Известные реализации:
// OpenAI-совместимый API, локальный Ollama сервер, Gemini.
type Provider interface {
	Name() string
	CheckAvailability(ctx context.Context) error
	SendChat(ctx context.Context, messages []Message) (string, error)
	ListModels(ctx context.Context) ([]string, error)
}

// Chain представляет упорядоченную цепочку провайдеров: каждый вызов
// пробует провайдеров в заданном порядке до первого успеха. Порядок
// передается явно при создании, глобального состояния нет.
type Chain struct {
	providers []Provider
	logger    *zap.Logger
}

// NewChain создает цепочку провайдеров
func NewChain(providers []Provider, logger *zap.Logger) (*Chain, error) {
	if len(providers) == 0 {
		return nil, fmt.Errorf("at least one LLM provider is required")
	}
	return &Chain{providers: providers, logger: logger}, nil
}

// BuildChain собирает цепочку провайдеров по конфигурации, в порядке
// LLM_PROVIDER_ORDER. Провайдеры без обязательных настроек пропускаются
// с предупреждением.
func BuildChain(cfg config.LLMConfig, logger *zap.Logger) (*Chain, error) {
	var providers []Provider
	for _, name := range cfg.ProviderOrder {
		switch name {
		case "openai":
			if cfg.OpenAI.APIKey == "" {
				logger.Warn("OpenAI provider skipped: OPENAI_API_KEY is not set")
				continue
			}
			providers = append(providers, NewOpenAIClient(OpenAIConfig{
				BaseURL: cfg.OpenAI.BaseURL,
				APIKey:  cfg.OpenAI.APIKey,
				Model:   cfg.OpenAI.Model,
				Timeout: cfg.Timeout,
				Delay:   cfg.Delay,
			}, logger))
		case "ollama":
			providers = append(providers, NewOllamaClient(OllamaConfig{
				BaseURL: cfg.Ollama.BaseURL,
				Model:   cfg.Ollama.Model,
				Timeout: cfg.Timeout,
			}, logger))
		case "gemini":
			if cfg.Gemini.APIKey == "" {
				logger.Warn("Gemini provider skipped: GEMINI_API_KEY is not set")
				continue
			}
			gemini, err := NewGeminiClient(cfg.Gemini.APIKey, cfg.Gemini.Model, logger)
			if err != nil {
				logger.Warn("Gemini provider skipped", zap.Error(err))
				continue
			}
			providers = append(providers, gemini)
		default:
			return nil, fmt.Errorf("unknown LLM provider %q", name)
		}
	}

	return NewChain(providers, logger)
}

// SendChat отправляет сообщения первому доступному провайдеру. Возвращает
// ответ и имя ответившего провайдера.
func (c *Chain) SendChat(ctx context.Context, messages []Message) (string, string, error) {
	var failures []string
	for _, provider := range c.providers {
		reply, err := provider.SendChat(ctx, messages)
		if err != nil {
			c.logger.Warn("LLM provider failed, trying next",
				zap.String("provider", provider.Name()), zap.Error(err))
			failures = append(failures, fmt.Sprintf("%s: %v", provider.Name(), err))
			continue
		}
		return reply, provider.Name(), nil
	}
	return "", "", fmt.Errorf("all LLM providers failed: %s", strings.Join(failures, "; "))
}

// FirstAvailable возвращает имя первого доступного провайдера
func (c *Chain) FirstAvailable(ctx context.Context) (string, error) {
	var failures []string
	for _, provider := range c.providers {
		if err := provider.CheckAvailability(ctx); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", provider.Name(), err))
			continue
		}
		return provider.Name(), nil
	}
	return "", fmt.Errorf("no LLM provider is available: %s", strings.Join(failures, "; "))
}

// Providers возвращает имена провайдеров цепочки в порядке перебора
func (c *Chain) Providers() []string {
	names := make([]string, 0, len(c.providers))
	for _, provider := range c.providers {
		names = append(names, provider.Name())
	}
	return names
}
