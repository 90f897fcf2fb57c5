// Package config содержит загрузку и валидацию конфигурации приложения.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config представляет конфигурацию приложения
type Config struct {
	// Site
	SiteDir      string
	TemplatePath string

	// Telegram
	BotToken      string
	AdminUsername string

	// Health
	HealthPort         string
	HealthCheckEnabled bool

	// Logging
	LogLevel string

	// LLM
	LLMConfig LLMConfig
}

// LLMConfig представляет конфигурацию LLM провайдеров
type LLMConfig struct {
	// Порядок перебора провайдеров, например "openai,ollama,gemini"
	ProviderOrder []string

	OpenAI OpenAIConfig
	Ollama OllamaConfig
	Gemini GeminiConfig

	Timeout time.Duration
	Delay   time.Duration
}

// OpenAIConfig представляет конфигурацию OpenAI-совместимого провайдера
type OpenAIConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

// OllamaConfig представляет конфигурацию локального Ollama сервера
type OllamaConfig struct {
	BaseURL string
	Model   string
}

// GeminiConfig представляет конфигурацию Gemini провайдера
type GeminiConfig struct {
	APIKey string
	Model  string
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// Загружаем .env файл если он существует
	if err := godotenv.Load(); err != nil {
		// Игнорируем ошибку если файл не найден
	}

	config := &Config{
		SiteDir:            getEnv("SITE_DIR", "./site"),
		TemplatePath:       getEnv("TEMPLATE_PATH", ""),
		BotToken:           getEnv("BOT_TOKEN", ""),
		AdminUsername:      getEnv("ADMIN_USERNAME", ""),
		HealthPort:         getEnv("HEALTH_PORT", "8080"),
		HealthCheckEnabled: getEnvBool("HEALTH_CHECK_ENABLED", true),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LLMConfig: LLMConfig{
			ProviderOrder: getEnvList("LLM_PROVIDER_ORDER", []string{"openai", "ollama", "gemini"}),
			OpenAI: OpenAIConfig{
				BaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
				APIKey:  getEnv("OPENAI_API_KEY", ""),
				Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			},
			Ollama: OllamaConfig{
				BaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
				Model:   getEnv("OLLAMA_MODEL", "llama3.1"),
			},
			Gemini: GeminiConfig{
				APIKey: getEnv("GEMINI_API_KEY", ""),
				Model:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			},
			Timeout: getEnvDuration("LLM_TIMEOUT", 2*time.Minute),
			Delay:   getEnvDuration("LLM_REQUEST_DELAY", time.Second),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if c.SiteDir == "" {
		return fmt.Errorf("SITE_DIR is required")
	}

	if len(c.LLMConfig.ProviderOrder) == 0 {
		return fmt.Errorf("LLM_PROVIDER_ORDER must name at least one provider")
	}

	for _, name := range c.LLMConfig.ProviderOrder {
		switch name {
		case "openai", "ollama", "gemini":
		default:
			return fmt.Errorf("unknown LLM provider %q in LLM_PROVIDER_ORDER", name)
		}
	}

	return nil
}

// getEnv получает переменную окружения с значением по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool получает переменную окружения как bool
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration получает переменную окружения как time.Duration
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvList получает переменную окружения как список значений через запятую
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
