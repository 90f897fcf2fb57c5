package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiClient представляет клиент Gemini API
type GeminiClient struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewGeminiClient создает новый Gemini клиент
func NewGeminiClient(apiKey, model string, logger *zap.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// Name возвращает имя провайдера
func (c *GeminiClient) Name() string {
	return "gemini"
}

// CheckAvailability проверяет, что настроенная модель существует
func (c *GeminiClient) CheckAvailability(ctx context.Context) error {
	if _, err := c.client.Models.Get(ctx, c.model, nil); err != nil {
		return fmt.Errorf("Gemini model check failed: %w", err)
	}
	return nil
}

// SendChat отправляет сообщения и возвращает ответ модели. Системное
// сообщение передается как system instruction, остальные — как содержимое
// диалога.
func (c *GeminiClient) SendChat(ctx context.Context, messages []Message) (string, error) {
	var config *genai.GenerateContentConfig
	var contents []*genai.Content

	for _, message := range messages {
		switch message.Role {
		case RoleSystem:
			config = &genai.GenerateContentConfig{
				SystemInstruction: genai.NewContentFromText(message.Content, genai.RoleUser),
			}
		case RoleAssistant:
			contents = append(contents, genai.NewContentFromText(message.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(message.Content, genai.RoleUser))
		}
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("Gemini request failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from Gemini")
	}
	return text, nil
}

// ListModels возвращает список доступных моделей
func (c *GeminiClient) ListModels(ctx context.Context) ([]string, error) {
	page, err := c.client.Models.List(ctx, &genai.ListModelsConfig{})
	if err != nil {
		return nil, fmt.Errorf("failed to list Gemini models: %w", err)
	}

	models := make([]string, 0, len(page.Items))
	for _, m := range page.Items {
		models = append(models, m.Name)
	}
	return models, nil
}
