package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// OllamaClient представляет клиент локального Ollama сервера
type OllamaClient struct {
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

// OllamaConfig конфигурация для Ollama клиента
type OllamaConfig struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// ollamaChatRequest структура запроса /api/chat
type ollamaChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

// ollamaChatResponse ответ /api/chat
type ollamaChatResponse struct {
	Message Message `json:"message"`
}

// ollamaTagsResponse ответ /api/tags
type ollamaTagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// NewOllamaClient создает новый Ollama клиент
func NewOllamaClient(config OllamaConfig, logger *zap.Logger) *OllamaClient {
	return &OllamaClient{
		baseURL: config.BaseURL,
		model:   config.Model,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger,
	}
}

// Name возвращает имя провайдера
func (c *OllamaClient) Name() string {
	return "ollama"
}

// CheckAvailability проверяет, что локальный сервер отвечает
func (c *OllamaClient) CheckAvailability(ctx context.Context) error {
	_, err := c.doRequest(ctx, http.MethodGet, "/api/tags", nil)
	return err
}

// SendChat отправляет сообщения и возвращает ответ модели
func (c *OllamaClient) SendChat(ctx context.Context, messages []Message) (string, error) {
	request := ollamaChatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   false,
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/api/chat", jsonData)
	if err != nil {
		return "", err
	}

	var response ollamaChatResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if response.Message.Content == "" {
		return "", fmt.Errorf("empty response from Ollama")
	}

	return response.Message.Content, nil
}

// ListModels возвращает список локально установленных моделей
func (c *OllamaClient) ListModels(ctx context.Context) ([]string, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/tags", nil)
	if err != nil {
		return nil, err
	}

	var response ollamaTagsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tags response: %w", err)
	}

	models := make([]string, 0, len(response.Models))
	for _, m := range response.Models {
		models = append(models, m.Name)
	}
	return models, nil
}

// doRequest выполняет HTTP запрос к Ollama серверу
func (c *OllamaClient) doRequest(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewBuffer(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warn("Failed to close response body", zap.Error(err))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Ollama returned status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
