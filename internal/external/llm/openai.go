package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// OpenAIClient представляет клиент OpenAI-совместимого chat completions
// API. Через baseURL он же обслуживает прокси с тем же протоколом.
type OpenAIClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
	delay      time.Duration

	mu          sync.Mutex
	lastRequest time.Time
	// Метрики
	requestCount int64
	successCount int64
	errorCount   int64
}

// OpenAIConfig конфигурация для OpenAI-совместимого клиента
type OpenAIConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
	Delay   time.Duration
}

// chatRequest структура запроса chat completions
type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	Stream      bool      `json:"stream"`
}

// chatResponse ответ chat completions
type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// modelsResponse ответ списка моделей
type modelsResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

// NewOpenAIClient создает новый OpenAI-совместимый клиент
func NewOpenAIClient(config OpenAIConfig, logger *zap.Logger) *OpenAIClient {
	return &OpenAIClient{
		baseURL: config.BaseURL,
		apiKey:  config.APIKey,
		model:   config.Model,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger,
		delay:  config.Delay,
	}
}

// Name возвращает имя провайдера
func (c *OpenAIClient) Name() string {
	return "openai"
}

// CheckAvailability проверяет доступность API
func (c *OpenAIClient) CheckAvailability(ctx context.Context) error {
	_, err := c.doRequest(ctx, http.MethodGet, "/models", nil)
	return err
}

// SendChat отправляет сообщения и возвращает ответ модели
func (c *OpenAIClient) SendChat(ctx context.Context, messages []Message) (string, error) {
	c.enforceRateLimit()

	request := chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.2,
		MaxTokens:   8192,
		Stream:      false,
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		c.incrementError()
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/chat/completions", jsonData)
	if err != nil {
		c.incrementError()
		return "", err
	}

	var response chatResponse
	if err := json.Unmarshal(body, &response); err != nil {
		c.incrementError()
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(response.Choices) == 0 {
		c.incrementError()
		return "", fmt.Errorf("no choices in LLM response")
	}

	c.incrementSuccess()
	return response.Choices[0].Message.Content, nil
}

// ListModels возвращает список доступных моделей
func (c *OpenAIClient) ListModels(ctx context.Context) ([]string, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/models", nil)
	if err != nil {
		return nil, err
	}

	var response modelsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal models response: %w", err)
	}

	models := make([]string, 0, len(response.Data))
	for _, m := range response.Data {
		models = append(models, m.ID)
	}
	return models, nil
}

// doRequest выполняет HTTP запрос к API
func (c *OpenAIClient) doRequest(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewBuffer(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.logger.Debug("Sending request to LLM API", zap.String("url", req.URL.String()))

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
		return nil, fmt.Errorf("LLM API returned status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// enforceRateLimit применяет задержку между запросами
func (c *OpenAIClient) enforceRateLimit() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if !c.lastRequest.IsZero() {
		elapsed := now.Sub(c.lastRequest)
		if elapsed < c.delay {
			sleepDuration := c.delay - elapsed
			c.logger.Debug("Rate limiting: sleeping",
				zap.Duration("sleep_duration", sleepDuration))
			time.Sleep(sleepDuration)
		}
	}

	c.lastRequest = time.Now()
	c.requestCount++
}

// GetMetrics возвращает метрики клиента
func (c *OpenAIClient) GetMetrics() map[string]interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	return map[string]interface{}{
		"total_requests":      c.requestCount,
		"successful_requests": c.successCount,
		"failed_requests":     c.errorCount,
		"delay_ms":            c.delay.Milliseconds(),
	}
}

// incrementSuccess увеличивает счетчик успешных запросов
func (c *OpenAIClient) incrementSuccess() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.successCount++
}

// incrementError увеличивает счетчик неудачных запросов
func (c *OpenAIClient) incrementError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errorCount++
}
