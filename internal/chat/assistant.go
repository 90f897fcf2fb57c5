package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"qbench/internal/external/llm"
	"qbench/internal/model"

	"go.uber.org/zap"
)

// Assistant представляет диалогового помощника, собирающего конфигурацию
// лидерборда через цепочку LLM провайдеров.
type Assistant struct {
	chain    *llm.Chain
	sessions *Manager
	logger   *zap.Logger
}

// NewAssistant создает помощника
func NewAssistant(chain *llm.Chain, logger *zap.Logger) *Assistant {
	return &Assistant{
		chain:    chain,
		sessions: NewManager(2*time.Hour, logger),
		logger:   logger,
	}
}

// HandleMessage обрабатывает свободный текст пользователя: передает его
// модели, извлекает из ответа черновик конфигурации и проверяет его.
func (a *Assistant) HandleMessage(ctx context.Context, chatID int64, text string) (string, error) {
	session := a.sessions.Get(chatID)
	if session.Stage == StageWelcome {
		session.Stage = StageCollecting
	}

	session.AppendHistory(llm.RoleUser, text)

	messages := make([]llm.Message, 0, len(session.History)+1)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: SystemPrompt()})
	for _, m := range session.History {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}

	reply, provider, err := a.chain.SendChat(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("assistant request failed: %w", err)
	}

	session.AppendHistory(llm.RoleAssistant, reply)
	a.sessions.Touch(session)
	a.logger.Debug("Assistant reply received",
		zap.Int64("chat_id", chatID),
		zap.String("provider", provider),
		zap.Int("reply_length", len(reply)))

	response := stripJSONBlock(reply)

	if jsonStr, ok := ExtractJSON(reply); ok {
		draft := &model.LeaderboardConfig{}
		if err := json.Unmarshal([]byte(jsonStr), draft); err != nil {
			a.logger.Warn("Failed to parse config from assistant reply", zap.Error(err))
			return response, nil
		}

		if draft.ID == "" && draft.Title != "" {
			draft.ID = Slugify(draft.Title)
		}
		session.Draft = draft

		if errs := draft.Validate(); errs.HasErrors() {
			session.Stage = StageCollecting
			response = appendStatus(response, FormatValidationErrors(errs))
		} else {
			session.Stage = StageReview
			response = appendStatus(response,
				fmt.Sprintf("Draft '%s' is complete and valid. Use /review to inspect it or /generate to publish.", draft.ID))
		}
	}

	return response, nil
}

// Review возвращает текущий черновик сессии в читаемом виде
func (a *Assistant) Review(chatID int64) (string, error) {
	session := a.sessions.Get(chatID)
	if session.Draft == nil {
		return "", fmt.Errorf("no draft configuration yet; describe the leaderboard first")
	}

	pretty, err := json.MarshalIndent(session.Draft, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format draft: %w", err)
	}

	status := "valid and ready for /generate"
	if errs := session.Draft.Validate(); errs.HasErrors() {
		status = FormatValidationErrors(errs)
	}
	return fmt.Sprintf("Current draft:\n%s\n\n%s", pretty, status), nil
}

// Draft возвращает готовый к генерации черновик или ошибку
func (a *Assistant) Draft(chatID int64) (*model.LeaderboardConfig, error) {
	session := a.sessions.Get(chatID)
	if session.Draft == nil {
		return nil, fmt.Errorf("no draft configuration yet")
	}
	if errs := session.Draft.Validate(); errs.HasErrors() {
		return nil, fmt.Errorf("draft is not valid yet: %s", errs.Error())
	}
	return session.Draft, nil
}

// Complete помечает сессию завершенной
func (a *Assistant) Complete(chatID int64) {
	session := a.sessions.Get(chatID)
	session.Stage = StageDone
}

// Cancel сбрасывает сессию чата
func (a *Assistant) Cancel(chatID int64) {
	a.sessions.Reset(chatID)
}

// Status сообщает состояние цепочки провайдеров
func (a *Assistant) Status(ctx context.Context) string {
	names := strings.Join(a.chain.Providers(), " -> ")
	available, err := a.chain.FirstAvailable(ctx)
	if err != nil {
		return fmt.Sprintf("Providers: %s\nNone of them is reachable right now.", names)
	}
	return fmt.Sprintf("Providers: %s\nFirst available: %s", names, available)
}

// stripJSONBlock убирает JSON блок из ответа, оставляя пояснение
func stripJSONBlock(reply string) string {
	if start := strings.Index(reply, "```json"); start != -1 {
		if end := strings.Index(reply[start+len("```json"):], "```"); end != -1 {
			tail := reply[start+len("```json")+end+len("```"):]
			return strings.TrimSpace(reply[:start] + tail)
		}
	}
	return strings.TrimSpace(reply)
}

// appendStatus добавляет служебную строку к ответу пользователя
func appendStatus(response, status string) string {
	if status == "" {
		return response
	}
	if response == "" {
		return status
	}
	return response + "\n\n" + status
}
