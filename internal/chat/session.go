// Package chat содержит диалоговый сбор конфигурации лидерборда.
//
// Сессия проходит стадии: welcome -> collecting -> review -> done.
package chat

import (
	"sync"
	"time"

	"qbench/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Stage представляет стадию диалога
type Stage string

// Стадии сессии
const (
	StageWelcome    Stage = "welcome"
	StageCollecting Stage = "collecting"
	StageReview     Stage = "review"
	StageDone       Stage = "done"
)

// Максимум сообщений истории, передаваемых модели
const historyLimit = 20

// Session представляет сессию одного чата
type Session struct {
	ID        uuid.UUID
	ChatID    int64
	Stage     Stage
	Draft     *model.LeaderboardConfig
	History   []Message
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Message представляет сообщение истории сессии
type Message struct {
	Role    string
	Content string
}

// Manager представляет хранилище сессий в памяти
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	ttl      time.Duration
	logger   *zap.Logger
}

// NewManager создает менеджер сессий
func NewManager(ttl time.Duration, logger *zap.Logger) *Manager {
	return &Manager{
		sessions: make(map[int64]*Session),
		ttl:      ttl,
		logger:   logger,
	}
}

// Get возвращает сессию чата, создавая новую при отсутствии или истечении
func (m *Manager) Get(chatID int64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[chatID]
	if ok && (m.ttl == 0 || time.Since(session.UpdatedAt) < m.ttl) {
		return session
	}

	if ok {
		m.logger.Info("Session expired, starting a new one", zap.Int64("chat_id", chatID))
	}

	session = &Session{
		ID:        uuid.New(),
		ChatID:    chatID,
		Stage:     StageWelcome,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	m.sessions[chatID] = session
	return session
}

// Reset удаляет сессию чата
func (m *Manager) Reset(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, chatID)
}

// Touch обновляет время последней активности сессии
func (m *Manager) Touch(session *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session.UpdatedAt = time.Now()
}

// AppendHistory добавляет сообщение в историю, ограничивая ее длину
func (s *Session) AppendHistory(role, content string) {
	s.History = append(s.History, Message{Role: role, Content: content})
	if len(s.History) > historyLimit {
		s.History = s.History[len(s.History)-historyLimit:]
	}
}
