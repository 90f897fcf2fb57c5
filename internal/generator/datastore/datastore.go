// Package datastore содержит работу с общим JSON хранилищем лидербордов.
package datastore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"qbench/internal/model"

	"go.uber.org/zap"
)

// FileName is the datastore file name under <site>/data/
const FileName = "leaderboard-data.json"

// Record представляет запись лидерборда в хранилище
type Record struct {
	Metadata      Metadata             `json:"metadata"`
	Stats         map[string]any       `json:"stats"`
	Columns       []model.Column       `json:"columns"`
	Entries       []map[string]any     `json:"entries"`
	Visualization *model.Visualization `json:"visualization"`
	Content       *model.Content       `json:"content"`
}

// Metadata представляет метаданные записи
type Metadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Created     string `json:"created"`
	LastUpdated string `json:"lastUpdated"`
}

// Store представляет хранилище лидербордов
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore создает хранилище для каталога сайта
func NewStore(siteDir string, logger *zap.Logger) *Store {
	return &Store{
		path:   filepath.Join(siteDir, "data", FileName),
		logger: logger,
	}
}

// Path возвращает путь к файлу хранилища
func (s *Store) Path() string {
	return s.path
}

// Load читает документ хранилища целиком. Отсутствующий файл дает пустой
// документ.
func (s *Store) Load() (map[string]Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("Datastore file not found, starting from empty document",
				zap.String("path", s.path))
			return map[string]Record{}, nil
		}
		return nil, fmt.Errorf("failed to read datastore: %w", err)
	}

	document := map[string]Record{}
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("failed to parse datastore: %w", err)
	}
	return document, nil
}

// Has проверяет, есть ли запись с данным идентификатором
func (s *Store) Has(id string) (bool, error) {
	document, err := s.Load()
	if err != nil {
		return false, err
	}
	_, ok := document[id]
	return ok, nil
}

// List возвращает идентификаторы и заголовки всех лидербордов хранилища
// в стабильном порядке.
func (s *Store) List() ([]Summary, error) {
	document, err := s.Load()
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(document))
	for id, record := range document {
		summaries = append(summaries, Summary{ID: id, Title: record.Metadata.Title})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	return summaries, nil
}

// Summary представляет краткую сводку записи хранилища
type Summary struct {
	ID    string
	Title string
}

// Merge записывает конфигурацию лидерборда в хранилище. Документ читается
// и перезаписывается целиком; повторный Merge с тем же id полностью
// заменяет запись. Даты created и lastUpdated проставляются текущим днем
// при каждом вызове.
func (s *Store) Merge(cfg *model.LeaderboardConfig) error {
	document, err := s.Load()
	if err != nil {
		return err
	}

	today := time.Now().Format("2006-01-02")

	stats := cfg.InitialStats
	if stats == nil {
		stats = map[string]any{}
	}
	entries := cfg.InitialEntries
	if entries == nil {
		entries = []map[string]any{}
	}

	document[cfg.ID] = Record{
		Metadata: Metadata{
			Title:       cfg.Title,
			Description: cfg.ShortDescription,
			Created:     today,
			LastUpdated: today,
		},
		Stats:         stats,
		Columns:       cfg.Columns,
		Entries:       entries,
		Visualization: cfg.Visualization,
		Content:       cfg.Content,
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create datastore directory: %w", err)
	}

	data, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal datastore: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write datastore: %w", err)
	}

	s.logger.Info("Datastore updated",
		zap.String("id", cfg.ID),
		zap.String("path", s.path),
		zap.Int("leaderboards", len(document)))
	return nil
}
