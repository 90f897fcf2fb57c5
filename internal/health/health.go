// Package health содержит health check сервер.
package health

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"qbench/internal/generator/datastore"

	"go.uber.org/zap"
)

// Server представляет health check сервер
type Server struct {
	server  *http.Server
	siteDir string
	store   *datastore.Store
	logger  *zap.Logger
}

// NewServer создает новый health check сервер
func NewServer(port string, siteDir string, store *datastore.Store, logger *zap.Logger) *Server {
	mux := http.NewServeMux()

	server := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	healthServer := &Server{
		server:  server,
		siteDir: siteDir,
		store:   store,
		logger:  logger,
	}

	// Регистрируем маршруты
	mux.HandleFunc("/health", healthServer.healthHandler)
	mux.HandleFunc("/ready", healthServer.readyHandler)
	mux.HandleFunc("/live", healthServer.liveHandler)

	return healthServer
}

// Start запускает health check сервер
func (s *Server) Start() error {
	s.logger.Info("Starting health check server", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

// Stop останавливает health check сервер
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.logger.Info("Stopping health check server")
	return s.server.Shutdown(ctx)
}

// healthHandler обрабатывает запросы /health
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK

	if err := s.checkSite(); err != nil {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
		s.logger.Error("Health check failed", zap.Error(err))
	}

	writeStatus(w, code, status)
}

// readyHandler обрабатывает запросы /ready
func (s *Server) readyHandler(w http.ResponseWriter, r *http.Request) {
	status := "ready"
	code := http.StatusOK

	if err := s.checkReadiness(); err != nil {
		status = "not ready"
		code = http.StatusServiceUnavailable
		s.logger.Error("Readiness check failed", zap.Error(err))
	}

	writeStatus(w, code, status)
}

// liveHandler обрабатывает запросы /live
func (s *Server) liveHandler(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, http.StatusOK, "alive")
}

// checkSite проверяет, что каталог сайта доступен
func (s *Server) checkSite() error {
	info, err := os.Stat(s.siteDir)
	if err != nil {
		return fmt.Errorf("site directory check failed: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("site path %s is not a directory", s.siteDir)
	}
	return nil
}

// checkReadiness проверяет готовность к работе
func (s *Server) checkReadiness() error {
	if err := s.checkSite(); err != nil {
		return err
	}

	// Хранилище должно либо отсутствовать, либо быть валидным JSON
	if _, err := s.store.Load(); err != nil {
		return fmt.Errorf("datastore is not readable: %w", err)
	}
	return nil
}

// writeStatus пишет JSON ответ со статусом
func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	fmt.Fprintf(w, `{"status":"%s","timestamp":"%s"}`, status, time.Now().Format(time.RFC3339))
}
