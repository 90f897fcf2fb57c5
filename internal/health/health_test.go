package health

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"qbench/internal/generator/datastore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, siteDir string) *Server {
	t.Helper()
	return NewServer("0", siteDir, datastore.NewStore(siteDir, zap.NewNop()), zap.NewNop())
}

func TestHealthHandler(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		server := newTestServer(t, t.TempDir())

		recorder := httptest.NewRecorder()
		server.healthHandler(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"status":"healthy"`)
	})

	t.Run("missing site dir", func(t *testing.T) {
		server := newTestServer(t, filepath.Join(t.TempDir(), "nope"))

		recorder := httptest.NewRecorder()
		server.healthHandler(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"status":"unhealthy"`)
	})
}

func TestReadyHandler(t *testing.T) {
	t.Run("ready without datastore file", func(t *testing.T) {
		server := newTestServer(t, t.TempDir())

		recorder := httptest.NewRecorder()
		server.readyHandler(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("corrupt datastore", func(t *testing.T) {
		siteDir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(siteDir, "data"), 0755))
		require.NoError(t, os.WriteFile(
			filepath.Join(siteDir, "data", datastore.FileName), []byte("{broken"), 0644))

		server := newTestServer(t, siteDir)
		recorder := httptest.NewRecorder()
		server.readyHandler(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"status":"not ready"`)
	})
}

func TestLiveHandler(t *testing.T) {
	server := newTestServer(t, t.TempDir())

	recorder := httptest.NewRecorder()
	server.liveHandler(recorder, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"status":"alive"`)
}
