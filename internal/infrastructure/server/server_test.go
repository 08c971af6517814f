package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/liview/internal/api/middleware"
	"github.com/GriffinCanCode/liview/internal/infrastructure/config"
	"github.com/GriffinCanCode/liview/internal/infrastructure/logging"
	"github.com/GriffinCanCode/liview/internal/infrastructure/monitoring"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.TempRoot = filepath.Join(t.TempDir(), "tmp")
	cfg.Storage.CacheRoot = filepath.Join(t.TempDir(), "cache")
	cfg.Logging.Development = true
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestServerRoutes(t *testing.T) {
	srv, err := New(testConfig(t), logging.NewNop(), monitoring.NewMetrics())
	require.NoError(t, err)
	defer srv.Shutdown(context.Background())

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "liview_http_requests_total")
}

func TestShutdownRemovesScopedDirs(t *testing.T) {
	cfg := testConfig(t)
	srv, err := New(cfg, nil, monitoring.NewMetrics())
	require.NoError(t, err)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	fw, err := zw.Create("x.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	archivePath := filepath.Join(t.TempDir(), "a.zip")
	require.NoError(t, os.WriteFile(archivePath, buf.Bytes(), 0o644))

	body, _ := json.Marshal(map[string]string{"path": archivePath})
	req := httptest.NewRequest(http.MethodPost, "/archives/extract", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Dir string `json:"dir"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.DirExists(t, resp.Dir)

	require.NoError(t, srv.Shutdown(context.Background()))
	assert.NoDirExists(t, resp.Dir)
}

func TestNewRejectsBadPolicy(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Policy = "forever"

	_, err := New(cfg, nil, nil)
	assert.Error(t, err)
}
