package internal

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/sourcedsport/gpsmetrics/internal/config"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	server, err := NewServer(NewServerParams{
		Config:      &config.Config{Environment: "test"},
		VersionInfo: "test-version",
	})
	require.NoError(t, err)
	return server
}

func TestNewServer_BenchmarksFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "benchmarks.toml")
	benchToml := `
[acwr]
acute_window_days = 7
chronic_window_days = 28
green = {min = 0.8, max = 1.3}
yellow_low = {min = 0.6, max = 0.8}
yellow_high = {min = 1.3, max = 1.5}

[metrics.total_distance]
unit = "m"
match_avg = 8000.0
training_target_pct = 0.7
green = {min = 5000.0, max = 6500.0}
yellow = {min = 6500.0, max = 8000.0}
orange = {min = 8000.0, max = 9000.0}
red_high = 9000.0
red_low = 4000.0
`
	require.NoError(t, os.WriteFile(path, []byte(benchToml), 0o600))

	server, err := NewServer(NewServerParams{
		Config: &config.Config{BenchmarksPath: path},
	})
	require.NoError(t, err)
	assert.Equal(t, 8000.0, server.benchmarks.Metrics["total_distance"].MatchAvg)
}

func TestNewServer_InvalidBenchmarksFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "benchmarks.toml")
	require.NoError(t, os.WriteFile(path, []byte("not toml at all ["), 0o600))

	server, err := NewServer(NewServerParams{
		Config: &config.Config{BenchmarksPath: path},
	})
	require.Error(t, err)
	assert.Nil(t, server)
}

func TestRouter_Health(t *testing.T) {
	router := newTestServer(t).routerSetup()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok test-version", rr.Body.String())
}

func TestRouter_UnknownPath(t *testing.T) {
	router := newTestServer(t).routerSetup()

	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	req.Header.Set("Origin", "test")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouter_ReportRoute(t *testing.T) {
	router := newTestServer(t).routerSetup()

	csvUpload := "athlete,date,total_distance\nJansen,2024-03-04,7000\n"
	req := httptest.NewRequest(http.MethodPost, "/gps/report", strings.NewReader(csvUpload))
	req.Header.Set("Origin", "test")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"athletes":["Jansen"]`)
}

func TestRouter_CorsForbidden(t *testing.T) {
	router := newTestServer(t).routerSetup()

	req := httptest.NewRequest(http.MethodPost, "/gps/report", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}
