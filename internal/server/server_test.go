package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aristath/allocator/internal/config"
	"github.com/aristath/allocator/internal/di"
	testutil "github.com/aristath/allocator/internal/testing"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{
		DataDir:       t.TempDir(),
		Port:          config.DefaultPort,
		MaxTableCells: config.DefaultMaxTableCells,
		SweepWorkers:  2,
	}

	container, _, err := di.Wire(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Close() })

	return New(Config{Log: zerolog.Nop(), Container: container, Port: cfg.Port, DevMode: true})
}

func serve(s *Server, method, path, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := serve(s, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Data["status"])
	assert.Equal(t, 0.0, body.Data["assets"])
}

func TestRoutesRegistered(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/assets"},
		{http.MethodDelete, "/api/assets"},
		{http.MethodGet, "/api/optimizer/runs"},
		{http.MethodGet, "/api/optimizer/frontier.svg?capital=10"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := serve(s, tt.method, tt.path, "", "")
			assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		})
	}

	assert.Equal(t, http.StatusNotFound, serve(s, http.MethodGet, "/api/nope", "", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, serve(s, http.MethodPut, "/api/assets", "", "").Code)
}

func TestImportThenOptimize(t *testing.T) {
	s := newTestServer(t)

	rec := serve(s, http.MethodPost, "/api/assets/import", "text/csv", testutil.AssetFixturesCSV)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(s, http.MethodPost, "/api/optimizer/run", "application/json", `{"capital":150,"risk_tolerance":60}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Data struct {
			TotalCost   int     `json:"total_cost"`
			TotalReturn float64 `json:"total_return"`
			TotalRisk   int     `json:"total_risk"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 140, body.Data.TotalCost)
	assert.InDelta(t, 60.0, body.Data.TotalReturn, 1e-9)
	assert.Equal(t, 55, body.Data.TotalRisk)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/optimizer/run", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
