package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aristath/allocator/internal/domain"
	"github.com/aristath/allocator/internal/modules/optimization"
	"github.com/aristath/allocator/internal/modules/runs"
	"github.com/aristath/allocator/internal/modules/universe"
	testutil "github.com/aristath/allocator/internal/testing"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func setupRouter(t *testing.T) *chi.Mux {
	t.Helper()
	db, cleanup := testutil.NewTestDB(t)
	t.Cleanup(cleanup)

	log := zerolog.Nop()
	assetRepo := universe.NewAssetRepository(db.Conn(), log)
	require.NoError(t, assetRepo.ReplaceAll(testutil.NewAssetFixtures()))
	runRepo := runs.NewRunRepository(db.Conn(), log)

	optimizer := optimization.NewOptimizer(optimization.NewKnapsackSolver(1000, log), log)
	sweeper := optimization.NewFrontierSweeper(optimizer, 2, log)
	service := optimization.NewService(assetRepo, runRepo, optimizer, sweeper, log)

	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		NewHandler(service, runRepo, log).RegisterRoutes(r)
	})
	return router
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type resultEnvelope struct {
	Data optimization.Result `json:"data"`
}

func TestHandleRun(t *testing.T) {
	router := setupRouter(t)

	rec := do(t, router, http.MethodPost, "/api/optimizer/run", `{"capital":150,"risk_tolerance":30}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body resultEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"D"}, body.Data.Selected.Tickers())
	assert.Equal(t, []string{"B"}, body.Data.Removed.Tickers())
	assert.Equal(t, 80, body.Data.TotalCost)
	assert.Empty(t, body.Data.RunID)
}

func TestHandleRun_Validation(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"malformed json", `{"capital":`, http.StatusBadRequest},
		{"unknown field", `{"capital":1,"risk_tolerance":1,"budget":3}`, http.StatusBadRequest},
		{"missing capital", `{"risk_tolerance":30}`, http.StatusBadRequest},
		{"missing tolerance", `{"capital":150}`, http.StatusBadRequest},
		{"negative capital", `{"capital":-1,"risk_tolerance":30}`, http.StatusBadRequest},
		{"table too large", `{"capital":500,"risk_tolerance":30}`, http.StatusBadRequest},
		{"unknown ticker", `{"capital":150,"risk_tolerance":30,"tickers":["NOPE"]}`, http.StatusNotFound},
		{"invalid inline asset", `{"capital":150,"risk_tolerance":30,"assets":[{"ticker":"","price":1}]}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/api/optimizer/run", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestHandleRun_PersistAndFetch(t *testing.T) {
	router := setupRouter(t)

	rec := do(t, router, http.MethodPost, "/api/optimizer/run", `{"capital":150,"risk_tolerance":60,"persist":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var body resultEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data.RunID)

	rec = do(t, router, http.MethodGet, "/api/optimizer/runs/"+body.Data.RunID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var detail struct {
		Data RunDetail `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, body.Data.RunID, detail.Data.ID)
	assert.Equal(t, []string{"B", "D"}, detail.Data.Selected.Tickers())
	assert.Empty(t, detail.Data.Frontier)

	rec = do(t, router, http.MethodGet, "/api/optimizer/runs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Data []runs.Run `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)

	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/api/optimizer/runs/missing", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, "/api/optimizer/runs?limit=abc", "").Code)
}

func TestHandleFrontier(t *testing.T) {
	router := setupRouter(t)

	rec := do(t, router, http.MethodPost, "/api/optimizer/frontier", `{"capital":150,"persist":true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Data optimization.FrontierResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data.Points, 21)
	assert.Equal(t, domain.FrontierPoint{Tolerance: 100, Risk: 55, Return: 60}, body.Data.Points[20])
	assert.Len(t, body.Data.Efficient, 3)

	rec = do(t, router, http.MethodGet, "/api/optimizer/runs/"+body.Data.RunID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var detail struct {
		Data RunDetail `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, body.Data.Points, detail.Data.Frontier)

	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodPost, "/api/optimizer/frontier", `{}`).Code)
}

func TestHandleFrontier_Msgpack(t *testing.T) {
	router := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/optimizer/frontier", strings.NewReader(`{"capital":150}`))
	req.Header.Set("Accept", "application/msgpack")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/msgpack", rec.Header().Get("Content-Type"))

	var body struct {
		Data optimization.FrontierResult `msgpack:"data"`
	}
	require.NoError(t, msgpack.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data.Points, 21)
}

func TestHandleFrontierSVG(t *testing.T) {
	router := setupRouter(t)

	rec := do(t, router, http.MethodGet, "/api/optimizer/frontier.svg?capital=150&tickers=A,D", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "<svg"))
	assert.Equal(t, 21, strings.Count(rec.Body.String(), "<circle"))

	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, "/api/optimizer/frontier.svg", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, "/api/optimizer/frontier.svg?capital=x", "").Code)
}
