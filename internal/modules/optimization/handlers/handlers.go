// Package handlers provides HTTP handlers for the optimizer.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/aristath/allocator/internal/domain"
	"github.com/aristath/allocator/internal/modules/charts"
	"github.com/aristath/allocator/internal/modules/optimization"
	"github.com/aristath/allocator/internal/modules/runs"
	"github.com/aristath/allocator/internal/server/response"
	"github.com/aristath/allocator/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 4 << 20

// RunReader is the read side of the run history.
type RunReader interface {
	GetByID(id string) (runs.Run, error)
	List(limit int) ([]runs.Run, error)
	GetFrontier(runID string) ([]domain.FrontierPoint, error)
}

// Handler handles optimizer HTTP requests
type Handler struct {
	service *optimization.Service
	runs    RunReader
	log     zerolog.Logger
}

// NewHandler creates a new optimizer handler
func NewHandler(service *optimization.Service, runReader RunReader, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		runs:    runReader,
		log:     log.With().Str("handler", "optimizer").Logger(),
	}
}

// runRequest is the body of POST /api/optimizer/run and /api/optimizer/frontier.
// Pointers tell a missing field from an explicit zero.
type runRequest struct {
	Capital       *int           `json:"capital"`
	RiskTolerance *int           `json:"risk_tolerance"`
	Tickers       []string       `json:"tickers"`
	Assets        []domain.Asset `json:"assets"`
	Persist       bool           `json:"persist"`
}

// RunDetail is a stored run with its frontier points, if any.
type RunDetail struct {
	runs.Run
	Frontier []domain.FrontierPoint `json:"frontier,omitempty" msgpack:"frontier,omitempty"`
}

// HandleRun handles POST /api/optimizer/run
func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}
	if req.RiskTolerance == nil {
		response.BadRequest(w, r, "risk_tolerance is required", h.log)
		return
	}

	result, err := h.service.Optimize(r.Context(), optimization.Request{
		Assets:        req.Assets,
		Tickers:       req.Tickers,
		Capital:       *req.Capital,
		RiskTolerance: *req.RiskTolerance,
		Persist:       req.Persist,
	})
	if err != nil {
		response.Error(w, r, err, h.log)
		return
	}

	response.Write(w, r, http.StatusOK, result, h.log)
}

// HandleFrontier handles POST /api/optimizer/frontier
func (h *Handler) HandleFrontier(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	result, err := h.service.Frontier(r.Context(), optimization.Request{
		Assets:  req.Assets,
		Tickers: req.Tickers,
		Capital: *req.Capital,
		Persist: req.Persist,
	})
	if err != nil {
		response.Error(w, r, err, h.log)
		return
	}

	response.Write(w, r, http.StatusOK, result, h.log)
}

// HandleFrontierSVG handles GET /api/optimizer/frontier.svg?capital=N[&tickers=A,B]
func (h *Handler) HandleFrontierSVG(w http.ResponseWriter, r *http.Request) {
	capitalParam := r.URL.Query().Get("capital")
	if capitalParam == "" {
		response.BadRequest(w, r, "capital query parameter is required", h.log)
		return
	}
	capital, err := strconv.Atoi(capitalParam)
	if err != nil {
		response.BadRequest(w, r, fmt.Sprintf("invalid capital %q", capitalParam), h.log)
		return
	}

	result, err := h.service.Frontier(r.Context(), optimization.Request{
		Tickers: utils.ParseList(r.URL.Query().Get("tickers")),
		Capital: capital,
	})
	if err != nil {
		response.Error(w, r, err, h.log)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(charts.RenderFrontierSVG(result.Points, charts.Options{})); err != nil {
		h.log.Error().Err(err).Msg("Failed to write SVG")
	}
}

// HandleListRuns handles GET /api/optimizer/runs?limit=N
func (h *Handler) HandleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if param := r.URL.Query().Get("limit"); param != "" {
		parsed, err := strconv.Atoi(param)
		if err != nil || parsed < 0 {
			response.BadRequest(w, r, fmt.Sprintf("invalid limit %q", param), h.log)
			return
		}
		limit = parsed
	}

	list, err := h.runs.List(limit)
	if err != nil {
		response.Error(w, r, err, h.log)
		return
	}

	response.Write(w, r, http.StatusOK, list, h.log)
}

// HandleGetRun handles GET /api/optimizer/runs/{id}
func (h *Handler) HandleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	run, err := h.runs.GetByID(id)
	if err != nil {
		response.Error(w, r, err, h.log)
		return
	}

	detail := RunDetail{Run: run}
	if run.Kind == runs.KindFrontier {
		points, err := h.runs.GetFrontier(id)
		if err != nil {
			response.Error(w, r, err, h.log)
			return
		}
		detail.Frontier = points
	}

	response.Write(w, r, http.StatusOK, detail, h.log)
}

func (h *Handler) decodeRequest(w http.ResponseWriter, r *http.Request) (runRequest, bool) {
	var req runRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		response.BadRequest(w, r, fmt.Sprintf("invalid request body: %v", err), h.log)
		return req, false
	}
	if req.Capital == nil {
		response.BadRequest(w, r, "capital is required", h.log)
		return req, false
	}
	return req, true
}
