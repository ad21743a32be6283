// Package handlers provides HTTP handlers for the asset universe.
package handlers

import (
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/aristath/allocator/internal/domain"
	"github.com/aristath/allocator/internal/modules/universe"
	"github.com/aristath/allocator/internal/server/response"
	"github.com/aristath/allocator/internal/utils"
	"github.com/rs/zerolog"
)

const maxImportBytes = 16 << 20

// AssetStore is the asset repository as seen by the handlers.
type AssetStore interface {
	ReplaceAll(assets []domain.Asset) error
	GetAll() ([]domain.Asset, error)
	GetByTickers(tickers []string) ([]domain.Asset, error)
	DeleteAll() (int64, error)
}

// UniverseHandlers contains HTTP handlers for the asset universe API
type UniverseHandlers struct {
	assets AssetStore
	log    zerolog.Logger
}

// NewUniverseHandlers creates a new universe handlers instance
func NewUniverseHandlers(assets AssetStore, log zerolog.Logger) *UniverseHandlers {
	return &UniverseHandlers{
		assets: assets,
		log:    log.With().Str("handler", "universe").Logger(),
	}
}

// HandleGetAssets handles GET /api/assets[?tickers=A,B]
func (h *UniverseHandlers) HandleGetAssets(w http.ResponseWriter, r *http.Request) {
	var (
		assets []domain.Asset
		err    error
	)
	if tickers := utils.ParseList(r.URL.Query().Get("tickers")); tickers != nil {
		assets, err = h.assets.GetByTickers(tickers)
	} else {
		assets, err = h.assets.GetAll()
	}
	if err != nil {
		response.Error(w, r, err, h.log)
		return
	}

	response.Write(w, r, http.StatusOK, assets, h.log)
}

// HandleImportAssets handles POST /api/assets/import.
// The body is CSV unless Content-Type names YAML; it replaces the whole universe.
func (h *UniverseHandlers) HandleImportAssets(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxImportBytes)

	var (
		assets []domain.Asset
		err    error
	)
	if isYAML(r.Header.Get("Content-Type")) {
		assets, err = universe.LoadYAML(body)
	} else {
		assets, err = universe.LoadCSV(body)
	}
	if err != nil {
		response.Error(w, r, err, h.log)
		return
	}

	if err := h.assets.ReplaceAll(assets); err != nil {
		response.Error(w, r, fmt.Errorf("failed to store assets: %w", err), h.log)
		return
	}

	response.Write(w, r, http.StatusOK, map[string]interface{}{
		"imported": len(assets),
	}, h.log)
}

// HandleDeleteAssets handles DELETE /api/assets
func (h *UniverseHandlers) HandleDeleteAssets(w http.ResponseWriter, r *http.Request) {
	removed, err := h.assets.DeleteAll()
	if err != nil {
		response.Error(w, r, err, h.log)
		return
	}

	response.Write(w, r, http.StatusOK, map[string]interface{}{
		"deleted": removed,
	}, h.log)
}

func isYAML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasSuffix(mediaType, "yaml")
}
