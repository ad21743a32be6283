package optimization

import (
	"github.com/aristath/allocator/internal/domain"
	"github.com/aristath/allocator/internal/modules/runs"
)

// AssetSource provides read-only access to the stored asset universe.
// Implemented by universe.AssetRepository.
type AssetSource interface {
	GetAll() ([]domain.Asset, error)
	GetByTickers(tickers []string) ([]domain.Asset, error)
}

// RunStore persists optimizer runs. Implemented by runs.RunRepository.
type RunStore interface {
	Create(run runs.Run) (runs.Run, error)
	SaveFrontier(runID string, points []domain.FrontierPoint) error
}
