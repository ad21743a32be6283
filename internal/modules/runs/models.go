// Package runs persists optimization runs and frontier snapshots.
package runs

import (
	"time"

	"github.com/aristath/allocator/internal/domain"
)

// Kind tells what produced a run.
type Kind string

const (
	// KindOptimize is a single capital + tolerance optimization.
	KindOptimize Kind = "optimize"
	// KindFrontier is a full tolerance sweep.
	KindFrontier Kind = "frontier"
)

// Run is one persisted optimizer invocation.
type Run struct {
	CreatedAt     time.Time        `json:"created_at" msgpack:"created_at"`
	RiskTolerance *int             `json:"risk_tolerance,omitempty" msgpack:"risk_tolerance,omitempty"` // nil for frontier runs
	ID            string           `json:"id" msgpack:"id"`
	Kind          Kind             `json:"kind" msgpack:"kind"`
	Selected      domain.Selection `json:"selected" msgpack:"selected"`
	Capital       int              `json:"capital" msgpack:"capital"`
	AssetCount    int              `json:"asset_count" msgpack:"asset_count"`
	TotalCost     int              `json:"total_cost" msgpack:"total_cost"`
	TotalReturn   float64          `json:"total_return" msgpack:"total_return"`
	TotalRisk     int              `json:"total_risk" msgpack:"total_risk"`
}
