package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/aristath/allocator/internal/modules/optimization"
	"github.com/rs/zerolog"
)

// FrontierService is the part of the optimization service the snapshot job needs.
type FrontierService interface {
	Frontier(ctx context.Context, req optimization.Request) (optimization.FrontierResult, error)
}

// AssetCounter reports the size of the stored universe.
type AssetCounter interface {
	Count() (int, error)
}

// FrontierSnapshotJob sweeps the stored universe at a fixed capital and
// persists the frontier as a run.
type FrontierSnapshotJob struct {
	service FrontierService
	assets  AssetCounter
	capital int
	timeout time.Duration
	log     zerolog.Logger
}

// NewFrontierSnapshotJob creates a new FrontierSnapshotJob. A zero capital
// turns every run into a no-op.
func NewFrontierSnapshotJob(service FrontierService, assets AssetCounter, capital int, log zerolog.Logger) *FrontierSnapshotJob {
	return &FrontierSnapshotJob{
		service: service,
		assets:  assets,
		capital: capital,
		timeout: 10 * time.Minute,
		log:     log.With().Str("job", "frontier_snapshot").Logger(),
	}
}

// Name returns the job name
func (j *FrontierSnapshotJob) Name() string {
	return "frontier_snapshot"
}

// Run executes the frontier snapshot job
func (j *FrontierSnapshotJob) Run() error {
	if j.capital <= 0 {
		j.log.Debug().Msg("Snapshot capital not configured, skipping")
		return nil
	}

	count, err := j.assets.Count()
	if err != nil {
		return fmt.Errorf("failed to count assets: %w", err)
	}
	if count == 0 {
		j.log.Debug().Msg("Asset universe is empty, skipping")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	result, err := j.service.Frontier(ctx, optimization.Request{Capital: j.capital, Persist: true})
	if err != nil {
		return fmt.Errorf("frontier snapshot failed: %w", err)
	}

	j.log.Info().
		Str("run_id", result.RunID).
		Int("capital", j.capital).
		Int("assets", count).
		Int("efficient_points", len(result.Efficient)).
		Msg("Frontier snapshot stored")

	return nil
}
