package optimization

import (
	"context"

	"github.com/aristath/allocator/internal/domain"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Risk tolerance ladder used by the frontier sweep: 0, 5, ..., 100.
const (
	MinTolerance  = 0
	MaxTolerance  = 100
	ToleranceStep = 5
)

// ToleranceLadder returns the tolerances swept by FrontierSweeper in ascending order.
func ToleranceLadder() []int {
	ladder := make([]int, 0, (MaxTolerance-MinTolerance)/ToleranceStep+1)
	for tol := MinTolerance; tol <= MaxTolerance; tol += ToleranceStep {
		ladder = append(ladder, tol)
	}
	return ladder
}

// FrontierSweeper runs the optimizer once per ladder tolerance and collects
// the (risk, return) of each constrained selection.
type FrontierSweeper struct {
	optimizer *Optimizer
	workers   int
	log       zerolog.Logger
}

// NewFrontierSweeper creates a sweeper running at most workers steps at once.
func NewFrontierSweeper(optimizer *Optimizer, workers int, log zerolog.Logger) *FrontierSweeper {
	if workers < 1 {
		workers = 1
	}
	return &FrontierSweeper{
		optimizer: optimizer,
		workers:   workers,
		log:       log.With().Str("component", "frontier_sweeper").Logger(),
	}
}

// Sweep returns one point per ladder tolerance, ascending. Points with an empty
// selection are kept as (0, 0); identical neighbours are not merged.
//
// Input is validated once before any step runs. Steps share nothing, so they
// run concurrently and each writes only its own slot.
func (fs *FrontierSweeper) Sweep(ctx context.Context, assets []domain.Asset, capital int) ([]domain.FrontierPoint, error) {
	if err := fs.optimizer.Solver().Validate(assets, capital); err != nil {
		return nil, err
	}

	ladder := ToleranceLadder()
	points := make([]domain.FrontierPoint, len(ladder))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fs.workers)

	for i, tol := range ladder {
		i, tol := i, tol
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			selected, err := fs.optimizer.Run(assets, capital, tol)
			if err != nil {
				return err
			}
			points[i] = domain.FrontierPoint{
				Tolerance: tol,
				Risk:      selected.TotalRisk(),
				Return:    selected.TotalReturn(),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	fs.log.Debug().
		Int("assets", len(assets)).
		Int("capital", capital).
		Int("points", len(points)).
		Msg("Frontier sweep completed")

	return points, nil
}
