package optimization

import (
	"context"
	"fmt"
	"strings"

	"github.com/aristath/allocator/internal/domain"
	"github.com/aristath/allocator/internal/modules/charts"
	"github.com/aristath/allocator/internal/modules/runs"
	"github.com/aristath/allocator/internal/utils"
	"github.com/rs/zerolog"
)

// Request selects the universe and budget of one optimizer call.
type Request struct {
	// Assets, when non-nil, is used instead of the stored universe.
	Assets []domain.Asset `json:"assets,omitempty"`
	// Tickers restricts the stored universe. Ignored when Assets is set.
	Tickers       []string `json:"tickers,omitempty"`
	Capital       int      `json:"capital"`
	RiskTolerance int      `json:"risk_tolerance"`
	Persist       bool     `json:"persist"`
}

// Result is the outcome of Service.Optimize.
type Result struct {
	RunID         string           `json:"run_id,omitempty" msgpack:"run_id,omitempty"`
	Selected      domain.Selection `json:"selected" msgpack:"selected"`
	Removed       domain.Selection `json:"removed" msgpack:"removed"`
	Capital       int              `json:"capital" msgpack:"capital"`
	RiskTolerance int              `json:"risk_tolerance" msgpack:"risk_tolerance"`
	AssetCount    int              `json:"asset_count" msgpack:"asset_count"`
	TotalCost     int              `json:"total_cost" msgpack:"total_cost"`
	TotalReturn   float64          `json:"total_return" msgpack:"total_return"`
	TotalRisk     int              `json:"total_risk" msgpack:"total_risk"`
}

// FrontierResult is the outcome of Service.Frontier.
type FrontierResult struct {
	RunID      string                 `json:"run_id,omitempty" msgpack:"run_id,omitempty"`
	Points     []domain.FrontierPoint `json:"points" msgpack:"points"`
	Efficient  []domain.FrontierPoint `json:"efficient" msgpack:"efficient"`
	Summary    charts.FrontierSummary `json:"summary" msgpack:"summary"`
	Capital    int                    `json:"capital" msgpack:"capital"`
	AssetCount int                    `json:"asset_count" msgpack:"asset_count"`
}

// Service binds the asset universe and run history to the optimizer.
type Service struct {
	assets    AssetSource
	runs      RunStore
	optimizer *Optimizer
	sweeper   *FrontierSweeper
	log       zerolog.Logger
}

// NewService creates a new optimization service
func NewService(assets AssetSource, runStore RunStore, optimizer *Optimizer, sweeper *FrontierSweeper, log zerolog.Logger) *Service {
	return &Service{
		assets:    assets,
		runs:      runStore,
		optimizer: optimizer,
		sweeper:   sweeper,
		log:       log.With().Str("service", "optimization").Logger(),
	}
}

// Optimize runs the knapsack and risk filter for one tolerance.
func (s *Service) Optimize(ctx context.Context, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	assets, err := s.resolveAssets(req)
	if err != nil {
		return Result{}, err
	}

	timer := utils.NewTimer("optimize", s.log)
	outcome, err := s.optimizer.RunDetailed(assets, req.Capital, req.RiskTolerance)
	if err != nil {
		return Result{}, err
	}

	selected := outcome.Selected
	if selected == nil {
		selected = domain.Selection{}
	}
	removed := outcome.Removed
	if removed == nil {
		removed = domain.Selection{}
	}

	result := Result{
		Selected:      selected,
		Removed:       removed,
		Capital:       req.Capital,
		RiskTolerance: req.RiskTolerance,
		AssetCount:    len(assets),
		TotalCost:     selected.TotalCost(),
		TotalReturn:   selected.TotalReturn(),
		TotalRisk:     selected.TotalRisk(),
	}
	timer.Stop(map[string]interface{}{"assets": len(assets), "selected": len(selected)})

	if req.Persist {
		tolerance := req.RiskTolerance
		run, err := s.runs.Create(runs.Run{
			Kind:          runs.KindOptimize,
			Capital:       req.Capital,
			RiskTolerance: &tolerance,
			AssetCount:    result.AssetCount,
			Selected:      selected,
			TotalCost:     result.TotalCost,
			TotalReturn:   result.TotalReturn,
			TotalRisk:     result.TotalRisk,
		})
		if err != nil {
			return Result{}, fmt.Errorf("failed to persist run: %w", err)
		}
		result.RunID = run.ID
	}

	return result, nil
}

// Frontier sweeps the tolerance ladder. RiskTolerance in req is ignored.
func (s *Service) Frontier(ctx context.Context, req Request) (FrontierResult, error) {
	assets, err := s.resolveAssets(req)
	if err != nil {
		return FrontierResult{}, err
	}

	timer := utils.NewTimer("frontier_sweep", s.log)
	points, err := s.sweeper.Sweep(ctx, assets, req.Capital)
	if err != nil {
		return FrontierResult{}, err
	}
	timer.Stop(map[string]interface{}{"assets": len(assets), "points": len(points)})

	result := FrontierResult{
		Points:     points,
		Efficient:  charts.EfficientPoints(points),
		Summary:    charts.Summarize(points),
		Capital:    req.Capital,
		AssetCount: len(assets),
	}

	if req.Persist {
		run, err := s.runs.Create(runs.Run{
			Kind:       runs.KindFrontier,
			Capital:    req.Capital,
			AssetCount: len(assets),
		})
		if err != nil {
			return FrontierResult{}, fmt.Errorf("failed to persist frontier run: %w", err)
		}
		if err := s.runs.SaveFrontier(run.ID, points); err != nil {
			return FrontierResult{}, fmt.Errorf("failed to persist frontier points: %w", err)
		}
		result.RunID = run.ID
	}

	return result, nil
}

// resolveAssets picks the universe for req: inline assets, a ticker subset of
// the stored universe, or the whole stored universe.
func (s *Service) resolveAssets(req Request) ([]domain.Asset, error) {
	if req.Assets != nil {
		if err := domain.ValidateAssets(req.Assets); err != nil {
			return nil, err
		}
		return req.Assets, nil
	}

	if len(req.Tickers) == 0 {
		assets, err := s.assets.GetAll()
		if err != nil {
			return nil, fmt.Errorf("failed to load assets: %w", err)
		}
		return assets, nil
	}

	tickers := utils.Dedupe(req.Tickers)
	assets, err := s.assets.GetByTickers(tickers)
	if err != nil {
		return nil, fmt.Errorf("failed to load assets: %w", err)
	}

	found := make(map[string]struct{}, len(assets))
	for _, a := range assets {
		found[a.Ticker] = struct{}{}
	}
	var missing []string
	for _, t := range tickers {
		if _, ok := found[strings.TrimSpace(t)]; !ok {
			missing = append(missing, t)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: unknown tickers %s", domain.ErrNotFound, strings.Join(missing, ","))
	}

	return assets, nil
}
