package optimization

import (
	"github.com/aristath/allocator/internal/domain"
	"github.com/rs/zerolog"
)

// Outcome is a single optimizer run with the intermediate knapsack result kept
// for reporting.
type Outcome struct {
	Unconstrained domain.Selection `json:"unconstrained"` // knapsack result before the risk trim
	Selected      domain.Selection `json:"selected"`
	Removed       domain.Selection `json:"removed"` // in removal order
}

// Optimizer composes the knapsack solver with the risk filter.
// It holds no per-run state; every call builds its own table.
type Optimizer struct {
	solver *KnapsackSolver
	log    zerolog.Logger
}

// NewOptimizer creates a new optimizer.
func NewOptimizer(solver *KnapsackSolver, log zerolog.Logger) *Optimizer {
	return &Optimizer{
		solver: solver,
		log:    log.With().Str("component", "optimizer").Logger(),
	}
}

// Solver returns the underlying knapsack solver.
func (o *Optimizer) Solver() *KnapsackSolver {
	return o.solver
}

// Run solves the knapsack for capital and trims the result to riskTolerance.
func (o *Optimizer) Run(assets []domain.Asset, capital, riskTolerance int) (domain.Selection, error) {
	selected, err := o.solver.Solve(assets, capital)
	if err != nil {
		return nil, err
	}
	return FilterByRisk(selected, riskTolerance), nil
}

// RunDetailed is Run plus the pre-filter selection and the removed assets.
func (o *Optimizer) RunDetailed(assets []domain.Asset, capital, riskTolerance int) (Outcome, error) {
	selected, err := o.solver.Solve(assets, capital)
	if err != nil {
		return Outcome{}, err
	}

	unconstrained := selected.Clone()
	kept, removed := FilterByRiskWithRemoved(selected, riskTolerance)

	if len(removed) > 0 {
		o.log.Debug().
			Int("risk_tolerance", riskTolerance).
			Int("unconstrained_risk", unconstrained.TotalRisk()).
			Strs("removed", removed.Tickers()).
			Msg("Trimmed selection to risk tolerance")
	}

	return Outcome{
		Unconstrained: unconstrained,
		Selected:      kept,
		Removed:       removed,
	}, nil
}
