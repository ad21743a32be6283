// Package optimization provides the capital-constrained portfolio optimizer:
// a 0/1 knapsack solver, a greedy risk filter and the risk/return frontier sweep.
package optimization

import (
	"fmt"
	"math"

	"github.com/aristath/allocator/internal/domain"
	"github.com/bits-and-blooms/bitset"
	"github.com/rs/zerolog"
)

// DefaultMaxTableCells bounds n*(capital+1) for a single solve.
const DefaultMaxTableCells int64 = 200_000_000

// KnapsackSolver picks the subset of assets with the highest total expected
// return whose total price fits the capital budget.
//
// Values are kept in two rolling rows of capital+1 floats. The include/exclude
// decisions are kept in a bitset of n*(capital+1) bits and replayed backwards
// to rebuild the selection.
type KnapsackSolver struct {
	maxCells int64 // <= 0 disables the ceiling
	log      zerolog.Logger
}

// NewKnapsackSolver creates a solver that rejects tables larger than maxCells.
func NewKnapsackSolver(maxCells int64, log zerolog.Logger) *KnapsackSolver {
	return &KnapsackSolver{
		maxCells: maxCells,
		log:      log.With().Str("component", "knapsack_solver").Logger(),
	}
}

// Validate checks that assets and capital can be turned into a DP table.
// It is called by Solve; callers sweeping many tolerances use it to fail once up front.
func (s *KnapsackSolver) Validate(assets []domain.Asset, capital int) error {
	if capital < 0 {
		return fmt.Errorf("%w: negative capital %d", domain.ErrInvalidInput, capital)
	}
	for i, a := range assets {
		if a.Price < 0 {
			return fmt.Errorf("%w: asset #%d (%s) has negative price %d", domain.ErrInvalidInput, i+1, a.Ticker, a.Price)
		}
		if math.IsNaN(a.ExpectedReturn) || math.IsInf(a.ExpectedReturn, 0) {
			return fmt.Errorf("%w: asset #%d (%s) has non-finite expected return", domain.ErrInvalidInput, i+1, a.Ticker)
		}
	}

	n := int64(len(assets))
	width := int64(capital) + 1
	if s.maxCells > 0 && n > 0 && width > s.maxCells/n {
		return fmt.Errorf("%w: %d assets x %d budget columns exceeds %d cells", domain.ErrTableTooLarge, n, width, s.maxCells)
	}
	return nil
}

// Solve returns the optimal selection for the capital budget in input order.
//
// Recurrence for item i with price p and return r:
//
//	dp[i][w] = dp[i-1][w-p] + r   if p <= w and that is strictly greater than dp[i-1][w]
//	dp[i][w] = dp[i-1][w]         otherwise
//
// Ties favor exclusion, so an item is only kept when it strictly improves the return.
func (s *KnapsackSolver) Solve(assets []domain.Asset, capital int) (domain.Selection, error) {
	if err := s.Validate(assets, capital); err != nil {
		return nil, err
	}

	n := len(assets)
	if n == 0 || capital == 0 {
		return domain.Selection{}, nil
	}

	width := capital + 1
	prev := make([]float64, width)
	cur := make([]float64, width)
	keep := bitset.New(uint(n) * uint(width))

	for i := 0; i < n; i++ {
		price := assets[i].Price
		ret := assets[i].ExpectedReturn
		row := uint(i) * uint(width)

		for w := 0; w < width; w++ {
			if price <= w {
				if with := prev[w-price] + ret; with > prev[w] {
					cur[w] = with
					keep.Set(row + uint(w))
					continue
				}
			}
			cur[w] = prev[w]
		}
		prev, cur = cur, prev
	}

	selected := make(domain.Selection, 0)
	w := capital
	for i := n - 1; i >= 0; i-- {
		if keep.Test(uint(i)*uint(width) + uint(w)) {
			selected = append(selected, assets[i])
			w -= assets[i].Price
		}
	}
	for l, r := 0, len(selected)-1; l < r; l, r = l+1, r-1 {
		selected[l], selected[r] = selected[r], selected[l]
	}

	s.log.Debug().
		Int("assets", n).
		Int("capital", capital).
		Int("selected", len(selected)).
		Float64("best_return", prev[capital]).
		Msg("Knapsack solved")

	return selected, nil
}
