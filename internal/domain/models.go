// Package domain provides core domain models and types.
package domain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// MaxRiskScore is the upper bound of an asset risk score.
const MaxRiskScore = 100

// Asset is one investable instrument considered by the optimizer.
// Assets are read once per run and never modified afterwards.
type Asset struct {
	Ticker         string  `json:"ticker" msgpack:"ticker" yaml:"ticker"`
	ExpectedReturn float64 `json:"expected_return" msgpack:"expected_return" yaml:"expected_return"` // percent
	RiskScore      int     `json:"risk_score" msgpack:"risk_score" yaml:"risk_score"`                // 0-100
	Price          int     `json:"price" msgpack:"price" yaml:"price"`
}

// Validate checks the full record contract expected from an asset source.
func (a Asset) Validate() error {
	if a.Ticker == "" {
		return fmt.Errorf("%w: empty ticker", ErrInvalidInput)
	}
	if math.IsNaN(a.ExpectedReturn) || math.IsInf(a.ExpectedReturn, 0) {
		return fmt.Errorf("%w: asset %s has non-finite expected return", ErrInvalidInput, a.Ticker)
	}
	if a.ExpectedReturn < 0 {
		return fmt.Errorf("%w: asset %s has negative expected return %.4f", ErrInvalidInput, a.Ticker, a.ExpectedReturn)
	}
	if a.RiskScore < 0 || a.RiskScore > MaxRiskScore {
		return fmt.Errorf("%w: asset %s risk score %d outside [0,%d]", ErrInvalidInput, a.Ticker, a.RiskScore, MaxRiskScore)
	}
	if a.Price < 0 {
		return fmt.Errorf("%w: asset %s has negative price %d", ErrInvalidInput, a.Ticker, a.Price)
	}
	return nil
}

// ValidateAssets runs Validate on every asset and returns the first failure.
func ValidateAssets(assets []Asset) error {
	for i, a := range assets {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("asset #%d: %w", i+1, err)
		}
	}
	return nil
}

// Selection is an ordered subset of assets. Order is always input order.
type Selection []Asset

// TotalCost returns the sum of prices.
func (s Selection) TotalCost() int {
	total := 0
	for _, a := range s {
		total += a.Price
	}
	return total
}

// TotalReturn returns the sum of expected returns.
func (s Selection) TotalReturn() float64 {
	if len(s) == 0 {
		return 0
	}
	returns := make([]float64, len(s))
	for i, a := range s {
		returns[i] = a.ExpectedReturn
	}
	return floats.Sum(returns)
}

// TotalRisk returns the sum of risk scores.
func (s Selection) TotalRisk() int {
	total := 0
	for _, a := range s {
		total += a.RiskScore
	}
	return total
}

// Tickers returns the tickers in selection order.
func (s Selection) Tickers() []string {
	tickers := make([]string, len(s))
	for i, a := range s {
		tickers[i] = a.Ticker
	}
	return tickers
}

// Clone returns a copy that does not share the backing array.
func (s Selection) Clone() Selection {
	if s == nil {
		return nil
	}
	out := make(Selection, len(s))
	copy(out, s)
	return out
}

// FrontierPoint summarizes one constrained selection at one risk tolerance.
type FrontierPoint struct {
	Tolerance int     `json:"tolerance" msgpack:"tolerance"`
	Risk      int     `json:"risk" msgpack:"risk"`
	Return    float64 `json:"return" msgpack:"return"`
}
