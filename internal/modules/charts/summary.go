package charts

import (
	"math"

	"github.com/aristath/allocator/internal/domain"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FrontierSummary holds descriptive statistics of a frontier.
type FrontierSummary struct {
	Points         int     `json:"points" msgpack:"points"`
	DistinctPoints int     `json:"distinct_points" msgpack:"distinct_points"`
	Efficient      int     `json:"efficient" msgpack:"efficient"`
	MinRisk        float64 `json:"min_risk" msgpack:"min_risk"`
	MaxRisk        float64 `json:"max_risk" msgpack:"max_risk"`
	MinReturn      float64 `json:"min_return" msgpack:"min_return"`
	MaxReturn      float64 `json:"max_return" msgpack:"max_return"`
	MeanReturn     float64 `json:"mean_return" msgpack:"mean_return"`
	// Correlation is the Pearson correlation of risk and return.
	// 0 when fewer than two points or either series is constant.
	Correlation float64 `json:"correlation" msgpack:"correlation"`
}

// Summarize computes a FrontierSummary. An empty frontier yields the zero value.
func Summarize(points []domain.FrontierPoint) FrontierSummary {
	if len(points) == 0 {
		return FrontierSummary{}
	}

	risks := make([]float64, len(points))
	returns := make([]float64, len(points))
	distinct := make(map[[2]float64]struct{}, len(points))
	for i, p := range points {
		risks[i] = float64(p.Risk)
		returns[i] = p.Return
		distinct[[2]float64{risks[i], returns[i]}] = struct{}{}
	}

	summary := FrontierSummary{
		Points:         len(points),
		DistinctPoints: len(distinct),
		Efficient:      len(EfficientPoints(points)),
		MinRisk:        floats.Min(risks),
		MaxRisk:        floats.Max(risks),
		MinReturn:      floats.Min(returns),
		MaxReturn:      floats.Max(returns),
		MeanReturn:     stat.Mean(returns, nil),
	}

	if len(points) > 1 && summary.MinRisk != summary.MaxRisk && summary.MinReturn != summary.MaxReturn {
		if c := stat.Correlation(risks, returns, nil); !math.IsNaN(c) {
			summary.Correlation = c
		}
	}
	return summary
}
