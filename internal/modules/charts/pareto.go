// Package charts summarizes and draws efficient frontiers.
package charts

import "github.com/aristath/allocator/internal/domain"

// EfficientPoints returns the points not dominated by any other point, in input order.
// A point dominates another when it has no more risk, no less return and is strictly
// better on one of the two. Repeated (risk, return) pairs are kept once.
func EfficientPoints(points []domain.FrontierPoint) []domain.FrontierPoint {
	efficient := []domain.FrontierPoint{}
	seen := make(map[[2]float64]struct{}, len(points))

	for i := range points {
		key := [2]float64{float64(points[i].Risk), points[i].Return}
		if _, ok := seen[key]; ok {
			continue
		}

		dominated := false
		for j := range points {
			if i != j && dominates(points[j], points[i]) {
				dominated = true
				break
			}
		}
		if !dominated {
			seen[key] = struct{}{}
			efficient = append(efficient, points[i])
		}
	}
	return efficient
}

// dominates reports whether a dominates b. Lower risk and higher return are better.
func dominates(a, b domain.FrontierPoint) bool {
	if a.Risk > b.Risk || a.Return < b.Return {
		return false
	}
	return a.Risk < b.Risk || a.Return > b.Return
}
