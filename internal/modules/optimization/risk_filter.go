package optimization

import "github.com/aristath/allocator/internal/domain"

// FilterByRisk drops the lowest-return member of selection until its total
// risk is within riskTolerance or nothing is left. On equal returns the
// member that comes first in the current order goes first.
//
// This is a greedy trim, not a search for the best subset under the ceiling.
// The selection's backing array is reused; the shrunk slice is returned.
func FilterByRisk(selection domain.Selection, riskTolerance int) domain.Selection {
	kept, _ := FilterByRiskWithRemoved(selection, riskTolerance)
	return kept
}

// FilterByRiskWithRemoved behaves like FilterByRisk and also reports the
// removed assets in removal order.
func FilterByRiskWithRemoved(selection domain.Selection, riskTolerance int) (domain.Selection, domain.Selection) {
	var removed domain.Selection
	totalRisk := selection.TotalRisk()

	for totalRisk > riskTolerance && len(selection) > 0 {
		worst := 0
		for i := 1; i < len(selection); i++ {
			if selection[i].ExpectedReturn < selection[worst].ExpectedReturn {
				worst = i
			}
		}

		asset := selection[worst]
		removed = append(removed, asset)
		totalRisk -= asset.RiskScore
		selection = append(selection[:worst], selection[worst+1:]...)
	}

	return selection, removed
}
