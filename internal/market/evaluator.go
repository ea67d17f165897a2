// Package market answers derivative market queries against a calibrated
// model by exact enumeration of the joint two-period score space.
package market

import (
	"github.com/yourusername/fairline/internal/calibrate"
	"github.com/yourusername/fairline/internal/models"
)

// forEachJoint visits every joint outcome of the two period tables with
// non-zero mass, passing the period scores, the derived full-time score and
// the joint probability. The two periods are treated as independent, so the
// joint probability is the cell product. Skipping zero-mass cells is an
// optimization only; it never changes the accumulated result.
func forEachJoint(m *calibrate.Model, visit func(first, second, full models.Score, p float64)) {
	n1 := m.FirstTable.MaxGoals()
	n2 := m.SecondTable.MaxGoals()
	for h1 := 0; h1 <= n1; h1++ {
		for a1 := 0; a1 <= n1; a1++ {
			p1 := m.FirstTable.Prob(h1, a1)
			if p1 == 0 {
				continue
			}
			first := models.Score{Home: h1, Away: a1}
			for h2 := 0; h2 <= n2; h2++ {
				for a2 := 0; a2 <= n2; a2++ {
					p2 := m.SecondTable.Prob(h2, a2)
					if p2 == 0 {
						continue
					}
					second := models.Score{Home: h2, Away: a2}
					visit(first, second, first.Add(second), p1*p2)
				}
			}
		}
	}
}

// Probability accumulates the exact mass of every joint outcome satisfying
// the condition. Fields are evaluated first half, second half, then full
// time, rejecting a cell at the first failing field. The enumeration is
// deterministic: identical inputs always produce bit-identical output.
func Probability(m *calibrate.Model, cond models.MarketCondition) float64 {
	if cond.Impossible() {
		return 0
	}

	var total float64
	n1 := m.FirstTable.MaxGoals()
	n2 := m.SecondTable.MaxGoals()
	for h1 := 0; h1 <= n1; h1++ {
		for a1 := 0; a1 <= n1; a1++ {
			p1 := m.FirstTable.Prob(h1, a1)
			if p1 == 0 {
				continue
			}
			first := models.Score{Home: h1, Away: a1}
			if !cond.FirstHalf.Matches(first) {
				continue
			}
			for h2 := 0; h2 <= n2; h2++ {
				for a2 := 0; a2 <= n2; a2++ {
					p2 := m.SecondTable.Prob(h2, a2)
					if p2 == 0 {
						continue
					}
					second := models.Score{Home: h2, Away: a2}
					if !cond.SecondHalf.Matches(second) {
						continue
					}
					if !cond.FullTime.Matches(first.Add(second)) {
						continue
					}
					total += p1 * p2
				}
			}
		}
	}
	return total
}

// Price evaluates a condition and pairs the probability with its fair odds.
func Price(m *calibrate.Model, cond models.MarketCondition) models.MarketPrice {
	return models.PriceFrom(Probability(m, cond))
}
