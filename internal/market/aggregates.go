package market

import (
	"github.com/yourusername/fairline/internal/calibrate"
	"github.com/yourusername/fairline/internal/models"
)

// Side selects a team for team-specific markets.
type Side int

const (
	SideHome Side = iota
	SideAway
)

// GoalAggregates holds every goal-count distribution the library's aggregate
// markets slice from. It is produced by a single pass over the full joint
// two-period space, so individual market lines never re-enumerate the grid.
type GoalAggregates struct {
	// TotalGoals[k] is the probability of exactly k full-time goals.
	TotalGoals []float64
	// HomeGoals and AwayGoals are the per-side full-time marginals.
	HomeGoals []float64
	AwayGoals []float64
	// FirstHalfGoals and SecondHalfGoals are the per-half total marginals.
	FirstHalfGoals  []float64
	SecondHalfGoals []float64

	// Half-comparison mass.
	FirstHalfHigher  float64
	HalvesLevel      float64
	SecondHalfHigher float64

	// GoalInBothHalves is the mass of outcomes with at least one goal in
	// each half.
	GoalInBothHalves float64
	// HomeScoredBothHalves and AwayScoredBothHalves require the named side
	// to score in each half.
	HomeScoredBothHalves float64
	AwayScoredBothHalves float64
}

// Aggregate runs the single double-period enumeration pass and tallies every
// distribution at once.
func Aggregate(m *calibrate.Model) *GoalAggregates {
	perHalf := m.FirstTable.MaxGoals() + m.SecondTable.MaxGoals()
	g := &GoalAggregates{
		TotalGoals:      make([]float64, 2*perHalf+1),
		HomeGoals:       make([]float64, perHalf+1),
		AwayGoals:       make([]float64, perHalf+1),
		FirstHalfGoals:  make([]float64, 2*m.FirstTable.MaxGoals()+1),
		SecondHalfGoals: make([]float64, 2*m.SecondTable.MaxGoals()+1),
	}

	forEachJoint(m, func(first, second, full models.Score, p float64) {
		g.TotalGoals[full.Total()] += p
		g.HomeGoals[full.Home] += p
		g.AwayGoals[full.Away] += p
		g.FirstHalfGoals[first.Total()] += p
		g.SecondHalfGoals[second.Total()] += p

		switch {
		case first.Total() > second.Total():
			g.FirstHalfHigher += p
		case first.Total() == second.Total():
			g.HalvesLevel += p
		default:
			g.SecondHalfHigher += p
		}

		if first.Total() > 0 && second.Total() > 0 {
			g.GoalInBothHalves += p
		}
		if first.Home > 0 && second.Home > 0 {
			g.HomeScoredBothHalves += p
		}
		if first.Away > 0 && second.Away > 0 {
			g.AwayScoredBothHalves += p
		}
	})
	return g
}

// ExactTotal prices exactly k full-time goals.
func (g *GoalAggregates) ExactTotal(k int) models.MarketPrice {
	if k < 0 || k >= len(g.TotalGoals) {
		return models.PriceFrom(0)
	}
	return models.PriceFrom(g.TotalGoals[k])
}

// TotalInRange prices a goal-spread band: lo <= total <= hi.
func (g *GoalAggregates) TotalInRange(lo, hi int) models.MarketPrice {
	if lo < 0 {
		lo = 0
	}
	var sum float64
	for k := lo; k <= hi && k < len(g.TotalGoals); k++ {
		sum += g.TotalGoals[k]
	}
	return models.PriceFrom(sum)
}

// TotalAtLeast prices total >= k, the open-ended top band.
func (g *GoalAggregates) TotalAtLeast(k int) models.MarketPrice {
	return g.TotalInRange(k, len(g.TotalGoals)-1)
}

// TeamTotal prices a side's over/under at a line from its marginal.
func (g *GoalAggregates) TeamTotal(side Side, line float64) (over, under models.MarketPrice) {
	marginalDist := g.HomeGoals
	if side == SideAway {
		marginalDist = g.AwayGoals
	}
	var overMass, underMass float64
	for k, p := range marginalDist {
		goals := float64(k)
		switch {
		case goals > line:
			overMass += p
		case goals < line:
			underMass += p
		}
	}
	return models.PriceFrom(overMass), models.PriceFrom(underMass)
}

// HigherScoringHalf prices the three-way first-half/level/second-half
// comparison of goals per half.
func (g *GoalAggregates) HigherScoringHalf() (first, level, second models.MarketPrice) {
	return models.PriceFrom(g.FirstHalfHigher),
		models.PriceFrom(g.HalvesLevel),
		models.PriceFrom(g.SecondHalfHigher)
}

// ScoredInBothHalves prices at least one goal in each half.
func (g *GoalAggregates) ScoredInBothHalves() models.MarketPrice {
	return models.PriceFrom(g.GoalInBothHalves)
}

// TeamScoredBothHalves prices the named side scoring in each half.
func (g *GoalAggregates) TeamScoredBothHalves(side Side) models.MarketPrice {
	if side == SideAway {
		return models.PriceFrom(g.AwayScoredBothHalves)
	}
	return models.PriceFrom(g.HomeScoredBothHalves)
}
