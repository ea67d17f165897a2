package market

import (
	"fmt"
	"math"

	"github.com/yourusername/fairline/internal/calibrate"
	"github.com/yourusername/fairline/internal/models"
)

// marginEpsilon guards the push comparison against floating error at exact
// integer margins.
const marginEpsilon = 0.01

// IsQuarterLine reports whether a handicap line ends in .25 or .75.
func IsQuarterLine(line float64) bool {
	nearestHalf := math.Round(line*2) / 2
	return math.Abs(line-nearestHalf) > 1e-9
}

// AsianHandicap settles the full-match handicap at a half- or whole-goal
// line: the home margin is (home goals + line) - away goals, covering home
// above +epsilon, away below -epsilon, and pushing in between. Quarter lines
// have no matching score parity and are rejected; use QuarterLineHandicap.
func AsianHandicap(m *calibrate.Model, line float64) (models.HandicapPrice, error) {
	if !isFiniteLine(line) {
		return models.HandicapPrice{}, fmt.Errorf("handicap line %v: %w", line, models.ErrInvalidLine)
	}
	if IsQuarterLine(line) {
		return models.HandicapPrice{}, fmt.Errorf("quarter line %v needs split settlement: %w", line, models.ErrInvalidLine)
	}

	out := models.HandicapPrice{Line: line}
	forEachJoint(m, func(_, _, full models.Score, p float64) {
		accumulate(&out, full, line, p)
	})
	return out, nil
}

// PeriodHandicap settles a handicap over a single half's score.
func PeriodHandicap(m *calibrate.Model, scope models.Scope, line float64) (models.HandicapPrice, error) {
	if !isFiniteLine(line) {
		return models.HandicapPrice{}, fmt.Errorf("handicap line %v: %w", line, models.ErrInvalidLine)
	}
	if IsQuarterLine(line) {
		return models.HandicapPrice{}, fmt.Errorf("quarter line %v needs split settlement: %w", line, models.ErrInvalidLine)
	}

	table := m.FirstTable
	if scope == models.ScopeSecondHalf {
		table = m.SecondTable
	}

	out := models.HandicapPrice{Line: line}
	n := table.MaxGoals()
	for h := 0; h <= n; h++ {
		for a := 0; a <= n; a++ {
			p := table.Prob(h, a)
			if p == 0 {
				continue
			}
			accumulate(&out, models.Score{Home: h, Away: a}, line, p)
		}
	}
	return out, nil
}

func accumulate(out *models.HandicapPrice, score models.Score, line, p float64) {
	margin := float64(score.Home) + line - float64(score.Away)
	switch {
	case margin > marginEpsilon:
		out.Home += p
	case margin < -marginEpsilon:
		out.Away += p
	default:
		out.Push += p
	}
}

// QuarterLineHandicap prices a .25/.75 line as the two adjacent half/whole
// lines settled with equal stakes. Per market convention the two adjacent
// decimal odds are averaged per side (probabilities at or below the epsilon
// floor priced at the MaxOdds sentinel first) and the averaged odds are then
// converted back to a probability. Averaging the prices, not the
// probabilities, is deliberate and must not be "simplified".
func QuarterLineHandicap(m *calibrate.Model, line float64) (models.TwoWayPrice, error) {
	if !isFiniteLine(line) || !IsQuarterLine(line) {
		return models.TwoWayPrice{}, fmt.Errorf("line %v is not a quarter line: %w", line, models.ErrInvalidLine)
	}

	lower, err := AsianHandicap(m, line-0.25)
	if err != nil {
		return models.TwoWayPrice{}, err
	}
	upper, err := AsianHandicap(m, line+0.25)
	if err != nil {
		return models.TwoWayPrice{}, err
	}

	homeOdds := (lower.HomePrice().FairOdds + upper.HomePrice().FairOdds) / 2
	awayOdds := (lower.AwayPrice().FairOdds + upper.AwayPrice().FairOdds) / 2
	return models.TwoWayPrice{
		Line: line,
		Home: models.PriceFromOdds(homeOdds),
		Away: models.PriceFromOdds(awayOdds),
	}, nil
}

func isFiniteLine(line float64) bool {
	return !math.IsNaN(line) && !math.IsInf(line, 0)
}
