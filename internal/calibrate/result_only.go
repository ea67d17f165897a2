package calibrate

import (
	"fmt"
	"math"

	"github.com/yourusername/fairline/internal/models"
	"github.com/yourusername/fairline/internal/scoremodel"
)

// ImpliedTotal inverts a single vig-free Over probability at a stated line
// into the full-match total goals rate, by bisection on the Poisson CDF. It
// is the companion to FromResultOnly for callers holding one totals quote
// but no result market at the same book.
func (c *Calibrator) ImpliedTotal(line, overProb float64) (float64, error) {
	if !isFinite(line) || line < 0 {
		return 0, fmt.Errorf("total line %v: %w", line, models.ErrInvalidLine)
	}
	if !isFinite(overProb) || overProb <= 0 || overProb >= 1 {
		return 0, fmt.Errorf("over probability %v: %w", overProb, models.ErrNoConsistentModel)
	}

	underTarget := 1 - overProb
	threshold := int(math.Floor(line))

	lo, hi := 0.05, 12.0
	if scoremodel.PoissonCDF(threshold, lo) < underTarget || scoremodel.PoissonCDF(threshold, hi) > underTarget {
		return 0, fmt.Errorf("implied total not bracketed for line %v: %w", line, models.ErrNoConsistentModel)
	}
	for i := 0; i < 60; i++ {
		mid := (lo + hi) / 2
		if scoremodel.PoissonCDF(threshold, mid) > underTarget {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2, nil
}

// FromResultOnly calibrates from a vig-free result market and a known total
// goals rate, without any totals market. The draw probability fixes a
// zero-inflation parameter via the configured anchors, and a golden-section
// search over lambda_home (with lambda_away = total - lambda_home) minimizes
// the combined squared 1X2 error.
func (c *Calibrator) FromResultOnly(result models.ResultProbs, totalGoals float64) (*Model, error) {
	if err := validateResult(result); err != nil {
		return nil, err
	}
	if !isFinite(totalGoals) || totalGoals <= 0 {
		return nil, fmt.Errorf("total goals %v: %w", totalGoals, models.ErrNoConsistentModel)
	}

	omega := scoremodel.OmegaFromDraw(result.Draw, c.params.OmegaAnchors)
	objective := func(lambdaHome float64) float64 {
		tally := c.tallyInflated(lambdaHome, totalGoals-lambdaHome, omega)
		mass := tally.home + tally.draw + tally.away
		if mass <= 0 {
			return math.Inf(1)
		}
		dh := tally.home/mass - result.Home
		dd := tally.draw/mass - result.Draw
		da := tally.away/mass - result.Away
		return dh*dh + dd*dd + da*da
	}

	margin := math.Min(0.05, totalGoals/4)
	lambdaHome := goldenSection(objective, margin, totalGoals-margin, 1e-6, c.params.MaxIterations)
	full := scoremodel.RatePair{Home: lambdaHome, Away: totalGoals - lambdaHome}
	if full.Home <= 0 || full.Away <= 0 {
		return nil, fmt.Errorf("result-only calibration: non-positive rate: %w", models.ErrNoConsistentModel)
	}
	return c.build(full, omega), nil
}

// tallyInflated is the zero-inflated counterpart of tally, used only by the
// result-only objective where the draw mass carries the extra information.
func (c *Calibrator) tallyInflated(lambdaHome, lambdaAway, omega float64) gridTally {
	ceiling := c.params.SearchMaxGoals
	home := inflatedMarginal(lambdaHome, ceiling, omega)
	away := inflatedMarginal(lambdaAway, ceiling, omega)

	var t gridTally
	for h := 0; h <= ceiling; h++ {
		for a := 0; a <= ceiling; a++ {
			p := home[h] * away[a]
			switch {
			case h > a:
				t.home += p
			case h == a:
				t.draw += p
			default:
				t.away += p
			}
		}
	}
	return t
}

func inflatedMarginal(lambda float64, ceiling int, omega float64) []float64 {
	probs := make([]float64, ceiling+1)
	for k := 0; k <= ceiling; k++ {
		probs[k] = (1 - omega) * scoremodel.Poisson(k, lambda)
	}
	probs[0] += omega
	return probs
}

// goldenSection minimizes f over [lo, hi] to within tol using the classic
// golden-ratio interval reduction.
func goldenSection(f func(float64) float64, lo, hi, tol float64, maxIter int) float64 {
	const invPhi = 0.6180339887498949

	a, b := lo, hi
	x1 := b - invPhi*(b-a)
	x2 := a + invPhi*(b-a)
	f1, f2 := f(x1), f(x2)
	for i := 0; i < maxIter && b-a > tol; i++ {
		if f1 < f2 {
			b = x2
			x2, f2 = x1, f1
			x1 = b - invPhi*(b-a)
			f1 = f(x1)
		} else {
			a = x1
			x1, f1 = x2, f2
			x2 = a + invPhi*(b-a)
			f2 = f(x2)
		}
	}
	return (a + b) / 2
}
