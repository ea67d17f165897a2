package calibrate

import (
	"fmt"
	"math"

	"github.com/yourusername/fairline/internal/models"
	"github.com/yourusername/fairline/internal/scoremodel"
)

// Calibrator turns supplied market evidence into a calibrated Model. It is
// pure over its inputs: a failed calibration is reported once, never silently
// retried or replaced with a best-effort guess.
type Calibrator struct {
	params Params
}

// New creates a calibrator with the given parameters.
func New(params Params) *Calibrator {
	return &Calibrator{params: params}
}

// Params returns the calibrator's configuration.
func (c *Calibrator) Params() Params {
	return c.params
}

// Direct builds a model analytically from a supremacy/expectancy pair:
// lambda_home = (E+S)/2 and lambda_away = (E-S)/2. No search is involved.
func (c *Calibrator) Direct(supremacy, expectancy float64) (*Model, error) {
	if !isFinite(supremacy) || !isFinite(expectancy) {
		return nil, fmt.Errorf("direct calibration: non-finite input: %w", models.ErrNoConsistentModel)
	}
	if math.Abs(supremacy) >= expectancy {
		return nil, fmt.Errorf("direct calibration: supremacy %.3f exceeds expectancy %.3f: %w",
			supremacy, expectancy, models.ErrNoConsistentModel)
	}
	full := scoremodel.RatePair{
		Home: (expectancy + supremacy) / 2,
		Away: (expectancy - supremacy) / 2,
	}
	if full.Home <= 0 || full.Away <= 0 {
		return nil, fmt.Errorf("direct calibration: non-positive rate: %w", models.ErrNoConsistentModel)
	}
	return c.build(full, 0), nil
}

// FromMarkets searches for the full-match rates that reproduce a vig-free
// result market and a vig-free total-goals market at the stated line. The
// search is two nested one-dimensional passes over the two orthogonal market
// dimensions: total expected goals first (against the Under target, with
// supremacy pinned at zero), then supremacy (against the home share of the
// non-draw mass, with the total pinned at the first pass's answer).
func (c *Calibrator) FromMarkets(result models.ResultProbs, line, overProb float64) (*Model, error) {
	if err := validateResult(result); err != nil {
		return nil, err
	}
	if !isFinite(line) || line < 0 {
		return nil, fmt.Errorf("total line %v: %w", line, models.ErrInvalidLine)
	}
	if !isFinite(overProb) || overProb <= 0 || overProb >= 1 {
		return nil, fmt.Errorf("over probability %v: %w", overProb, models.ErrNoConsistentModel)
	}

	underTarget := 1 - overProb
	total, err := c.searchTotal(line, underTarget)
	if err != nil {
		return nil, err
	}

	shareTarget := result.Home / (result.Home + result.Away)
	supremacy, err := c.searchSupremacy(total, shareTarget)
	if err != nil {
		return nil, err
	}

	full := scoremodel.RatePair{
		Home: (total + supremacy) / 2,
		Away: (total - supremacy) / 2,
	}
	if full.Home <= 0 || full.Away <= 0 {
		return nil, fmt.Errorf("market calibration: non-positive rate: %w", models.ErrNoConsistentModel)
	}
	return c.build(full, 0), nil
}

func (c *Calibrator) build(full scoremodel.RatePair, omega float64) *Model {
	first, second := scoremodel.Split(full, c.params.FirstHalfWeight)
	opts := scoremodel.Options{Rho: c.params.Rho, ZeroInflation: omega}
	return &Model{
		Full:        full,
		First:       first,
		Second:      second,
		FirstTable:  scoremodel.Build(first, c.params.MaxGoalsPerPeriod, opts),
		SecondTable: scoremodel.Build(second, c.params.MaxGoalsPerPeriod, opts),
	}
}

func (c *Calibrator) searchTotal(line, underTarget float64) (float64, error) {
	objective := func(total float64) float64 {
		if total <= 2*c.params.TotalStep {
			return math.Inf(1)
		}
		tally := c.tally(total, 0, line)
		return math.Abs(tally.under - underTarget)
	}
	total, err := lineSearch(c.params.InitialTotal, c.params.TotalStep, c.params.MaxIterations, objective)
	if err != nil {
		return 0, fmt.Errorf("total-goals search: %w", err)
	}
	return total, nil
}

func (c *Calibrator) searchSupremacy(total, shareTarget float64) (float64, error) {
	objective := func(supremacy float64) float64 {
		if math.Abs(supremacy) >= total {
			return math.Inf(1)
		}
		tally := c.tally(total, supremacy, 0)
		nonDraw := tally.home + tally.away
		if nonDraw <= 0 {
			return math.Inf(1)
		}
		return math.Abs(tally.home/nonDraw - shareTarget)
	}
	supremacy, err := lineSearch(0, c.params.SupremacyStep, c.params.MaxIterations, objective)
	if err != nil {
		return 0, fmt.Errorf("supremacy search: %w", err)
	}
	return supremacy, nil
}

// gridTally is the outcome mass of one candidate full-match grid.
type gridTally struct {
	home  float64
	draw  float64
	away  float64
	under float64
	over  float64
}

// tally enumerates an independent-Poisson full-match grid for the candidate
// (total, supremacy) pair and accumulates result and totals mass.
func (c *Calibrator) tally(total, supremacy, line float64) gridTally {
	lambdaHome := (total + supremacy) / 2
	lambdaAway := (total - supremacy) / 2

	ceiling := c.params.SearchMaxGoals
	home := make([]float64, ceiling+1)
	away := make([]float64, ceiling+1)
	for k := 0; k <= ceiling; k++ {
		home[k] = scoremodel.Poisson(k, lambdaHome)
		away[k] = scoremodel.Poisson(k, lambdaAway)
	}

	var t gridTally
	for h := 0; h <= ceiling; h++ {
		for a := 0; a <= ceiling; a++ {
			p := home[h] * away[a]
			if p == 0 {
				continue
			}
			switch {
			case h > a:
				t.home += p
			case h == a:
				t.draw += p
			default:
				t.away += p
			}
			goals := float64(h + a)
			switch {
			case goals < line:
				t.under += p
			case goals > line:
				t.over += p
			}
		}
	}
	return t
}

// lineSearch walks x from x0 in fixed steps, in whichever direction shrinks
// the objective, for as long as each step strictly improves on the last. The
// first non-improving step is discarded (the walk backs off to the previous
// point) and the search halts there. Exceeding maxIter steps without that
// divergence bracket is a failure.
func lineSearch(x0, step float64, maxIter int, objective func(float64) float64) (float64, error) {
	current := x0
	currentErr := objective(current)
	if math.IsInf(currentErr, 1) {
		return 0, models.ErrNoConsistentModel
	}

	upErr := objective(current + step)
	downErr := objective(current - step)
	direction := step
	nextErr := upErr
	if downErr < upErr {
		direction = -step
		nextErr = downErr
	}
	if nextErr >= currentErr {
		// already at the bracket minimum
		return current, nil
	}
	current += direction
	currentErr = nextErr

	for i := 0; i < maxIter; i++ {
		next := current + direction
		err := objective(next)
		if err >= currentErr {
			return current, nil
		}
		current = next
		currentErr = err
	}
	return 0, models.ErrNoConsistentModel
}

func validateResult(result models.ResultProbs) error {
	for _, p := range []float64{result.Home, result.Draw, result.Away} {
		if !isFinite(p) || p <= 0 || p >= 1 {
			return fmt.Errorf("result probability %v: %w", p, models.ErrNoConsistentModel)
		}
	}
	if math.Abs(result.Sum()-1) > 0.02 {
		return fmt.Errorf("result probabilities sum to %v: %w", result.Sum(), models.ErrNoConsistentModel)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
