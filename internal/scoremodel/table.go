package scoremodel

// RatePair holds the expected goals for each side over one period.
type RatePair struct {
	Home float64 `json:"home"`
	Away float64 `json:"away"`
}

// Total returns the combined expected goals.
func (r RatePair) Total() float64 {
	return r.Home + r.Away
}

// Supremacy returns the home-minus-away rate difference.
func (r RatePair) Supremacy() float64 {
	return r.Home - r.Away
}

// Split divides full-match rates into first- and second-period pairs. The
// second pair is the exact complement so period rates always sum back to the
// full-match rate for each side.
func Split(full RatePair, firstWeight float64) (RatePair, RatePair) {
	first := RatePair{Home: full.Home * firstWeight, Away: full.Away * firstWeight}
	second := RatePair{Home: full.Home - first.Home, Away: full.Away - first.Away}
	return first, second
}

// Options selects the optional adjustments applied when building a table.
type Options struct {
	// Rho is the low-score correlation parameter. It perturbs only the four
	// cells with both goal counts in {0,1}; zero disables the adjustment.
	Rho float64

	// ZeroInflation mixes extra probability mass into zero goals on each
	// marginal: P(0) becomes omega + (1-omega)*Poisson(0) and P(k>0) becomes
	// (1-omega)*Poisson(k). Zero disables the mixture.
	ZeroInflation float64
}

// ScoreTable is an immutable joint score distribution for one period,
// indexed by (home goals, away goals) up to a calculation ceiling. The cell
// sum approaches 1 as the ceiling grows; truncation error is the accepted
// cost of a finite grid.
type ScoreTable struct {
	cells    []float64
	maxGoals int
}

// Build constructs the (max+1)x(max+1) independent-Poisson product table for
// the given rates, then applies any configured adjustments.
func Build(rates RatePair, maxGoals int, opts Options) *ScoreTable {
	size := maxGoals + 1
	home := marginal(rates.Home, maxGoals, opts.ZeroInflation)
	away := marginal(rates.Away, maxGoals, opts.ZeroInflation)

	t := &ScoreTable{cells: make([]float64, size*size), maxGoals: maxGoals}
	for h := 0; h < size; h++ {
		for a := 0; a < size; a++ {
			t.cells[h*size+a] = home[h] * away[a]
		}
	}
	if opts.Rho != 0 {
		t.applyLowScoreCorrelation(rates, opts.Rho)
	}
	return t
}

func marginal(lambda float64, maxGoals int, omega float64) []float64 {
	probs := make([]float64, maxGoals+1)
	for k := range probs {
		probs[k] = Poisson(k, lambda)
	}
	if omega > 0 {
		for k := range probs {
			probs[k] *= 1 - omega
		}
		probs[0] += omega
	}
	return probs
}

// applyLowScoreCorrelation rescales the four low-score cells with the tau
// factors: (0,0) by 1-hA*aA*rho, (0,1) by 1+hA*rho, (1,0) by 1+aA*rho and
// (1,1) by 1-rho, where hA and aA are the side rates.
func (t *ScoreTable) applyLowScoreCorrelation(rates RatePair, rho float64) {
	t.scale(0, 0, 1-rates.Home*rates.Away*rho)
	t.scale(0, 1, 1+rates.Home*rho)
	t.scale(1, 0, 1+rates.Away*rho)
	t.scale(1, 1, 1-rho)
}

func (t *ScoreTable) scale(h, a int, factor float64) {
	if factor < 0 {
		factor = 0
	}
	t.cells[h*(t.maxGoals+1)+a] *= factor
}

// MaxGoals returns the table's per-side calculation ceiling.
func (t *ScoreTable) MaxGoals() int {
	return t.maxGoals
}

// Prob returns the probability of the exact score (h, a). Scores beyond the
// ceiling carry zero mass.
func (t *ScoreTable) Prob(h, a int) float64 {
	if h < 0 || a < 0 || h > t.maxGoals || a > t.maxGoals {
		return 0
	}
	return t.cells[h*(t.maxGoals+1)+a]
}

// Sum returns the total mass held by the table.
func (t *ScoreTable) Sum() float64 {
	var sum float64
	for _, c := range t.cells {
		sum += c
	}
	return sum
}

// OmegaAnchors are the two calibration points for deriving a zero-inflation
// parameter from a fitted draw probability.
type OmegaAnchors struct {
	DrawLow   float64
	DrawHigh  float64
	OmegaLow  float64
	OmegaHigh float64
}

// OmegaFromDraw linearly interpolates the zero-inflation parameter between
// the two anchor points, clamping outside the anchor range.
func OmegaFromDraw(draw float64, anchors OmegaAnchors) float64 {
	if anchors.DrawHigh <= anchors.DrawLow {
		return anchors.OmegaLow
	}
	if draw <= anchors.DrawLow {
		return anchors.OmegaLow
	}
	if draw >= anchors.DrawHigh {
		return anchors.OmegaHigh
	}
	frac := (draw - anchors.DrawLow) / (anchors.DrawHigh - anchors.DrawLow)
	return anchors.OmegaLow + frac*(anchors.OmegaHigh-anchors.OmegaLow)
}
