package models

const (
	// MinProbability floors a probability before taking its reciprocal so a
	// near-impossible outcome never produces infinite or NaN odds.
	MinProbability = 1e-9

	// MaxOdds is the sentinel decimal price for an outcome at or below
	// MinProbability. The quarter-line averaging rule depends on this exact
	// clamp, so it is a documented convention rather than an arbitrary cap.
	MaxOdds = 1e9
)

// MarketPrice pairs a probability with its fair decimal odds.
type MarketPrice struct {
	Probability float64 `json:"probability"`
	FairOdds    float64 `json:"fair_odds"`
}

// PriceFrom derives the fair odds for a probability, clamping the reciprocal
// at MaxOdds for probabilities at or below MinProbability.
func PriceFrom(p float64) MarketPrice {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	odds := MaxOdds
	if p > MinProbability {
		odds = 1 / p
	}
	return MarketPrice{Probability: p, FairOdds: odds}
}

// PriceFromOdds converts decimal odds back into a probability/odds pair.
func PriceFromOdds(odds float64) MarketPrice {
	if odds < 1 {
		odds = 1
	}
	return MarketPrice{Probability: 1 / odds, FairOdds: odds}
}

// HandicapPrice is the three-way settlement split for a handicap line where a
// push is possible. Home, Push and Away sum to 1 within floating tolerance.
type HandicapPrice struct {
	Line float64 `json:"line"`
	Home float64 `json:"home"`
	Push float64 `json:"push"`
	Away float64 `json:"away"`
}

// HomePrice returns the home-covers probability as a priced outcome.
func (h HandicapPrice) HomePrice() MarketPrice {
	return PriceFrom(h.Home)
}

// AwayPrice returns the away-covers probability as a priced outcome.
func (h HandicapPrice) AwayPrice() MarketPrice {
	return PriceFrom(h.Away)
}

// TwoWayPrice holds a pushless home/away market, e.g. a quarter-line handicap.
type TwoWayPrice struct {
	Line float64     `json:"line"`
	Home MarketPrice `json:"home"`
	Away MarketPrice `json:"away"`
}
