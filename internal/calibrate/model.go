// Package calibrate inverts vig-free market probabilities into the two-period
// compound-Poisson scoring model the rest of the engine queries.
package calibrate

import "github.com/yourusername/fairline/internal/scoremodel"

// Model is the result of a successful calibration: the full-match scoring
// rates, their fixed-ratio split into two periods, and the two immutable
// period score tables. Models are never mutated after construction and are
// safe for concurrent reads.
type Model struct {
	Full   scoremodel.RatePair `json:"full"`
	First  scoremodel.RatePair `json:"first_half"`
	Second scoremodel.RatePair `json:"second_half"`

	FirstTable  *scoremodel.ScoreTable `json:"-"`
	SecondTable *scoremodel.ScoreTable `json:"-"`
}

// Params configures the calibration searches and the tables they produce.
type Params struct {
	// FirstHalfWeight is the fixed fraction of each full-match rate assigned
	// to the first period. The remainder goes to the second period.
	FirstHalfWeight float64

	// MaxGoalsPerPeriod is the per-period score table ceiling.
	MaxGoalsPerPeriod int

	// SearchMaxGoals is the per-side ceiling of the full-match grid the
	// market-implied searches enumerate.
	SearchMaxGoals int

	// TotalStep and SupremacyStep are the fixed line-search increments.
	TotalStep     float64
	SupremacyStep float64

	// MaxIterations bounds every iterative search before it reports failure.
	MaxIterations int

	// InitialTotal seeds the total-goals search.
	InitialTotal float64

	// Rho enables the low-score correlation adjustment on built tables.
	Rho float64

	// OmegaAnchors drive the zero-inflation parameter used by the
	// result-only calibration variant.
	OmegaAnchors scoremodel.OmegaAnchors
}

// DefaultParams returns the engine defaults: a 45/55 period split, ceilings
// of 12 goals per period, and conservative search bounds.
func DefaultParams() Params {
	return Params{
		FirstHalfWeight:   0.45,
		MaxGoalsPerPeriod: 12,
		SearchMaxGoals:    12,
		TotalStep:         0.05,
		SupremacyStep:     0.02,
		MaxIterations:     200,
		InitialTotal:      2.6,
		Rho:               0,
		OmegaAnchors: scoremodel.OmegaAnchors{
			DrawLow:   0.26,
			DrawHigh:  0.34,
			OmegaLow:  0,
			OmegaHigh: 0.10,
		},
	}
}
