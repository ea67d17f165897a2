// Package models defines the value types shared across the pricing engine:
// scores, market conditions, probabilities and their fair-odds counterparts.
package models

// Score is the goal count for each side over some portion of a match.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Total returns the combined goal count.
func (s Score) Total() int {
	return s.Home + s.Away
}

// Diff returns the home-minus-away goal difference.
func (s Score) Diff() int {
	return s.Home - s.Away
}

// Add combines two period scores into a cumulative score.
func (s Score) Add(other Score) Score {
	return Score{Home: s.Home + other.Home, Away: s.Away + other.Away}
}

// BothScored reports whether both sides registered at least one goal.
func (s Score) BothScored() bool {
	return s.Home > 0 && s.Away > 0
}

// ResultProbs holds vig-free 1X2 probabilities for a match.
type ResultProbs struct {
	Home float64 `json:"home"`
	Draw float64 `json:"draw"`
	Away float64 `json:"away"`
}

// Sum returns the total probability mass of the three outcomes.
func (r ResultProbs) Sum() float64 {
	return r.Home + r.Draw + r.Away
}
