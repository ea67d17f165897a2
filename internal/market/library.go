package market

import (
	"fmt"

	"github.com/yourusername/fairline/internal/calibrate"
	"github.com/yourusername/fairline/internal/models"
)

// MatchResult prices the full-time 1X2 market.
func MatchResult(m *calibrate.Model) (home, draw, away models.MarketPrice) {
	home = Price(m, models.ResultCondition(models.ScopeFullTime, models.HomeWin))
	draw = Price(m, models.ResultCondition(models.ScopeFullTime, models.Draw))
	away = Price(m, models.ResultCondition(models.ScopeFullTime, models.AwayWin))
	return home, draw, away
}

// PeriodResult prices the 1X2 market for a single half.
func PeriodResult(m *calibrate.Model, scope models.Scope) (home, draw, away models.MarketPrice) {
	home = Price(m, models.ResultCondition(scope, models.HomeWin))
	draw = Price(m, models.ResultCondition(scope, models.Draw))
	away = Price(m, models.ResultCondition(scope, models.AwayWin))
	return home, draw, away
}

// DoubleChance prices the three two-outcome result combinations.
func DoubleChance(m *calibrate.Model) (homeOrDraw, homeOrAway, drawOrAway models.MarketPrice) {
	homeOrDraw = Price(m, models.ResultCondition(models.ScopeFullTime, models.HomeOrDraw))
	homeOrAway = Price(m, models.ResultCondition(models.ScopeFullTime, models.HomeOrAway))
	drawOrAway = Price(m, models.ResultCondition(models.ScopeFullTime, models.DrawOrAway))
	return homeOrDraw, homeOrAway, drawOrAway
}

// DrawNoBet prices the result market with the draw mass divided out: the
// home price is P(home)/(1 - P(draw)) and symmetrically for away. A model
// with essentially all mass on the draw leaves nothing to renormalize.
func DrawNoBet(m *calibrate.Model) (home, away models.MarketPrice, err error) {
	pHome := Probability(m, models.ResultCondition(models.ScopeFullTime, models.HomeWin))
	pDraw := Probability(m, models.ResultCondition(models.ScopeFullTime, models.Draw))
	pAway := Probability(m, models.ResultCondition(models.ScopeFullTime, models.AwayWin))

	active := 1 - pDraw
	if active <= models.MinProbability {
		return models.MarketPrice{}, models.MarketPrice{},
			fmt.Errorf("draw no bet with draw mass %v: %w", pDraw, models.ErrUnpriceable)
	}
	return models.PriceFrom(pHome / active), models.PriceFrom(pAway / active), nil
}

// Totals prices over/under at a line for the given scope.
func Totals(m *calibrate.Model, scope models.Scope, line float64) (over, under models.MarketPrice) {
	over = Price(m, models.TotalsCondition(scope, models.TotalOver, line))
	under = Price(m, models.TotalsCondition(scope, models.TotalUnder, line))
	return over, under
}

// BothTeamsToScore prices the yes/no both-teams-scored market for a scope.
func BothTeamsToScore(m *calibrate.Model, scope models.Scope) (yes, no models.MarketPrice) {
	yes = Price(m, models.BothScoredCondition(scope, true))
	no = Price(m, models.BothScoredCondition(scope, false))
	return yes, no
}

// CorrectScore prices an exact full-time scoreline.
func CorrectScore(m *calibrate.Model, score models.Score) models.MarketPrice {
	return Price(m, models.ExactScoreCondition(models.ScopeFullTime, score))
}

// HalfTimeFullTime prices one of the nine half-time/full-time result
// combinations by composing a first-half condition with a full-time one.
func HalfTimeFullTime(m *calibrate.Model, halfTime, fullTime models.ResultClass) models.MarketPrice {
	cond := models.ResultCondition(models.ScopeFirstHalf, halfTime).
		And(models.ResultCondition(models.ScopeFullTime, fullTime))
	return Price(m, cond)
}
