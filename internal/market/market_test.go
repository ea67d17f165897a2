package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/fairline/internal/calibrate"
	"github.com/yourusername/fairline/internal/models"
)

func levelModel(t *testing.T) *calibrate.Model {
	t.Helper()
	m, err := calibrate.New(calibrate.DefaultParams()).Direct(0, 2.6)
	require.NoError(t, err)
	return m
}

func favouriteModel(t *testing.T) *calibrate.Model {
	t.Helper()
	m, err := calibrate.New(calibrate.DefaultParams()).Direct(0.75, 2.65)
	require.NoError(t, err)
	return m
}

func TestMatchResultPartitionsTheSpace(t *testing.T) {
	m := levelModel(t)

	home, draw, away := MatchResult(m)
	assert.InDelta(t, 1.0, home.Probability+draw.Probability+away.Probability, 1e-6)
	assert.InDelta(t, home.Probability, away.Probability, 1e-9)
	assert.Greater(t, draw.Probability, 0.24)
	assert.Less(t, draw.Probability, 0.28)
}

func TestMatchResultFavouriteOrdering(t *testing.T) {
	m := favouriteModel(t)

	home, _, away := MatchResult(m)
	assert.Greater(t, home.Probability, away.Probability)
}

func TestPeriodResultUsesOnlyItsHalf(t *testing.T) {
	m := levelModel(t)

	home1, draw1, away1 := PeriodResult(m, models.ScopeFirstHalf)
	home2, draw2, away2 := PeriodResult(m, models.ScopeSecondHalf)

	assert.InDelta(t, 1.0, home1.Probability+draw1.Probability+away1.Probability, 1e-6)
	assert.InDelta(t, 1.0, home2.Probability+draw2.Probability+away2.Probability, 1e-6)

	// fewer expected goals in the first half, so its draw is the likelier
	assert.Greater(t, draw1.Probability, draw2.Probability)
}

func TestDoubleChanceIsPairwiseSum(t *testing.T) {
	m := favouriteModel(t)

	home, draw, away := MatchResult(m)
	homeOrDraw, homeOrAway, drawOrAway := DoubleChance(m)

	assert.InDelta(t, home.Probability+draw.Probability, homeOrDraw.Probability, 1e-9)
	assert.InDelta(t, home.Probability+away.Probability, homeOrAway.Probability, 1e-9)
	assert.InDelta(t, draw.Probability+away.Probability, drawOrAway.Probability, 1e-9)
}

func TestDrawNoBetRenormalizes(t *testing.T) {
	m := favouriteModel(t)

	home, draw, away := MatchResult(m)
	dnbHome, dnbAway, err := DrawNoBet(m)
	require.NoError(t, err)

	active := 1 - draw.Probability
	assert.InDelta(t, home.Probability/active, dnbHome.Probability, 1e-9)
	assert.InDelta(t, away.Probability/active, dnbAway.Probability, 1e-9)
	assert.InDelta(t, 1.0, dnbHome.Probability+dnbAway.Probability, 1e-6)
}

func TestTotalsComplementAtHalfLine(t *testing.T) {
	m := levelModel(t)

	over, under := Totals(m, models.ScopeFullTime, 2.5)
	assert.InDelta(t, 1.0, over.Probability+under.Probability, 1e-6)

	// raising the line can only move mass to the under
	overHigh, _ := Totals(m, models.ScopeFullTime, 3.5)
	assert.Less(t, overHigh.Probability, over.Probability)
}

func TestBothTeamsToScoreComplement(t *testing.T) {
	m := levelModel(t)

	yes, no := BothTeamsToScore(m, models.ScopeFullTime)
	assert.InDelta(t, 1.0, yes.Probability+no.Probability, 1e-6)
	assert.Greater(t, yes.Probability, 0.0)
}

func TestCorrectScoresSumToMatchResult(t *testing.T) {
	m := levelModel(t)

	home, draw, away := MatchResult(m)

	var drawMass float64
	for k := 0; k <= 12; k++ {
		drawMass += CorrectScore(m, models.Score{Home: k, Away: k}).Probability
	}
	assert.InDelta(t, draw.Probability, drawMass, 1e-6)
	assert.InDelta(t, 1.0, home.Probability+draw.Probability+away.Probability, 1e-6)
}

func TestHalfTimeFullTimeGridSumsToOne(t *testing.T) {
	m := levelModel(t)

	classes := []models.ResultClass{models.HomeWin, models.Draw, models.AwayWin}
	var sum float64
	for _, ht := range classes {
		for _, ft := range classes {
			sum += HalfTimeFullTime(m, ht, ft).Probability
		}
	}
	assert.InDelta(t, 1.0, sum, 1e-6)

	// half-time draw carried to a full-time draw must match the plain
	// half-time-draw-and-full-time-draw composition
	cond := models.ResultCondition(models.ScopeFirstHalf, models.Draw).
		And(models.ResultCondition(models.ScopeFullTime, models.Draw))
	assert.InDelta(t, Probability(m, cond),
		HalfTimeFullTime(m, models.Draw, models.Draw).Probability, 1e-12)
}

func TestProbabilityOfImpossibleConditionIsZero(t *testing.T) {
	m := levelModel(t)

	cond := models.ResultCondition(models.ScopeFullTime, models.HomeWin).
		And(models.ResultCondition(models.ScopeFullTime, models.AwayWin))
	assert.Equal(t, 0.0, Probability(m, cond))
}

func TestProbabilityComposesAcrossScopes(t *testing.T) {
	m := favouriteModel(t)

	// conditioning on a first-half draw can only shrink the home-win mass
	homeWin := models.ResultCondition(models.ScopeFullTime, models.HomeWin)
	composed := models.ResultCondition(models.ScopeFirstHalf, models.Draw).And(homeWin)

	assert.Less(t, Probability(m, composed), Probability(m, homeWin))
	assert.Greater(t, Probability(m, composed), 0.0)
}

func TestAsianHandicapPartitions(t *testing.T) {
	m := favouriteModel(t)

	price, err := AsianHandicap(m, -0.5)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, price.Home+price.Push+price.Away, 1e-6)
	assert.Equal(t, 0.0, price.Push)
}

func TestAsianHandicapLineZeroMatchesResult(t *testing.T) {
	m := favouriteModel(t)

	home, draw, away := MatchResult(m)
	price, err := AsianHandicap(m, 0)
	require.NoError(t, err)

	assert.InDelta(t, home.Probability, price.Home, 1e-9)
	assert.InDelta(t, draw.Probability, price.Push, 1e-9)
	assert.InDelta(t, away.Probability, price.Away, 1e-9)
}

func TestAsianHandicapRejectsQuarterLines(t *testing.T) {
	m := levelModel(t)

	_, err := AsianHandicap(m, -0.75)
	assert.ErrorIs(t, err, models.ErrInvalidLine)
}

func TestPeriodHandicapUsesSingleTable(t *testing.T) {
	m := favouriteModel(t)

	price, err := PeriodHandicap(m, models.ScopeFirstHalf, 0)
	require.NoError(t, err)

	home1, draw1, away1 := PeriodResult(m, models.ScopeFirstHalf)
	assert.InDelta(t, home1.Probability, price.Home, 1e-9)
	assert.InDelta(t, draw1.Probability, price.Push, 1e-9)
	assert.InDelta(t, away1.Probability, price.Away, 1e-9)
}

func TestIsQuarterLine(t *testing.T) {
	assert.True(t, IsQuarterLine(-0.25))
	assert.True(t, IsQuarterLine(0.75))
	assert.True(t, IsQuarterLine(1.25))
	assert.False(t, IsQuarterLine(0))
	assert.False(t, IsQuarterLine(-0.5))
	assert.False(t, IsQuarterLine(2))
}

func TestQuarterLineHandicapAveragesAdjacentOdds(t *testing.T) {
	m := favouriteModel(t)

	lower, err := AsianHandicap(m, -1.0)
	require.NoError(t, err)
	upper, err := AsianHandicap(m, -0.5)
	require.NoError(t, err)
	quarter, err := QuarterLineHandicap(m, -0.75)
	require.NoError(t, err)

	wantHome := (lower.HomePrice().FairOdds + upper.HomePrice().FairOdds) / 2
	assert.InDelta(t, wantHome, quarter.Home.FairOdds, 1e-9)

	// the quarter price sits between its two parents on the odds scale
	lo := lower.HomePrice().FairOdds
	hi := upper.HomePrice().FairOdds
	if lo > hi {
		lo, hi = hi, lo
	}
	assert.GreaterOrEqual(t, quarter.Home.FairOdds, lo)
	assert.LessOrEqual(t, quarter.Home.FairOdds, hi)
}

func TestQuarterLineHandicapRejectsHalfLines(t *testing.T) {
	m := levelModel(t)

	_, err := QuarterLineHandicap(m, -0.5)
	assert.ErrorIs(t, err, models.ErrInvalidLine)
}

func TestAggregateMatchesEvaluator(t *testing.T) {
	m := levelModel(t)
	g := Aggregate(m)

	// the tallied exact-total distribution agrees with per-condition queries
	for k := 0; k <= 5; k++ {
		cond := models.TotalsCondition(models.ScopeFullTime, models.TotalExactly, float64(k))
		assert.InDelta(t, Probability(m, cond), g.ExactTotal(k).Probability, 1e-12)
	}

	var mass float64
	for _, p := range g.TotalGoals {
		mass += p
	}
	assert.InDelta(t, 1.0, mass, 1e-6)
}

func TestAggregateBandsAndTails(t *testing.T) {
	m := levelModel(t)
	g := Aggregate(m)

	band := g.TotalInRange(2, 3)
	assert.InDelta(t, g.ExactTotal(2).Probability+g.ExactTotal(3).Probability,
		band.Probability, 1e-12)

	// the at-least tail complements the strict-under mass
	over, _ := Totals(m, models.ScopeFullTime, 2.5)
	assert.InDelta(t, over.Probability, g.TotalAtLeast(3).Probability, 1e-9)

	assert.Equal(t, 0.0, g.ExactTotal(-1).Probability)
	assert.Equal(t, 0.0, g.ExactTotal(1000).Probability)
}

func TestTeamTotalsMatchMarginals(t *testing.T) {
	m := favouriteModel(t)
	g := Aggregate(m)

	homeOver, homeUnder := g.TeamTotal(SideHome, 1.5)
	awayOver, _ := g.TeamTotal(SideAway, 1.5)

	assert.InDelta(t, 1.0, homeOver.Probability+homeUnder.Probability, 1e-6)
	assert.Greater(t, homeOver.Probability, awayOver.Probability)
}

func TestHigherScoringHalfPartitions(t *testing.T) {
	m := levelModel(t)
	g := Aggregate(m)

	first, level, second := g.HigherScoringHalf()
	assert.InDelta(t, 1.0, first.Probability+level.Probability+second.Probability, 1e-6)

	// the second half carries 55% of the rate, so it wins the comparison
	assert.Greater(t, second.Probability, first.Probability)
}

func TestScoredInBothHalvesBounds(t *testing.T) {
	m := levelModel(t)
	g := Aggregate(m)

	both := g.ScoredInBothHalves()
	over, _ := Totals(m, models.ScopeFullTime, 1.5)

	// two separate halves scoring implies at least two goals in total
	assert.LessOrEqual(t, both.Probability, over.Probability)
	assert.Greater(t, both.Probability, 0.0)

	homeBoth := g.TeamScoredBothHalves(SideHome)
	assert.LessOrEqual(t, homeBoth.Probability, both.Probability)
}
