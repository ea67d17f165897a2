package scoremodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoissonBasics(t *testing.T) {
	// zero rate concentrates all mass at zero goals
	assert.Equal(t, 1.0, Poisson(0, 0))
	assert.Equal(t, 0.0, Poisson(1, 0))

	// P(X=0) = e^-lambda
	assert.InDelta(t, 0.2725, Poisson(0, 1.3), 1e-4)

	// beyond the cached factorial range mass is truncated, not an error
	assert.Equal(t, 0.0, Poisson(maxCachedGoals+1, 1.3))
	assert.Equal(t, 0.0, Poisson(-1, 1.3))
}

func TestPoissonCDFMonotone(t *testing.T) {
	prev := 0.0
	for k := 0; k <= 10; k++ {
		cur := PoissonCDF(k, 2.6)
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
	assert.InDelta(t, 1.0, PoissonCDF(40, 2.6), 1e-9)
}

func TestBuildTableMassApproachesOne(t *testing.T) {
	rates := RatePair{Home: 1.3, Away: 1.1}

	small := Build(rates, 6, Options{})
	large := Build(rates, 12, Options{})

	assert.Less(t, small.Sum(), large.Sum())
	assert.InDelta(t, 1.0, large.Sum(), 1e-6)

	for h := 0; h <= large.MaxGoals(); h++ {
		for a := 0; a <= large.MaxGoals(); a++ {
			assert.GreaterOrEqual(t, large.Prob(h, a), 0.0)
		}
	}
}

func TestBuildTableIsProductOfMarginals(t *testing.T) {
	rates := RatePair{Home: 0.9, Away: 1.4}
	table := Build(rates, 10, Options{})

	assert.InDelta(t, Poisson(2, 0.9)*Poisson(1, 1.4), table.Prob(2, 1), 1e-12)
	assert.Equal(t, 0.0, table.Prob(11, 0))
}

func TestLowScoreCorrelationPerturbsOnlyLowCells(t *testing.T) {
	rates := RatePair{Home: 1.2, Away: 1.0}
	plain := Build(rates, 8, Options{})
	adjusted := Build(rates, 8, Options{Rho: -0.04})

	// the four cells with both counts in {0,1} move
	assert.InDelta(t, plain.Prob(0, 0)*(1-1.2*1.0*-0.04), adjusted.Prob(0, 0), 1e-12)
	assert.InDelta(t, plain.Prob(0, 1)*(1+1.2*-0.04), adjusted.Prob(0, 1), 1e-12)
	assert.InDelta(t, plain.Prob(1, 0)*(1+1.0*-0.04), adjusted.Prob(1, 0), 1e-12)
	assert.InDelta(t, plain.Prob(1, 1)*(1-(-0.04)), adjusted.Prob(1, 1), 1e-12)

	// everything else is untouched
	assert.Equal(t, plain.Prob(2, 2), adjusted.Prob(2, 2))
	assert.Equal(t, plain.Prob(0, 2), adjusted.Prob(0, 2))
}

func TestZeroInflationMovesMassToZero(t *testing.T) {
	rates := RatePair{Home: 1.3, Away: 1.3}
	plain := Build(rates, 12, Options{})
	inflated := Build(rates, 12, Options{ZeroInflation: 0.08})

	assert.Greater(t, inflated.Prob(0, 0), plain.Prob(0, 0))
	assert.Less(t, inflated.Prob(2, 1), plain.Prob(2, 1))
	assert.InDelta(t, 1.0, inflated.Sum(), 1e-6)
}

func TestSplitPreservesFullMatchRates(t *testing.T) {
	full := RatePair{Home: 1.3, Away: 1.3}
	first, second := Split(full, 0.45)

	require.InDelta(t, 0.585, first.Home, 1e-12)
	require.InDelta(t, 0.585, first.Away, 1e-12)
	assert.InDelta(t, full.Home, first.Home+second.Home, 1e-12)
	assert.InDelta(t, full.Away, first.Away+second.Away, 1e-12)
}

func TestOmegaFromDrawInterpolation(t *testing.T) {
	anchors := OmegaAnchors{DrawLow: 0.26, DrawHigh: 0.34, OmegaLow: 0, OmegaHigh: 0.10}

	assert.Equal(t, 0.0, OmegaFromDraw(0.20, anchors))
	assert.Equal(t, 0.10, OmegaFromDraw(0.40, anchors))
	assert.InDelta(t, 0.05, OmegaFromDraw(0.30, anchors), 1e-12)
}
