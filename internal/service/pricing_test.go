package service

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/fairline/internal/config"
	"github.com/yourusername/fairline/internal/models"
)

func newTestService(t *testing.T) *PricingService {
	t.Helper()
	cfg, err := config.LoadWithDefaults("does-not-exist.yaml")
	require.NoError(t, err)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	svc, err := NewPricingService(cfg, log)
	require.NoError(t, err)
	return svc
}

func directRequest(supremacy, expectancy float64) PriceRequest {
	return PriceRequest{Supremacy: &supremacy, Expectancy: &expectancy}
}

func marketRequest(home, draw, away, line, over, under float64) PriceRequest {
	return PriceRequest{
		HomeOdds: &home, DrawOdds: &draw, AwayOdds: &away,
		TotalLine: &line, OverOdds: &over, UnderOdds: &under,
	}
}

func TestRequestShapeDetection(t *testing.T) {
	assert.True(t, directRequest(0, 2.6).IsDirect())
	assert.False(t, directRequest(0, 2.6).IsMarket())

	req := marketRequest(1.80, 3.60, 4.50, 2.5, 1.95, 1.95)
	assert.True(t, req.IsMarket())
	assert.False(t, req.IsDirect())

	partial := PriceRequest{HomeOdds: ptr(1.80)}
	assert.False(t, partial.IsDirect())
	assert.False(t, partial.IsMarket())
}

func TestCalibrateDirectShape(t *testing.T) {
	svc := newTestService(t)

	model, err := svc.Calibrate(directRequest(0, 2.6))
	require.NoError(t, err)
	assert.InDelta(t, 1.3, model.Full.Home, 1e-12)
	assert.InDelta(t, 1.3, model.Full.Away, 1e-12)
}

func TestCalibrateMarketShape(t *testing.T) {
	svc := newTestService(t)

	model, err := svc.Calibrate(marketRequest(1.80, 3.60, 4.50, 2.5, 1.95, 1.95))
	require.NoError(t, err)
	assert.Greater(t, model.Full.Home, model.Full.Away)
}

func TestCalibrateServesRepeatRequestsFromCache(t *testing.T) {
	svc := newTestService(t)
	req := directRequest(0.2, 2.4)

	first, err := svc.Calibrate(req)
	require.NoError(t, err)
	second, err := svc.Calibrate(req)
	require.NoError(t, err)

	// same immutable model instance, not a recalibration
	assert.Same(t, first, second)
}

func TestCalibrateRejectsAmbiguousRequest(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Calibrate(PriceRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidOdds)
	assert.True(t, IsValidationError(err))
}

func TestCalibrateRejectsDegenerateOddsBeforeSearching(t *testing.T) {
	svc := newTestService(t)

	// a price of exactly 1.00 implies certainty and never reaches calibration
	_, err := svc.Calibrate(marketRequest(1.00, 3.60, 4.50, 2.5, 1.95, 1.95))
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidOdds)
}

func TestQueryEvaluatesCondition(t *testing.T) {
	svc := newTestService(t)

	cond := models.ResultCondition(models.ScopeFullTime, models.Draw)
	price, err := svc.Query(directRequest(0, 2.6), cond)
	require.NoError(t, err)

	assert.Greater(t, price.Probability, 0.24)
	assert.Less(t, price.Probability, 0.28)
	assert.InDelta(t, 1/price.Probability, price.FairOdds, 1e-9)
}

func TestQueryHandicapDispatch(t *testing.T) {
	svc := newTestService(t)
	req := directRequest(0.5, 2.7)

	triple, twoWay, err := svc.QueryHandicap(req, -0.5)
	require.NoError(t, err)
	require.NotNil(t, triple)
	assert.Nil(t, twoWay)
	assert.InDelta(t, 1.0, triple.Home+triple.Push+triple.Away, 1e-6)

	triple, twoWay, err = svc.QueryHandicap(req, -0.75)
	require.NoError(t, err)
	assert.Nil(t, triple)
	require.NotNil(t, twoWay)
	assert.Equal(t, -0.75, twoWay.Line)
}

func TestSheetPricesFullCatalog(t *testing.T) {
	svc := newTestService(t)

	sheet, err := svc.Sheet(directRequest(0, 2.6))
	require.NoError(t, err)

	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", sheet.ID.String())
	assert.False(t, sheet.GeneratedAt.IsZero())
	assert.InDelta(t, 1.3, sheet.Full.Home, 1e-12)
	assert.InDelta(t, 0.585, sheet.FirstHalf.Home, 1e-12)

	markets := map[string]int{}
	for _, row := range sheet.Rows {
		markets[row.Market]++
	}
	assert.Equal(t, 3, markets["Match Result"])
	assert.Equal(t, 3, markets["Double Chance"])
	assert.Equal(t, 2, markets["Draw No Bet"])
	assert.Equal(t, 9, markets["Half Time / Full Time"])
	assert.Equal(t, 16, markets["Correct Score"])
	assert.Equal(t, 6, markets["Total Goals"])
	assert.Equal(t, 34, markets["Asian Handicap"])
	assert.Equal(t, 8, markets["Exact Total Goals"])
	assert.Equal(t, 3, markets["Highest Scoring Half"])
}

func TestSheetRowsCarryRoundedOdds(t *testing.T) {
	svc := newTestService(t)

	sheet, err := svc.Sheet(directRequest(0, 2.6))
	require.NoError(t, err)

	for _, row := range sheet.Rows {
		assert.GreaterOrEqual(t, row.Probability, 0.0)
		assert.LessOrEqual(t, row.Probability, 1.0)
		// rounded to three places, never raw float noise
		assert.GreaterOrEqual(t, row.FairOdds.Exponent(), int32(-3))
	}

	// a level match prices home and away identically
	var home, away SheetRow
	for _, row := range sheet.Rows {
		if row.Market == "Match Result" && row.Selection == "1" {
			home = row
		}
		if row.Market == "Match Result" && row.Selection == "2" {
			away = row
		}
	}
	assert.InDelta(t, home.Probability, away.Probability, 1e-9)
	assert.True(t, home.FairOdds.Equal(away.FairOdds))
}

func TestSheetPropagatesCalibrationFailure(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Sheet(directRequest(5.0, 2.6))
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestIsValidationErrorClassification(t *testing.T) {
	assert.True(t, IsValidationError(models.ErrInvalidOdds))
	assert.True(t, IsValidationError(models.ErrInvalidLine))
	assert.True(t, IsValidationError(models.ErrNoConsistentModel))
	assert.True(t, IsValidationError(models.ErrUnpriceable))
	assert.False(t, IsValidationError(assert.AnError))
	assert.False(t, IsValidationError(nil))
}
