package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yourusername/fairline/internal/calibrate"
	"github.com/yourusername/fairline/internal/market"
	"github.com/yourusername/fairline/internal/metrics"
	"github.com/yourusername/fairline/internal/models"
	"github.com/yourusername/fairline/internal/scoremodel"
)

// SheetRow is one priced selection on a market sheet. Odds are rounded to
// three decimal places for display; the probability field stays exact.
type SheetRow struct {
	Market      string          `json:"market"`
	Selection   string          `json:"selection"`
	Line        *float64        `json:"line,omitempty"`
	Probability float64         `json:"probability"`
	FairOdds    decimal.Decimal `json:"fair_odds"`
}

// MarketSheet is the full derivative market catalog priced from one
// calibrated model.
type MarketSheet struct {
	ID          uuid.UUID           `json:"id"`
	GeneratedAt time.Time           `json:"generated_at"`
	Full        scoremodel.RatePair `json:"rates_full"`
	FirstHalf   scoremodel.RatePair `json:"rates_first_half"`
	SecondHalf  scoremodel.RatePair `json:"rates_second_half"`
	Rows        []SheetRow          `json:"rows"`
}

var (
	sheetTotalLines    = []float64{1.5, 2.5, 3.5}
	sheetHalfLines     = []float64{0.5, 1.5}
	sheetHandicapLines = []float64{-2, -1.75, -1.5, -1.25, -1, -0.75, -0.5, -0.25, 0, 0.25, 0.5, 0.75, 1, 1.25, 1.5, 1.75, 2}
	sheetTeamLines     = []float64{0.5, 1.5, 2.5}
	sheetCorrectScores = 3 // prices every scoreline up to N-N
	sheetExactGoalsMax = 6
)

// Sheet calibrates the request and prices the full market catalog.
func (s *PricingService) Sheet(req PriceRequest) (*MarketSheet, error) {
	model, err := s.Calibrate(req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	sheet := &MarketSheet{
		ID:          uuid.New(),
		GeneratedAt: time.Now().UTC(),
		Full:        model.Full,
		FirstHalf:   model.First,
		SecondHalf:  model.Second,
	}

	s.appendResultMarkets(sheet, model)
	s.appendTotalsMarkets(sheet, model)
	s.appendHandicapMarkets(sheet, model)
	s.appendAggregateMarkets(sheet, model)

	metrics.RecordSheetPriced(time.Since(start).Seconds())
	s.log.WithFields(map[string]interface{}{
		"sheet_id": sheet.ID,
		"rows":     len(sheet.Rows),
	}).Info("priced market sheet")
	return sheet, nil
}

func (s *PricingService) appendResultMarkets(sheet *MarketSheet, model *calibrate.Model) {
	home, draw, away := market.MatchResult(model)
	sheet.add("Match Result", "1", nil, home)
	sheet.add("Match Result", "X", nil, draw)
	sheet.add("Match Result", "2", nil, away)

	h1Home, h1Draw, h1Away := market.PeriodResult(model, models.ScopeFirstHalf)
	sheet.add("1st Half Result", "1", nil, h1Home)
	sheet.add("1st Half Result", "X", nil, h1Draw)
	sheet.add("1st Half Result", "2", nil, h1Away)

	homeOrDraw, homeOrAway, drawOrAway := market.DoubleChance(model)
	sheet.add("Double Chance", "1X", nil, homeOrDraw)
	sheet.add("Double Chance", "12", nil, homeOrAway)
	sheet.add("Double Chance", "X2", nil, drawOrAway)

	if dnbHome, dnbAway, err := market.DrawNoBet(model); err == nil {
		sheet.add("Draw No Bet", "1", nil, dnbHome)
		sheet.add("Draw No Bet", "2", nil, dnbAway)
	}

	for _, ht := range []models.ResultClass{models.HomeWin, models.Draw, models.AwayWin} {
		for _, ft := range []models.ResultClass{models.HomeWin, models.Draw, models.AwayWin} {
			p := market.HalfTimeFullTime(model, ht, ft)
			sheet.add("Half Time / Full Time", fmt.Sprintf("%s/%s", ht, ft), nil, p)
		}
	}

	bttsYes, bttsNo := market.BothTeamsToScore(model, models.ScopeFullTime)
	sheet.add("Both Teams To Score", "Yes", nil, bttsYes)
	sheet.add("Both Teams To Score", "No", nil, bttsNo)

	for h := 0; h <= sheetCorrectScores; h++ {
		for a := 0; a <= sheetCorrectScores; a++ {
			p := market.CorrectScore(model, models.Score{Home: h, Away: a})
			sheet.add("Correct Score", fmt.Sprintf("%d-%d", h, a), nil, p)
		}
	}
}

func (s *PricingService) appendTotalsMarkets(sheet *MarketSheet, model *calibrate.Model) {
	for _, line := range sheetTotalLines {
		over, under := market.Totals(model, models.ScopeFullTime, line)
		sheet.add("Total Goals", "Over", ptr(line), over)
		sheet.add("Total Goals", "Under", ptr(line), under)
	}
	for _, line := range sheetHalfLines {
		over, under := market.Totals(model, models.ScopeFirstHalf, line)
		sheet.add("1st Half Total Goals", "Over", ptr(line), over)
		sheet.add("1st Half Total Goals", "Under", ptr(line), under)
	}
}

func (s *PricingService) appendHandicapMarkets(sheet *MarketSheet, model *calibrate.Model) {
	for _, line := range sheetHandicapLines {
		if market.IsQuarterLine(line) {
			twoWay, err := market.QuarterLineHandicap(model, line)
			if err != nil {
				continue
			}
			sheet.add("Asian Handicap", "Home", ptr(line), twoWay.Home)
			sheet.add("Asian Handicap", "Away", ptr(line), twoWay.Away)
			continue
		}
		triple, err := market.AsianHandicap(model, line)
		if err != nil {
			continue
		}
		sheet.add("Asian Handicap", "Home", ptr(line), triple.HomePrice())
		sheet.add("Asian Handicap", "Away", ptr(line), triple.AwayPrice())
	}
}

func (s *PricingService) appendAggregateMarkets(sheet *MarketSheet, model *calibrate.Model) {
	agg := market.Aggregate(model)

	for k := 0; k <= sheetExactGoalsMax; k++ {
		sheet.add("Exact Total Goals", fmt.Sprintf("%d", k), nil, agg.ExactTotal(k))
	}
	sheet.add("Exact Total Goals", fmt.Sprintf("%d+", sheetExactGoalsMax+1), nil, agg.TotalAtLeast(sheetExactGoalsMax+1))

	sheet.add("Goals Range", "0-1", nil, agg.TotalInRange(0, 1))
	sheet.add("Goals Range", "2-3", nil, agg.TotalInRange(2, 3))
	sheet.add("Goals Range", "4-6", nil, agg.TotalInRange(4, 6))
	sheet.add("Goals Range", "7+", nil, agg.TotalAtLeast(7))

	for _, line := range sheetTeamLines {
		over, under := agg.TeamTotal(market.SideHome, line)
		sheet.add("Home Team Total", "Over", ptr(line), over)
		sheet.add("Home Team Total", "Under", ptr(line), under)
		over, under = agg.TeamTotal(market.SideAway, line)
		sheet.add("Away Team Total", "Over", ptr(line), over)
		sheet.add("Away Team Total", "Under", ptr(line), under)
	}

	first, level, second := agg.HigherScoringHalf()
	sheet.add("Highest Scoring Half", "1st Half", nil, first)
	sheet.add("Highest Scoring Half", "Equal", nil, level)
	sheet.add("Highest Scoring Half", "2nd Half", nil, second)

	sheet.add("Goal In Both Halves", "Yes", nil, agg.ScoredInBothHalves())
	sheet.add("Home Scores In Both Halves", "Yes", nil, agg.TeamScoredBothHalves(market.SideHome))
	sheet.add("Away Scores In Both Halves", "Yes", nil, agg.TeamScoredBothHalves(market.SideAway))
}

func (sheet *MarketSheet) add(marketName, selection string, line *float64, price models.MarketPrice) {
	sheet.Rows = append(sheet.Rows, SheetRow{
		Market:      marketName,
		Selection:   selection,
		Line:        line,
		Probability: price.Probability,
		FairOdds:    decimal.NewFromFloat(price.FairOdds).Round(3),
	})
}

func ptr(v float64) *float64 {
	return &v
}
