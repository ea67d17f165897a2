// Package service orchestrates the pricing pipeline: quoted prices in,
// de-vig, calibration, and derivative market sheets out.
package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/fairline/internal/calibrate"
	"github.com/yourusername/fairline/internal/config"
	"github.com/yourusername/fairline/internal/devig"
	"github.com/yourusername/fairline/internal/logger"
	"github.com/yourusername/fairline/internal/market"
	"github.com/yourusername/fairline/internal/metrics"
	"github.com/yourusername/fairline/internal/models"
)

// PriceRequest is the caller-supplied evidence for one match. Exactly one of
// the two shapes must be populated: the analytic supremacy/expectancy pair,
// or the six-value quoted odds tuple.
type PriceRequest struct {
	Supremacy  *float64 `json:"supremacy,omitempty"`
	Expectancy *float64 `json:"expectancy,omitempty"`

	HomeOdds  *float64 `json:"home_odds,omitempty"`
	DrawOdds  *float64 `json:"draw_odds,omitempty"`
	AwayOdds  *float64 `json:"away_odds,omitempty"`
	TotalLine *float64 `json:"total_line,omitempty"`
	OverOdds  *float64 `json:"over_odds,omitempty"`
	UnderOdds *float64 `json:"under_odds,omitempty"`
}

// IsDirect reports whether the request carries the analytic shape.
func (r PriceRequest) IsDirect() bool {
	return r.Supremacy != nil && r.Expectancy != nil
}

// IsMarket reports whether the request carries the quoted-odds shape.
func (r PriceRequest) IsMarket() bool {
	return r.HomeOdds != nil && r.DrawOdds != nil && r.AwayOdds != nil &&
		r.TotalLine != nil && r.OverOdds != nil && r.UnderOdds != nil
}

func (r PriceRequest) cacheKey() string {
	f := func(p *float64) float64 {
		if p == nil {
			return math.NaN()
		}
		return *p
	}
	return fmt.Sprintf("%v|%v|%v|%v|%v|%v|%v|%v",
		f(r.Supremacy), f(r.Expectancy),
		f(r.HomeOdds), f(r.DrawOdds), f(r.AwayOdds),
		f(r.TotalLine), f(r.OverOdds), f(r.UnderOdds))
}

// PricingService owns the calibrator and a short-lived model cache. A cached
// model is immutable, so serving it to concurrent queries needs no locking.
type PricingService struct {
	calibrator *calibrate.Calibrator
	modelCache *cache.Cache
	log        *logrus.Entry
}

// NewPricingService builds the service from configuration.
func NewPricingService(cfg *config.Config, log *logrus.Logger) (*PricingService, error) {
	params, err := calibrate.FromConfig(&cfg.Engine)
	if err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	ttl := time.Duration(cfg.Engine.CacheTTLSeconds) * time.Second
	return &PricingService{
		calibrator: calibrate.New(params),
		modelCache: cache.New(ttl, 2*ttl),
		log:        logger.WithComponent(log, "pricing"),
	}, nil
}

// Calibrate resolves a request into a calibrated model, serving repeat
// requests from the TTL cache. A failed calibration is reported once and
// never retried with different seeds.
func (s *PricingService) Calibrate(req PriceRequest) (*calibrate.Model, error) {
	key := req.cacheKey()
	if cached, found := s.modelCache.Get(key); found {
		metrics.RecordModelCacheHit()
		return cached.(*calibrate.Model), nil
	}

	model, shape, err := s.calibrateUncached(req)
	if err != nil {
		metrics.RecordCalibrationFailure(shape)
		s.log.WithError(err).WithField("shape", shape).Warn("calibration failed")
		return nil, err
	}

	s.modelCache.SetDefault(key, model)
	s.log.WithFields(logrus.Fields{
		"shape":       shape,
		"lambda_home": model.Full.Home,
		"lambda_away": model.Full.Away,
	}).Info("calibrated model")
	return model, nil
}

func (s *PricingService) calibrateUncached(req PriceRequest) (*calibrate.Model, string, error) {
	start := time.Now()
	switch {
	case req.IsDirect():
		model, err := s.calibrator.Direct(*req.Supremacy, *req.Expectancy)
		if err != nil {
			return nil, "direct", err
		}
		metrics.RecordCalibration("direct", time.Since(start).Seconds())
		return model, "direct", nil

	case req.IsMarket():
		result, err := devig.Fair3(*req.HomeOdds, *req.DrawOdds, *req.AwayOdds)
		if err != nil {
			return nil, "market", fmt.Errorf("result market: %w", err)
		}
		over, _, err := devig.Fair2(*req.OverOdds, *req.UnderOdds)
		if err != nil {
			return nil, "market", fmt.Errorf("totals market: %w", err)
		}
		model, err := s.calibrator.FromMarkets(result, *req.TotalLine, over)
		if err != nil {
			return nil, "market", err
		}
		metrics.RecordCalibration("market", time.Since(start).Seconds())
		return model, "market", nil
	}
	return nil, "invalid", fmt.Errorf("request must carry either supremacy/expectancy or the full odds tuple: %w", models.ErrInvalidOdds)
}

// Query calibrates (or re-uses) a model and evaluates one market condition.
func (s *PricingService) Query(req PriceRequest, cond models.MarketCondition) (models.MarketPrice, error) {
	model, err := s.Calibrate(req)
	if err != nil {
		return models.MarketPrice{}, err
	}
	metrics.RecordMarketQuery()
	return market.Price(model, cond), nil
}

// QueryHandicap calibrates (or re-uses) a model and settles a handicap line,
// dispatching quarter lines to the split-settlement construction.
func (s *PricingService) QueryHandicap(req PriceRequest, line float64) (*models.HandicapPrice, *models.TwoWayPrice, error) {
	model, err := s.Calibrate(req)
	if err != nil {
		return nil, nil, err
	}
	metrics.RecordMarketQuery()

	if market.IsQuarterLine(line) {
		twoWay, err := market.QuarterLineHandicap(model, line)
		if err != nil {
			return nil, nil, err
		}
		return nil, &twoWay, nil
	}
	triple, err := market.AsianHandicap(model, line)
	if err != nil {
		return nil, nil, err
	}
	return &triple, nil, nil
}

// IsValidationError reports whether the error is recoverable by re-prompting
// the caller for different inputs, as opposed to an internal fault.
func IsValidationError(err error) bool {
	return errors.Is(err, models.ErrInvalidOdds) ||
		errors.Is(err, models.ErrInvalidLine) ||
		errors.Is(err, models.ErrNoConsistentModel) ||
		errors.Is(err, models.ErrUnpriceable)
}
