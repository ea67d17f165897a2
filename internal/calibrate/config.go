package calibrate

import (
	"fmt"

	"github.com/yourusername/fairline/internal/config"
	"github.com/yourusername/fairline/internal/scoremodel"
)

// FromConfig converts the engine configuration section into calibration
// parameters.
func FromConfig(cfg *config.EngineConfig) (Params, error) {
	if cfg == nil {
		return Params{}, fmt.Errorf("engine config is nil")
	}
	if cfg.FirstHalfWeight <= 0 || cfg.FirstHalfWeight >= 1 {
		return Params{}, fmt.Errorf("first_half_weight %v outside (0, 1)", cfg.FirstHalfWeight)
	}
	return Params{
		FirstHalfWeight:   cfg.FirstHalfWeight,
		MaxGoalsPerPeriod: cfg.MaxGoalsPerPeriod,
		SearchMaxGoals:    cfg.SearchMaxGoals,
		TotalStep:         cfg.TotalStep,
		SupremacyStep:     cfg.SupremacyStep,
		MaxIterations:     cfg.MaxIterations,
		InitialTotal:      cfg.InitialTotal,
		Rho:               cfg.DixonColesRho,
		OmegaAnchors: scoremodel.OmegaAnchors{
			DrawLow:   cfg.OmegaDrawLow,
			DrawHigh:  cfg.OmegaDrawHigh,
			OmegaLow:  cfg.OmegaLow,
			OmegaHigh: cfg.OmegaHigh,
		},
	}, nil
}
