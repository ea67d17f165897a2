// Package config provides configuration management for the Fairline pricing
// engine.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	// Register custom validation functions
	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	// Additional cross-field validations
	if err := validateCrossField(cfg); err != nil {
		return err
	}

	return nil
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	env := fl.Field().String()
	switch env {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	level := fl.Field().String()
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	// The zero-inflation anchors must describe a non-degenerate, increasing
	// interpolation segment.
	if cfg.Engine.OmegaDrawLow >= cfg.Engine.OmegaDrawHigh {
		return fmt.Errorf("engine omega_draw_low must be below omega_draw_high")
	}
	if cfg.Engine.OmegaLow > cfg.Engine.OmegaHigh {
		return fmt.Errorf("engine omega_low must not exceed omega_high")
	}

	// The full-match search grid must cover at least the per-period ceiling,
	// otherwise the calibration targets see truncated mass the period tables
	// would not.
	if cfg.Engine.SearchMaxGoals < cfg.Engine.MaxGoalsPerPeriod {
		return fmt.Errorf("engine search_max_goals must be at least max_goals_per_period")
	}

	if cfg.Server.RateLimitBurst < int(cfg.Server.RateLimitPerSecond) {
		return fmt.Errorf("server rate_limit_burst must be at least rate_limit_per_second")
	}

	return nil
}

// formatValidationErrors converts validator errors into a readable message
func formatValidationErrors(errs validator.ValidationErrors) error {
	msg := "configuration validation failed:"
	for _, err := range errs {
		msg += fmt.Sprintf(" field '%s' failed on '%s' rule;", err.Namespace(), err.Tag())
	}
	return fmt.Errorf("%s", msg)
}
