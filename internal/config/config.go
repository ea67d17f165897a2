// Package config provides configuration management for the Fairline pricing
// engine.
package config

import "fmt"

// Config represents the complete application configuration
type Config struct {
	App    AppConfig    `mapstructure:"app" validate:"required"`
	Engine EngineConfig `mapstructure:"engine" validate:"required"`
	Server ServerConfig `mapstructure:"server" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// EngineConfig holds the scoring-model and calibration constants. The period
// split is a modelling simplification carried from the source engine: a
// configurable constant, never a per-match signal.
type EngineConfig struct {
	FirstHalfWeight   float64 `mapstructure:"first_half_weight" validate:"required,gt=0,lt=1"`
	MaxGoalsPerPeriod int     `mapstructure:"max_goals_per_period" validate:"required,min=6,max=20"`
	SearchMaxGoals    int     `mapstructure:"search_max_goals" validate:"required,min=8,max=25"`
	TotalStep         float64 `mapstructure:"total_step" validate:"required,gt=0"`
	SupremacyStep     float64 `mapstructure:"supremacy_step" validate:"required,gt=0"`
	MaxIterations     int     `mapstructure:"max_iterations" validate:"required,gt=0"`
	InitialTotal      float64 `mapstructure:"initial_total" validate:"required,gt=0"`
	DixonColesRho     float64 `mapstructure:"dixon_coles_rho" validate:"gte=-0.2,lte=0.2"`
	OmegaDrawLow      float64 `mapstructure:"omega_draw_low" validate:"gte=0,lte=1"`
	OmegaDrawHigh     float64 `mapstructure:"omega_draw_high" validate:"gte=0,lte=1"`
	OmegaLow          float64 `mapstructure:"omega_low" validate:"gte=0,lt=1"`
	OmegaHigh         float64 `mapstructure:"omega_high" validate:"gte=0,lt=1"`
	CacheTTLSeconds   int     `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
}

// ServerConfig represents the HTTP API configuration
type ServerConfig struct {
	Port                   int      `mapstructure:"port" validate:"required,min=1,max=65535"`
	RateLimitPerSecond     float64  `mapstructure:"rate_limit_per_second" validate:"required,gt=0"`
	RateLimitBurst         int      `mapstructure:"rate_limit_burst" validate:"required,gt=0"`
	AllowedOrigins         []string `mapstructure:"allowed_origins"`
	ReadTimeoutSeconds     int      `mapstructure:"read_timeout_seconds" validate:"required,gt=0"`
	WriteTimeoutSeconds    int      `mapstructure:"write_timeout_seconds" validate:"required,gt=0"`
	ShutdownTimeoutSeconds int      `mapstructure:"shutdown_timeout_seconds" validate:"required,gt=0"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// ListenAddress returns the HTTP API bind address
func (c *Config) ListenAddress() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
