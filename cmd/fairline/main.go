// Package main provides the fairline CLI: price a match from quoted odds or
// serve the pricing engine over HTTP.
package main

import (
	"fmt"
	"log"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/fairline/internal/config"
	"github.com/yourusername/fairline/internal/logger"
	"github.com/yourusername/fairline/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	appLogger  *logrus.Logger
	cfg        *config.Config
	pricing    *service.PricingService
)

var rootCmd = &cobra.Command{
	Use:   "fairline",
	Short: "Fair-odds pricing for soccer derivative markets",
	Long: `Fairline calibrates a two-period Poisson scoring model from partial
bookmaker prices and prices dozens of derivative markets from it.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setup(); err != nil {
			return fmt.Errorf("failed to set up: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func setup() error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	appLogger = logger.NewLogger(cfg.App.LogLevel)
	pricing, err = service.NewPricingService(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to build pricing service: %w", err)
	}
	return nil
}
