package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yourusername/fairline/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the pricing engine over HTTP",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	srv := server.New(cfg, pricing, appLogger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		appLogger.WithField("signal", sig.String()).Info("shutting down")
		return srv.Stop()
	}
}
