// Package main provides the entry point for the calsync server.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/calsync/calsync-server/internal/config"
	"github.com/calsync/calsync-server/internal/di"
	"github.com/calsync/calsync-server/internal/logger"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	injector := di.NewContainer(cfg)

	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap server: %v\n", err)
		injector.Shutdown()
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info("Shutting down server gracefully...", "signal", sig.String())

	// The container shuts services down in reverse dependency order:
	// HTTP server first, database last.
	if report := injector.Shutdown(); !report.Succeed {
		log.Error("Shutdown error", "error", report.Error())
		os.Exit(1)
	}

	log.Info("Server stopped")
}
