// Package app initializes and orchestrates the main components of the review
// service. It wires together the configuration, server, and logger.
package app

import (
	"log/slog"

	"github.com/sevigo/review-relay/internal/config"
	"github.com/sevigo/review-relay/internal/server"
)

// App holds the main application components.
type App struct {
	cfg    *config.Config
	server *server.Server
	logger *slog.Logger
}

// NewApp sets up the application with its dependencies.
func NewApp(cfg *config.Config, srv *server.Server, logger *slog.Logger) *App {
	logger.Info("review relay initialized",
		"model", cfg.AI.Model,
		"backend", cfg.AI.Backend,
		"max_attempts", cfg.Retry.MaxAttempts,
		"base_delay", cfg.Retry.BaseDelay,
		"max_delay", cfg.Retry.MaxDelay)

	return &App{
		cfg:    cfg,
		server: srv,
		logger: logger,
	}
}

// Start runs the HTTP server.
func (a *App) Start() error {
	a.logger.Info("starting review relay", "server_port", a.cfg.Server.Port)

	if err := a.server.Start(); err != nil {
		a.logger.Error("failed to start HTTP server", "error", err)
		return err
	}
	return nil
}

// Stop shuts down the application cleanly.
func (a *App) Stop() error {
	a.logger.Info("shutting down review relay")

	if err := a.server.Stop(); err != nil {
		a.logger.Error("error during HTTP server shutdown", "error", err)
		return err
	}

	a.logger.Info("review relay stopped successfully")
	return nil
}
