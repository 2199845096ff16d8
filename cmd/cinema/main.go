package main

import (
	"context"
	"log/slog"
	"os"

	_ "github.com/kirinyoku/cinego/docs"
	"github.com/kirinyoku/cinego/internal/app"
	"github.com/kirinyoku/cinego/internal/config"
)

// @title CineGo API
// @version 1.0
// @description Cinema seat booking with balance payments.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.New()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := app.NewLogger(os.Stdout, cfg.Log)
	slog.SetDefault(logger)

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create application", "error", err)
		os.Exit(1)
	}

	if err := application.Run(context.Background()); err != nil {
		logger.Error("application finished with error", "error", err)
		os.Exit(1)
	}
}
