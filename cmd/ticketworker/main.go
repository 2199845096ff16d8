// Command ticketworker consumes booking events and logs one ticket record
// per confirmed or cancelled booking.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/kirinyoku/cinego/internal/app"
	"github.com/kirinyoku/cinego/internal/config"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := app.NewLogger(os.Stdout, cfg.Log).With("component", "ticketworker")

	if err := app.RunWorker(context.Background(), cfg, logger); err != nil {
		logger.Error("ticket worker finished with error", "error", err)
		os.Exit(1)
	}
}
