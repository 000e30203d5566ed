package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"team-project-backend/internal/adapter/cli"
	"team-project-backend/internal/adapter/render/plotly"
	"team-project-backend/internal/core/ports"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	// CHARTVIEW_FILE may come from a .env next to the report
	_ = godotenv.Load()

	newRenderer := func(outDir string, openBrowser bool) ports.ChartRenderer {
		var opener ports.BrowserOpener
		if openBrowser {
			opener = plotly.NewSystemBrowser()
		}
		return plotly.NewRenderer(outDir, opener, logger)
	}

	app := cli.NewApp(newRenderer, logger)
	if err := app.Run(os.Args); err != nil {
		logger.Error("chartview failed", "error", err)
		os.Exit(1)
	}
}
