// Command plot scans a folder of sensor export spreadsheets and renders an
// HTML scatter chart of the extreme PM2.5 readings (zero or above 1000
// ug/m3), one series per file, with reference lines at both thresholds.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"pm25cli/internal/chart"
	"pm25cli/internal/config"
	"pm25cli/internal/infrastructure"
	"pm25cli/internal/readings"
)

func main() {
	inDir := flag.String("in", "", "input directory containing sensor exports (defaults to data/ relative to executable)")
	outFile := flag.String("out", "", "output HTML chart path (defaults to reports/extreme_values.html)")
	flag.Parse()

	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}

	if *inDir == "" {
		*inDir = paths.DataDir
	}

	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = &config.Config{
			Logging: config.LoggingConfig{
				Level:    "info",
				Output:   "both",
				FilePath: paths.GetLogPath("plot.log"),
			},
		}
	}

	*outFile = resolveChartPath(paths, cfg, *outFile)

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogger()

	ctx := infrastructure.ContextWithRunID(context.Background())

	logger.InfoContext(ctx, "Starting extreme value plot",
		slog.String("input_dir", *inDir),
		slog.String("output_file", *outFile))

	aggregator := readings.NewAggregator(readings.NewParser(logger), logger)
	combined, failures, err := aggregator.LoadFolder(ctx, *inDir)
	if err != nil {
		logger.ErrorContext(ctx, "Cannot read input directory",
			slog.String("dir", *inDir),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	for _, failure := range failures {
		logger.WarnContext(ctx, "File skipped",
			slog.String("path", failure.Path),
			slog.String("error", failure.Err.Error()))
	}

	extremes := readings.FilterExtremes(combined)
	if len(extremes) == 0 {
		logger.InfoContext(ctx, "No extreme PM2.5 values found")
		fmt.Println("No extreme PM2.5 values found in the provided folder.")
		return
	}

	perSensor := make(map[string]int)
	for _, r := range extremes {
		perSensor[r.SourceFile]++
	}
	for sensor, count := range perSensor {
		logger.InfoContext(ctx, "Extreme values detected",
			slog.String("sensor", sensor),
			slog.Int("count", count))
	}

	// Extremes without parseable timestamps have no x coordinate; an
	// all-unplottable set ends the run like any other empty result.
	if chart.SeriesCount(extremes) == 0 {
		logger.InfoContext(ctx, "No plottable extreme readings",
			slog.Int("extreme_count", len(extremes)))
		fmt.Println("No plottable extreme PM2.5 readings (timestamps missing).")
		return
	}

	renderer := chart.NewRenderer(logger)
	if err := renderer.RenderExtremes(ctx, extremes, *outFile); err != nil {
		logger.ErrorContext(ctx, "Failed to render chart",
			slog.String("path", *outFile),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Chart rendered",
		slog.String("path", *outFile),
		slog.Int("extreme_count", len(extremes)),
		slog.Int("series_count", chart.SeriesCount(extremes)),
		slog.Int("files_failed", len(failures)))
	fmt.Printf("Chart saved as %q.\n", *outFile)
}

// resolveChartPath picks the chart destination: the explicit -out flag when
// given, then the configured file name, then the fixed default.
func resolveChartPath(paths *config.Paths, cfg *config.Config, out string) string {
	if out != "" {
		return out
	}
	if name := cfg.Analysis.ExtremesChartName; name != "" {
		return paths.GetReportPath(name)
	}
	return paths.ExtremesChart
}
