// Command summary scans a folder of sensor export spreadsheets and writes a
// CSV table of sensors whose PM2.5 readings were extreme (zero or above
// 1000 ug/m3) on more than one calendar day.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"pm25cli/internal/config"
	"pm25cli/internal/exporter"
	"pm25cli/internal/infrastructure"
	"pm25cli/internal/readings"
)

func main() {
	inDir := flag.String("in", "", "input directory containing sensor exports (defaults to data/ relative to executable)")
	outFile := flag.String("out", "", "output CSV path (defaults to reports/summary_table_with_zeros.csv)")
	withDates := flag.Bool("dates", false, "include the anomalous date lists in the output")
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
				FilePath: paths.GetLogPath("summary.log"),
			},
		}
	}

	*outFile = resolveOutputPath(paths, cfg, *outFile)

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogger()

	ctx := infrastructure.ContextWithRunID(context.Background())

	logger.InfoContext(ctx, "Starting extreme value summary",
		slog.String("input_dir", *inDir),
		slog.String("output_file", *outFile),
		slog.Bool("with_dates", *withDates))

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

	if len(combined) == 0 {
		logger.InfoContext(ctx, "No data found in the provided folder")
		fmt.Println("No data found in the provided folder.")
		return
	}

	summarizer := readings.NewSummarizer(logger)
	table := summarizer.BuildSummaryTable(ctx, combined)
	if len(table) == 0 {
		logger.InfoContext(ctx, "No sensors found with extreme values spanning more than one day")
		fmt.Println("No sensors found with PM2.5 > 1000 or PM2.5 = 0 spanning more than one day.")
		return
	}

	fmt.Println("\nSummary Table: PM2.5 > 1000 and PM2.5 = 0 for More Than One Day")
	fmt.Print(exporter.FormatSummaryText(table, *withDates))

	writer := exporter.NewCSVWriter(paths)
	if err := writer.WriteSummaryCSV(*outFile, table, *withDates); err != nil {
		logger.ErrorContext(ctx, "Failed to write summary CSV",
			slog.String("path", *outFile),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Summary table saved",
		slog.String("path", *outFile),
		slog.Int("sensor_count", len(table)),
		slog.Int("files_failed", len(failures)))
	fmt.Printf("\nSummary table saved as %q.\n", *outFile)
}

// resolveOutputPath picks the summary CSV destination: the explicit -out
// flag when given, then the configured file name, then the fixed default.
func resolveOutputPath(paths *config.Paths, cfg *config.Config, out string) string {
	if out != "" {
		return out
	}
	if name := cfg.Analysis.SummaryCSVName; name != "" {
		return paths.GetReportPath(name)
	}
	return paths.SummaryCSV
}
