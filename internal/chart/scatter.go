// Package chart renders the extreme-readings scatter chart. It is a
// presentation aid only; no pipeline decision depends on its output.
package chart

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"pm25cli/internal/errors"
	"pm25cli/pkg/contracts/domain"
)

const timestampLayout = "2006-01-02 15:04:05"

// Renderer draws extreme PM2.5 readings as a timestamp-vs-value scatter,
// one series per source file, with horizontal reference lines at the zero
// and high thresholds.
type Renderer struct {
	logger *slog.Logger
}

// NewRenderer creates a new chart renderer. A nil logger falls back to
// slog.Default().
func NewRenderer(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{logger: logger}
}

// RenderExtremes writes a self-contained HTML scatter chart of the given
// extreme readings to outPath. Readings without a parseable timestamp have
// no x coordinate and are skipped.
func (r *Renderer) RenderExtremes(ctx context.Context, data []domain.Reading, outPath string) error {
	series := groupBySensor(data)
	if len(series) == 0 {
		return errors.NewValidationError("no plottable extreme readings")
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "PM2.5 Extreme Values",
			Width:     "1400px",
			Height:    "700px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "PM2.5 Extreme Values (0 or >1000) Across Files",
		}),
		charts.WithXAxisOpts(opts.XAxis{Type: "time", Name: "Timestamp"}),
		charts.WithYAxisOpts(opts.YAxis{Name: domain.PM25Column}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	sensors := make([]string, 0, len(series))
	for sensor := range series {
		sensors = append(sensors, sensor)
	}
	sort.Strings(sensors)

	for i, sensor := range sensors {
		if i == 0 {
			// Reference lines are chart-wide; attaching them to a single
			// series avoids duplicated legend entries.
			scatter.AddSeries(sensor, series[sensor],
				charts.WithMarkLineNameYAxisItemOpts(
					opts.MarkLineNameYAxisItem{Name: "Threshold > 1000", YAxis: domain.HighThreshold},
					opts.MarkLineNameYAxisItem{Name: "PM2.5 = 0", YAxis: domain.ZeroValue},
				))
			continue
		}
		scatter.AddSeries(sensor, series[sensor])
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.NewStorageError("failed to create chart directory", err)
		}
	}

	file, err := os.Create(outPath)
	if err != nil {
		return errors.NewStorageError("failed to create chart file", err)
	}
	defer file.Close()

	if err := scatter.Render(file); err != nil {
		return errors.NewStorageError("failed to render chart", err)
	}

	r.logger.InfoContext(ctx, "rendered extreme values chart",
		slog.String("path", outPath),
		slog.Int("series_count", len(sensors)))

	return nil
}

// groupBySensor builds one scatter series per source file, skipping
// readings that have no timestamp.
func groupBySensor(data []domain.Reading) map[string][]opts.ScatterData {
	series := make(map[string][]opts.ScatterData)
	for _, reading := range data {
		if reading.Timestamp == nil {
			continue
		}
		series[reading.SourceFile] = append(series[reading.SourceFile], opts.ScatterData{
			Value:      []interface{}{reading.Timestamp.Format(timestampLayout), reading.PM25},
			SymbolSize: 6,
		})
	}
	return series
}

// SeriesCount reports how many files would contribute a series, which the
// CLI logs before rendering.
func SeriesCount(data []domain.Reading) int {
	return len(groupBySensor(data))
}
