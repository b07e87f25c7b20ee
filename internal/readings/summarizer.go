package readings

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"pm25cli/pkg/contracts/domain"
)

// DaySpan describes, for one sensor, the distinct calendar days on which a
// condition held. Dates is the ascending, de-duplicated, comma-joined list
// of those days in ISO format.
type DaySpan struct {
	Days  int
	Dates string
}

// SummaryRow is one line of the final summary table. A sensor appears only
// when at least one of the two conditions held on more than one distinct
// day; the other condition's count is zero-filled and its date list empty.
type SummaryRow struct {
	Sensor    string `json:"sensor" csv:"Sensor"`
	HighDays  int    `json:"high_days" csv:"Days with PM2.5 > 1000"`
	HighDates string `json:"high_dates,omitempty" csv:"Dates with PM2.5 > 1000"`
	ZeroDays  int    `json:"zero_days" csv:"Days with PM2.5 = 0"`
	ZeroDates string `json:"zero_dates,omitempty" csv:"Dates with PM2.5 = 0"`
}

// Summarizer computes per-sensor day spans and the combined summary table.
type Summarizer struct {
	logger     *slog.Logger
	dateFormat string
}

// NewSummarizer creates a new summarizer. A nil logger falls back to
// slog.Default().
func NewSummarizer(logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{logger: logger, dateFormat: domain.DateFormat}
}

// DaySpans computes, per sensor, the set of distinct calendar days on which
// cond held, keeping only sensors with strictly more than one such day.
// Readings without a parseable timestamp cannot contribute a day and are
// skipped. Per-day occurrence counts are tracked by the grouping but do not
// affect the result; a single qualifying reading marks its day.
func (s *Summarizer) DaySpans(ctx context.Context, data []domain.Reading, cond func(float64) bool) map[string]DaySpan {
	perDay := make(map[string]map[string]int)
	for _, r := range data {
		if !cond(r.PM25) {
			continue
		}
		date, ok := r.Date()
		if !ok {
			continue
		}
		key := date.Format(s.dateFormat)
		if perDay[r.SourceFile] == nil {
			perDay[r.SourceFile] = make(map[string]int)
		}
		perDay[r.SourceFile][key]++
	}

	spans := make(map[string]DaySpan)
	for sensor, days := range perDay {
		if len(days) <= domain.MinAnomalousDays {
			continue
		}
		dates := make([]string, 0, len(days))
		for d := range days {
			dates = append(dates, d)
		}
		sort.Strings(dates)
		spans[sensor] = DaySpan{
			Days:  len(dates),
			Dates: strings.Join(dates, ", "),
		}
	}

	return spans
}

// BuildSummaryTable runs the day-span computation for the two fixed
// conditions (PM2.5 > 1000 and PM2.5 = 0), outer-joins the results, and
// returns the table sorted by sensor name. An empty table means no sensor
// qualified under either condition.
func (s *Summarizer) BuildSummaryTable(ctx context.Context, data []domain.Reading) []SummaryRow {
	high := s.DaySpans(ctx, data, domain.IsHigh)
	zero := s.DaySpans(ctx, data, domain.IsZero)

	sensors := make(map[string]struct{}, len(high)+len(zero))
	for sensor := range high {
		sensors[sensor] = struct{}{}
	}
	for sensor := range zero {
		sensors[sensor] = struct{}{}
	}

	rows := make([]SummaryRow, 0, len(sensors))
	for sensor := range sensors {
		row := SummaryRow{Sensor: sensor}
		if span, ok := high[sensor]; ok {
			row.HighDays = span.Days
			row.HighDates = span.Dates
		}
		if span, ok := zero[sensor]; ok {
			row.ZeroDays = span.Days
			row.ZeroDates = span.Dates
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Sensor < rows[j].Sensor
	})

	s.logger.InfoContext(ctx, "built summary table",
		slog.Int("sensor_count", len(rows)),
		slog.Int("high_sensors", len(high)),
		slog.Int("zero_sensors", len(zero)))

	return rows
}
