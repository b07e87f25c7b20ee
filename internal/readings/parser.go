package readings

import (
	"context"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"pm25cli/internal/errors"
	"pm25cli/pkg/contracts/domain"
)

// timestampLayouts are the accepted text layouts for the timestamp column.
// Cells holding raw Excel serial numbers are handled separately.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01-02-06 15:04",
	"1/2/06 15:04",
	"01/02/2006 15:04:05",
	"02.01.2006 15:04:05",
}

// Parser extracts PM2.5 readings from one sensor export workbook at a time.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a new parser. A nil logger falls back to slog.Default().
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// ParseFile reads one sensor export workbook and extracts its readings.
// Every returned reading carries the file's base name as its sensor
// identity. Rows whose timestamp cell cannot be parsed are kept with a nil
// timestamp; rows without a numeric PM2.5 value are skipped. Failure to
// open the workbook or to locate the two required columns returns a typed
// parsing error carrying the path.
func (p *Parser) ParseFile(ctx context.Context, path string) ([]domain.Reading, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewParsingError("failed to open workbook", err).WithContext("path", path)
	}
	defer f.Close()

	rows, header, err := findDataSheet(f)
	if err != nil {
		return nil, errors.NewParsingError("no sensor data sheet", err).WithContext("path", path)
	}

	sourceFile := filepath.Base(path)
	readings := make([]domain.Reading, 0, len(rows))

	for i := header.row + 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) <= header.pm25Col {
			continue
		}

		pm25, ok := parseValue(row[header.pm25Col])
		if !ok {
			// Empty or non-numeric value cell. Not the same as a zero
			// reading, so the row cannot participate in either condition.
			continue
		}

		var ts *time.Time
		if header.timestampCol < len(row) {
			ts = parseTimestamp(row[header.timestampCol])
		}

		readings = append(readings, domain.Reading{
			Timestamp:  ts,
			PM25:       pm25,
			SourceFile: sourceFile,
		})
	}

	p.logger.DebugContext(ctx, "parsed sensor export",
		slog.String("file", sourceFile),
		slog.Int("reading_count", len(readings)))

	return readings, nil
}

// FilterExtremes returns only the extreme readings: PM2.5 exactly zero or
// above the high threshold.
func FilterExtremes(readings []domain.Reading) []domain.Reading {
	var extremes []domain.Reading
	for _, r := range readings {
		if r.IsExtreme() {
			extremes = append(extremes, r)
		}
	}
	return extremes
}

// headerPosition locates the header row and the two required columns
type headerPosition struct {
	row          int
	timestampCol int
	pm25Col      int
}

// findDataSheet probes every sheet for a header row containing both
// required columns and returns that sheet's rows with the header position.
func findDataSheet(f *excelize.File) ([][]string, headerPosition, error) {
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			continue
		}

		if header, found := findHeaderRow(rows); found {
			return rows, header, nil
		}
	}

	return nil, headerPosition{}, errors.NewParsingError(
		"required columns not found in any sheet", nil).
		WithContext("timestamp_column", domain.TimestampColumn).
		WithContext("value_column", domain.PM25Column)
}

// findHeaderRow scans the leading rows of a sheet for one that names both
// the timestamp and the PM2.5 column.
func findHeaderRow(rows [][]string) (headerPosition, bool) {
	// Headers appear near the top; scanning a handful of rows tolerates
	// title or unit banners above the table.
	limit := len(rows)
	if limit > 10 {
		limit = 10
	}

	for i := 0; i < limit; i++ {
		tsCol, pmCol := -1, -1
		for j, cell := range rows[i] {
			switch normalizeHeader(cell) {
			case normalizeHeader(domain.TimestampColumn):
				tsCol = j
			case normalizeHeader(domain.PM25Column):
				pmCol = j
			}
		}
		if tsCol >= 0 && pmCol >= 0 {
			return headerPosition{row: i, timestampCol: tsCol, pm25Col: pmCol}, true
		}
	}

	return headerPosition{}, false
}

// normalizeHeader folds case and surrounding whitespace for header matching
func normalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// parseValue parses a PM2.5 cell, tolerating thousands separators
func parseValue(cell string) (float64, bool) {
	trimmed := strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	if trimmed == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseTimestamp parses a timestamp cell. Returns nil when no accepted
// layout matches; such readings are carried through without a date.
func parseTimestamp(cell string) *time.Time {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return nil
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return &t
		}
	}

	// Unformatted cells surface as raw Excel serial numbers.
	if serial, err := strconv.ParseFloat(trimmed, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return &t
		}
	}

	return nil
}
