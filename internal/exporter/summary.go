package exporter

import (
	"fmt"
	"strconv"
	"strings"

	"pm25cli/internal/readings"
)

// Column headers of the summary CSV. The wording is a fixed convention of
// the report consumers.
const (
	headerSensor    = "Sensor"
	headerHighDays  = "Days with PM2.5 > 1000"
	headerHighDates = "Dates with PM2.5 > 1000"
	headerZeroDays  = "Days with PM2.5 = 0"
	headerZeroDates = "Dates with PM2.5 = 0"
)

// SummaryHeaders returns the CSV header row. The date-list columns are
// present only in the dates-reporting variant.
func SummaryHeaders(withDates bool) []string {
	if withDates {
		return []string{headerSensor, headerHighDays, headerHighDates, headerZeroDays, headerZeroDates}
	}
	return []string{headerSensor, headerHighDays, headerZeroDays}
}

// SummaryRecords renders summary rows as CSV records matching
// SummaryHeaders. Counts are emitted as integers; absent date lists stay
// empty strings.
func SummaryRecords(rows []readings.SummaryRow, withDates bool) [][]string {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		if withDates {
			records = append(records, []string{
				row.Sensor,
				strconv.Itoa(row.HighDays),
				row.HighDates,
				strconv.Itoa(row.ZeroDays),
				row.ZeroDates,
			})
			continue
		}
		records = append(records, []string{
			row.Sensor,
			strconv.Itoa(row.HighDays),
			strconv.Itoa(row.ZeroDays),
		})
	}
	return records
}

// WriteSummaryCSV writes the summary table to filePath, overwriting any
// previous run's output.
func (w *CSVWriter) WriteSummaryCSV(filePath string, rows []readings.SummaryRow, withDates bool) error {
	return w.WriteSimpleCSV(filePath, SummaryHeaders(withDates), SummaryRecords(rows, withDates))
}

// FormatSummaryText renders the summary table as aligned plain text for
// console display.
func FormatSummaryText(rows []readings.SummaryRow, withDates bool) string {
	headers := SummaryHeaders(withDates)
	records := SummaryRecords(rows, withDates)

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, record := range records {
		for i, cell := range record {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	writeLine := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			fmt.Fprintf(&b, "%-*s", widths[i], cell)
		}
		b.WriteString("\n")
	}

	writeLine(headers)
	for _, record := range records {
		writeLine(record)
	}

	return b.String()
}
