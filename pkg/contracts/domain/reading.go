package domain

import (
	"time"
)

// Fixed conventions for sensor export files. The header names match the
// export format of the deployed monitors and are not user-configurable.
const (
	// TimestampColumn is the header of the reading timestamp column.
	TimestampColumn = "Timestamp (UTC)"
	// PM25Column is the header of the PM2.5 concentration column (ug/m3).
	PM25Column = "PM2.5 (ug/m3)"

	// HighThreshold is the concentration above which a reading is treated
	// as a likely sensor malfunction.
	HighThreshold = 1000.0
	// ZeroValue marks a flatlined sensor.
	ZeroValue = 0.0

	// MinAnomalousDays is the exclusive lower bound on distinct anomalous
	// days for a sensor to qualify for the summary. A sensor anomalous on
	// exactly one day is not reported.
	MinAnomalousDays = 1

	// DateFormat is the layout used for dates in summary output.
	DateFormat = "2006-01-02"
)

// Reading is a single PM2.5 measurement taken from a sensor export file.
// Timestamp is nil when the cell could not be parsed as a date-time; such
// rows are carried through loading but cannot contribute to per-day
// aggregation. SourceFile identifies the sensor and is assigned once at
// load time.
type Reading struct {
	Timestamp  *time.Time `json:"timestamp"`
	PM25       float64    `json:"pm25" validate:"min=0"`
	SourceFile string     `json:"source_file" validate:"required"`
}

// IsExtreme reports whether the reading is an extreme value: exactly zero
// or above the high threshold.
func (r Reading) IsExtreme() bool {
	return r.PM25 == ZeroValue || r.PM25 > HighThreshold
}

// Date returns the calendar date of the reading and whether one could be
// derived. Readings with unparseable timestamps have no date.
func (r Reading) Date() (time.Time, bool) {
	if r.Timestamp == nil {
		return time.Time{}, false
	}
	t := *r.Timestamp
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()), true
}

// IsHigh reports whether the value exceeds the high threshold.
func IsHigh(v float64) bool { return v > HighThreshold }

// IsZero reports whether the value is exactly zero.
func IsZero(v float64) bool { return v == ZeroValue }
