// Package exporter writes generated reports to disk. The only data
// artifact of a run is the summary CSV, overwritten on each run; charts are
// written by internal/chart.
package exporter
