package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the application paths.
// This is the single source of truth for file locations: input spreadsheets
// live under DataDir, generated reports under ReportsDir, logs under LogsDir.
type Paths struct {
	ExecutableDir string
	DataDir       string
	ReportsDir    string
	LogsDir       string

	// Well-known report files
	SummaryCSV    string
	ExtremesChart string
}

// GetPaths returns the application paths relative to the executable location.
// Paths are anchored to the executable directory rather than the current
// working directory so the tool behaves the same wherever it is invoked from.
//
// Directory structure:
//
//	pm25cli/
//	  ├── data/       (sensor export spreadsheets)
//	  ├── reports/    (generated summary CSV and charts)
//	  └── logs/       (application logs)
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %v", err)
	}

	// Resolve symlinks to get the actual executable location
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %v", err)
	}

	exeDir := filepath.Dir(exe)
	return newPaths(exeDir), nil
}

// newPaths builds the path set rooted at baseDir.
func newPaths(baseDir string) *Paths {
	dataDir := filepath.Join(baseDir, "data")
	reportsDir := filepath.Join(baseDir, "reports")
	logsDir := filepath.Join(baseDir, "logs")

	return &Paths{
		ExecutableDir: baseDir,
		DataDir:       dataDir,
		ReportsDir:    reportsDir,
		LogsDir:       logsDir,
		SummaryCSV:    filepath.Join(reportsDir, "summary_table_with_zeros.csv"),
		ExtremesChart: filepath.Join(reportsDir, "extreme_values.html"),
	}
}

// EnsureDirectories creates all required directories if they do not exist
func (p *Paths) EnsureDirectories() error {
	dirs := []string{p.DataDir, p.ReportsDir, p.LogsDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetReportPath returns the full path for a report file
func (p *Paths) GetReportPath(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(p.ReportsDir, filename)
}

// GetLogPath returns the full path for a log file
func (p *Paths) GetLogPath(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(p.LogsDir, filename)
}
