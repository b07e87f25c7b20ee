package readings

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"pm25cli/internal/files"
	"pm25cli/pkg/contracts/domain"
)

// FileError records a sensor export that could not be parsed. The file
// contributes zero readings; the run continues with the remaining files.
type FileError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap exposes the underlying cause
func (e FileError) Unwrap() error {
	return e.Err
}

// Aggregator loads every sensor export in a folder into one combined
// dataset, collecting per-file failures instead of aborting on them.
type Aggregator struct {
	parser *Parser
	logger *slog.Logger
}

// NewAggregator creates a new folder aggregator. A nil logger falls back to
// slog.Default().
func NewAggregator(parser *Parser, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	if parser == nil {
		parser = NewParser(logger)
	}
	return &Aggregator{parser: parser, logger: logger}
}

// LoadFolder parses every spreadsheet in dir and concatenates the results.
// The returned error is non-nil only when the directory itself cannot be
// read; per-file parse failures come back in failures. An empty combined
// dataset is a valid result, not an error.
func (a *Aggregator) LoadFolder(ctx context.Context, dir string) (combined []domain.Reading, failures []FileError, err error) {
	// Resolve to an absolute path so discovery never re-joins a relative
	// dir onto itself.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve directory %s: %w", dir, err)
	}

	discovery := files.NewDiscovery(absDir)
	spreadsheets, err := discovery.FindExcelFiles(absDir)
	if err != nil {
		return nil, nil, err
	}

	a.logger.InfoContext(ctx, "processing files",
		slog.String("dir", dir),
		slog.Int("file_count", len(spreadsheets)))

	for _, file := range spreadsheets {
		rows, parseErr := a.parser.ParseFile(ctx, file.Path)
		if parseErr != nil {
			a.logger.WarnContext(ctx, "failed to process file",
				slog.String("path", file.Path),
				slog.String("error", parseErr.Error()))
			failures = append(failures, FileError{Path: file.Path, Err: parseErr})
			continue
		}
		combined = append(combined, rows...)
	}

	a.logger.InfoContext(ctx, "folder aggregation complete",
		slog.Int("files_scanned", len(spreadsheets)),
		slog.Int("files_failed", len(failures)),
		slog.Int("reading_count", len(combined)))

	return combined, failures, nil
}
