package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// excelExtensions are the two recognized spreadsheet extensions.
var excelExtensions = []string{".xlsx", ".xls"}

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindExcelFiles finds all spreadsheet files in the specified directory.
// The scan is non-recursive; subdirectories and files with other extensions
// are skipped. Results are sorted by name so runs over the same input are
// deterministic.
func (d *Discovery) FindExcelFiles(dir string) ([]FileInfo, error) {
	// If dir is already absolute, use it directly
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !hasExcelExtension(name) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// hasExcelExtension reports whether name ends in a recognized spreadsheet
// extension, case-insensitively.
func hasExcelExtension(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range excelExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
