// Package files provides file system discovery for sensor export
// spreadsheets.
//
// Discovery scans a folder (non-recursively) for files carrying one of the
// two recognized spreadsheet extensions, .xlsx and .xls. Anything else,
// including subdirectories, is ignored.
//
// Example usage:
//
//	discovery := files.NewDiscovery("/path/to/base")
//	spreadsheets, err := discovery.FindExcelFiles("data")
package files
