// Package readings implements the PM2.5 triage pipeline: extracting
// readings from sensor export workbooks, aggregating a folder of exports
// into one combined dataset, and summarizing which sensors show extreme
// values on more than one calendar day.
//
// The pipeline is strictly sequential. Files are parsed one at a time and a
// failure to parse any single file is contained at the extraction boundary:
// the file contributes zero rows, the failure is collected, and the run
// continues.
package readings
