// Package dataprocessing implements the CSV header cleanup pipeline.
//
// The package is organized into three main components:
//
// 1. Cleaner: the pure column-name transformation (CleanColumnName) and the
// two header-rewrite modes built on it (CleanHeaderFields for structured
// tables, RewriteHeaderLine for the raw first-line rewrite)
//
// 2. Processor: rewrites a single file, preferring a full table
// parse/rename/serialize through a TableParser and degrading to the raw
// first-line rewrite when parsing fails, with atomic in-place replacement
//
// 3. Walker: recursively processes every CSV file under a directory,
// isolating per-file failures and tallying the outcome
//
// Example usage:
//
//	processor := dataprocessing.NewProcessor(dataprocessing.NewCSVTableParser(), nil, nil)
//	stats := processor.ProcessDirectory(ctx, "/data/raw", "/data/processed")
//	fmt.Printf("processed %d/%d files\n", stats.Succeeded, stats.Total)
package dataprocessing
