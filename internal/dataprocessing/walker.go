package dataprocessing

import (
	"context"
	"log/slog"

	"csvprep/internal/files"
)

// WalkResult records the outcome for one discovered file.
type WalkResult struct {
	Path string
	Err  error
}

// WalkStats accumulates outcomes across a directory walk.
type WalkStats struct {
	Total     int
	Succeeded int
	Results   []WalkResult
}

// Failed returns the number of files that could not be processed.
func (s *WalkStats) Failed() int {
	return s.Total - s.Succeeded
}

// ProcessDirectory recursively processes every CSV file under dir. Files are
// visited in deterministic lexical order. A failing file is recorded and the
// walk continues; the walker itself never fails, it only reports what
// happened.
func (p *Processor) ProcessDirectory(ctx context.Context, dir, outputDir string) *WalkStats {
	stats := &WalkStats{}

	found, err := files.NewDiscovery("").FindCSVFiles(dir)
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to scan directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return stats
	}

	if len(found) == 0 {
		p.logger.InfoContext(ctx, "No CSV files found",
			slog.String("directory", dir))
		return stats
	}

	stats.Total = len(found)
	p.logger.InfoContext(ctx, "Discovered CSV files",
		slog.Int("count", stats.Total),
		slog.String("directory", dir))

	for i, file := range found {
		p.logger.InfoContext(ctx, "Processing file",
			slog.Int("current", i+1),
			slog.Int("total", stats.Total),
			slog.String("path", file.Path))

		err := p.Process(ctx, file.Path, outputDir)
		if err == nil {
			stats.Succeeded++
		}
		stats.Results = append(stats.Results, WalkResult{Path: file.Path, Err: err})
	}

	p.logger.InfoContext(ctx, "Directory processing complete",
		slog.Int("succeeded", stats.Succeeded),
		slog.Int("total", stats.Total))

	return stats
}
