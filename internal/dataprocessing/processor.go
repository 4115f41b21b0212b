package dataprocessing

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "csvprep/internal/errors"
	"csvprep/internal/files"
)

// TableParser is the capability interface for the structured strategy: a
// full-table codec that can read a file into rows and serialize rows back
// out. Selection happens once at startup; a Processor built without a parser
// only ever runs the raw fallback.
type TableParser interface {
	ReadAll(r io.Reader) ([][]string, error)
	WriteAll(w io.Writer, rows [][]string) error
}

// CSVTableParser backs TableParser with encoding/csv. Ragged or malformed
// input is a parse error here; the raw fallback handles those files.
type CSVTableParser struct{}

// NewCSVTableParser creates the encoding/csv backed table parser.
func NewCSVTableParser() *CSVTableParser {
	return &CSVTableParser{}
}

// ReadAll parses the entire input as CSV rows.
func (*CSVTableParser) ReadAll(r io.Reader) ([][]string, error) {
	return csv.NewReader(r).ReadAll()
}

// WriteAll serializes rows as CSV to w.
func (*CSVTableParser) WriteAll(w io.Writer, rows [][]string) error {
	return csv.NewWriter(w).WriteAll(rows)
}

// Processor rewrites CSV headers file by file.
type Processor struct {
	parser  TableParser
	manager *files.Manager
	logger  *slog.Logger
}

// NewProcessor creates a processor. parser may be nil, which disables the
// structured strategy entirely. manager and logger default sensibly when nil.
func NewProcessor(parser TableParser, manager *files.Manager, logger *slog.Logger) *Processor {
	if manager == nil {
		manager = files.NewManager("")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		parser:  parser,
		manager: manager,
		logger:  logger,
	}
}

// Process cleans the header of the CSV file at path. When outputDir is empty
// the file is rewritten in place through an atomic temp-sibling swap;
// otherwise the result is written to outputDir/basename(path), creating
// outputDir (with parents) as needed. A nil return means the destination
// carries the cleaned header; every failure is logged and classified before
// being returned.
func (p *Processor) Process(ctx context.Context, path, outputDir string) error {
	logger := p.logger.With(slog.String("file", path))
	logger.InfoContext(ctx, "Processing file")

	dest, err := p.resolveDestination(path, outputDir)
	if err != nil {
		failure := apperrors.NewIOFailure(path, err)
		logger.ErrorContext(ctx, "Failed to resolve destination",
			slog.String("error", failure.Error()))
		return failure
	}

	if p.parser != nil {
		tableErr := p.processTable(ctx, path, dest)
		if tableErr == nil {
			logger.InfoContext(ctx, "Rewrote header via table engine",
				slog.String("destination", dest))
			return nil
		}
		logger.WarnContext(ctx, "Table engine failed, using raw fallback",
			slog.String("error", tableErr.Error()))
	}

	if rawErr := p.processRaw(ctx, path, dest); rawErr != nil {
		logger.ErrorContext(ctx, "Failed to process file",
			slog.String("error", rawErr.Error()))
		return rawErr
	}

	logger.InfoContext(ctx, "Rewrote header via raw fallback",
		slog.String("destination", dest))
	return nil
}

// resolveDestination applies the output-directory rule shared by both
// strategies.
func (p *Processor) resolveDestination(path, outputDir string) (string, error) {
	if outputDir == "" {
		return path, nil
	}
	if err := p.manager.EnsureDirectory(outputDir); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}
	return filepath.Join(outputDir, filepath.Base(path)), nil
}

// processTable is the structured strategy: parse the whole file, clean the
// header row in place (column count and order preserved), serialize the full
// table back out.
func (p *Processor) processTable(ctx context.Context, src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return apperrors.NewIOFailure(src, err)
	}

	rows, parseErr := p.parser.ReadAll(in)
	closeErr := in.Close()
	if parseErr != nil {
		return apperrors.NewParseFailure(src, parseErr)
	}
	if closeErr != nil {
		return apperrors.NewIOFailure(src, closeErr)
	}

	if len(rows) > 0 {
		rows[0] = CleanHeaderFields(rows[0])
	}

	inPlace := dest == src
	target := dest
	if inPlace {
		target = p.manager.TempPathFor(dest)
	}

	out, err := os.Create(target)
	if err != nil {
		return apperrors.NewIOFailure(dest, err)
	}

	if err := p.parser.WriteAll(out, rows); err != nil {
		out.Close()
		if inPlace {
			p.manager.DiscardTemp(target)
		}
		return apperrors.NewIOFailure(dest, err)
	}
	if err := out.Close(); err != nil {
		if inPlace {
			p.manager.DiscardTemp(target)
		}
		return apperrors.NewIOFailure(dest, err)
	}

	if inPlace {
		if err := p.manager.ReplaceFile(target, dest); err != nil {
			p.manager.DiscardTemp(target)
			return apperrors.NewIOFailure(dest, err)
		}
	}

	if len(rows) > 0 {
		p.logger.DebugContext(ctx, "Cleaned column names",
			slog.String("file", src),
			slog.Any("columns", rows[0]))
	}
	return nil
}

// processRaw is the fallback strategy: rewrite only the first line, then
// stream every remaining byte unchanged. In-place rewrites go through a
// temporary sibling that atomically replaces the original once the write has
// fully committed; the original stays intact on any failure.
func (p *Processor) processRaw(ctx context.Context, src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return apperrors.NewIOFailure(src, err)
	}
	defer in.Close()

	inPlace := dest == src
	target := dest
	if inPlace {
		target = p.manager.TempPathFor(dest)
	}

	out, err := os.Create(target)
	if err != nil {
		return apperrors.NewIOFailure(dest, err)
	}

	fail := func(cause error) error {
		out.Close()
		if inPlace {
			p.manager.DiscardTemp(target)
		}
		return apperrors.NewIOFailure(dest, cause)
	}

	reader := bufio.NewReader(in)
	firstLine, readErr := reader.ReadString('\n')
	if readErr != nil && readErr != io.EOF {
		return fail(readErr)
	}

	// An empty source file has no header to rewrite.
	if firstLine != "" {
		if _, err := out.WriteString(RewriteHeaderLine(firstLine) + "\n"); err != nil {
			return fail(err)
		}
	}

	if readErr != io.EOF {
		if _, err := io.Copy(out, reader); err != nil {
			return fail(err)
		}
	}

	if err := out.Close(); err != nil {
		if inPlace {
			p.manager.DiscardTemp(target)
		}
		return apperrors.NewIOFailure(dest, err)
	}

	if inPlace {
		if err := p.manager.ReplaceFile(target, dest); err != nil {
			p.manager.DiscardTemp(target)
			return apperrors.NewIOFailure(dest, err)
		}
	}

	return nil
}
