package dataprocessing

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "csvprep/internal/errors"
)

func newTestProcessor(parser TableParser) *Processor {
	return NewProcessor(parser, nil, nil)
}

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestProcessRawInPlace(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeCSV(t, tmpDir, "air.csv",
		"A(x),B(y),,D\n1,2,3,4\n5,6,7,8\n")

	p := newTestProcessor(nil)
	require.NoError(t, p.Process(context.Background(), path, ""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A, B, D\n1,2,3,4\n5,6,7,8\n", string(data))

	// The temporary sibling must be gone after the swap
	assert.NoFileExists(t, path+".tmp")
}

func TestProcessRawOutputDir(t *testing.T) {
	tmpDir := t.TempDir()
	content := "PM2.5(细颗粒物),NO2(二氧化氮)\n12,34\n"
	path := writeCSV(t, tmpDir, "day1.csv", content)

	outDir := filepath.Join(tmpDir, "processed", "nested")
	p := newTestProcessor(nil)
	require.NoError(t, p.Process(context.Background(), path, outDir))

	// Source untouched in output-directory mode
	src, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(src))

	out, err := os.ReadFile(filepath.Join(outDir, "day1.csv"))
	require.NoError(t, err)
	assert.Equal(t, "PM2.5, NO2\n12,34\n", string(out))
}

func TestProcessRawPreservesBodyBytes(t *testing.T) {
	tmpDir := t.TempDir()
	// Body lines carry oddities the header rewrite must not touch:
	// quoted commas, blank lines, a final line without a newline.
	body := "a,\"b,c\",d\n\nlast,1,(keep)"
	path := writeCSV(t, tmpDir, "body.csv", "X(x),Y,Z\n"+body)

	p := newTestProcessor(nil)
	require.NoError(t, p.Process(context.Background(), path, ""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "X, Y, Z\n"+body, string(data))
}

func TestProcessRawEmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeCSV(t, tmpDir, "empty.csv", "")

	p := newTestProcessor(nil)
	require.NoError(t, p.Process(context.Background(), path, ""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestProcessRawHeaderOnly(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeCSV(t, tmpDir, "header.csv", "A(x),B\n")

	p := newTestProcessor(nil)
	require.NoError(t, p.Process(context.Background(), path, ""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A, B\n", string(data))
}

func TestProcessRawNoTrailingNewline(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeCSV(t, tmpDir, "oneline.csv", "A(x),B(y)")

	p := newTestProcessor(nil)
	require.NoError(t, p.Process(context.Background(), path, ""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A, B\n", string(data))
}

func TestProcessTablePreservesShape(t *testing.T) {
	tmpDir := t.TempDir()
	// Quoted header field containing a comma and an empty header cell: the
	// structured strategy keeps the column count, unlike the raw rewrite.
	path := writeCSV(t, tmpDir, "table.csv",
		"\"PM2.5(细颗粒物), \",NO2,,\" Temp (°C) \"\n1,2,3,4\n5,6,7,8\n")

	p := newTestProcessor(NewCSVTableParser())
	require.NoError(t, p.Process(context.Background(), path, ""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "PM2.5,NO2,,Temp", lines[0])
	assert.Equal(t, "1,2,3,4", lines[1])
	assert.Equal(t, "5,6,7,8", lines[2])
}

func TestProcessTableOutputDir(t *testing.T) {
	tmpDir := t.TempDir()
	content := "A(x),B\n1,2\n"
	path := writeCSV(t, tmpDir, "data.csv", content)

	outDir := filepath.Join(tmpDir, "out")
	p := newTestProcessor(NewCSVTableParser())
	require.NoError(t, p.Process(context.Background(), path, outDir))

	src, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(src))

	out, err := os.ReadFile(filepath.Join(outDir, "data.csv"))
	require.NoError(t, err)
	assert.Equal(t, "A,B\n1,2\n", string(out))
}

func TestProcessFallsBackOnMalformedTable(t *testing.T) {
	tmpDir := t.TempDir()
	// The unterminated quote makes the table parse fail; the raw rewrite
	// still fixes the first line and keeps the rest byte-for-byte.
	path := writeCSV(t, tmpDir, "broken.csv",
		"A(x),B(y)\n\"unterminated,1\nplain,2\n")

	p := newTestProcessor(NewCSVTableParser())
	require.NoError(t, p.Process(context.Background(), path, ""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A, B\n\"unterminated,1\nplain,2\n", string(data))
}

func TestProcessMissingFile(t *testing.T) {
	tmpDir := t.TempDir()

	p := newTestProcessor(NewCSVTableParser())
	err := p.Process(context.Background(), filepath.Join(tmpDir, "missing.csv"), "")

	require.Error(t, err)
	assert.True(t, apperrors.IsIOFailure(err))
}

func TestProcessUnreadableSource(t *testing.T) {
	tmpDir := t.TempDir()
	// A dangling symlink fails on open regardless of the caller's uid.
	link := filepath.Join(tmpDir, "dangling.csv")
	require.NoError(t, os.Symlink(filepath.Join(tmpDir, "gone.csv"), link))

	p := newTestProcessor(nil)
	err := p.Process(context.Background(), link, "")

	require.Error(t, err)
	assert.True(t, apperrors.IsIOFailure(err))
}

func TestProcessRawLeavesOriginalOnFailure(t *testing.T) {
	tmpDir := t.TempDir()
	content := "A(x),B\n1,2\n"
	path := writeCSV(t, tmpDir, "keep.csv", content)

	// Point the output at a destination that cannot be created: a path
	// whose parent is a regular file.
	blocker := writeCSV(t, tmpDir, "blocker", "not a directory")
	outDir := filepath.Join(blocker, "out")

	p := newTestProcessor(nil)
	err := p.Process(context.Background(), path, outDir)
	require.Error(t, err)
	assert.True(t, apperrors.IsIOFailure(err))

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, content, string(data))
}

func TestProcessTwiceIsStable(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeCSV(t, tmpDir, "twice.csv", "A(x),B(y)\n1,2\n")

	p := newTestProcessor(NewCSVTableParser())
	require.NoError(t, p.Process(context.Background(), path, ""))

	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, p.Process(context.Background(), path, ""))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestCSVTableParserRoundTrip(t *testing.T) {
	parser := NewCSVTableParser()

	rows, err := parser.ReadAll(strings.NewReader("a,b\n1,\"x,y\"\n"))
	require.NoError(t, err)
	require.Equal(t, [][]string{{"a", "b"}, {"1", "x,y"}}, rows)

	var sb strings.Builder
	require.NoError(t, parser.WriteAll(&sb, rows))
	assert.Equal(t, "a,b\n1,\"x,y\"\n", sb.String())
}

func TestCSVTableParserRejectsRaggedRows(t *testing.T) {
	parser := NewCSVTableParser()

	_, err := parser.ReadAll(strings.NewReader("a,b,c\n1,2\n"))
	require.Error(t, err)
}
