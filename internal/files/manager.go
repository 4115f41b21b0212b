package files

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Manager provides file management operations
type Manager struct {
	tempSuffix string
}

// NewManager creates a new file manager instance. tempSuffix is the suffix
// appended to a path to form its temporary sibling during atomic replacement.
func NewManager(tempSuffix string) *Manager {
	if tempSuffix == "" {
		tempSuffix = ".tmp"
	}
	return &Manager{tempSuffix: tempSuffix}
}

// TempPathFor returns the temporary sibling path used while rewriting path
// in place.
func (m *Manager) TempPathFor(path string) string {
	return path + m.tempSuffix
}

// EnsureDirectory creates a directory with all parent directories if it
// doesn't exist.
func (m *Manager) EnsureDirectory(path string) error {
	slog.Debug("Ensuring directory exists", slog.String("path", path))

	return os.MkdirAll(path, 0755)
}

// CopyFile copies a file from source to destination
func (m *Manager) CopyFile(src, dst string) error {
	slog.Debug("Copying file",
		slog.String("src", src),
		slog.String("dst", dst))

	// Ensure destination directory exists
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file content: %w", err)
	}

	// Sync to ensure write is complete
	return dstFile.Sync()
}

// ReplaceFile atomically replaces dst with the already-written tmp. The two
// must live on the same filesystem; tmp is produced by TempPathFor, which
// keeps it a sibling of dst, so that holds. dst stays intact until the
// rename commits.
func (m *Manager) ReplaceFile(tmp, dst string) error {
	slog.Debug("Replacing file",
		slog.String("tmp", tmp),
		slog.String("dst", dst))

	if err := os.Rename(tmp, dst); err != nil {
		return fmt.Errorf("failed to replace %s: %w", dst, err)
	}
	return nil
}

// DiscardTemp removes a leftover temporary file, ignoring the case where it
// was never created.
func (m *Manager) DiscardTemp(tmp string) {
	if err := os.Remove(tmp); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to remove temporary file",
			slog.String("path", tmp),
			slog.String("error", err.Error()))
	}
}
