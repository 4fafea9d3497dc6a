package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteFileAtomic streams r into path through a temporary file in the same directory
// and renames it into place. An existing file at path is replaced. On error the
// temporary file is removed and path is left untouched.
func WriteFileAtomic(path string, r io.Reader, perm os.FileMode) (int64, error) {
	if path == "" {
		return 0, fmt.Errorf("destination path cannot be empty")
	}
	if err := EnsureFileDir(path); err != nil {
		return 0, fmt.Errorf("failed to create parent directory for %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tile-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	n, err := io.Copy(tmp, r)
	if err != nil {
		_ = tmp.Close()
		cleanup()
		return n, fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return n, fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		cleanup()
		return n, fmt.Errorf("failed to set permissions for %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return n, fmt.Errorf("failed to rename %s to %s: %w", tmpPath, path, err)
	}
	return n, nil
}
