// =============================================================================
// CSV to OpenAPI Generator - File Utilities
// =============================================================================
//
// This module provides the file helpers used when writing output:
//   - Directory management
//   - Unique temporary file names
//   - Atomic file replacement
//
// WRITE STRATEGY:
//   Output is written to a uniquely named temporary file in the destination
//   directory and then renamed over the target. An existing target is
//   replaced; a failed write leaves the previous file untouched.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// TempPath returns a unique hidden file path in dir derived from name.
//
// EXAMPLE:
//   TempPath("out", "users.yaml") -> "out/.users.yaml.1b4e28ba-2fa1-11d2-883f-0016d3cca427.tmp"
func TempPath(dir, name string) string {
	return filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", name, uuid.NewString()))
}

// WriteFileAtomic writes data to path through a temporary file in the same
// directory, replacing any existing file.
//
// PARAMETERS:
//   - path: The destination file.
//   - data: The file content.
//   - perm: The permission bits of the new file.
//
// RETURNS:
//   - An error if the temporary file cannot be written or renamed. The
//     temporary file is removed on failure.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp := TempPath(filepath.Dir(path), filepath.Base(path))

	file, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}

	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(tmp)
		return err
	}

	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tmp)
		return err
	}

	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}

	return nil
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// GetFileSize returns the size of a file in bytes.
func GetFileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
