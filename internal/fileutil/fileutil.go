// Package fileutil provides small filesystem helpers shared by the converter
// and the batch orchestrator.
package fileutil

import (
	"errors"
	"io/fs"
	"os"
)

// Exists reports whether path refers to an existing file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates dir and any missing parents. Safe to call concurrently
// for overlapping paths; an already-existing directory is not an error.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// UpToDate reports whether output exists and was modified strictly later than
// input. A missing output means false; a missing input is reported as an
// error since callers stat inputs before asking.
func UpToDate(output, input string) (bool, error) {
	outInfo, err := os.Stat(output)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	inInfo, err := os.Stat(input)
	if err != nil {
		return false, err
	}
	return outInfo.ModTime().After(inInfo.ModTime()), nil
}
