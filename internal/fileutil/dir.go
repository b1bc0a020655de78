package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates a directory and all parent directories if they don't exist.
// Uses mode 0755. Returns nil if directory already exists.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	return nil
}

// EnsureDirForFile creates the parent directory of filePath if it does not
// already exist.
func EnsureDirForFile(filePath string) error {
	if err := EnsureDir(filepath.Dir(filePath)); err != nil {
		return fmt.Errorf("ensure dir for %s: %w", filePath, err)
	}
	return nil
}

// CreateDir creates a single directory with mode 0755. Unlike EnsureDir it
// fails when path already exists (the error matches fs.ErrExist) and does not
// create missing parents.
func CreateDir(path string) error {
	if err := os.Mkdir(path, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	return nil
}

// CreateDirs calls CreateDir for each name joined onto base, stopping at the
// first failure.
func CreateDirs(base string, names ...string) error {
	for _, name := range names {
		if err := CreateDir(filepath.Join(base, name)); err != nil {
			return err
		}
	}
	return nil
}
