package textpatch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/giantswarm/casstest/internal/sentinel"
)

// ErrEmptyOld is returned when a Replacement has an empty Old string.
// strings.ReplaceAll with an empty pattern inserts New between every rune,
// which is never what a config rewrite wants.
const ErrEmptyOld = sentinel.Error("replacement old string must not be empty")

// ErrEmptyPath is returned when Apply is called with an empty file path.
const ErrEmptyPath = sentinel.Error("file path must not be empty")

// Replacement is a single literal find/replace pair.
type Replacement struct {
	Old string
	New string
}

// R is shorthand for a Replacement literal.
func R(find, repl string) Replacement {
	return Replacement{Old: find, New: repl}
}

// Substitute applies the replacements to s in order and returns the result.
// Every occurrence of each Old string is replaced.
func Substitute(s string, repls []Replacement) (string, error) {
	for i, r := range repls {
		if r.Old == "" {
			return "", fmt.Errorf("replacement %d: %w", i, ErrEmptyOld)
		}
		s = strings.ReplaceAll(s, r.Old, r.New)
	}
	return s, nil
}

// Apply reads path, applies the replacements with Substitute and replaces
// the file atomically. The original permission bits are kept.
//
// On failure the original file is left as it was; a leftover temporary file
// is removed on a best-effort basis.
func Apply(path string, repls []Replacement) (retErr error) {
	if path == "" {
		return ErrEmptyPath
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is a config file inside our own working directory
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	out, err := Substitute(string(data), repls)
	if err != nil {
		return fmt.Errorf("patch %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if retErr != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp file for %s: %w", path, err)
	}
	if _, err := tmp.WriteString(out); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file for %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file for %s: %w", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file to %s: %w", path, err)
	}
	return nil
}
