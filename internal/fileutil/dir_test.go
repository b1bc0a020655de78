package fileutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureDir(t *testing.T) {
	t.Parallel()
	t.Run("creates new directory", func(t *testing.T) {
		t.Parallel()
		base := t.TempDir()
		dir := filepath.Join(base, "newdir")

		if err := EnsureDir(dir); err != nil {
			t.Fatalf("EnsureDir() error: %v", err)
		}

		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("stat after EnsureDir: %v", err)
		}
		if !info.IsDir() {
			t.Error("expected directory, got file")
		}
	})

	t.Run("creates nested directories", func(t *testing.T) {
		t.Parallel()
		base := t.TempDir()
		dir := filepath.Join(base, "a", "b", "c")

		if err := EnsureDir(dir); err != nil {
			t.Fatalf("EnsureDir() error: %v", err)
		}

		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("stat after EnsureDir: %v", err)
		}
		if !info.IsDir() {
			t.Error("expected directory, got file")
		}
	})

	t.Run("idempotent on existing directory", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()

		if err := EnsureDir(dir); err != nil {
			t.Fatalf("EnsureDir() on existing dir error: %v", err)
		}

		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("stat after EnsureDir: %v", err)
		}
		if !info.IsDir() {
			t.Error("expected directory, got file")
		}
	})
}

func TestEnsureDirForFile(t *testing.T) {
	t.Parallel()
	t.Run("creates parent directory", func(t *testing.T) {
		t.Parallel()
		base := t.TempDir()
		filePath := filepath.Join(base, "subdir", "file.txt")

		if err := EnsureDirForFile(filePath); err != nil {
			t.Fatalf("EnsureDirForFile() error: %v", err)
		}

		parentDir := filepath.Dir(filePath)
		info, err := os.Stat(parentDir)
		if err != nil {
			t.Fatalf("stat parent dir: %v", err)
		}
		if !info.IsDir() {
			t.Error("expected parent to be directory")
		}
	})

	t.Run("creates deeply nested parent", func(t *testing.T) {
		t.Parallel()
		base := t.TempDir()
		filePath := filepath.Join(base, "a", "b", "c", "file.txt")

		if err := EnsureDirForFile(filePath); err != nil {
			t.Fatalf("EnsureDirForFile() error: %v", err)
		}

		parentDir := filepath.Dir(filePath)
		info, err := os.Stat(parentDir)
		if err != nil {
			t.Fatalf("stat parent dir: %v", err)
		}
		if !info.IsDir() {
			t.Error("expected parent to be directory")
		}
	})

	t.Run("succeeds when parent already exists", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		filePath := filepath.Join(dir, "file.txt")

		if err := EnsureDirForFile(filePath); err != nil {
			t.Fatalf("EnsureDirForFile() error: %v", err)
		}
	})
}

func TestCreateDir(t *testing.T) {
	t.Parallel()

	t.Run("creates directory", func(t *testing.T) {
		t.Parallel()
		dir := filepath.Join(t.TempDir(), "cassandra.9160")

		if err := CreateDir(dir); err != nil {
			t.Fatalf("CreateDir() error: %v", err)
		}
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("stat after CreateDir: %v", err)
		}
		if !info.IsDir() {
			t.Error("expected directory, got file")
		}
	})

	t.Run("fails on existing directory", func(t *testing.T) {
		t.Parallel()
		dir := filepath.Join(t.TempDir(), "cassandra.9160")
		if err := os.Mkdir(dir, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		marker := filepath.Join(dir, "pid")
		if err := os.WriteFile(marker, []byte("42"), 0o644); err != nil {
			t.Fatalf("write marker: %v", err)
		}

		err := CreateDir(dir)
		if !errors.Is(err, fs.ErrExist) {
			t.Fatalf("error = %v, want fs.ErrExist", err)
		}
		if _, err := os.Stat(marker); err != nil {
			t.Errorf("existing contents disturbed: %v", err)
		}
	})

	t.Run("does not create parents", func(t *testing.T) {
		t.Parallel()
		dir := filepath.Join(t.TempDir(), "missing", "cassandra.9160")

		if err := CreateDir(dir); !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("error = %v, want fs.ErrNotExist", err)
		}
	})
}

func TestCreateDirs(t *testing.T) {
	t.Parallel()
	base := t.TempDir()

	if err := CreateDirs(base, "commit", "data", "saved_caches"); err != nil {
		t.Fatalf("CreateDirs() error: %v", err)
	}
	for _, name := range []string{"commit", "data", "saved_caches"} {
		info, err := os.Stat(filepath.Join(base, name))
		if err != nil {
			t.Fatalf("stat %s: %v", name, err)
		}
		if !info.IsDir() {
			t.Errorf("%s: expected directory", name)
		}
	}

	if err := CreateDirs(base, "data"); !errors.Is(err, fs.ErrExist) {
		t.Errorf("second CreateDirs error = %v, want fs.ErrExist", err)
	}
}
