package fileutil

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/giantswarm/casstest/internal/sentinel"
	"github.com/klauspost/compress/gzip"
)

// ErrUnsafePath is returned when an archive entry would be written outside
// the extraction directory: absolute names, ".." components, links whose
// target leaves it, or paths that reach outside through an extracted link.
const ErrUnsafePath = sentinel.Error("archive entry escapes destination")

// ErrEmptySrc is returned when a source path is empty.
const ErrEmptySrc = sentinel.Error("source path must not be empty")

// ErrEmptyDst is returned when a destination path is empty.
const ErrEmptyDst = sentinel.Error("destination path must not be empty")

// ExtractTarGz unpacks the gzip-compressed tarball at src into the existing
// directory dst, the equivalent of "tar -xpzf src -C dst". Regular files keep
// the permission bits recorded in the archive so that scripts under bin/ stay
// executable. Directories, regular files, symlinks and hard links are
// supported; other entry types are skipped.
func ExtractTarGz(src, dst string) (retErr error) {
	if src == "" {
		return ErrEmptySrc
	}
	if dst == "" {
		return ErrEmptyDst
	}

	f, err := os.Open(src) //nolint:gosec // G304: archive path is configured by the caller
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("close archive: %w", closeErr)
		}
	}()

	root, err := filepath.EvalSymlinks(dst)
	if err != nil {
		return fmt.Errorf("resolve destination: %w", err)
	}

	zr, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("open gzip stream %s: %w", src, err)
	}
	defer func() { _ = zr.Close() }()

	tr := tar.NewReader(zr)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, tar.ErrInsecurePath) {
			return fmt.Errorf("extract %s: %w", hdr.Name, ErrUnsafePath)
		}
		if err != nil {
			return fmt.Errorf("read archive %s: %w", src, err)
		}
		if err := extractEntry(tr, hdr, dst, root); err != nil {
			return fmt.Errorf("extract %s: %w", hdr.Name, err)
		}
	}
}

// extractEntry writes a single tar entry below dst. root is dst with
// symlinks resolved.
func extractEntry(r io.Reader, hdr *tar.Header, dst, root string) error {
	target, err := safeJoin(dst, hdr.Name)
	if err != nil {
		return err
	}
	if err := checkResolved(root, target); err != nil {
		return err
	}
	mode := hdr.FileInfo().Mode().Perm()

	switch hdr.Typeflag {
	case tar.TypeDir:
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
		return os.Chmod(target, mode|0o700)

	case tar.TypeReg:
		if err := EnsureDirForFile(target); err != nil {
			return err
		}
		return writeFile(target, r, mode)

	case tar.TypeSymlink:
		if filepath.IsAbs(hdr.Linkname) {
			return fmt.Errorf("symlink to %s: %w", hdr.Linkname, ErrUnsafePath)
		}
		if _, err := safeJoin(dst, filepath.Join(filepath.Dir(hdr.Name), hdr.Linkname)); err != nil {
			return err
		}
		if err := EnsureDirForFile(target); err != nil {
			return err
		}
		return os.Symlink(hdr.Linkname, target)

	case tar.TypeLink:
		oldname, err := safeJoin(dst, hdr.Linkname)
		if err != nil {
			return err
		}
		if err := checkResolved(root, oldname); err != nil {
			return err
		}
		if err := EnsureDirForFile(target); err != nil {
			return err
		}
		return os.Link(oldname, target)

	default:
		return nil
	}
}

// writeFile creates target with mode and copies r into it. The mode is
// applied with Chmod after creation so that it is not narrowed by the umask.
func writeFile(target string, r io.Reader, mode os.FileMode) error {
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode) //nolint:gosec // G304: target validated by safeJoin
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(out, r); err != nil { //nolint:gosec // G110: archive is the trusted server distribution
		_ = out.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := out.Chmod(mode); err != nil {
		_ = out.Close()
		return fmt.Errorf("chmod file: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	return nil
}

// safeJoin joins name onto dst and rejects results outside dst.
func safeJoin(dst, name string) (string, error) {
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("%s: %w", name, ErrUnsafePath)
	}
	target := filepath.Join(dst, name)
	if !within(dst, target) {
		return "", fmt.Errorf("%s: %w", name, ErrUnsafePath)
	}
	return target, nil
}

// checkResolved rejects target when an existing symlink on its path leads
// outside root, or when target itself is already a symlink. Entries are
// never written through links, which also covers dangling ones.
func checkResolved(root, target string) error {
	if info, err := os.Lstat(target); err == nil && info.Mode()&fs.ModeSymlink != 0 {
		return fmt.Errorf("%s is a symlink: %w", target, ErrUnsafePath)
	}

	// Components that do not exist yet cannot be links; resolve the deepest
	// existing ancestor.
	dir := filepath.Dir(target)
	for {
		resolved, err := filepath.EvalSymlinks(dir)
		if err == nil {
			if !within(root, resolved) {
				return fmt.Errorf("%s resolves to %s: %w", dir, resolved, ErrUnsafePath)
			}
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("resolve %s: %w", dir, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return fmt.Errorf("resolve %s: %w", target, err)
		}
		dir = parent
	}
}

// within reports whether path is root or lies below it.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
