package process

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/giantswarm/casstest/internal/sentinel"
)

// ErrInvalidPID is returned when a pid record does not hold a positive
// integer.
const ErrInvalidPID = sentinel.Error("invalid pid")

// ReadPIDFile returns the pid stored in path. Surrounding whitespace is
// ignored; anything else that is not a positive integer yields
// ErrInvalidPID. Read errors are returned as-is (wrapped), so a missing file
// matches fs.ErrNotExist.
func ReadPIDFile(path string) (int, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: pid file inside the instance working directory
	if err != nil {
		return 0, fmt.Errorf("read pid file: %w", err)
	}
	return ParsePID(string(data))
}

// ParsePID parses the contents of a pid record.
func ParsePID(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty pid record: %w", ErrInvalidPID)
	}
	pid, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidPID)
	}
	if pid <= 0 {
		return 0, fmt.Errorf("%d: %w", pid, ErrInvalidPID)
	}
	return pid, nil
}
