// Package backup creates, lists and restores timestamped copies of a file.
//
// Backups live next to the original as <path>.backup.<YYYYMMDD_HHMMSS>.
// They are never overwritten and never removed by this package.
package backup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/creachadair/atomicfile"
)

const (
	suffix = ".backup."

	// maxCollisions bounds the numeric disambiguation of same-second names
	maxCollisions = 1000
)

// Name returns the backup file name for path taken at t
func Name(path string, t time.Time) string {
	return path + suffix + Timestamp(t)
}

// Create writes data to a new backup of path and returns the backup path.
// An existing backup with the same timestamp gets a numeric suffix instead
// of being overwritten.
func Create(path string, data []byte, mode fs.FileMode, clock Clock) (string, error) {
	if clock == nil {
		clock = SystemClock{}
	}
	base := Name(path, clock.Now())

	for i := 0; i < maxCollisions; i++ {
		name := base
		if i > 0 {
			name = base + "." + strconv.Itoa(i)
		}

		f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode.Perm())
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create backup file: %w", err)
		}

		if err := writeAll(f, data); err != nil {
			_ = os.Remove(name)
			return "", err
		}
		return name, nil
	}

	return "", fmt.Errorf("too many backups named %s", base)
}

func writeAll(f *os.File, data []byte) error {
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to sync backup file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close backup file: %w", err)
	}
	return nil
}

// Resolve follows symlinks in path. A path that does not exist yet is
// returned unchanged.
func Resolve(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if errors.Is(err, fs.ErrNotExist) {
		return path, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return resolved, nil
}

// List returns the backups of path, newest first. Backups of a symlink live
// next to its target.
func List(path string) ([]string, error) {
	path, err := Resolve(path)
	if err != nil {
		return nil, err
	}

	matches, err := filepath.Glob(globEscape(path) + suffix + "*")
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}

	backups := matches[:0]
	for _, m := range matches {
		if isBackupName(path, m) {
			backups = append(backups, m)
		}
	}

	sort.Slice(backups, func(i, j int) bool {
		return less(backups[j], backups[i])
	})
	return backups, nil
}

// Restore replaces path, or the target of a path symlink, with the contents
// of backupPath. The current file, if any, is backed up first; the returned
// string is that safety backup.
func Restore(ctx context.Context, backupPath, path string, clock Clock) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path, err := Resolve(path)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(backupPath)
	if err != nil {
		return "", fmt.Errorf("failed to read backup: %w", err)
	}

	mode := fs.FileMode(0o644)
	var safety string
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
		current, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read current file: %w", err)
		}
		safety, err = Create(path, current, mode, clock)
		if err != nil {
			return "", err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := atomicfile.WriteData(path, data, mode); err != nil {
		return safety, fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return safety, nil
}

// isBackupName reports whether name is <path>.backup.<ts>[.<n>]
func isBackupName(path, name string) bool {
	rest, ok := strings.CutPrefix(name, path+suffix)
	if !ok {
		return false
	}
	ts, n, hasN := strings.Cut(rest, ".")
	if _, err := time.Parse(TimestampFormat, ts); err != nil {
		return false
	}
	if hasN {
		if _, err := strconv.Atoi(n); err != nil {
			return false
		}
	}
	return true
}

// less orders backups by timestamp, then by collision counter
func less(a, b string) bool {
	ta, na := split(a)
	tb, nb := split(b)
	if ta != tb {
		return ta < tb
	}
	return na < nb
}

func split(name string) (string, int) {
	i := strings.LastIndex(name, suffix)
	ts, n, _ := strings.Cut(name[i+len(suffix):], ".")
	count, _ := strconv.Atoi(n)
	return ts, count
}

func globEscape(path string) string {
	r := strings.NewReplacer(`*`, `\*`, `?`, `\?`, `[`, `\[`, `\`, `\\`)
	return r.Replace(path)
}
