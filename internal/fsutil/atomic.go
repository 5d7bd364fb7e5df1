// Package fsutil provides file helpers shared by the persistent state writers.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
)

const (
	// DirPermissions is used for every directory vocal creates.
	DirPermissions = 0o700

	// FilePermissions is used for new files.
	FilePermissions = 0o600
)

// AtomicWriteFile replaces path with data using a temp file in the same
// directory and a rename, so readers see either the old or the new content.
// Existing file permissions are preserved. When createBackup is set and the
// file exists, a copy named <path>.backup.<unix> is written first.
//
// Each call uses its own temp file, so concurrent writers never share one;
// the last rename wins.
func AtomicWriteFile(path string, data []byte, createBackup bool) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DirPermissions); err != nil {
		return errors.Wrap(err, "failed to create directory")
	}

	perm := os.FileMode(FilePermissions)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()

		if createBackup {
			backupPath := fmt.Sprintf("%s.backup.%d", path, time.Now().Unix())
			if err := copyFile(path, backupPath); err != nil {
				return errors.Wrap(err, "failed to create backup")
			}
		}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}

	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)

		return errors.Wrap(err, "failed to write temp file")
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)

		return errors.Wrap(err, "failed to close temp file")
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		_ = os.Remove(tmpPath)

		return errors.Wrap(err, "failed to set temp file permissions")
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)

		return errors.Wrap(err, "failed to rename temp file")
	}

	return nil
}

// RemoveIfExists removes path. A missing file is not an error. It reports
// whether this call removed the file.
func RemoveIfExists(path string) (bool, error) {
	err := os.Remove(path)
	if err == nil {
		return true, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	return false, errors.Wrapf(err, "failed to remove %s", path)
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src) //nolint:gosec // src is controlled by caller
	if err != nil {
		return errors.Wrap(err, "failed to read source file")
	}

	info, err := os.Stat(src)
	if err != nil {
		return errors.Wrap(err, "failed to stat source file")
	}

	if err := os.WriteFile(dst, data, info.Mode().Perm()); err != nil {
		return errors.Wrap(err, "failed to write destination file")
	}

	return nil
}
