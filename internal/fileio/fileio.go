// Package fileio provides the on-disk half of the patch workflow: the
// one-time backup next to the patched file and atomic replacement of its
// contents.
package fileio

import (
	"os"
	"path/filepath"
)

// BackupSuffix is appended to a file's name to form its backup path.
const BackupSuffix = ".backup"

// EnsureBackup copies path to path+".backup" unless the backup already
// exists. The backup is written once and never overwritten afterwards, so it
// always preserves the pristine pre-patch contents even across repeated runs.
// It returns the backup path and whether this call created it.
func EnsureBackup(path string) (string, bool, error) {
	backup := path + BackupSuffix
	if _, err := os.Stat(backup); err == nil {
		return backup, false, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false, err
	}
	if err := WriteAtomic(backup, data); err != nil {
		return "", false, err
	}
	return backup, true, nil
}

// WriteAtomic writes data to path via a temporary file in the same directory
// followed by a rename, so readers never observe a partially-written file.
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, f, err := createTempFile(dir, filepath.Base(path))
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// createTempFile creates a temporary file in the target directory with a
// name derived from base (".tmp-<base>-<rand>"), returning its path and an
// *os.File ready for writing. Caller is responsible for closing it.
func createTempFile(dir, base string) (string, *os.File, error) {
	prefix := ".tmp-" + base + "-"
	f, err := os.CreateTemp(dir, prefix)
	if err != nil {
		return "", nil, err
	}
	return f.Name(), f, nil
}
