// Package cmfind locates CMakeLists.txt files: the single file a patch
// command operates on, and a deterministic tree scan for the target listing.
package cmfind

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileName is the only file name the patcher operates on.
const FileName = "CMakeLists.txt"

// ErrNotFound reports that a directory has no CMakeLists.txt.
var ErrNotFound = errors.New("CMakeLists.txt not found")

// Directories never descended into during a tree scan. Generated build trees
// contain copied CMakeLists fragments that must not be patched or listed.
var defaultExclude = map[string]struct{}{
	".git":         {},
	".svn":         {},
	"build":        {},
	"out":          {},
	"CMakeFiles":   {},
	"cmake-build":  {}, // prefix: cmake-build-debug etc.
	"node_modules": {},
}

// Locate returns the path of dir's CMakeLists.txt, or ErrNotFound wrapped
// with the directory it searched.
func Locate(dir string) (string, error) {
	path := filepath.Join(dir, FileName)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", &NotFoundError{Dir: dir}
	}
	return path, nil
}

// NotFoundError carries the searched directory; it matches ErrNotFound via
// errors.Is.
type NotFoundError struct {
	Dir string
}

func (e *NotFoundError) Error() string {
	return "no " + FileName + " in " + e.Dir
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ListFiles walks root and returns the root-relative paths (forward slashes)
// of every CMakeLists.txt, sorted. Build and VCS directories and symlinked
// directories are skipped.
func ListFiles(root string) ([]string, error) {
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	var files []string
	err = filepath.WalkDir(rootAbs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != rootAbs && shouldSkipDir(d) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != FileName {
			return nil
		}
		rel, err := filepath.Rel(rootAbs, path)
		if err != nil {
			return nil
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func shouldSkipDir(d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink != 0 {
		return true
	}
	base := d.Name()
	if _, bad := defaultExclude[base]; bad {
		return true
	}
	for k := range defaultExclude {
		if strings.HasPrefix(base, k) {
			return true
		}
	}
	return false
}
