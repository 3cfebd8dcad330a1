package fileutils

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/PhaserEditor2D/assetprep/internal/errs"
)

// FileMode is the mode used for created files
const FileMode = 0644

// DirMode is the mode used for created directories
const DirMode = 0755

// TargetExists checks if the given file or folder exists
func TargetExists(path string) bool {
	_, err1 := os.Stat(path)
	_, err2 := os.Readlink(path) // os.Stat returns false on Symlinks that don't point to a valid file
	return err1 == nil || err2 == nil
}

// FileExists checks if the given file (not folder) exists
func FileExists(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}

	return fi.Mode().IsRegular()
}

// DirExists checks if the given directory exists
func DirExists(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}

	return fi.Mode().IsDir()
}

// MkdirUnlessExists will make the directory structure if it doesn't already exists
func MkdirUnlessExists(path string) error {
	if DirExists(path) {
		return nil
	}
	if err := os.MkdirAll(path, DirMode); err != nil {
		return errs.Wrap(err, "Could not create directory: %s", path)
	}
	return nil
}

// ReadFile reads the content of a file
func ReadFile(filePath string) ([]byte, error) {
	b, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errs.Wrap(err, "Could not read file: %s", filePath)
	}
	return b, nil
}

// WriteFile writes data to a file, if it exists it is overwritten, if it doesn't exist it is created and data is
// written. Existing files keep their permissions.
func WriteFile(filePath string, data []byte) error {
	if err := MkdirUnlessExists(filepath.Dir(filePath)); err != nil {
		return err
	}

	f, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, FileMode)
	if err != nil {
		return errs.Wrap(err, "Could not open file for writing: %s", filePath)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return errs.Wrap(err, "Could not write file: %s", filePath)
	}
	if err := f.Close(); err != nil {
		return errs.Wrap(err, "Could not close file: %s", filePath)
	}
	return nil
}

// Glob returns the regular files in fsys matching the given doublestar pattern, sorted by path.
func Glob(fsys fs.FS, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, errs.New("Invalid file pattern: %s", pattern)
	}

	var files []string
	err := doublestar.GlobWalk(fsys, pattern, func(path string, d fs.DirEntry) error {
		if d.Type().IsRegular() {
			files = append(files, path)
			return nil
		}
		if d.Type()&fs.ModeSymlink == 0 {
			return nil
		}
		// dangling links are skipped
		if info, err := fs.Stat(fsys, path); err == nil && info.Mode().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errs.Wrap(err, "Could not list files matching %s", pattern)
	}

	sort.Strings(files)
	return files, nil
}
