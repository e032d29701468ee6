package main

import (
	"os"
	"path"
	"path/filepath"
	"slices"

	"golang.org/x/mod/modfile"
)

// -------------------------
// Atomic output
// -------------------------

// tempFile abstracts an os.File for testability.
type tempFile interface {
	Name() string
	Write([]byte) (int, error)
	Close() error
}

// File operation hooks, overridden in tests.
var (
	createTempFile = func(dir, pattern string) (tempFile, error) { return os.CreateTemp(dir, pattern) }
	chmodFile      = os.Chmod
	renameFile     = os.Rename
	removeFile     = os.Remove
)

// writeFileAtomic writes to a temporary file in the target directory and renames
// it over targetPath, so readers never observe a half-written facade.
func writeFileAtomic(targetPath string, data []byte, perm os.FileMode) (err error) {
	targetDir := filepath.Dir(targetPath)

	tmpFile, err := createTempFile(targetDir, filepath.Base(targetPath)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if err != nil {
			_ = removeFile(tmpPath)
		}
	}()

	if _, err = tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err = tmpFile.Close(); err != nil {
		return err
	}
	if err = chmodFile(tmpPath, perm); err != nil {
		return err
	}
	return renameFile(tmpPath, targetPath)
}

// -------------------------
// Import path inference
// -------------------------

type cmdError struct{ msg string }

func (e *cmdError) Error() string { return e.msg }

// packageImportPath returns the import path of the package in dir. It walks up
// to the nearest go.mod and appends the directories it climbed through to the
// module path declared there.
func packageImportPath(dir string) (string, error) {
	var below []string
	for cur := dir; ; {
		gomod := filepath.Join(cur, "go.mod")
		if fileExists(gomod) {
			data, err := os.ReadFile(gomod)
			if err != nil {
				return "", err
			}
			mod := modfile.ModulePath(data)
			if mod == "" {
				return "", &cmdError{msg: "go.mod declares no module path: " + filepath.ToSlash(gomod)}
			}
			slices.Reverse(below)
			return path.Join(append([]string{mod}, below...)...), nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return "", &cmdError{msg: "no go.mod in " + filepath.ToSlash(dir) + " or any parent directory"}
		}
		below = append(below, filepath.Base(cur))
		cur = parent
	}
}

// inferImportPath returns the import path of the package that will hold outPath.
func inferImportPath(outPath string) (string, error) {
	dir, err := filepath.Abs(filepath.Dir(outPath))
	if err != nil {
		return "", err
	}
	return packageImportPath(dir)
}

func fileExists(name string) bool {
	st, err := os.Stat(name)
	return err == nil && !st.IsDir()
}
