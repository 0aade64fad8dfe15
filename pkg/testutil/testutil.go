// Package testutil contains common test utilities.
package testutil

import (
	"os"
	"path/filepath"
)

// Cleanuper wraps the Cleanup method. It is a subset of testing.TB.
type Cleanuper interface {
	Cleanup(func())
}

// TempDir creates a temporary directory and returns its path with symlinks
// resolved. The directory and its content are removed when the test finishes.
func TempDir(c Cleanuper) string {
	dir, err := os.MkdirTemp("", "autoui-test")
	if err != nil {
		panic(err)
	}
	dir, err = filepath.EvalSymlinks(dir)
	if err != nil {
		panic(err)
	}
	c.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

// InTempDir is like TempDir, but also changes into the directory. The working
// directory is restored when the test finishes.
func InTempDir(c Cleanuper) string {
	dir := TempDir(c)
	Chdir(c, dir)
	return dir
}

// Chdir changes the working directory, restoring it when the test finishes.
func Chdir(c Cleanuper, dir string) {
	old, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	if err := os.Chdir(dir); err != nil {
		panic(err)
	}
	c.Cleanup(func() { os.Chdir(old) })
}

// ApplyDir creates files described by a map from relative paths to content.
func ApplyDir(files map[string]string) {
	for name, content := range files {
		if dir := filepath.Dir(name); dir != "." {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				panic(err)
			}
		}
		if err := os.WriteFile(name, []byte(content), 0o600); err != nil {
			panic(err)
		}
	}
}
