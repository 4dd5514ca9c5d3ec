// Package repo discovers the wphooks project a command runs in.
//
// A project is a directory containing a .wphooks directory, which holds the
// local config. Discovery mirrors git: starting from the working directory,
// walk up until a .wphooks directory is found or the filesystem root is
// reached. Running from a subdirectory therefore still picks up the
// project's config.
package repo

import (
	"errors"
	"os"
	"path/filepath"
)

// Dir is the per-project directory name.
const Dir = ".wphooks"

// ErrNotFound is returned when no ancestor contains a .wphooks directory.
var ErrNotFound = errors.New("no " + Dir + " directory found")

// Find walks up from start and returns the first directory containing a
// .wphooks directory.
//
// ignore names a .wphooks directory that does not mark a project, normally
// the global state directory: without it ~/.wphooks would make the home
// directory a project for everything beneath it.
func Find(start, ignore string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	if ignore != "" {
		if abs, err := filepath.Abs(ignore); err == nil {
			ignore = abs
		}
	}

	for {
		candidate := filepath.Join(dir, Dir)
		if candidate != ignore {
			if info, err := os.Stat(candidate); err == nil && info.IsDir() {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// Root returns the project root for the working directory, or the working
// directory itself when no project is found. Returns "." only when the
// working directory cannot be determined.
func Root(ignore string) string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	if root, err := Find(wd, ignore); err == nil {
		return root
	}
	return wd
}
