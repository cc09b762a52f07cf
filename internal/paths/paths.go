// Package paths resolves the optional, drifting filesystem locations that
// game launchers use. Every lookup returns the first candidate that actually
// exists; a miss is the normal case on machines where a launcher is not
// installed and is never an error.
package paths

import (
	"os"
	"path/filepath"
)

// Kind selects what a resolved path must be on disk.
type Kind int

const (
	// File requires a regular file.
	File Kind = iota
	// Dir requires a directory.
	Dir
)

// Resolve joins suffix onto each candidate root in order and returns the
// first result that exists as kind. Empty when no candidate matches.
func Resolve(candidates []string, suffix string, kind Kind) string {
	for _, root := range candidates {
		if root == "" {
			continue
		}
		p := filepath.Join(root, suffix)
		if exists(p, kind) {
			return p
		}
	}
	return ""
}

// IfFile returns path when it names an existing regular file, else empty.
func IfFile(path string) string {
	if path != "" && exists(path, File) {
		return path
	}
	return ""
}

// IfDir returns path when it names an existing directory, else empty.
func IfDir(path string) string {
	if path != "" && exists(path, Dir) {
		return path
	}
	return ""
}

// FirstImage probes dir for stem.png, stem.jpg and stem.jpeg in that order
// and returns the first that exists.
func FirstImage(dir, stem string) string {
	for _, ext := range []string{".png", ".jpg", ".jpeg"} {
		if p := IfFile(filepath.Join(dir, stem+ext)); p != "" {
			return p
		}
	}
	return ""
}

func exists(path string, kind Kind) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if kind == Dir {
		return info.IsDir()
	}
	return info.Mode().IsRegular()
}
