//go:build windows

package fs

import (
	"path/filepath"
	"strings"
)

// Identify resolves the identity of path, following symlinks and junctions.
// Windows has no stable inode through os.Stat, so the canonical path is used.
func Identify(path string) (ID, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return ID{}, err
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return ID{}, err
	}
	return ID{Path: strings.ToLower(filepath.Clean(abs))}, nil
}
