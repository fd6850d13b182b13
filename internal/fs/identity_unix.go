//go:build !windows

package fs

import (
	"golang.org/x/sys/unix"
)

// Identify resolves the identity of path, following symlinks.
func Identify(path string) (ID, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return ID{}, err
	}
	return ID{Dev: uint64(st.Dev), Ino: uint64(st.Ino)}, nil
}
