//go:build windows

package fs

import (
	"os"

	"golang.org/x/sys/windows"
)

const (
	fileAttributeHidden       = windows.FILE_ATTRIBUTE_HIDDEN
	fileAttributeSystem       = windows.FILE_ATTRIBUTE_SYSTEM
	fileAttributeReparsePoint = windows.FILE_ATTRIBUTE_REPARSE_POINT
)

// fileAttributes reads the attribute mask of fullPath, falling back to name
// when the full path is empty.
func fileAttributes(fullPath, name string) (uint32, error) {
	target := fullPath
	if target == "" {
		target = name
	}
	if target == "" {
		return 0, os.ErrInvalid
	}
	ptr, err := windows.UTF16PtrFromString(target)
	if err != nil {
		return 0, err
	}
	return windows.GetFileAttributes(ptr)
}
