//go:build !windows

package fs

// IsHidden reports dot-names as hidden. A bare "." is not.
func IsHidden(_ string, name string) bool {
	return isDotName(name)
}

// IsProtected never applies outside Windows.
func IsProtected(_, _ string) bool {
	return false
}
