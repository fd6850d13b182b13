//go:build windows

package fs

// IsHidden reports dot-names and entries carrying the hidden attribute.
func IsHidden(fullPath string, name string) bool {
	if isDotName(name) {
		return true
	}
	attrs, err := fileAttributes(fullPath, name)
	if err != nil {
		return false
	}
	return attrs&fileAttributeHidden != 0
}

// IsProtected reports entries that stay out of results even with hidden
// files enabled, such as the compatibility junctions under a user profile.
func IsProtected(fullPath, name string) bool {
	attrs, err := fileAttributes(fullPath, name)
	if err != nil {
		return false
	}
	const mask = fileAttributeSystem | fileAttributeReparsePoint
	return attrs&mask == mask
}
