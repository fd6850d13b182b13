package fs

// ID identifies a directory independent of the path used to reach it.
// On Unix it is the device/inode pair; elsewhere the canonical path.
type ID struct {
	Dev  uint64
	Ino  uint64
	Path string
}

// IsZero reports whether the identity was never resolved.
func (id ID) IsZero() bool {
	return id.Dev == 0 && id.Ino == 0 && id.Path == ""
}
