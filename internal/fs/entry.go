package fs

import (
	iofs "io/fs"
	"os"
	"time"
)

// Kind classifies a filesystem entry as seen during traversal.
type Kind uint8

const (
	KindFile Kind = iota
	KindDir
	KindSymlink
)

func (k Kind) String() string {
	switch k {
	case KindDir:
		return "dir"
	case KindSymlink:
		return "symlink"
	default:
		return "file"
	}
}

// KindOf maps the type bits of a directory entry to a Kind without a stat call.
func KindOf(mode iofs.FileMode) Kind {
	switch {
	case mode&iofs.ModeSymlink != 0:
		return KindSymlink
	case mode.IsDir():
		return KindDir
	default:
		return KindFile
	}
}

// Metadata carries the details that are only fetched for detailed output.
type Metadata struct {
	Size     int64
	Modified time.Time
	Mode     os.FileMode
}

// MetadataFromInfo copies the fields of info into a Metadata value.
func MetadataFromInfo(info iofs.FileInfo) Metadata {
	if info == nil {
		return Metadata{}
	}
	return Metadata{
		Size:     info.Size(),
		Modified: info.ModTime(),
		Mode:     info.Mode(),
	}
}

// IsRegular reports whether the metadata describes a regular file.
func (m Metadata) IsRegular() bool {
	return m.Mode.IsRegular()
}
