package output

import (
	"path/filepath"
	"strings"

	fsutil "github.com/kk-code-lab/ff/internal/fs"
	"github.com/kk-code-lab/ff/internal/search"
)

const (
	iconDir  = "📁"
	iconFile = "📄"
	iconLink = "🔗"
)

var extensionIcons = map[string]string{
	"rs":    "🦀",
	"go":    "🐹",
	"py":    "🐍",
	"js":    "📜",
	"ts":    "📜",
	"java":  "☕",
	"c":     "🔵",
	"h":     "📘",
	"hpp":   "📘",
	"cpp":   "💠",
	"cc":    "💠",
	"rb":    "💎",
	"php":   "🐘",
	"sh":    "🐚",
	"bash":  "🐚",
	"swift": "🍎",
	"cs":    "🎯",
	"json":  "📋",
	"yaml":  "⚙️",
	"yml":   "⚙️",
	"toml":  "🛠️",
	"csv":   "📊",
	"md":    "📝",
	"txt":   "📄",
	"html":  "🌐",
	"htm":   "🌐",
	"css":   "🎨",
	"pdf":   "📕",
	"png":   "🖼️",
	"jpg":   "🖼️",
	"jpeg":  "🖼️",
	"gif":   "🖼️",
	"svg":   "🖼️",
	"mp4":   "🎬",
	"mkv":   "🎬",
	"mov":   "🎬",
	"mp3":   "🎵",
	"wav":   "🎵",
	"zip":   "📦",
	"tar":   "📦",
	"gz":    "📦",
	"exe":   "⚡",
}

// Icon picks a glyph for a candidate from its kind and extension.
func Icon(c search.Candidate) string {
	if c.IsDir() {
		return iconDir
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(c.Name)), ".")
	if icon, ok := extensionIcons[ext]; ok {
		return icon
	}
	if c.Kind == fsutil.KindSymlink {
		return iconLink
	}
	return iconFile
}
