package fs

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		mode fs.FileMode
		want Kind
	}{
		{0, KindFile},
		{fs.ModeDir, KindDir},
		{fs.ModeSymlink, KindSymlink},
		{fs.ModeSymlink | fs.ModeDir, KindSymlink},
	}
	for _, tt := range tests {
		if got := KindOf(tt.mode); got != tt.want {
			t.Errorf("KindOf(%v) = %v, want %v", tt.mode, got, tt.want)
		}
	}
}

func TestIsHiddenDotPrefix(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		want bool
	}{
		{".env", true},
		{".git", true},
		{".", false},
		{"a.txt", false},
		{"dot.", false},
	}
	for _, tt := range tests {
		if got := IsHidden(filepath.Join(dir, tt.name), tt.name); got != tt.want {
			t.Errorf("IsHidden(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsProtectedPlainEntries(t *testing.T) {
	dir := t.TempDir()
	if IsProtected(dir, filepath.Base(dir)) {
		t.Fatalf("ordinary directory reported as protected")
	}
}

func TestIdentifyFollowsSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation needs privileges on windows")
	}
	root := t.TempDir()
	target := filepath.Join(root, "target")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	link := filepath.Join(root, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	a, err := Identify(target)
	if err != nil {
		t.Fatalf("Identify(target): %v", err)
	}
	b, err := Identify(link)
	if err != nil {
		t.Fatalf("Identify(link): %v", err)
	}
	if a != b {
		t.Fatalf("expected link and target to share identity, got %+v and %+v", a, b)
	}
	if a.IsZero() {
		t.Fatalf("expected non-zero identity")
	}
}
