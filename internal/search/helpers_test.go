package search

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// makeTree creates the given entries under root. Names ending in "/" are
// directories; everything else is written as a small file.
func makeTree(t *testing.T, root string, entries ...string) {
	t.Helper()
	for _, e := range entries {
		full := filepath.Join(root, filepath.FromSlash(strings.TrimSuffix(e, "/")))
		if strings.HasSuffix(e, "/") {
			if err := os.MkdirAll(full, 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", full, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", filepath.Dir(full), err)
		}
		if err := os.WriteFile(full, []byte(e), 0o644); err != nil {
			t.Fatalf("write %s: %v", full, err)
		}
	}
}

func symlinkOrSkip(t *testing.T, target, link string) {
	t.Helper()
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
}

// relPaths returns candidate paths relative to root, in slash form.
func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, len(paths))
	for i, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatalf("rel %s: %v", p, err)
		}
		out[i] = filepath.ToSlash(rel)
	}
	return out
}

func walkAll(t *testing.T, root string, opts WalkOptions) ([]string, *Walker) {
	t.Helper()
	w := NewWalker(t.Context(), root, opts)
	var paths []string
	for c := range w.All() {
		paths = append(paths, c.Path)
	}
	return relPaths(t, root, paths), w
}

func stubReadDir(t *testing.T, fn func(string) ([]os.DirEntry, error)) {
	t.Helper()
	prev := readDirFn
	readDirFn = fn
	t.Cleanup(func() { readDirFn = prev })
}
