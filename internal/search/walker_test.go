package search

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestWalkerDepthFirstLexicalOrder(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "c.txt", "b/x.go", "b/a/", "a.txt")

	got, w := walkAll(t, root, WalkOptions{})
	want := []string{"a.txt", "b", "b/a", "b/x.go", "c.txt"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("walk order = %v, want %v", got, want)
	}
	if stats := w.Stats(); stats.Files != 3 || stats.Dirs != 2 {
		t.Fatalf("stats = %+v", stats)
	}
	if _, ok := w.Next(); ok {
		t.Fatal("exhausted walker yielded again")
	}
}

func TestWalkerFilterAndHidden(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, ".env", "a.txt", "sub/")

	tests := []struct {
		name string
		opts WalkOptions
		want []string
	}{
		{"files only", WalkOptions{Filter: FilterFilesOnly}, []string{"a.txt"}},
		{"dirs only", WalkOptions{Filter: FilterDirsOnly}, []string{"sub"}},
		{"both", WalkOptions{}, []string{"a.txt", "sub"}},
		{"hidden files", WalkOptions{Filter: FilterFilesOnly, Hidden: true}, []string{".env", "a.txt"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := walkAll(t, root, tt.opts)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWalkerPrunesHiddenDirectories(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, ".git/config", "src/main.go")

	got, _ := walkAll(t, root, WalkOptions{Filter: FilterFilesOnly})
	if want := []string{"src/main.go"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestWalkerDirsOnlyStillDescends(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a/b/c/file.txt")

	got, _ := walkAll(t, root, WalkOptions{Filter: FilterDirsOnly})
	if want := []string{"a", "a/b", "a/b/c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestWalkerProtectedEntriesAlwaysSkipped(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "Cookies/", "notes.txt")

	prev := isProtectedFn
	isProtectedFn = func(fullPath, name string) bool { return name == "Cookies" }
	t.Cleanup(func() { isProtectedFn = prev })

	got, _ := walkAll(t, root, WalkOptions{Hidden: true})
	if want := []string{"notes.txt"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestWalkerIgnoreRules(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "node_modules/pkg/index.js", "Build/out.bin", "app.log", "Thumbs.db", "main.go")

	opts := WalkOptions{Ignore: IgnoreRules{
		Dirs:  []string{"node_modules", "build"},
		Files: []string{"*.log", "thumbs.db", " "},
	}}
	got, _ := walkAll(t, root, opts)
	if want := []string{"main.go"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestWalkerMaxFileSize(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "big.bin"), make([]byte, 2048), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "small.bin"), make([]byte, 16), 0o644); err != nil {
		t.Fatal(err)
	}

	got, _ := walkAll(t, root, WalkOptions{MaxFileSize: 1024})
	if want := []string{"small.bin"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestWalkerRecordsUnreadableDirectory(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "locked/secret.txt", "open/file.txt")
	locked := filepath.Join(root, "locked")

	stubReadDir(t, func(path string) ([]os.DirEntry, error) {
		if path == locked {
			return nil, fs.ErrPermission
		}
		return os.ReadDir(path)
	})

	got, w := walkAll(t, root, WalkOptions{})
	if want := []string{"locked", "open", "open/file.txt"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	errs := w.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected one traversal error, got %v", errs)
	}
	var te *TraversalError
	if !errors.As(errs[0], &te) || te.Path != locked || te.Op != "readdir" {
		t.Fatalf("unexpected error %#v", errs[0])
	}
	if !errors.Is(errs[0], fs.ErrPermission) {
		t.Fatalf("expected permission error to unwrap, got %v", errs[0])
	}
}

func TestWalkerSymlinkCycleTerminates(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a/file.txt")
	symlinkOrSkip(t, root, filepath.Join(root, "a", "loop"))

	got, w := walkAll(t, root, WalkOptions{FollowSymlinks: true})
	if want := []string{"a", "a/file.txt", "a/loop"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	errs := w.Errors()
	if len(errs) != 1 || !errors.Is(errs[0], ErrSymlinkCycle) {
		t.Fatalf("expected a single cycle error, got %v", errs)
	}
}

func TestWalkerFollowsSymlinkOneLevel(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	deeper := t.TempDir()
	makeTree(t, outside, "shared.txt")
	makeTree(t, deeper, "deep.txt")
	symlinkOrSkip(t, outside, filepath.Join(root, "ext"))
	symlinkOrSkip(t, deeper, filepath.Join(outside, "nested"))

	got, w := walkAll(t, root, WalkOptions{FollowSymlinks: true})
	if want := []string{"ext", "ext/nested", "ext/shared.txt"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if len(w.Errors()) != 0 {
		t.Fatalf("unexpected errors %v", w.Errors())
	}

	got, _ = walkAll(t, root, WalkOptions{FollowSymlinks: false})
	if want := []string{"ext"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("without following got %v, want %v", got, want)
	}
}

func TestWalkerSymlinkToDirCountsAsDir(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "real/")
	symlinkOrSkip(t, filepath.Join(root, "real"), filepath.Join(root, "alias"))

	w := NewWalker(t.Context(), root, WalkOptions{Filter: FilterDirsOnly})
	var names []string
	for c := range w.All() {
		if !c.IsDir() {
			t.Fatalf("%s yielded as non-directory", c.Path)
		}
		names = append(names, c.Name)
	}
	if want := []string{"alias", "real"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("got %v, want %v", names, want)
	}
}

func TestWalkerBrokenSymlinkIsFile(t *testing.T) {
	root := t.TempDir()
	symlinkOrSkip(t, filepath.Join(root, "missing"), filepath.Join(root, "dangling"))

	got, w := walkAll(t, root, WalkOptions{Filter: FilterFilesOnly, FollowSymlinks: true})
	if want := []string{"dangling"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if len(w.Errors()) != 0 {
		t.Fatalf("unexpected errors %v", w.Errors())
	}
}

func TestWalkerStopsOnCancel(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a.txt", "b.txt")

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	w := NewWalker(ctx, root, WalkOptions{})
	if c, ok := w.Next(); ok {
		t.Fatalf("cancelled walker yielded %s", c.Path)
	}
	if !errors.Is(w.Err(), context.Canceled) {
		t.Fatalf("Err() = %v", w.Err())
	}
}

func TestCandidateMetadata(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "data.bin"), make([]byte, 42), 0o644); err != nil {
		t.Fatal(err)
	}
	w := NewWalker(t.Context(), root, WalkOptions{})
	c, ok := w.Next()
	if !ok {
		t.Fatal("expected a candidate")
	}
	meta, err := c.Metadata()
	if err != nil {
		t.Fatal(err)
	}
	if meta.Size != 42 || !meta.IsRegular() || meta.Modified.IsZero() {
		t.Fatalf("unexpected metadata %+v", meta)
	}
}
