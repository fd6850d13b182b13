package search

import (
	"context"
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	fsutil "github.com/kk-code-lab/ff/internal/fs"
)

// Test hooks mirroring the filesystem calls made during traversal.
var (
	readDirFn     = os.ReadDir
	statFn        = os.Stat
	identifyFn    = fsutil.Identify
	isProtectedFn = fsutil.IsProtected
	isHiddenFn    = fsutil.IsHidden
)

// WalkOptions controls which entries a Walker yields and descends into.
type WalkOptions struct {
	Hidden         bool
	Filter         EntryFilter
	FollowSymlinks bool
	Ignore         IgnoreRules
	MaxFileSize    int64

	// onScan is called for every entry that survives pruning, before the
	// kind filter is applied.
	onScan func(isDir bool)
}

func walkOptionsFor(cfg Config) WalkOptions {
	return WalkOptions{
		Hidden:         cfg.Hidden,
		Filter:         cfg.Filter(),
		FollowSymlinks: cfg.FollowSymlinks,
		Ignore:         cfg.Ignore,
		MaxFileSize:    cfg.MaxFileSize,
	}
}

// WalkStats counts the entries a Walker visited.
type WalkStats struct {
	Files int
	Dirs  int
}

// frame is one directory on the active traversal branch. Its identity is
// resolved only when a symlink has to be checked against the branch.
type frame struct {
	path     string
	entries  []os.DirEntry
	next     int
	viaLink  bool
	id       fsutil.ID
	resolved bool
}

// Walker yields the entries below a root depth-first, in lexical order within
// each directory. A Walker is single-use: once Next reports false it stays
// exhausted.
type Walker struct {
	ctx     context.Context
	root    string
	opts    WalkOptions
	ignore  *ignoreMatcher
	stack   []frame
	pending *frame
	done    bool
	stats   WalkStats
	errs    []error
	err     error
}

// NewWalker prepares a traversal of root. No filesystem access happens until
// the first call to Next.
func NewWalker(ctx context.Context, root string, opts WalkOptions) *Walker {
	return newWalker(ctx, root, opts, nil)
}

// newWalker builds a walker whose root listing is optionally supplied by the
// caller. Parallel workers use it to walk one child of the root while keeping
// the root on the branch for cycle detection.
func newWalker(ctx context.Context, root string, opts WalkOptions, rootEntries []os.DirEntry) *Walker {
	if ctx == nil {
		ctx = context.Background()
	}
	w := &Walker{
		ctx:    ctx,
		root:   root,
		opts:   opts,
		ignore: newIgnoreMatcher(opts.Ignore),
	}
	if rootEntries != nil {
		w.stack = append(w.stack, frame{path: root, entries: rootEntries})
	} else {
		w.pending = &frame{path: root}
	}
	return w
}

// Next returns the next candidate that passes the configured filters.
func (w *Walker) Next() (Candidate, bool) {
	for !w.done {
		if err := w.ctx.Err(); err != nil {
			w.err = err
			w.finish()
			break
		}

		if w.pending != nil {
			w.descend(*w.pending)
			w.pending = nil
			continue
		}

		if len(w.stack) == 0 {
			w.finish()
			break
		}

		top := &w.stack[len(w.stack)-1]
		if top.next >= len(top.entries) {
			w.stack = w.stack[:len(w.stack)-1]
			continue
		}
		entry := top.entries[top.next]
		top.next++

		if c, ok := w.visit(top.path, top.viaLink, entry); ok {
			return c, true
		}
	}
	return Candidate{}, false
}

// All exposes the remaining candidates as a range-over-func sequence.
func (w *Walker) All() iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		for {
			c, ok := w.Next()
			if !ok || !yield(c) {
				return
			}
		}
	}
}

// Stats returns the counters accumulated so far.
func (w *Walker) Stats() WalkStats {
	return w.stats
}

// Errors returns the traversal errors recorded so far.
func (w *Walker) Errors() []error {
	return w.errs
}

// Err returns the context error that stopped the walk early, if any.
func (w *Walker) Err() error {
	return w.err
}

func (w *Walker) finish() {
	w.done = true
	w.stack = nil
	w.pending = nil
}

func (w *Walker) descend(f frame) {
	entries, err := readDirFn(f.path)
	if err != nil {
		w.record("readdir", f.path, err)
		if len(entries) == 0 {
			return
		}
	}
	f.entries = entries
	w.stack = append(w.stack, f)
}

func (w *Walker) visit(parent string, parentViaLink bool, entry os.DirEntry) (Candidate, bool) {
	name := entry.Name()
	path := filepath.Join(parent, name)

	if isProtectedFn(path, name) {
		return Candidate{}, false
	}
	if !w.opts.Hidden && isHiddenFn(path, name) {
		return Candidate{}, false
	}

	kind := fsutil.KindOf(entry.Type())
	isDir := kind == fsutil.KindDir
	var next *frame
	if isDir {
		next = &frame{path: path, viaLink: parentViaLink}
	}

	if kind == fsutil.KindSymlink {
		target, err := statFn(path)
		if err == nil && target.IsDir() {
			isDir = true
			next = w.followLink(path, parentViaLink)
		}
	}

	if isDir {
		if w.ignore.skipDir(name) {
			return Candidate{}, false
		}
	} else {
		if w.ignore.skipFile(name) {
			return Candidate{}, false
		}
		if w.opts.MaxFileSize > 0 && w.exceedsMaxSize(path, entry) {
			return Candidate{}, false
		}
	}

	if isDir {
		w.stats.Dirs++
	} else {
		w.stats.Files++
	}
	if w.opts.onScan != nil {
		w.opts.onScan(isDir)
	}

	if next != nil {
		w.pending = next
	}

	c := Candidate{Path: path, Name: name, Kind: kind, dir: isDir, entry: entry}
	if !w.opts.Filter.Accepts(c) {
		return Candidate{}, false
	}
	return c, true
}

// followLink decides whether a symlinked directory is descended. Links are
// followed one level deep and never into a directory already on the branch.
func (w *Walker) followLink(path string, parentViaLink bool) *frame {
	if !w.opts.FollowSymlinks || parentViaLink {
		return nil
	}
	id, err := identifyFn(path)
	if err != nil {
		w.record("stat", path, err)
		return nil
	}
	if w.onBranch(id) {
		w.record("follow", path, ErrSymlinkCycle)
		return nil
	}
	return &frame{path: path, viaLink: true, id: id, resolved: true}
}

func (w *Walker) onBranch(id fsutil.ID) bool {
	for i := range w.stack {
		f := &w.stack[i]
		if !f.resolved {
			resolved, err := identifyFn(f.path)
			if err != nil {
				continue
			}
			f.id, f.resolved = resolved, true
		}
		if f.id == id {
			return true
		}
	}
	return false
}

func (w *Walker) exceedsMaxSize(path string, entry os.DirEntry) bool {
	var (
		info fs.FileInfo
		err  error
	)
	if entry.Type()&fs.ModeSymlink != 0 {
		info, err = statFn(path)
	} else {
		info, err = entry.Info()
	}
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Size() > w.opts.MaxFileSize
}

func (w *Walker) record(op, path string, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	w.errs = append(w.errs, &TraversalError{Op: op, Path: path, Err: err})
}
