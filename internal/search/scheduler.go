package search

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	defaultWorkerCap = 16
	maxWorkers       = 64
)

var numCPU = runtime.NumCPU

// Logger receives diagnostics from a search. It is satisfied by
// *logger.ConsoleLogger.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Warnf(string, ...any)  {}

// Option customises a single Search call.
type Option func(*searchOptions)

type searchOptions struct {
	logger           Logger
	progress         func(Progress)
	progressInterval time.Duration
}

// WithLogger routes search diagnostics to l.
func WithLogger(l Logger) Option {
	return func(o *searchOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithProgress registers a callback receiving periodic scan counters. The
// callback runs on a dedicated goroutine and gets a final snapshot before
// Search returns.
func WithProgress(fn func(Progress)) Option {
	return func(o *searchOptions) {
		o.progress = fn
	}
}

// WithProgressInterval overrides how often progress is reported.
func WithProgressInterval(d time.Duration) Option {
	return func(o *searchOptions) {
		o.progressInterval = d
	}
}

// Search walks cfg.Root, matches every candidate name against q and returns
// the best cfg.Limit matches in rank order.
//
// Configuration problems are returned as *ConfigError before any traversal.
// Unreadable subtrees and worker panics do not fail the search; they are
// listed in the Report. When ctx is cancelled, the matches found so far are
// returned together with ctx.Err().
func Search(ctx context.Context, cfg Config, q Query, opts ...Option) (ResultSet, Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, Report{}, err
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, Report{}, &ConfigError{Field: "root", Value: cfg.Root, Err: err}
	}
	cfg.Root = root
	if ctx == nil {
		ctx = context.Background()
	}

	o := searchOptions{logger: nopLogger{}}
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	matcher := NewMatcher(q)
	wopts := walkOptionsFor(cfg)

	var tracker *progressTracker
	if o.progress != nil {
		tracker = newProgressTracker(start, o.progressInterval, o.progress)
		wopts.onScan = tracker.add
		tracker.run()
	}

	o.logger.Debugf("search root=%s query=%q mode=%s filter=%s parallel=%t", cfg.Root, q.Text, q.Mode, cfg.Filter(), cfg.Parallel)

	var (
		results ResultSet
		report  Report
	)
	if cfg.Parallel {
		results, report = searchParallel(ctx, cfg, matcher, wopts, o.logger)
	} else {
		results, report = searchSequential(ctx, cfg, matcher, wopts)
	}

	if tracker != nil {
		tracker.finish()
	}

	sortErrors(report.TraversalErrors)
	report.Elapsed = time.Since(start)
	for _, err := range report.WorkerFailures {
		o.logger.Warnf("%v", err)
	}
	o.logger.Debugf("search finished: %d matches, %d entries scanned, %d errors in %s",
		len(results), report.Scanned(), len(report.TraversalErrors), report.Elapsed)

	if err := ctx.Err(); err != nil {
		report.Cancelled = true
		return results, report, err
	}
	return results, report, nil
}

func searchSequential(ctx context.Context, cfg Config, m *Matcher, wopts WalkOptions) (ResultSet, Report) {
	w := NewWalker(ctx, cfg.Root, wopts)
	tc := newTopCollector(cfg.Limit)
	for c := range w.All() {
		offer(tc, m, c)
	}
	stats := w.Stats()
	return ResultSet(tc.Results()), Report{
		FilesScanned:    stats.Files,
		DirsScanned:     stats.Dirs,
		TraversalErrors: w.Errors(),
		Workers:         1,
	}
}

// workerSlot is owned by exactly one worker goroutine until the pool joins.
type workerSlot struct {
	collector *topCollector
	files     int
	dirs      int
	errs      []error
	failures  []error
}

func searchParallel(ctx context.Context, cfg Config, m *Matcher, wopts WalkOptions, log Logger) (ResultSet, Report) {
	report := Report{Parallel: true}

	entries, err := readDirFn(cfg.Root)
	if err != nil {
		report.TraversalErrors = append(report.TraversalErrors, &TraversalError{Op: "readdir", Path: cfg.Root, Err: err})
	}
	workers := workerCount(cfg.Threads, len(entries))
	report.Workers = workers
	if workers == 0 {
		return ResultSet{}, report
	}
	log.Debugf("parallel search: %d workers over %d subtrees", workers, len(entries))

	tasks := make(chan os.DirEntry)
	slots := make([]workerSlot, workers)

	var g errgroup.Group
	g.Go(func() error {
		defer close(tasks)
		for _, entry := range entries {
			select {
			case tasks <- entry:
			case <-ctx.Done():
				return nil
			}
		}
		return nil
	})
	for id := range slots {
		slot := &slots[id]
		slot.collector = newTopCollector(cfg.Limit)
		g.Go(func() error {
			for entry := range tasks {
				slot.run(ctx, id, cfg.Root, entry, m, wopts)
			}
			return nil
		})
	}
	_ = g.Wait()

	parts := make([][]ScoredMatch, 0, workers)
	for i := range slots {
		slot := &slots[i]
		parts = append(parts, slot.collector.Results())
		report.FilesScanned += slot.files
		report.DirsScanned += slot.dirs
		report.TraversalErrors = append(report.TraversalErrors, slot.errs...)
		report.WorkerFailures = append(report.WorkerFailures, slot.failures...)
	}
	return mergeRanked(parts, cfg.Limit), report
}

// run walks the subtree rooted at one child of root. A panic ends this task
// only; matches stored before it are kept.
func (s *workerSlot) run(ctx context.Context, worker int, root string, entry os.DirEntry, m *Matcher, wopts WalkOptions) {
	w := newWalker(ctx, root, wopts, []os.DirEntry{entry})
	defer func() {
		stats := w.Stats()
		s.files += stats.Files
		s.dirs += stats.Dirs
		s.errs = append(s.errs, w.Errors()...)
		if r := recover(); r != nil {
			s.failures = append(s.failures, &WorkerFailure{
				Worker:  worker,
				Subtree: filepath.Join(root, entry.Name()),
				Value:   r,
			})
		}
	}()
	for c := range w.All() {
		offer(s.collector, m, c)
	}
}

func offer(tc *topCollector, m *Matcher, c Candidate) {
	score, positions, ok := m.Match(c.Name)
	if !ok {
		return
	}
	tc.Store(ScoredMatch{Candidate: c, Score: score, Positions: positions})
}

// workerCount sizes the pool: the configured thread count, or the CPU count
// capped at defaultWorkerCap, never above maxWorkers or the number of tasks.
func workerCount(threads, tasks int) int {
	if tasks <= 0 {
		return 0
	}
	n := threads
	if n <= 0 {
		n = min(numCPU(), defaultWorkerCap)
	}
	return max(1, min(n, maxWorkers, tasks))
}

func sortErrors(errs []error) {
	slices.SortStableFunc(errs, func(a, b error) int {
		return strings.Compare(a.Error(), b.Error())
	})
}
