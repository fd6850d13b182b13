package search

import (
	"sync"
	"sync/atomic"
	"time"
)

const defaultProgressInterval = 100 * time.Millisecond

// Progress is a snapshot of a running search.
type Progress struct {
	FilesScanned int
	DirsScanned  int
	Elapsed      time.Duration
}

// progressTracker counts scanned entries from any number of walkers and
// reports them from a single goroutine, so the callback is never invoked
// concurrently.
type progressTracker struct {
	emit         func(Progress)
	start        time.Time
	interval     time.Duration
	files        atomic.Int64
	dirs         atomic.Int64
	lastReported int64
	clock        func() time.Time

	stop chan struct{}
	wg   sync.WaitGroup
}

func newProgressTracker(start time.Time, interval time.Duration, emit func(Progress)) *progressTracker {
	if interval <= 0 {
		interval = defaultProgressInterval
	}
	return &progressTracker{
		emit:     emit,
		start:    start,
		interval: interval,
		clock:    time.Now,
		stop:     make(chan struct{}),
	}
}

func (pt *progressTracker) add(isDir bool) {
	if isDir {
		pt.dirs.Add(1)
	} else {
		pt.files.Add(1)
	}
}

func (pt *progressTracker) run() {
	pt.wg.Add(1)
	go func() {
		defer pt.wg.Done()
		ticker := time.NewTicker(pt.interval)
		defer ticker.Stop()
		for {
			select {
			case <-pt.stop:
				return
			case <-ticker.C:
				pt.update()
			}
		}
	}()
}

func (pt *progressTracker) update() {
	files, dirs := pt.files.Load(), pt.dirs.Load()
	if files+dirs <= pt.lastReported {
		return
	}
	pt.report(files, dirs)
}

// finish stops the ticker goroutine and emits the final counts.
func (pt *progressTracker) finish() {
	close(pt.stop)
	pt.wg.Wait()
	pt.report(pt.files.Load(), pt.dirs.Load())
}

func (pt *progressTracker) report(files, dirs int64) {
	pt.lastReported = files + dirs
	pt.emit(Progress{
		FilesScanned: int(files),
		DirsScanned:  int(dirs),
		Elapsed:      pt.clock().Sub(pt.start),
	})
}
