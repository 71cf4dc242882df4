package dux

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// logger provides conditional debug output.
type logger struct {
	enabled bool
}

// printf prints debug output if logging is enabled.
func (l logger) printf(format string, args ...any) {
	if l.enabled {
		//nolint:forbidigo // Debug output to console
		fmt.Printf(format, args...)
	}
}

// listChildren reads the immediate children of dir, non-recursively.
// This listing defines the unit of parallel work: one task per child.
func listChildren(dir string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(dir)

	switch {
	case err == nil:
		return entries, nil
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %q", ErrNotFound, dir)
	case errors.Is(err, fs.ErrPermission):
		return nil, fmt.Errorf("%w: unable to access directory %q", ErrPermissionDenied, dir)
	default:
		return nil, fmt.Errorf("accessing directory %q: %w", dir, err)
	}
}

// Compute aggregates each immediate child of dir according to mode.
//
// One task per child runs on a fixed-size worker pool; per-task results
// are merged single-threaded from a channel, so the result map needs no
// locking. A watcher goroutine polls opts.ShouldCancel and sets a shared
// flag the walks observe; on cancellation Compute returns ErrCancelled
// with no results. The watcher is always joined before Compute returns.
func Compute(dir string, mode Mode, opts Options) (*Result, error) {
	log := logger{enabled: opts.Debug}

	if dir == "" {
		dir = "."
	}

	dir = filepath.Clean(dir)

	children, err := listChildren(dir)
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	log.printf("[debug]: aggregating %d children of %q with %d workers (%s mode)\n",
		len(children), dir, workers, mode)

	watcher := startWatcher(opts.ShouldCancel, opts.PollInterval)
	defer watcher.stop()

	jobs := make(chan string)
	results := make(chan childResult, len(children))

	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for name := range jobs {
				if watcher.flag.Load() {
					results <- childResult{name: name}

					continue
				}

				value, errCount := mode.aggregate(filepath.Join(dir, name), &watcher.flag)
				results <- childResult{name: name, value: value, errors: errCount}
			}
		}()
	}

	go func() {
		defer close(jobs)

		for _, child := range children {
			jobs <- child.Name()
		}
	}()

	// Merge single-threaded: each child owns exactly one key, and the
	// progress bar advances once per completed task.
	result := &Result{Entries: make(map[string]uint64, len(children))}
	bar := newProgressBar(opts.Progress, len(children))

	for range children {
		r := <-results
		result.Entries[r.name] = r.value
		result.ErrorCount += r.errors
		bar.advance()
	}

	wg.Wait()
	bar.clear()
	watcher.stop()

	// A stop request that arrived between the last poll and the join
	// still cancels, so check the predicate once more after joining.
	cancelled := watcher.fired.Load()
	if !cancelled && opts.ShouldCancel != nil && opts.ShouldCancel() {
		cancelled = true
	}

	if cancelled {
		return nil, fmt.Errorf("%w: aggregation of %q interrupted", ErrCancelled, dir)
	}

	if result.ErrorCount > 0 {
		log.printf("[debug]: %d entries could not be read\n", result.ErrorCount)
	}

	return result, nil
}
