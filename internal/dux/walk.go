package dux

import (
	"errors"
	"io/fs"
	"os"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
)

// cancelCheckEvery is the visitation cadence at which subtree walks poll
// the cancellation flag.
const cancelCheckEvery = 1000

// errWalkStopped aborts a fastwalk traversal after the cancellation flag
// was observed set. It never escapes this file; partial aggregates are
// returned as-is.
var errWalkStopped = errors.New("walk stopped")

// roundUpKB maps a byte length to ceil(length/1024) kibibytes.
func roundUpKB(bytes uint64) uint64 {
	return (bytes + 1023) / 1024
}

// aggregate dispatches to the walk semantics selected by the mode.
func (m Mode) aggregate(path string, cancelled *atomic.Bool) (uint64, int64) {
	if m == ModeInodes {
		return countInodes(path, cancelled)
	}

	return sumSizeKB(path, cancelled)
}

// sumSizeKB returns the rounded-up kibibyte total of all regular files in
// the subtree rooted at path. A regular file at path is its own rounded
// size without traversal; other non-directories aggregate to zero.
// Symlinks are listed but never dereferenced into their targets.
func sumSizeKB(path string, cancelled *atomic.Bool) (uint64, int64) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, 1
	}

	if info.Mode().IsRegular() {
		return roundUpKB(uint64(info.Size())), 0 //nolint:gosec // Size is never negative
	}

	if !info.IsDir() {
		return 0, 0
	}

	var (
		total   atomic.Uint64
		errs    atomic.Int64
		visited atomic.Int64
	)

	conf := &fastwalk.Config{
		Follow: false, // Don't follow symlinks
	}

	//nolint:varnamelen // d is standard for DirEntry
	walkErr := fastwalk.Walk(conf, path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			errs.Add(1)

			return nil // Silently skip errors
		}

		if n := visited.Add(1); n%cancelCheckEvery == 0 && cancelled.Load() {
			return errWalkStopped
		}

		if !d.Type().IsRegular() {
			return nil
		}

		fileInfo, err := d.Info()
		if err != nil {
			errs.Add(1)

			return nil //nolint:nilerr // Intentionally skip errors during walk
		}

		total.Add(roundUpKB(uint64(fileInfo.Size()))) //nolint:gosec // Size is never negative

		return nil
	})
	if walkErr != nil && !errors.Is(walkErr, errWalkStopped) {
		errs.Add(1)
	}

	return total.Load(), errs.Load()
}

// countInodes returns the number of filesystem entries in the subtree
// rooted at path, the root itself included. A non-directory at path
// counts as exactly one entry.
func countInodes(path string, cancelled *atomic.Bool) (uint64, int64) {
	info, err := os.Lstat(path)
	if err != nil {
		return 0, 1
	}

	if !info.IsDir() {
		return 1, 0
	}

	var (
		count atomic.Uint64
		errs  atomic.Int64
	)

	conf := &fastwalk.Config{
		Follow: false, // Don't follow symlinks
	}

	walkErr := fastwalk.Walk(conf, path, func(_ string, _ fs.DirEntry, err error) error {
		if err != nil {
			errs.Add(1)

			return nil // Silently skip errors
		}

		if n := count.Add(1); n%cancelCheckEvery == 0 && cancelled.Load() {
			return errWalkStopped
		}

		return nil
	})
	if walkErr != nil && !errors.Is(walkErr, errWalkStopped) {
		errs.Add(1)
	}

	return count.Load(), errs.Load()
}
