package dux

import (
	"io"
	"time"
)

// DefaultPollInterval is the default cadence at which the cancellation
// watcher queries the ShouldCancel predicate.
const DefaultPollInterval = 100 * time.Millisecond

// Mode selects the aggregation semantics for a run.
type Mode uint8

const (
	// ModeSize sums the on-disk size of regular files, rounded up to kibibytes.
	ModeSize Mode = iota
	// ModeInodes counts filesystem entries instead of bytes.
	ModeInodes
)

// String returns the mode name as used in CLI flags and JSON output.
func (m Mode) String() string {
	if m == ModeInodes {
		return "inodes"
	}

	return "size"
}

// Options configures aggregation and report rendering.
type Options struct {
	// ShouldCancel is polled periodically by the cancellation watcher.
	// A nil predicate disables external cancellation.
	ShouldCancel func() bool
	// PollInterval controls the watcher cadence (default 100ms).
	PollInterval time.Duration
	// Workers is the aggregation pool size (0 = available parallelism).
	Workers int
	// Progress receives the in-place progress bar. Nil disables it.
	Progress io.Writer
	// Grouping enables thousand separators in inode counts.
	Grouping bool
	// TypeSuffix appends @ (symlink), / (directory) or nothing to names.
	TypeSuffix bool
	// Debug indicates whether debug output is enabled.
	Debug bool
}

// Result holds the aggregates for one directory query.
type Result struct {
	// Entries maps each immediate child name to its aggregate value:
	// kibibytes in ModeSize, entry count in ModeInodes.
	Entries map[string]uint64 `json:"entries"`
	// ErrorCount is the number of subtree entries that could not be
	// read. Their contribution is missing from the aggregates.
	ErrorCount int64 `json:"error_count"`
}

// Total returns the sum of all aggregate values.
func (r *Result) Total() uint64 {
	var total uint64
	for _, v := range r.Entries {
		total += v
	}

	return total
}

// childResult is one worker's aggregate for a single top-level entry,
// passed over the merge channel so no shared map is needed.
type childResult struct {
	name   string
	value  uint64
	errors int64
}
