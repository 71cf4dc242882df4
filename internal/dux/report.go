package dux

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

// maxMarks is the length of a full histogram bar.
const maxMarks = 20

// row is the rendered view of one aggregate, built only after all
// workers have finished.
type row struct {
	name  string
	value uint64
}

// Classify returns the type indicator for path: "@" for a symlink, "/"
// for a directory, "" for anything else (regular files included).
func Classify(path string) string {
	if info, err := os.Lstat(path); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return "@"
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return "/"
	}

	return ""
}

// formatSize renders a kibibyte count with a 1000-based unit: values of
// at least 1e9 KB print as Tb, 1e6 as Gb, 1e3 as Mb, and anything
// smaller divides by 1000 once and prints as Kb.
func formatSize(sizeKB uint64) string {
	value := float64(sizeKB)

	switch {
	case sizeKB >= 1_000_000_000:
		return fmt.Sprintf("%.1f Tb", value/1_000_000_000)
	case sizeKB >= 1_000_000:
		return fmt.Sprintf("%.1f Gb", value/1_000_000)
	case sizeKB >= 1_000:
		return fmt.Sprintf("%.1f Mb", value/1_000)
	default:
		return fmt.Sprintf("%.1f Kb", value/1_000)
	}
}

// formatCount renders an inode count, comma-grouped unless disabled.
func formatCount(count uint64, grouping bool) string {
	if !grouping {
		return fmt.Sprintf("%d", count)
	}

	return humanize.Comma(int64(count)) //nolint:gosec // Entry counts never overflow int64
}

// magnitude renders an aggregate in the mode's column format.
func (m Mode) magnitude(value uint64, grouping bool) string {
	if m == ModeInodes {
		return formatCount(value, grouping)
	}

	return formatSize(value)
}

// histogramMarks returns the bar length for value relative to the
// largest sibling aggregate, clamped to [1, maxMarks]. When nothing is
// larger than zero every bar is full by convention.
func histogramMarks(value, maxValue uint64) int {
	if maxValue == 0 {
		return maxMarks
	}

	marks := int(float64(maxMarks-1)*float64(value)/float64(maxValue)) + 1

	if marks < 1 {
		marks = 1
	}

	if marks > maxMarks {
		marks = maxMarks
	}

	return marks
}

// Render computes the aggregates for dir and writes the histogram report
// to w. A cancelled run returns ErrCancelled and writes nothing; other
// top-level failures abort with no partial output.
func Render(w io.Writer, dir string, mode Mode, opts Options) error {
	result, err := Compute(dir, mode, opts)
	if err != nil {
		return err
	}

	rows := make([]row, 0, len(result.Entries))

	for name, value := range result.Entries {
		display := name
		if opts.TypeSuffix {
			display += Classify(filepath.Join(dir, name))
		}

		rows = append(rows, row{name: display, value: value})
	}

	// Ascending by aggregate, name breaks ties so output is stable.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].value != rows[j].value {
			return rows[i].value < rows[j].value
		}

		return rows[i].name < rows[j].name
	})

	var total, maxValue uint64

	for _, r := range rows {
		total += r.value

		if r.value > maxValue {
			maxValue = r.value
		}
	}

	colName := "Size"
	if mode == ModeInodes {
		colName = "inodes"
	}

	fmt.Fprintf(w, "Statistics of directory %q :\n\n", dir)
	fmt.Fprintf(w, "%-14s %-6s %-20s %-10s\n", colName, "In %", "Histogram", "Name")

	if result.ErrorCount > 0 {
		fmt.Fprintf(w, "%-*s %-10s\n", 22+maxMarks, "Permission denied", "<root>")
	}

	for _, r := range rows {
		percentage := 100.0
		if total != 0 {
			percentage = 100 * float64(r.value) / float64(total)
		}

		fmt.Fprintf(w, "%-14s %-6.2f %-20s %-10s\n",
			mode.magnitude(r.value, opts.Grouping),
			percentage,
			strings.Repeat("#", histogramMarks(r.value, maxValue)),
			r.name)
	}

	fmt.Fprintf(w, "\nTotal directory size: %s\n", mode.magnitude(total, opts.Grouping))

	if result.ErrorCount > 0 {
		fmt.Fprintf(w, "\ndux has no permission to access certain subdirectories !\n")
	}

	return nil
}
