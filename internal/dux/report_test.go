package dux

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		sizeKB uint64
		want   string
	}{
		{0, "0.0 Kb"},
		{500, "0.5 Kb"},
		{1500, "1.5 Mb"},
		{1_500_000, "1.5 Gb"},
		{1_500_000_000, "1.5 Tb"},
	}

	for _, tt := range tests {
		if got := formatSize(tt.sizeKB); got != tt.want {
			t.Errorf("formatSize(%d) = %q, want %q", tt.sizeKB, got, tt.want)
		}
	}
}

func TestFormatCount(t *testing.T) {
	if got := formatCount(1234567, true); got != "1,234,567" {
		t.Errorf("formatCount(1234567, grouped) = %q, want 1,234,567", got)
	}

	if got := formatCount(1234567, false); got != "1234567" {
		t.Errorf("formatCount(1234567, plain) = %q, want 1234567", got)
	}
}

func TestHistogramMarks(t *testing.T) {
	tests := []struct {
		value    uint64
		maxValue uint64
		want     int
	}{
		{100, 100, 20}, // the maximum always gets a full bar
		{0, 100, 1},    // zero still gets one mark when a maximum exists
		{50, 100, 10},
		{0, 0, 20}, // nothing to compare against, full by convention
		{1, 100, 1},
	}

	for _, tt := range tests {
		if got := histogramMarks(tt.value, tt.maxValue); got != tt.want {
			t.Errorf("histogramMarks(%d, %d) = %d, want %d", tt.value, tt.maxValue, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	root := t.TempDir()

	file := filepath.Join(root, "file")
	writeBytes(t, file, 1)

	if got := Classify(file); got != "" {
		t.Errorf("Classify(file) = %q, want empty", got)
	}

	dir := filepath.Join(root, "dir")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	if got := Classify(dir); got != "/" {
		t.Errorf("Classify(dir) = %q, want /", got)
	}

	link := filepath.Join(root, "link")
	if err := os.Symlink(file, link); err != nil {
		t.Skip("symlinks not supported:", err)
	}

	if got := Classify(link); got != "@" {
		t.Errorf("Classify(symlink) = %q, want @", got)
	}
}

func TestRender_percentagesAndOrder(t *testing.T) {
	root := t.TempDir()
	writeBytes(t, filepath.Join(root, "big"), 2048)
	writeBytes(t, filepath.Join(root, "empty"), 0)

	var buf bytes.Buffer

	if err := Render(&buf, root, ModeSize, Options{}); err != nil {
		t.Fatal(err)
	}

	out := buf.String()

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) < 4 {
		t.Fatalf("unexpected report:\n%s", out)
	}

	var emptyLine, bigLine string

	for _, line := range lines {
		switch {
		case strings.Contains(line, "empty"):
			emptyLine = line
		case strings.Contains(line, "big"):
			bigLine = line
		}
	}

	if !strings.Contains(emptyLine, "0.00") {
		t.Errorf("empty row %q missing 0.00%%", emptyLine)
	}

	if !strings.Contains(bigLine, "100.00") {
		t.Errorf("big row %q missing 100.00%%", bigLine)
	}

	if !strings.Contains(bigLine, strings.Repeat("#", maxMarks)) {
		t.Errorf("big row %q missing full histogram bar", bigLine)
	}

	// Ascending by value: the empty row prints before the big one.
	if strings.Index(out, "empty") > strings.Index(out, "big") {
		t.Errorf("rows not sorted ascending:\n%s", out)
	}

	if !strings.Contains(out, "Total directory size:") {
		t.Errorf("report missing total line:\n%s", out)
	}
}

func TestRender_tieBreakByName(t *testing.T) {
	root := t.TempDir()

	// Same aggregate for every child, so ordering falls back to names.
	for _, name := range []string{"cherry", "apple", "banana"} {
		writeBytes(t, filepath.Join(root, name), 100)
	}

	var buf bytes.Buffer

	if err := Render(&buf, root, ModeSize, Options{}); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !(strings.Index(out, "apple") < strings.Index(out, "banana") &&
		strings.Index(out, "banana") < strings.Index(out, "cherry")) {
		t.Errorf("equal aggregates not ordered by name:\n%s", out)
	}
}

func TestRender_inodesHeaderAndGrouping(t *testing.T) {
	root := t.TempDir()
	writeBytes(t, filepath.Join(root, "file"), 1)

	var buf bytes.Buffer

	if err := Render(&buf, root, ModeInodes, Options{Grouping: true}); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(buf.String(), "inodes") {
		t.Errorf("inodes report missing column header:\n%s", buf.String())
	}
}

func TestRender_typeSuffix(t *testing.T) {
	root := t.TempDir()

	if err := os.Mkdir(filepath.Join(root, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer

	if err := Render(&buf, root, ModeSize, Options{TypeSuffix: true}); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(buf.String(), "sub/") {
		t.Errorf("directory row missing / suffix:\n%s", buf.String())
	}

	buf.Reset()

	if err := Render(&buf, root, ModeSize, Options{}); err != nil {
		t.Fatal(err)
	}

	if strings.Contains(buf.String(), "sub/") {
		t.Errorf("suffix rendered despite being suppressed:\n%s", buf.String())
	}
}

func TestRender_missingDirectoryWritesNothing(t *testing.T) {
	var buf bytes.Buffer

	err := Render(&buf, filepath.Join(t.TempDir(), "gone"), ModeSize, Options{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Render(missing) = %v, want ErrNotFound", err)
	}

	if buf.Len() != 0 {
		t.Errorf("failed Render produced output: %q", buf.String())
	}
}

func TestRender_cancelledWritesNothing(t *testing.T) {
	root := t.TempDir()
	writeBytes(t, filepath.Join(root, "file"), 1)

	var buf bytes.Buffer

	err := Render(&buf, root, ModeSize, Options{
		ShouldCancel: func() bool { return true },
		PollInterval: time.Millisecond,
	})
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("Render(cancelled) = %v, want ErrCancelled", err)
	}

	if buf.Len() != 0 {
		t.Errorf("cancelled Render produced output: %q", buf.String())
	}
}

func TestRender_permissionDeniedRow(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root, permission checks do not apply")
	}

	root := t.TempDir()

	sub := filepath.Join(root, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	locked := filepath.Join(sub, "locked")
	if err := os.Mkdir(locked, 0o000); err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	var buf bytes.Buffer

	if err := Render(&buf, root, ModeSize, Options{}); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "Permission denied") || !strings.Contains(out, "<root>") {
		t.Errorf("report missing synthetic permission row:\n%s", out)
	}
}
