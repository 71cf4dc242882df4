package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/duxstat/dux/internal/dux"
)

// report is the JSON view of one directory query.
type report struct {
	Directory  string      `json:"directory"`
	Mode       string      `json:"mode"`
	Entries    []jsonEntry `json:"entries"`
	Total      uint64      `json:"total"`
	ErrorCount int64       `json:"error_count"`
}

// jsonEntry pairs a child name with its aggregate value.
type jsonEntry struct {
	Name  string `json:"name"`
	Value uint64 `json:"value"`
}

// printJSON computes the aggregates for dirname and writes them as
// indented JSON, sorted the same way as the table output.
func printJSON(writer io.Writer, dirname string, mode dux.Mode, opts dux.Options) error {
	result, err := dux.Compute(dirname, mode, opts)
	if err != nil {
		return err
	}

	entries := make([]jsonEntry, 0, len(result.Entries))
	for name, value := range result.Entries {
		entries = append(entries, jsonEntry{Name: name, Value: value})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value < entries[j].Value
		}

		return entries[i].Name < entries[j].Name
	})

	data, err := json.MarshalIndent(report{
		Directory:  dirname,
		Mode:       mode.String(),
		Entries:    entries,
		Total:      result.Total(),
		ErrorCount: result.ErrorCount,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}
