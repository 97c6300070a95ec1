// Package outwriter has output and writer logic: the console report, the
// JSON result document and the summary text fed to the insight prompts.
package outwriter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/failsight/failsight/internal/contract"
	"golang.org/x/term"
)

// entry is a counted key used when rendering maps sorted by error count.
type entry struct {
	Key   string
	Count int
}

// sortedCounts returns map entries sorted by descending count, ties broken
// by key for deterministic output.
func sortedCounts(counts map[string]int) []entry {
	entries := make([]entry, 0, len(counts))
	for k, c := range counts {
		entries = append(entries, entry{Key: k, Count: c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Key < entries[j].Key
	})
	return entries
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeWithFile opens the configured output target, runs the write
// function against it, and reports success to stderr when writing to a
// real file. Stdout is never closed.
func writeWithFile(filePath string, write func(io.Writer) error, successMsg string) error {
	f, err := contract.SelectOutputFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	if f != os.Stdout {
		defer func() { _ = f.Close() }()
	}
	if err := write(f); err != nil {
		return err
	}
	if filePath != "" {
		_, _ = fmt.Fprintf(os.Stderr, "%s to %s\n", successMsg, filePath)
	}
	return nil
}

// maxNameWidth calculates how much room name columns get, based on the
// terminal width with a conservative fallback for CI and pipes.
func maxNameWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}
	available := width - 40 // rank, counts and label columns with padding
	if available < 15 {
		return 15
	}
	if available > 60 {
		return 60
	}
	return available
}
