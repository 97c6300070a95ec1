// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/failsight/failsight/schema"
)

// RowSource yields one semantic record per CSV line, in file order. A
// mid-stream failure is terminal for the whole run: ForEach returns the
// error and the caller discards any partial aggregation.
type RowSource interface {
	// Name identifies the source in error messages (usually the file path).
	Name() string

	// ForEach invokes fn for every row in order. It stops at the first
	// error returned by fn or encountered while reading.
	ForEach(ctx context.Context, fn func(schema.Row) error) error
}

// StoreDirectory produces the store-id to store-name reference mapping,
// loaded once before any row is processed. A missing directory is not
// fatal; callers proceed with an empty seed.
type StoreDirectory interface {
	LoadStoreMapping(ctx context.Context) (map[string]string, error)
}

// TextGenerator accepts a composed prompt and returns prose from a
// generative backend. Implementations own their provider selection and
// fallback behavior.
type TextGenerator interface {
	GenerateInsight(ctx context.Context, prompt string) (string, error)
}

// HistoryStore tracks analysis runs for trend reporting and export.
type HistoryStore interface {
	// BeginRun creates a new run row and returns its unique id.
	BeginRun(startTime time.Time, configParams map[string]any) (string, error)

	// EndRun finalizes a run with the aggregate results.
	EndRun(runID string, endTime time.Time, data *schema.AnalysisData) error

	// ListRuns returns all recorded runs, oldest first.
	ListRuns() ([]schema.RunRecord, error)

	// GetStatus returns status information about the history store.
	GetStatus() (schema.HistoryStatus, error)

	// Clear removes all recorded runs.
	Clear() error

	// Close releases the underlying connection.
	Close() error
}
