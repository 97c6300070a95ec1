// Package csvsource reads CSV log exports and the store directory file.
// It is thin I/O glue: one schema.Row per CSV line, columns keyed by the
// header row.
package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/failsight/failsight/internal/contract"
	"github.com/failsight/failsight/schema"
)

// FileSource yields rows from one CSV export file. The file is opened
// lazily on ForEach so a source list can be built before any file exists
// checks happen.
type FileSource struct {
	path string
}

var _ contract.RowSource = &FileSource{} // Compile-time check

// NewFileSource creates a row source for the given CSV file path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name implements the RowSource interface.
func (s *FileSource) Name() string { return s.path }

// ForEach implements the RowSource interface. The first record is treated
// as the header; rows with fewer fields than the header are padded with
// empty values (best-effort field access, no schema validation).
func (s *FileSource) ForEach(ctx context.Context, fn func(schema.Row) error) error {
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("open csv export: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged exports

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil // empty file, zero rows
	}
	if err != nil {
		return fmt.Errorf("read csv header: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read csv record: %w", err)
		}
		row := make(schema.Row, len(header))
		for i, column := range header {
			if i < len(record) {
				row[column] = record[i]
			} else {
				row[column] = ""
			}
		}
		if err := fn(row); err != nil {
			return err
		}
	}
}

// Sources builds one FileSource per path, preserving argument order.
func Sources(paths []string) []contract.RowSource {
	sources := make([]contract.RowSource, 0, len(paths))
	for _, p := range paths {
		sources = append(sources, NewFileSource(p))
	}
	return sources
}
