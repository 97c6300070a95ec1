package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/failsight/failsight/internal/contract"
)

// Store directory column names, matching the POS export format.
const (
	storeIDColumn   = "posStoreId"
	storeNameColumn = "name"
)

// StoreDataFile loads the store-id to store-name reference table from a CSV
// file. A missing or unreadable file surfaces as an error; callers treat
// that as a warning and proceed with an empty seed.
type StoreDataFile struct {
	path string
}

var _ contract.StoreDirectory = &StoreDataFile{} // Compile-time check

// NewStoreDataFile creates a directory loader for the given path. An empty
// path means no directory is configured.
func NewStoreDataFile(path string) *StoreDataFile {
	return &StoreDataFile{path: path}
}

// LoadStoreMapping implements the StoreDirectory interface. Rows with a
// blank id or name are skipped.
func (l *StoreDataFile) LoadStoreMapping(ctx context.Context) (map[string]string, error) {
	if l.path == "" {
		return map[string]string{}, nil
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open store data: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store data header: %w", err)
	}

	idIdx, nameIdx := -1, -1
	for i, column := range header {
		switch strings.TrimSpace(column) {
		case storeIDColumn:
			idIdx = i
		case storeNameColumn:
			nameIdx = i
		}
	}
	if idIdx < 0 || nameIdx < 0 {
		return nil, fmt.Errorf("store data is missing %q or %q column", storeIDColumn, storeNameColumn)
	}

	mapping := make(map[string]string)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return mapping, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read store data record: %w", err)
		}
		if idIdx >= len(record) || nameIdx >= len(record) {
			continue
		}
		id := strings.TrimSpace(record[idIdx])
		name := strings.TrimSpace(record[nameIdx])
		if id != "" && name != "" {
			mapping[id] = name
		}
	}
}
