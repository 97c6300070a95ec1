package contract

import (
	"context"
	"time"

	"github.com/failsight/failsight/schema"
	"github.com/stretchr/testify/mock"
)

// --- MockTextGenerator Implementation ---

// MockTextGenerator is a mock type for the TextGenerator type.
type MockTextGenerator struct {
	mock.Mock
}

var _ TextGenerator = &MockTextGenerator{} // Compile-time check

// GenerateInsight implements the TextGenerator interface.
func (m *MockTextGenerator) GenerateInsight(ctx context.Context, prompt string) (string, error) {
	ret := m.Called(ctx, prompt)
	text, _ := ret.Get(0).(string)
	return text, ret.Error(1)
}

// --- MockStoreDirectory Implementation ---

// MockStoreDirectory is a mock type for the StoreDirectory type.
type MockStoreDirectory struct {
	mock.Mock
}

var _ StoreDirectory = &MockStoreDirectory{} // Compile-time check

// LoadStoreMapping implements the StoreDirectory interface.
func (m *MockStoreDirectory) LoadStoreMapping(ctx context.Context) (map[string]string, error) {
	ret := m.Called(ctx)
	mapping, _ := ret.Get(0).(map[string]string)
	return mapping, ret.Error(1)
}

// --- MockHistoryStore Implementation ---

// MockHistoryStore is a mock type for the HistoryStore type.
type MockHistoryStore struct {
	mock.Mock
}

var _ HistoryStore = &MockHistoryStore{} // Compile-time check

// BeginRun implements the HistoryStore interface.
func (m *MockHistoryStore) BeginRun(startTime time.Time, configParams map[string]any) (string, error) {
	ret := m.Called(startTime, configParams)
	id, _ := ret.Get(0).(string)
	return id, ret.Error(1)
}

// EndRun implements the HistoryStore interface.
func (m *MockHistoryStore) EndRun(runID string, endTime time.Time, data *schema.AnalysisData) error {
	ret := m.Called(runID, endTime, data)
	return ret.Error(0)
}

// ListRuns implements the HistoryStore interface.
func (m *MockHistoryStore) ListRuns() ([]schema.RunRecord, error) {
	ret := m.Called()
	runs, _ := ret.Get(0).([]schema.RunRecord)
	return runs, ret.Error(1)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	ret := m.Called()
	status, _ := ret.Get(0).(schema.HistoryStatus)
	return status, ret.Error(1)
}

// Clear implements the HistoryStore interface.
func (m *MockHistoryStore) Clear() error {
	return m.Called().Error(0)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	return m.Called().Error(0)
}

// --- SliceRowSource Implementation ---

// SliceRowSource is an in-memory RowSource used by tests and the MCP layer.
type SliceRowSource struct {
	SourceName string
	Rows       []schema.Row
	Err        error // returned after all rows when non-nil
}

var _ RowSource = &SliceRowSource{} // Compile-time check

// Name implements the RowSource interface.
func (s *SliceRowSource) Name() string {
	if s.SourceName == "" {
		return "memory"
	}
	return s.SourceName
}

// ForEach implements the RowSource interface.
func (s *SliceRowSource) ForEach(ctx context.Context, fn func(schema.Row) error) error {
	for _, row := range s.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(row); err != nil {
			return err
		}
	}
	return s.Err
}
