package outwriter

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/failsight/failsight/internal/contract"
	"github.com/failsight/failsight/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAnalysisJSON(t *testing.T) {
	cfg := &contract.Config{OrderDisplayLimit: 20, CustomerDisplayLimit: 15}
	var buf bytes.Buffer

	err := writeAnalysisJSON(&buf, sampleData(), cfg, 1500*time.Millisecond)
	require.NoError(t, err)

	var report jsonReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))

	assert.Equal(t, 100, report.TotalProcessedRows)
	assert.Equal(t, 5, report.Total503Errors)
	assert.InDelta(t, 5.0, report.ErrorRatePercent, 1e-9)
	assert.Equal(t, 4, report.UniqueOrders)
	assert.Equal(t, 1, report.UncorrelatedErrors)
	assert.Equal(t, int64(1500), report.AnalysisDurationMs)

	require.Len(t, report.Services, 2)
	assert.Equal(t, "order-service", report.Services[0].Key)
	assert.Equal(t, 1, report.Services[0].Rank)

	require.Len(t, report.Orders, 4)
	assert.Equal(t, "ORD-1", report.Orders[0].OrderID)
	assert.Equal(t, "Ada Lovelace", report.Orders[0].Customer)
	assert.Equal(t, contract.ModerateValue, report.Orders[0].Label)

	require.Len(t, report.Customers, 1)
	assert.Equal(t, "ada@example.com", report.Customers[0].Email)

	require.Len(t, report.Stores, 2)
	assert.Equal(t, "Quad Cafe", report.Stores[0].Name)

	assert.InDelta(t, 40, report.RevenueAtRisk.TotalRevenue, 1e-9)
	assert.Equal(t, 2, report.RevenueAtRisk.OrdersWithValues)
	assert.InDelta(t, 20, report.RevenueAtRisk.AverageOrderValue, 1e-9)
	assert.InDelta(t, 40, report.RevenueAtRisk.EstimatedExposure, 1e-9)
	assert.NotEmpty(t, report.Confidence.Level)
	assert.NotEmpty(t, report.Confidence.Reasons)
}

func TestWriteAnalysisJSONHonorsLimits(t *testing.T) {
	cfg := &contract.Config{OrderDisplayLimit: 2, CustomerDisplayLimit: 1}
	var buf bytes.Buffer

	require.NoError(t, writeAnalysisJSON(&buf, sampleData(), cfg, 0))

	var report jsonReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	assert.Len(t, report.Orders, 2)
	assert.Len(t, report.Customers, 1)
}

func TestWriteAnalysisJSONEmptyData(t *testing.T) {
	cfg := &contract.Config{OrderDisplayLimit: 20, CustomerDisplayLimit: 15}
	var buf bytes.Buffer

	require.NoError(t, writeAnalysisJSON(&buf, schema.NewAnalysisData(nil), cfg, 0))

	// Empty collections must serialize as [] rather than null.
	assert.Contains(t, buf.String(), `"orders": []`)
	assert.Contains(t, buf.String(), `"services": []`)
	assert.NotContains(t, buf.String(), "null")
}

func TestWriteJSONIndents(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
}
