package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAnalysisDataSeedsDirectory(t *testing.T) {
	data := NewAnalysisData(map[string]string{"12": "Quad Cafe"})
	assert.Equal(t, "Quad Cafe", data.StoreName("12"))
	assert.Empty(t, data.StoreName("99"))

	empty := NewAnalysisData(nil)
	assert.NotNil(t, empty.StoreIDToNameMap)
	assert.Empty(t, empty.StoreIDToNameMap)
}

func TestUniqueCounts(t *testing.T) {
	data := NewAnalysisData(nil)
	data.OrderErrorCounts["A"] = 2
	data.OrderErrorCounts["B"] = 1
	data.StoreErrorCounts["svc"] = 3
	data.StoreIDErrorCounts["12"] = 3
	data.UserIDErrorCounts["1"] = 1
	data.UserIDErrorCounts["2"] = 2
	data.StoreNameErrorCounts["Quad Cafe"] = 3

	assert.Equal(t, 2, data.UniqueOrders())
	assert.Equal(t, 1, data.UniqueServices())
	assert.Equal(t, 1, data.UniqueStores())
	assert.Equal(t, 2, data.UniqueUsers())
	assert.Equal(t, 1, data.UniqueStoreNames())
}

func TestRevenueAtRisk(t *testing.T) {
	data := NewAnalysisData(nil)
	data.OrderErrorCounts["A"] = 1
	data.OrderErrorCounts["B"] = 2
	data.OrderErrorCounts["C"] = 1
	data.OrderErrorCounts[UnknownBucket] = 3
	data.OrderValues["A"] = 30
	data.OrderValues["B"] = 10
	data.OrderValues["C"] = 0    // zero amounts carry no revenue signal
	data.OrderValues["D"] = 1000 // not an affected order

	risk := data.RevenueAtRisk()
	assert.InDelta(t, 40, risk.TotalRevenue, 1e-9)
	assert.Equal(t, 2, risk.OrdersWithValues)
	assert.InDelta(t, 20, risk.AverageOrderValue, 1e-9)
}

func TestRevenueAtRiskNoValues(t *testing.T) {
	data := NewAnalysisData(nil)
	data.OrderErrorCounts["A"] = 1

	risk := data.RevenueAtRisk()
	assert.Zero(t, risk.TotalRevenue)
	assert.Zero(t, risk.OrdersWithValues)
	assert.Zero(t, risk.AverageOrderValue)
}

func TestConfidenceNoErrors(t *testing.T) {
	data := NewAnalysisData(nil)
	a := data.Confidence()
	assert.Equal(t, HighConfidence, a.Level)
	assert.Len(t, a.Reasons, 1)
}

func TestConfidencePerfectExtraction(t *testing.T) {
	data := NewAnalysisData(nil)
	data.Total503Errors = 5
	for _, id := range []string{"A", "B", "C", "D", "E"} {
		data.OrderErrorCounts[id] = 1
	}
	data.StoreErrorCounts["order-service"] = 5

	a := data.Confidence()
	assert.Equal(t, HighConfidence, a.Level)
	assert.Contains(t, a.Reasons, "Excellent order ID extraction rate")
	assert.Contains(t, a.Reasons, "Perfect 1:1 error-to-order correlation")
	assert.Contains(t, a.Reasons, "Single service failure pattern (clear root cause)")
}

func TestConfidenceGoodExtraction(t *testing.T) {
	data := NewAnalysisData(nil)
	data.Total503Errors = 4
	data.OrderErrorCounts["A"] = 2
	data.OrderErrorCounts["B"] = 1
	data.OrderErrorCounts["C"] = 1
	data.StoreErrorCounts["order-service"] = 4

	// 3 of 4 is a 0.75 extraction rate.
	a := data.Confidence()
	assert.Equal(t, MediumHighConfidence, a.Level)
	assert.Contains(t, a.Reasons, "Good order ID extraction rate")
}

func TestConfidenceLowExtraction(t *testing.T) {
	data := NewAnalysisData(nil)
	data.Total503Errors = 10
	data.OrderErrorCounts["A"] = 5
	data.OrderErrorCounts[UnknownBucket] = 5
	data.StoreErrorCounts["order-service"] = 10

	a := data.Confidence()
	assert.Equal(t, MediumConfidence, a.Level)
	assert.Contains(t, a.Reasons, "Low order ID extraction rate")
}

func TestConfidenceMultipleServicesDowngrades(t *testing.T) {
	data := NewAnalysisData(nil)
	data.Total503Errors = 2
	data.OrderErrorCounts["A"] = 1
	data.OrderErrorCounts["B"] = 1
	data.StoreErrorCounts["svc-a"] = 1
	data.StoreErrorCounts["svc-b"] = 1

	// Extraction and correlation are perfect; the multi-service pattern
	// still pulls High down one notch.
	a := data.Confidence()
	assert.Equal(t, MediumHighConfidence, a.Level)
	assert.Contains(t, a.Reasons, "Multiple services affected (complex issue)")
}
