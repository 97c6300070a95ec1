package outwriter

import (
	"strings"
	"testing"

	"github.com/failsight/failsight/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleData builds an aggregate resembling a small real analysis: three
// affected orders across two services, one fully attributed customer and
// one error that never correlated.
func sampleData() *schema.AnalysisData {
	data := schema.NewAnalysisData(map[string]string{"12": "Quad Cafe"})
	data.TotalProcessedRows = 100
	data.Total503Errors = 5

	data.StoreErrorCounts["order-service"] = 4
	data.StoreErrorCounts["payments"] = 1

	data.OrderErrorCounts["ORD-1"] = 2
	data.OrderErrorCounts["ORD-2"] = 1
	data.OrderErrorCounts["ORD-3"] = 1
	data.OrderErrorCounts[schema.UnknownBucket] = 1

	data.OrderToServiceMap["ORD-1"] = "order-service"
	data.OrderToServiceMap["ORD-2"] = "order-service"
	data.OrderToServiceMap["ORD-3"] = "payments"

	data.OrderAttributions["ORD-1"] = schema.OrderAttribution{
		Customer:   "Ada Lovelace",
		CustomerID: "555",
		StoreID:    "12",
		StoreName:  "Quad Cafe",
	}
	data.OrderValues["ORD-1"] = 30
	data.OrderValues["ORD-2"] = 10

	data.StoreIDErrorCounts["12"] = 3
	data.StoreIDErrorCounts["99"] = 1
	data.UserIDErrorCounts["555"] = 3
	data.UserProfiles["555"] = schema.UserProfile{Name: "Ada Lovelace", Email: "ada@example.com"}
	data.UserStoreMap["555"] = "12"
	data.StoreNameErrorCounts["Quad Cafe"] = 3
	return data
}

func TestSortedCounts(t *testing.T) {
	counts := map[string]int{"b": 2, "a": 2, "c": 5, "d": 1}
	entries := sortedCounts(counts)
	require.Len(t, entries, 4)
	assert.Equal(t, entry{Key: "c", Count: 5}, entries[0])
	// Ties break alphabetically for deterministic output.
	assert.Equal(t, entry{Key: "a", Count: 2}, entries[1])
	assert.Equal(t, entry{Key: "b", Count: 2}, entries[2])
	assert.Equal(t, entry{Key: "d", Count: 1}, entries[3])
}

func TestAffectedOrders(t *testing.T) {
	rows := affectedOrders(sampleData())
	require.Len(t, rows, 4)

	top := rows[0]
	assert.Equal(t, "ORD-1", top.OrderID)
	assert.Equal(t, 2, top.Errors)
	assert.Equal(t, "order-service", top.Service)
	assert.Equal(t, "Ada Lovelace", top.Customer)
	assert.Equal(t, "Quad Cafe", top.StoreName)
	assert.True(t, top.HasValue)
	assert.InDelta(t, 30, top.Value, 1e-9)

	// ORD-3 has a service but no attribution or value.
	var ord3 orderRow
	for _, r := range rows {
		if r.OrderID == "ORD-3" {
			ord3 = r
		}
	}
	assert.Equal(t, "payments", ord3.Service)
	assert.Empty(t, ord3.Customer)
	assert.False(t, ord3.HasValue)
}

func TestAffectedOrdersStoreNameFromDirectory(t *testing.T) {
	data := schema.NewAnalysisData(map[string]string{"12": "Quad Cafe"})
	data.OrderErrorCounts["ORD-1"] = 1
	// Attribution recorded before the directory name was known.
	data.OrderAttributions["ORD-1"] = schema.OrderAttribution{StoreID: "12"}

	rows := affectedOrders(data)
	require.Len(t, rows, 1)
	assert.Equal(t, "Quad Cafe", rows[0].StoreName)
}

func TestAffectedCustomers(t *testing.T) {
	rows := affectedCustomers(sampleData())
	require.Len(t, rows, 1)
	assert.Equal(t, "555", rows[0].UserID)
	assert.Equal(t, "Ada Lovelace", rows[0].Name)
	assert.Equal(t, "ada@example.com", rows[0].Email)
	assert.Equal(t, "Quad Cafe", rows[0].StoreName)
	assert.Equal(t, 3, rows[0].Errors)
}

func TestAffectedCustomersFallbacks(t *testing.T) {
	data := schema.NewAnalysisData(nil)
	data.UserIDErrorCounts["42"] = 1
	data.UserStoreMap["42"] = "77" // no directory name for this store

	rows := affectedCustomers(data)
	require.Len(t, rows, 1)
	assert.Equal(t, "User 42", rows[0].Name)
	assert.Equal(t, "77", rows[0].StoreName)
}

func TestAffectedStores(t *testing.T) {
	rows := affectedStores(sampleData())
	require.Len(t, rows, 2)
	assert.Equal(t, storeRow{StoreID: "12", Name: "Quad Cafe", Errors: 3}, rows[0])
	assert.Equal(t, storeRow{StoreID: "99", Name: "(unknown)", Errors: 1}, rows[1])
}

func TestErrorRate(t *testing.T) {
	data := sampleData()
	assert.InDelta(t, 0.05, errorRate(data), 1e-9)
	assert.Zero(t, errorRate(schema.NewAnalysisData(nil)))
}

func TestUncorrelatedErrors(t *testing.T) {
	assert.Equal(t, 1, uncorrelatedErrors(sampleData()))
	assert.Zero(t, uncorrelatedErrors(schema.NewAnalysisData(nil)))
}

func TestSummaryReport(t *testing.T) {
	summary := SummaryReport(sampleData(), 20, 15)

	assert.Contains(t, summary, "Rows processed: 100")
	assert.Contains(t, summary, "503 errors: 5 (5.00% of rows)")
	assert.Contains(t, summary, "Unique orders affected: 4")
	assert.Contains(t, summary, "- order-service: 4")
	assert.Contains(t, summary, "- order ORD-1: 2 errors, service order-service, customer Ada Lovelace, store Quad Cafe, value $30.00")
	assert.Contains(t, summary, "- Ada Lovelace <ada@example.com> at Quad Cafe: 3 errors")
	assert.Contains(t, summary, "- Quad Cafe (12): 3 errors")
	assert.Contains(t, summary, "Revenue at risk (known values): $40.00 across 2 orders")
	assert.Contains(t, summary, "Average affected order value: $20.00")
	// Two affected orders have no known value, priced at the observed average.
	assert.Contains(t, summary, "Estimated additional exposure: $40.00 (2 orders without a known value)")
	assert.Contains(t, summary, "Data quality confidence:")
	assert.Contains(t, summary, "Note: 1 errors could not be correlated to any order id.")
}

func TestSummaryReportHonorsLimits(t *testing.T) {
	summary := SummaryReport(sampleData(), 1, 15)
	assert.Contains(t, summary, "Top affected orders (showing up to 1):")
	assert.Contains(t, summary, "order ORD-1")
	assert.NotContains(t, summary, "order ORD-2")
	assert.NotContains(t, summary, "order ORD-3")
}

func TestSummaryReportNoErrors(t *testing.T) {
	data := schema.NewAnalysisData(nil)
	data.TotalProcessedRows = 50

	summary := SummaryReport(data, 20, 15)
	assert.Contains(t, summary, "503 errors: 0 (0.00% of rows)")
	assert.NotContains(t, summary, "Top affected orders")
	assert.NotContains(t, summary, "Note:")
	// Exactly one summary document, no stray blank sections.
	assert.False(t, strings.Contains(summary, "\n\n\n"))
}
