package schema

// ValidationReport holds independent tallies over the raw export, computed
// without the correlation engine. Comparing these against an analysis run
// is how operators sanity-check the extraction patterns against a new
// export format.
type ValidationReport struct {
	TotalRows        int      `json:"total_rows"`
	Error503Count    int      `json:"error_503_count"`
	UniqueOrderIDs   int      `json:"unique_order_ids"`
	UniqueCustomers  int      `json:"unique_customers"`
	UniqueStoreIDs   int      `json:"unique_store_ids"`
	OrdersWithValues int      `json:"orders_with_values"`
	TotalOrderValue  float64  `json:"total_order_value"`
	FirstTimestamp   string   `json:"first_timestamp"`
	LastTimestamp    string   `json:"last_timestamp"`
	CorrelatedErrors int      `json:"correlated_errors"`
	SampleCustomers  []string `json:"sample_customers"`
	SampleErrors     []string `json:"sample_errors"`
}

// ErrorRatePercent returns 503 errors as a percentage of all rows.
func (r *ValidationReport) ErrorRatePercent() float64 {
	if r.TotalRows == 0 {
		return 0
	}
	return float64(r.Error503Count) / float64(r.TotalRows) * 100
}

// CorrelationRatePercent returns the share of errors whose second-precision
// timestamp matched a row carrying an order id.
func (r *ValidationReport) CorrelationRatePercent() float64 {
	if r.Error503Count == 0 {
		return 0
	}
	return float64(r.CorrelatedErrors) / float64(r.Error503Count) * 100
}
