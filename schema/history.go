package schema

import "time"

// RunRecord captures one completed (or in-flight) analysis run for the
// history store.
type RunRecord struct {
	RunID           string     `json:"run_id"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	RunDurationMs   *int64     `json:"run_duration_ms"`
	TotalRows       int        `json:"total_rows"`
	Total503Errors  int        `json:"total_503_errors"`
	UniqueOrders    int        `json:"unique_orders"`
	UniqueStores    int        `json:"unique_stores"`
	UniqueUsers     int        `json:"unique_users"`
	RevenueAtRisk   float64    `json:"revenue_at_risk"`
	ConfidenceLevel string     `json:"confidence_level"`
	ConfigParams    *string    `json:"config_params"`
}

// HistoryStatus describes the state of the history store for status output.
type HistoryStatus struct {
	Backend   DatabaseBackend
	Connected bool
	TotalRuns int
	LastRun   *time.Time
	OldestRun *time.Time
}
