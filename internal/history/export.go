package history

import (
	"fmt"
	"os"
	"time"

	"github.com/failsight/failsight/schema"
	"github.com/parquet-go/parquet-go"
)

// RunExport maps the failsight_runs table to a Parquet row group. The
// schema is derived from the struct tags.
type RunExport struct {
	RunID           string     `parquet:"run_id,snappy"`
	StartTime       time.Time  `parquet:"start_time,snappy"`
	EndTime         *time.Time `parquet:"end_time,optional,snappy"`
	RunDurationMs   *int64     `parquet:"run_duration_ms,optional,snappy"`
	TotalRows       int32      `parquet:"total_rows,snappy"`
	Total503Errors  int32      `parquet:"total_503_errors,snappy"`
	UniqueOrders    int32      `parquet:"unique_orders,snappy"`
	UniqueStores    int32      `parquet:"unique_stores,snappy"`
	UniqueUsers     int32      `parquet:"unique_users,snappy"`
	RevenueAtRisk   float64    `parquet:"revenue_at_risk,snappy"`
	ConfidenceLevel string     `parquet:"confidence_level,snappy"`
	ConfigParams    *string    `parquet:"config_params,optional,snappy"`
}

// ConvertRunRecords converts history records to their Parquet export form.
func ConvertRunRecords(records []schema.RunRecord) []RunExport {
	result := make([]RunExport, len(records))
	for i, record := range records {
		result[i] = RunExport{
			RunID:           record.RunID,
			StartTime:       record.StartTime,
			EndTime:         record.EndTime,
			RunDurationMs:   record.RunDurationMs,
			TotalRows:       int32(record.TotalRows),
			Total503Errors:  int32(record.Total503Errors),
			UniqueOrders:    int32(record.UniqueOrders),
			UniqueStores:    int32(record.UniqueStores),
			UniqueUsers:     int32(record.UniqueUsers),
			RevenueAtRisk:   record.RevenueAtRisk,
			ConfidenceLevel: record.ConfidenceLevel,
			ConfigParams:    record.ConfigParams,
		}
	}
	return result
}

// WriteRunsParquet writes run export rows to a Parquet file.
func WriteRunsParquet(data []RunExport, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[RunExport](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	return nil
}
