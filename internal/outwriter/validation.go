package outwriter

import (
	"fmt"
	"io"
	"strings"

	"github.com/failsight/failsight/internal/contract"
	"github.com/failsight/failsight/schema"
)

// WriteValidation prints a validation report, dispatching based on the
// output format configured.
func WriteValidation(report *schema.ValidationReport, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeValidationText(w, report)
		}, "Wrote report")
	}
}

// writeValidationText renders the validation cross-check as plain text.
func writeValidationText(w io.Writer, report *schema.ValidationReport) error {
	var b strings.Builder

	b.WriteString("CSV DATA VALIDATION\n\n")
	b.WriteString("Basic metrics:\n")
	fmt.Fprintf(&b, "  Total rows: %d\n", report.TotalRows)
	fmt.Fprintf(&b, "  503 errors found: %d (%.2f%%)\n", report.Error503Count, report.ErrorRatePercent())
	fmt.Fprintf(&b, "  Unique order ids: %d\n", report.UniqueOrderIDs)
	fmt.Fprintf(&b, "  Unique customers: %d\n", report.UniqueCustomers)
	fmt.Fprintf(&b, "  Unique store ids: %d\n", report.UniqueStoreIDs)

	if report.OrdersWithValues > 0 {
		b.WriteString("\nOrder values:\n")
		fmt.Fprintf(&b, "  Orders with value data: %d\n", report.OrdersWithValues)
		fmt.Fprintf(&b, "  Total order value: $%.2f\n", report.TotalOrderValue)
		fmt.Fprintf(&b, "  Average order value: $%.2f\n",
			report.TotalOrderValue/float64(report.OrdersWithValues))
	}

	if report.FirstTimestamp != "" {
		b.WriteString("\nTimeline:\n")
		fmt.Fprintf(&b, "  First log entry: %s\n", report.FirstTimestamp)
		fmt.Fprintf(&b, "  Last log entry:  %s\n", report.LastTimestamp)
	}

	b.WriteString("\nError correlation:\n")
	fmt.Fprintf(&b, "  Errors matched to an order by timestamp: %d of %d (%.1f%%)\n",
		report.CorrelatedErrors, report.Error503Count, report.CorrelationRatePercent())

	if len(report.SampleCustomers) > 0 {
		fmt.Fprintf(&b, "\nSample customers: %s\n", strings.Join(report.SampleCustomers, ", "))
	}
	if len(report.SampleErrors) > 0 {
		b.WriteString("\nSample errors:\n")
		for i, e := range report.SampleErrors {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, e)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
