package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/failsight/failsight/internal/contract"
	"github.com/failsight/failsight/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteAnalysis prints the analysis results, dispatching based on the
// output format configured.
func WriteAnalysis(data *schema.AnalysisData, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAnalysisJSON(w, data, cfg, duration)
		}, "Wrote JSON")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAnalysisText(w, data, cfg, duration)
		}, "Wrote report")
	}
}

// writeAnalysisText generates the human-readable console report.
func writeAnalysisText(w io.Writer, data *schema.AnalysisData, cfg *contract.Config, duration time.Duration) error {
	nameWidth := maxNameWidth()

	if _, err := fmt.Fprintf(w, "503 SERVICE UNAVAILABLE ANALYSIS\n\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Rows processed: %d\n", data.TotalProcessedRows); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "503 errors detected: %d (%.2f%% of rows)\n\n",
		data.Total503Errors, errorRate(data)*100); err != nil {
		return err
	}

	if data.Total503Errors == 0 {
		_, err := fmt.Fprintf(w, "No 503 errors found. Analysis completed in %v.\n", duration)
		return err
	}

	if err := writeServiceTable(w, data); err != nil {
		return err
	}
	if err := writeOrderTable(w, data, cfg.OrderDisplayLimit, nameWidth); err != nil {
		return err
	}
	if err := writeCustomerTable(w, data, cfg.CustomerDisplayLimit, nameWidth); err != nil {
		return err
	}
	if err := writeStoreTable(w, data, nameWidth); err != nil {
		return err
	}
	if err := writeInsights(w, data); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Analysis completed in %v.\n", duration)
	return err
}

// writeServiceTable renders the per-service error breakdown.
func writeServiceTable(w io.Writer, data *schema.AnalysisData) error {
	if _, err := fmt.Fprintln(w, "Errors by service:"); err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Service", "Errors", "Impact"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var rows [][]string
	for i, e := range sortedCounts(data.StoreErrorCounts) {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			e.Key,
			strconv.Itoa(e.Count),
			contract.GetColorLabel(e.Count),
		})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

// writeOrderTable renders the top affected orders with joined customer,
// store and value details.
func writeOrderTable(w io.Writer, data *schema.AnalysisData, limit, nameWidth int) error {
	orders := affectedOrders(data)
	if len(orders) == 0 {
		return nil
	}
	shown := len(orders)
	if shown > limit {
		shown = limit
	}
	if _, err := fmt.Fprintf(w, "Top affected orders (%d of %d):\n", shown, len(orders)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Order", "Service", "Customer", "Store", "Value", "Errors", "Impact"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var rows [][]string
	for i, r := range orders[:shown] {
		value := "n/a"
		if r.HasValue {
			value = fmt.Sprintf("$%.2f", r.Value)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			r.OrderID,
			r.Service,
			contract.TruncateText(r.Customer, nameWidth),
			contract.TruncateText(r.StoreName, nameWidth),
			value,
			strconv.Itoa(r.Errors),
			contract.GetColorLabel(r.Errors),
		})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

// writeCustomerTable renders the top affected customers.
func writeCustomerTable(w io.Writer, data *schema.AnalysisData, limit, nameWidth int) error {
	customers := affectedCustomers(data)
	if len(customers) == 0 {
		return nil
	}
	shown := len(customers)
	if shown > limit {
		shown = limit
	}
	if _, err := fmt.Fprintf(w, "Affected customers (%d of %d):\n", shown, len(customers)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Customer", "Email", "Store", "Errors", "Impact"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var rows [][]string
	for i, r := range customers[:shown] {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			contract.TruncateText(r.Name, nameWidth),
			contract.TruncateText(r.Email, nameWidth),
			contract.TruncateText(r.StoreName, nameWidth),
			strconv.Itoa(r.Errors),
			contract.GetColorLabel(r.Errors),
		})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

// writeStoreTable renders the affected stores with directory names.
func writeStoreTable(w io.Writer, data *schema.AnalysisData, nameWidth int) error {
	stores := affectedStores(data)
	if len(stores) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Affected stores:"); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Store ID", "Name", "Errors", "Impact"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var rows [][]string
	for i, r := range stores {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			r.StoreID,
			contract.TruncateText(r.Name, nameWidth),
			strconv.Itoa(r.Errors),
			contract.GetColorLabel(r.Errors),
		})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

// writeInsights renders the derived insight sections: uniqueness,
// business impact and data quality confidence.
func writeInsights(w io.Writer, data *schema.AnalysisData) error {
	risk := data.RevenueAtRisk()
	confidence := data.Confidence()

	if _, err := fmt.Fprintln(w, "Insights:"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  Unique orders: %d, stores: %d, users: %d, services: %d\n",
		data.UniqueOrders(), data.UniqueStores(), data.UniqueUsers(), data.UniqueServices()); err != nil {
		return err
	}
	if n := uncorrelatedErrors(data); n > 0 {
		if _, err := fmt.Fprintf(w, "  Uncorrelated errors (no order id): %d\n", n); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "  Revenue at risk: $%.2f across %d orders with known values\n",
		risk.TotalRevenue, risk.OrdersWithValues); err != nil {
		return err
	}
	if risk.OrdersWithValues > 0 {
		if _, err := fmt.Fprintf(w, "  Average affected order value: $%.2f\n", risk.AverageOrderValue); err != nil {
			return err
		}
	}
	if missing := data.UniqueOrders() - risk.OrdersWithValues; missing > 0 && risk.AverageOrderValue > 0 {
		if _, err := fmt.Fprintf(w, "  Estimated additional exposure: $%.2f (%d orders without known values)\n",
			float64(missing)*risk.AverageOrderValue, missing); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "  Confidence: %s\n", contract.GetConfidenceLabel(confidence.Level)); err != nil {
		return err
	}
	for _, reason := range confidence.Reasons {
		if _, err := fmt.Fprintf(w, "    - %s\n", reason); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
