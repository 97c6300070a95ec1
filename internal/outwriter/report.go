package outwriter

import (
	"fmt"
	"strings"

	"github.com/failsight/failsight/schema"
)

// orderRow is one affected order with everything known about it joined in
// from the correlation side tables.
type orderRow struct {
	OrderID   string
	Service   string
	Customer  string
	StoreName string
	Value     float64
	HasValue  bool
	Errors    int
}

// customerRow is one affected user with identity and store joined in.
type customerRow struct {
	UserID    string
	Name      string
	Email     string
	StoreName string
	Errors    int
}

// storeRow is one affected store id with its directory name joined in.
type storeRow struct {
	StoreID string
	Name    string
	Errors  int
}

// affectedOrders joins OrderErrorCounts with the service, attribution and
// value maps, sorted by descending error count.
func affectedOrders(data *schema.AnalysisData) []orderRow {
	rows := make([]orderRow, 0, len(data.OrderErrorCounts))
	for _, e := range sortedCounts(data.OrderErrorCounts) {
		r := orderRow{OrderID: e.Key, Errors: e.Count}
		r.Service = data.OrderToServiceMap[e.Key]
		if attr, ok := data.OrderAttributions[e.Key]; ok {
			r.Customer = attr.Customer
			r.StoreName = attr.StoreName
			if r.StoreName == "" && attr.StoreID != "" {
				r.StoreName = data.StoreName(attr.StoreID)
			}
		}
		if v, ok := data.OrderValues[e.Key]; ok {
			r.Value = v
			r.HasValue = true
		}
		rows = append(rows, r)
	}
	return rows
}

// affectedCustomers joins UserIDErrorCounts with the profile and store side
// tables, sorted by descending error count.
func affectedCustomers(data *schema.AnalysisData) []customerRow {
	rows := make([]customerRow, 0, len(data.UserIDErrorCounts))
	for _, e := range sortedCounts(data.UserIDErrorCounts) {
		r := customerRow{UserID: e.Key, Errors: e.Count}
		if profile, ok := data.UserProfiles[e.Key]; ok {
			r.Name = profile.Name
			r.Email = profile.Email
		}
		if r.Name == "" {
			r.Name = "User " + e.Key
		}
		if storeID, ok := data.UserStoreMap[e.Key]; ok {
			r.StoreName = data.StoreName(storeID)
			if r.StoreName == "" {
				r.StoreName = storeID
			}
		}
		rows = append(rows, r)
	}
	return rows
}

// affectedStores joins StoreIDErrorCounts with the directory mapping,
// sorted by descending error count.
func affectedStores(data *schema.AnalysisData) []storeRow {
	rows := make([]storeRow, 0, len(data.StoreIDErrorCounts))
	for _, e := range sortedCounts(data.StoreIDErrorCounts) {
		name := data.StoreName(e.Key)
		if name == "" {
			name = "(unknown)"
		}
		rows = append(rows, storeRow{StoreID: e.Key, Name: name, Errors: e.Count})
	}
	return rows
}

// uncorrelatedErrors returns how many errors landed in the catch-all order
// bucket because no order id could be resolved for them.
func uncorrelatedErrors(data *schema.AnalysisData) int {
	return data.OrderErrorCounts[schema.UnknownBucket]
}

// errorRate returns 503 errors as a fraction of all processed rows.
func errorRate(data *schema.AnalysisData) float64 {
	if data.TotalProcessedRows == 0 {
		return 0
	}
	return float64(data.Total503Errors) / float64(data.TotalProcessedRows)
}

// SummaryReport renders the full analysis as plain text with no color or
// table framing. This is the view of the data handed to the insight
// prompts, so it stays stable and machine-friendly.
func SummaryReport(data *schema.AnalysisData, orderLimit, customerLimit int) string {
	var b strings.Builder
	risk := data.RevenueAtRisk()
	confidence := data.Confidence()

	b.WriteString("503 Service Unavailable Analysis Summary\n")
	b.WriteString("========================================\n")
	fmt.Fprintf(&b, "Rows processed: %d\n", data.TotalProcessedRows)
	fmt.Fprintf(&b, "503 errors: %d (%.2f%% of rows)\n", data.Total503Errors, errorRate(data)*100)
	fmt.Fprintf(&b, "Unique orders affected: %d\n", data.UniqueOrders())
	fmt.Fprintf(&b, "Unique stores affected: %d\n", data.UniqueStores())
	fmt.Fprintf(&b, "Unique users affected: %d\n", data.UniqueUsers())
	fmt.Fprintf(&b, "Services involved: %d\n", data.UniqueServices())

	b.WriteString("\nErrors by service:\n")
	for _, e := range sortedCounts(data.StoreErrorCounts) {
		fmt.Fprintf(&b, "  - %s: %d\n", e.Key, e.Count)
	}

	if orders := affectedOrders(data); len(orders) > 0 {
		fmt.Fprintf(&b, "\nTop affected orders (showing up to %d):\n", orderLimit)
		for i, r := range orders {
			if i >= orderLimit {
				break
			}
			line := fmt.Sprintf("  - order %s: %d errors", r.OrderID, r.Errors)
			if r.Service != "" {
				line += fmt.Sprintf(", service %s", r.Service)
			}
			if r.Customer != "" {
				line += fmt.Sprintf(", customer %s", r.Customer)
			}
			if r.StoreName != "" {
				line += fmt.Sprintf(", store %s", r.StoreName)
			}
			if r.HasValue {
				line += fmt.Sprintf(", value $%.2f", r.Value)
			}
			b.WriteString(line + "\n")
		}
	}

	if customers := affectedCustomers(data); len(customers) > 0 {
		fmt.Fprintf(&b, "\nAffected customers (showing up to %d):\n", customerLimit)
		for i, r := range customers {
			if i >= customerLimit {
				break
			}
			line := fmt.Sprintf("  - %s", r.Name)
			if r.Email != "" {
				line += fmt.Sprintf(" <%s>", r.Email)
			}
			if r.StoreName != "" {
				line += fmt.Sprintf(" at %s", r.StoreName)
			}
			line += fmt.Sprintf(": %d errors", r.Errors)
			b.WriteString(line + "\n")
		}
	}

	if stores := affectedStores(data); len(stores) > 0 {
		b.WriteString("\nAffected stores:\n")
		for _, r := range stores {
			fmt.Fprintf(&b, "  - %s (%s): %d errors\n", r.Name, r.StoreID, r.Errors)
		}
	}

	if names := sortedCounts(data.StoreNameErrorCounts); len(names) > 0 {
		b.WriteString("\nErrors by store name (as seen in messages):\n")
		for _, e := range names {
			fmt.Fprintf(&b, "  - %s: %d\n", e.Key, e.Count)
		}
	}

	b.WriteString("\nBusiness impact:\n")
	fmt.Fprintf(&b, "  Revenue at risk (known values): $%.2f across %d orders\n", risk.TotalRevenue, risk.OrdersWithValues)
	if risk.OrdersWithValues > 0 {
		fmt.Fprintf(&b, "  Average affected order value: $%.2f\n", risk.AverageOrderValue)
	}
	if missing := data.UniqueOrders() - risk.OrdersWithValues; missing > 0 && risk.AverageOrderValue > 0 {
		fmt.Fprintf(&b, "  Estimated additional exposure: $%.2f (%d orders without a known value)\n",
			float64(missing)*risk.AverageOrderValue, missing)
	}

	fmt.Fprintf(&b, "\nData quality confidence: %s\n", confidence.Level)
	for _, reason := range confidence.Reasons {
		fmt.Fprintf(&b, "  - %s\n", reason)
	}

	if n := uncorrelatedErrors(data); n > 0 {
		fmt.Fprintf(&b, "\nNote: %d errors could not be correlated to any order id.\n", n)
	}

	return b.String()
}
