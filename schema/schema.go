// Package schema has configs, models and constants for all parts of failsight.
package schema

// Row represents one CSV log record as a column-name-to-raw-value mapping.
// Rows are read-only once produced by a row source.
type Row map[string]string

// Get returns the raw value for a column, or "" when the column is absent.
func (r Row) Get(column string) string {
	return r[column]
}

// ExtractedFields holds the best-effort values pulled out of a single log
// message. Every field is optional; an empty string means the corresponding
// pattern chain did not match. HasOrderValue distinguishes a genuine zero
// amount from an absent one.
type ExtractedFields struct {
	OrderID       string
	StoreID       string // pickupLocation
	UserID        string // memberId
	FirstName     string
	LastName      string
	Email         string
	StoreName     string
	OrderValue    float64
	HasOrderValue bool
}

// DisplayName derives the customer display name: "first last" trimmed,
// falling back to the email, falling back to "User <id>".
func (e *ExtractedFields) DisplayName() string {
	name := e.FirstName
	if e.LastName != "" {
		if name != "" {
			name += " "
		}
		name += e.LastName
	}
	if name != "" {
		return name
	}
	if e.Email != "" {
		return e.Email
	}
	return "User " + e.UserID
}

// UserProfile holds the first-seen identity details for a user id.
type UserProfile struct {
	Name  string
	Email string
}

// OrderAttribution links an order id to the customer and store details that
// were visible on the row where the order first appeared with customer data.
// Used to backfill identifiers for error rows that carry none of their own.
type OrderAttribution struct {
	Customer      string
	CustomerID    string
	CustomerEmail string
	StoreID       string
	StoreName     string
}

// RevenueAtRisk summarizes the monetary exposure of the affected orders.
// Orders without a known value are excluded from both the total and the
// average; they are reported separately so callers can blend an estimate.
type RevenueAtRisk struct {
	TotalRevenue      float64 // sum of known values across affected orders
	OrdersWithValues  int     // affected orders that carried a parsable value
	AverageOrderValue float64 // TotalRevenue / OrdersWithValues, 0 when none
}
