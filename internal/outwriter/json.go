package outwriter

import (
	"io"
	"time"

	"github.com/failsight/failsight/internal/contract"
	"github.com/failsight/failsight/schema"
)

// JSON document types. Field names stay stable so downstream tooling can
// consume the output.

type jsonCount struct {
	Rank   int    `json:"rank"`
	Key    string `json:"key"`
	Errors int    `json:"errors"`
	Label  string `json:"label"`
}

type jsonOrder struct {
	Rank     int     `json:"rank"`
	OrderID  string  `json:"order_id"`
	Service  string  `json:"service,omitempty"`
	Customer string  `json:"customer,omitempty"`
	Store    string  `json:"store,omitempty"`
	Value    float64 `json:"value,omitempty"`
	Errors   int     `json:"errors"`
	Label    string  `json:"label"`
}

type jsonCustomer struct {
	Rank   int    `json:"rank"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Store  string `json:"store,omitempty"`
	Errors int    `json:"errors"`
	Label  string `json:"label"`
}

type jsonStore struct {
	Rank    int    `json:"rank"`
	StoreID string `json:"store_id"`
	Name    string `json:"name"`
	Errors  int    `json:"errors"`
	Label   string `json:"label"`
}

type jsonRevenue struct {
	TotalRevenue      float64 `json:"total_revenue"`
	OrdersWithValues  int     `json:"orders_with_values"`
	AverageOrderValue float64 `json:"average_order_value"`
	EstimatedExposure float64 `json:"estimated_exposure,omitempty"`
}

type jsonConfidence struct {
	Level   string   `json:"level"`
	Reasons []string `json:"reasons"`
}

type jsonReport struct {
	TotalProcessedRows int            `json:"total_processed_rows"`
	Total503Errors     int            `json:"total_503_errors"`
	ErrorRatePercent   float64        `json:"error_rate_percent"`
	UniqueOrders       int            `json:"unique_orders"`
	UniqueStores       int            `json:"unique_stores"`
	UniqueUsers        int            `json:"unique_users"`
	UniqueServices     int            `json:"unique_services"`
	UncorrelatedErrors int            `json:"uncorrelated_errors"`
	Services           []jsonCount    `json:"services"`
	Orders             []jsonOrder    `json:"orders"`
	Customers          []jsonCustomer `json:"customers"`
	Stores             []jsonStore    `json:"stores"`
	RevenueAtRisk      jsonRevenue    `json:"revenue_at_risk"`
	Confidence         jsonConfidence `json:"confidence"`
	AnalysisDurationMs int64          `json:"analysis_duration_ms"`
}

// writeAnalysisJSON writes the analysis results as one JSON document.
// Display limits apply the same way as in the text report.
func writeAnalysisJSON(w io.Writer, data *schema.AnalysisData, cfg *contract.Config, duration time.Duration) error {
	risk := data.RevenueAtRisk()
	confidence := data.Confidence()

	report := jsonReport{
		TotalProcessedRows: data.TotalProcessedRows,
		Total503Errors:     data.Total503Errors,
		ErrorRatePercent:   errorRate(data) * 100,
		UniqueOrders:       data.UniqueOrders(),
		UniqueStores:       data.UniqueStores(),
		UniqueUsers:        data.UniqueUsers(),
		UniqueServices:     data.UniqueServices(),
		UncorrelatedErrors: uncorrelatedErrors(data),
		Services:           []jsonCount{},
		Orders:             []jsonOrder{},
		Customers:          []jsonCustomer{},
		Stores:             []jsonStore{},
		RevenueAtRisk: jsonRevenue{
			TotalRevenue:      risk.TotalRevenue,
			OrdersWithValues:  risk.OrdersWithValues,
			AverageOrderValue: risk.AverageOrderValue,
		},
		Confidence: jsonConfidence{
			Level:   string(confidence.Level),
			Reasons: confidence.Reasons,
		},
		AnalysisDurationMs: duration.Milliseconds(),
	}
	if missing := data.UniqueOrders() - risk.OrdersWithValues; missing > 0 && risk.AverageOrderValue > 0 {
		report.RevenueAtRisk.EstimatedExposure = float64(missing) * risk.AverageOrderValue
	}

	for i, e := range sortedCounts(data.StoreErrorCounts) {
		report.Services = append(report.Services, jsonCount{
			Rank: i + 1, Key: e.Key, Errors: e.Count, Label: contract.GetPlainLabel(e.Count),
		})
	}
	for i, r := range affectedOrders(data) {
		if i >= cfg.OrderDisplayLimit {
			break
		}
		report.Orders = append(report.Orders, jsonOrder{
			Rank: i + 1, OrderID: r.OrderID, Service: r.Service, Customer: r.Customer,
			Store: r.StoreName, Value: r.Value, Errors: r.Errors,
			Label: contract.GetPlainLabel(r.Errors),
		})
	}
	for i, r := range affectedCustomers(data) {
		if i >= cfg.CustomerDisplayLimit {
			break
		}
		report.Customers = append(report.Customers, jsonCustomer{
			Rank: i + 1, UserID: r.UserID, Name: r.Name, Email: r.Email,
			Store: r.StoreName, Errors: r.Errors, Label: contract.GetPlainLabel(r.Errors),
		})
	}
	for i, r := range affectedStores(data) {
		report.Stores = append(report.Stores, jsonStore{
			Rank: i + 1, StoreID: r.StoreID, Name: r.Name, Errors: r.Errors,
			Label: contract.GetPlainLabel(r.Errors),
		})
	}

	return writeJSON(w, report)
}
