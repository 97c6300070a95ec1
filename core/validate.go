package core

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/failsight/failsight/core/extract"
	"github.com/failsight/failsight/internal/contract"
	"github.com/failsight/failsight/schema"
)

// validationSampleLimit bounds the sample lists in the validation report.
const validationSampleLimit = 10

// Validate drains the row sources and tallies the export independently of
// the analysis pipeline. Every counter here is recomputed from scratch so a
// bug in the correlation engine cannot hide in the cross-check.
func Validate(ctx context.Context, cfg *contract.Config, sources []contract.RowSource) (*schema.ValidationReport, error) {
	report := &schema.ValidationReport{}

	orderIDs := make(map[string]struct{})
	customers := make(map[string]struct{})
	storeIDs := make(map[string]struct{})
	orderTimeKeys := make(map[string]string)
	var errorTimeKeys []string

	for _, source := range sources {
		err := source.ForEach(ctx, func(row schema.Row) error {
			report.TotalRows++

			message := strings.TrimSpace(row.Get(cfg.MessageColumn))
			timestamp := strings.TrimSpace(row.Get(cfg.TimestampColumn))
			timeKey := TimeKey(timestamp)

			if timestamp != "" {
				if report.FirstTimestamp == "" || timestamp < report.FirstTimestamp {
					report.FirstTimestamp = timestamp
				}
				if timestamp > report.LastTimestamp {
					report.LastTimestamp = timestamp
				}
			}

			fields := extract.Fields(message)
			if fields.OrderID != "" {
				orderIDs[fields.OrderID] = struct{}{}
				orderTimeKeys[fields.OrderID] = timeKey
				if fields.HasOrderValue {
					report.OrdersWithValues++
					report.TotalOrderValue += fields.OrderValue
				}
			}
			if fields.StoreID != "" {
				storeIDs[fields.StoreID] = struct{}{}
			}
			if fields.FirstName != "" || fields.LastName != "" || fields.Email != "" {
				name := fields.DisplayName()
				if _, seen := customers[name]; !seen {
					customers[name] = struct{}{}
					if len(report.SampleCustomers) < validationSampleLimit {
						report.SampleCustomers = append(report.SampleCustomers, name)
					}
				}
			}

			if extract.IsError503(message, cfg.ErrorCode) {
				report.Error503Count++
				errorTimeKeys = append(errorTimeKeys, timeKey)
				if len(report.SampleErrors) < validationSampleLimit {
					snippet := message
					if len(snippet) > 200 {
						snippet = snippet[:200] + "..."
					}
					report.SampleErrors = append(report.SampleErrors, fmt.Sprintf("%s: %s", timestamp, snippet))
				}
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("row source %s failed: %w", source.Name(), err)
		}
	}

	report.UniqueOrderIDs = len(orderIDs)
	report.UniqueCustomers = len(customers)
	report.UniqueStoreIDs = len(storeIDs)

	// Invert the order timestamps once so the error correlation check is a
	// plain set lookup instead of a scan per error.
	timeKeysWithOrders := make(map[string]struct{}, len(orderTimeKeys))
	for _, tk := range orderTimeKeys {
		timeKeysWithOrders[tk] = struct{}{}
	}
	for _, tk := range errorTimeKeys {
		if _, ok := timeKeysWithOrders[tk]; ok {
			report.CorrelatedErrors++
		}
	}

	sort.Strings(report.SampleCustomers)
	return report, nil
}
