// Package core has the row processing and correlation engine for failsight.
package core

import (
	"fmt"
	"io"
	"strings"

	"github.com/failsight/failsight/core/extract"
	"github.com/failsight/failsight/internal/contract"
	"github.com/failsight/failsight/schema"
)

// timeKeyWidth truncates export timestamps to one-second resolution,
// e.g. "2025-06-18T21:20:48".
const timeKeyWidth = 19

// Processor consumes log rows one at a time and folds them into an
// AnalysisData aggregate. It is single-pass and strictly sequential; no
// other goroutine may touch the aggregate during a run.
type Processor struct {
	data *schema.AnalysisData

	messageColumn   string
	serviceColumn   string
	timestampColumn string
	errorCode       string

	// Debug receives a verbatim echo of the first debugLimit errors when
	// non-nil.
	Debug      io.Writer
	debugLimit int
}

// NewProcessor creates a processor that mutates the given aggregate.
func NewProcessor(cfg *contract.Config, data *schema.AnalysisData) *Processor {
	return &Processor{
		data:            data,
		messageColumn:   cfg.MessageColumn,
		serviceColumn:   cfg.ServiceColumn,
		timestampColumn: cfg.TimestampColumn,
		errorCode:       cfg.ErrorCode,
		debugLimit:      cfg.DebugErrorLimit,
	}
}

// TimeKey truncates a raw timestamp string to one-second resolution. The
// correlation heuristic assumes an error line and its originating order line
// share the same export timestamp down to the second.
func TimeKey(timestamp string) string {
	ts := strings.TrimSpace(timestamp)
	if len(ts) > timeKeyWidth {
		return ts[:timeKeyWidth]
	}
	return ts
}

// ProcessRow applies the full per-row algorithm: counting, extraction,
// correlation bookkeeping and, when the message is a 503, error
// attribution. It never fails; extraction misses simply leave fields empty.
func (p *Processor) ProcessRow(row schema.Row) {
	p.data.TotalProcessedRows++

	message := strings.TrimSpace(row.Get(p.messageColumn))
	serviceTag := strings.TrimSpace(row.Get(p.serviceColumn))
	if serviceTag == "" {
		serviceTag = schema.UnknownBucket
	}
	timeKey := TimeKey(row.Get(p.timestampColumn))

	fields := extract.Fields(message)
	p.recordCorrelations(&fields, timeKey)

	if extract.IsError503(message, p.errorCode) {
		p.recordError(&fields, serviceTag, timeKey, message)
	}
}

// recordCorrelations runs for every row, error or not. It maintains the
// side tables that let later error rows borrow identifiers from rows that
// shared their timestamp or order id.
func (p *Processor) recordCorrelations(fields *schema.ExtractedFields, timeKey string) {
	d := p.data

	// Latest order id seen at this second wins the bucket.
	if fields.OrderID != "" {
		d.TimestampToOrderMap[timeKey] = fields.OrderID
	}

	// Later rows may improve the store id to name mapping.
	if fields.StoreID != "" && fields.StoreName != "" {
		d.StoreIDToNameMap[fields.StoreID] = fields.StoreName
	}

	if fields.UserID != "" && fields.StoreID != "" {
		d.UserStoreMap[fields.UserID] = fields.StoreID
	}

	if fields.UserID != "" && (fields.FirstName != "" || fields.LastName != "" || fields.Email != "") {
		p.recordCustomer(fields)
	}

	// Order values may appear on non-error rows; the latest sighting wins.
	if fields.OrderID != "" && fields.HasOrderValue {
		d.OrderValues[fields.OrderID] = fields.OrderValue
	}
}

// recordCustomer captures identity details for a user and, when an order id
// is present, pins the customer and store details to that order. Both
// records are first-write-wins: an established identity is never replaced
// by a later sighting.
func (p *Processor) recordCustomer(fields *schema.ExtractedFields) {
	d := p.data
	name := fields.DisplayName()

	if _, seen := d.UserProfiles[fields.UserID]; !seen {
		d.UserProfiles[fields.UserID] = schema.UserProfile{
			Name:  name,
			Email: fields.Email,
		}
	}

	if fields.OrderID == "" {
		return
	}
	if _, seen := d.OrderAttributions[fields.OrderID]; seen {
		return
	}
	attr := schema.OrderAttribution{
		Customer:      name,
		CustomerID:    fields.UserID,
		CustomerEmail: fields.Email,
	}
	if fields.StoreID != "" {
		attr.StoreID = fields.StoreID
		attr.StoreName = d.StoreIDToNameMap[fields.StoreID]
	}
	d.OrderAttributions[fields.OrderID] = attr
}

// recordError attributes one 503 to a store tag bucket and an order bucket,
// then increments the per-identifier dimensions that can be resolved. No
// error is ever dropped for lack of identifying data; unresolvable rows
// land in the UNKNOWN buckets.
func (p *Processor) recordError(fields *schema.ExtractedFields, serviceTag, timeKey, message string) {
	d := p.data

	d.Total503Errors++
	d.StoreErrorCounts[serviceTag]++

	// The row's own order id beats the timestamp bucket; the bucket beats
	// the sentinel.
	correlated := fields.OrderID
	if correlated == "" {
		correlated = d.TimestampToOrderMap[timeKey]
	}
	if correlated == "" {
		correlated = schema.UnknownBucket
	}
	d.OrderErrorCounts[correlated]++
	d.OrderToServiceMap[correlated] = serviceTag

	// Effective identifiers: prefer the row's own extraction, then backfill
	// from the order attribution recorded when the order was first seen
	// with customer data.
	effStoreID := fields.StoreID
	effUserID := fields.UserID
	effStoreName := fields.StoreName
	if correlated != schema.UnknownBucket {
		if attr, ok := d.OrderAttributions[correlated]; ok {
			if effStoreID == "" {
				effStoreID = attr.StoreID
			}
			if effUserID == "" {
				effUserID = attr.CustomerID
			}
		}
		if effStoreName == "" && effStoreID != "" {
			effStoreName = d.StoreIDToNameMap[effStoreID]
		}
	}

	if effStoreID != "" {
		d.StoreIDErrorCounts[effStoreID]++
	}
	if effUserID != "" {
		d.UserIDErrorCounts[effUserID]++
	}
	if effStoreName != "" {
		d.StoreNameErrorCounts[effStoreName]++
	}

	p.echoError(correlated, serviceTag, timeKey, effStoreID, effUserID, effStoreName, message)
}

// echoError prints the first few errors verbatim so an operator can eyeball
// whether extraction is keeping up with the export format.
func (p *Processor) echoError(orderID, serviceTag, timeKey, storeID, userID, storeName, message string) {
	if p.Debug == nil || p.data.Total503Errors > p.debugLimit {
		return
	}
	fmt.Fprintf(p.Debug, "Found 503 error #%d in service %s, order %s (time: %s)\n",
		p.data.Total503Errors, serviceTag, orderID, timeKey)
	if storeID != "" || storeName != "" {
		fmt.Fprintf(p.Debug, "  Store: id=%s name=%s\n", valueOrNA(storeID), valueOrNA(storeName))
	}
	if userID != "" {
		profile := p.data.UserProfiles[userID]
		fmt.Fprintf(p.Debug, "  Customer: %s (id=%s email=%s)\n",
			valueOrNA(profile.Name), userID, valueOrNA(profile.Email))
	}
	snippet := message
	if len(snippet) > 150 {
		snippet = snippet[:150] + "..."
	}
	fmt.Fprintf(p.Debug, "  Message: %s\n", snippet)
}

func valueOrNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
