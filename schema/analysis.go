package schema

// AnalysisData is the in-memory aggregate for one analysis run. It is owned
// by the orchestrating command, mutated only by the row processor during the
// single ingestion pass, and treated as read-only afterwards. Entries are
// never removed; counters only grow.
type AnalysisData struct {
	// Error tracking maps. Every key carries a count of at least 1.
	StoreErrorCounts     map[string]int // raw service tag -> 503 count
	OrderErrorCounts     map[string]int // correlated order id -> 503 count
	StoreIDErrorCounts   map[string]int // extracted store id -> 503 count
	UserIDErrorCounts    map[string]int // extracted user id -> 503 count
	StoreNameErrorCounts map[string]int // extracted store name -> 503 count

	// Correlation maps.
	OrderToServiceMap   map[string]string // order id -> service tag (last write wins)
	TimestampToOrderMap map[string]string // time key -> latest order id seen at that second
	StoreIDToNameMap    map[string]string // store id -> display name, seeded from the directory

	// Purpose-specific side tables.
	UserStoreMap      map[string]string           // user id -> store id (last write wins)
	UserProfiles      map[string]UserProfile      // user id -> identity (first write wins)
	OrderAttributions map[string]OrderAttribution // order id -> customer/store (first write wins)

	// Order values observed anywhere in the export (last write wins).
	OrderValues map[string]float64

	// Counters.
	Total503Errors     int
	TotalProcessedRows int
}

// NewAnalysisData creates an empty aggregate seeded with the store directory
// mapping. A nil or empty mapping is fine; names are then resolved only from
// the log rows themselves.
func NewAnalysisData(storeMapping map[string]string) *AnalysisData {
	d := &AnalysisData{
		StoreErrorCounts:     make(map[string]int),
		OrderErrorCounts:     make(map[string]int),
		StoreIDErrorCounts:   make(map[string]int),
		UserIDErrorCounts:    make(map[string]int),
		StoreNameErrorCounts: make(map[string]int),
		OrderToServiceMap:    make(map[string]string),
		TimestampToOrderMap:  make(map[string]string),
		StoreIDToNameMap:     make(map[string]string, len(storeMapping)),
		UserStoreMap:         make(map[string]string),
		UserProfiles:         make(map[string]UserProfile),
		OrderAttributions:    make(map[string]OrderAttribution),
		OrderValues:          make(map[string]float64),
	}
	for id, name := range storeMapping {
		d.StoreIDToNameMap[id] = name
	}
	return d
}

// Unique counts derived from the error maps. Computed on read so they can
// never drift from the underlying data.

func (d *AnalysisData) UniqueOrders() int     { return len(d.OrderErrorCounts) }
func (d *AnalysisData) UniqueServices() int   { return len(d.StoreErrorCounts) }
func (d *AnalysisData) UniqueStores() int     { return len(d.StoreIDErrorCounts) }
func (d *AnalysisData) UniqueUsers() int      { return len(d.UserIDErrorCounts) }
func (d *AnalysisData) UniqueStoreNames() int { return len(d.StoreNameErrorCounts) }

// StoreName resolves a store id to its display name via the directory-seeded
// mapping, returning "" when unknown.
func (d *AnalysisData) StoreName(storeID string) string {
	return d.StoreIDToNameMap[storeID]
}

// RevenueAtRisk sums the known order values over the affected orders. Orders
// whose value was never observed contribute to neither the total nor the
// average.
func (d *AnalysisData) RevenueAtRisk() RevenueAtRisk {
	var r RevenueAtRisk
	for orderID := range d.OrderErrorCounts {
		if value, ok := d.OrderValues[orderID]; ok && value > 0 {
			r.TotalRevenue += value
			r.OrdersWithValues++
		}
	}
	if r.OrdersWithValues > 0 {
		r.AverageOrderValue = r.TotalRevenue / float64(r.OrdersWithValues)
	}
	return r
}

// ConfidenceAssessment pairs the overall confidence level with the reasons
// that produced it, in evaluation order.
type ConfidenceAssessment struct {
	Level   ConfidenceLevel
	Reasons []string
}

// Confidence classifies how trustworthy the extraction results are. The base
// level comes from the order-id extraction rate (unique orders over total
// errors); the correlation-strength and service-pattern factors can only
// downgrade High to MediumHigh.
func (d *AnalysisData) Confidence() ConfidenceAssessment {
	a := ConfidenceAssessment{Level: HighConfidence}
	if d.Total503Errors == 0 {
		a.Reasons = append(a.Reasons, "No 503 errors found; nothing to assess")
		return a
	}

	rate := float64(d.UniqueOrders()) / float64(d.Total503Errors)
	switch {
	case rate >= 0.9:
		a.Reasons = append(a.Reasons, "Excellent order ID extraction rate")
	case rate >= 0.7:
		a.Reasons = append(a.Reasons, "Good order ID extraction rate")
		a.Level = MediumHighConfidence
	default:
		a.Reasons = append(a.Reasons, "Low order ID extraction rate")
		a.Level = MediumConfidence
	}

	switch {
	case d.UniqueOrders() == d.Total503Errors:
		a.Reasons = append(a.Reasons, "Perfect 1:1 error-to-order correlation")
	case float64(d.UniqueOrders()) >= float64(d.Total503Errors)*0.8:
		a.Reasons = append(a.Reasons, "Strong error-to-order correlation")
	default:
		a.Reasons = append(a.Reasons, "Some errors not correlated to orders")
		if a.Level == HighConfidence {
			a.Level = MediumHighConfidence
		}
	}

	if d.UniqueServices() == 1 {
		a.Reasons = append(a.Reasons, "Single service failure pattern (clear root cause)")
	} else {
		a.Reasons = append(a.Reasons, "Multiple services affected (complex issue)")
		if a.Level == HighConfidence {
			a.Level = MediumHighConfidence
		}
	}

	return a
}
