package schema

// UnknownBucket is the fallback key used whenever a store tag or order id
// cannot be determined for an error row. It accumulates counts like any
// other key.
const UnknownBucket = "UNKNOWN"

// Custom string types for type safety.
type (
	// ConfidenceLevel classifies how much the extraction results can be trusted.
	ConfidenceLevel string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string
)

// Confidence levels, from most to least trustworthy. Adjustment factors can
// only ever downgrade High to MediumHigh, never upgrade.
const (
	HighConfidence       ConfidenceLevel = "HIGH"
	MediumHighConfidence ConfidenceLevel = "MEDIUM-HIGH"
	MediumConfidence     ConfidenceLevel = "MEDIUM"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	JSONOut: {},
}

// ValidHistoryBackends lists all valid history backends.
var ValidHistoryBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
