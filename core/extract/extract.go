// Package extract pulls structured fields out of semi-structured log message
// text. Each field has a priority-ordered chain of patterns; the first
// pattern that matches wins and later ones are never consulted. A failed
// match yields absence, never an error.
//
// Log exports carry message bodies that already contain escaped JSON, so
// most patterns tolerate a literal backslash before each quote.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/failsight/failsight/schema"
)

var (
	// orderIDChain matches a quoted orderId key with a quoted value. The
	// escaped form comes first because that is what the exports contain.
	orderIDChain = []*regexp.Regexp{
		regexp.MustCompile(`\\"orderId\\":\s*\\"([^"\\]+)\\"`),
		regexp.MustCompile(`"orderId":\s*"([^"\\]+)"`),
	}

	// Store and user ids appear as unquoted integers after an optionally
	// quoted key.
	storeIDChain = []*regexp.Regexp{
		regexp.MustCompile(`\\?"?pickupLocation\\?"?:\s*(\d+)`),
	}
	userIDChain = []*regexp.Regexp{
		regexp.MustCompile(`\\?"?memberId\\?"?:\s*(\d+)`),
	}

	firstNameChain = []*regexp.Regexp{
		regexp.MustCompile(`\\?"?firstName\\?"?:\s*\\?"([^"\\]+)\\?"`),
	}
	lastNameChain = []*regexp.Regexp{
		regexp.MustCompile(`\\?"?lastName\\?"?:\s*\\?"([^"\\]+)\\?"`),
	}
	emailChain = []*regexp.Regexp{
		regexp.MustCompile(`\\?"?email\\?"?:\s*\\?"([^"\\]+)\\?"`),
	}

	// storeNameChain has six fallbacks, strictly ordered:
	//  1. nested store object: "store":{"name":"X"}
	//  2. flat storeName field
	//  3. multi-line store block: store { name X }
	//  4. the escaped equivalent with literal \n sequences
	//  5. saleName values that mention a venue-type keyword
	//  6. any locationName/siteName/venueName/placeName field
	storeNameChain = []*regexp.Regexp{
		regexp.MustCompile(`\\?"?store\\?"?:\s*\{\s*\\?"?name\\?"?:\s*\\?"([^"\\]+)\\?"`),
		regexp.MustCompile(`\\?"?storeName\\?"?:\s*\\?"([^"\\]+)\\?"`),
		regexp.MustCompile(`(?i)store\s*\{\s*name\s+([^}]+?)\s*\}`),
		regexp.MustCompile(`(?i)store\\n\{\\nname\\n([^\\]+?)\\n\}`),
		regexp.MustCompile(`\\?"?saleName\\?"?:\s*\\?"([^"]*(?:UNSW|University|Campus|Store|Shop|Outlet|Centre|Center|Mall|Plaza|Metro|Valley)[^"\\]*)\\?"`),
		regexp.MustCompile(`\\?"?(?:location|site|venue|place)Name\\?"?:\s*\\?"([^"\\]+)\\?"`),
	}

	// Order value patterns. The medias array's first value field is the
	// authoritative order total; an items array is an itemized fallback
	// that must be summed; a bare value field is the last resort.
	mediasValuePattern = regexp.MustCompile(`\\?"?medias\\?"?:\s*\[[^\]]*?\\?"?value\\?"?:\s*([0-9][0-9.]*)`)
	itemsArrayPattern  = regexp.MustCompile(`\\?"?items\\?"?:\s*\[([^\]]*)\]`)
	bareValuePattern   = regexp.MustCompile(`\\?"?value\\?"?:\s*([0-9][0-9.]*)`)
)

// firstMatch runs the chain in order and returns the first capture, trimmed.
// Resolution stops at the first pattern that yields a non-empty capture.
func firstMatch(chain []*regexp.Regexp, message string) string {
	for _, p := range chain {
		if m := p.FindStringSubmatch(message); m != nil {
			if v := strings.TrimSpace(m[1]); v != "" {
				return v
			}
		}
	}
	return ""
}

// OrderID extracts the order id from a message, or "" when absent.
func OrderID(message string) string { return firstMatch(orderIDChain, message) }

// StoreID extracts the pickup-location store id, or "" when absent.
func StoreID(message string) string { return firstMatch(storeIDChain, message) }

// UserID extracts the member id, or "" when absent.
func UserID(message string) string { return firstMatch(userIDChain, message) }

// StoreName extracts a human-readable store name using the six-pattern
// fallback chain, or "" when nothing matches.
func StoreName(message string) string { return firstMatch(storeNameChain, message) }

// OrderValue extracts a monetary order total. The boolean reports whether a
// parsable, non-negative amount was found.
func OrderValue(message string) (float64, bool) {
	if m := mediasValuePattern.FindStringSubmatch(message); m != nil {
		return parseAmount(m[1])
	}
	if m := itemsArrayPattern.FindStringSubmatch(message); m != nil {
		if total, ok := sumItemValues(m[1]); ok {
			return total, true
		}
	}
	if m := bareValuePattern.FindStringSubmatch(message); m != nil {
		return parseAmount(m[1])
	}
	return 0, false
}

// sumItemValues totals every value field inside an items array body.
func sumItemValues(body string) (float64, bool) {
	var total float64
	found := false
	for _, m := range bareValuePattern.FindAllStringSubmatch(body, -1) {
		if v, ok := parseAmount(m[1]); ok {
			total += v
			found = true
		}
	}
	return total, found
}

// parseAmount converts a matched number to a float, rejecting negatives and
// garbage like "1.2.3".
func parseAmount(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// IsError503 reports whether a message satisfies any of the 503 markers:
// the configured error code substring, "Service Unavailable", or
// "HTTP Error 503". This is a deliberate heuristic, not a status-line parse.
func IsError503(message, errorCode string) bool {
	return strings.Contains(message, errorCode) ||
		strings.Contains(message, "Service Unavailable") ||
		strings.Contains(message, "HTTP Error 503")
}

// Fields runs every extractor over one message and bundles the results.
func Fields(message string) schema.ExtractedFields {
	f := schema.ExtractedFields{
		OrderID:   OrderID(message),
		StoreID:   StoreID(message),
		UserID:    UserID(message),
		FirstName: firstMatch(firstNameChain, message),
		LastName:  firstMatch(lastNameChain, message),
		Email:     firstMatch(emailChain, message),
		StoreName: StoreName(message),
	}
	f.OrderValue, f.HasOrderValue = OrderValue(message)
	return f
}
