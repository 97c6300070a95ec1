package insight

import (
	"fmt"

	"github.com/failsight/failsight/schema"
)

// OperationalPrompt builds the operations-engineer prompt around the plain
// text analysis summary. The error code is interpolated so the prompt stays
// accurate when a non-503 code is configured.
func OperationalPrompt(errorCode, summary string) string {
	return fmt.Sprintf(`You are an expert operations engineer specialized in analyzing application logs and identifying service health issues. I have provided a summary of %[1]s "Service Unavailable" errors found in a recent log export.

Your task is to analyze this summary and provide a concise, actionable report covering the following:

1. **Overall Status:** Did %[1]s errors occur? If so, what is the total count?
2. **Per-Store/Service Analysis:** List any stores or services that experienced %[1]s errors.
3. **Order-Level Analysis:** Identify specific orders that failed and analyze patterns.
4. **Store-Level Impact:** Analyze which store locations (by Store ID and Store Name) were affected and their error patterns.
5. **User-Level Impact:** Identify individual users affected and any patterns in user impact.
6. **High-Impact Areas:** Highlight any store, service, user or order that experienced multiple %[1]s errors, with counts.
7. **Recommended Next Steps:** Suggest immediate, specific steps for investigation and troubleshooting. If no errors were found, state that and suggest ongoing monitoring.

--- Log Analysis Summary ---
%[2]s
--- End of Summary ---

Please structure your answer clearly with headings for each point. Keep it professional and focused on operational insights.`, errorCode, summary)
}

// BusinessImpactPrompt builds the business-analyst prompt. Revenue figures
// come from the values actually observed in the export rather than a fixed
// per-order estimate; the blended figure extends the observed average to
// orders whose value never appeared in the logs.
func BusinessImpactPrompt(data *schema.AnalysisData, summary string) string {
	risk := data.RevenueAtRisk()
	blended := risk.TotalRevenue
	if missing := data.UniqueOrders() - risk.OrdersWithValues; missing > 0 && risk.AverageOrderValue > 0 {
		blended += float64(missing) * risk.AverageOrderValue
	}

	return fmt.Sprintf(`As a business operations analyst, analyze this log data focusing on customer and revenue impact:

BUSINESS CONTEXT:
- Each failed order represents a lost customer transaction
- Observed revenue at risk: $%.2f across %d orders with known values
- Average affected order value: $%.2f
- Blended revenue estimate (including orders without a known value): $%.2f
- Customer satisfaction impact: %d customers affected

KEY METRICS:
- Total 503 Errors: %d
- Unique Orders Affected: %d
- Unique Customers Affected: %d
- Store Locations Affected: %d

Please provide:
1. **Executive Summary** - High-level business impact
2. **Customer Impact Analysis** - Which customers were most affected
3. **Store Performance Analysis** - Which locations need attention
4. **Revenue Impact Assessment** - Financial implications
5. **Operational Recommendations** - Immediate action items

--- Detailed Analysis ---
%s
--- End Analysis ---

Focus on business outcomes and actionable recommendations for management.`,
		risk.TotalRevenue, risk.OrdersWithValues, risk.AverageOrderValue, blended,
		data.UniqueUsers(),
		data.Total503Errors, data.UniqueOrders(), data.UniqueUsers(), data.UniqueStores(),
		summary)
}
