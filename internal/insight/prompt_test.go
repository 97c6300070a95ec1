package insight

import (
	"testing"

	"github.com/failsight/failsight/schema"
	"github.com/stretchr/testify/assert"
)

func TestOperationalPrompt(t *testing.T) {
	prompt := OperationalPrompt("503", "summary body here")

	assert.Contains(t, prompt, "expert operations engineer")
	assert.Contains(t, prompt, "--- Log Analysis Summary ---\nsummary body here\n--- End of Summary ---")
	assert.Contains(t, prompt, "Recommended Next Steps")
}

func TestOperationalPromptCustomCode(t *testing.T) {
	prompt := OperationalPrompt("429", "summary")
	assert.Contains(t, prompt, "429 \"Service Unavailable\" errors")
	assert.Contains(t, prompt, "Did 429 errors occur?")
	assert.NotContains(t, prompt, "503")
}

func TestBusinessImpactPrompt(t *testing.T) {
	data := schema.NewAnalysisData(nil)
	data.Total503Errors = 4
	data.OrderErrorCounts["A"] = 2
	data.OrderErrorCounts["B"] = 1
	data.OrderErrorCounts["C"] = 1
	data.OrderValues["A"] = 30
	data.OrderValues["B"] = 10
	data.UserIDErrorCounts["555"] = 3
	data.StoreIDErrorCounts["12"] = 4

	prompt := BusinessImpactPrompt(data, "detailed summary")

	assert.Contains(t, prompt, "Observed revenue at risk: $40.00 across 2 orders")
	assert.Contains(t, prompt, "Average affected order value: $20.00")
	// One affected order has no known value; the blend prices it at the average.
	assert.Contains(t, prompt, "Blended revenue estimate (including orders without a known value): $60.00")
	assert.Contains(t, prompt, "Total 503 Errors: 4")
	assert.Contains(t, prompt, "Unique Orders Affected: 3")
	assert.Contains(t, prompt, "Unique Customers Affected: 1")
	assert.Contains(t, prompt, "Store Locations Affected: 1")
	assert.Contains(t, prompt, "--- Detailed Analysis ---\ndetailed summary\n--- End Analysis ---")
}

func TestBusinessImpactPromptNoKnownValues(t *testing.T) {
	data := schema.NewAnalysisData(nil)
	data.Total503Errors = 2
	data.OrderErrorCounts["A"] = 1
	data.OrderErrorCounts["B"] = 1

	prompt := BusinessImpactPrompt(data, "summary")

	// Without an observed average there is nothing to extrapolate from.
	assert.Contains(t, prompt, "Observed revenue at risk: $0.00 across 0 orders")
	assert.Contains(t, prompt, "Blended revenue estimate (including orders without a known value): $0.00")
}
