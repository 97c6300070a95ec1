package cmd

import (
	"github.com/failsight/failsight/core"
	"github.com/failsight/failsight/internal/contract"
	"github.com/spf13/cobra"
)

// analyzeCmd runs the full 503 analysis over one or more CSV exports.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [csv-files...]",
	Short: "Detect 503 errors in CSV log exports and correlate them to orders.",
	Long: `Scan CSV log exports for 503 Service Unavailable errors and build a
full impact picture from the semi-structured message text.

The analysis extracts order ids, store ids, customer identities and order
values from the message bodies, correlates error lines to orders by
second-precision timestamps, and reports:
- Errors broken down by service, order, store and customer
- Revenue at risk, based on the order values seen in the export
- A confidence assessment of the extraction quality

Examples:
  # Analyze one export with defaults
  failsight analyze extract.csv

  # Resolve store names from a directory file and show more customers
  failsight analyze extract.csv --store-data stores.csv --customer-limit 30

  # Machine-readable output for downstream tooling
  failsight analyze extract.csv --output json --output-file report.json

  # Generate AI insight reports (requires GEMINI_API_KEY or Vertex AI env)
  failsight analyze extract.csv --insight --model gemini-2.0-flash

  # Record the run for trend tracking
  failsight analyze extract.csv --history-backend sqlite`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAnalyze(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run log analysis", err)
		}
	},
}
