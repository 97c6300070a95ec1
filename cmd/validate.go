package cmd

import (
	"github.com/failsight/failsight/core"
	"github.com/failsight/failsight/internal/contract"
	"github.com/spf13/cobra"
)

// validateCmd cross-checks an export with tallies computed independently of
// the correlation engine.
var validateCmd = &cobra.Command{
	Use:   "validate [csv-files...]",
	Short: "Cross-check a CSV export with independent tallies.",
	Long: `Recompute row counts, error counts, unique orders, customers and
stores directly from the raw export, without going through the analysis
pipeline. Useful when onboarding a new export format: if validate and
analyze disagree, an extraction pattern needs attention.

Examples:
  # Validate one export
  failsight validate extract.csv

  # Machine-readable validation report
  failsight validate extract.csv --output json`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteValidate(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run validation", err)
		}
	},
}
