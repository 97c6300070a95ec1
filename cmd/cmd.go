// Package cmd defines the command-line interface for failsight.
package cmd

import (
	"github.com/failsight/failsight/internal/contract"
	"github.com/failsight/failsight/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("store-data", "", "Path to a store directory CSV (posStoreId,name) for id-to-name resolution")
	rootCmd.PersistentFlags().String("message-column", contract.DefaultMessageColumn, "CSV column holding the free-text message body")
	rootCmd.PersistentFlags().String("service-column", contract.DefaultServiceColumn, "CSV column holding the service/store tag")
	rootCmd.PersistentFlags().String("timestamp-column", contract.DefaultTimestampColumn, "CSV column holding the export timestamp")
	rootCmd.PersistentFlags().String("error-code", contract.DefaultErrorCode, "Error code substring to detect in messages")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("history-backend", string(schema.NoneBackend), "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql history backends")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of analyzeCmd to Viper
	analyzeCmd.Flags().String("model", contract.DefaultModel, "Generative model for AI insights")
	analyzeCmd.Flags().Bool("use-vertexai", false, "Prefer the Vertex AI backend for AI insights")
	analyzeCmd.Flags().Bool("insight", false, "Generate AI insight reports after the analysis")
	analyzeCmd.Flags().String("insight-timeout", "", "Timeout for a single AI generate call (e.g. 90s, 2m)")
	analyzeCmd.Flags().Int("order-limit", contract.DefaultOrderLimit, "Max orders shown in breakdowns")
	analyzeCmd.Flags().Int("customer-limit", contract.DefaultCustomerLimit, "Max customers shown in breakdowns")
	analyzeCmd.Flags().Int("debug-errors", contract.DefaultDebugErrorLimit, "Number of errors echoed verbatim during ingestion (0 = quiet)")
	if err := viper.BindPFlags(analyzeCmd.Flags()); err != nil {
		contract.LogFatal("Error binding analyze flags", err)
	}
}
