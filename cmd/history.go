package cmd

import (
	"fmt"

	"github.com/failsight/failsight/internal/contract"
	"github.com/failsight/failsight/internal/history"
	"github.com/failsight/failsight/internal/outwriter"
	"github.com/failsight/failsight/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historySetup loads minimal configuration needed for history operations.
// This avoids CSV argument handling and insight validation for simple
// data-management commands.
func historySetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}
	if _, ok := schema.ValidHistoryBackends[backend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", backendStr)
	}
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// openHistoryStore opens the configured history store for one command.
func openHistoryStore() (contract.HistoryStore, error) {
	return history.NewStore(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// historyCmd focused on run history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage recorded analysis runs",
	Long: `Manage the run history used for trend tracking across analyses.

When enabled via --history-backend, failsight records every analyze run:
- Run metadata (timestamp, duration, configuration)
- Error totals and unique order/store/user counts
- Revenue at risk and the confidence assessment

Supported backends: SQLite (default path ~/.failsight_history.db),
MySQL, PostgreSQL, or None (disabled).

Subcommands:
  list    - Show all recorded runs
  status  - Show history store statistics
  export  - Export runs to Parquet for analytics
  clear   - Remove all recorded runs

Examples:
  # Check history status
  failsight history status --history-backend sqlite

  # Export for analysis in pandas/DuckDB
  failsight history export runs.parquet --history-backend sqlite`,
}

// historyListCmd lists all recorded runs.
var historyListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Show all recorded analysis runs",
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := openHistoryStore()
		if err != nil {
			contract.LogFatal("Failed to open history store", err)
		}
		defer func() { _ = store.Close() }()

		runs, err := store.ListRuns()
		if err != nil {
			contract.LogFatal("Failed to list runs", err)
		}
		if err := outwriter.WriteRunHistory(runs, cfg); err != nil {
			contract.LogFatal("Failed to write run history", err)
		}
	},
}

// historyStatusCmd shows history store status.
var historyStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display history store statistics and connection details",
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := openHistoryStore()
		if err != nil {
			contract.LogFatal("Failed to open history store", err)
		}
		defer func() { _ = store.Close() }()

		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		outwriter.PrintHistoryStatus(status)
	},
}

// historyClearCmd clears the run history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded analysis runs",
	Long: `Delete all stored run history.

WARNING: This action cannot be undone. Consider exporting data first:
  failsight history export backup.parquet
  failsight history clear`,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := openHistoryStore()
		if err != nil {
			contract.LogFatal("Failed to open history store", err)
		}
		defer func() { _ = store.Close() }()

		if err := store.Clear(); err != nil {
			contract.LogFatal("Failed to clear run history", err)
		}
		fmt.Println("Run history cleared successfully.")
	},
}

// historyExportCmd exports the run history to a Parquet file.
var historyExportCmd = &cobra.Command{
	Use:   "export [output-file]",
	Short: "Export run history to Parquet for BI tools and analytics",
	Long: `Export all recorded runs to Parquet format for use with analytics
tools like DuckDB, pandas or Spark.

Examples:
  # Export all runs
  failsight history export runs.parquet --history-backend sqlite

  # Query with DuckDB
  duckdb -c "SELECT * FROM read_parquet('runs.parquet') LIMIT 10"`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, args []string) {
		outputPath := "failsight_runs.parquet"
		if len(args) == 1 {
			outputPath = args[0]
		}

		store, err := openHistoryStore()
		if err != nil {
			contract.LogFatal("Failed to open history store", err)
		}
		defer func() { _ = store.Close() }()

		runs, err := store.ListRuns()
		if err != nil {
			contract.LogFatal("Failed to list runs", err)
		}
		if err := history.WriteRunsParquet(history.ConvertRunRecords(runs), outputPath); err != nil {
			contract.LogFatal("Failed to export run history", err)
		}
		fmt.Printf("Exported %d runs to %s\n", len(runs), outputPath)
	},
}
