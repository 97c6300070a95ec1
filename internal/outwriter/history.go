package outwriter

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/failsight/failsight/internal/contract"
	"github.com/failsight/failsight/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// historyTimeFormat renders run timestamps in local time for the console.
const historyTimeFormat = "2006-01-02 15:04:05"

// WriteRunHistory prints recorded runs, dispatching based on the output
// format configured.
func WriteRunHistory(runs []schema.RunRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, runs)
		}, "Wrote JSON")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunHistoryTable(w, runs)
		}, "Wrote history")
	}
}

// writeRunHistoryTable renders recorded runs as a table, oldest first.
func writeRunHistoryTable(w io.Writer, runs []schema.RunRecord) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Run", "Started", "Duration", "Rows", "Errors", "Orders", "Revenue", "Confidence"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var rows [][]string
	for _, r := range runs {
		duration := "in progress"
		if r.RunDurationMs != nil {
			duration = (time.Duration(*r.RunDurationMs) * time.Millisecond).String()
		}
		rows = append(rows, []string{
			contract.TruncateText(r.RunID, 12),
			r.StartTime.Local().Format(historyTimeFormat),
			duration,
			strconv.Itoa(r.TotalRows),
			strconv.Itoa(r.Total503Errors),
			strconv.Itoa(r.UniqueOrders),
			fmt.Sprintf("$%.2f", r.RevenueAtRisk),
			r.ConfidenceLevel,
		})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d recorded runs.\n", len(runs))
	return err
}

// PrintHistoryStatus prints the history store status to stdout.
func PrintHistoryStatus(status schema.HistoryStatus) {
	fmt.Fprintf(os.Stdout, "History backend: %s\n", status.Backend)
	fmt.Fprintf(os.Stdout, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Fprintf(os.Stdout, "Total runs: %d\n", status.TotalRuns)
	if status.LastRun != nil {
		fmt.Fprintf(os.Stdout, "Last run: %s\n", status.LastRun.Local().Format(historyTimeFormat))
	}
	if status.OldestRun != nil {
		fmt.Fprintf(os.Stdout, "Oldest run: %s\n", status.OldestRun.Local().Format(historyTimeFormat))
	}
}
