package core

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/failsight/failsight/internal/contract"
	"github.com/failsight/failsight/internal/csvsource"
	"github.com/failsight/failsight/internal/history"
	"github.com/failsight/failsight/internal/insight"
	"github.com/failsight/failsight/internal/outwriter"
	"github.com/failsight/failsight/schema"
)

// ExecuteAnalyze runs the full analysis pipeline: ingest the CSV exports,
// write the report, optionally generate AI insights, and record the run in
// the history store.
func ExecuteAnalyze(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()

	store, err := history.NewStore(cfg.HistoryBackend, cfg.HistoryDBConnect)
	if err != nil {
		return fmt.Errorf("failed to initialize history store: %w", err)
	}
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun(start, map[string]any{
		"csv_paths":  cfg.CSVPaths,
		"error_code": cfg.ErrorCode,
		"store_data": cfg.StoreDataPath,
	})
	if err != nil {
		contract.LogWarn("could not record run start", err)
	}

	data, err := Run(ctx, cfg, csvsource.NewStoreDataFile(cfg.StoreDataPath), csvsource.Sources(cfg.CSVPaths))
	if err != nil {
		return err
	}
	duration := time.Since(start)

	if err := outwriter.WriteAnalysis(data, cfg, duration); err != nil {
		return fmt.Errorf("failed to write analysis output: %w", err)
	}

	if cfg.Insight {
		if err := generateInsights(ctx, cfg, data); err != nil {
			contract.LogWarn("insight generation failed", err)
		}
	}

	if runID != "" {
		if err := store.EndRun(runID, time.Now(), data); err != nil {
			contract.LogWarn("could not record run completion", err)
		}
	}

	return nil
}

// generateInsights composes the prompts from the analysis summary and
// prints the generated reports. The business prompt only runs when errors
// were actually found; there is no business impact to narrate otherwise.
func generateInsights(ctx context.Context, cfg *contract.Config, data *schema.AnalysisData) error {
	generator := insight.NewGeminiGenerator(cfg)
	if err := generator.ValidateEnvironment(); err != nil {
		return err
	}
	summary := outwriter.SummaryReport(data, cfg.OrderDisplayLimit, cfg.CustomerDisplayLimit)

	genCtx, cancel := context.WithTimeout(ctx, cfg.InsightTimeout)
	defer cancel()

	operational, err := generator.GenerateInsight(genCtx, insight.OperationalPrompt(cfg.ErrorCode, summary))
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(os.Stdout, "AI OPERATIONAL ANALYSIS\n\n%s\n\n", operational); err != nil {
		return err
	}

	if data.Total503Errors == 0 {
		return nil
	}
	business, err := generator.GenerateInsight(genCtx, insight.BusinessImpactPrompt(data, summary))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(os.Stdout, "AI BUSINESS IMPACT ANALYSIS\n\n%s\n\n", business)
	return err
}

// ExecuteValidate runs the independent cross-check over the CSV exports
// and writes the validation report.
func ExecuteValidate(ctx context.Context, cfg *contract.Config) error {
	report, err := Validate(ctx, cfg, csvsource.Sources(cfg.CSVPaths))
	if err != nil {
		return err
	}
	return outwriter.WriteValidation(report, cfg)
}
