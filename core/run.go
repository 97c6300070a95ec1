package core

import (
	"context"
	"fmt"

	"github.com/failsight/failsight/internal/contract"
	"github.com/failsight/failsight/schema"
)

// Run executes one full analysis pass: seed the aggregate from the store
// directory, then drain every row source sequentially in order. A row
// source failure aborts the whole run and the partial aggregate is
// discarded; a missing directory is only a warning.
func Run(ctx context.Context, cfg *contract.Config, directory contract.StoreDirectory, sources []contract.RowSource) (*schema.AnalysisData, error) {
	seed := map[string]string{}
	if directory != nil {
		mapping, err := directory.LoadStoreMapping(ctx)
		if err != nil {
			contract.LogWarn("store directory unavailable, proceeding with empty seed", err)
		} else {
			seed = mapping
		}
	}

	data := schema.NewAnalysisData(seed)
	processor := NewProcessor(cfg, data)
	if cfg.DebugErrorLimit > 0 {
		processor.Debug = cfg.DebugWriter
	}

	for _, source := range sources {
		err := source.ForEach(ctx, func(row schema.Row) error {
			processor.ProcessRow(row)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("row source %s failed: %w", source.Name(), err)
		}
	}

	return data, nil
}
