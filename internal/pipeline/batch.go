package pipeline

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cardforge/internal/llm"
)

// BatchResult is the outcome of one card in a batch
type BatchResult struct {
	Input  Input
	Result *Result
	Err    error
}

// RunBatch generates independent cards with at most workers in flight.
// A failing card does not stop the others; results keep input order.
// The model, when set, is shared through llm.Serialize.
func RunBatch(ctx context.Context, inputs []Input, opts Options, workers int) []BatchResult {
	if workers <= 0 {
		workers = 1
	}
	if opts.Model != nil {
		opts.Model = llm.Serialize(opts.Model)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	results := make([]BatchResult, len(inputs))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = BatchResult{Input: in, Err: err}
				return nil
			}
			res, err := Run(ctx, in, opts)
			if err != nil {
				logger.Warn("card failed", zap.String("card", in.Name), zap.Error(err))
			}
			results[i] = BatchResult{Input: in, Result: res, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Failed returns the batch results that carry an error
func Failed(results []BatchResult) []BatchResult {
	var failed []BatchResult
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
